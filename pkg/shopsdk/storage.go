package shopsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Storage keys used by KVSessionStore.
const (
	KeyUserInfo  = "userInfo"
	KeyEnable2FA = "enable2FA"
)

// ErrNoSession is returned by LoadSession when nothing is stored.
var ErrNoSession = errors.New("shopsdk: no stored session")

// Storage is a small string key-value store.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// SessionStore persists the signed-in session between runs.
type SessionStore interface {
	SaveSession(Session) error
	LoadSession() (Session, error)
	ClearSession() error
	SaveTwoFactorPreference(enabled bool) error
	LoadTwoFactorPreference() (bool, error)
}

// ============================================================================
// Memory
// ============================================================================

type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// ============================================================================
// File
// ============================================================================

// FileStorage keeps a JSON object on disk. Every write replaces the file
// through a temporary file and a rename.
type FileStorage struct {
	path string
	mu   sync.Mutex
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (f *FileStorage) Path() string { return f.path }

func (f *FileStorage) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

func (f *FileStorage) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return err
	}
	data[key] = value
	return f.write(data)
}

func (f *FileStorage) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return f.write(data)
}

func (f *FileStorage) read() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read storage: %w", err)
	}

	data := make(map[string]string)
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode storage %s: %w", f.path, err)
	}
	return data, nil
}

func (f *FileStorage) write(data map[string]string) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode storage: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".storage-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace storage: %w", err)
	}
	return nil
}

// ============================================================================
// Session store
// ============================================================================

// KVSessionStore stores the session under KeyUserInfo and the two-factor
// preference under KeyEnable2FA.
type KVSessionStore struct {
	kv Storage
}

func NewKVSessionStore(kv Storage) *KVSessionStore {
	return &KVSessionStore{kv: kv}
}

func (s *KVSessionStore) SaveSession(sess Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.kv.Set(KeyUserInfo, string(raw))
}

func (s *KVSessionStore) LoadSession() (Session, error) {
	raw, ok, err := s.kv.Get(KeyUserInfo)
	if err != nil {
		return Session{}, err
	}
	if !ok {
		return Session{}, ErrNoSession
	}

	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

// ClearSession removes both the session and the two-factor preference.
func (s *KVSessionStore) ClearSession() error {
	if err := s.kv.Delete(KeyUserInfo); err != nil {
		return err
	}
	return s.kv.Delete(KeyEnable2FA)
}

func (s *KVSessionStore) SaveTwoFactorPreference(enabled bool) error {
	raw, _ := json.Marshal(enabled)
	return s.kv.Set(KeyEnable2FA, string(raw))
}

func (s *KVSessionStore) LoadTwoFactorPreference() (bool, error) {
	raw, ok, err := s.kv.Get(KeyEnable2FA)
	if err != nil || !ok {
		return false, err
	}

	var enabled bool
	if err := json.Unmarshal([]byte(raw), &enabled); err != nil {
		return false, fmt.Errorf("decode two-factor preference: %w", err)
	}
	return enabled, nil
}
