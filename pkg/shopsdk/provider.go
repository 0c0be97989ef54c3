package shopsdk

import "sync"

// SessionProvider is the application-wide view of who is signed in.
type SessionProvider interface {
	Set(Session)
	Get() (Session, bool)
	Clear()
}

// MemorySessionProvider is a SessionProvider held in memory.
type MemorySessionProvider struct {
	mu      sync.RWMutex
	session *Session
}

func NewMemorySessionProvider() *MemorySessionProvider {
	return &MemorySessionProvider{}
}

func (p *MemorySessionProvider) Set(s Session) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.session = &s
}

func (p *MemorySessionProvider) Get() (Session, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.session == nil {
		return Session{}, false
	}
	return *p.session, true
}

func (p *MemorySessionProvider) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.session = nil
}
