package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/storefront/pkg/shopsdk"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("STOREFRONT_SERVER", "")
	t.Setenv("STOREFRONT_TIMEOUT", "")
	os.Unsetenv("STOREFRONT_SERVER")
	os.Unsetenv("STOREFRONT_TIMEOUT")

	t.Run("defaults", func(t *testing.T) {
		cfg, err := loadConfig(nil, "")
		require.NoError(t, err)
		require.Equal(t, "http://localhost:8080", cfg.Server)
		require.Equal(t, filepath.Join(dir, "storefront", "storage.json"), cfg.Storage)
		require.Equal(t, 15*time.Second, cfg.Timeout)
		require.False(t, cfg.Verbose)
	})

	t.Run("file then env then flags", func(t *testing.T) {
		path := filepath.Join(dir, "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server: https://file.example.com/\ntimeout: 20s\nverbose: true\n"), 0o600))

		cfg, err := loadConfig(nil, path)
		require.NoError(t, err)
		require.Equal(t, "https://file.example.com", cfg.Server)
		require.Equal(t, 20*time.Second, cfg.Timeout)
		require.True(t, cfg.Verbose)

		t.Setenv("STOREFRONT_SERVER", "https://env.example.com")
		cfg, err = loadConfig(nil, path)
		require.NoError(t, err)
		require.Equal(t, "https://env.example.com", cfg.Server)

		root := NewRootCmd()
		require.NoError(t, root.PersistentFlags().Parse([]string{"--server", "https://flag.example.com"}))
		cfg, err = loadConfig(root.PersistentFlags(), path)
		require.NoError(t, err)
		require.Equal(t, "https://flag.example.com", cfg.Server)
		require.Equal(t, 20*time.Second, cfg.Timeout)
	})

	t.Run("explicit config must exist", func(t *testing.T) {
		_, err := loadConfig(nil, filepath.Join(dir, "missing.yaml"))
		require.Error(t, err)
	})
}

// fakeStorefront serves sign-in for user@example.com (2FA, code 654321)
// and /api/users/me for the token it issues.
func fakeStorefront(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users/signin", func(w http.ResponseWriter, r *http.Request) {
		var req shopsdk.SignInRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")

		switch {
		case req.Email != "user@example.com" || req.Password != "correct":
		case req.TwoFactorToken == "":
			_, _ = w.Write([]byte(`{"require2FA":true}`))
			return
		case req.TwoFactorToken == "654321":
			_ = json.NewEncoder(w).Encode(shopsdk.Session{
				ID: "u1", Name: "Ada", Email: req.Email, TwoFactorEnabled: true, Token: "tok-1",
			})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(shopsdk.ErrorResponse{Message: "Invalid email, password or code"})
	})
	mux.HandleFunc("GET /api/users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(shopsdk.ErrorResponse{Message: "Unauthorized"})
			return
		}
		_ = json.NewEncoder(w).Encode(shopsdk.UserResponse{ID: "u1", Name: "Ada", Email: "user@example.com"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSignInFlow(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	srv := fakeStorefront(t)
	storage := filepath.Join(t.TempDir(), "storage.json")
	base := []string{"--server", srv.URL, "--storage", storage}

	t.Run("whoami before signin", func(t *testing.T) {
		_, _, err := run(t, "", append(base, "whoami")...)
		require.ErrorContains(t, err, "not signed in")
	})

	t.Run("wrong password", func(t *testing.T) {
		_, stderr, err := run(t, "", append(base, "signin", "--email", "user@example.com", "--password", "nope")...)
		require.ErrorIs(t, err, errReported)
		require.Contains(t, stderr, "error: sign-in failed")
	})

	t.Run("retry code then succeed", func(t *testing.T) {
		stdout, stderr, err := run(t, "000000\n654321\n",
			append(base, "signin", "--email", "user@example.com", "--password", "correct")...)
		require.NoError(t, err)
		require.Contains(t, stderr, "error: invalid code")
		require.Contains(t, stdout, "Signed in as Ada <user@example.com>")

		raw, err := os.ReadFile(storage)
		require.NoError(t, err)
		require.Contains(t, string(raw), "tok-1")
		require.Contains(t, string(raw), shopsdk.KeyEnable2FA)
	})

	t.Run("whoami", func(t *testing.T) {
		stdout, _, err := run(t, "", append(base, "whoami")...)
		require.NoError(t, err)
		require.Contains(t, stdout, `"email": "user@example.com"`)
	})

	t.Run("blank code cancels", func(t *testing.T) {
		_, _, err := run(t, "\n", append(base, "signin", "--email", "user@example.com", "--password", "correct")...)
		require.ErrorContains(t, err, "cancelled")
	})

	t.Run("signout", func(t *testing.T) {
		stdout, _, err := run(t, "", append(base, "signout")...)
		require.NoError(t, err)
		require.Contains(t, stdout, "Signed out")

		_, _, err = run(t, "", append(base, "whoami")...)
		require.ErrorContains(t, err, "not signed in")
	})
}
