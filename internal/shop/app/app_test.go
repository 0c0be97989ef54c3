package app

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	dir := t.TempDir()
	return Config{
		Issuer:               "storefront-test",
		NumKeys:              1,
		SessionTTL:           time.Hour,
		DatabaseFile:         filepath.Join(dir, "storefront.db"),
		PepperFile:           filepath.Join(dir, "pepper"),
		UploadDir:            filepath.Join(dir, "uploads"),
		UploadMaxBytes:       1024,
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "text",
		Port:                 0,
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
	}
}

func TestApplication(t *testing.T) {
	application, err := New(testConfig(t))
	require.NoError(t, err)
	application.housekeepingService.Start()

	srv := httptest.NewServer(application.Handler())
	defer srv.Close()

	t.Run("ready", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/readyz")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("metrics exposed", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/api/users/signin", "application/json",
			strings.NewReader(`{"email":"ghost@example.com","password":"nope"}`))
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		resp, err = http.Get(srv.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Contains(t, string(raw), `storefront_signin_attempts_total{outcome="rejected",stage="primary"} 1`)
	})

	t.Run("swagger", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/swagger/doc.json")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	require.NoError(t, application.Shutdown())
}
