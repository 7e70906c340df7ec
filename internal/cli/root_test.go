package cli

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jirani/uchunguzi/internal/config"
	"github.com/jirani/uchunguzi/internal/database"
	"github.com/jirani/uchunguzi/internal/realtime"
)

func TestNewAppVersionEndpoint(t *testing.T) {
	Version = "test-version"
	cfg := &config.Config{Port: "8080", MaxUploadMB: 25}
	app := newApp(cfg, realtime.NewHub())

	req := httptest.NewRequest("GET", "/api/version", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "test-version", resp.Header.Get("X-Uchunguzi-Version"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"version":"test-version"`)
}

func TestNewAppServesPages(t *testing.T) {
	Version = "test-version"
	IndexTemplate = []byte("<html><title>{{.Title}}</title><p>v{{.Version}}</p></html>")
	DashboardTemplate = []byte("<html><title>{{.Title}}</title></html>")

	cfg := &config.Config{Port: "8080", MaxUploadMB: 25}
	app := newApp(cfg, realtime.NewHub())

	for _, tc := range []struct {
		path  string
		title string
	}{
		{"/", "Uchunguzi"},
		{"/dashboard", "Uchunguzi Dashboard"},
	} {
		req := httptest.NewRequest("GET", tc.path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, 200, resp.StatusCode, tc.path)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Contains(t, string(body), tc.title)
		assert.NotContains(t, string(body), "{{.Title}}")
	}
}

func TestNewAppHealthWithoutDatabase(t *testing.T) {
	original := database.DB
	database.DB = nil
	t.Cleanup(func() { database.DB = original })

	cfg := &config.Config{Port: "8080", MaxUploadMB: 25}
	app := newApp(cfg, realtime.NewHub())

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, 200, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "no_db_configured")

	req = httptest.NewRequest("GET", "/up", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, 503, resp.StatusCode)
}

func TestServeDashboardRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	err := serveDashboard("", "")
	assert.ErrorIs(t, err, errMissingDatabaseURL)
}
