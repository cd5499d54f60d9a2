package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_NoFilesUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom("local", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Server.Port)
	assert.Equal(t, "log", cfg.Mail.Provider)
	assert.Equal(t, ContentDriverStatic, cfg.Content.Driver)
	assert.Empty(t, cfg.Mail.APIKey)
	assert.Empty(t, cfg.Site.AnalyticsID)
	assert.Equal(t, cfg.Site.ContactEmail, cfg.Mail.From)
	assert.Equal(t, 300*time.Second, cfg.CacheTTL())
}

func TestLoadFrom_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	body := "site:\n  name: Nitesh Kumar\n  analytics_id: G-FILE\nmail:\n  provider: stub\n  simulated_delay_ms: 1000\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yaml"), []byte(body), 0o644))

	t.Setenv("MAIL_API_KEY", "sg-key")
	t.Setenv("MAIL_FROM", "owner@example.com")
	t.Setenv("GA_MEASUREMENT_ID", "G-ENV")

	cfg, err := LoadFrom("local", dir)
	require.NoError(t, err)

	assert.Equal(t, "Nitesh Kumar", cfg.Site.Name)
	assert.Equal(t, "G-ENV", cfg.Site.AnalyticsID)
	assert.Equal(t, "stub", cfg.Mail.Provider)
	assert.Equal(t, "sg-key", cfg.Mail.APIKey)
	assert.Equal(t, "owner@example.com", cfg.Mail.From)
	assert.Equal(t, time.Second, cfg.SimulatedMailDelay())
	// untouched keys keep their defaults
	assert.Equal(t, "https://example.com", cfg.Site.URL)
}

func TestLoadFrom_SiteURLTrailingSlash(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yaml"), []byte("site:\n  url: https://x.dev/\n"), 0o644))

	cfg, err := LoadFrom("local", dir)
	require.NoError(t, err)
	assert.Equal(t, "https://x.dev", cfg.Site.URL)

	t.Setenv("SITE_URL", "https://env.dev//")
	cfg, err = LoadFrom("local", dir)
	require.NoError(t, err)
	assert.Equal(t, "https://env.dev", cfg.Site.URL)
}
