package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoadConfig_MissingDirectoryYieldsEmptyMap(t *testing.T) {
	cfg, err := LoadConfig("local", filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, cfg)
}

func TestLoadConfig_EnvFileOverridesBase(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", "site:\n  name: Base\n  url: https://base.example\nmail:\n  provider: log\n")
	writeFile(t, dir, "production.yaml", "site:\n  url: https://prod.example\n")

	cfg, err := LoadConfig("production", dir)
	require.NoError(t, err)

	site := cfg["site"].(map[string]interface{})
	assert.Equal(t, "Base", site["name"])
	assert.Equal(t, "https://prod.example", site["url"])
	assert.Equal(t, "log", cfg["mail"].(map[string]interface{})["provider"])
}

func TestLoadConfig_SecretsAndSystemEnvSubstitution(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", "mail:\n  api_key: ${MAIL_KEY_FOR_TEST}\n  from: ${MAIL_FROM_FOR_TEST}\n  note: ${UNSET_FOR_TEST}\n")
	writeFile(t, dir, "secrets.env", "# comment\nMAIL_KEY_FOR_TEST=\"from-secrets\"\nMAIL_FROM_FOR_TEST=secrets@example.com\n")
	t.Setenv("MAIL_FROM_FOR_TEST", "env@example.com")

	cfg, err := LoadConfig("local", dir)
	require.NoError(t, err)

	mail := cfg["mail"].(map[string]interface{})
	assert.Equal(t, "from-secrets", mail["api_key"])
	assert.Equal(t, "env@example.com", mail["from"])
	assert.Equal(t, "", mail["note"])
}

func TestLoadConfig_MalformedYAMLFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", "site: [unclosed\n")

	_, err := LoadConfig("local", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base.yaml")
}

func TestOverrideSiteFromEnv_AcceptsLegacyNames(t *testing.T) {
	t.Setenv("NEXT_PUBLIC_SITE_URL", "https://legacy.example/")
	t.Setenv("NEXT_PUBLIC_GA_MEASUREMENT_ID", "G-LEGACY")

	var site SiteConfig
	OverrideSiteFromEnv(&site)

	assert.Equal(t, "https://legacy.example", site.URL)
	assert.Equal(t, "G-LEGACY", site.AnalyticsID)
}
