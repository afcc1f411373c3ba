package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.test.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
app:
  env: production
  port: 9000
database:
  host: db.internal
  user: linkpage
  password: secret
  name: linkpage
analytics:
  count_untargeted_clicks: false
`)

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, 9000, cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.False(t, cfg.Analytics.CountUntargetedClicks)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  env: local
`)

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 120, cfg.RateLimit.RequestsPerMinute)
	assert.True(t, cfg.Analytics.CountUntargetedClicks)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "from-env")
	path := writeConfig(t, `
database:
  password: ${TEST_DB_PASSWORD}
`)

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Password)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("does/not/exist.yaml")
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg := defaultConfig()
	cfg.Database.Host = "localhost"
	cfg.Database.User = "root"
	cfg.Database.Password = "pw"
	cfg.Database.Name = "linkpage"

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "root:pw@tcp(localhost:3306)/linkpage")
	assert.Contains(t, dsn, "loc=UTC")
}
