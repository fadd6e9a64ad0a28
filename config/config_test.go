package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.App.HTTPAddr)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "comprovante.txt", cfg.Receipts.LogPath)
	assert.Equal(t, "resumo.txt", cfg.Reports.SummaryPath)
	assert.Equal(t, 24*time.Hour, cfg.Redis.CartTTL)
	assert.Equal(t, "America/Sao_Paulo", cfg.App.Timezone)
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  http_addr: ":9090"
  timezone: "UTC"
database:
  driver: sqlite
  dsn: "file:test.db"
redis:
  addr: "localhost:6379"
  cart_ttl: 2h
rate_limit:
  rps: 5
  burst: 10
receipts:
  log_path: "/var/log/pizzaria/receipts.txt"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.App.HTTPAddr)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file:test.db", cfg.Database.DSN)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2*time.Hour, cfg.Redis.CartTTL)
	assert.Equal(t, 5.0, cfg.RateLimit.RPS)
	assert.Equal(t, "/var/log/pizzaria/receipts.txt", cfg.Receipts.LogPath)
	assert.Equal(t, "resumo.txt", cfg.Reports.SummaryPath, "untouched keys keep their default")
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: sqlite
`)
	t.Setenv("PIZZARIA_DATABASE__DSN", "file:env.db")
	t.Setenv("PIZZARIA_APP__LOG_LEVEL", "debug")
	t.Setenv("PIZZARIA_RATE_LIMIT__BURST", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file:env.db", cfg.Database.DSN)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, 7, cfg.RateLimit.Burst)
}

func TestLoadLegacyEnv(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("PGHOST", "db.internal")
	t.Setenv("PGPORT", "6543")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.App.HTTPAddr)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "s3cret", cfg.Security.JWTSecret)
}

func TestLoadNamespacedKeyBeatsLegacyEnv(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("PIZZARIA_APP__HTTP_ADDR", ":4000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":4000", cfg.App.HTTPAddr)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	cases := map[string]string{
		"unknown driver": "database:\n  driver: oracle\n",
		"bad timezone":   "app:\n  timezone: Mars/Olympus\n",
		"zero rps":       "rate_limit:\n  rps: 0\n",
		"no receipt log": "receipts:\n  log_path: \"\"\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestValidateRequiresHostOrDSN(t *testing.T) {
	cfg := Default()
	cfg.Database.Host = ""
	assert.Error(t, cfg.Validate())

	cfg.Database.DSN = "postgres://u:p@h/db"
	assert.NoError(t, cfg.Validate())
}

func TestDialectorFor(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql", "sqlite"} {
		d, err := dialectorFor(Database{Driver: driver, Host: "localhost", Name: "pizzaria"})
		require.NoError(t, err)
		assert.Equal(t, driver, d.Name())
	}

	_, err := dialectorFor(Database{Driver: "oracle"})
	assert.Error(t, err)

	assert.Equal(t, 5432, portOr(0, 5432))
	assert.Equal(t, 6543, portOr(6543, 5432))
}

func TestInitDBSQLite(t *testing.T) {
	db, err := InitDB(Database{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "pizzaria.db")})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()
	assert.NoError(t, sqlDB.Ping())
}
