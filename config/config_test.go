package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DEEPML1818/MarineTrack-app-sub000/db"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":3058", cfg.ListenAddress)
	assert.Equal(t, db.DriverMemory, cfg.LedgerDriver)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 8*time.Second, cfg.LookupTimeout)
	assert.Equal(t, 10*time.Second, cfg.SeaRoute.Timeout)
	assert.Equal(t, 3, cfg.SeaRoute.Retries)
	assert.Equal(t, 15*time.Minute, cfg.SeaRoute.CacheTTL)
	assert.Equal(t, 15.0, cfg.DefaultSpeedKnots)
	assert.Equal(t, 5.0, cfg.HazardCorridorNm)
	assert.Equal(t, 10.0, cfg.TrafficRadiusNm)
	assert.Equal(t, 6*time.Hour, cfg.TrafficWindow)
	assert.Equal(t, 24*time.Hour, cfg.DefaultHazardExpiry)
	assert.Empty(t, cfg.LedgerSource())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LEDGER_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/ledger.db")
	t.Setenv("LOOKUP_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://bridge.example, https://ops.example")
	t.Setenv("DEFAULT_SPEED_KNOTS", "12.5")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, db.DriverSQLite, cfg.LedgerDriver)
	assert.Equal(t, "/tmp/ledger.db", cfg.LedgerSource())
	assert.Equal(t, 3*time.Second, cfg.LookupTimeout)
	assert.Equal(t, []string{"https://bridge.example", "https://ops.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 12.5, cfg.DefaultSpeedKnots)

	opts := cfg.EngineOptions()
	assert.Equal(t, 3*time.Second, opts.LookupTimeout)
	assert.Equal(t, 12.5, opts.DefaultSpeedKnots)
}

func TestLoadConfigFileAndDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	yaml := `
ledger_driver: postgres
postgres_db: marinetrack
postgres_user: mt
hazard_corridor_nm: 7.5
cors_allowed_origins:
  - https://bridge.example
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marinetrack.yaml"), []byte(yaml), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("POSTGRES_PASSWORD=s3cret\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("POSTGRES_PASSWORD") })

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, db.DriverPostgres, cfg.LedgerDriver)
	assert.Equal(t, 7.5, cfg.HazardCorridorNm)
	assert.Equal(t, []string{"https://bridge.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "s3cret", cfg.Postgres.Password)
	assert.Equal(t, db.PostgresDSN("localhost", "mt", "s3cret", "marinetrack", "disable"), cfg.LedgerSource())
}

func TestLoadDotEnvFromConfigDir(t *testing.T) {
	cwd := t.TempDir()
	t.Chdir(cwd)
	require.NoError(t, os.WriteFile(filepath.Join(cwd, ".env"), []byte("SEAROUTE_RETRIES=9\n"), 0644))

	configDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(configDir, ".env"), []byte("SEAROUTE_RETRIES=5\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("SEAROUTE_RETRIES") })

	cfg, err := Load(configDir)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.SeaRoute.Retries)
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())
	base, err := Load("")
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"unknown driver", func(c *Config) { c.LedgerDriver = "mongo" }, "LEDGER_DRIVER"},
		{"postgres without db", func(c *Config) { c.LedgerDriver = db.DriverPostgres; c.Postgres.DB = "" }, "POSTGRES_DB"},
		{"zero timeout", func(c *Config) { c.LookupTimeout = 0 }, "LOOKUP_TIMEOUT"},
		{"negative radius", func(c *Config) { c.TrafficRadiusNm = -1 }, "TRAFFIC_RADIUS_NM"},
		{"negative retries", func(c *Config) { c.SeaRoute.Retries = -1 }, "SEAROUTE_RETRIES"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *base
			tt.mutate(&cfg)
			err := cfg.Validate()
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}
