// Package config reads the service settings from the environment, an optional
// .env file and an optional marinetrack.yaml.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/DEEPML1818/MarineTrack-app-sub000/db"
	"github.com/DEEPML1818/MarineTrack-app-sub000/services"
)

type PostgresConfig struct {
	User     string
	Password string
	DB       string
	Host     string
	SSLMode  string
}

type SeaRouteConfig struct {
	URL       string
	Timeout   time.Duration
	Retries   int
	CacheTTL  time.Duration
	CacheSize int
}

type Config struct {
	ListenAddress  string
	AllowedOrigins []string
	WatchInterval  time.Duration

	LedgerDriver string
	Postgres     PostgresConfig
	SQLitePath   string
	ZonesFile    string

	SeaRoute SeaRouteConfig

	LookupTimeout       time.Duration
	DefaultSpeedKnots   float64
	HazardCorridorNm    float64
	TrafficRadiusNm     float64
	TrafficWindow       time.Duration
	DefaultHazardExpiry time.Duration

	LogDir        string
	StatsInterval time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen_address", ":3058")
	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("stream_watch_interval", "30s")

	v.SetDefault("ledger_driver", db.DriverMemory)
	v.SetDefault("postgres_host", "localhost")
	v.SetDefault("postgres_sslmode", "disable")
	v.SetDefault("sqlite_path", "data/marinetrack.db")

	v.SetDefault("searoute_url", "http://localhost:8090")
	v.SetDefault("searoute_timeout", "10s")
	v.SetDefault("searoute_retries", 3)
	v.SetDefault("searoute_cache_ttl", "15m")
	v.SetDefault("searoute_cache_size", 1024)

	v.SetDefault("lookup_timeout", "8s")
	v.SetDefault("default_speed_knots", services.DefaultSpeedKnots)
	v.SetDefault("hazard_corridor_nm", services.DefaultHazardCorridorNm)
	v.SetDefault("traffic_radius_nm", services.DefaultTrafficRadiusNm)
	v.SetDefault("traffic_window", "6h")
	v.SetDefault("default_hazard_expiry", "24h")

	v.SetDefault("log_dir", "logs")
	v.SetDefault("stats_interval", "5m")
}

// Load reads .env from configDir (when present) into the environment, then
// layers the environment over marinetrack.yaml from configDir over the defaults.
func Load(configDir string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(configDir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	v.SetConfigName("marinetrack")
	v.SetConfigType("yaml")
	if configDir != "" {
		v.AddConfigPath(configDir)
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading marinetrack.yaml: %w", err)
		}
	} else {
		log.Printf("Using config file %s", v.ConfigFileUsed())
	}

	cfg := &Config{
		ListenAddress:  v.GetString("listen_address"),
		AllowedOrigins: splitList(v.GetStringSlice("cors_allowed_origins")),
		WatchInterval:  v.GetDuration("stream_watch_interval"),

		LedgerDriver: strings.ToLower(v.GetString("ledger_driver")),
		Postgres: PostgresConfig{
			User:     v.GetString("postgres_user"),
			Password: v.GetString("postgres_password"),
			DB:       v.GetString("postgres_db"),
			Host:     v.GetString("postgres_host"),
			SSLMode:  v.GetString("postgres_sslmode"),
		},
		SQLitePath: v.GetString("sqlite_path"),
		ZonesFile:  v.GetString("zones_file"),

		SeaRoute: SeaRouteConfig{
			URL:       v.GetString("searoute_url"),
			Timeout:   v.GetDuration("searoute_timeout"),
			Retries:   v.GetInt("searoute_retries"),
			CacheTTL:  v.GetDuration("searoute_cache_ttl"),
			CacheSize: v.GetInt("searoute_cache_size"),
		},

		LookupTimeout:       v.GetDuration("lookup_timeout"),
		DefaultSpeedKnots:   v.GetFloat64("default_speed_knots"),
		HazardCorridorNm:    v.GetFloat64("hazard_corridor_nm"),
		TrafficRadiusNm:     v.GetFloat64("traffic_radius_nm"),
		TrafficWindow:       v.GetDuration("traffic_window"),
		DefaultHazardExpiry: v.GetDuration("default_hazard_expiry"),

		LogDir:        v.GetString("log_dir"),
		StatsInterval: v.GetDuration("stats_interval"),
	}
	return cfg, cfg.Validate()
}

// splitList accepts both YAML lists and comma separated env values.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks if the configuration is usable
func (c *Config) Validate() error {
	switch c.LedgerDriver {
	case db.DriverMemory, db.DriverSQLite, db.DriverPostgres:
	default:
		return &ConfigError{Field: "LEDGER_DRIVER", Message: fmt.Sprintf("unknown driver %q", c.LedgerDriver)}
	}
	if c.LedgerDriver == db.DriverPostgres && c.Postgres.DB == "" {
		return &ConfigError{Field: "POSTGRES_DB", Message: "required for the postgres driver"}
	}
	if c.SeaRoute.URL == "" {
		return &ConfigError{Field: "SEAROUTE_URL", Message: "must be set"}
	}
	if c.SeaRoute.Retries < 0 {
		return &ConfigError{Field: "SEAROUTE_RETRIES", Message: "must not be negative"}
	}

	durations := []struct {
		field string
		value time.Duration
	}{
		{"SEAROUTE_TIMEOUT", c.SeaRoute.Timeout},
		{"SEAROUTE_CACHE_TTL", c.SeaRoute.CacheTTL},
		{"LOOKUP_TIMEOUT", c.LookupTimeout},
		{"TRAFFIC_WINDOW", c.TrafficWindow},
		{"DEFAULT_HAZARD_EXPIRY", c.DefaultHazardExpiry},
		{"STREAM_WATCH_INTERVAL", c.WatchInterval},
		{"STATS_INTERVAL", c.StatsInterval},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return &ConfigError{Field: d.field, Message: "must be a positive duration"}
		}
	}

	positives := []struct {
		field string
		value float64
	}{
		{"DEFAULT_SPEED_KNOTS", c.DefaultSpeedKnots},
		{"HAZARD_CORRIDOR_NM", c.HazardCorridorNm},
		{"TRAFFIC_RADIUS_NM", c.TrafficRadiusNm},
	}
	for _, p := range positives {
		if !(p.value > 0) {
			return &ConfigError{Field: p.field, Message: "must be positive"}
		}
	}
	return nil
}

// LedgerSource is the db.Open source string for the configured driver.
func (c *Config) LedgerSource() string {
	switch c.LedgerDriver {
	case db.DriverPostgres:
		p := c.Postgres
		return db.PostgresDSN(p.Host, p.User, p.Password, p.DB, p.SSLMode)
	case db.DriverSQLite:
		return c.SQLitePath
	}
	return ""
}

func (c *Config) EngineOptions() services.Options {
	return services.Options{
		LookupTimeout:       c.LookupTimeout,
		DefaultSpeedKnots:   c.DefaultSpeedKnots,
		HazardCorridorNm:    c.HazardCorridorNm,
		TrafficRadiusNm:     c.TrafficRadiusNm,
		TrafficWindow:       c.TrafficWindow,
		DefaultHazardExpiry: c.DefaultHazardExpiry,
		LogDir:              c.LogDir,
		Now:                 time.Now,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
