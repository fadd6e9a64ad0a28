package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "PIZZARIA_"

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		HTTPAddr string `koanf:"http_addr"`
		GinMode  string `koanf:"gin_mode"`
		LogLevel string `koanf:"log_level"`
		LogFile  string `koanf:"log_file"`
		Timezone string `koanf:"timezone"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout     time.Duration `koanf:"read_timeout"`
		WriteTimeout    time.Duration `koanf:"write_timeout"`
		IdleTimeout     time.Duration `koanf:"idle_timeout"`
		ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
		TrustedProxies  []string      `koanf:"trusted_proxies"`
		AllowedOrigins  []string      `koanf:"allowed_origins"`
	} `koanf:"http"`

	Database Database `koanf:"database"`

	Redis struct {
		Addr     string        `koanf:"addr"`
		Password string        `koanf:"password"`
		DB       int           `koanf:"db"`
		CartTTL  time.Duration `koanf:"cart_ttl"`
	} `koanf:"redis"`

	Security struct {
		JWTSecret     string        `koanf:"jwt_secret"`
		TokenTTL      time.Duration `koanf:"token_ttl"`
		AdminEmail    string        `koanf:"admin_email"`
		AdminPassword string        `koanf:"admin_password"`
	} `koanf:"security"`

	RateLimit struct {
		RPS        float64 `koanf:"rps"`
		Burst      int     `koanf:"burst"`
		LoginRPS   float64 `koanf:"login_rps"`
		LoginBurst int     `koanf:"login_burst"`
	} `koanf:"rate_limit"`

	Receipts struct {
		LogPath string `koanf:"log_path"`
	} `koanf:"receipts"`

	Reports struct {
		SummaryPath string `koanf:"summary_path"`
	} `koanf:"reports"`
}

type Database struct {
	Driver          string        `koanf:"driver"`
	DSN             string        `koanf:"dsn"`
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	User            string        `koanf:"user"`
	Password        string        `koanf:"password"`
	Name            string        `koanf:"name"`
	SSLMode         string        `koanf:"sslmode"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

// Default returns the values used when neither the file nor the
// environment say otherwise.
func Default() Config {
	var c Config
	c.App.Name = "sistema-pizzaria"
	c.App.HTTPAddr = ":8080"
	c.App.GinMode = "debug"
	c.App.LogLevel = "info"
	c.App.Timezone = "America/Sao_Paulo"

	c.HTTP.ReadTimeout = 10 * time.Second
	c.HTTP.WriteTimeout = 15 * time.Second
	c.HTTP.IdleTimeout = 60 * time.Second
	c.HTTP.ShutdownTimeout = 10 * time.Second
	c.HTTP.TrustedProxies = []string{"127.0.0.1"}
	c.HTTP.AllowedOrigins = []string{"*"}

	c.Database = Database{
		Driver:          "postgres",
		Host:            "localhost",
		User:            "postgres",
		Name:            "pizzaria",
		SSLMode:         "disable",
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
	}

	c.Redis.CartTTL = 24 * time.Hour
	c.Security.TokenTTL = 24 * time.Hour

	c.RateLimit.RPS = 50
	c.RateLimit.Burst = 100
	c.RateLimit.LoginRPS = 0.2
	c.RateLimit.LoginBurst = 5

	c.Receipts.LogPath = "comprovante.txt"
	c.Reports.SummaryPath = "resumo.txt"
	return c
}

// Load reads .env, then layers the YAML file at path (optional) and
// PIZZARIA_ environment variables over the defaults. Nested keys use "__",
// e.g. PIZZARIA_DATABASE__DSN.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("load %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("stat %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	applyLegacyEnv(&cfg, k)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyLegacyEnv honours the plain variables older deployments set,
// unless the namespaced key was given explicitly.
func applyLegacyEnv(cfg *Config, k *koanf.Koanf) {
	set := func(key, envName string, apply func(string)) {
		if k.Exists(key) {
			return
		}
		if v, ok := os.LookupEnv(envName); ok && v != "" {
			apply(v)
		}
	}

	set("app.http_addr", "PORT", func(v string) { cfg.App.HTTPAddr = ":" + strings.TrimPrefix(v, ":") })
	set("app.gin_mode", "GIN_MODE", func(v string) { cfg.App.GinMode = v })
	set("security.jwt_secret", "JWT_SECRET", func(v string) { cfg.Security.JWTSecret = v })
	set("database.host", "PGHOST", func(v string) { cfg.Database.Host = v })
	set("database.user", "PGUSER", func(v string) { cfg.Database.User = v })
	set("database.password", "PGPASSWORD", func(v string) { cfg.Database.Password = v })
	set("database.name", "PGDATABASE", func(v string) { cfg.Database.Name = v })
	set("database.port", "PGPORT", func(v string) {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err == nil {
			cfg.Database.Port = port
		}
	})
}

func (c Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return fmt.Errorf("app.http_addr required")
	}
	switch c.Database.Driver {
	case "postgres", "mysql":
		if c.Database.DSN == "" && c.Database.Host == "" {
			return fmt.Errorf("database.dsn or database.host required for %s", c.Database.Driver)
		}
	case "sqlite":
	default:
		return fmt.Errorf("database.driver must be postgres, mysql or sqlite, got %q", c.Database.Driver)
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate_limit.rps and rate_limit.burst must be positive")
	}
	if c.Receipts.LogPath == "" {
		return fmt.Errorf("receipts.log_path required")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("app.timezone: %w", err)
	}
	return nil
}

// Location is the time zone used for receipts and calendar-day reports.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
