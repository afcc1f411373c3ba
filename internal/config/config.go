package config

import (
	"fmt"
	"os"
	"time"

	pkglogger "github.com/linkpage/linkpage-backend/pkg/logger"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration loaded from a per-env YAML
// file. Values may reference environment variables as ${VAR}.
type Config struct {
	App struct {
		Env  string `yaml:"env"`
		Port int    `yaml:"port"`
	} `yaml:"app"`

	Database struct {
		Host            string `yaml:"host"`
		Port            int    `yaml:"port"`
		User            string `yaml:"user"`
		Password        string `yaml:"password"`
		Name            string `yaml:"name"`
		MaxIdleConns    int    `yaml:"max_idle_conns"`
		MaxOpenConns    int    `yaml:"max_open_conns"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // seconds
	} `yaml:"database"`

	Redis struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		PoolSize int    `yaml:"pool_size"`
	} `yaml:"redis"`

	JWT struct {
		Secret    string        `yaml:"secret"`
		ExpiresIn time.Duration `yaml:"expires_in"`
	} `yaml:"jwt"`

	CORS struct {
		AllowOrigins string `yaml:"allow_origins"`
	} `yaml:"cors"`

	Storage struct {
		Enabled         bool   `yaml:"enabled"`
		Endpoint        string `yaml:"endpoint"`
		Region          string `yaml:"region"`
		AccessKeyID     string `yaml:"access_key_id"`
		SecretAccessKey string `yaml:"secret_access_key"`
		Bucket          string `yaml:"bucket"`
		CDNURL          string `yaml:"cdn_url"`
		BasePath        string `yaml:"base_path"`
		ForcePathStyle  bool   `yaml:"force_path_style"`
		MaxUploadSize   int64  `yaml:"max_upload_size"` // bytes
	} `yaml:"storage"`

	Audit struct {
		Enabled  bool   `yaml:"enabled"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Database string `yaml:"database"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
	} `yaml:"audit"`

	Analytics struct {
		// CountUntargetedClicks accepts click events without a resolvable
		// link or product target, counting them toward total_interactions
		// only. When false such events are rejected.
		CountUntargetedClicks bool `yaml:"count_untargeted_clicks"`
	} `yaml:"analytics"`

	RateLimit struct {
		RequestsPerMinute int `yaml:"requests_per_minute"`
	} `yaml:"rate_limit"`
}

// Load reads and parses a YAML config file, expanding ${ENV_VAR} references
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := defaultConfig()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.App.Env = "local"
	cfg.App.Port = 8080
	cfg.Database.Port = 3306
	cfg.Database.MaxIdleConns = 10
	cfg.Database.MaxOpenConns = 100
	cfg.Database.ConnMaxLifetime = 300
	cfg.Redis.Port = 6379
	cfg.Redis.PoolSize = 10
	cfg.JWT.ExpiresIn = 24 * time.Hour
	cfg.Storage.MaxUploadSize = 5 << 20
	cfg.Analytics.CountUntargetedClicks = true
	cfg.RateLimit.RequestsPerMinute = 120
	return cfg
}

// IsDevelopment reports whether the app runs in a development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "local" || c.App.Env == "dev" || c.App.Env == "development"
}

// DSN builds the MySQL DSN
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Name)
}

// LogResolved logs the effective configuration without secrets
func LogResolved(c *Config) {
	pkglogger.GetLogger().Info().
		Str("env", c.App.Env).
		Int("port", c.App.Port).
		Str("db_host", c.Database.Host).
		Str("db_name", c.Database.Name).
		Str("redis_host", c.Redis.Host).
		Bool("storage_enabled", c.Storage.Enabled).
		Bool("audit_enabled", c.Audit.Enabled).
		Bool("count_untargeted_clicks", c.Analytics.CountUntargetedClicks).
		Msg("config loaded")
}
