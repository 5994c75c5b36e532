package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	Environment   string `toml:"environment"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// telemetry
	HoneycombEnabled bool   `toml:"honeycomb_enabled"`
	MetricsHost      string `toml:"metrics_host"`
	MetricsPort      int    `toml:"metrics_port"`
	// postgres
	PostgresHost     string `toml:"postgres_host"`
	PostgresPort     string `toml:"postgres_port"`
	PostgresDBName   string `toml:"postgres_db_name"`
	PostgresUser     string `toml:"postgres_user"`
	PostgresMaxConns int32  `toml:"postgres_max_conns"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// workouts
	ProjectionCacheSizeMB int      `toml:"projection_cache_size_mb"`
	ProjectionCacheTTL    Duration `toml:"projection_cache_ttl"`
	WritesPerMinute       int      `toml:"writes_per_minute"`
	SessionTTL            Duration `toml:"session_ttl"`
	AllowedOrigins        []string `toml:"allowed_origins"`
}

// Duration reads values like "10m" or "168h" from TOML strings.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

// Load decodes the TOML file at path and returns the section for env.
func Load(env, path string) (*Config, error) {
	var t Toml
	md, err := toml.DecodeFile(path, &t)
	if err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config keys: %v", undecoded)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config [%s]: %w", env, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 {
		return fmt.Errorf("port must be positive, got %d", c.Port)
	}
	if c.PostgresHost == "" || c.PostgresDBName == "" {
		return fmt.Errorf("postgres host and db name required")
	}
	if c.RedisHost == "" {
		return fmt.Errorf("redis host required")
	}
	if c.WritesPerMinute < 0 {
		return fmt.Errorf("writes per minute must not be negative, got %d", c.WritesPerMinute)
	}
	return nil
}
