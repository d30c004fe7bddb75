package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config aggregates application settings that may be sourced from files or environment variables.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Media    MediaConfig    `mapstructure:"media"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Port         int    `mapstructure:"port"`
	CookieDomain string `mapstructure:"cookie_domain"`
}

// DatabaseConfig contains connection options for PostgreSQL.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig contains Redis connection options.
type RedisConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// MediaConfig contains connection options for the S3-compatible media store
// that backs profile photo and resume uploads.
type MediaConfig struct {
	Endpoint         string `mapstructure:"endpoint"`
	AccessKeyID      string `mapstructure:"access_key_id"`
	SecretAccessKey  string `mapstructure:"secret_access_key"`
	UseSSL           bool   `mapstructure:"use_ssl"`
	Bucket           string `mapstructure:"bucket"`
	AutoCreateBucket bool   `mapstructure:"auto_create_bucket"`
	// PublicBaseURL is the CDN origin that serves uploaded objects. Served
	// paths are shaped as <base>/<resource>/upload/<key>.
	PublicBaseURL string `mapstructure:"public_base_url"`
	// ClamdAddr enables virus scanning of uploads when non-empty.
	ClamdAddr string `mapstructure:"clamd_addr"`
}

// AuthConfig contains session-token settings. The signing secret is injected
// into the token service at construction, never read ambiently at sign time.
type AuthConfig struct {
	JWTSecret      string `mapstructure:"jwt_secret"`
	TokenTTLHours  int    `mapstructure:"token_ttl_hours"`
	InternalSecret string `mapstructure:"internal_secret"`
}

// TokenTTL returns the configured session token lifetime.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}

// DSN builds a lib/pq compatible connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

// Addr builds the host:port address for the Redis client.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Load reads configuration solely from environment variables (with optional defaults).
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", 8080)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "jobportal")
	v.SetDefault("database.user", "jobportal")
	v.SetDefault("database.password", "jobportal")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("media.endpoint", "localhost:9000")
	v.SetDefault("media.use_ssl", false)
	v.SetDefault("media.bucket", "jobportal-media")
	v.SetDefault("media.auto_create_bucket", true)
	v.SetDefault("auth.token_ttl_hours", 24)
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"api.port":                 "API_PORT",
		"api.cookie_domain":        "API_COOKIE_DOMAIN",
		"database.host":            "DATABASE_HOST",
		"database.port":            "DATABASE_PORT",
		"database.name":            "POSTGRES_DB",
		"database.user":            "POSTGRES_USER",
		"database.password":        "POSTGRES_PASSWORD",
		"database.sslmode":         "DATABASE_SSLMODE",
		"redis.host":               "REDIS_HOST",
		"redis.port":               "REDIS_PORT",
		"media.endpoint":           "MEDIA_ENDPOINT",
		"media.access_key_id":      "MEDIA_ACCESS_KEY_ID",
		"media.secret_access_key":  "MEDIA_SECRET_ACCESS_KEY",
		"media.use_ssl":            "MEDIA_USE_SSL",
		"media.bucket":             "MEDIA_BUCKET",
		"media.auto_create_bucket": "MEDIA_AUTO_CREATE_BUCKET",
		"media.public_base_url":    "MEDIA_PUBLIC_BASE_URL",
		"media.clamd_addr":         "MEDIA_CLAMD_ADDR",
		"auth.jwt_secret":          "AUTH_JWT_SECRET",
		"auth.token_ttl_hours":     "AUTH_TOKEN_TTL_HOURS",
		"auth.internal_secret":     "AUTH_INTERNAL_SECRET",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

func validate(cfg Config) error {
	if cfg.API.Port <= 0 {
		return errors.New("api port must be positive")
	}
	if cfg.Database.Host == "" {
		return errors.New("database host is required")
	}
	if cfg.Database.Port <= 0 {
		return errors.New("database port must be positive")
	}
	if cfg.Database.Name == "" {
		return errors.New("database name is required")
	}
	if cfg.Database.User == "" {
		return errors.New("database user is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("database password is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("database sslmode is required")
	}
	if cfg.Redis.Host == "" {
		return errors.New("redis host is required")
	}
	if cfg.Redis.Port <= 0 {
		return errors.New("redis port must be positive")
	}
	if cfg.Media.Endpoint == "" {
		return errors.New("media endpoint is required")
	}
	if cfg.Media.AccessKeyID == "" {
		return errors.New("media access key id is required")
	}
	if cfg.Media.SecretAccessKey == "" {
		return errors.New("media secret access key is required")
	}
	if cfg.Media.Bucket == "" {
		return errors.New("media bucket is required")
	}
	if cfg.Media.PublicBaseURL == "" {
		return errors.New("media public base url is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return errors.New("auth jwt secret is required")
	}
	if cfg.Auth.TokenTTLHours <= 0 {
		return errors.New("auth token ttl must be positive")
	}
	return nil
}
