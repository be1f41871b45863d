package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const defaultSessionSecret = "dev_session_secret"

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Storage       StorageConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	Session       SessionConfig
	CORS          CORSConfig
	Log           LogConfig
	Metrics       MetricsConfig
	Docs          DocsConfig
	Notifications NotificationConfig
}

// StorageConfig selects the blob backend that persists the collections.
type StorageConfig struct {
	Driver     string
	Dir        string
	SQLitePath string
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host      string
	Port      int
	Password  string
	DB        int
	KeyPrefix string
}

// SessionConfig signs the session tokens handed out on login.
type SessionConfig struct {
	Secret     string
	Issuer     string
	CookieName string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

// DocsConfig toggles the swagger UI outside production.
type DocsConfig struct {
	Enabled bool
}

// NotificationConfig bounds the in-process notification feed.
type NotificationConfig struct {
	FeedSize int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Storage = StorageConfig{
		Driver:     strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		Dir:        v.GetString("STORAGE_DIR"),
		SQLitePath: v.GetString("SQLITE_PATH"),
	}
	if err := validateDriver(cfg.Storage.Driver); err != nil {
		return nil, err
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:      v.GetString("REDIS_HOST"),
		Port:      v.GetInt("REDIS_PORT"),
		Password:  v.GetString("REDIS_PASSWORD"),
		DB:        v.GetInt("REDIS_DB"),
		KeyPrefix: v.GetString("REDIS_KEY_PREFIX"),
	}

	cfg.Session = SessionConfig{
		Secret:     v.GetString("SESSION_SECRET"),
		Issuer:     v.GetString("SESSION_ISSUER"),
		CookieName: v.GetString("SESSION_COOKIE_NAME"),
	}
	if err := validateSecret(cfg.Env, cfg.Session.Secret); err != nil {
		return nil, err
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}
	cfg.Docs = DocsConfig{Enabled: v.GetBool("ENABLE_DOCS")}

	feedSize := v.GetInt("NOTIFICATION_FEED_SIZE")
	if feedSize <= 0 {
		feedSize = 50
	}
	cfg.Notifications = NotificationConfig{FeedSize: feedSize}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("STORAGE_DRIVER", StorageFile)
	v.SetDefault("STORAGE_DIR", "./data")
	v.SetDefault("SQLITE_PATH", "uks.db")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "uks")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_KEY_PREFIX", "uks:")

	v.SetDefault("SESSION_SECRET", defaultSessionSecret)
	v.SetDefault("SESSION_ISSUER", "uks-api")
	v.SetDefault("SESSION_COOKIE_NAME", "uks_session")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_METRICS", true)
	v.SetDefault("ENABLE_DOCS", true)
	v.SetDefault("NOTIFICATION_FEED_SIZE", 50)
}

func validateDriver(driver string) error {
	switch driver {
	case StorageMemory, StorageFile, StorageSQLite, StoragePostgres, StorageRedis:
		return nil
	default:
		return fmt.Errorf("unknown storage driver %q", driver)
	}
}

// validateSecret refuses to sign production tokens with a blank or well-known secret.
func validateSecret(env, secret string) error {
	if env != EnvProduction {
		return nil
	}
	secret = strings.TrimSpace(secret)
	if secret == "" || secret == defaultSessionSecret {
		return errors.New("SESSION_SECRET must be set in production")
	}
	return nil
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
