package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// DefaultSessionSecret is only accepted outside production.
const DefaultSessionSecret = "dev_session_secret"

// ErrDefaultSecret is returned when production runs with DefaultSessionSecret.
var ErrDefaultSecret = errors.New("SESSION_SECRET must be set in production")

// Session store backends.
const (
	SessionStoreMemory   = "memory"
	SessionStoreRedis    = "redis"
	SessionStorePostgres = "postgres"
)

type Config struct {
	Env  string
	Port int

	API      APIConfig
	Session  SessionConfig
	Display  DisplayConfig
	Database DatabaseConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	Metrics  MetricsConfig
}

// APIConfig points the portal at the remote SIFMS API.
type APIConfig struct {
	BaseURL string
	// Timeout of zero means a call waits as long as the caller's context allows.
	Timeout time.Duration
}

// SessionConfig controls where the logged-in profile lives and how the cookie is issued.
type SessionConfig struct {
	Store        string
	Secret       string
	CookieName   string
	CookieSecure bool
	TTL          time.Duration
	// SignupMessageTTL is how long the signup status line stays on screen.
	SignupMessageTTL time.Duration
}

// DisplayConfig tunes how timestamps are shown on the dashboards.
type DisplayConfig struct {
	TimeLayout string
	Timezone   string
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
	Host     string
	Port     int
	Password string
	DB       int
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

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings that are unsafe for the configured environment.
func (c *Config) Validate() error {
	if c.Env == EnvProduction && (c.Session.Secret == "" || c.Session.Secret == DefaultSessionSecret) {
		return ErrDefaultSecret
	}
	return nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.API = APIConfig{
		BaseURL: strings.TrimRight(v.GetString("SIFMS_API_BASE_URL"), "/"),
		Timeout: parseDuration(v.GetString("SIFMS_API_TIMEOUT"), 0),
	}

	cfg.Session = SessionConfig{
		Store:            strings.ToLower(strings.TrimSpace(v.GetString("SESSION_STORE"))),
		Secret:           v.GetString("SESSION_SECRET"),
		CookieName:       v.GetString("SESSION_COOKIE_NAME"),
		CookieSecure:     v.GetBool("SESSION_COOKIE_SECURE"),
		TTL:              parseDuration(v.GetString("SESSION_TTL"), 0),
		SignupMessageTTL: parseDuration(v.GetString("SIGNUP_MESSAGE_TTL"), 5*time.Second),
	}

	cfg.Display = DisplayConfig{
		TimeLayout: v.GetString("DISPLAY_TIME_LAYOUT"),
		Timezone:   v.GetString("DISPLAY_TIMEZONE"),
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
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)

	v.SetDefault("SIFMS_API_BASE_URL", "https://isaac-it.onrender.com/api/v1/sifms")
	v.SetDefault("SIFMS_API_TIMEOUT", "0s")

	v.SetDefault("SESSION_STORE", SessionStoreMemory)
	v.SetDefault("SESSION_SECRET", DefaultSessionSecret)
	v.SetDefault("SESSION_COOKIE_NAME", "sifms_session")
	v.SetDefault("SESSION_COOKIE_SECURE", false)
	v.SetDefault("SESSION_TTL", "0s")
	v.SetDefault("SIGNUP_MESSAGE_TTL", "5s")

	v.SetDefault("DISPLAY_TIME_LAYOUT", "1/2/2006, 3:04:05 PM")
	v.SetDefault("DISPLAY_TIMEZONE", "UTC")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "sifms_portal")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("ENABLE_METRICS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
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
