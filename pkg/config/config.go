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

type Config struct {
	Env  string
	Port int

	Upstream      UpstreamConfig
	Redis         RedisConfig
	Session       SessionConfig
	ViewState     ViewStateConfig
	References    ReferencesConfig
	Notifications NotificationsConfig
	Uploads       UploadsConfig
	CORS          CORSConfig
	Log           LogConfig
}

// UpstreamConfig points the portal at the phlebotomy API it fronts.
type UpstreamConfig struct {
	BaseURL       string
	APIPrefix     string
	AssetBaseURL  string
	Timeout       time.Duration
	HealthURL     string
	HealthTimeout time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// SessionConfig controls the portal session cookie and the sealed credential store.
type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
}

// ViewStateConfig bounds the per-session list view state held in memory.
type ViewStateConfig struct {
	Size int
	TTL  time.Duration
}

// ReferencesConfig tunes caching of employee and laboratory lookups.
type ReferencesConfig struct {
	CacheTTL time.Duration
}

// NotificationsConfig sizes the background mark-as-read worker.
type NotificationsConfig struct {
	Workers    int
	Retries    int
	RetryDelay time.Duration
}

// UploadsConfig validates files before they are forwarded to the API.
type UploadsConfig struct {
	MaxFileSizeBytes int64
	ImageMIMEs       []string
	DocumentMIMEs    []string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
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

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Upstream = UpstreamConfig{
		BaseURL:       strings.TrimRight(v.GetString("UPSTREAM_BASE_URL"), "/"),
		APIPrefix:     "/" + strings.Trim(v.GetString("UPSTREAM_API_PREFIX"), "/"),
		AssetBaseURL:  strings.TrimRight(v.GetString("ASSET_BASE_URL"), "/"),
		Timeout:       parseDuration(v.GetString("UPSTREAM_TIMEOUT"), 10*time.Second),
		HealthURL:     v.GetString("UPSTREAM_HEALTH_URL"),
		HealthTimeout: parseDuration(v.GetString("UPSTREAM_HEALTH_TIMEOUT"), 2*time.Second),
	}
	if cfg.Upstream.AssetBaseURL == "" {
		cfg.Upstream.AssetBaseURL = cfg.Upstream.BaseURL
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Session = SessionConfig{
		Secret:       v.GetString("SESSION_SECRET"),
		TTL:          parseDuration(v.GetString("SESSION_TTL"), 24*time.Hour),
		CookieName:   v.GetString("SESSION_COOKIE_NAME"),
		CookieSecure: v.GetBool("SESSION_COOKIE_SECURE"),
	}

	viewSize := v.GetInt("VIEW_STATE_SIZE")
	if viewSize <= 0 {
		viewSize = 1024
	}
	cfg.ViewState = ViewStateConfig{
		Size: viewSize,
		TTL:  parseDuration(v.GetString("VIEW_STATE_TTL"), 30*time.Minute),
	}

	cfg.References = ReferencesConfig{
		CacheTTL: parseDuration(v.GetString("REFERENCE_CACHE_TTL"), 5*time.Minute),
	}

	cfg.Notifications = NotificationsConfig{
		Workers:    v.GetInt("NOTIFICATION_WORKERS"),
		Retries:    v.GetInt("NOTIFICATION_RETRIES"),
		RetryDelay: parseDuration(v.GetString("NOTIFICATION_RETRY_DELAY"), 2*time.Second),
	}

	maxUploadSize := v.GetInt64("UPLOAD_MAX_FILE_SIZE")
	if maxUploadSize <= 0 {
		maxUploadSize = 5 * 1024 * 1024
	}
	cfg.Uploads = UploadsConfig{
		MaxFileSizeBytes: maxUploadSize,
		ImageMIMEs:       splitAndTrim(v.GetString("UPLOAD_IMAGE_MIME_TYPES")),
		DocumentMIMEs:    splitAndTrim(v.GetString("UPLOAD_DOCUMENT_MIME_TYPES")),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg
}

// BaseAPIURL joins the upstream base URL with its API prefix.
func (c UpstreamConfig) BaseAPIURL() string {
	if c.APIPrefix == "/" {
		return c.BaseURL
	}
	return c.BaseURL + c.APIPrefix
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)

	v.SetDefault("UPSTREAM_BASE_URL", "http://localhost:5000")
	v.SetDefault("UPSTREAM_API_PREFIX", "/api/v1")
	v.SetDefault("ASSET_BASE_URL", "")
	v.SetDefault("UPSTREAM_TIMEOUT", "10s")
	v.SetDefault("UPSTREAM_HEALTH_URL", "http://localhost:5000/")
	v.SetDefault("UPSTREAM_HEALTH_TIMEOUT", "2s")

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SESSION_SECRET", "dev_session_secret")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_COOKIE_NAME", "phlebo_session")
	v.SetDefault("SESSION_COOKIE_SECURE", false)

	v.SetDefault("VIEW_STATE_SIZE", 1024)
	v.SetDefault("VIEW_STATE_TTL", "30m")
	v.SetDefault("REFERENCE_CACHE_TTL", "5m")

	v.SetDefault("NOTIFICATION_WORKERS", 2)
	v.SetDefault("NOTIFICATION_RETRIES", 3)
	v.SetDefault("NOTIFICATION_RETRY_DELAY", "2s")

	v.SetDefault("UPLOAD_MAX_FILE_SIZE", 5*1024*1024)
	v.SetDefault("UPLOAD_IMAGE_MIME_TYPES", "image/png,image/jpeg,image/webp")
	v.SetDefault("UPLOAD_DOCUMENT_MIME_TYPES", "application/pdf,image/png,image/jpeg")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
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
