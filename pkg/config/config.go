package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates every runtime setting of the service. All values come
// from the environment; Load never fails, missing variables fall back to
// development defaults.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Vision   VisionConfig
	Notify   NotifyConfig
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port         int
	BodyLimit    int
	CORSOrigins  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig configures the postgres connection pool.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN renders the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// RedisConfig configures the redis client used for the extraction result cache.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

// Address returns host:port.
func (r RedisConfig) Address() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// StorageConfig configures where uploaded scans live.
type StorageConfig struct {
	Mode      string // "local" or "s3"
	LocalDir  string
	AWSRegion string
	AWSBucket string
}

// VisionConfig configures image normalization and provider dispatch.
type VisionConfig struct {
	MaxImageBytes  int64
	ContrastFactor float64
	DownscaleStep  float64
	DownscaleFloor float64
	MinDimension   int
	RasterDPI      int
	CallTimeout    time.Duration
	Providers      []string // enabled provider names, also write-back precedence
}

// NotifyConfig configures contact-inquiry notifications.
type NotifyConfig struct {
	Backend   string // "console" or "ses"
	SESSender string
	SESTo     []string
	AWSRegion string
}

// Load reads the full configuration from the environment.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         GetEnvInt("PORT", 8080),
			BodyLimit:    GetEnvInt("BODY_LIMIT_BYTES", 25*1024*1024),
			CORSOrigins:  GetEnv("CORS_ORIGINS", "*"),
			ReadTimeout:  GetEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: GetEnvDuration("SERVER_WRITE_TIMEOUT", 5*time.Minute),
		},
		Database: DatabaseConfig{
			Host:            GetEnv("DB_HOST", "localhost"),
			Port:            GetEnvInt("DB_PORT", 5432),
			User:            GetEnv("DB_USER", "casedesk"),
			Password:        GetEnv("DB_PASSWORD", "casedesk"),
			Name:            GetEnv("DB_NAME", "casedesk"),
			SSLMode:         GetEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    GetEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    GetEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: GetEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Host:     GetEnv("REDIS_HOST", "localhost"),
			Port:     GetEnvInt("REDIS_PORT", 6379),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetEnvInt("REDIS_DB", 0),
			TTL:      GetEnvDuration("REDIS_RESULT_TTL", 2*time.Hour),
		},
		Storage: StorageConfig{
			Mode:      GetEnv("STORAGE_MODE", "local"),
			LocalDir:  GetEnv("UPLOAD_DIR", "./uploads"),
			AWSRegion: GetEnv("AWS_REGION", "us-east-1"),
			AWSBucket: GetEnv("AWS_BUCKET", "casedesk-uploads"),
		},
		Vision: VisionConfig{
			MaxImageBytes:  int64(GetEnvInt("VISION_MAX_IMAGE_BYTES", 5*1024*1024)),
			ContrastFactor: GetEnvFloat("VISION_CONTRAST_FACTOR", 1.5),
			DownscaleStep:  GetEnvFloat("VISION_DOWNSCALE_STEP", 0.05),
			DownscaleFloor: GetEnvFloat("VISION_DOWNSCALE_FLOOR", 0.1),
			MinDimension:   GetEnvInt("VISION_MIN_DIMENSION", 100),
			RasterDPI:      GetEnvInt("VISION_RASTER_DPI", 200),
			CallTimeout:    GetEnvDuration("VISION_CALL_TIMEOUT", 2*time.Minute),
			Providers:      GetEnvStringSlice("VISION_PROVIDERS", []string{"anthropic", "openai", "gemini"}),
		},
		Notify: NotifyConfig{
			Backend:   GetEnv("NOTIFY_BACKEND", "console"),
			SESSender: GetEnv("NOTIFY_SES_SENDER", ""),
			SESTo:     GetEnvStringSlice("NOTIFY_SES_TO", nil),
			AWSRegion: GetEnv("AWS_REGION", "us-east-1"),
		},
	}
}

// GetEnv returns the value of key or fallback when unset.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetEnvInt returns the integer value of key or fallback.
func GetEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// GetEnvFloat returns the float value of key or fallback.
func GetEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

// GetEnvDuration returns the duration value of key or fallback.
func GetEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// GetEnvStringSlice returns the comma-separated values of key or fallback.
func GetEnvStringSlice(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
