package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"organizer-service/internal/upload"
)

const (
	UploadBackendLocal = "local"
	UploadBackendS3    = "s3"
)

type Config struct {
	ServiceName string
	Port        string
	LogLevel    slog.Level

	Database DatabaseConfig
	Upload   UploadConfig

	NatsURL      string
	OtelEndpoint string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type UploadConfig struct {
	Backend   string
	Dir       string
	PublicDir string
	S3        upload.S3Config
}

// Load reads the process environment. Call godotenv first if a .env file
// should be honoured.
func Load() (*Config, error) {
	cfg := &Config{
		ServiceName: getEnv("SERVICE_NAME", "organizer-service"),
		Port:        getEnv("APP_PORT", "8000"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnv("DB_NAME", "organizer"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Upload: UploadConfig{
			Backend:   strings.ToLower(getEnv("UPLOAD_BACKEND", UploadBackendLocal)),
			Dir:       getEnv("UPLOAD_DIR", "uploads"),
			PublicDir: getEnv("PUBLIC_DIR", "public"),
			S3: upload.S3Config{
				Endpoint:     os.Getenv("S3_ENDPOINT"),
				Region:       getEnv("AWS_REGION", "us-east-1"),
				Bucket:       os.Getenv("S3_BUCKET_NAME"),
				AccessKey:    os.Getenv("AWS_ACCESS_KEY_ID"),
				SecretKey:    os.Getenv("AWS_SECRET_ACCESS_KEY"),
				UsePathStyle: os.Getenv("S3_USE_PATH_STYLE") == "true",
			},
		},
		NatsURL:      os.Getenv("NATS_URL"),
		OtelEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	switch cfg.Upload.Backend {
	case UploadBackendLocal:
	case UploadBackendS3:
		if cfg.Upload.S3.Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET_NAME is required when UPLOAD_BACKEND=s3")
		}
	default:
		return nil, fmt.Errorf("invalid UPLOAD_BACKEND %q, expected %q or %q", cfg.Upload.Backend, UploadBackendLocal, UploadBackendS3)
	}

	return cfg, nil
}

// DSN returns the postgres URL understood by the pgx stdlib driver.
func (c *Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     c.Database.Host + ":" + c.Database.Port,
		Path:     "/" + c.Database.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.Database.SSLMode),
	}
	return u.String()
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{port: %s, db: %s@%s:%s/%s, upload: %s, nats: %t, tracing: %t}",
		c.Port, c.Database.User, c.Database.Host, c.Database.Port, c.Database.Name,
		c.Upload.Backend, c.NatsURL != "", c.OtelEndpoint != "")
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}
