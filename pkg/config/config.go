package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	App        AppConfig
	Store      StoreConfig
	Database   DatabaseConfig
	Upload     UploadConfig
	Pagination PaginationConfig
	Logger     LoggerConfig
}

type AppConfig struct {
	Name        string
	Env         string
	Port        string
	CORSOrigins string
}

type StoreConfig struct {
	Driver string // gorm | memory
}

type DatabaseConfig struct {
	Driver          string // postgres | mysql
	URL             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime int // seconds
	LogLevel        string
}

type UploadConfig struct {
	Driver    string // local | minio
	Dir       string
	URLPrefix string
	MaxBytes  int64
	Minio     MinioConfig
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

type PaginationConfig struct {
	DefaultLimit int
	MaxLimit     int
}

type LoggerConfig struct {
	Level    string
	Encoding string
	File     string
}

// IsDevelopment reports whether the process runs with a development profile.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development" || c.App.Env == "dev"
}

func Load() *Config {
	return &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Catalog Admin v1.0"),
			Env:         getEnv("APP_ENV", "development"),
			Port:        getEnv("PORT", "5000"),
			CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("STORE_DRIVER", "gorm")),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			URL:             getEnv("DATABASE_URL", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", ""),
			User:            getEnv("DB_USER", "catalog"),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", "catalog"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvInt("DB_CONN_MAX_LIFETIME", 3600),
			LogLevel:        strings.ToLower(getEnv("DB_LOG_LEVEL", "warn")),
		},
		Upload: UploadConfig{
			Driver:    strings.ToLower(getEnv("UPLOAD_DRIVER", "local")),
			Dir:       getEnv("UPLOAD_DIR", "uploads"),
			URLPrefix: getEnv("UPLOAD_URL_PREFIX", "/uploads"),
			MaxBytes:  getEnvInt64("UPLOAD_MAX_BYTES", 5*1024*1024),
			Minio: MinioConfig{
				Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
				AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
				SecretKey: getEnv("MINIO_SECRET_KEY", ""),
				Bucket:    getEnv("MINIO_BUCKET", "catalog-images"),
				UseSSL:    getEnvBool("MINIO_USE_SSL", false),
				PublicURL: getEnv("MINIO_PUBLIC_URL", ""),
			},
		},
		Pagination: PaginationConfig{
			DefaultLimit: getEnvInt("PAGINATION_DEFAULT_LIMIT", 10),
			MaxLimit:     getEnvInt("PAGINATION_MAX_LIMIT", 100),
		},
		Logger: LoggerConfig{
			Level:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Encoding: strings.ToLower(getEnv("LOG_ENCODING", "console")),
			File:     getEnv("LOG_FILE", ""),
		},
	}
}

// Validate rejects driver names the process does not know how to build.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "gorm", "memory":
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if c.Store.Driver == "gorm" {
		switch c.Database.Driver {
		case "postgres", "mysql":
		default:
			return fmt.Errorf("unknown DB_DRIVER %q", c.Database.Driver)
		}
	}
	switch c.Upload.Driver {
	case "local", "minio":
	default:
		return fmt.Errorf("unknown UPLOAD_DRIVER %q", c.Upload.Driver)
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}
	if c.Pagination.DefaultLimit <= 0 || c.Pagination.MaxLimit < c.Pagination.DefaultLimit {
		return fmt.Errorf("invalid pagination limits: default=%d max=%d",
			c.Pagination.DefaultLimit, c.Pagination.MaxLimit)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
