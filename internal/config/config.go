// Package config defines all configuration structures for molscope. No I/O
// or parsing logic lives here — only plain data types and validation; see
// loader.go for the viper-backed loading path.
package config

import (
	"fmt"
	"time"

	"github.com/molscope/molscope/internal/infrastructure/monitoring/logging"
)

// Version is the service version reported by health endpoints and the CLI.
// Overridden at build time via -ldflags.
var Version = "dev"

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	MaxUploadSize   int64         `mapstructure:"max_upload_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// PostgresConfig holds PostgreSQL connection parameters.
type PostgresConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationsPath  string        `mapstructure:"migrations_path"`
}

// DSN returns the connection string for pgx and golang-migrate.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// RedisConfig holds Redis connection and cache parameters.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	DefaultTTL   time.Duration `mapstructure:"default_ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// MinIOConfig holds MinIO / S3-compatible object-storage parameters.
type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Bucket          string `mapstructure:"bucket"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	Region          string `mapstructure:"region"`
}

// ExamplesConfig holds the bundled example library parameters.
type ExamplesConfig struct {
	// Dir is the local directory holding bundled .pdb files.
	Dir string `mapstructure:"dir"`

	// DefaultName is the example fetched on startup when Dir is empty.
	DefaultName string `mapstructure:"default_name"`

	// FetchBaseURL is the remote file host the default example is
	// downloaded from, e.g. https://files.rcsb.org/download.
	FetchBaseURL string `mapstructure:"fetch_base_url"`

	// AutoFetch enables the startup download of DefaultName.
	AutoFetch bool `mapstructure:"auto_fetch"`

	// Watch enables the fsnotify directory watcher that refreshes the
	// example listing when files are added or removed.
	Watch bool `mapstructure:"watch"`
}

// Config is the root configuration aggregate.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      logging.Config `mapstructure:"log"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Examples ExamplesConfig `mapstructure:"examples"`
}

// Validate checks cross-field constraints after defaults are applied.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in (0, 65535], got %d", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode must be debug, release, or test, got %q", c.Server.Mode)
	}
	if c.Server.MaxUploadSize <= 0 {
		return fmt.Errorf("server.max_upload_size must be positive, got %d", c.Server.MaxUploadSize)
	}
	if c.Examples.AutoFetch && c.Examples.FetchBaseURL == "" {
		return fmt.Errorf("examples.fetch_base_url is required when examples.auto_fetch is set")
	}
	return nil
}
