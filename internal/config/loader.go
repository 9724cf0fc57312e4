package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix for all service settings.
const envPrefix = "MOLSCOPE"

// configKeys lists every settable key. Registering them with a zero default
// makes viper aware of the keys, which is what lets AutomaticEnv resolve
// MOLSCOPE_* variables during Unmarshal even when no config file is read.
var configKeys = []string{
	"server.port", "server.mode", "server.read_timeout", "server.write_timeout",
	"server.max_upload_size", "server.shutdown_timeout",
	"log.level", "log.format", "log.output_paths",
	"postgres.host", "postgres.port", "postgres.user", "postgres.password",
	"postgres.db_name", "postgres.ssl_mode", "postgres.max_conns",
	"postgres.min_conns", "postgres.conn_max_lifetime", "postgres.migrations_path",
	"redis.addr", "redis.password", "redis.db", "redis.pool_size",
	"redis.dial_timeout", "redis.read_timeout", "redis.write_timeout",
	"redis.default_ttl", "redis.key_prefix",
	"minio.endpoint", "minio.access_key_id", "minio.secret_access_key",
	"minio.bucket", "minio.use_ssl", "minio.region",
	"examples.dir", "examples.default_name", "examples.fetch_base_url",
	"examples.auto_fetch", "examples.watch",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range configKeys {
		v.SetDefault(key, nil)
	}
	return v
}

// Load reads the YAML file at configPath, merges MOLSCOPE_* environment
// overrides, applies defaults for unset fields, and validates the result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}
	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from MOLSCOPE_* environment
// variables with no config file required — the preferred strategy for
// containerised deployments.
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// Watch monitors configPath and invokes onChange with the newly parsed
// Config whenever the file changes on disk. Intended for hot-reloading
// non-critical settings such as log level; callers are responsible for
// applying only the safe subset of changes at runtime. If a change fails
// to parse or validate, onChange is not called.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)
	_ = v.ReadInConfig()

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			return
		}
		onChange(cfg)
	})
}
