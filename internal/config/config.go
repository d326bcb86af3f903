// Package config provides configuration loading for the three sport-log
// binaries. Each service reads its own TOML file (§6 "Configuration files,
// TOML, per service") via viper, with environment-variable overrides for
// container deployment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig is cmd/server's configuration (§6): admin_password,
// database_url, binding, self_registration, ap_self_registration.
type ServerConfig struct {
	AdminPassword      string `mapstructure:"admin_password"`
	DatabaseURL        string `mapstructure:"database_url"`
	Binding            string `mapstructure:"binding"`
	SelfRegistration   bool   `mapstructure:"self_registration"`
	APSelfRegistration bool   `mapstructure:"ap_self_registration"`

	Database DatabasePoolConfig `mapstructure:"database_pool"`
	Log      LogConfig          `mapstructure:"log"`
}

// SchedulerConfig is cmd/scheduler's configuration (§6): admin_password,
// server_url, garbage_collection_min_days.
type SchedulerConfig struct {
	AdminPassword            string `mapstructure:"admin_password"`
	ServerURL                string `mapstructure:"server_url"`
	GarbageCollectionMinDays uint32 `mapstructure:"garbage_collection_min_days"`

	Log LogConfig `mapstructure:"log"`
}

// ProviderConfig is a concrete action-provider binary's configuration (§6):
// password (the provider's own), server_url. Provider credentials for
// third-party platforms are never part of this file — they live as
// PlatformCredential rows fetched per user from the server.
type ProviderConfig struct {
	Name      string `mapstructure:"name"`
	Password  string `mapstructure:"password"`
	ServerURL string `mapstructure:"server_url"`

	Log LogConfig `mapstructure:"log"`
}

// DatabasePoolConfig mirrors the pgxpool knobs the server's connection pool
// exposes; database_url alone is enough to connect, these only tune it.
type DatabasePoolConfig struct {
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
}

// LogConfig contains logging settings, shared across all three binaries.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

func newViper(serviceName string) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/sport-log-" + serviceName)
	v.SetEnvPrefix(strings.ToUpper(serviceName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only answers for keys viper already knows, and Unmarshal
	// only walks known keys, so the keys without a default are bound here.
	for _, key := range []string{"admin_password", "database_url", "server_url", "name", "password"} {
		_ = v.BindEnv(key)
	}
	return v
}

// LoadServer reads the server's TOML configuration.
func LoadServer() (*ServerConfig, error) {
	v := newViper("server")
	v.SetDefault("binding", "0.0.0.0:8000")
	v.SetDefault("self_registration", true)
	v.SetDefault("ap_self_registration", true)
	v.SetDefault("database_pool.max_conns", 20)
	v.SetDefault("database_pool.min_conns", 2)
	v.SetDefault("database_pool.max_conn_lifetime", "1h")
	v.SetDefault("database_pool.max_conn_idle_time", "10m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Validate checks for critical configuration errors that should abort
// startup (§6 "Services exit ... non-zero on fatal configuration ... errors").
func (c *ServerConfig) Validate() error {
	if c.AdminPassword == "" {
		return fmt.Errorf("admin_password must not be empty")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("database_url must not be empty")
	}
	return nil
}

// LoadScheduler reads the scheduler's TOML configuration.
func LoadScheduler() (*SchedulerConfig, error) {
	v := newViper("scheduler")
	v.SetDefault("garbage_collection_min_days", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg SchedulerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Validate checks for critical configuration errors.
func (c *SchedulerConfig) Validate() error {
	if c.AdminPassword == "" {
		return fmt.Errorf("admin_password must not be empty")
	}
	if c.ServerURL == "" {
		return fmt.Errorf("server_url must not be empty")
	}
	return nil
}

// LoadProvider reads an action-provider binary's TOML configuration.
func LoadProvider(serviceName string) (*ProviderConfig, error) {
	v := newViper(serviceName)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg ProviderConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Validate checks for critical configuration errors.
func (c *ProviderConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if c.Password == "" {
		return fmt.Errorf("password must not be empty")
	}
	if c.ServerURL == "" {
		return fmt.Errorf("server_url must not be empty")
	}
	return nil
}
