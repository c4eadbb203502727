// Package config provides application configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers accepted in storage.driver.
const (
	DriverMemory   = "memory"
	DriverBolt     = "bolt"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Worker   WorkerConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port          int  `mapstructure:"port"`
	ServeSwagger  bool `mapstructure:"serve_swagger"`
	ServeAsynqmon bool `mapstructure:"serve_asynqmon"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// StorageConfig selects the durable slot backing the reference store.
type StorageConfig struct {
	Driver   string `mapstructure:"driver"`
	SlotKey  string `mapstructure:"slot_key"`
	BoltPath string `mapstructure:"bolt_path"`
	AutoInit bool   `mapstructure:"auto_init"` // Initialize an empty store on serve when the slot is empty.
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	Name               string `mapstructure:"name"`
	SSLMode            string `mapstructure:"sslmode"`
	MaxOpenConns       int    `mapstructure:"max_open_conns"`
	MaxIdleConns       int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSec int    `mapstructure:"conn_max_lifetime_sec"`
	DSN                string
}

// RedisConfig holds connection settings for both Redis instances.
type RedisConfig struct {
	StateAddr string `mapstructure:"state_addr"` // Redis instance for the state slot (driver=redis).
	AsynqAddr string `mapstructure:"asynq_addr"` // Redis instance for the Asynq task queue (worker.enabled).
}

// WorkerConfig holds background worker and task queue settings.
type WorkerConfig struct {
	Enabled          bool `mapstructure:"enabled"`
	Concurrency      int  `mapstructure:"concurrency"`
	MaxRetry         int  `mapstructure:"max_retry"`
	TimeoutSec       int  `mapstructure:"timeout_sec"`
	CheckIntervalSec int  `mapstructure:"check_interval_sec"`
}

// LoadConfig reads configuration from the given file (or the default search paths when
// empty), environment variables, and defaults.
func LoadConfig(path string) (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file found or error loading it: %v\n", err)
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("./internal/config")
	}

	v.SetEnvPrefix("REFDATA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if path != "" {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		// It's okay if no config file, we have defaults and env
		fmt.Printf("Config file not found: %v\n", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Database.MaxOpenConns <= 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns <= 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetimeSec <= 0 {
		cfg.Database.ConnMaxLifetimeSec = 300
	}

	cfg.Database.DSN = fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Database.User, cfg.Database.Password,
		cfg.Database.Host, cfg.Database.Port,
		cfg.Database.Name, cfg.Database.SSLMode)

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.serve_swagger", true)
	v.SetDefault("server.serve_asynqmon", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("storage.driver", DriverBolt)
	v.SetDefault("storage.slot_key", "config")
	v.SetDefault("storage.bolt_path", "refdata.db")
	v.SetDefault("storage.auto_init", true)
	v.SetDefault("database.host", "db")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "refdatadb")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_sec", 300)
	v.SetDefault("redis.state_addr", "redis_state:6379")
	v.SetDefault("redis.asynq_addr", "redis_asynq:6380")
	v.SetDefault("worker.enabled", false)
	v.SetDefault("worker.concurrency", 1)
	v.SetDefault("worker.max_retry", 3)
	v.SetDefault("worker.timeout_sec", 30)
	v.SetDefault("worker.check_interval_sec", 5)
}

// Validate checks that all required configuration fields are set and valid.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be positive, got %d", c.Server.Port))
	}

	if c.Storage.SlotKey == "" {
		errs = append(errs, fmt.Errorf("storage.slot_key is required"))
	}
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverBolt:
		if c.Storage.BoltPath == "" {
			errs = append(errs, fmt.Errorf("storage.bolt_path is required for the bolt driver"))
		}
	case DriverRedis:
		if c.Redis.StateAddr == "" {
			errs = append(errs, fmt.Errorf("redis.state_addr is required for the redis driver (set REFDATA_REDIS_STATE_ADDR)"))
		}
	case DriverPostgres:
		errs = append(errs, c.Database.validate()...)
	default:
		errs = append(errs, fmt.Errorf("storage.driver must be one of %s, %s, %s, %s, got %q",
			DriverMemory, DriverBolt, DriverRedis, DriverPostgres, c.Storage.Driver))
	}

	if c.Worker.Enabled {
		if c.Redis.AsynqAddr == "" {
			errs = append(errs, fmt.Errorf("redis.asynq_addr is required when worker.enabled (set REFDATA_REDIS_ASYNQ_ADDR)"))
		}
		if c.Worker.Concurrency <= 0 {
			errs = append(errs, fmt.Errorf("worker.concurrency must be positive, got %d", c.Worker.Concurrency))
		}
		if c.Worker.MaxRetry < 0 {
			errs = append(errs, fmt.Errorf("worker.max_retry must be non-negative, got %d", c.Worker.MaxRetry))
		}
		if c.Worker.TimeoutSec <= 0 {
			errs = append(errs, fmt.Errorf("worker.timeout_sec must be positive, got %d", c.Worker.TimeoutSec))
		}
		if c.Worker.CheckIntervalSec <= 0 {
			errs = append(errs, fmt.Errorf("worker.check_interval_sec must be positive, got %d", c.Worker.CheckIntervalSec))
		}
	}

	return errors.Join(errs...)
}

func (d *DatabaseConfig) validate() []error {
	var errs []error
	if d.Host == "" {
		errs = append(errs, fmt.Errorf("database.host is required"))
	}
	if d.Port <= 0 {
		errs = append(errs, fmt.Errorf("database.port must be positive, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, fmt.Errorf("database.user is required"))
	}
	if d.Name == "" {
		errs = append(errs, fmt.Errorf("database.name is required"))
	}
	return errs
}
