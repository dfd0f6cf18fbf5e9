package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/tdpro/backend/internal/currency"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	RateLimit RateLimitConfig
	Pricing   PricingConfig
	Receipt   ReceiptConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StorageConfig selects the persistence medium
type StorageConfig struct {
	Type     string        `mapstructure:"type"` // "memory", "file" or "redis"
	Dir      string        `mapstructure:"dir"`
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
	Burst int `mapstructure:"burst"`
}

// PricingConfig holds display and checkout pricing
type PricingConfig struct {
	DefaultRegion string  `mapstructure:"default_region"`
	TaxRate       float64 `mapstructure:"tax_rate"`
	FlatShipping  float64 `mapstructure:"flat_shipping"`
}

// ReceiptConfig configures the checkout forward. An empty ForwardURL keeps receipts local.
type ReceiptConfig struct {
	ForwardURL string        `mapstructure:"forward_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/tdpro/")

	// Environment variable settings
	v.SetEnvPrefix("TDPRO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Storage defaults
	v.SetDefault("storage.type", "memory")
	v.SetDefault("storage.dir", "./data")
	v.SetDefault("storage.redis_url", "")
	v.SetDefault("storage.ttl", "720h") // 30 days

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)
	v.SetDefault("ratelimit.burst", 20)

	// Pricing defaults
	v.SetDefault("pricing.default_region", currency.Baseline)
	v.SetDefault("pricing.tax_rate", 0.07)
	v.SetDefault("pricing.flat_shipping", 9.99)

	// Receipt defaults
	v.SetDefault("receipt.forward_url", "")
	v.SetDefault("receipt.timeout", "10s")

	v.SetDefault("log.level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.Storage.Type {
	case "memory":
	case "file":
		if config.Storage.Dir == "" {
			return fmt.Errorf("storage dir is required when storage type is 'file'")
		}
	case "redis":
		if config.Storage.RedisURL == "" {
			return fmt.Errorf("Redis URL is required when storage type is 'redis'")
		}
	default:
		return fmt.Errorf("storage type must be 'memory', 'file' or 'redis', got: %s", config.Storage.Type)
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("ratelimit per_ip must be positive, got: %d", config.RateLimit.PerIP)
	}

	if config.Pricing.TaxRate < 0 {
		return fmt.Errorf("tax rate must not be negative, got: %v", config.Pricing.TaxRate)
	}
	if config.Pricing.FlatShipping < 0 {
		return fmt.Errorf("flat shipping must not be negative, got: %v", config.Pricing.FlatShipping)
	}

	config.Pricing.DefaultRegion = strings.ToUpper(config.Pricing.DefaultRegion)
	if !currency.Supported(config.Pricing.DefaultRegion) {
		return fmt.Errorf("unsupported default region: %s", config.Pricing.DefaultRegion)
	}

	return nil
}
