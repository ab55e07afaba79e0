package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Log       LogConfig       `mapstructure:"log"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// JWTConfig carries the signing key set. Keys maps a key identifier to its
// secret; ActiveKID names the key used for newly issued tokens. Old keys stay
// in the map so tokens signed before a rotation still verify.
type JWTConfig struct {
	Keys      map[string]string `mapstructure:"keys"`
	ActiveKID string            `mapstructure:"active_kid"`
	Timeout   time.Duration     `mapstructure:"timeout"`
}

type RedisConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Addr         string `mapstructure:"addr"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	PoolSize     int    `mapstructure:"pool_size"`
	DialTimeout  int    `mapstructure:"dial_timeout"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	PoolTimeout  int    `mapstructure:"pool_timeout"`
}

type RateLimitConfig struct {
	Requests int64         `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

func LoadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	setDefaults()

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("config file not found, using defaults and environment variables")
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Println("config loaded successfully")
	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("app.name", "user-auth-api")
	viper.SetDefault("app.port", "3001")
	viper.SetDefault("app.mode", "debug")

	viper.SetDefault("log.level", "info")

	viper.SetDefault("jwt.timeout", 24*time.Hour)
	viper.SetDefault("jwt.active_kid", "v1")

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.pool_size", 10)
	viper.SetDefault("redis.dial_timeout", 10)
	viper.SetDefault("redis.read_timeout", 30)
	viper.SetDefault("redis.write_timeout", 30)
	viper.SetDefault("redis.pool_timeout", 30)

	viper.SetDefault("rate_limit.requests", 10)
	viper.SetDefault("rate_limit.window", 5*time.Second)
}

func validateConfig(cfg *Config) error {
	if cfg.App.Name == "" {
		return fmt.Errorf("app name cannot be empty")
	}
	if cfg.App.Port == "" {
		return fmt.Errorf("app port cannot be empty")
	}

	if len(cfg.JWT.Keys) == 0 {
		return fmt.Errorf("jwt keys cannot be empty")
	}
	if cfg.JWT.ActiveKID == "" {
		return fmt.Errorf("jwt active_kid cannot be empty")
	}
	secret, ok := cfg.JWT.Keys[cfg.JWT.ActiveKID]
	if !ok {
		return fmt.Errorf("jwt active_kid %q not present in jwt keys", cfg.JWT.ActiveKID)
	}
	if len(secret) < 32 {
		return fmt.Errorf("jwt signing key %q must be at least 32 characters", cfg.JWT.ActiveKID)
	}
	if cfg.JWT.Timeout <= 0 {
		return fmt.Errorf("jwt timeout must be positive")
	}

	if cfg.Redis.Enabled && cfg.Redis.Addr == "" {
		return fmt.Errorf("redis address cannot be empty when redis is enabled")
	}

	if cfg.RateLimit.Requests <= 0 {
		return fmt.Errorf("rate limit requests must be positive")
	}
	if cfg.RateLimit.Window <= 0 {
		return fmt.Errorf("rate limit window must be positive")
	}
	return nil
}
