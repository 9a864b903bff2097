package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type ServerConfig struct {
	Address   string `json:"address"`
	JWTSecret string `json:"jwt_secret"`
	// TokenTTLHours is how long an admin session token stays valid.
	TokenTTLHours int `json:"token_ttl_hours"`
}

func (c *ServerConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.TokenTTLHours == 0 {
		c.TokenTTLHours = 72
	}
}

func (c ServerConfig) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("jwt_secret is required")
	}
	if c.TokenTTLHours < 0 {
		return errors.New("token_ttl_hours must be positive")
	}
	return nil
}

func (c ServerConfig) TokenTTL() time.Duration { return time.Duration(c.TokenTTLHours) * time.Hour }

type DatabaseConfig struct {
	URL            string `json:"url"`
	MigrationsPath string `json:"migrations_path"`
	MaxRetries     int    `json:"max_retries"`
}

func (c *DatabaseConfig) SetDefaults() {
	if c.MigrationsPath == "" {
		c.MigrationsPath = "./migrations"
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 10
	}
}

func (c DatabaseConfig) Validate() error {
	if c.URL == "" {
		return errors.New("url is required")
	}
	return nil
}

type RedisConfig struct {
	Enabled    bool   `json:"enabled"`
	Address    string `json:"address"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	DB         int    `json:"db"`
	TTLSeconds int    `json:"ttl_seconds"`
}

func (c *RedisConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = "localhost:6379"
	}
	if c.TTLSeconds == 0 {
		c.TTLSeconds = 60
	}
}

func (c RedisConfig) Validate() error {
	if c.TTLSeconds < 0 {
		return errors.New("ttl_seconds must be positive")
	}
	return nil
}

func (c RedisConfig) TTL() time.Duration { return time.Duration(c.TTLSeconds) * time.Second }

type MQTTConfig struct {
	Enabled     bool   `json:"enabled"`
	Broker      string `json:"broker"`
	ClientID    string `json:"client_id"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	TopicPrefix string `json:"topic_prefix"`
}

func (c *MQTTConfig) SetDefaults() {
	if c.Broker == "" {
		c.Broker = "tcp://localhost:1883"
	}
	if c.ClientID == "" {
		c.ClientID = "marquee"
	}
	if c.TopicPrefix == "" {
		c.TopicPrefix = "tenants"
	}
}

func (c MQTTConfig) Validate() error {
	if c.Enabled && c.Broker == "" {
		return errors.New("broker is required when mqtt is enabled")
	}
	return nil
}

type LoggingConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	Level string `json:"level"`
	// Format is "json" or "console".
	Format string `json:"format"`
}

func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "json"
	}
}

func (c LoggingConfig) Validate() error {
	switch strings.ToLower(c.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("unknown format %s", c.Format)
	}
	return nil
}

type SchedulingConfig struct {
	MaxPreviewDays int `json:"max_preview_days"`
}

func (c *SchedulingConfig) SetDefaults() {
	if c.MaxPreviewDays == 0 {
		c.MaxPreviewDays = 90
	}
}

func (c SchedulingConfig) Validate() error {
	if c.MaxPreviewDays < 1 || c.MaxPreviewDays > 366 {
		return fmt.Errorf("max_preview_days must be between 1 and 366, got %d", c.MaxPreviewDays)
	}
	return nil
}

type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

func (c *MetricsConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "/metrics"
	}
}

func (c MetricsConfig) Validate() error {
	if !strings.HasPrefix(c.Path, "/") {
		return fmt.Errorf("path must start with /, got %q", c.Path)
	}
	return nil
}
