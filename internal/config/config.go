package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Uploads  UploadsConfig  `yaml:"uploads"`
	Search   SearchConfig   `yaml:"search"`
	Cleanup  CleanupConfig  `yaml:"cleanup"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port         string   `yaml:"port"`
	AllowOrigins []string `yaml:"allow_origins"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Type     string         `yaml:"type"`
	MySQL    MySQLConfig    `yaml:"mysql"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// MySQLConfig contains MySQL connection settings
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// PostgresConfig contains PostgreSQL connection settings
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// AuthConfig contains token and login settings
type AuthConfig struct {
	JWTSecret       string `yaml:"jwt_secret"`
	TokenTTLHours   int    `yaml:"token_ttl_hours"`
	SeedUsername    string `yaml:"seed_username"`
	SeedPassword    string `yaml:"seed_password"`
	LoginPerMinute  int    `yaml:"login_per_minute"`
	LoginPerHour    int    `yaml:"login_per_hour"`
	RateLimitLogins bool   `yaml:"rate_limit_logins"`
}

// UploadsConfig contains image upload settings
type UploadsConfig struct {
	Dir       string `yaml:"dir"`
	URLPrefix string `yaml:"url_prefix"`
	MaxImages int    `yaml:"max_images"`
}

// SearchConfig contains search engine settings
type SearchConfig struct {
	Enabled     bool              `yaml:"enabled"`
	Meilisearch MeilisearchConfig `yaml:"meilisearch"`
}

// MeilisearchConfig contains Meilisearch connection settings
type MeilisearchConfig struct {
	Host   string `yaml:"host"`
	APIKey string `yaml:"api_key"`
}

// CleanupConfig contains orphaned-upload sweep settings
type CleanupConfig struct {
	DailyRunEnabled bool   `yaml:"daily_run_enabled"`
	DailyRunTime    string `yaml:"daily_run_time"`
	RetentionHours  int    `yaml:"retention_hours"`
	MaxDeletions    int    `yaml:"max_deletions"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "5000",
			AllowOrigins: []string{"http://localhost:5173"},
		},
		Database: DatabaseConfig{
			Type: "mysql",
		},
		Auth: AuthConfig{
			TokenTTLHours:   24,
			LoginPerMinute:  10,
			LoginPerHour:    60,
			RateLimitLogins: true,
		},
		Uploads: UploadsConfig{
			Dir:       "./uploads",
			URLPrefix: "/uploads",
			MaxImages: 10,
		},
		Cleanup: CleanupConfig{
			DailyRunEnabled: false,
			DailyRunTime:    "03:00",
			RetentionHours:  24,
			MaxDeletions:    1000,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(filepath string) (*Config, error) {
	// Start with default config
	config := DefaultConfig()

	// If file doesn't exist, return default config
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// TokenTTL returns the token lifetime as a duration
func (c *AuthConfig) TokenTTL() time.Duration {
	if c.TokenTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// Retention returns the cleanup retention window as a duration
func (c *CleanupConfig) Retention() time.Duration {
	if c.RetentionHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.RetentionHours) * time.Hour
}
