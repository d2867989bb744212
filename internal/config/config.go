package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	DSN      string
}

// CacheConfig holds result cache configuration
type CacheConfig struct {
	// TTLSeconds is the default entry lifetime
	TTLSeconds int `mapstructure:"ttl_seconds"`
	// SweepSeconds is the background reclamation interval; 0 disables it
	SweepSeconds int `mapstructure:"sweep_seconds"`
	// StatsSchedule is a cron expression for periodic stats logging
	StatsSchedule string `mapstructure:"stats_schedule"`
}

// Config holds all configuration
type Config struct {
	LogLevel string         `mapstructure:"log_level"`
	Database DatabaseConfig `mapstructure:"database"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// TTL returns the cache TTL as a duration
func (c *CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// SweepInterval returns the reclamation interval as a duration
func (c *CacheConfig) SweepInterval() time.Duration {
	return time.Duration(c.SweepSeconds) * time.Second
}

// BuildDSN builds the database connection string
func (c *Config) BuildDSN() {
	c.Database.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

// Load reads config.yaml from the working directory, applies defaults and
// environment overrides (CALCENGINE_ prefix) and builds the DSN.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("log_level", "info")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.dbname", "calcengine")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("cache.ttl_seconds", 3600)
	viper.SetDefault("cache.sweep_seconds", 600)
	viper.SetDefault("cache.stats_schedule", "@every 5m")

	viper.SetEnvPrefix("calcengine")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine: defaults and env cover everything
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	config.BuildDSN()

	return &config, nil
}
