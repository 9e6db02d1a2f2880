// FilePath: internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Fitbit     FitbitConfig
	Ingest     IngestConfig
	Redis      RedisConfig
	Monitoring MonitoringConfig
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	TimescaleDB  PostgresConfig `mapstructure:"timescaledb"`
	QueryTimeout time.Duration  `mapstructure:"query_timeout"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// FitbitConfig describes the device-data source. When Synthetic is set,
// no authentication happens and a generated data source is used instead
// of the Fitbit Web API.
type FitbitConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	ClientID     string        `mapstructure:"client_id"`
	AccessToken  string        `mapstructure:"access_token"`
	Synthetic    bool          `mapstructure:"synthetic"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// IngestConfig configures the daily ingestion job.
type IngestConfig struct {
	CheckpointPath string        `mapstructure:"checkpoint_path"`
	StoreTimeout   time.Duration `mapstructure:"store_timeout"`
}

type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type MonitoringConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// Load initializes configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetEnvPrefix("FITBIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Load config file if exists
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")
	viper.SetDefault("server.shutdown_timeout", "30s")

	// Database defaults
	viper.SetDefault("database.timescaledb.port", 5432)
	viper.SetDefault("database.timescaledb.sslmode", "disable")
	viper.SetDefault("database.query_timeout", "10s")

	// Fitbit defaults
	viper.SetDefault("fitbit.base_url", "https://api.fitbit.com")
	viper.SetDefault("fitbit.fetch_timeout", "30s")

	// Ingest defaults
	viper.SetDefault("ingest.checkpoint_path", "./data/ingestion_state/last_run.json")
	viper.SetDefault("ingest.store_timeout", "60s")

	// Redis defaults
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.cache_ttl", "60s")

	// Monitoring defaults
	viper.SetDefault("monitoring.log_level", "info")
}

func validateConfig(config *Config) error {
	// For now, just check required fields are not empty
	if config.Database.TimescaleDB.Host == "" {
		return fmt.Errorf("timescaledb host is required")
	}
	if config.Fitbit.ClientID == "" {
		return fmt.Errorf("fitbit client_id is required")
	}
	if !config.Fitbit.Synthetic && config.Fitbit.AccessToken == "" {
		return fmt.Errorf("fitbit access_token is required outside synthetic mode")
	}
	if config.Ingest.CheckpointPath == "" {
		return fmt.Errorf("ingest checkpoint_path is required")
	}
	return nil
}
