package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the full application configuration shared by the
// indexer and the API server binaries.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Chain    ChainConfig    `yaml:"chain"`
	Indexer  IndexerConfig  `yaml:"indexer"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host" default:"0.0.0.0"`
	Port int    `yaml:"port" default:"8080"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host" default:"localhost" validate:"required"`
	Port     int    `yaml:"port" default:"5432"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Database string `yaml:"database" default:"roastarena" validate:"required"`
	SSLMode  string `yaml:"ssl_mode" default:"disable"`
}

// ChainConfig contains settings for the ledger RPC endpoint and the
// arena contract whose events are indexed.
type ChainConfig struct {
	RPCURL          string `yaml:"rpc_url" validate:"required"`
	ContractAddress string `yaml:"contract_address" validate:"required"`
	// Confirmations is the trailing lag behind the reported head; the
	// engine never scans into the most recent Confirmations blocks.
	Confirmations         uint64 `yaml:"confirmations" default:"2"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds" default:"15"`
}

// RequestTimeout returns the per-RPC deadline.
func (c ChainConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// IndexerConfig contains synchronization engine settings.
type IndexerConfig struct {
	PollIntervalSeconds int `yaml:"poll_interval_seconds" default:"5"`
	// LookbackBlocks bounds how far behind head a cold start begins when
	// no cursor has been persisted yet. 0 scans from genesis.
	LookbackBlocks uint64 `yaml:"lookback_blocks" default:"1000"`
	// StartHeight, when non-zero, overrides the lookback computation on
	// cold start.
	StartHeight uint64 `yaml:"start_height"`
	// MaxWindow caps the block range of a single log query. The engine
	// shrinks below this when the provider rejects a range as too large.
	MaxWindow  uint64 `yaml:"max_window" default:"2000"`
	CursorName string `yaml:"cursor_name" default:"roastarena"`
}

// PollInterval returns the scan cadence.
func (c IndexerConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `yaml:"level" default:"info"`
	Format     string `yaml:"format" default:"json"`
	OutputPath string `yaml:"output_path" default:"stdout"`
}

// ShutdownConfig contains graceful shutdown settings
type ShutdownConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds" default:"30"`
}

// Timeout returns the graceful shutdown deadline.
func (c ShutdownConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load loads configuration from a YAML file, applies defaults and
// validates required fields.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply config defaults: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// GetConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) GetConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
