package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  user: roastarena
chain:
  rpc_url: https://testnet-rpc.monad.xyz
  contract_address: "0x1000000000000000000000000000000000000001"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, uint64(2), cfg.Chain.Confirmations)
	assert.Equal(t, 15*time.Second, cfg.Chain.RequestTimeout())
	assert.Equal(t, 5*time.Second, cfg.Indexer.PollInterval())
	assert.Equal(t, uint64(1000), cfg.Indexer.LookbackBlocks)
	assert.Equal(t, uint64(2000), cfg.Indexer.MaxWindow)
	assert.Equal(t, "roastarena", cfg.Indexer.CursorName)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 30*time.Second, cfg.Shutdown.Timeout())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  user: roastarena
chain:
  rpc_url: https://testnet-rpc.monad.xyz
  contract_address: "0x1000000000000000000000000000000000000001"
  confirmations: 5
indexer:
  poll_interval_seconds: 10
  max_window: 500
  start_height: 4200
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, uint64(5), cfg.Chain.Confirmations)
	assert.Equal(t, 10*time.Second, cfg.Indexer.PollInterval())
	assert.Equal(t, uint64(500), cfg.Indexer.MaxWindow)
	assert.Equal(t, uint64(4200), cfg.Indexer.StartHeight)
}

func TestLoad_MissingRequiredFields(t *testing.T) {
	path := writeConfig(t, `
database:
  user: roastarena
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	require.Error(t, err)
}

func TestGetConnectionString(t *testing.T) {
	cfg := &DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "u",
		Password: "p",
		Database: "d",
		SSLMode:  "disable",
	}
	assert.Equal(t, "host=localhost port=5432 user=u password=p dbname=d sslmode=disable", cfg.GetConnectionString())
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("indexer", LoggingConfig{Level: "debug", Format: "json", OutputPath: "stdout"})
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = NewLogger("indexer", LoggingConfig{Level: "warn", Format: "console"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))

	_, err = NewLogger("indexer", LoggingConfig{Level: "verbose", Format: "json"})
	require.Error(t, err)
}
