package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleConfig = `
server:
  port: 9000
monitoring:
  enabled: false
wallets:
  - name: frame
    url: http://127.0.0.1:1248
    enabled: true
  - name: local
    kind: keyed
    url: http://127.0.0.1:8545
    private_key: ${TEST_BRIDGE_KEY}
contracts:
  bridge_address: "0x00000000000000000000000000000000000000b1"
ethereum:
  max_gas_price: "50000000000"
`

func TestParse_AppliesDefaultsAndOverrides(t *testing.T) {
	t.Setenv("TEST_BRIDGE_KEY", "deadbeef")

	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.False(t, cfg.Monitoring.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, uint64(300000), cfg.Ethereum.GasLimit)
	assert.Equal(t, 4*time.Second, cfg.Ethereum.WatchInterval)
	assert.Equal(t, "https://etherscan.io/tx/", cfg.Explorer.TxURL)

	require.Len(t, cfg.Wallets, 2)
	assert.Equal(t, WalletKindRPC, cfg.Wallets[0].Kind)
	assert.Equal(t, WalletKindKeyed, cfg.Wallets[1].Kind)
	assert.Equal(t, "deadbeef", cfg.Wallets[1].PrivateKey)

	enabled := cfg.EnabledWallets()
	require.Len(t, enabled, 1)
	assert.Equal(t, "frame", enabled[0].Name)
}

func TestParse_RejectsBadBridgeAddress(t *testing.T) {
	_, err := Parse([]byte(`
contracts:
  bridge_address: "not-an-address"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bridge_address")
}

func TestParse_RequiresBridgeAddress(t *testing.T) {
	_, err := Parse([]byte(`server: {port: 8080}`))
	require.Error(t, err)
}

func TestParse_RejectsUnknownWalletKind(t *testing.T) {
	_, err := Parse([]byte(`
wallets:
  - name: weird
    kind: browser
    url: http://localhost
contracts:
  bridge_address: "0x00000000000000000000000000000000000000b1"
`))
	require.Error(t, err)
}

func TestParse_KeyedWalletNeedsKey(t *testing.T) {
	_, err := Parse([]byte(`
wallets:
  - name: local
    kind: keyed
    enabled: true
    url: http://localhost:8545
contracts:
  bridge_address: "0x00000000000000000000000000000000000000b1"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "private_key")
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
contracts:
  bridge_address: "0x00000000000000000000000000000000000000b1"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Monitoring.Enabled)
	assert.Empty(t, cfg.EnabledWallets())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LoggingConfig{Level: "debug", Format: "console"}, "bridge-client")
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	_, err = NewLogger(LoggingConfig{Level: "loud", Format: "json"}, "bridge-client")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")
}

func TestNewLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")

	logger, err := NewLogger(LoggingConfig{Level: "info", Format: "console", OutputPath: path}, "devwallet")
	require.NoError(t, err)
	logger.Info("written to file")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "devwallet")
	assert.Contains(t, out, "written to file")
	assert.Contains(t, out, "INFO")
	assert.NotContains(t, out, "\x1b[", "no color codes in files")
}
