package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Wallet injection kinds
const (
	WalletKindRPC   = "rpc"
	WalletKindKeyed = "keyed"
)

// Config represents the bridge client configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Wallets    []WalletConfig   `yaml:"wallets" validate:"dive"`
	Contracts  ContractsConfig  `yaml:"contracts"`
	Ethereum   EthereumConfig   `yaml:"ethereum"`
	Explorer   ExplorerConfig   `yaml:"explorer"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `yaml:"host" default:"127.0.0.1"`
	Port            int           `yaml:"port" default:"8080" validate:"gt=0,lt=65536"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"30s"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `yaml:"level" default:"info"`
	Format     string `yaml:"format" default:"json" validate:"oneof=json console"`
	OutputPath string `yaml:"output_path" default:"stdout"`
}

// MonitoringConfig contains metrics settings
type MonitoringConfig struct {
	Enabled bool `yaml:"enabled" default:"true"`
}

// WalletConfig describes one wallet injection. Exactly one of the configured
// wallets must be enabled for the provider gateway to start.
type WalletConfig struct {
	Name    string `yaml:"name" validate:"required"`
	Kind    string `yaml:"kind" default:"rpc" validate:"oneof=rpc keyed"`
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url" validate:"required"`

	// Keyed wallets only.
	PrivateKey string `yaml:"private_key"`
}

// ContractsConfig contains the static contract endpoints. The ABIs are
// compiled into pkg/ethereum/contracts.
type ContractsConfig struct {
	BridgeAddress string `yaml:"bridge_address" validate:"required"`
}

// EthereumConfig contains transaction settings for the source chain
type EthereumConfig struct {
	GasLimit        uint64        `yaml:"gas_limit" default:"300000" validate:"gt=0"`
	MaxGasPrice     string        `yaml:"max_gas_price"`
	WatchInterval   time.Duration `yaml:"watch_interval" default:"4s"`
	ReceiptInterval time.Duration `yaml:"receipt_interval" default:"2s"`
}

// ExplorerConfig contains the block explorer link prefix for transaction hashes
type ExplorerConfig struct {
	TxURL string `yaml:"tx_url" default:"https://etherscan.io/tx/"`
}

// Load loads configuration from file. ${VAR} references are expanded from
// the environment before decoding.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes, defaults and validates a YAML configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	// Defaults go in first so explicit zero values in the file (enabled: false) win.
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply config defaults: %w", err)
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	for i := range cfg.Wallets {
		if err := defaults.Set(&cfg.Wallets[i]); err != nil {
			return nil, fmt.Errorf("failed to apply wallet defaults: %w", err)
		}
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return err
	}
	if !common.IsHexAddress(cfg.Contracts.BridgeAddress) {
		return fmt.Errorf("contracts.bridge_address is not a hex address: %q", cfg.Contracts.BridgeAddress)
	}
	for _, w := range cfg.Wallets {
		if w.Kind == WalletKindKeyed && w.Enabled && w.PrivateKey == "" {
			return fmt.Errorf("wallets[%s].private_key is required for keyed wallets", w.Name)
		}
	}
	return nil
}

// EnabledWallets returns the wallet injections that are switched on.
func (c *Config) EnabledWallets() []WalletConfig {
	var out []WalletConfig
	for _, w := range c.Wallets {
		if w.Enabled {
			out = append(out, w)
		}
	}
	return out
}
