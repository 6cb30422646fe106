package config

import (
	"fmt"
	"math/big"
	"os"

	"github.com/creasty/defaults"
	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DevChainConfig configures the in-memory wallet and chain served by
// cmd/devwallet.
type DevChainConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`

	ChainID       uint64 `yaml:"chain_id" default:"1337" validate:"gt=0"`
	BridgeAddress string `yaml:"bridge_address" validate:"required"`
	BridgeFeeWei  string `yaml:"bridge_fee_wei" default:"1000000000000000"`
	GasPriceWei   string `yaml:"gas_price_wei" default:"1000000000"`
	GasLimit      uint64 `yaml:"gas_limit" default:"300000"`

	// RejectAccountRequests makes eth_requestAccounts fail with code 4001.
	RejectAccountRequests bool `yaml:"reject_account_requests"`

	Accounts []DevAccountConfig `yaml:"accounts" validate:"min=1,dive"`
	Tokens   []DevTokenConfig   `yaml:"tokens" validate:"dive"`
}

// DevAccountConfig is an account the dev wallet can sign for.
type DevAccountConfig struct {
	PrivateKey string `yaml:"private_key" validate:"required"`
}

// DevTokenConfig is an ERC-20 token registered on the dev bridge.
type DevTokenConfig struct {
	Symbol   string `yaml:"symbol" validate:"required"`
	Address  string `yaml:"address" validate:"required"`
	Decimals uint8  `yaml:"decimals" default:"18"`
	// Balances maps holder address to an amount in the token's smallest unit.
	Balances map[string]string `yaml:"balances"`
}

// LoadDevChain loads the dev chain configuration from file.
func LoadDevChain(configPath string) (*DevChainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg DevChainConfig
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply config defaults: %w", err)
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	for i := range cfg.Tokens {
		if err := defaults.Set(&cfg.Tokens[i]); err != nil {
			return nil, fmt.Errorf("failed to apply token defaults: %w", err)
		}
	}

	if err := validateDevChain(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func validateDevChain(cfg *DevChainConfig) error {
	if err := validator.New().Struct(cfg); err != nil {
		return err
	}
	if !common.IsHexAddress(cfg.BridgeAddress) {
		return fmt.Errorf("bridge_address is not a hex address: %q", cfg.BridgeAddress)
	}
	for _, field := range []struct{ name, value string }{
		{"bridge_fee_wei", cfg.BridgeFeeWei},
		{"gas_price_wei", cfg.GasPriceWei},
	} {
		if _, ok := new(big.Int).SetString(field.value, 10); !ok {
			return fmt.Errorf("%s is not an integer: %q", field.name, field.value)
		}
	}
	for _, t := range cfg.Tokens {
		if !common.IsHexAddress(t.Address) {
			return fmt.Errorf("tokens[%s].address is not a hex address: %q", t.Symbol, t.Address)
		}
		for holder, amount := range t.Balances {
			if !common.IsHexAddress(holder) {
				return fmt.Errorf("tokens[%s].balances: %q is not a hex address", t.Symbol, holder)
			}
			if _, ok := new(big.Int).SetString(amount, 10); !ok {
				return fmt.Errorf("tokens[%s].balances[%s] is not an integer: %q", t.Symbol, holder, amount)
			}
		}
	}
	return nil
}
