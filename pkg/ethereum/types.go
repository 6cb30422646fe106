package ethereum

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/chainsafe/dero-bridge/pkg/config"
)

// ContractEndpoints is the static contract configuration. The bridge and token
// ABIs are the constants in the contracts package; only the bridge address
// varies per deployment.
type ContractEndpoints struct {
	BridgeAddress common.Address
}

// EndpointsFromConfig builds ContractEndpoints from the contracts section.
func EndpointsFromConfig(cfg config.ContractsConfig) (ContractEndpoints, error) {
	if !common.IsHexAddress(cfg.BridgeAddress) {
		return ContractEndpoints{}, fmt.Errorf("invalid bridge address: %q", cfg.BridgeAddress)
	}
	return ContractEndpoints{BridgeAddress: common.HexToAddress(cfg.BridgeAddress)}, nil
}

// Backend is what the facade needs from a wallet provider: contract calls,
// transaction submission and receipt lookups.
type Backend interface {
	bind.ContractBackend
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}
