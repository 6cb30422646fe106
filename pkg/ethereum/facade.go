package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	goethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/dero-bridge/pkg/app/errors"
	"github.com/chainsafe/dero-bridge/pkg/ethereum/contracts"
)

const defaultReceiptInterval = 2 * time.Second

// Facade exposes the bridge and token contract calls the orchestrator needs.
// Reads go through a provider-bound view created once; writes bind a fresh
// transactor per call because the signer may change with account switches.
//
// Every error returned is already normalized to an apperrors kind.
type Facade struct {
	backend         Backend
	bridgeAddress   common.Address
	bridge          *contracts.DeroBridgeCaller
	receiptInterval time.Duration
	logger          *zap.Logger
}

// FacadeOption configures the facade.
type FacadeOption func(*Facade)

// WithReceiptInterval sets how often Approve polls for its receipt.
func WithReceiptInterval(d time.Duration) FacadeOption {
	return func(f *Facade) {
		if d > 0 {
			f.receiptInterval = d
		}
	}
}

// WithLogger sets a custom logger for the facade.
func WithLogger(l *zap.Logger) FacadeOption {
	return func(f *Facade) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewFacade binds the read view of the bridge contract to backend.
func NewFacade(endpoints ContractEndpoints, backend Backend, opts ...FacadeOption) (*Facade, error) {
	if backend == nil {
		return nil, fmt.Errorf("nil backend")
	}
	bridge, err := contracts.NewDeroBridgeCaller(endpoints.BridgeAddress, backend)
	if err != nil {
		return nil, fmt.Errorf("failed to load bridge contract: %w", err)
	}

	f := &Facade{
		backend:         backend,
		bridgeAddress:   endpoints.BridgeAddress,
		bridge:          bridge,
		receiptInterval: defaultReceiptInterval,
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f, nil
}

// BridgeAddress is the bridge contract, which is also the allowance spender.
func (f *Facade) BridgeAddress() common.Address {
	return f.bridgeAddress
}

// BridgeFee reads the native-currency fee required by bridgeETH2DERO.
func (f *Facade) BridgeFee(ctx context.Context) (*big.Int, error) {
	fee, err := f.bridge.BridgeFee(&bind.CallOpts{Context: ctx})
	if err != nil {
		return nil, apperrors.Classify(err, "failed to read bridge fee")
	}
	return fee, nil
}

// ResolveTokenAddress maps a symbol to its token contract. A zero address
// means the bridge has no registration for the symbol.
func (f *Facade) ResolveTokenAddress(ctx context.Context, symbol string) (common.Address, error) {
	token, err := f.bridge.RegisteredSymbol(&bind.CallOpts{Context: ctx}, symbol)
	if err != nil {
		return common.Address{}, apperrors.Classify(err, fmt.Sprintf("failed to resolve token %s", symbol))
	}
	if token == (common.Address{}) {
		return common.Address{}, apperrors.UnknownSymbolError(nil,
			fmt.Sprintf("token %s is not registered on the bridge", symbol))
	}
	return token, nil
}

// Decimals reads the token's decimal precision.
func (f *Facade) Decimals(ctx context.Context, token common.Address) (uint8, error) {
	caller, err := contracts.NewERC20Caller(token, f.backend)
	if err != nil {
		return 0, apperrors.ChainCallError(err, "failed to bind token contract")
	}
	decimals, err := caller.Decimals(&bind.CallOpts{Context: ctx})
	if err != nil {
		return 0, apperrors.Classify(err, "failed to read token decimals")
	}
	return decimals, nil
}

// Allowance reads how much spender may move on behalf of owner.
func (f *Facade) Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	caller, err := contracts.NewERC20Caller(token, f.backend)
	if err != nil {
		return nil, apperrors.ChainCallError(err, "failed to bind token contract")
	}
	allowance, err := caller.Allowance(&bind.CallOpts{Context: ctx, From: owner}, owner, spender)
	if err != nil {
		return nil, apperrors.Classify(err, "failed to read allowance")
	}
	return allowance, nil
}

// Approve submits approve(spender, amount) and waits until it is mined.
func (f *Facade) Approve(
	ctx context.Context,
	opts *bind.TransactOpts,
	token, spender common.Address,
	amount *big.Int,
) (*types.Receipt, error) {
	transactor, err := contracts.NewERC20Transactor(token, f.backend)
	if err != nil {
		return nil, apperrors.ChainCallError(err, "failed to bind token contract")
	}

	tx, err := transactor.Approve(withContext(ctx, opts, nil), spender, amount)
	if err != nil {
		return nil, apperrors.Classify(err, "failed to submit approve transaction")
	}

	f.logger.Info("Approve transaction submitted",
		zap.String("tx_hash", tx.Hash().Hex()),
		zap.String("token", token.Hex()),
		zap.String("spender", spender.Hex()),
		zap.String("amount", amount.String()))

	receipt, err := f.waitMined(ctx, tx.Hash())
	if err != nil {
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, apperrors.ChainCallError(nil,
			fmt.Sprintf("approve transaction %s reverted", tx.Hash().Hex()))
	}
	return receipt, nil
}

// BridgeIn submits bridgeETH2DERO with the bridge fee attached. It returns as
// soon as the transaction is accepted; confirmation is not awaited.
func (f *Facade) BridgeIn(
	ctx context.Context,
	opts *bind.TransactOpts,
	token common.Address,
	destination string,
	amount *big.Int,
	fee *big.Int,
) (common.Hash, error) {
	transactor, err := contracts.NewDeroBridgeTransactor(f.bridgeAddress, f.backend)
	if err != nil {
		return common.Hash{}, apperrors.ChainCallError(err, "failed to bind bridge contract")
	}

	tx, err := transactor.BridgeETH2DERO(withContext(ctx, opts, fee), token, destination, amount)
	if err != nil {
		return common.Hash{}, apperrors.Classify(err, "failed to submit bridge transaction")
	}

	f.logger.Info("Bridge transaction submitted",
		zap.String("tx_hash", tx.Hash().Hex()),
		zap.String("token", token.Hex()),
		zap.String("destination", destination),
		zap.String("amount", amount.String()),
		zap.String("fee", fee.String()))

	return tx.Hash(), nil
}

// waitMined polls for the receipt of hash until it shows up or ctx ends.
func (f *Facade) waitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(f.receiptInterval)
	defer ticker.Stop()

	for {
		receipt, err := f.backend.TransactionReceipt(ctx, hash)
		if err == nil && receipt != nil {
			return receipt, nil
		}
		if err != nil && !errors.Is(err, goethereum.NotFound) {
			f.logger.Warn("Failed to fetch receipt, retrying",
				zap.String("tx_hash", hash.Hex()),
				zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return nil, apperrors.ChainCallError(ctx.Err(),
				fmt.Sprintf("stopped waiting for transaction %s", hash.Hex()))
		case <-ticker.C:
		}
	}
}

// withContext copies opts so the caller's signer is never mutated.
func withContext(ctx context.Context, opts *bind.TransactOpts, value *big.Int) *bind.TransactOpts {
	cp := *opts
	cp.Context = ctx
	if value != nil {
		cp.Value = new(big.Int).Set(value)
	}
	return &cp
}
