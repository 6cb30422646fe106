// Package wallet is the provider gateway: it detects the configured wallet
// injection and exposes account identity, the active chain, change
// notifications and per-write signers.
package wallet

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/dero-bridge/pkg/app/errors"
	"github.com/chainsafe/dero-bridge/pkg/config"
)

// AccountsHandler receives the authorized accounts after a change.
type AccountsHandler func(accounts []string)

// ChainHandler receives the new 0x-hex chain id after a change.
type ChainHandler func(chainID string)

// Gateway wraps a single detected wallet provider.
type Gateway struct {
	name     string
	provider Provider
	cfg      config.EthereumConfig
	maxGas   *big.Int
	logger   *zap.Logger

	mu               sync.RWMutex
	accountsHandlers []AccountsHandler
	chainHandlers    []ChainHandler
}

// Detect connects to the one enabled wallet injection. None, or more than
// one, is a ProviderUnavailable error.
func Detect(ctx context.Context, wallets []config.WalletConfig, cfg config.EthereumConfig, logger *zap.Logger) (*Gateway, error) {
	var enabled []config.WalletConfig
	for _, w := range wallets {
		if w.Enabled {
			enabled = append(enabled, w)
		}
	}

	switch len(enabled) {
	case 0:
		return nil, apperrors.ProviderUnavailableError(nil, "no wallet provider found")
	case 1:
	default:
		names := make([]string, 0, len(enabled))
		for _, w := range enabled {
			names = append(names, w.Name)
		}
		return nil, apperrors.ProviderUnavailableError(nil,
			fmt.Sprintf("multiple wallet providers enabled: %s", strings.Join(names, ", ")))
	}

	w := enabled[0]
	client, err := rpc.DialContext(ctx, w.URL)
	if err != nil {
		return nil, apperrors.ProviderUnavailableError(err, fmt.Sprintf("failed to connect to wallet %s", w.Name))
	}

	var provider Provider
	switch w.Kind {
	case config.WalletKindKeyed:
		provider, err = NewKeyedProvider(client, w.PrivateKey)
		if err != nil {
			client.Close()
			return nil, apperrors.ProviderUnavailableError(err, fmt.Sprintf("failed to load wallet %s", w.Name))
		}
	default:
		provider = NewRPCProvider(client)
	}

	gw, err := NewGateway(w.Name, provider, cfg, logger)
	if err != nil {
		provider.Close()
		return nil, err
	}

	chainID, err := gw.CurrentChainID(ctx)
	if err != nil {
		provider.Close()
		return nil, apperrors.ProviderUnavailableError(err, fmt.Sprintf("wallet %s did not report a chain", w.Name))
	}

	gw.logger.Info("Wallet provider detected",
		zap.String("name", w.Name),
		zap.String("kind", w.Kind),
		zap.String("chain_id", chainID))

	return gw, nil
}

// NewGateway wraps an already connected provider.
func NewGateway(name string, provider Provider, cfg config.EthereumConfig, logger *zap.Logger) (*Gateway, error) {
	if provider == nil {
		return nil, apperrors.ProviderUnavailableError(nil, "no wallet provider found")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var maxGas *big.Int
	if cfg.MaxGasPrice != "" {
		v, ok := new(big.Int).SetString(cfg.MaxGasPrice, 10)
		if !ok {
			return nil, fmt.Errorf("invalid max gas price: %q", cfg.MaxGasPrice)
		}
		maxGas = v
	}

	return &Gateway{
		name:     name,
		provider: provider,
		cfg:      cfg,
		maxGas:   maxGas,
		logger:   logger,
	}, nil
}

// ID names the provider. Together with the chain id it identifies the
// provider for fee caching.
func (g *Gateway) ID() string {
	return g.name
}

// CurrentChainID returns the active chain in 0x-hex form.
func (g *Gateway) CurrentChainID(ctx context.Context) (string, error) {
	id, err := g.provider.ChainID(ctx)
	if err != nil {
		return "", apperrors.Classify(err, "failed to read chain id")
	}
	return hexutil.EncodeBig(id), nil
}

// Accounts returns the already authorized accounts without prompting.
func (g *Gateway) Accounts(ctx context.Context) ([]common.Address, error) {
	accounts, err := g.provider.Accounts(ctx)
	if err != nil {
		return nil, apperrors.Classify(err, "failed to read accounts")
	}
	return accounts, nil
}

// RequestAccounts asks the wallet to authorize accounts, which may prompt.
func (g *Gateway) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	accounts, err := g.provider.RequestAccounts(ctx)
	if err != nil {
		return nil, apperrors.Classify(err, "account request failed")
	}
	if len(accounts) == 0 {
		return nil, apperrors.UserRejectedError(nil, "wallet authorized no accounts")
	}
	return accounts, nil
}

// OnAccountsChanged registers h for account changes.
func (g *Gateway) OnAccountsChanged(h AccountsHandler) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.accountsHandlers = append(g.accountsHandlers, h)
}

// OnChainChanged registers h for chain changes.
func (g *Gateway) OnChainChanged(h ChainHandler) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.chainHandlers = append(g.chainHandlers, h)
}

// Signer builds transact options for account. Nonce, gas limit and gas price
// are resolved now, so callers build a fresh signer for every write.
func (g *Gateway) Signer(ctx context.Context, account common.Address) (*bind.TransactOpts, error) {
	chainID, err := g.provider.ChainID(ctx)
	if err != nil {
		return nil, apperrors.Classify(err, "failed to read chain id")
	}

	backend := g.provider.Backend()
	nonce, err := backend.PendingNonceAt(ctx, account)
	if err != nil {
		return nil, apperrors.Classify(err, "failed to get nonce")
	}

	gasPrice, err := backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, apperrors.Classify(err, "failed to suggest gas price")
	}
	if g.maxGas != nil && gasPrice.Cmp(g.maxGas) > 0 {
		g.logger.Warn("Suggested gas price exceeds maximum",
			zap.String("suggested", gasPrice.String()),
			zap.String("max", g.maxGas.String()))
		gasPrice = new(big.Int).Set(g.maxGas)
	}

	return &bind.TransactOpts{
		From:     account,
		Nonce:    new(big.Int).SetUint64(nonce),
		GasLimit: g.cfg.GasLimit,
		GasPrice: gasPrice,
		Context:  ctx,
		Signer: func(from common.Address, tx *types.Transaction) (*types.Transaction, error) {
			if from != account {
				return nil, fmt.Errorf("not authorized to sign for %s", from.Hex())
			}
			return g.provider.SignTx(ctx, from, tx, chainID)
		},
	}, nil
}

// Backend is the node connection used for contract calls.
func (g *Gateway) Backend() *ethclient.Client {
	return g.provider.Backend()
}

// Close releases the provider connection.
func (g *Gateway) Close() {
	g.provider.Close()
}

func (g *Gateway) emitAccounts(accounts []common.Address) {
	hexAccounts := make([]string, 0, len(accounts))
	for _, a := range accounts {
		hexAccounts = append(hexAccounts, strings.ToLower(a.Hex()))
	}

	g.mu.RLock()
	handlers := append([]AccountsHandler(nil), g.accountsHandlers...)
	g.mu.RUnlock()

	for _, h := range handlers {
		h(hexAccounts)
	}
}

func (g *Gateway) emitChain(chainID string) {
	g.mu.RLock()
	handlers := append([]ChainHandler(nil), g.chainHandlers...)
	g.mu.RUnlock()

	for _, h := range handlers {
		h(chainID)
	}
}
