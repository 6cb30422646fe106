package wallet

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/chainsafe/dero-bridge/internal/metrics"
)

const defaultWatchInterval = 4 * time.Second

type watchState struct {
	chainID  string
	accounts []common.Address
}

// Watch polls the provider for chain and account changes and notifies the
// registered handlers. It blocks until ctx is done.
func (g *Gateway) Watch(ctx context.Context) error {
	interval := g.cfg.WatchInterval
	if interval <= 0 {
		interval = defaultWatchInterval
	}

	g.logger.Info("Starting wallet watcher", zap.Duration("interval", interval))

	var last watchState
	if chainID, err := g.CurrentChainID(ctx); err == nil {
		last.chainID = chainID
	}
	if accounts, err := g.Accounts(ctx); err == nil {
		last.accounts = accounts
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			g.logger.Info("Wallet watcher stopped")
			return ctx.Err()
		case <-ticker.C:
			last = g.poll(ctx, last)
		}
	}
}

// poll reads the provider once and emits whatever differs from last.
func (g *Gateway) poll(ctx context.Context, last watchState) watchState {
	next := last

	chainID, err := g.CurrentChainID(ctx)
	if err != nil {
		g.logger.Warn("Failed to poll chain id", zap.Error(err))
	} else if chainID != last.chainID {
		next.chainID = chainID
		g.logger.Info("Wallet chain changed",
			zap.String("from", last.chainID),
			zap.String("to", chainID))
		metrics.WalletEvents.WithLabelValues("chainChanged").Inc()
		g.emitChain(chainID)
	}

	accounts, err := g.Accounts(ctx)
	if err != nil {
		g.logger.Warn("Failed to poll accounts", zap.Error(err))
	} else if !sameAccounts(accounts, last.accounts) {
		next.accounts = accounts
		g.logger.Info("Wallet accounts changed", zap.Int("count", len(accounts)))
		metrics.WalletEvents.WithLabelValues("accountsChanged").Inc()
		g.emitAccounts(accounts)
	}

	return next
}

func sameAccounts(a, b []common.Address) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
