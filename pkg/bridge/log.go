package bridge

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/chainsafe/dero-bridge/internal/metrics"
)

const facadeName = "ContractFacade"

// logFacade wraps ContractFacade with logging and metrics for every call
type logFacade struct {
	next   ContractFacade
	logger *zap.Logger
}

// NewLogFacade creates a logging decorator for the contract facade.
// It logs call entry/exit, duration and errors, and records call metrics.
func NewLogFacade(next ContractFacade, logger *zap.Logger) ContractFacade {
	return &logFacade{
		next:   next,
		logger: logger,
	}
}

func (lf *logFacade) observe(method string, start time.Time, err error, fields ...zap.Field) {
	duration := time.Since(start)
	metrics.ContractCallDuration.WithLabelValues(method).Observe(duration.Seconds())

	fields = append(fields,
		zap.String("facade", facadeName),
		zap.String("method", method),
		zap.Duration("duration", duration),
	)
	if err != nil {
		metrics.ContractCalls.WithLabelValues(method, "error").Inc()
		lf.logger.Error(method+" failed", append(fields, zap.Error(err))...)
		return
	}
	metrics.ContractCalls.WithLabelValues(method, "ok").Inc()
	lf.logger.Debug(method+" completed", fields...)
}

// BridgeAddress is not a call; it is passed through untouched
func (lf *logFacade) BridgeAddress() common.Address {
	return lf.next.BridgeAddress()
}

// BridgeFee wraps the facade method with logging
func (lf *logFacade) BridgeFee(ctx context.Context) (fee *big.Int, err error) {
	start := time.Now()
	defer func() {
		lf.observe("BridgeFee", start, err, zap.Stringer("fee", fee))
	}()
	return lf.next.BridgeFee(ctx)
}

// ResolveTokenAddress wraps the facade method with logging
func (lf *logFacade) ResolveTokenAddress(ctx context.Context, symbol string) (token common.Address, err error) {
	start := time.Now()
	defer func() {
		lf.observe("ResolveTokenAddress", start, err,
			zap.String("symbol", symbol),
			zap.String("token", token.Hex()))
	}()
	return lf.next.ResolveTokenAddress(ctx, symbol)
}

// Decimals wraps the facade method with logging
func (lf *logFacade) Decimals(ctx context.Context, token common.Address) (decimals uint8, err error) {
	start := time.Now()
	defer func() {
		lf.observe("Decimals", start, err,
			zap.String("token", token.Hex()),
			zap.Uint8("decimals", decimals))
	}()
	return lf.next.Decimals(ctx, token)
}

// Allowance wraps the facade method with logging
func (lf *logFacade) Allowance(ctx context.Context, token, owner, spender common.Address) (allowance *big.Int, err error) {
	start := time.Now()
	defer func() {
		lf.observe("Allowance", start, err,
			zap.String("token", token.Hex()),
			zap.String("owner", owner.Hex()),
			zap.String("spender", spender.Hex()),
			zap.Stringer("allowance", allowance))
	}()
	return lf.next.Allowance(ctx, token, owner, spender)
}

// Approve wraps the facade method with logging
func (lf *logFacade) Approve(
	ctx context.Context,
	opts *bind.TransactOpts,
	token, spender common.Address,
	amount *big.Int,
) (receipt *types.Receipt, err error) {
	start := time.Now()
	lf.logger.Info("Approve started",
		zap.String("facade", facadeName),
		zap.String("token", token.Hex()),
		zap.String("spender", spender.Hex()),
		zap.String("amount", amount.String()))

	defer func() {
		fields := []zap.Field{zap.String("token", token.Hex())}
		if receipt != nil {
			fields = append(fields,
				zap.String("tx_hash", receipt.TxHash.Hex()),
				zap.Uint64("gas_used", receipt.GasUsed))
		}
		lf.observe("Approve", start, err, fields...)
	}()
	return lf.next.Approve(ctx, opts, token, spender, amount)
}

// BridgeIn wraps the facade method with logging
func (lf *logFacade) BridgeIn(
	ctx context.Context,
	opts *bind.TransactOpts,
	token common.Address,
	destination string,
	amount, fee *big.Int,
) (hash common.Hash, err error) {
	start := time.Now()
	lf.logger.Info("BridgeIn started",
		zap.String("facade", facadeName),
		zap.String("token", token.Hex()),
		zap.String("destination", destination),
		zap.String("amount", amount.String()),
		zap.String("fee", fee.String()))

	defer func() {
		lf.observe("BridgeIn", start, err, zap.String("tx_hash", hash.Hex()))
	}()
	return lf.next.BridgeIn(ctx, opts, token, destination, amount, fee)
}
