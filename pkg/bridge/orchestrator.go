// Package bridge drives a bridge transfer from the validated request to a
// submitted bridge transaction: token resolution, amount scaling, the
// allowance check, the conditional approve and the bridge-in call.
package bridge

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chainsafe/dero-bridge/internal/metrics"
	apperrors "github.com/chainsafe/dero-bridge/pkg/app/errors"
	"github.com/chainsafe/dero-bridge/pkg/ethereum"
	"github.com/chainsafe/dero-bridge/pkg/request"
	"github.com/chainsafe/dero-bridge/pkg/session"
)

// ErrInFlight is returned when an operation is attempted while another one
// holds the orchestrator.
var ErrInFlight = errors.New("a bridge operation is already in progress")

// WalletGateway is the wallet provider surface used by the orchestrator.
//
//go:generate mockery --name WalletGateway --output mocks --outpkg mocks --filename mock_wallet_gateway.go --with-expecter
type WalletGateway interface {
	ID() string
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	Signer(ctx context.Context, account common.Address) (*bind.TransactOpts, error)
}

// ContractFacade is the bridge and token contract surface used by the
// orchestrator. Errors are expected to be normalized already.
//
//go:generate mockery --name ContractFacade --output mocks --outpkg mocks --filename mock_contract_facade.go --with-expecter
type ContractFacade interface {
	BridgeAddress() common.Address
	BridgeFee(ctx context.Context) (*big.Int, error)
	ResolveTokenAddress(ctx context.Context, symbol string) (common.Address, error)
	Decimals(ctx context.Context, token common.Address) (uint8, error)
	Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error)
	Approve(ctx context.Context, opts *bind.TransactOpts, token, spender common.Address, amount *big.Int) (*types.Receipt, error)
	BridgeIn(ctx context.Context, opts *bind.TransactOpts, token common.Address, destination string, amount, fee *big.Int) (common.Hash, error)
}

// Options configures the orchestrator.
type Options struct {
	// ExplorerTxURL is prefixed to the bridge transaction hash on success.
	ExplorerTxURL string
}

// Orchestrator is the transfer state machine:
// Idle -> Ready -> Approving -> Bridging -> Succeeded | Failed.
//
// One operation runs at a time. The account is captured from the session when
// a sequence starts and every write in the sequence signs for that account;
// session changes during the sequence do not cancel it.
type Orchestrator struct {
	gateway WalletGateway
	facade  ContractFacade
	session *session.Session
	opts    Options
	logger  *zap.Logger
	now     func() time.Time

	running atomic.Bool

	mu     sync.RWMutex
	state  TransferState
	req    *request.BridgeRequest
	fatal  bool
	fee    *big.Int
	feeKey string
}

// NewOrchestrator creates an idle orchestrator.
func NewOrchestrator(
	gateway WalletGateway,
	facade ContractFacade,
	sess *session.Session,
	opts Options,
	logger *zap.Logger,
) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		gateway: gateway,
		facade:  facade,
		session: sess,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
		state:   newState(),
	}
}

// State returns a copy of the current transfer state.
func (o *Orchestrator) State() TransferState {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state.clone()
}

// Session returns a snapshot of the wallet session.
func (o *Orchestrator) Session() session.Snapshot {
	return o.session.Snapshot()
}

// Running reports whether an operation currently holds the orchestrator.
func (o *Orchestrator) Running() bool {
	return o.running.Load()
}

// Connect asks the wallet to authorize an account. A decline leaves the
// session chain and the cached fee untouched and records Failed/UserRejected.
func (o *Orchestrator) Connect(ctx context.Context) (session.Snapshot, error) {
	if !o.running.CompareAndSwap(false, true) {
		return o.session.Snapshot(), ErrInFlight
	}
	defer o.running.Store(false)

	accounts, err := o.gateway.RequestAccounts(ctx)
	if err != nil {
		o.logger.Warn("Wallet connection failed", zap.Error(err))
		o.mu.Lock()
		o.markFailed(StepConnect, err)
		o.mu.Unlock()
		return o.session.Snapshot(), err
	}
	o.applyAccounts(accounts)

	if o.hasRequest() {
		if _, err := o.ensureFee(ctx); err != nil {
			o.mu.Lock()
			o.markFailed(StepReadFee, err)
			o.mu.Unlock()
			return o.session.Snapshot(), err
		}
	}
	o.refreshPhase(true)

	snap := o.session.Snapshot()
	o.logger.Info("Wallet connected", zap.Stringer("account", snap.Account))
	return snap, nil
}

// SetRequest accepts a new bridge request, resetting the transfer state, and
// reads the bridge fee unless it is cached for the current provider.
func (o *Orchestrator) SetRequest(ctx context.Context, req *request.BridgeRequest) (TransferState, error) {
	if req == nil {
		return o.State(), apperrors.InvalidRequestError(nil, "bridge request is required")
	}
	if !o.running.CompareAndSwap(false, true) {
		return o.State(), ErrInFlight
	}
	defer o.running.Store(false)

	payload := req.Payload()
	o.mu.Lock()
	o.req = req
	o.fatal = false
	o.state = newState()
	o.state.Request = &payload
	if o.fee != nil {
		o.state.BridgeFee = o.fee.String()
	}
	o.mu.Unlock()

	o.logger.Info("Bridge request accepted",
		zap.String("symbol", payload.Symbol),
		zap.String("amount", payload.Amount),
		zap.String("destination", payload.WalletAddress))

	if _, err := o.ensureFee(ctx); err != nil {
		o.mu.Lock()
		o.markFailed(StepReadFee, err)
		o.mu.Unlock()
		return o.State(), err
	}
	o.refreshPhase(false)
	return o.State(), nil
}

// ProviderChanged reacts to wallet account or chain changes: the fee is
// re-read when the provider identity changed and Idle/Ready is recomputed.
// Changes arriving while an operation runs are ignored. The refresh does not
// claim the orchestrator, so an Execute arriving meanwhile proceeds.
func (o *Orchestrator) ProviderChanged(ctx context.Context) {
	if o.running.Load() {
		o.logger.Debug("Provider change ignored while an operation is running")
		return
	}

	if o.hasRequest() {
		if _, err := o.ensureFee(ctx); err != nil {
			o.logger.Warn("Failed to refresh bridge fee", zap.Error(err))
		}
	}
	o.refreshPhase(false)
}

// Execute runs the transfer sequence to a terminal state and returns it.
// While another operation is in flight it is a no-op returning ErrInFlight.
// A request whose bridge transaction was already submitted is not executed
// again; SetRequest must supply a new one.
func (o *Orchestrator) Execute(ctx context.Context) (TransferState, error) {
	a, err := o.begin()
	if err != nil {
		return o.State(), err
	}
	err = o.run(ctx, a)
	return o.State(), err
}

// Start is Execute without waiting: the sequence continues on its own
// goroutine and the returned state is the freshly started attempt.
func (o *Orchestrator) Start(ctx context.Context) (TransferState, error) {
	a, err := o.begin()
	if err != nil {
		return o.State(), err
	}
	started := o.State()
	go func() {
		_ = o.run(ctx, a)
	}()
	return started, nil
}

type attempt struct {
	id      uuid.UUID
	req     *request.BridgeRequest
	account *common.Address
	started time.Time
}

func (o *Orchestrator) begin() (*attempt, error) {
	if !o.running.CompareAndSwap(false, true) {
		o.logger.Debug("Execute ignored, a sequence is already running")
		return nil, ErrInFlight
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.req == nil {
		o.running.Store(false)
		return nil, apperrors.InvalidRequestError(nil, "no bridge request has been set")
	}
	if o.fatal {
		o.running.Store(false)
		return nil, apperrors.InvalidRequestError(nil, "the bridge request failed permanently, submit a new one")
	}
	if o.state.Phase == PhaseSucceeded {
		o.running.Store(false)
		return nil, apperrors.InvalidRequestError(nil, "the bridge request was already submitted, submit a new one")
	}

	snap := o.session.Snapshot()
	a := &attempt{id: uuid.New(), req: o.req, account: snap.Account, started: o.now()}

	payload := o.req.Payload()
	started := a.started
	o.state = TransferState{
		ID:        a.id,
		Phase:     PhaseApproving,
		Request:   &payload,
		StartedAt: &started,
	}
	if a.account != nil {
		o.state.Account = strings.ToLower(a.account.Hex())
	}
	if o.fee != nil {
		o.state.BridgeFee = o.fee.String()
	}

	metrics.TransfersInFlight.Inc()
	return a, nil
}

func (o *Orchestrator) run(ctx context.Context, a *attempt) error {
	defer func() {
		metrics.TransfersInFlight.Dec()
		o.running.Store(false)
	}()

	o.logger.Info("Transfer started",
		zap.String("attempt_id", a.id.String()),
		zap.String("symbol", a.req.Symbol()),
		zap.String("amount", a.req.Amount().String()))

	err := o.sequence(ctx, a)

	duration := o.now().Sub(a.started)
	if err != nil {
		kind := apperrors.KindOf(err)
		metrics.TransferAttempts.WithLabelValues("failed", kind.String()).Inc()
		metrics.TransferDuration.WithLabelValues("failed").Observe(duration.Seconds())
		o.logger.Warn("Transfer failed",
			zap.String("attempt_id", a.id.String()),
			zap.String("kind", kind.String()),
			zap.Duration("duration", duration),
			zap.Error(err))
		return err
	}

	metrics.TransferAttempts.WithLabelValues("succeeded", "").Inc()
	metrics.TransferDuration.WithLabelValues("succeeded").Observe(duration.Seconds())
	o.logger.Info("Transfer submitted",
		zap.String("attempt_id", a.id.String()),
		zap.String("tx_hash", o.State().TxHash),
		zap.Duration("duration", duration))
	return nil
}

// sequence performs the calls of one attempt. Each failure aborts the rest.
func (o *Orchestrator) sequence(ctx context.Context, a *attempt) error {
	account := a.account
	if account == nil {
		o.setStep(PhaseApproving, StepConnect)
		accounts, err := o.gateway.RequestAccounts(ctx)
		if err != nil {
			return o.fail(StepConnect, err)
		}
		if len(accounts) == 0 {
			return o.fail(StepConnect, apperrors.UserRejectedError(nil, "wallet authorized no accounts"))
		}
		o.applyAccounts(accounts)
		account = &accounts[0]
		o.mu.Lock()
		o.state.Account = strings.ToLower(account.Hex())
		o.mu.Unlock()
	}

	o.setStep(PhaseApproving, StepReadFee)
	fee, err := o.ensureFee(ctx)
	if err != nil {
		return o.fail(StepReadFee, err)
	}

	o.setStep(PhaseApproving, StepResolveToken)
	token, err := o.facade.ResolveTokenAddress(ctx, a.req.Symbol())
	if err != nil {
		return o.fail(StepResolveToken, err)
	}

	o.setStep(PhaseApproving, StepReadDecimals)
	decimals, err := o.facade.Decimals(ctx, token)
	if err != nil {
		return o.fail(StepReadDecimals, err)
	}
	amount, err := ethereum.ToSmallestUnit(a.req.Amount(), decimals)
	if err != nil {
		return o.fail(StepReadDecimals, err)
	}

	spender := o.facade.BridgeAddress()

	o.setStep(PhaseApproving, StepCheckAllowance)
	allowance, err := o.facade.Allowance(ctx, token, *account, spender)
	if err != nil {
		return o.fail(StepCheckAllowance, err)
	}

	if amount.Cmp(allowance) > 0 {
		o.setStep(PhaseApproving, StepApprove)
		signer, err := o.gateway.Signer(ctx, *account)
		if err != nil {
			return o.fail(StepApprove, err)
		}
		if _, err := o.facade.Approve(ctx, signer, token, spender, amount); err != nil {
			return o.fail(StepApprove, err)
		}
		metrics.ApprovalsSubmitted.WithLabelValues(a.req.Symbol()).Inc()
	}

	o.setStep(PhaseBridging, StepBridge)
	signer, err := o.gateway.Signer(ctx, *account)
	if err != nil {
		return o.fail(StepBridge, err)
	}
	hash, err := o.facade.BridgeIn(ctx, signer, token, a.req.WalletAddress(), amount, fee)
	if err != nil {
		return o.fail(StepBridge, err)
	}

	o.succeed(hash)
	return nil
}

func (o *Orchestrator) setStep(phase Phase, step Step) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state.Phase = phase
	o.state.Step = step
}

func (o *Orchestrator) fail(step Step, err error) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.markFailed(step, err)
	return err
}

// markFailed records a terminal failure. Callers hold o.mu.
func (o *Orchestrator) markFailed(step Step, err error) {
	finished := o.now()
	o.state.Phase = PhaseFailed
	o.state.Step = step
	o.state.Error = errorInfo(err)
	o.state.TxHash = ""
	o.state.ExplorerURL = ""
	o.state.FinishedAt = &finished
	if !o.state.Error.Recoverable {
		o.fatal = true
	}
}

func (o *Orchestrator) succeed(hash common.Hash) {
	o.mu.Lock()
	defer o.mu.Unlock()

	finished := o.now()
	o.state.Phase = PhaseSucceeded
	o.state.Step = StepNone
	o.state.Error = nil
	o.state.TxHash = hash.Hex()
	if o.opts.ExplorerTxURL != "" {
		o.state.ExplorerURL = o.opts.ExplorerTxURL + hash.Hex()
	}
	o.state.FinishedAt = &finished
}

func (o *Orchestrator) applyAccounts(accounts []common.Address) {
	hexAccounts := make([]string, 0, len(accounts))
	for _, a := range accounts {
		hexAccounts = append(hexAccounts, a.Hex())
	}
	o.session.Apply(session.Event{Type: session.EventAccountsChanged, Accounts: hexAccounts})
}

func (o *Orchestrator) hasRequest() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.req != nil
}

// providerKey identifies the provider for fee caching.
func (o *Orchestrator) providerKey() string {
	return o.gateway.ID() + "/" + o.session.Snapshot().ChainID
}

// ensureFee returns the cached fee, reading it when the provider changed.
func (o *Orchestrator) ensureFee(ctx context.Context) (*big.Int, error) {
	key := o.providerKey()

	o.mu.RLock()
	if o.fee != nil && o.feeKey == key {
		fee := new(big.Int).Set(o.fee)
		o.mu.RUnlock()
		return fee, nil
	}
	o.mu.RUnlock()

	fee, err := o.facade.BridgeFee(ctx)
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	o.fee = new(big.Int).Set(fee)
	o.feeKey = key
	o.state.BridgeFee = fee.String()
	o.mu.Unlock()

	o.logger.Info("Bridge fee loaded",
		zap.String("provider", key),
		zap.String("fee_wei", fee.String()))
	return fee, nil
}

// refreshPhase moves between Idle and Ready. With clearRecoverable a
// recoverable failure is also cleared, as after a successful reconnect.
func (o *Orchestrator) refreshPhase(clearRecoverable bool) {
	key := o.providerKey()
	snap := o.session.Snapshot()

	o.mu.Lock()
	defer o.mu.Unlock()

	switch {
	case o.state.Phase == PhaseIdle || o.state.Phase == PhaseReady:
	case clearRecoverable && o.state.Phase == PhaseFailed && o.state.Error != nil && o.state.Error.Recoverable:
		o.state.Error = nil
		o.state.Step = StepNone
		o.state.FinishedAt = nil
	default:
		return
	}

	if o.req != nil && snap.Connected() && o.fee != nil && o.feeKey == key {
		o.state.Phase = PhaseReady
		o.state.Account = strings.ToLower(snap.Account.Hex())
	} else {
		o.state.Phase = PhaseIdle
	}
}
