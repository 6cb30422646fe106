package bridge

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/dero-bridge/pkg/app/errors"
	"github.com/chainsafe/dero-bridge/pkg/bridge/mocks"
	"github.com/chainsafe/dero-bridge/pkg/request"
	"github.com/chainsafe/dero-bridge/pkg/session"
)

const (
	testDestination = "dero1qyexamplereceiver"
	testExplorer    = "https://etherscan.io/tx/"
)

var (
	testAccount = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	testBridge  = common.HexToAddress("0x00000000000000000000000000000000000000b1")
	testUSDC    = common.HexToAddress("0x00000000000000000000000000000000000000c1")
	testTxHash  = common.HexToHash("0xabc0000000000000000000000000000000000000000000000000000000000def")
)

type orchFixture struct {
	gw     *mocks.WalletGateway
	facade *mocks.ContractFacade
	sess   *session.Session
	orch   *Orchestrator
}

func newOrchFixture(t *testing.T) *orchFixture {
	t.Helper()

	gw := mocks.NewWalletGateway(t)
	facade := mocks.NewContractFacade(t)
	sess := session.New("0x539")

	gw.EXPECT().ID().Return("devwallet").Maybe()
	facade.EXPECT().BridgeAddress().Return(testBridge).Maybe()

	orch := NewOrchestrator(gw, facade, sess, Options{ExplorerTxURL: testExplorer}, zap.NewNop())
	return &orchFixture{gw: gw, facade: facade, sess: sess, orch: orch}
}

func newRequest(t *testing.T, symbol, amount string) *request.BridgeRequest {
	t.Helper()
	req, err := request.New(request.Payload{
		WalletAddress: testDestination,
		Symbol:        symbol,
		Amount:        amount,
	})
	require.NoError(t, err)
	return req
}

func bigEq(v int64) any {
	return mock.MatchedBy(func(b *big.Int) bool {
		return b != nil && b.Cmp(big.NewInt(v)) == 0
	})
}

// connect authorizes testAccount and submits a request, reading the fee once.
func (f *orchFixture) connect(t *testing.T, symbol, amount string) {
	t.Helper()
	ctx := context.Background()

	f.gw.EXPECT().RequestAccounts(mock.Anything).Return([]common.Address{testAccount}, nil).Once()
	f.facade.EXPECT().BridgeFee(mock.Anything).Return(big.NewInt(5000), nil).Once()

	_, err := f.orch.Connect(ctx)
	require.NoError(t, err)
	state, err := f.orch.SetRequest(ctx, newRequest(t, symbol, amount))
	require.NoError(t, err)
	require.Equal(t, PhaseReady, state.Phase)
}

func (f *orchFixture) expectReads(decimals uint8, allowance int64) {
	f.facade.EXPECT().ResolveTokenAddress(mock.Anything, "USDC").Return(testUSDC, nil)
	f.facade.EXPECT().Decimals(mock.Anything, testUSDC).Return(decimals, nil)
	f.facade.EXPECT().Allowance(mock.Anything, testUSDC, testAccount, testBridge).Return(big.NewInt(allowance), nil)
}

func TestOrchestrator_ApproveThenBridge(t *testing.T) {
	f := newOrchFixture(t)
	f.connect(t, "USDC", "10")
	f.expectReads(6, 0)

	opts := &bind.TransactOpts{From: testAccount}
	f.gw.EXPECT().Signer(mock.Anything, testAccount).Return(opts, nil).Times(2)
	approve := f.facade.EXPECT().Approve(mock.Anything, opts, testUSDC, testBridge, bigEq(10000000)).
		Return(&types.Receipt{Status: types.ReceiptStatusSuccessful}, nil).Once()
	bridgeIn := f.facade.EXPECT().BridgeIn(mock.Anything, opts, testUSDC, testDestination, bigEq(10000000), bigEq(5000)).
		Return(testTxHash, nil).Once()
	mock.InOrder(approve, bridgeIn)

	state, err := f.orch.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, PhaseSucceeded, state.Phase)
	assert.Equal(t, testTxHash.Hex(), state.TxHash)
	assert.Equal(t, testExplorer+testTxHash.Hex(), state.ExplorerURL)
	assert.Equal(t, strings.ToLower(testAccount.Hex()), state.Account)
	assert.Equal(t, "5000", state.BridgeFee)
	assert.Nil(t, state.Error)
	assert.NotNil(t, state.FinishedAt)
	assert.False(t, f.orch.Running())
}

func TestOrchestrator_SufficientAllowanceSkipsApprove(t *testing.T) {
	f := newOrchFixture(t)
	f.connect(t, "USDC", "10")
	f.expectReads(6, 20000000)

	opts := &bind.TransactOpts{From: testAccount}
	f.gw.EXPECT().Signer(mock.Anything, testAccount).Return(opts, nil).Once()
	f.facade.EXPECT().BridgeIn(mock.Anything, opts, testUSDC, testDestination, bigEq(10000000), bigEq(5000)).
		Return(testTxHash, nil).Once()

	state, err := f.orch.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PhaseSucceeded, state.Phase)
	f.facade.AssertNotCalled(t, "Approve", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrchestrator_UnknownSymbolIsFatal(t *testing.T) {
	f := newOrchFixture(t)
	f.connect(t, "XYZ", "1")

	f.facade.EXPECT().ResolveTokenAddress(mock.Anything, "XYZ").
		Return(common.Address{}, apperrors.UnknownSymbolError(nil, `token "XYZ" is not registered`)).Once()

	state, err := f.orch.Execute(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindUnknownSymbol))

	assert.Equal(t, PhaseFailed, state.Phase)
	assert.Equal(t, StepResolveToken, state.Step)
	require.NotNil(t, state.Error)
	assert.Equal(t, apperrors.KindUnknownSymbol, state.Error.Kind)
	assert.False(t, state.Error.Recoverable)
	assert.Empty(t, state.TxHash)

	// The same request cannot be retried
	_, err = f.orch.Execute(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidRequest))
	assert.Equal(t, PhaseFailed, f.orch.State().Phase)
}

func TestOrchestrator_TooPreciseAmount(t *testing.T) {
	f := newOrchFixture(t)
	f.connect(t, "USDC", "1.1234567")

	f.facade.EXPECT().ResolveTokenAddress(mock.Anything, "USDC").Return(testUSDC, nil).Once()
	f.facade.EXPECT().Decimals(mock.Anything, testUSDC).Return(uint8(6), nil).Once()

	state, err := f.orch.Execute(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidRequest))
	assert.Equal(t, StepReadDecimals, state.Step)
}

func TestOrchestrator_ConnectRejected(t *testing.T) {
	f := newOrchFixture(t)

	f.gw.EXPECT().RequestAccounts(mock.Anything).
		Return(nil, apperrors.UserRejectedError(nil, "user rejected the request")).Once()

	snap, err := f.orch.Connect(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindUserRejected))

	assert.False(t, snap.Connected())
	assert.Equal(t, "0x539", snap.ChainID)

	state := f.orch.State()
	assert.Equal(t, PhaseFailed, state.Phase)
	assert.Equal(t, StepConnect, state.Step)
	assert.True(t, state.Error.Recoverable)
	assert.Empty(t, state.BridgeFee)
	f.facade.AssertNotCalled(t, "BridgeFee", mock.Anything)
}

func TestOrchestrator_ConnectRejectedKeepsFeeAndChain(t *testing.T) {
	f := newOrchFixture(t)
	f.connect(t, "USDC", "10")

	f.gw.EXPECT().RequestAccounts(mock.Anything).
		Return(nil, apperrors.UserRejectedError(nil, "user rejected the request")).Once()

	snap, err := f.orch.Connect(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindUserRejected))

	assert.Equal(t, "0x539", snap.ChainID)
	assert.Equal(t, testAccount, *snap.Account)

	state := f.orch.State()
	assert.Equal(t, PhaseFailed, state.Phase)
	assert.Equal(t, StepConnect, state.Step)
	assert.Equal(t, "5000", state.BridgeFee)

	// The cached fee is still used, BridgeFee was expected only once
	f.expectReads(6, 20000000)
	opts := &bind.TransactOpts{From: testAccount}
	f.gw.EXPECT().Signer(mock.Anything, testAccount).Return(opts, nil).Once()
	f.facade.EXPECT().BridgeIn(mock.Anything, opts, testUSDC, testDestination, bigEq(10000000), bigEq(5000)).
		Return(testTxHash, nil).Once()

	state, err = f.orch.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "5000", state.BridgeFee)
}

func TestOrchestrator_SubmittedRequestIsNotResubmitted(t *testing.T) {
	f := newOrchFixture(t)
	f.connect(t, "USDC", "10")
	f.expectReads(6, 20000000)

	opts := &bind.TransactOpts{From: testAccount}
	f.gw.EXPECT().Signer(mock.Anything, testAccount).Return(opts, nil).Once()
	f.facade.EXPECT().BridgeIn(mock.Anything, opts, testUSDC, testDestination, bigEq(10000000), bigEq(5000)).
		Return(testTxHash, nil).Once()

	ctx := context.Background()
	state, err := f.orch.Execute(ctx)
	require.NoError(t, err)
	require.Equal(t, PhaseSucceeded, state.Phase)

	state, err = f.orch.Execute(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidRequest))
	assert.Equal(t, PhaseSucceeded, state.Phase)
	assert.Equal(t, testTxHash.Hex(), state.TxHash)

	_, err = f.orch.Start(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidRequest))
	assert.False(t, f.orch.Running())

	// A new request may be bridged again
	state, err = f.orch.SetRequest(ctx, newRequest(t, "USDC", "10"))
	require.NoError(t, err)
	assert.Equal(t, PhaseReady, state.Phase)

	f.gw.EXPECT().Signer(mock.Anything, testAccount).Return(opts, nil).Once()
	f.facade.EXPECT().BridgeIn(mock.Anything, opts, testUSDC, testDestination, bigEq(10000000), bigEq(5000)).
		Return(testTxHash, nil).Once()

	state, err = f.orch.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, PhaseSucceeded, state.Phase)
	f.facade.AssertNumberOfCalls(t, "BridgeIn", 2)
}

func TestOrchestrator_RecoverableFailureAllowsRetry(t *testing.T) {
	f := newOrchFixture(t)
	f.connect(t, "USDC", "10")
	f.expectReads(6, 0)

	opts := &bind.TransactOpts{From: testAccount}
	f.gw.EXPECT().Signer(mock.Anything, testAccount).Return(opts, nil)
	f.facade.EXPECT().Approve(mock.Anything, opts, testUSDC, testBridge, bigEq(10000000)).
		Return(nil, apperrors.UserRejectedError(nil, "user rejected transaction")).Once()

	state, err := f.orch.Execute(context.Background())
	require.Error(t, err)
	assert.Equal(t, PhaseFailed, state.Phase)
	assert.Equal(t, StepApprove, state.Step)
	assert.True(t, state.Error.Recoverable)

	// Reconnecting clears a recoverable failure without re-reading the fee
	f.gw.EXPECT().RequestAccounts(mock.Anything).Return([]common.Address{testAccount}, nil).Once()
	_, err = f.orch.Connect(context.Background())
	require.NoError(t, err)
	state = f.orch.State()
	assert.Equal(t, PhaseReady, state.Phase)
	assert.Nil(t, state.Error)

	f.facade.EXPECT().Approve(mock.Anything, opts, testUSDC, testBridge, bigEq(10000000)).
		Return(&types.Receipt{Status: types.ReceiptStatusSuccessful}, nil).Once()
	f.facade.EXPECT().BridgeIn(mock.Anything, opts, testUSDC, testDestination, bigEq(10000000), bigEq(5000)).
		Return(testTxHash, nil).Once()

	state, err = f.orch.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PhaseSucceeded, state.Phase)
}

func TestOrchestrator_ExecuteConnectsWhenNoAccount(t *testing.T) {
	f := newOrchFixture(t)
	ctx := context.Background()

	f.facade.EXPECT().BridgeFee(mock.Anything).Return(big.NewInt(5000), nil).Once()
	state, err := f.orch.SetRequest(ctx, newRequest(t, "USDC", "10"))
	require.NoError(t, err)
	assert.Equal(t, PhaseIdle, state.Phase)

	f.gw.EXPECT().RequestAccounts(mock.Anything).Return([]common.Address{testAccount}, nil).Once()
	f.expectReads(6, 10000000)
	opts := &bind.TransactOpts{From: testAccount}
	f.gw.EXPECT().Signer(mock.Anything, testAccount).Return(opts, nil).Once()
	f.facade.EXPECT().BridgeIn(mock.Anything, opts, testUSDC, testDestination, bigEq(10000000), bigEq(5000)).
		Return(testTxHash, nil).Once()

	state, err = f.orch.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, PhaseSucceeded, state.Phase)
	assert.True(t, f.orch.Session().Connected())
}

func TestOrchestrator_ExecuteWhileRunning(t *testing.T) {
	f := newOrchFixture(t)
	f.connect(t, "USDC", "10")
	f.expectReads(6, 10000000)

	opts := &bind.TransactOpts{From: testAccount}
	release := make(chan struct{})
	f.gw.EXPECT().Signer(mock.Anything, testAccount).Return(opts, nil).Once()
	f.facade.EXPECT().BridgeIn(mock.Anything, opts, testUSDC, testDestination, bigEq(10000000), bigEq(5000)).
		RunAndReturn(func(context.Context, *bind.TransactOpts, common.Address, string, *big.Int, *big.Int) (common.Hash, error) {
			<-release
			return testTxHash, nil
		}).Once()

	ctx := context.Background()
	started, err := f.orch.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, PhaseApproving, started.Phase)

	require.Eventually(t, func() bool {
		return f.orch.State().Step == StepBridge
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, PhaseBridging, f.orch.State().Phase)

	_, err = f.orch.Execute(ctx)
	assert.ErrorIs(t, err, ErrInFlight)
	_, err = f.orch.Connect(ctx)
	assert.ErrorIs(t, err, ErrInFlight)
	_, err = f.orch.SetRequest(ctx, newRequest(t, "USDC", "1"))
	assert.ErrorIs(t, err, ErrInFlight)

	// Provider changes are dropped while the sequence runs
	f.sess.Apply(session.Event{Type: session.EventChainChanged, ChainID: "0x5"})
	f.orch.ProviderChanged(ctx)

	close(release)
	require.Eventually(t, func() bool {
		return f.orch.State().Phase == PhaseSucceeded && !f.orch.Running()
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, "10", f.orch.State().Request.Amount)
}

func TestOrchestrator_FeeRefreshOnProviderChange(t *testing.T) {
	f := newOrchFixture(t)
	f.connect(t, "USDC", "10")
	ctx := context.Background()

	// Same provider, cached fee
	f.orch.ProviderChanged(ctx)
	assert.Equal(t, "5000", f.orch.State().BridgeFee)

	f.facade.EXPECT().BridgeFee(mock.Anything).Return(big.NewInt(7000), nil).Once()
	f.sess.Apply(session.Event{Type: session.EventChainChanged, ChainID: "0x5"})
	f.orch.ProviderChanged(ctx)

	state := f.orch.State()
	assert.Equal(t, "7000", state.BridgeFee)
	assert.Equal(t, PhaseReady, state.Phase)

	// Account removal drops back to idle
	f.sess.Apply(session.Event{Type: session.EventAccountsChanged})
	f.orch.ProviderChanged(ctx)
	assert.Equal(t, PhaseIdle, f.orch.State().Phase)
}

func TestOrchestrator_ExecuteDuringFeeRefresh(t *testing.T) {
	f := newOrchFixture(t)
	f.connect(t, "USDC", "10")
	ctx := context.Background()

	var calls atomic.Int32
	refreshing := make(chan struct{})
	release := make(chan struct{})
	f.facade.EXPECT().BridgeFee(mock.Anything).
		RunAndReturn(func(context.Context) (*big.Int, error) {
			if calls.Add(1) == 1 {
				close(refreshing)
				<-release
			}
			return big.NewInt(7000), nil
		}).Times(2)

	f.sess.Apply(session.Event{Type: session.EventChainChanged, ChainID: "0x5"})
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.orch.ProviderChanged(ctx)
	}()
	<-refreshing
	assert.False(t, f.orch.Running())

	f.expectReads(6, 20000000)
	opts := &bind.TransactOpts{From: testAccount}
	f.gw.EXPECT().Signer(mock.Anything, testAccount).Return(opts, nil).Once()
	f.facade.EXPECT().BridgeIn(mock.Anything, opts, testUSDC, testDestination, bigEq(10000000), bigEq(7000)).
		Return(testTxHash, nil).Once()

	state, err := f.orch.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, PhaseSucceeded, state.Phase)

	close(release)
	<-done
	state = f.orch.State()
	assert.Equal(t, PhaseSucceeded, state.Phase)
	assert.Equal(t, "7000", state.BridgeFee)
}

func TestOrchestrator_FeeReadFailure(t *testing.T) {
	f := newOrchFixture(t)

	f.facade.EXPECT().BridgeFee(mock.Anything).
		Return(nil, apperrors.ChainCallError(errors.New("connection refused"), "failed to read bridge fee")).Once()

	state, err := f.orch.SetRequest(context.Background(), newRequest(t, "USDC", "10"))
	require.Error(t, err)
	assert.Equal(t, PhaseFailed, state.Phase)
	assert.Equal(t, StepReadFee, state.Step)
	assert.Equal(t, apperrors.KindChainCallFailed, state.Error.Kind)
}

func TestOrchestrator_InvalidInvocations(t *testing.T) {
	f := newOrchFixture(t)

	_, err := f.orch.Execute(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidRequest))

	_, err = f.orch.SetRequest(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidRequest))
	assert.Equal(t, PhaseIdle, f.orch.State().Phase)
}
