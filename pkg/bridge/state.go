package bridge

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/chainsafe/dero-bridge/pkg/app/errors"
	"github.com/chainsafe/dero-bridge/pkg/request"
)

// Phase is the coarse transfer state.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseReady     Phase = "ready"
	PhaseApproving Phase = "approving"
	PhaseBridging  Phase = "bridging"
	PhaseSucceeded Phase = "succeeded"
	PhaseFailed    Phase = "failed"
)

// Terminal reports whether p ends an attempt.
func (p Phase) Terminal() bool {
	return p == PhaseSucceeded || p == PhaseFailed
}

// Step names the call a running sequence is suspended on. After a failure it
// names the call that failed.
type Step string

const (
	StepNone           Step = ""
	StepConnect        Step = "connect"
	StepReadFee        Step = "read_fee"
	StepResolveToken   Step = "resolve_token"
	StepReadDecimals   Step = "read_decimals"
	StepCheckAllowance Step = "check_allowance"
	StepApprove        Step = "approve"
	StepBridge         Step = "bridge"
)

// ErrorInfo is the presentable form of a failure.
type ErrorInfo struct {
	Kind        apperrors.Kind `json:"kind"`
	Message     string         `json:"message"`
	Recoverable bool           `json:"recoverable"`
}

// TransferState is the single linear progress view of a transfer attempt.
// Once an attempt starts, exactly one of Error, TxHash or an in-progress
// phase holds.
type TransferState struct {
	ID          uuid.UUID        `json:"id"`
	Phase       Phase            `json:"phase"`
	Step        Step             `json:"step,omitempty"`
	Request     *request.Payload `json:"request,omitempty"`
	Account     string           `json:"account,omitempty"`
	BridgeFee   string           `json:"bridgeFee,omitempty"`
	Error       *ErrorInfo       `json:"error,omitempty"`
	TxHash      string           `json:"txHash,omitempty"`
	ExplorerURL string           `json:"explorerUrl,omitempty"`
	StartedAt   *time.Time       `json:"startedAt,omitempty"`
	FinishedAt  *time.Time       `json:"finishedAt,omitempty"`
}

func newState() TransferState {
	return TransferState{ID: uuid.New(), Phase: PhaseIdle}
}

func errorInfo(err error) *ErrorInfo {
	kind := apperrors.KindOf(err)
	return &ErrorInfo{
		Kind:        kind,
		Message:     err.Error(),
		Recoverable: kind.Recoverable(),
	}
}

func (s TransferState) clone() TransferState {
	out := s
	if s.Request != nil {
		p := *s.Request
		out.Request = &p
	}
	if s.Error != nil {
		e := *s.Error
		out.Error = &e
	}
	if s.StartedAt != nil {
		t := *s.StartedAt
		out.StartedAt = &t
	}
	if s.FinishedAt != nil {
		t := *s.FinishedAt
		out.FinishedAt = &t
	}
	return out
}
