package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransferAttempts counts orchestrated transfer attempts by outcome and error kind
	TransferAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_transfer_attempts_total",
			Help: "Total number of bridge transfer attempts",
		},
		[]string{"outcome", "kind"},
	)

	// TransferDuration tracks how long a transfer attempt takes end to end
	TransferDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bridge_transfer_duration_seconds",
			Help:    "Transfer attempt duration in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"outcome"},
	)

	// ApprovalsSubmitted counts approve transactions by token symbol
	ApprovalsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_approvals_total",
			Help: "Total number of token approvals submitted",
		},
		[]string{"token"},
	)

	// ContractCalls counts contract calls by method and outcome
	ContractCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_contract_calls_total",
			Help: "Total number of contract calls",
		},
		[]string{"method", "outcome"},
	)

	// ContractCallDuration tracks contract call latency
	ContractCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bridge_contract_call_duration_seconds",
			Help:    "Contract call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// WalletEvents counts wallet notifications by type
	WalletEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_wallet_events_total",
			Help: "Total number of wallet account and chain notifications",
		},
		[]string{"type"},
	)

	// TransfersInFlight is 1 while a transfer sequence is running
	TransfersInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bridge_transfers_in_flight",
			Help: "Number of transfer sequences currently running",
		},
	)
)
