package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/chainsafe/dero-bridge/pkg/config"
	"github.com/chainsafe/dero-bridge/pkg/request"
)

// Transfer runs a single bridge transfer from the command line and writes
// the final transfer state to out as JSON.
type Transfer struct {
	cfg     *config.Config
	payload request.Payload
	out     io.Writer
}

// NewTransfer initializes a one-shot transfer runner.
func NewTransfer(cfg *config.Config, payload request.Payload, out io.Writer) *Transfer {
	return &Transfer{cfg: cfg, payload: payload, out: out}
}

// Run connects the wallet, submits the request and executes it.
func (t *Transfer) Run() error {
	if t.cfg == nil {
		return fmt.Errorf("bridge client config is nil")
	}

	req, err := request.New(t.payload)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The final state goes to stdout, so logs default to stderr here
	logging := t.cfg.Logging
	if logging.OutputPath == "" || logging.OutputPath == "stdout" {
		logging.OutputPath = "stderr"
	}
	logger, err := config.NewLogger(logging, "bridge-client")
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	st, err := newStack(ctx, t.cfg, logger)
	if err != nil {
		return err
	}
	defer st.gateway.Close()

	if _, err := st.orch.Connect(ctx); err != nil {
		return fmt.Errorf("connect wallet: %w", err)
	}
	if _, err := st.orch.SetRequest(ctx, req); err != nil {
		return fmt.Errorf("submit request: %w", err)
	}

	state, execErr := st.orch.Execute(ctx)

	enc := json.NewEncoder(t.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(state); err != nil {
		logger.Warn("Failed to write transfer state", zap.Error(err))
	}

	if execErr != nil {
		return fmt.Errorf("bridge transfer failed: %w", execErr)
	}
	return nil
}
