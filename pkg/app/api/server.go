// Package api implements app.Runner for the bridge client process.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apphttp "github.com/chainsafe/dero-bridge/pkg/app/http"
	"github.com/chainsafe/dero-bridge/pkg/bridge"
	"github.com/chainsafe/dero-bridge/pkg/config"
	"github.com/chainsafe/dero-bridge/pkg/ethereum"
	"github.com/chainsafe/dero-bridge/pkg/session"
	"github.com/chainsafe/dero-bridge/pkg/wallet"
)

const defaultRequestTimeout = 60

// Server holds cfg to init the bridge client API.
type Server struct {
	cfg *config.Config
}

// NewServer initializes a new bridge client API server.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

// Run detects the wallet, wires the orchestrator and serves the HTTP API
// until an OS shutdown signal is received.
func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("bridge client config is nil")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging, "bridge-client")
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting bridge client",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
	)

	st, err := newStack(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.gateway.Close()

	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		if err := st.gateway.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Wallet watcher stopped", zap.Error(err))
		}
	}()

	router := s.setupRouter(ctx, st.orch, logger)
	err = apphttp.ServeAndWait(ctx, router, logger, &cfg.Server)

	// The watcher exits on the same signal; wait so the gateway closes last.
	stop()
	<-watchDone

	return err
}

func (s *Server) setupRouter(ctx context.Context, orch *bridge.Orchestrator, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(time.Second * defaultRequestTimeout))

		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("OK"))
		})

		// Ready once a wallet account is authorized
		r.Get("/ready", func(w http.ResponseWriter, _ *http.Request) {
			if !orch.Session().Connected() {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_CONNECTED"))
				return
			}
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("READY"))
		})

		if s.cfg.Monitoring.Enabled {
			r.Handle("/metrics", promhttp.Handler())
			logger.Info("Metrics enabled", zap.String("path", "/metrics"))
		}
	})

	// Bridge routes apply their own timeout around everything but the
	// wallet prompt
	r.Route("/api/v1", func(r chi.Router) {
		bridge.RegisterRoutes(r, orch, ctx, logger)
	})

	return r
}

type stack struct {
	gateway *wallet.Gateway
	orch    *bridge.Orchestrator
}

// newStack detects the wallet provider and wires the session, the contract
// facade and the orchestrator. Wallet notifications go through the session
// first and then nudge the orchestrator.
func newStack(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*stack, error) {
	gw, err := wallet.Detect(ctx, cfg.Wallets, cfg.Ethereum, logger)
	if err != nil {
		return nil, fmt.Errorf("detect wallet: %w", err)
	}

	chainID, err := gw.CurrentChainID(ctx)
	if err != nil {
		gw.Close()
		return nil, fmt.Errorf("read chain id: %w", err)
	}
	sess := session.New(chainID)

	endpoints, err := ethereum.EndpointsFromConfig(cfg.Contracts)
	if err != nil {
		gw.Close()
		return nil, err
	}

	facade, err := ethereum.NewFacade(endpoints, gw.Backend(),
		ethereum.WithReceiptInterval(cfg.Ethereum.ReceiptInterval),
		ethereum.WithLogger(logger),
	)
	if err != nil {
		gw.Close()
		return nil, fmt.Errorf("create contract facade: %w", err)
	}

	orch := bridge.NewOrchestrator(
		gw,
		bridge.NewLogFacade(facade, logger),
		sess,
		bridge.Options{ExplorerTxURL: cfg.Explorer.TxURL},
		logger,
	)

	gw.OnAccountsChanged(func(accounts []string) {
		if sess.Apply(session.Event{Type: session.EventAccountsChanged, Accounts: accounts}) {
			orch.ProviderChanged(ctx)
		}
	})
	gw.OnChainChanged(func(id string) {
		if sess.Apply(session.Event{Type: session.EventChainChanged, ChainID: id}) {
			orch.ProviderChanged(ctx)
		}
	})

	logger.Info("Bridge client wired",
		zap.String("wallet", gw.ID()),
		zap.String("chain_id", chainID),
		zap.String("bridge", endpoints.BridgeAddress.Hex()),
	)

	return &stack{gateway: gw, orch: orch}, nil
}
