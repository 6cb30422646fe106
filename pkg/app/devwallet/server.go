// Package devwallet implements app.Runner for the development wallet node.
package devwallet

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	apphttp "github.com/chainsafe/dero-bridge/pkg/app/http"
	"github.com/chainsafe/dero-bridge/pkg/config"
	"github.com/chainsafe/dero-bridge/pkg/ethrpc"
)

const defaultHTTPMiddlewareTimeout = 60 * time.Second

// Server holds configuration for the devwallet process.
type Server struct {
	cfg *config.DevChainConfig
}

// NewServer initializes a new devwallet Server.
func NewServer(cfg *config.DevChainConfig) *Server {
	return &Server{cfg: cfg}
}

// Run starts the simulated chain and serves its JSON-RPC endpoint together
// with inspection routes. It blocks until an OS shutdown signal is received
// or a fatal server error occurs.
func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("nil config")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging, "devwallet")
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	node, err := ethrpc.NewFromConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("create devwallet node: %w", err)
	}
	defer node.Stop()

	logger.Info("Starting devwallet",
		zap.Uint64("chain_id", cfg.ChainID),
		zap.String("bridge", cfg.BridgeAddress),
		zap.Strings("accounts", addressStrings(node)),
	)

	return apphttp.ServeAndWait(ctx, NewRouter(node, logger), logger, &cfg.Server)
}

// NewRouter serves JSON-RPC on the root path and exposes what the simulated
// chain has recorded under /api/v1.
func NewRouter(node *ethrpc.Server, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(defaultHTTPMiddlewareTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Handle("/", node)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/approvals", handleGetApprovals(node))
		r.Get("/deposits", handleGetDeposits(node))
		r.Get("/status", handleGetStatus(node))
		r.Post("/wallet/select/{index}", apphttp.HandleError(handleSelectAccount(node, logger)))
		r.Post("/wallet/disconnect", handleDisconnect(node, logger))
		r.Post("/chain/id/{id}", apphttp.HandleError(handleSetChainID(node, logger)))
		r.Post("/chain/fee/{wei}", apphttp.HandleError(handleSetBridgeFee(node, logger)))
	})

	return r
}

func handleGetApprovals(node *ethrpc.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		apphttp.WriteJSON(w, http.StatusOK, map[string]any{"approvals": node.Chain().Approvals()})
	}
}

func handleGetDeposits(node *ethrpc.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		apphttp.WriteJSON(w, http.StatusOK, map[string]any{"deposits": node.Chain().Deposits()})
	}
}

func handleGetStatus(node *ethrpc.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		apphttp.WriteJSON(w, http.StatusOK, map[string]any{
			"status":   "running",
			"chainId":  node.Chain().ChainID().String(),
			"accounts": addressStrings(node),
		})
	}
}

// handleSelectAccount switches the account the wallet exposes, which the
// bridge client observes as an accountsChanged notification.
func handleSelectAccount(node *ethrpc.Server, logger *zap.Logger) apphttp.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			return apphttp.WithStatus(http.StatusBadRequest, fmt.Errorf("invalid account index: %w", err))
		}
		if err := node.Wallet().SelectAccount(index); err != nil {
			return apphttp.WithStatus(http.StatusBadRequest, err)
		}
		logger.Info("Devwallet account selected", zap.Int("index", index))
		apphttp.WriteJSON(w, http.StatusOK, map[string]any{"accounts": addressStrings(node)})
		return nil
	}
}

func handleDisconnect(node *ethrpc.Server, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		node.Wallet().Disconnect()
		logger.Info("Devwallet disconnected")
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleSetChainID simulates the user switching networks in the wallet.
func handleSetChainID(node *ethrpc.Server, logger *zap.Logger) apphttp.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id == 0 {
			return apphttp.WithStatus(http.StatusBadRequest, fmt.Errorf("invalid chain id %q", chi.URLParam(r, "id")))
		}
		node.Chain().SetChainID(id)
		logger.Info("Devwallet chain switched", zap.Uint64("chain_id", id))
		apphttp.WriteJSON(w, http.StatusOK, map[string]any{"chainId": node.Chain().ChainID().String()})
		return nil
	}
}

func handleSetBridgeFee(node *ethrpc.Server, logger *zap.Logger) apphttp.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		fee, ok := new(big.Int).SetString(chi.URLParam(r, "wei"), 10)
		if !ok || fee.Sign() < 0 {
			return apphttp.WithStatus(http.StatusBadRequest, fmt.Errorf("invalid fee %q", chi.URLParam(r, "wei")))
		}
		node.Chain().SetBridgeFee(fee)
		logger.Info("Devwallet bridge fee changed", zap.String("fee", fee.String()))
		apphttp.WriteJSON(w, http.StatusOK, map[string]any{"bridgeFee": fee.String()})
		return nil
	}
}

func addressStrings(node *ethrpc.Server) []string {
	addrs := node.Wallet().Addresses()
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, a.Hex())
	}
	return out
}
