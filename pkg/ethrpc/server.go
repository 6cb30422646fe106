// Package ethrpc serves an in-memory EIP-1193 wallet backed by an in-memory
// chain carrying the bridge and ERC-20 contracts. It is used for local runs
// of the bridge client and by tests.
package ethrpc

import (
	"fmt"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/chainsafe/dero-bridge/pkg/config"
)

const clientVersion = "dero-bridge-devwallet/1.0.0"

// Server handles Ethereum JSON-RPC requests for the dev wallet
type Server struct {
	chain  *Chain
	wallet *Wallet
	logger *zap.Logger

	rpcServer *rpc.Server
}

// NewServer creates a JSON-RPC server over chain and wallet
func NewServer(chain *Chain, wallet *Wallet, logger *zap.Logger) (*Server, error) {
	if chain == nil || wallet == nil {
		return nil, fmt.Errorf("chain and wallet are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		chain:     chain,
		wallet:    wallet,
		logger:    logger,
		rpcServer: rpc.NewServer(),
	}

	if err := s.rpcServer.RegisterName("eth", NewEthAPI(s)); err != nil {
		return nil, fmt.Errorf("failed to register eth API: %w", err)
	}
	if err := s.rpcServer.RegisterName("net", NewNetAPI(s)); err != nil {
		return nil, fmt.Errorf("failed to register net API: %w", err)
	}
	if err := s.rpcServer.RegisterName("web3", NewWeb3API()); err != nil {
		return nil, fmt.Errorf("failed to register web3 API: %w", err)
	}

	logger.Info("Dev wallet JSON-RPC server initialized",
		zap.String("chain_id", chain.ChainID().String()),
		zap.String("bridge_address", chain.bridge.Hex()))

	return s, nil
}

// NewFromConfig builds the chain, wallet and server described by cfg.
func NewFromConfig(cfg *config.DevChainConfig, logger *zap.Logger) (*Server, error) {
	fee, _ := new(big.Int).SetString(cfg.BridgeFeeWei, 10)
	gasPrice, _ := new(big.Int).SetString(cfg.GasPriceWei, 10)
	if fee == nil || gasPrice == nil {
		return nil, fmt.Errorf("bridge fee and gas price must be integers")
	}

	chain, err := NewChain(cfg.ChainID, common.HexToAddress(cfg.BridgeAddress), fee, gasPrice, cfg.GasLimit)
	if err != nil {
		return nil, err
	}
	for _, t := range cfg.Tokens {
		addr := common.HexToAddress(t.Address)
		chain.RegisterToken(t.Symbol, addr, t.Decimals)
		for holder, amount := range t.Balances {
			v, ok := new(big.Int).SetString(amount, 10)
			if !ok {
				return nil, fmt.Errorf("invalid %s balance for %s: %q", t.Symbol, holder, amount)
			}
			if err := chain.SetBalance(addr, common.HexToAddress(holder), v); err != nil {
				return nil, err
			}
		}
	}

	keys := make([]string, 0, len(cfg.Accounts))
	for _, a := range cfg.Accounts {
		keys = append(keys, a.PrivateKey)
	}
	wallet, err := NewWallet(keys...)
	if err != nil {
		return nil, err
	}
	wallet.SetRejectRequests(cfg.RejectAccountRequests)

	return NewServer(chain, wallet, logger)
}

// Chain returns the ledger behind the server.
func (s *Server) Chain() *Chain {
	return s.chain
}

// Wallet returns the wallet behind the server.
func (s *Server) Wallet() *Wallet {
	return s.wallet
}

// InProc returns a client connected to the server without a transport.
func (s *Server) InProc() *rpc.Client {
	return rpc.DialInProc(s.rpcServer)
}

// Stop closes the server and any in-process clients.
func (s *Server) Stop() {
	s.rpcServer.Stop()
}

// ServeHTTP handles HTTP requests
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	s.rpcServer.ServeHTTP(w, r)
}
