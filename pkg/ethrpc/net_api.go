package ethrpc

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// NetAPI implements the net_* JSON-RPC namespace
type NetAPI struct {
	server *Server
}

// NewNetAPI creates a new NetAPI instance
func NewNetAPI(server *Server) *NetAPI {
	return &NetAPI{server: server}
}

// Version returns the network ID, which equals the chain id here
func (api *NetAPI) Version() string {
	return api.server.chain.ChainID().String()
}

// Listening returns true (always listening)
func (api *NetAPI) Listening() bool {
	return true
}

// PeerCount returns the number of peers (always 0)
func (api *NetAPI) PeerCount() hexutil.Uint {
	return hexutil.Uint(0)
}
