package devwallet

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chainsafe/dero-bridge/pkg/config"
	"github.com/chainsafe/dero-bridge/pkg/ethereum/contracts"
	"github.com/chainsafe/dero-bridge/pkg/ethrpc"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	_, h := newTestNode(t)
	return h
}

func newTestNode(t *testing.T) (*ethrpc.Server, http.Handler) {
	t.Helper()

	node, err := ethrpc.NewFromConfig(&config.DevChainConfig{
		ChainID:       1337,
		BridgeAddress: "0x00000000000000000000000000000000000000b1",
		BridgeFeeWei:  "1000",
		GasPriceWei:   "1000000000",
		GasLimit:      300000,
		Accounts: []config.DevAccountConfig{
			{PrivateKey: "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"},
			{PrivateKey: "59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"},
		},
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(node.Stop)

	return node, NewRouter(node, zap.NewNop())
}

func TestRouter_Health(t *testing.T) {
	h := newTestRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestRouter_Status(t *testing.T) {
	h := newTestRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		ChainID  string   `json:"chainId"`
		Accounts []string `json:"accounts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "1337", got.ChainID)
	assert.Len(t, got.Accounts, 2)
}

func TestRouter_JSONRPC(t *testing.T) {
	h := newTestRouter(t)

	body := []byte(`{"jsonrpc":"2.0","id":1,"method":"eth_chainId","params":[]}`)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Result string `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "0x539", got.Result)
}

func TestRouter_SelectAccount(t *testing.T) {
	h := newTestRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/wallet/select/1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/wallet/select/7", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/wallet/select/one", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Disconnect(t *testing.T) {
	node, h := newTestNode(t)
	client := node.InProc()
	defer client.Close()

	var accounts []string
	require.NoError(t, client.Call(&accounts, "eth_requestAccounts"))
	require.NoError(t, client.Call(&accounts, "eth_accounts"))
	require.Len(t, accounts, 1)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/wallet/disconnect", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	require.NoError(t, client.Call(&accounts, "eth_accounts"))
	assert.Empty(t, accounts)
}

func TestRouter_ChainControls(t *testing.T) {
	node, h := newTestNode(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/chain/id/5", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "5", node.Chain().ChainID().String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/chain/id/zero", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/chain/fee/7000", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	client := node.InProc()
	defer client.Close()
	bridge, err := contracts.NewDeroBridgeCaller(common.HexToAddress("0x00000000000000000000000000000000000000b1"), ethclient.NewClient(client))
	require.NoError(t, err)
	fee, err := bridge.BridgeFee(&bind.CallOpts{})
	require.NoError(t, err)
	assert.Equal(t, "7000", fee.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/chain/fee/-1", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
