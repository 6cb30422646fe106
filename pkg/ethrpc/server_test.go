package ethrpc

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chainsafe/dero-bridge/pkg/config"
	"github.com/chainsafe/dero-bridge/pkg/ethereum/contracts"
)

const (
	testKey    = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testBridge = "0x00000000000000000000000000000000000000b1"
	testUSDC   = "0x00000000000000000000000000000000000000c1"
)

var testAccount = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

func newTestServer(t *testing.T) (*Server, *rpc.Client) {
	t.Helper()

	srv, err := NewFromConfig(&config.DevChainConfig{
		ChainID:       1337,
		BridgeAddress: testBridge,
		BridgeFeeWei:  "1000",
		GasPriceWei:   "1000000000",
		GasLimit:      300000,
		Accounts:      []config.DevAccountConfig{{PrivateKey: testKey}},
		Tokens: []config.DevTokenConfig{{
			Symbol:   "USDC",
			Address:  testUSDC,
			Decimals: 6,
			Balances: map[string]string{testAccount.Hex(): "50000000"},
		}},
	}, zap.NewNop())
	require.NoError(t, err)

	client := srv.InProc()
	t.Cleanup(func() {
		client.Close()
		srv.Stop()
	})
	return srv, client
}

func keyedOpts(t *testing.T, eth *ethclient.Client, value *big.Int) *bind.TransactOpts {
	t.Helper()

	key, err := crypto.HexToECDSA(testKey)
	require.NoError(t, err)
	opts, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(1337))
	require.NoError(t, err)

	nonce, err := eth.PendingNonceAt(context.Background(), testAccount)
	require.NoError(t, err)
	opts.Nonce = new(big.Int).SetUint64(nonce)
	opts.GasLimit = 300000
	opts.GasPrice = big.NewInt(1000000000)
	opts.Value = value
	return opts
}

func TestServer_ReadsContracts(t *testing.T) {
	_, client := newTestServer(t)
	eth := ethclient.NewClient(client)

	chainID, err := eth.ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1337), chainID.Int64())

	bridge, err := contracts.NewDeroBridge(common.HexToAddress(testBridge), eth)
	require.NoError(t, err)

	fee, err := bridge.BridgeFee(&bind.CallOpts{})
	require.NoError(t, err)
	assert.Equal(t, "1000", fee.String())

	usdc, err := bridge.RegisteredSymbol(&bind.CallOpts{}, "USDC")
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testUSDC), usdc)

	unknown, err := bridge.RegisteredSymbol(&bind.CallOpts{}, "XYZ")
	require.NoError(t, err)
	assert.Equal(t, common.Address{}, unknown)

	token, err := contracts.NewERC20(usdc, eth)
	require.NoError(t, err)
	decimals, err := token.Decimals(&bind.CallOpts{})
	require.NoError(t, err)
	assert.Equal(t, uint8(6), decimals)

	balance, err := token.BalanceOf(&bind.CallOpts{}, testAccount)
	require.NoError(t, err)
	assert.Equal(t, "50000000", balance.String())
}

func TestServer_ApproveThenBridge(t *testing.T) {
	srv, client := newTestServer(t)
	eth := ethclient.NewClient(client)
	ctx := context.Background()

	token, err := contracts.NewERC20(common.HexToAddress(testUSDC), eth)
	require.NoError(t, err)
	tx, err := token.Approve(keyedOpts(t, eth, nil), common.HexToAddress(testBridge), big.NewInt(10000000))
	require.NoError(t, err)

	receipt, err := eth.TransactionReceipt(ctx, tx.Hash())
	require.NoError(t, err)
	assert.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)
	require.Len(t, receipt.Logs, 1)

	bridge, err := contracts.NewDeroBridge(common.HexToAddress(testBridge), eth)
	require.NoError(t, err)
	tx, err = bridge.BridgeETH2DERO(keyedOpts(t, eth, big.NewInt(1000)),
		common.HexToAddress(testUSDC), "dero1qyexample", big.NewInt(10000000))
	require.NoError(t, err)

	receipt, err = eth.TransactionReceipt(ctx, tx.Hash())
	require.NoError(t, err)
	assert.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)

	deposits := srv.Chain().Deposits()
	require.Len(t, deposits, 1)
	assert.Equal(t, "dero1qyexample", deposits[0].DeroAddress)
	assert.Equal(t, "10000000", deposits[0].Amount.String())
	assert.Equal(t, "40000000", srv.Chain().BalanceOf(common.HexToAddress(testUSDC), testAccount).String())
	assert.Equal(t, "0", srv.Chain().Allowance(common.HexToAddress(testUSDC), testAccount, common.HexToAddress(testBridge)).String())
}

func TestServer_BridgeWithoutAllowanceReverts(t *testing.T) {
	srv, client := newTestServer(t)
	eth := ethclient.NewClient(client)

	bridge, err := contracts.NewDeroBridge(common.HexToAddress(testBridge), eth)
	require.NoError(t, err)
	tx, err := bridge.BridgeETH2DERO(keyedOpts(t, eth, big.NewInt(1000)),
		common.HexToAddress(testUSDC), "dero1qyexample", big.NewInt(10000000))
	require.NoError(t, err)

	receipt, err := eth.TransactionReceipt(context.Background(), tx.Hash())
	require.NoError(t, err)
	assert.Equal(t, types.ReceiptStatusFailed, receipt.Status)
	assert.Empty(t, srv.Chain().Deposits())
}

func TestServer_RejectsStaleNonce(t *testing.T) {
	_, client := newTestServer(t)
	eth := ethclient.NewClient(client)

	token, err := contracts.NewERC20(common.HexToAddress(testUSDC), eth)
	require.NoError(t, err)

	opts := keyedOpts(t, eth, nil)
	_, err = token.Approve(opts, common.HexToAddress(testBridge), big.NewInt(1))
	require.NoError(t, err)

	// same nonce again
	_, err = token.Approve(opts, common.HexToAddress(testBridge), big.NewInt(2))
	require.Error(t, err)
}

func TestServer_WalletAuthorization(t *testing.T) {
	srv, client := newTestServer(t)
	ctx := context.Background()

	var accounts []common.Address
	require.NoError(t, client.CallContext(ctx, &accounts, "eth_accounts"))
	assert.Empty(t, accounts)

	srv.Wallet().SetRejectRequests(true)
	err := client.CallContext(ctx, &accounts, "eth_requestAccounts")
	require.Error(t, err)
	var rpcErr rpc.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, 4001, rpcErr.ErrorCode())

	srv.Wallet().SetRejectRequests(false)
	require.NoError(t, client.CallContext(ctx, &accounts, "eth_requestAccounts"))
	assert.Equal(t, []common.Address{testAccount}, accounts)

	require.NoError(t, client.CallContext(ctx, &accounts, "eth_accounts"))
	assert.Equal(t, []common.Address{testAccount}, accounts)
}

func TestServer_SignTransaction(t *testing.T) {
	srv, client := newTestServer(t)
	ctx := context.Background()

	to := common.HexToAddress(testUSDC)
	args := map[string]interface{}{
		"from":  testAccount,
		"to":    to,
		"nonce": "0x0",
		"data":  "0x",
	}

	var res SignTransactionResult
	err := client.CallContext(ctx, &res, "eth_signTransaction", args)
	require.Error(t, err, "unauthorized accounts cannot sign")

	var accounts []common.Address
	require.NoError(t, client.CallContext(ctx, &accounts, "eth_requestAccounts"))
	require.NoError(t, client.CallContext(ctx, &res, "eth_signTransaction", args))

	tx := new(types.Transaction)
	require.NoError(t, tx.UnmarshalBinary(res.Raw))
	sender, err := types.Sender(types.LatestSignerForChainID(srv.Chain().ChainID()), tx)
	require.NoError(t, err)
	assert.Equal(t, testAccount, sender)

	srv.Wallet().SetRejectSignatures(true)
	err = client.CallContext(ctx, &res, "eth_signTransaction", args)
	var rpcErr rpc.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, 4001, rpcErr.ErrorCode())
}

func TestServer_NetAndWeb3(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	var version string
	require.NoError(t, client.CallContext(ctx, &version, "net_version"))
	assert.Equal(t, "1337", version)

	require.NoError(t, client.CallContext(ctx, &version, "web3_clientVersion"))
	assert.Equal(t, clientVersion, version)
}
