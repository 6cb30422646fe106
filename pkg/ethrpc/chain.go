package ethrpc

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/chainsafe/dero-bridge/pkg/ethereum/contracts"
)

var errReverted = errors.New("execution reverted")

// Approval records an applied approve call.
type Approval struct {
	TxHash  common.Hash
	Owner   common.Address
	Token   common.Address
	Spender common.Address
	Amount  *big.Int
}

// Deposit records an applied bridgeETH2DERO call.
type Deposit struct {
	TxHash      common.Hash
	From        common.Address
	Token       common.Address
	DeroAddress string
	Amount      *big.Int
	Fee         *big.Int
}

type token struct {
	symbol     string
	address    common.Address
	decimals   uint8
	balances   map[common.Address]*big.Int
	allowances map[common.Address]map[common.Address]*big.Int
}

type minedTx struct {
	tx          *types.Transaction
	from        common.Address
	blockNumber uint64
	status      uint64
	logs        []*types.Log
}

// Chain is an in-memory ledger exposing the bridge and ERC-20 contract
// surface. Every accepted transaction is mined into its own block.
type Chain struct {
	mu sync.RWMutex

	chainID   *big.Int
	bridge    common.Address
	bridgeFee *big.Int
	gasPrice  *big.Int
	gasLimit  uint64

	tokens  map[common.Address]*token
	symbols map[string]common.Address
	nonces  map[common.Address]uint64
	mined   map[common.Hash]*minedTx
	block   uint64

	approvals []Approval
	deposits  []Deposit

	bridgeABI *abi.ABI
	erc20ABI  *abi.ABI
}

// NewChain creates an empty chain with the bridge contract deployed at bridge.
func NewChain(chainID uint64, bridge common.Address, bridgeFee, gasPrice *big.Int, gasLimit uint64) (*Chain, error) {
	bridgeABI, err := contracts.DeroBridgeMetaData.GetAbi()
	if err != nil {
		return nil, fmt.Errorf("failed to parse bridge ABI: %w", err)
	}
	erc20ABI, err := contracts.ERC20MetaData.GetAbi()
	if err != nil {
		return nil, fmt.Errorf("failed to parse ERC20 ABI: %w", err)
	}

	return &Chain{
		chainID:   new(big.Int).SetUint64(chainID),
		bridge:    bridge,
		bridgeFee: new(big.Int).Set(bridgeFee),
		gasPrice:  new(big.Int).Set(gasPrice),
		gasLimit:  gasLimit,
		tokens:    make(map[common.Address]*token),
		symbols:   make(map[string]common.Address),
		nonces:    make(map[common.Address]uint64),
		mined:     make(map[common.Hash]*minedTx),
		bridgeABI: bridgeABI,
		erc20ABI:  erc20ABI,
	}, nil
}

// RegisterToken deploys a token and registers its symbol on the bridge.
func (c *Chain) RegisterToken(symbol string, address common.Address, decimals uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tokens[address] = &token{
		symbol:     symbol,
		address:    address,
		decimals:   decimals,
		balances:   make(map[common.Address]*big.Int),
		allowances: make(map[common.Address]map[common.Address]*big.Int),
	}
	c.symbols[symbol] = address
}

// SetBalance sets holder's balance of tokenAddr.
func (c *Chain) SetBalance(tokenAddr, holder common.Address, amount *big.Int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.tokens[tokenAddr]
	if !ok {
		return fmt.Errorf("unknown token %s", tokenAddr.Hex())
	}
	t.balances[holder] = new(big.Int).Set(amount)
	return nil
}

// SetAllowance sets the allowance of spender over owner's tokenAddr balance.
func (c *Chain) SetAllowance(tokenAddr, owner, spender common.Address, amount *big.Int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.tokens[tokenAddr]
	if !ok {
		return fmt.Errorf("unknown token %s", tokenAddr.Hex())
	}
	t.setAllowance(owner, spender, amount)
	return nil
}

// SetBridgeFee changes the fee returned by bridgeFee().
func (c *Chain) SetBridgeFee(fee *big.Int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bridgeFee = new(big.Int).Set(fee)
}

// SetChainID switches the chain id, as when the wallet changes network.
func (c *Chain) SetChainID(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chainID = new(big.Int).SetUint64(id)
}

// ChainID returns the current chain id.
func (c *Chain) ChainID() *big.Int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return new(big.Int).Set(c.chainID)
}

// BalanceOf returns holder's balance of tokenAddr.
func (c *Chain) BalanceOf(tokenAddr, holder common.Address) *big.Int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.tokens[tokenAddr]
	if !ok {
		return new(big.Int)
	}
	return t.balance(holder)
}

// Allowance returns the allowance of spender over owner's tokenAddr balance.
func (c *Chain) Allowance(tokenAddr, owner, spender common.Address) *big.Int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.tokens[tokenAddr]
	if !ok {
		return new(big.Int)
	}
	return t.allowance(owner, spender)
}

// Approvals returns the approve calls applied so far.
func (c *Chain) Approvals() []Approval {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Approval(nil), c.approvals...)
}

// Deposits returns the bridge deposits applied so far.
func (c *Chain) Deposits() []Deposit {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Deposit(nil), c.deposits...)
}

// hasCode reports whether a contract lives at addr.
func (c *Chain) hasCode(addr common.Address) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if addr == c.bridge {
		return true
	}
	_, ok := c.tokens[addr]
	return ok
}

// call executes a read-only contract call.
func (c *Chain) call(to common.Address, input []byte) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if to == c.bridge {
		return c.callBridge(input)
	}
	if t, ok := c.tokens[to]; ok {
		return c.callToken(t, input)
	}
	// No code at the address: an empty result, like a real node.
	return nil, nil
}

func (c *Chain) callBridge(input []byte) ([]byte, error) {
	method, args, err := unpackCall(c.bridgeABI, input)
	if err != nil {
		return nil, err
	}

	switch method.Name {
	case "bridgeFee":
		return method.Outputs.Pack(new(big.Int).Set(c.bridgeFee))
	case "registeredSymbol":
		symbol, _ := args[0].(string)
		return method.Outputs.Pack(c.symbols[symbol])
	default:
		return nil, fmt.Errorf("%w: %s is not a view", errReverted, method.Name)
	}
}

func (c *Chain) callToken(t *token, input []byte) ([]byte, error) {
	method, args, err := unpackCall(c.erc20ABI, input)
	if err != nil {
		return nil, err
	}

	switch method.Name {
	case "allowance":
		owner, _ := args[0].(common.Address)
		spender, _ := args[1].(common.Address)
		return method.Outputs.Pack(t.allowance(owner, spender))
	case "balanceOf":
		holder, _ := args[0].(common.Address)
		return method.Outputs.Pack(t.balance(holder))
	case "decimals":
		return method.Outputs.Pack(t.decimals)
	case "symbol":
		return method.Outputs.Pack(t.symbol)
	default:
		return nil, fmt.Errorf("%w: %s is not a view", errReverted, method.Name)
	}
}

// nonce returns the next nonce for addr.
func (c *Chain) nonce(addr common.Address) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.nonces[addr]
}

// apply validates and mines a signed transaction. Contract failures still
// mine the transaction, with a failed status.
func (c *Chain) apply(tx *types.Transaction) (common.Hash, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	from, err := types.Sender(types.LatestSignerForChainID(c.chainID), tx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("invalid sender: %w", err)
	}
	if _, dup := c.mined[tx.Hash()]; dup {
		return common.Hash{}, fmt.Errorf("already known")
	}
	if want := c.nonces[from]; tx.Nonce() != want {
		return common.Hash{}, fmt.Errorf("invalid nonce for %s: have %d, want %d", from.Hex(), tx.Nonce(), want)
	}
	if tx.To() == nil {
		return common.Hash{}, fmt.Errorf("contract creation is not supported")
	}

	c.nonces[from]++
	c.block++

	mined := &minedTx{tx: tx, from: from, blockNumber: c.block, status: types.ReceiptStatusSuccessful}
	logs, execErr := c.execute(from, tx)
	if execErr != nil {
		mined.status = types.ReceiptStatusFailed
	} else {
		mined.logs = logs
	}
	c.mined[tx.Hash()] = mined

	return tx.Hash(), nil
}

func (c *Chain) execute(from common.Address, tx *types.Transaction) ([]*types.Log, error) {
	to := *tx.To()

	if to == c.bridge {
		method, args, err := unpackCall(c.bridgeABI, tx.Data())
		if err != nil {
			return nil, err
		}
		if method.Name != "bridgeETH2DERO" {
			return nil, fmt.Errorf("%w: %s is a view", errReverted, method.Name)
		}
		tokenAddr, _ := args[0].(common.Address)
		deroAddress, _ := args[1].(string)
		amount, _ := args[2].(*big.Int)
		return nil, c.bridgeIn(tx, from, tokenAddr, deroAddress, amount)
	}

	t, ok := c.tokens[to]
	if !ok {
		return nil, fmt.Errorf("%w: no contract at %s", errReverted, to.Hex())
	}
	if tx.Value().Sign() != 0 {
		return nil, fmt.Errorf("%w: token is not payable", errReverted)
	}
	method, args, err := unpackCall(c.erc20ABI, tx.Data())
	if err != nil {
		return nil, err
	}
	if method.Name != "approve" {
		return nil, fmt.Errorf("%w: unsupported method %s", errReverted, method.Name)
	}
	spender, _ := args[0].(common.Address)
	amount, _ := args[1].(*big.Int)

	t.setAllowance(from, spender, amount)
	c.approvals = append(c.approvals, Approval{
		TxHash:  tx.Hash(),
		Owner:   from,
		Token:   to,
		Spender: spender,
		Amount:  new(big.Int).Set(amount),
	})
	return []*types.Log{c.approvalLog(tx, to, from, spender, amount)}, nil
}

func (c *Chain) bridgeIn(tx *types.Transaction, from, tokenAddr common.Address, deroAddress string, amount *big.Int) error {
	if tx.Value().Cmp(c.bridgeFee) != 0 {
		return fmt.Errorf("%w: fee mismatch", errReverted)
	}
	t, ok := c.tokens[tokenAddr]
	if !ok {
		return fmt.Errorf("%w: token not registered", errReverted)
	}
	if amount == nil || amount.Sign() <= 0 {
		return fmt.Errorf("%w: zero amount", errReverted)
	}
	allowance := t.allowance(from, c.bridge)
	if allowance.Cmp(amount) < 0 {
		return fmt.Errorf("%w: insufficient allowance", errReverted)
	}
	balance := t.balance(from)
	if balance.Cmp(amount) < 0 {
		return fmt.Errorf("%w: insufficient balance", errReverted)
	}

	t.balances[from] = balance.Sub(balance, amount)
	t.setAllowance(from, c.bridge, allowance.Sub(allowance, amount))
	bridged := t.balance(c.bridge)
	t.balances[c.bridge] = bridged.Add(bridged, amount)

	c.deposits = append(c.deposits, Deposit{
		TxHash:      tx.Hash(),
		From:        from,
		Token:       tokenAddr,
		DeroAddress: deroAddress,
		Amount:      new(big.Int).Set(amount),
		Fee:         new(big.Int).Set(tx.Value()),
	})
	return nil
}

func (c *Chain) approvalLog(tx *types.Transaction, tokenAddr, owner, spender common.Address, amount *big.Int) *types.Log {
	return &types.Log{
		Address: tokenAddr,
		Topics: []common.Hash{
			c.erc20ABI.Events["Approval"].ID,
			common.BytesToHash(common.LeftPadBytes(owner.Bytes(), 32)),
			common.BytesToHash(common.LeftPadBytes(spender.Bytes(), 32)),
		},
		Data:        common.LeftPadBytes(amount.Bytes(), 32),
		BlockNumber: c.block,
		TxHash:      tx.Hash(),
		BlockHash:   blockHash(c.chainID, c.block),
	}
}

// receipt returns the mined receipt for hash, or nil when unknown.
func (c *Chain) receipt(hash common.Hash) *minedTx {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mined[hash]
}

func (c *Chain) blockNumber() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.block
}

func (t *token) balance(holder common.Address) *big.Int {
	if b, ok := t.balances[holder]; ok {
		return new(big.Int).Set(b)
	}
	return new(big.Int)
}

func (t *token) allowance(owner, spender common.Address) *big.Int {
	if a, ok := t.allowances[owner][spender]; ok {
		return new(big.Int).Set(a)
	}
	return new(big.Int)
}

func (t *token) setAllowance(owner, spender common.Address, amount *big.Int) {
	if t.allowances[owner] == nil {
		t.allowances[owner] = make(map[common.Address]*big.Int)
	}
	t.allowances[owner][spender] = new(big.Int).Set(amount)
}

func unpackCall(contract *abi.ABI, input []byte) (*abi.Method, []interface{}, error) {
	if len(input) < 4 {
		return nil, nil, fmt.Errorf("%w: missing function selector", errReverted)
	}
	method, err := contract.MethodById(input[:4])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: unknown method", errReverted)
	}
	args, err := method.Inputs.Unpack(input[4:])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to decode %s args: %v", errReverted, method.Name, err)
	}
	return method, args, nil
}

// blockHash derives a stable synthetic hash for a block number.
func blockHash(chainID *big.Int, number uint64) common.Hash {
	return crypto.Keccak256Hash(chainID.Bytes(), new(big.Int).SetUint64(number).Bytes())
}
