package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// Provider is the wallet capability the gateway wraps: identity, chain,
// authorization and signing, plus the node backend used for contract calls.
type Provider interface {
	ChainID(ctx context.Context) (*big.Int, error)
	Accounts(ctx context.Context) ([]common.Address, error)
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	SignTx(ctx context.Context, from common.Address, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
	Backend() *ethclient.Client
	Close()
}

// rpcProvider talks to an EIP-1193 wallet over JSON-RPC. Signing prompts the
// user through eth_signTransaction; everything else is proxied to the node.
type rpcProvider struct {
	client *rpc.Client
	eth    *ethclient.Client
}

// NewRPCProvider wraps a connected wallet RPC client.
func NewRPCProvider(client *rpc.Client) Provider {
	return &rpcProvider{client: client, eth: ethclient.NewClient(client)}
}

func (p *rpcProvider) ChainID(ctx context.Context) (*big.Int, error) {
	return p.eth.ChainID(ctx)
}

func (p *rpcProvider) Accounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	if err := p.client.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (p *rpcProvider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	if err := p.client.CallContext(ctx, &accounts, "eth_requestAccounts"); err != nil {
		return nil, err
	}
	return accounts, nil
}

type signTxArgs struct {
	From     common.Address  `json:"from"`
	To       *common.Address `json:"to,omitempty"`
	Gas      hexutil.Uint64  `json:"gas"`
	GasPrice *hexutil.Big    `json:"gasPrice"`
	Value    *hexutil.Big    `json:"value"`
	Nonce    hexutil.Uint64  `json:"nonce"`
	Data     hexutil.Bytes   `json:"data"`
}

type signTxResult struct {
	Raw hexutil.Bytes `json:"raw"`
}

func (p *rpcProvider) SignTx(ctx context.Context, from common.Address, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	args := signTxArgs{
		From:     from,
		To:       tx.To(),
		Gas:      hexutil.Uint64(tx.Gas()),
		GasPrice: (*hexutil.Big)(tx.GasPrice()),
		Value:    (*hexutil.Big)(tx.Value()),
		Nonce:    hexutil.Uint64(tx.Nonce()),
		Data:     tx.Data(),
	}

	var res signTxResult
	if err := p.client.CallContext(ctx, &res, "eth_signTransaction", args); err != nil {
		return nil, err
	}

	signed := new(types.Transaction)
	if err := signed.UnmarshalBinary(res.Raw); err != nil {
		return nil, fmt.Errorf("wallet returned an undecodable transaction: %w", err)
	}
	sender, err := types.Sender(types.LatestSignerForChainID(chainID), signed)
	if err != nil {
		return nil, fmt.Errorf("wallet returned an invalid signature: %w", err)
	}
	if sender != from {
		return nil, fmt.Errorf("wallet signed as %s, expected %s", sender.Hex(), from.Hex())
	}
	return signed, nil
}

func (p *rpcProvider) Backend() *ethclient.Client {
	return p.eth
}

func (p *rpcProvider) Close() {
	p.client.Close()
}

// keyedProvider signs locally with a secp256k1 key against a plain node.
// Account requests resolve to the key's address without a prompt.
type keyedProvider struct {
	eth     *ethclient.Client
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewKeyedProvider wraps a node RPC client and a hex-encoded private key.
func NewKeyedProvider(client *rpc.Client, privateKey string) (Provider, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to load private key: %w", err)
	}
	return &keyedProvider{
		eth:     ethclient.NewClient(client),
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

func (p *keyedProvider) ChainID(ctx context.Context) (*big.Int, error) {
	return p.eth.ChainID(ctx)
}

func (p *keyedProvider) Accounts(context.Context) ([]common.Address, error) {
	return []common.Address{p.address}, nil
}

func (p *keyedProvider) RequestAccounts(context.Context) ([]common.Address, error) {
	return []common.Address{p.address}, nil
}

func (p *keyedProvider) SignTx(_ context.Context, from common.Address, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	if from != p.address {
		return nil, fmt.Errorf("no key for account %s", from.Hex())
	}
	return types.SignTx(tx, types.LatestSignerForChainID(chainID), p.key)
}

func (p *keyedProvider) Backend() *ethclient.Client {
	return p.eth
}

func (p *keyedProvider) Close() {
	p.eth.Close()
}
