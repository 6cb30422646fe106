package ethrpc

import (
	"crypto/ecdsa"
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const userRejectedCode = 4001

// userRejectedError is returned for prompts the wallet declines. It carries
// the EIP-1193 code over JSON-RPC.
type userRejectedError struct {
	msg string
}

func (e *userRejectedError) Error() string  { return e.msg }
func (e *userRejectedError) ErrorCode() int { return userRejectedCode }

// Wallet holds the keys of the dev wallet and its authorization state.
// Accounts are exposed only after a successful eth_requestAccounts.
type Wallet struct {
	mu sync.RWMutex

	keys     map[common.Address]*ecdsa.PrivateKey
	order    []common.Address
	selected int

	authorized      bool
	rejectRequests  bool
	rejectSignature bool
}

// NewWallet creates a wallet from hex-encoded private keys. The first key is
// the selected account.
func NewWallet(privateKeys ...string) (*Wallet, error) {
	if len(privateKeys) == 0 {
		return nil, fmt.Errorf("at least one account key is required")
	}

	w := &Wallet{keys: make(map[common.Address]*ecdsa.PrivateKey)}
	for i, hexKey := range privateKeys {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid private key #%d: %w", i, err)
		}
		addr := crypto.PubkeyToAddress(key.PublicKey)
		if _, dup := w.keys[addr]; dup {
			continue
		}
		w.keys[addr] = key
		w.order = append(w.order, addr)
	}
	return w, nil
}

// SetRejectRequests makes eth_requestAccounts decline with code 4001.
func (w *Wallet) SetRejectRequests(reject bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rejectRequests = reject
}

// SetRejectSignatures makes eth_signTransaction decline with code 4001.
func (w *Wallet) SetRejectSignatures(reject bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rejectSignature = reject
}

// SelectAccount switches the exposed account, as a user would in the wallet UI.
func (w *Wallet) SelectAccount(i int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if i < 0 || i >= len(w.order) {
		return fmt.Errorf("account index %d out of range", i)
	}
	w.selected = i
	return nil
}

// Disconnect revokes the authorization granted by eth_requestAccounts.
func (w *Wallet) Disconnect() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.authorized = false
}

// Addresses returns every account the wallet holds keys for.
func (w *Wallet) Addresses() []common.Address {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]common.Address(nil), w.order...)
}

// accounts returns the exposed accounts: none until authorized, then the
// selected account.
func (w *Wallet) accounts() []common.Address {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if !w.authorized {
		return []common.Address{}
	}
	return []common.Address{w.order[w.selected]}
}

func (w *Wallet) requestAccounts() ([]common.Address, error) {
	w.mu.Lock()
	if w.rejectRequests {
		w.mu.Unlock()
		return nil, &userRejectedError{msg: "User rejected the request."}
	}
	w.authorized = true
	w.mu.Unlock()

	return w.accounts(), nil
}

// key returns the signing key for from. Signing requires authorization.
func (w *Wallet) key(from common.Address) (*ecdsa.PrivateKey, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.rejectSignature {
		return nil, &userRejectedError{msg: "User denied transaction signature."}
	}
	if !w.authorized {
		return nil, fmt.Errorf("account %s is not authorized", from.Hex())
	}
	key, ok := w.keys[from]
	if !ok {
		return nil, fmt.Errorf("unknown account %s", from.Hex())
	}
	return key, nil
}
