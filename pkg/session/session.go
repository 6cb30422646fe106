// Package session tracks the connected wallet account and active chain.
//
// The session is mutated only through Apply; everybody else reads immutable
// snapshots.
package session

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// EventType identifies a wallet notification.
type EventType string

const (
	EventAccountsChanged EventType = "accountsChanged"
	EventChainChanged    EventType = "chainChanged"
)

// Event is a wallet notification. Accounts is set for accountsChanged,
// ChainID for chainChanged.
type Event struct {
	Type     EventType
	Accounts []string
	ChainID  string
}

// Snapshot is an immutable copy of the session state.
type Snapshot struct {
	ChainID string          `json:"chainId"`
	Account *common.Address `json:"account,omitempty"`
}

// Connected reports whether an account has been authorized.
func (s Snapshot) Connected() bool {
	return s.Account != nil
}

// Session is the wallet session. The zero value is not usable; use New.
type Session struct {
	mu      sync.RWMutex
	chainID string
	account *common.Address
	version uint64
}

// New creates a session for the chain reported at provider detection.
func New(chainID string) *Session {
	return &Session{chainID: normalizeChainID(chainID)}
}

// Apply is the single entry point that mutates the session. It reports
// whether the event changed anything.
func (s *Session) Apply(ev Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev.Type {
	case EventAccountsChanged:
		next := firstAccount(ev.Accounts)
		if sameAccount(s.account, next) {
			return false
		}
		s.account = next
	case EventChainChanged:
		id := normalizeChainID(ev.ChainID)
		if id == "" || id == s.chainID {
			return false
		}
		s.chainID = id
	default:
		return false
	}
	s.version++
	return true
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{ChainID: s.chainID}
	if s.account != nil {
		acct := *s.account
		snap.Account = &acct
	}
	return snap
}

// Version increments on every applied change.
func (s *Session) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func firstAccount(accounts []string) *common.Address {
	for _, a := range accounts {
		if common.IsHexAddress(a) {
			addr := common.HexToAddress(a)
			return &addr
		}
	}
	return nil
}

func sameAccount(a, b *common.Address) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// normalizeChainID lower-cases hex chain ids so "0x1" and "0X1" compare equal.
func normalizeChainID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
