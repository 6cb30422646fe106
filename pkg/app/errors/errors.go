// Package errors contains the bridge error taxonomy and helpers to work with it.
//
// Every failure coming back from the wallet provider or a contract call is
// normalized into one of the Kind values at the point where the external call
// is made, so callers never have to inspect provider specific error shapes.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/rpc"
)

// Kind defines the error kind
type Kind int

const (
	// KindNone is used for "no error" in state snapshots.
	KindNone Kind = iota
	// KindInvalidRequest The bridge request is malformed or has missing fields.
	// Fatal: the user has to restart the flow with a new request.
	KindInvalidRequest
	// KindProviderUnavailable No wallet provider, or more than one competing provider, was found.
	// Fatal: surfaced at initialization and never retried.
	KindProviderUnavailable
	// KindUserRejected The user declined an account or transaction prompt.
	// Recoverable: the user may retry.
	KindUserRejected
	// KindUnknownSymbol The bridge contract has no token registered for the requested symbol.
	// Fatal for this request.
	KindUnknownSymbol
	// KindChainCallFailed Any read or write RPC error not otherwise classified.
	// Recoverable: the user may retry.
	KindChainCallFailed
)

// userRejectedCode is the EIP-1193 "User Rejected Request" provider error code.
const userRejectedCode = 4001

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindInvalidRequest:
		return "InvalidRequest"
	case KindProviderUnavailable:
		return "ProviderUnavailable"
	case KindUserRejected:
		return "UserRejected"
	case KindUnknownSymbol:
		return "UnknownSymbol"
	default:
		return "ChainCallFailed"
	}
}

// MarshalText renders the kind by name in JSON payloads.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind rendered by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	for c := KindNone; c <= KindChainCallFailed; c++ {
		if c.String() == string(text) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown error kind %q", text)
}

// Recoverable reports whether the user may retry after an error of this kind
// without restarting the flow.
func (k Kind) Recoverable() bool {
	return k == KindUserRejected || k == KindChainCallFailed
}

// BridgeError is the normalized error type used all over the bridge client.
type BridgeError struct {
	Kind    Kind
	Message string
	Err     error
}

// Error method to comply with error interface
func (err *BridgeError) Error() string {
	if err.Err != nil {
		return err.Message + ": " + err.Err.Error()
	}
	return err.Message
}

// Unwrap returns the underlying error
func (err *BridgeError) Unwrap() error {
	return err.Err
}

// StatusCode returns the HTTP status code for the error kind
func (err *BridgeError) StatusCode() int {
	switch err.Kind {
	case KindInvalidRequest:
		return http.StatusBadRequest
	case KindProviderUnavailable:
		return http.StatusServiceUnavailable
	case KindUserRejected:
		return http.StatusForbidden
	case KindUnknownSymbol:
		return http.StatusNotFound
	case KindChainCallFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Is checks that provided error is a BridgeError of the desired Kind
func Is(err error, kind Kind) bool {
	var bErr *BridgeError
	if errors.As(err, &bErr) && bErr.Kind == kind {
		return true
	}
	return false
}

// KindOf returns the kind of err. Unclassified non-nil errors are ChainCallFailed.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var bErr *BridgeError
	if errors.As(err, &bErr) {
		return bErr.Kind
	}
	return KindChainCallFailed
}

func newError(kind Kind, err error, message string) error {
	return &BridgeError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// InvalidRequestError returns an error with kind InvalidRequest
func InvalidRequestError(err error, message string) error {
	return newError(KindInvalidRequest, err, message)
}

// ProviderUnavailableError returns an error with kind ProviderUnavailable
func ProviderUnavailableError(err error, message string) error {
	return newError(KindProviderUnavailable, err, message)
}

// UserRejectedError returns an error with kind UserRejected
func UserRejectedError(err error, message string) error {
	return newError(KindUserRejected, err, message)
}

// UnknownSymbolError returns an error with kind UnknownSymbol
func UnknownSymbolError(err error, message string) error {
	return newError(KindUnknownSymbol, err, message)
}

// ChainCallError returns an error with kind ChainCallFailed
func ChainCallError(err error, message string) error {
	return newError(KindChainCallFailed, err, message)
}

// Classify normalizes an error returned by the wallet provider or a node.
// Errors that are already classified pass through untouched, wallet declines
// become UserRejected and everything else becomes ChainCallFailed.
func Classify(err error, message string) error {
	if err == nil {
		return nil
	}
	var bErr *BridgeError
	if errors.As(err, &bErr) {
		return err
	}
	if IsUserRejection(err) {
		return UserRejectedError(err, message)
	}
	return ChainCallError(err, message)
}

// IsUserRejection reports whether err is a wallet decline: either an RPC
// error carrying the EIP-1193 4001 code or a provider message saying so.
func IsUserRejection(err error) bool {
	if err == nil {
		return false
	}
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == userRejectedCode {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "user rejected") ||
		strings.Contains(msg, "user denied") ||
		strings.Contains(msg, "request denied")
}
