// Package request holds the validated bridge transfer intent.
package request

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperrors "github.com/chainsafe/dero-bridge/pkg/app/errors"
)

var validate = validator.New()

// Payload is the decoded bridge request as supplied by the caller (query
// string, JSON body or CLI flags).
type Payload struct {
	WalletAddress string `json:"walletAddress" validate:"required"`
	Symbol        string `json:"symbol" validate:"required"`
	Amount        string `json:"amount" validate:"required"`
}

// BridgeRequest is an accepted transfer intent. Fields are unexported so an
// accepted request cannot be mutated.
type BridgeRequest struct {
	walletAddress string
	symbol        string
	amount        decimal.Decimal
	rawAmount     string
}

// New validates p and returns the accepted request. Any missing or empty
// field, or a non-positive amount, fails with InvalidRequest.
func New(p Payload) (*BridgeRequest, error) {
	p.WalletAddress = strings.TrimSpace(p.WalletAddress)
	p.Symbol = strings.TrimSpace(p.Symbol)
	p.Amount = strings.TrimSpace(p.Amount)

	if err := validate.Struct(p); err != nil {
		return nil, apperrors.InvalidRequestError(err, "bridge request is missing required fields")
	}

	amount, err := decimal.NewFromString(p.Amount)
	if err != nil {
		return nil, apperrors.InvalidRequestError(err, fmt.Sprintf("invalid amount %q", p.Amount))
	}
	if !amount.IsPositive() {
		return nil, apperrors.InvalidRequestError(nil, "amount must be greater than zero")
	}

	return &BridgeRequest{
		walletAddress: p.WalletAddress,
		symbol:        p.Symbol,
		amount:        amount,
		rawAmount:     p.Amount,
	}, nil
}

// WalletAddress is the destination address on the target chain.
func (r *BridgeRequest) WalletAddress() string { return r.walletAddress }

// Symbol is the token ticker registered on the bridge contract.
func (r *BridgeRequest) Symbol() string { return r.symbol }

// Amount is the human-entered amount.
func (r *BridgeRequest) Amount() decimal.Decimal { return r.amount }

// Payload returns the request as it was accepted.
func (r *BridgeRequest) Payload() Payload {
	return Payload{
		WalletAddress: r.walletAddress,
		Symbol:        r.symbol,
		Amount:        r.rawAmount,
	}
}
