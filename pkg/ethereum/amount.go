package ethereum

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	apperrors "github.com/chainsafe/dero-bridge/pkg/app/errors"
)

// ToSmallestUnit scales a human amount to the token's integer unit using its
// on-chain decimals. Amounts with more fractional digits than the token
// supports are rejected instead of rounded.
func ToSmallestUnit(amount decimal.Decimal, decimals uint8) (*big.Int, error) {
	scaled := amount.Shift(int32(decimals))
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, apperrors.InvalidRequestError(nil,
			fmt.Sprintf("amount %s has more than %d decimal places", amount.String(), decimals))
	}
	if scaled.Sign() <= 0 {
		return nil, apperrors.InvalidRequestError(nil, "amount must be greater than zero")
	}
	return scaled.BigInt(), nil
}

// FromSmallestUnit converts an integer token amount back to its human form.
func FromSmallestUnit(value *big.Int, decimals uint8) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(value, -int32(decimals))
}
