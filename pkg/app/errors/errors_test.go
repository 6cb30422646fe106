package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codedError struct {
	code int
	msg  string
}

func (e codedError) Error() string  { return e.msg }
func (e codedError) ErrorCode() int { return e.code }

func TestClassify_UserRejectedByCode(t *testing.T) {
	err := Classify(codedError{code: 4001, msg: "nope"}, "request accounts")

	require.Error(t, err)
	assert.True(t, Is(err, KindUserRejected))
	assert.Equal(t, "request accounts: nope", err.Error())
}

func TestClassify_UserRejectedByMessage(t *testing.T) {
	for _, msg := range []string{"User rejected the request.", "MetaMask Tx Signature: User denied transaction signature.", "Request denied"} {
		err := Classify(errors.New(msg), "sign")
		assert.True(t, Is(err, KindUserRejected), msg)
	}
}

func TestClassify_DefaultsToChainCallFailed(t *testing.T) {
	err := Classify(codedError{code: -32000, msg: "execution reverted"}, "allowance")
	assert.True(t, Is(err, KindChainCallFailed))
}

func TestClassify_KeepsExistingKind(t *testing.T) {
	orig := UnknownSymbolError(nil, "token XYZ is not registered")
	wrapped := fmt.Errorf("resolve: %w", orig)

	err := Classify(wrapped, "resolve token")
	assert.True(t, Is(err, KindUnknownSymbol))
	assert.Same(t, wrapped, err)
}

func TestClassify_Nil(t *testing.T) {
	assert.NoError(t, Classify(nil, "noop"))
	assert.Equal(t, KindNone, KindOf(nil))
}

func TestKind_Recoverable(t *testing.T) {
	assert.True(t, KindUserRejected.Recoverable())
	assert.True(t, KindChainCallFailed.Recoverable())
	assert.False(t, KindInvalidRequest.Recoverable())
	assert.False(t, KindProviderUnavailable.Recoverable())
	assert.False(t, KindUnknownSymbol.Recoverable())
}

func TestBridgeError_StatusCode(t *testing.T) {
	cases := map[Kind]int{
		KindInvalidRequest:      http.StatusBadRequest,
		KindProviderUnavailable: http.StatusServiceUnavailable,
		KindUserRejected:        http.StatusForbidden,
		KindUnknownSymbol:       http.StatusNotFound,
		KindChainCallFailed:     http.StatusBadGateway,
	}
	for kind, code := range cases {
		err := &BridgeError{Kind: kind, Message: "x"}
		assert.Equal(t, code, err.StatusCode(), kind.String())
	}
}

func TestKindOf_Unclassified(t *testing.T) {
	assert.Equal(t, KindChainCallFailed, KindOf(errors.New("boom")))
	assert.Equal(t, KindInvalidRequest, KindOf(InvalidRequestError(nil, "bad")))
}

func TestKind_TextRoundTrip(t *testing.T) {
	text, err := KindUnknownSymbol.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "UnknownSymbol", string(text))

	var k Kind
	require.NoError(t, k.UnmarshalText(text))
	assert.Equal(t, KindUnknownSymbol, k)

	require.Error(t, k.UnmarshalText([]byte("Bogus")))
}
