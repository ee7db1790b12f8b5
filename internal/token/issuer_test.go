package token_test

import (
	"testing"
	"time"

	"github.com/DanielPopoola/ficmart-payment-methods/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var signingKey = []byte("test-signing-key-test-signing-key")

func TestIssuer_MintParseRoundTrip(t *testing.T) {
	issuer := token.NewIssuer(signingKey, 15*time.Minute)

	raw, err := issuer.MintNotificationToken("order-1", "method-1")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	orderID, paymentMethodID, err := issuer.ParseNotificationToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "order-1", orderID)
	assert.Equal(t, "method-1", paymentMethodID)
}

func TestIssuer_TokensAreUnique(t *testing.T) {
	issuer := token.NewIssuer(signingKey, 15*time.Minute)

	first, err := issuer.MintNotificationToken("order-1", "method-1")
	require.NoError(t, err)
	second, err := issuer.MintNotificationToken("order-1", "method-1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestIssuer_RejectsWrongKey(t *testing.T) {
	issuer := token.NewIssuer(signingKey, 15*time.Minute)
	other := token.NewIssuer([]byte("a-completely-different-key-here!"), 15*time.Minute)

	raw, err := issuer.MintNotificationToken("order-1", "method-1")
	require.NoError(t, err)

	_, _, err = other.ParseNotificationToken(raw)
	assert.Error(t, err)
}

func TestIssuer_RejectsExpiredToken(t *testing.T) {
	expired := token.NewIssuer(signingKey, -time.Minute)
	issuer := token.NewIssuer(signingKey, 15*time.Minute)

	raw, err := expired.MintNotificationToken("order-1", "method-1")
	require.NoError(t, err)

	_, _, err = issuer.ParseNotificationToken(raw)
	assert.Error(t, err)
}
