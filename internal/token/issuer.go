package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	orderIDClaim         = "orderId"
	paymentMethodIDClaim = "paymentMethodId"

	// Audience is the gateway-facing audience of notification tokens.
	Audience = "payment-gateway"
)

// Issuer mints the short-lived HS256 token embedded in the notification
// URL so the gateway's callback can be authenticated.
type Issuer struct {
	signingKey []byte
	validity   time.Duration
	now        func() time.Time
}

func NewIssuer(signingKey []byte, validity time.Duration) *Issuer {
	return &Issuer{
		signingKey: signingKey,
		validity:   validity,
		now:        time.Now,
	}
}

func (i *Issuer) MintNotificationToken(orderID, paymentMethodID string) (string, error) {
	issuedAt := i.now()
	claims := jwt.MapClaims{
		orderIDClaim:         orderID,
		paymentMethodIDClaim: paymentMethodID,
		"aud":                Audience,
		"iat":                issuedAt.Unix(),
		"exp":                issuedAt.Add(i.validity).Unix(),
		"jti":                uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.signingKey)
}

// ParseNotificationToken validates a callback token and returns the
// embedded order id and payment method id.
func (i *Issuer) ParseNotificationToken(raw string) (orderID, paymentMethodID string, err error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.signingKey, nil
	}, jwt.WithAudience(Audience), jwt.WithExpirationRequired())
	if err != nil {
		return "", "", err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", jwt.ErrTokenInvalidClaims
	}
	orderID, _ = claims[orderIDClaim].(string)
	paymentMethodID, _ = claims[paymentMethodIDClaim].(string)
	return orderID, paymentMethodID, nil
}
