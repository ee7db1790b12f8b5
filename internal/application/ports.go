package application

import (
	"context"

	"github.com/DanielPopoola/ficmart-payment-methods/internal/domain"
)

// FormField is one field of the gateway's hosted card-entry form, passed
// through to the caller untouched.
type FormField struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Class string `json:"class"`
	Src   string `json:"src"`
}

// BuildFormRequest is the input for creating a hosted-form session on
// the payment gateway.
type BuildFormRequest struct {
	CorrelationID   string
	MerchantURL     string
	ResultURL       string
	CancelURL       string
	NotificationURL string
	OrderID         string
	PaymentMethod   string
}

// GatewayForm is the gateway's answer to a buildForm call: the session
// handle, the security token minted for it and the form field list.
type GatewayForm struct {
	SessionID     string
	SecurityToken string
	Fields        []FormField
}

// GatewayClient is the port for the external payment gateway.
type GatewayClient interface {
	BuildForm(ctx context.Context, req BuildFormRequest) (*GatewayForm, error)
	GetCardData(ctx context.Context, correlationID, sessionID string) (*domain.CardData, error)
}

// CalculatorRequest is the fee calculator's payment context. The
// PaymentMethod field carries the catalog type code, never the payment
// method id.
type CalculatorRequest struct {
	Bin                        string
	PaymentAmount              int64
	PaymentMethod              string
	Touchpoint                 string
	PrimaryCreditorInstitution string
	IDPspList                  []string
	TransferList               []domain.Transfer
}

// BundleOption is the calculator's raw response before deduplication and
// ranking.
type BundleOption struct {
	BelowThreshold bool
	Bundles        []domain.Bundle
}

// FeeCalculatorClient is the port for the external fee calculator.
type FeeCalculatorClient interface {
	GetFees(ctx context.Context, req CalculatorRequest, maxOccurrences int, allCCP bool) (*BundleOption, error)
}

// CatalogRepository resolves payment methods from the catalog store.
// FindByID returns (nil, nil) when no method exists for the id.
type CatalogRepository interface {
	FindByID(ctx context.Context, id string) (*domain.PaymentMethod, error)
}

// SessionStore is the narrow key-value contract session records live
// behind. Implementations apply the configured TTL on every Set so
// expiry always runs from the last write. Get returns found=false for
// missing or expired records.
type SessionStore interface {
	Get(ctx context.Context, orderID string) (*domain.Session, bool, error)
	Set(ctx context.Context, session *domain.Session) error
}

// OrderIDGenerator produces short, globally-unique, time-ordered order ids.
type OrderIDGenerator interface {
	NextID(ctx context.Context) (string, error)
}

// TokenIssuer mints the short-lived signed token the gateway presents
// when calling back on the notification URL.
type TokenIssuer interface {
	MintNotificationToken(orderID, paymentMethodID string) (string, error)
}
