package domain

// CardData is the masked card information returned by the gateway for a
// hosted-form session. Immutable once attached to a session.
type CardData struct {
	Bin            string `json:"bin"`
	LastFourDigits string `json:"lastFourDigits"`
	ExpiringDate   string `json:"expiringDate"`
	Circuit        string `json:"circuit"`
}

// BindOutcome is the result of attempting to associate a session with a
// transaction id. Idempotent retries and conflicts are normal outcomes,
// not errors; the service layer decides how to surface them.
type BindOutcome int

const (
	// BindOutcomeBound means the transaction id was set for the first time.
	BindOutcomeBound BindOutcome = iota
	// BindOutcomeAlreadyBound means the session already carries the same
	// transaction id (idempotent retry).
	BindOutcomeAlreadyBound
	// BindOutcomeConflict means the session is bound to a different
	// transaction id. The session is left untouched.
	BindOutcomeConflict
)

// Session binds a caller-visible order id to a gateway session handle,
// the security token minted for it, optionally the cached card data and
// the transaction id the session was bound to.
//
// A session is CREATED while TransactionID is nil and BOUND once it is
// set; BOUND is terminal. Records expire out of the store after the
// configured TTL from their last write, which is the only deletion path.
type Session struct {
	OrderID          string    `json:"orderId"`
	CorrelationID    string    `json:"correlationId"`
	GatewaySessionID string    `json:"gatewaySessionId"`
	SecurityToken    string    `json:"securityToken"`
	CardData         *CardData `json:"cardData,omitempty"`
	TransactionID    *string   `json:"transactionId,omitempty"`
}

func NewSession(orderID, correlationID, gatewaySessionID, securityToken string) *Session {
	return &Session{
		OrderID:          orderID,
		CorrelationID:    correlationID,
		GatewaySessionID: gatewaySessionID,
		SecurityToken:    securityToken,
	}
}

// Bound reports whether the session has been associated with a transaction.
func (s *Session) Bound() bool {
	return s.TransactionID != nil
}

// AttachCardData caches card data on the session. A card is never re-bound
// mid-session: once present, later fetches reuse the cached value.
func (s *Session) AttachCardData(card CardData) {
	if s.CardData == nil {
		s.CardData = &card
	}
}

// BindTransaction associates the session with a transaction id following
// first-write-wins semantics: the first binding sticks, re-binding with
// the same id is a no-op, and a different id is a conflict.
func (s *Session) BindTransaction(transactionID string) BindOutcome {
	if s.TransactionID == nil {
		s.TransactionID = &transactionID
		return BindOutcomeBound
	}
	if *s.TransactionID == transactionID {
		return BindOutcomeAlreadyBound
	}
	return BindOutcomeConflict
}
