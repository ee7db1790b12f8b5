package application

import (
	"errors"
	"fmt"
	"net/http"
)

// Closed set of application errors. Every failure a service operation can
// return is one of these types so the boundary layer can map it without
// string matching.

// PaymentMethodNotFoundError is returned when the requested payment
// method id does not exist in the catalog.
type PaymentMethodNotFoundError struct {
	PaymentMethodID string
}

func (e *PaymentMethodNotFoundError) Error() string {
	return fmt.Sprintf("payment method with id %s not found", e.PaymentMethodID)
}

// OrderIDNotFoundError is returned when no session record exists for the
// order id, either because it was never created or because it expired.
// It deliberately carries no session state.
type OrderIDNotFoundError struct {
	OrderID string
}

func (e *OrderIDNotFoundError) Error() string {
	return fmt.Sprintf("session for order id %s not found", e.OrderID)
}

// InvalidSessionError is returned when a session exists but has not been
// bound to any transaction yet.
type InvalidSessionError struct {
	OrderID string
}

func (e *InvalidSessionError) Error() string {
	return fmt.Sprintf("session for order id %s has no associated transaction", e.OrderID)
}

// MismatchedSecurityTokenError is returned when the caller-supplied
// security token differs from the stored one. TransactionID is carried
// for diagnostics only; it is never the primary result.
type MismatchedSecurityTokenError struct {
	OrderID       string
	TransactionID string
}

func (e *MismatchedSecurityTokenError) Error() string {
	return fmt.Sprintf(
		"mismatched security token for session with order id %s and transaction id %s",
		e.OrderID, e.TransactionID,
	)
}

// SessionConflictError is returned when a session is already bound to a
// different transaction id. Carries both ids so the caller can see what
// it raced against.
type SessionConflictError struct {
	OrderID                string
	ExistingTransactionID  string
	RequestedTransactionID string
}

func (e *SessionConflictError) Error() string {
	return fmt.Sprintf(
		"requested association to transaction id %s for session with order id %s: already associated to transaction id %s",
		e.RequestedTransactionID, e.OrderID, e.ExistingTransactionID,
	)
}

// NoBundleFoundError is returned when fee calculation yields no bundles
// after deduplication. Distinct from an upstream failure: the calculator
// answered, there is just no pricing available.
type NoBundleFoundError struct {
	PaymentMethodID string
	Amount          int64
	Touchpoint      string
}

func (e *NoBundleFoundError) Error() string {
	return fmt.Sprintf(
		"no bundle found for payment method with id %s and transaction amount %d for touch point %s",
		e.PaymentMethodID, e.Amount, e.Touchpoint,
	)
}

// UpstreamError is returned when the payment gateway or the fee
// calculator fails. Status is the upstream HTTP status when one was
// received, 0 for transport errors.
type UpstreamError struct {
	Service string
	Status  int
	Reason  string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s error: status %d: %s", e.Service, e.Status, e.Reason)
	}
	return fmt.Sprintf("%s error: %s", e.Service, e.Reason)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NotificationTokenError is returned when minting the gateway
// notification token fails. Fatal for session creation.
type NotificationTokenError struct {
	Err error
}

func (e *NotificationTokenError) Error() string {
	return fmt.Sprintf("failed to mint notification token: %v", e.Err)
}

func (e *NotificationTokenError) Unwrap() error {
	return e.Err
}

// OrderIDGenerationError is returned when a unique order id could not be
// reserved within the allowed number of attempts.
type OrderIDGenerationError struct {
	Err error
}

func (e *OrderIDGenerationError) Error() string {
	return fmt.Sprintf("failed to generate a unique order id: %v", e.Err)
}

func (e *OrderIDGenerationError) Unwrap() error {
	return e.Err
}

// ToHTTPStatus maps an application error to the status code the boundary
// should answer with.
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var (
		notFound      *PaymentMethodNotFoundError
		orderNotFound *OrderIDNotFoundError
		invalid       *InvalidSessionError
		mismatched    *MismatchedSecurityTokenError
		conflict      *SessionConflictError
		noBundle      *NoBundleFoundError
		upstream      *UpstreamError
	)

	switch {
	case errors.As(err, &notFound), errors.As(err, &orderNotFound), errors.As(err, &noBundle):
		return http.StatusNotFound
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.As(err, &mismatched):
		return http.StatusUnauthorized
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

// ToErrorCode maps an application error to a stable machine-readable code.
func ToErrorCode(err error) string {
	var (
		notFound      *PaymentMethodNotFoundError
		orderNotFound *OrderIDNotFoundError
		invalid       *InvalidSessionError
		mismatched    *MismatchedSecurityTokenError
		conflict      *SessionConflictError
		noBundle      *NoBundleFoundError
		upstream      *UpstreamError
		token         *NotificationTokenError
		orderGen      *OrderIDGenerationError
	)

	switch {
	case errors.As(err, &notFound):
		return "PAYMENT_METHOD_NOT_FOUND"
	case errors.As(err, &orderNotFound):
		return "ORDER_ID_NOT_FOUND"
	case errors.As(err, &invalid):
		return "INVALID_SESSION"
	case errors.As(err, &mismatched):
		return "MISMATCHED_SECURITY_TOKEN"
	case errors.As(err, &conflict):
		return "SESSION_ALREADY_ASSOCIATED"
	case errors.As(err, &noBundle):
		return "NO_BUNDLE_FOUND"
	case errors.As(err, &upstream):
		return "UPSTREAM_ERROR"
	case errors.As(err, &token):
		return "NOTIFICATION_TOKEN_ERROR"
	case errors.As(err, &orderGen):
		return "ORDER_ID_GENERATION_ERROR"
	}

	return "INTERNAL_ERROR"
}
