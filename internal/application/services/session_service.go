package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/DanielPopoola/ficmart-payment-methods/internal/application"
	"github.com/DanielPopoola/ficmart-payment-methods/internal/domain"
	"github.com/google/uuid"
)

// SessionURLs holds the return URLs handed to the gateway when building
// a hosted form. NotificationURL is a full URL; orderId and sessionToken
// are appended as query parameters per session.
type SessionURLs struct {
	BasePath        string
	OutcomeSuffix   string
	CancelSuffix    string
	NotificationURL string
}

// CreateSessionResult is what the boundary returns to the caller after a
// session has been created: the order id naming the attempt, the
// correlation id used with the gateway and the hosted form fields.
type CreateSessionResult struct {
	OrderID       string
	CorrelationID string
	PaymentMethod string
	Fields        []application.FormField
}

// SessionService is the session lifecycle manager. It owns the
// CREATED -> BOUND protocol over session records in the store.
type SessionService struct {
	catalog  application.CatalogRepository
	store    application.SessionStore
	orderIDs application.OrderIDGenerator
	tokens   application.TokenIssuer
	gateway  application.GatewayClient
	urls     SessionURLs
	logger   *slog.Logger
}

func NewSessionService(
	catalog application.CatalogRepository,
	store application.SessionStore,
	orderIDs application.OrderIDGenerator,
	tokens application.TokenIssuer,
	gateway application.GatewayClient,
	urls SessionURLs,
	logger *slog.Logger,
) *SessionService {
	return &SessionService{
		catalog:  catalog,
		store:    store,
		orderIDs: orderIDs,
		tokens:   tokens,
		gateway:  gateway,
		urls:     urls,
		logger:   logger,
	}
}

// CreateSession builds a hosted card-entry form on the gateway for a new
// order id and persists the resulting session record in CREATED state.
// Exactly one store write per successful call; the gateway call happens
// before the write so an upstream failure leaves no record behind.
func (s *SessionService) CreateSession(ctx context.Context, paymentMethodID string) (*CreateSessionResult, error) {
	method, err := s.resolveMethod(ctx, paymentMethodID)
	if err != nil {
		return nil, err
	}

	orderID, err := s.orderIDs.NextID(ctx)
	if err != nil {
		return nil, err
	}

	notificationToken, err := s.tokens.MintNotificationToken(orderID, paymentMethodID)
	if err != nil {
		return nil, &application.NotificationTokenError{Err: err}
	}

	correlationID := uuid.NewString()
	s.logger.Info("building gateway session",
		"order_id", orderID,
		"correlation_id", correlationID,
	)

	resultURL, err := s.outcomeURL(s.urls.OutcomeSuffix)
	if err != nil {
		return nil, err
	}
	cancelURL, err := s.outcomeURL(s.urls.CancelSuffix)
	if err != nil {
		return nil, err
	}
	notificationURL, err := s.notificationURL(orderID, notificationToken)
	if err != nil {
		return nil, err
	}

	form, err := s.gateway.BuildForm(ctx, application.BuildFormRequest{
		CorrelationID:   correlationID,
		MerchantURL:     s.urls.BasePath,
		ResultURL:       resultURL,
		CancelURL:       cancelURL,
		NotificationURL: notificationURL,
		OrderID:         orderID,
		PaymentMethod:   method.Name,
	})
	if err != nil {
		return nil, err
	}

	session := domain.NewSession(orderID, correlationID, form.SessionID, form.SecurityToken)
	if err := s.store.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session for order id %s: %w", orderID, err)
	}

	return &CreateSessionResult{
		OrderID:       orderID,
		CorrelationID: correlationID,
		PaymentMethod: method.Name,
		Fields:        form.Fields,
	}, nil
}

// GetCardData returns the masked card data for a session, cache-aside:
// the first call fetches from the gateway and writes it back into the
// record, later calls are served from the store. TransactionID is never
// touched here.
func (s *SessionService) GetCardData(ctx context.Context, paymentMethodID, orderID string) (*domain.CardData, error) {
	if _, err := s.resolveMethod(ctx, paymentMethodID); err != nil {
		return nil, err
	}

	session, err := s.readSession(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if session.CardData != nil {
		s.logger.Info("card data cache hit", "order_id", orderID)
		card := *session.CardData
		return &card, nil
	}

	s.logger.Info("card data cache miss", "order_id", orderID)
	card, err := s.gateway.GetCardData(ctx, session.CorrelationID, session.GatewaySessionID)
	if err != nil {
		return nil, err
	}

	session.AttachCardData(*card)
	if err := s.store.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to cache card data for order id %s: %w", orderID, err)
	}

	return card, nil
}

// ResolveTransactionID validates a bound session against the supplied
// security token and returns its transaction id. Read-only.
func (s *SessionService) ResolveTransactionID(ctx context.Context, paymentMethodID, orderID, securityToken string) (string, error) {
	if _, err := s.resolveMethod(ctx, paymentMethodID); err != nil {
		return "", err
	}

	session, err := s.readSession(ctx, orderID)
	if err != nil {
		return "", err
	}

	if !session.Bound() {
		return "", &application.InvalidSessionError{OrderID: orderID}
	}

	if session.SecurityToken != securityToken {
		s.logger.Warn("invalid security token for requested order id", "order_id", orderID)
		return "", &application.MismatchedSecurityTokenError{
			OrderID:       orderID,
			TransactionID: *session.TransactionID,
		}
	}

	return *session.TransactionID, nil
}

// AssociateTransaction binds the session to a transaction id. The first
// binding wins; re-submitting the same id is an idempotent no-op and a
// different id is a conflict that leaves the record untouched.
//
// The read-modify-write below is not linearizable: the store exposes no
// compare-and-set, so two callers racing with different transaction ids
// can both observe an unbound session and the last write wins. The only
// sanctioned concurrent caller is an idempotent retry with the same id.
func (s *SessionService) AssociateTransaction(ctx context.Context, paymentMethodID, orderID, transactionID string) (*domain.Session, error) {
	if _, err := s.resolveMethod(ctx, paymentMethodID); err != nil {
		return nil, err
	}

	session, err := s.readSession(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch session.BindTransaction(transactionID) {
	case domain.BindOutcomeBound:
		if err := s.store.Set(ctx, session); err != nil {
			return nil, fmt.Errorf("failed to persist transaction binding for order id %s: %w", orderID, err)
		}
		return session, nil

	case domain.BindOutcomeAlreadyBound:
		return session, nil

	default:
		s.logger.Error("session already associated to a different transaction",
			"order_id", orderID,
			"existing_transaction_id", *session.TransactionID,
			"requested_transaction_id", transactionID,
		)
		return nil, &application.SessionConflictError{
			OrderID:                orderID,
			ExistingTransactionID:  *session.TransactionID,
			RequestedTransactionID: transactionID,
		}
	}
}

func (s *SessionService) resolveMethod(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error) {
	method, err := s.catalog.FindByID(ctx, paymentMethodID)
	if err != nil {
		return nil, fmt.Errorf("catalog lookup for payment method %s: %w", paymentMethodID, err)
	}
	if method == nil {
		return nil, &application.PaymentMethodNotFoundError{PaymentMethodID: paymentMethodID}
	}
	return method, nil
}

func (s *SessionService) readSession(ctx context.Context, orderID string) (*domain.Session, error) {
	session, found, err := s.store.Get(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to read session for order id %s: %w", orderID, err)
	}
	if !found {
		return nil, &application.OrderIDNotFoundError{OrderID: orderID}
	}
	return session, nil
}

// outcomeURL appends the suffix to the configured base path plus a
// cache-busting timestamp query parameter.
func (s *SessionService) outcomeURL(suffix string) (string, error) {
	u, err := url.Parse(s.urls.BasePath + suffix)
	if err != nil {
		return "", fmt.Errorf("invalid session outcome url: %w", err)
	}
	q := u.Query()
	q.Set("t", strconv.FormatInt(time.Now().UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (s *SessionService) notificationURL(orderID, sessionToken string) (string, error) {
	u, err := url.Parse(s.urls.NotificationURL)
	if err != nil {
		return "", fmt.Errorf("invalid notification url: %w", err)
	}
	q := u.Query()
	q.Set("orderId", orderID)
	q.Set("sessionToken", sessionToken)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
