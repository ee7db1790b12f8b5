package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/DanielPopoola/ficmart-payment-methods/internal/application"
	"github.com/DanielPopoola/ficmart-payment-methods/internal/interfaces/rest"
)

type createSessionResponse struct {
	OrderID       string                  `json:"orderId"`
	CorrelationID string                  `json:"correlationId"`
	PaymentMethod string                  `json:"paymentMethod"`
	Form          []application.FormField `json:"form"`
}

type cardDataResponse struct {
	Bin            string `json:"bin"`
	LastFourDigits string `json:"lastFourDigits"`
	ExpiringDate   string `json:"expiringDate"`
	Brand          string `json:"brand"`
}

type transactionIDResponse struct {
	TransactionID string `json:"transactionId"`
}

type associateTransactionRequest struct {
	TransactionID string `json:"transactionId"`
}

type sessionResponse struct {
	OrderID       string  `json:"orderId"`
	TransactionID *string `json:"transactionId,omitempty"`
}

func (h *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	paymentMethodID := r.PathValue("id")

	result, err := h.sessionService.CreateSession(r.Context(), paymentMethodID)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, createSessionResponse{
		OrderID:       result.OrderID,
		CorrelationID: result.CorrelationID,
		PaymentMethod: result.PaymentMethod,
		Form:          result.Fields,
	})
}

func (h *Handlers) GetCardData(w http.ResponseWriter, r *http.Request) {
	paymentMethodID := r.PathValue("id")
	orderID := r.PathValue("orderId")

	card, err := h.sessionService.GetCardData(r.Context(), paymentMethodID, orderID)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, cardDataResponse{
		Bin:            card.Bin,
		LastFourDigits: card.LastFourDigits,
		ExpiringDate:   card.ExpiringDate,
		Brand:          card.Circuit,
	})
}

func (h *Handlers) GetTransactionID(w http.ResponseWriter, r *http.Request) {
	paymentMethodID := r.PathValue("id")
	orderID := r.PathValue("orderId")
	securityToken := bearerToken(r)

	transactionID, err := h.sessionService.ResolveTransactionID(r.Context(), paymentMethodID, orderID, securityToken)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, transactionIDResponse{TransactionID: transactionID})
}

func (h *Handlers) AssociateTransaction(w http.ResponseWriter, r *http.Request) {
	paymentMethodID := r.PathValue("id")
	orderID := r.PathValue("orderId")

	var req associateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TransactionID == "" {
		rest.WriteJSON(w, http.StatusBadRequest, rest.ErrorResponse{
			Error: rest.ErrorDetail{Code: "INVALID_INPUT", Message: "transactionId is required"},
		})
		return
	}

	session, err := h.sessionService.AssociateTransaction(r.Context(), paymentMethodID, orderID, req.TransactionID)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, sessionResponse{
		OrderID:       session.OrderID,
		TransactionID: session.TransactionID,
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	return strings.TrimPrefix(header, "Bearer ")
}
