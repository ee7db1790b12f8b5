package handlers

import (
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/ficmart-payment-methods/internal/application/services"
)

// Handlers exposes the payment-methods boundary operations. Request and
// response shapes live here only; all semantics belong to the services.
type Handlers struct {
	sessionService *services.SessionService
	feeService     *services.FeeService
	logger         *slog.Logger
}

func NewHandlers(
	sessionService *services.SessionService,
	feeService *services.FeeService,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		sessionService: sessionService,
		feeService:     feeService,
		logger:         logger,
	}
}

func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /payment-methods/{id}/sessions", h.CreateSession)
	mux.HandleFunc("GET /payment-methods/{id}/sessions/{orderId}", h.GetCardData)
	mux.HandleFunc("GET /payment-methods/{id}/sessions/{orderId}/transactionId", h.GetTransactionID)
	mux.HandleFunc("PATCH /payment-methods/{id}/sessions/{orderId}", h.AssociateTransaction)
	mux.HandleFunc("POST /payment-methods/{id}/fees/calculate", h.CalculateFees)
	mux.HandleFunc("GET /health", h.Health)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
