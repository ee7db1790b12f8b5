package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/DanielPopoola/ficmart-payment-methods/internal/domain"
	"github.com/DanielPopoola/ficmart-payment-methods/internal/interfaces/rest"
)

const defaultMaxOccurrences = 10

type calculateFeeRequest struct {
	Bin                        string            `json:"bin"`
	PaymentAmount              int64             `json:"paymentAmount"`
	Touchpoint                 string            `json:"touchpoint"`
	PrimaryCreditorInstitution string            `json:"primaryCreditorInstitution"`
	IDPspList                  []string          `json:"idPspList"`
	IsAllCCP                   bool              `json:"isAllCCP"`
	TransferList               []domain.Transfer `json:"transferList"`
}

type calculateFeeResponse struct {
	PaymentMethodName        string          `json:"paymentMethodName"`
	PaymentMethodDescription string          `json:"paymentMethodDescription"`
	PaymentMethodStatus      string          `json:"paymentMethodStatus"`
	Asset                    string          `json:"asset"`
	BelowThreshold           bool            `json:"belowThreshold"`
	Bundles                  []domain.Bundle `json:"bundles"`
}

func (h *Handlers) CalculateFees(w http.ResponseWriter, r *http.Request) {
	paymentMethodID := r.PathValue("id")

	maxOccurrences := defaultMaxOccurrences
	if raw := r.URL.Query().Get("maxOccurrences"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			rest.WriteJSON(w, http.StatusBadRequest, rest.ErrorResponse{
				Error: rest.ErrorDetail{Code: "INVALID_INPUT", Message: "maxOccurrences must be a positive integer"},
			})
			return
		}
		maxOccurrences = parsed
	}

	var req calculateFeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteJSON(w, http.StatusBadRequest, rest.ErrorResponse{
			Error: rest.ErrorDetail{Code: "INVALID_INPUT", Message: "invalid request body"},
		})
		return
	}

	result, err := h.feeService.ComputeFee(r.Context(), paymentMethodID, domain.FeeRequest{
		Bin:                        req.Bin,
		PaymentAmount:              req.PaymentAmount,
		Touchpoint:                 req.Touchpoint,
		PrimaryCreditorInstitution: req.PrimaryCreditorInstitution,
		IDPspList:                  req.IDPspList,
		IsAllCCP:                   req.IsAllCCP,
		TransferList:               req.TransferList,
	}, maxOccurrences)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, calculateFeeResponse{
		PaymentMethodName:        result.PaymentMethodName,
		PaymentMethodDescription: result.PaymentMethodDescription,
		PaymentMethodStatus:      string(result.PaymentMethodStatus),
		Asset:                    result.Asset,
		BelowThreshold:           result.BelowThreshold,
		Bundles:                  result.Bundles,
	})
}
