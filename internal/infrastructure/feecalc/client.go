package feecalc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/DanielPopoola/ficmart-payment-methods/internal/application"
	"github.com/DanielPopoola/ficmart-payment-methods/internal/config"
)

const (
	upstreamName = "fee-calculator"

	// headerSubscriptionKey authenticates against the calculator's API
	// management layer.
	headerSubscriptionKey = "ocp-apim-subscription-key"
)

// HTTPCalculatorClient talks to the external fee calculator that prices
// PSP bundles for a payment context.
type HTTPCalculatorClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewCalculatorClient(cfg config.FeeCalculatorConfig) application.FeeCalculatorClient {
	return &HTTPCalculatorClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
	}
}

// GetFees posts the payment context and returns the raw bundle list.
// Failures carry the upstream status and response body so the boundary
// can surface the calculator's reason.
func (c *HTTPCalculatorClient) GetFees(ctx context.Context, req application.CalculatorRequest, maxOccurrences int, allCCP bool) (*application.BundleOption, error) {
	query := url.Values{}
	query.Set("allCcp", strconv.FormatBool(allCCP))
	query.Set("maxOccurrences", strconv.Itoa(maxOccurrences))
	endpoint := fmt.Sprintf("%s/fees?%s", c.baseURL, query.Encode())

	pspList := make([]pspSearchCriteria, 0, len(req.IDPspList))
	for _, idPsp := range req.IDPspList {
		pspList = append(pspList, pspSearchCriteria{IDPsp: idPsp})
	}
	transfers := make([]transferListItem, 0, len(req.TransferList))
	for _, t := range req.TransferList {
		transfers = append(transfers, transferListItem{
			CreditorInstitution: t.CreditorInstitution,
			DigitalStamp:        t.DigitalStamp,
			TransferCategory:    t.TransferCategory,
		})
	}

	body := paymentOptionRequest{
		Bin:                        req.Bin,
		PaymentAmount:              req.PaymentAmount,
		PaymentMethod:              req.PaymentMethod,
		Touchpoint:                 req.Touchpoint,
		PrimaryCreditorInstitution: req.PrimaryCreditorInstitution,
		IDPspList:                  pspList,
		TransferList:               transfers,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("error marshalling json: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(headerSubscriptionKey, c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &application.UpstreamError{
			Service: upstreamName,
			Reason:  "transport error",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		responseBody, _ := io.ReadAll(resp.Body)
		reason := string(responseBody)
		if reason == "" {
			reason = "failure response without body"
		}
		return nil, &application.UpstreamError{
			Service: upstreamName,
			Status:  resp.StatusCode,
			Reason:  reason,
		}
	}

	var option bundleOptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&option); err != nil {
		return nil, fmt.Errorf("error decoding json response: %w", err)
	}

	return &application.BundleOption{
		BelowThreshold: option.BelowThreshold,
		Bundles:        option.BundleOptions,
	}, nil
}
