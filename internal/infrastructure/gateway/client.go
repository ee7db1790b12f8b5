package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/DanielPopoola/ficmart-payment-methods/internal/application"
	"github.com/DanielPopoola/ficmart-payment-methods/internal/config"
	"github.com/DanielPopoola/ficmart-payment-methods/internal/domain"
)

const upstreamName = "payment-gateway"

// HTTPGatewayClient talks to the external payment gateway that hosts the
// card-entry form and holds the entered card data.
type HTTPGatewayClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewGatewayClient(cfg config.GatewayConfig) application.GatewayClient {
	return &HTTPGatewayClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
	}
}

func (c *HTTPGatewayClient) BuildForm(ctx context.Context, req application.BuildFormRequest) (*application.GatewayForm, error) {
	url := fmt.Sprintf("%s/orders/build", c.baseURL)
	body := buildFormRequest{
		MerchantURL:     req.MerchantURL,
		ResultURL:       req.ResultURL,
		CancelURL:       req.CancelURL,
		NotificationURL: req.NotificationURL,
		OrderID:         req.OrderID,
		PaymentMethod:   req.PaymentMethod,
	}

	resp, err := sendRequest[buildFormRequest, buildFormResponse](c, ctx, http.MethodPost, url, req.CorrelationID, &body)
	if err != nil {
		return nil, err
	}

	fields := make([]application.FormField, 0, len(resp.Fields))
	for _, f := range resp.Fields {
		fields = append(fields, application.FormField{
			ID:    f.ID,
			Type:  f.Type,
			Class: f.PropertyClass,
			Src:   f.Src,
		})
	}

	return &application.GatewayForm{
		SessionID:     resp.SessionID,
		SecurityToken: resp.SecurityToken,
		Fields:        fields,
	}, nil
}

func (c *HTTPGatewayClient) GetCardData(ctx context.Context, correlationID, sessionID string) (*domain.CardData, error) {
	url := fmt.Sprintf("%s/build/cardData?sessionId=%s", c.baseURL, sessionID)

	resp, err := sendRequest[any, cardDataResponse](c, ctx, http.MethodGet, url, correlationID, nil)
	if err != nil {
		return nil, err
	}

	return &domain.CardData{
		Bin:            resp.Bin,
		LastFourDigits: resp.LastFourDigits,
		ExpiringDate:   resp.ExpiringDate,
		Circuit:        resp.Circuit,
	}, nil
}

func sendRequest[Req any, Resp any](c *HTTPGatewayClient, ctx context.Context, method, url, correlationID string, reqBody *Req) (*Resp, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	if reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Correlation-Id", correlationID)
	httpReq.Header.Set("X-Api-Key", c.apiKey)

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
		body, _ := io.ReadAll(resp.Body)
		var errResp errorResponse
		reason := string(body)
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
			reason = errResp.Message
		}
		return nil, &application.UpstreamError{
			Service: upstreamName,
			Status:  resp.StatusCode,
			Reason:  reason,
		}
	}

	var gatewayResp Resp
	if err := json.NewDecoder(resp.Body).Decode(&gatewayResp); err != nil {
		return nil, fmt.Errorf("error decoding json response: %w", err)
	}

	return &gatewayResp, nil
}
