package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DanielPopoola/ficmart-payment-methods/internal/application"
	"github.com/DanielPopoola/ficmart-payment-methods/internal/application/services"
	"github.com/DanielPopoola/ficmart-payment-methods/internal/application/services/mocks"
	"github.com/DanielPopoola/ficmart-payment-methods/internal/domain"
	"github.com/DanielPopoola/ficmart-payment-methods/internal/infrastructure/sessionstore"
	"github.com/DanielPopoola/ficmart-payment-methods/internal/interfaces/rest/handlers"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	paymentMethodID = "378d0b4f-8b69-46b0-8215-07778503d05a"
	orderID         = "E000000000000001ab"
)

// HandlersTestSuite drives the boundary through a real mux with real
// services; only the catalog, gateway and calculator are mocked.
type HandlersTestSuite struct {
	suite.Suite
	catalog    *mocks.MockCatalogRepository
	gateway    *mocks.MockGatewayClient
	calculator *mocks.MockFeeCalculatorClient
	store      *sessionstore.MemoryStore
	mux        *http.ServeMux
}

func TestHandlersSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (suite *HandlersTestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	suite.catalog = new(mocks.MockCatalogRepository)
	suite.gateway = new(mocks.MockGatewayClient)
	suite.calculator = new(mocks.MockFeeCalculatorClient)
	suite.store = sessionstore.NewMemoryStore(10 * time.Minute)

	orderIDs := new(mocks.MockOrderIDGenerator)
	orderIDs.On("NextID", mock.Anything).Return(orderID, nil)
	tokens := new(mocks.MockTokenIssuer)
	tokens.On("MintNotificationToken", mock.Anything, mock.Anything).Return("notif-token", nil)

	sessionService := services.NewSessionService(
		suite.catalog,
		suite.store,
		orderIDs,
		tokens,
		suite.gateway,
		services.SessionURLs{
			BasePath:        "https://checkout.example.com",
			OutcomeSuffix:   "/esito",
			CancelSuffix:    "/cancel",
			NotificationURL: "https://methods.example.com/sessions/notifications",
		},
		logger,
	)
	feeService := services.NewFeeService(suite.catalog, suite.calculator, logger)

	suite.mux = http.NewServeMux()
	handlers.NewHandlers(sessionService, feeService, logger).RegisterRoutes(suite.mux)
}

func (suite *HandlersTestSuite) expectCatalogHit() {
	suite.catalog.On("FindByID", mock.Anything, paymentMethodID).
		Return(&domain.PaymentMethod{
			ID:       paymentMethodID,
			Name:     "CARDS",
			TypeCode: "CP",
			Status:   domain.PaymentMethodEnabled,
		}, nil)
}

func (suite *HandlersTestSuite) seedBoundSession(transactionID string) {
	session := domain.NewSession(orderID, uuid.NewString(), "gw-session-1", "sec-token-1")
	session.BindTransaction(transactionID)
	require.NoError(suite.T(), suite.store.Set(context.Background(), session))
}

func (suite *HandlersTestSuite) do(method, path, body string, header http.Header) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	suite.mux.ServeHTTP(rec, req)
	return rec
}

func (suite *HandlersTestSuite) Test_CreateSession_Returns201() {
	t := suite.T()
	suite.expectCatalogHit()
	suite.gateway.On("BuildForm", mock.Anything, mock.Anything).
		Return(&application.GatewayForm{
			SessionID:     "gw-session-1",
			SecurityToken: "sec-token-1",
			Fields:        []application.FormField{{ID: "CARD_NUMBER", Type: "text", Class: "cardData", Src: "https://gw.example.com/field/pan"}},
		}, nil)

	rec := suite.do(http.MethodPost, "/payment-methods/"+paymentMethodID+"/sessions", "", nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, orderID, resp["orderId"])
	assert.Equal(t, "CARDS", resp["paymentMethod"])
	assert.NotEmpty(t, resp["correlationId"])
}

func (suite *HandlersTestSuite) Test_CreateSession_UnknownMethodReturns404() {
	t := suite.T()
	suite.catalog.On("FindByID", mock.Anything, "missing").Return(nil, nil)

	rec := suite.do(http.MethodPost, "/payment-methods/missing/sessions", "", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	errDetail := resp["error"].(map[string]any)
	assert.Equal(t, "PAYMENT_METHOD_NOT_FOUND", errDetail["code"])
}

func (suite *HandlersTestSuite) Test_AssociateTransaction_ConflictReturns409() {
	t := suite.T()
	suite.expectCatalogHit()
	suite.seedBoundSession("tx-1")

	rec := suite.do(http.MethodPatch,
		"/payment-methods/"+paymentMethodID+"/sessions/"+orderID,
		`{"transactionId":"tx-2"}`, nil)

	require.Equal(t, http.StatusConflict, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	errDetail := resp["error"].(map[string]any)
	assert.Equal(t, "SESSION_ALREADY_ASSOCIATED", errDetail["code"])
}

func (suite *HandlersTestSuite) Test_AssociateTransaction_MissingBodyReturns400() {
	t := suite.T()

	rec := suite.do(http.MethodPatch,
		"/payment-methods/"+paymentMethodID+"/sessions/"+orderID, `{}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func (suite *HandlersTestSuite) Test_GetTransactionID_ReadsBearerToken() {
	t := suite.T()
	suite.expectCatalogHit()
	suite.seedBoundSession("tx-1")

	header := http.Header{}
	header.Set("Authorization", "Bearer sec-token-1")
	rec := suite.do(http.MethodGet,
		"/payment-methods/"+paymentMethodID+"/sessions/"+orderID+"/transactionId", "", header)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "tx-1", resp["transactionId"])
}

func (suite *HandlersTestSuite) Test_GetTransactionID_WrongTokenReturns401() {
	t := suite.T()
	suite.expectCatalogHit()
	suite.seedBoundSession("tx-1")

	header := http.Header{}
	header.Set("Authorization", "Bearer wrong")
	rec := suite.do(http.MethodGet,
		"/payment-methods/"+paymentMethodID+"/sessions/"+orderID+"/transactionId", "", header)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func (suite *HandlersTestSuite) Test_CalculateFees_InvalidMaxOccurrencesReturns400() {
	t := suite.T()

	rec := suite.do(http.MethodPost,
		"/payment-methods/"+paymentMethodID+"/fees/calculate?maxOccurrences=zero",
		`{"paymentAmount":12000}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	suite.calculator.AssertNotCalled(t, "GetFees", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) Test_CalculateFees_Returns200() {
	t := suite.T()
	suite.expectCatalogHit()
	method := "CP"
	suite.calculator.On("GetFees", mock.Anything, mock.Anything, 10, false).
		Return(&application.BundleOption{Bundles: []domain.Bundle{{
			IDPsp:         "PSP_A",
			IDBundle:      "bundle-1",
			PaymentMethod: &method,
			TaxPayerFee:   50,
		}}}, nil)

	rec := suite.do(http.MethodPost,
		"/payment-methods/"+paymentMethodID+"/fees/calculate",
		`{"paymentAmount":12000,"touchpoint":"CHECKOUT"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "CARDS", resp["paymentMethodName"])
	bundles := resp["bundles"].([]any)
	require.Len(t, bundles, 1)
}
