// Package mocks provides hand-written testify mocks for the application
// ports used by the service tests.
package mocks

import (
	"context"

	"github.com/DanielPopoola/ficmart-payment-methods/internal/application"
	"github.com/DanielPopoola/ficmart-payment-methods/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) FindByID(ctx context.Context, id string) (*domain.PaymentMethod, error) {
	args := m.Called(ctx, id)
	var method *domain.PaymentMethod
	if args.Get(0) != nil {
		method = args.Get(0).(*domain.PaymentMethod)
	}
	return method, args.Error(1)
}

type MockGatewayClient struct {
	mock.Mock
}

func (m *MockGatewayClient) BuildForm(ctx context.Context, req application.BuildFormRequest) (*application.GatewayForm, error) {
	args := m.Called(ctx, req)
	var form *application.GatewayForm
	if args.Get(0) != nil {
		form = args.Get(0).(*application.GatewayForm)
	}
	return form, args.Error(1)
}

func (m *MockGatewayClient) GetCardData(ctx context.Context, correlationID, sessionID string) (*domain.CardData, error) {
	args := m.Called(ctx, correlationID, sessionID)
	var card *domain.CardData
	if args.Get(0) != nil {
		card = args.Get(0).(*domain.CardData)
	}
	return card, args.Error(1)
}

type MockFeeCalculatorClient struct {
	mock.Mock
}

func (m *MockFeeCalculatorClient) GetFees(ctx context.Context, req application.CalculatorRequest, maxOccurrences int, allCCP bool) (*application.BundleOption, error) {
	args := m.Called(ctx, req, maxOccurrences, allCCP)
	var option *application.BundleOption
	if args.Get(0) != nil {
		option = args.Get(0).(*application.BundleOption)
	}
	return option, args.Error(1)
}

type MockOrderIDGenerator struct {
	mock.Mock
}

func (m *MockOrderIDGenerator) NextID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) MintNotificationToken(orderID, paymentMethodID string) (string, error) {
	args := m.Called(orderID, paymentMethodID)
	return args.String(0), args.Error(1)
}
