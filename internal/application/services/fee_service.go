package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/DanielPopoola/ficmart-payment-methods/internal/application"
	"github.com/DanielPopoola/ficmart-payment-methods/internal/domain"
)

// FeeBundles is the ranked fee calculation result together with the
// catalog display fields the boundary needs to assemble a response.
type FeeBundles struct {
	PaymentMethodName        string
	PaymentMethodDescription string
	PaymentMethodStatus      domain.PaymentMethodStatus
	Asset                    string
	BelowThreshold           bool
	Bundles                  []domain.Bundle
}

// FeeService turns raw calculator responses into deduplicated, ordered,
// policy-filtered bundle lists.
type FeeService struct {
	catalog    application.CatalogRepository
	calculator application.FeeCalculatorClient
	logger     *slog.Logger
}

func NewFeeService(
	catalog application.CatalogRepository,
	calculator application.FeeCalculatorClient,
	logger *slog.Logger,
) *FeeService {
	return &FeeService{
		catalog:    catalog,
		calculator: calculator,
		logger:     logger,
	}
}

// ComputeFee prices the available PSP bundles for a payment. The catalog
// type code replaces the payment-method dimension of the request; the
// calculator's bundles are deduplicated per PSP, wildcard entries are
// resolved to the concrete type code and the list is ranked onUs-first,
// then by ascending fee.
func (s *FeeService) ComputeFee(ctx context.Context, paymentMethodID string, req domain.FeeRequest, maxOccurrences int) (*FeeBundles, error) {
	method, err := s.catalog.FindByID(ctx, paymentMethodID)
	if err != nil {
		return nil, fmt.Errorf("catalog lookup for payment method %s: %w", paymentMethodID, err)
	}
	if method == nil {
		return nil, &application.PaymentMethodNotFoundError{PaymentMethodID: paymentMethodID}
	}

	s.logger.Info("retrieving bundles list",
		"payment_method_id", paymentMethodID,
		"touchpoint", req.Touchpoint,
		"amount", req.PaymentAmount,
	)

	option, err := s.calculator.GetFees(ctx, application.CalculatorRequest{
		Bin:                        req.Bin,
		PaymentAmount:              req.PaymentAmount,
		PaymentMethod:              method.TypeCode,
		Touchpoint:                 req.Touchpoint,
		PrimaryCreditorInstitution: req.PrimaryCreditorInstitution,
		IDPspList:                  req.IDPspList,
		TransferList:               req.TransferList,
	}, maxOccurrences, req.IsAllCCP)
	if err != nil {
		return nil, err
	}

	bundles := removeDuplicatePsp(option.Bundles)
	resolveWildcardMethod(bundles, method.TypeCode)
	bundles = rankBundles(bundles)

	if len(bundles) == 0 {
		return nil, &application.NoBundleFoundError{
			PaymentMethodID: paymentMethodID,
			Amount:          req.PaymentAmount,
			Touchpoint:      req.Touchpoint,
		}
	}

	return &FeeBundles{
		PaymentMethodName:        method.Name,
		PaymentMethodDescription: method.Description,
		PaymentMethodStatus:      method.Status,
		Asset:                    method.Asset,
		BelowThreshold:           option.BelowThreshold,
		Bundles:                  bundles,
	}, nil
}

// removeDuplicatePsp keeps at most one bundle per PSP: the first
// occurrence in calculator order wins, regardless of fee.
func removeDuplicatePsp(bundles []domain.Bundle) []domain.Bundle {
	seen := make(map[string]struct{}, len(bundles))
	deduped := make([]domain.Bundle, 0, len(bundles))
	for _, b := range bundles {
		if _, ok := seen[b.IDPsp]; ok {
			continue
		}
		seen[b.IDPsp] = struct{}{}
		deduped = append(deduped, b)
	}
	return deduped
}

// resolveWildcardMethod replaces the calculator's nil ("any method")
// marker with the concrete catalog type code so callers always see a
// concrete code.
func resolveWildcardMethod(bundles []domain.Bundle, typeCode string) {
	for i := range bundles {
		if bundles[i].PaymentMethod == nil {
			code := typeCode
			bundles[i].PaymentMethod = &code
		}
	}
}

// rankBundles places onUs bundles first, keeping calculator order inside
// that partition, and stably sorts the remainder by ascending fee so
// ties keep their original relative order. An onUs PSP already handles
// the merchant's funds and outranks any price.
func rankBundles(bundles []domain.Bundle) []domain.Bundle {
	onUs := make([]domain.Bundle, 0, len(bundles))
	others := make([]domain.Bundle, 0, len(bundles))
	for _, b := range bundles {
		if b.OnUs {
			onUs = append(onUs, b)
		} else {
			others = append(others, b)
		}
	}

	sort.SliceStable(others, func(i, j int) bool {
		return others[i].TaxPayerFee < others[j].TaxPayerFee
	})

	return append(onUs, others...)
}
