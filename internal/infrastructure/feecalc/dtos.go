package feecalc

import "github.com/DanielPopoola/ficmart-payment-methods/internal/domain"

type pspSearchCriteria struct {
	IDPsp string `json:"idPsp"`
}

type transferListItem struct {
	CreditorInstitution string `json:"creditorInstitution"`
	DigitalStamp        bool   `json:"digitalStamp"`
	TransferCategory    string `json:"transferCategory"`
}

type paymentOptionRequest struct {
	Bin                        string              `json:"bin,omitempty"`
	PaymentAmount              int64               `json:"paymentAmount"`
	PaymentMethod              string              `json:"paymentMethod"`
	Touchpoint                 string              `json:"touchpoint"`
	PrimaryCreditorInstitution string              `json:"primaryCreditorInstitution"`
	IDPspList                  []pspSearchCriteria `json:"idPspList"`
	TransferList               []transferListItem  `json:"transferList"`
}

type bundleOptionResponse struct {
	BelowThreshold bool            `json:"belowThreshold"`
	BundleOptions  []domain.Bundle `json:"bundleOptions"`
}
