package domain

// Bundle is one PSP's priced offer to process a payment, as returned by
// the fee calculator. TaxPayerFee is in minor currency units. A nil
// PaymentMethod is the calculator's "applies to any method" wildcard;
// the fee resolver substitutes the concrete type code before the bundle
// leaves this service.
type Bundle struct {
	IDPsp                string  `json:"idPsp"`
	IDBundle             string  `json:"idBundle"`
	IDChannel            string  `json:"idChannel"`
	IDBrokerPsp          string  `json:"idBrokerPsp"`
	IDCiBundle           string  `json:"idCiBundle"`
	PaymentMethod        *string `json:"paymentMethod"`
	TaxPayerFee          int64   `json:"taxPayerFee"`
	PrimaryCiIncurredFee int64   `json:"primaryCiIncurredFee"`
	OnUs                 bool    `json:"onUs"`
	Abi                  string  `json:"abi"`
	BundleName           string  `json:"bundleName"`
	BundleDescription    string  `json:"bundleDescription"`
	PspBusinessName      string  `json:"pspBusinessName"`
	Touchpoint           string  `json:"touchpoint"`
}

// Transfer describes one leg of the payment for fee calculation.
type Transfer struct {
	CreditorInstitution string `json:"creditorInstitution"`
	DigitalStamp        bool   `json:"digitalStamp"`
	TransferCategory    string `json:"transferCategory"`
}

// FeeRequest carries the caller-supplied fee calculation context. The
// payment-method dimension is not here: the resolver substitutes the
// catalog type code for the requested payment method id.
type FeeRequest struct {
	Bin                        string
	PaymentAmount              int64
	Touchpoint                 string
	PrimaryCreditorInstitution string
	IDPspList                  []string
	IsAllCCP                   bool
	TransferList               []Transfer
}
