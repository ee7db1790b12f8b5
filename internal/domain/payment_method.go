package domain

type PaymentMethodStatus string

const (
	PaymentMethodEnabled    PaymentMethodStatus = "ENABLED"
	PaymentMethodDisabled   PaymentMethodStatus = "DISABLED"
	PaymentMethodMaintained PaymentMethodStatus = "MAINTENANCE"
)

// PaymentMethod is the catalog read model for a configured payment method.
// The catalog itself (CRUD, ranges, client visibility) lives in another
// service; this one only resolves methods by id.
type PaymentMethod struct {
	ID          string
	Name        string
	Description string
	TypeCode    string
	Status      PaymentMethodStatus
	Asset       string
}
