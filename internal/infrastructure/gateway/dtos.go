package gateway

type buildFormRequest struct {
	MerchantURL     string `json:"merchantUrl"`
	ResultURL       string `json:"resultUrl"`
	CancelURL       string `json:"cancelUrl"`
	NotificationURL string `json:"notificationUrl"`
	OrderID         string `json:"orderId"`
	PaymentMethod   string `json:"paymentMethod"`
}

type fieldDTO struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	PropertyClass string `json:"propertyClass"`
	Src           string `json:"src"`
}

type buildFormResponse struct {
	SessionID     string     `json:"sessionId"`
	SecurityToken string     `json:"securityToken"`
	Fields        []fieldDTO `json:"fields"`
}

type cardDataResponse struct {
	Bin            string `json:"bin"`
	LastFourDigits string `json:"lastFourDigits"`
	ExpiringDate   string `json:"expiringDate"`
	Circuit        string `json:"circuit"`
}

type errorResponse struct {
	Err     string `json:"error"`
	Message string `json:"message"`
}
