package payments

// ChargeRequest запрос на проведение платежа
type ChargeRequest struct {
	PayerRef    string `json:"payer_ref"`
	AmountMinor int64  `json:"amount_minor"`
	Method      string `json:"method"`
}

// Charge результат успешного платежа
type Charge struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ErrorResponse модель ошибки от платёжного провайдера
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
