package purchase_credits

// PurchaseCreditsRequest запрос на покупку кредитов
type PurchaseCreditsRequest struct {
	Amount         int    `json:"amount"`
	UnitPriceMinor int64  `json:"unit_price_minor"`
	PaymentMethod  string `json:"payment_method"`
}

// PurchaseCreditsResponse результат покупки
type PurchaseCreditsResponse struct {
	EntryID  int64  `json:"entry_id"`
	Amount   int    `json:"amount"`
	Balance  int    `json:"balance"`
	ChargeID string `json:"charge_id"`
}
