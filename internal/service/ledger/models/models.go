package models

import (
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
)

// BalanceResponse баланс участника с вычисленной полосой статуса
// Полоса является чистой проекцией баланса и никогда не хранится
type BalanceResponse struct {
	MemberID int64  `json:"memberId"`
	Balance  int    `json:"balance"`
	Band     string `json:"band"`
}

// EntryResponse представление записи леджера для HTTP ответов
type EntryResponse struct {
	ID             int64   `json:"id"`
	Type           string  `json:"type"`
	Amount         int     `json:"amount"`
	UnitPriceMinor *int64  `json:"unitPriceMinor,omitempty"`
	Reference      *string `json:"reference,omitempty"`
	ChargeID       *string `json:"chargeId,omitempty"`
	CreatedAt      string  `json:"createdAt"`
}

// HistoryResponse история операций участника
type HistoryResponse struct {
	MemberID int64            `json:"memberId"`
	Entries  []*EntryResponse `json:"entries"`
	Total    int              `json:"total"`
}

// FromDomainEntry конвертирует доменную запись в response-модель
func FromDomainEntry(e *domain.LedgerEntry) *EntryResponse {
	return &EntryResponse{
		ID:             e.ID,
		Type:           string(e.Type),
		Amount:         e.Amount,
		UnitPriceMinor: e.UnitPriceMinor,
		Reference:      e.Reference,
		ChargeID:       e.ChargeID,
		CreatedAt:      e.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainEntryList конвертирует список доменных записей
func FromDomainEntryList(memberID int64, entries []*domain.LedgerEntry) *HistoryResponse {
	out := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = FromDomainEntry(e)
	}
	return &HistoryResponse{
		MemberID: memberID,
		Entries:  out,
		Total:    len(out),
	}
}
