package book_session

import (
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/pkg/types"
)

// BookSessionRequest запрос на бронирование сессии
type BookSessionRequest struct {
	SessionDate string `json:"session_date"`
	SlotCode    string `json:"slot_code"`
}

// BookSessionResponse результат бронирования
type BookSessionResponse struct {
	ID          int64            `json:"id"`
	MemberID    int64            `json:"member_id"`
	SlotCode    string           `json:"slot_code"`
	SessionDate string           `json:"session_date"`
	StartTime   types.TimeString `json:"start_time"`
	EndTime     types.TimeString `json:"end_time"`
	CreditCost  int              `json:"credit_cost"`
	BookingRef  string           `json:"booking_ref"`
	Status      string           `json:"status"`
	Balance     int              `json:"balance"`
	CreatedAt   time.Time        `json:"created_at"`
}

func toResponse(s *domain.Session, balance int) *BookSessionResponse {
	return &BookSessionResponse{
		ID:          s.ID,
		MemberID:    s.MemberID,
		SlotCode:    s.SlotCode,
		SessionDate: s.SessionDate.Format(domain.DateFormat),
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		CreditCost:  s.CreditCost,
		BookingRef:  s.BookingRef,
		Status:      string(s.Status),
		Balance:     balance,
		CreatedAt:   s.CreatedAt,
	}
}
