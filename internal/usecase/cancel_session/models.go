package cancel_session

import (
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
)

// CancelSessionRequest запрос на отмену сессии
type CancelSessionRequest struct {
	Reason string `json:"reason"`
}

// CancelSessionResponse результат отмены
type CancelSessionResponse struct {
	ID              int64      `json:"id"`
	Status          string     `json:"status"`
	RefundedCredits int        `json:"refunded_credits"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
}

func toResponse(s *domain.Session, refunded int, cancelledAt time.Time) *CancelSessionResponse {
	return &CancelSessionResponse{
		ID:              s.ID,
		Status:          string(domain.StatusCancelled),
		RefundedCredits: refunded,
		CancelledAt:     &cancelledAt,
	}
}
