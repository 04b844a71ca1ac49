package models

import (
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
)

// SessionResponse представление сессии для HTTP ответов
type SessionResponse struct {
	ID                 int64   `json:"id"`
	MemberID           int64   `json:"memberId"`
	SlotCode           string  `json:"slotCode"`
	SessionDate        string  `json:"sessionDate"`
	StartTime          string  `json:"startTime"`
	EndTime            string  `json:"endTime"`
	CreditCost         int     `json:"creditCost"`
	BookingRef         string  `json:"bookingRef"`
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

// SessionListResponse список сессий
type SessionListResponse struct {
	Sessions []*SessionResponse `json:"sessions"`
	Total    int                `json:"total"`
}

// FromDomainSession конвертирует доменную сессию в response-модель
func FromDomainSession(s *domain.Session) *SessionResponse {
	resp := &SessionResponse{
		ID:                 s.ID,
		MemberID:           s.MemberID,
		SlotCode:           s.SlotCode,
		SessionDate:        s.SessionDate.Format(domain.DateFormat),
		StartTime:          s.StartTime.String(),
		EndTime:            s.EndTime.String(),
		CreditCost:         s.CreditCost,
		BookingRef:         s.BookingRef,
		Status:             string(s.Status),
		CancellationReason: s.CancellationReason,
		CreatedAt:          s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          s.UpdatedAt.Format(time.RFC3339),
	}

	if s.CancelledAt != nil {
		cancelledAt := s.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainSessionList конвертирует список доменных сессий
func FromDomainSessionList(sessions []*domain.Session) *SessionListResponse {
	out := make([]*SessionResponse, len(sessions))
	for i, s := range sessions {
		out[i] = FromDomainSession(s)
	}
	return &SessionListResponse{
		Sessions: out,
		Total:    len(out),
	}
}
