package domain

import (
	"time"

	"github.com/m04kA/GMS-BookingService/pkg/types"
)

// SessionStatus represents the lifecycle status of a training session
type SessionStatus string

const (
	StatusPending   SessionStatus = "pending"
	StatusConfirmed SessionStatus = "confirmed"
	StatusCompleted SessionStatus = "completed"
	StatusCancelled SessionStatus = "cancelled"
)

// Session represents a member's reservation of a slot on a specific date.
// A session in an active status (pending or confirmed) is what blocks its
// (date, slot) pair from being booked again.
type Session struct {
	ID          int64
	MemberID    int64
	SlotCode    string
	SessionDate time.Time

	// Denormalized from the slot at booking time, so history survives
	// later slot reconfiguration
	StartTime  types.TimeString
	EndTime    types.TimeString
	CreditCost int

	// BookingRef ties the session to its ledger entries (consume/refund)
	// and serves as the correlation id in diagnostics
	BookingRef string

	Status SessionStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the session still occupies its (date, slot) pair
func (s *Session) IsActive() bool {
	return s.Status == StatusPending || s.Status == StatusConfirmed
}

// CanBeCancelled returns true if the session can still be cancelled
func (s *Session) CanBeCancelled() bool {
	return s.Status == StatusPending || s.Status == StatusConfirmed
}

// IsTerminal returns true if the session reached a final status
func (s *Session) IsTerminal() bool {
	return s.Status == StatusCompleted || s.Status == StatusCancelled
}
