package domain

import (
	"time"

	"github.com/m04kA/GMS-BookingService/pkg/types"
)

// Slot is a recurring daily time window offered on a fixed set of weekdays.
// Slots are configured once and identified by a stable code; they are never
// mutated by the booking flow.
type Slot struct {
	ID        int64
	Code      string
	StartTime types.TimeString
	EndTime   types.TimeString

	// Weekdays uses ISO numbering: 1 = Monday ... 7 = Sunday
	Weekdays []int

	// CreditCost is the number of credits one booking of this slot consumes
	CreditCost int

	CreatedAt time.Time
}

// OfferedOn returns true if the slot is offered on the weekday of the given date
func (s *Slot) OfferedOn(date time.Time) bool {
	iso := ISOWeekday(date)
	for _, wd := range s.Weekdays {
		if wd == iso {
			return true
		}
	}
	return false
}

// ISOWeekday returns the ISO 8601 weekday number of a date (Monday = 1, Sunday = 7)
func ISOWeekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
