package book_session

import (
	"fmt"
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/pkg/types"
)

// validateRequest проверяет форматную корректность запроса
// и возвращает разобранную дату сессии
func (uc *Usecase) validateRequest(req *BookSessionRequest) (time.Time, error) {
	if req.SlotCode == "" {
		return time.Time{}, fmt.Errorf("%w: slot_code is required", ErrInvalidData)
	}

	date, err := time.Parse(domain.DateFormat, req.SessionDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: session_date must be in format %s", ErrInvalidData, domain.DateFormat)
	}

	return date, nil
}

// validateDate проверяет дату против бизнес-политики:
// не в прошлом, в пределах горизонта, с достаточным запасом времени на сегодня
func (uc *Usecase) validateDate(date time.Time, slot *domain.Slot) error {
	now := uc.timeProvider.Now()
	today := dateOnly(now)

	if date.Before(today) {
		return fmt.Errorf("%w: session_date is in the past", ErrInvalidData)
	}

	if uc.policy.AdvanceBookingDays > 0 {
		horizon := today.AddDate(0, 0, uc.policy.AdvanceBookingDays)
		if date.After(horizon) {
			return fmt.Errorf("%w: bookings are open %d days ahead", ErrDateTooFarInFuture, uc.policy.AdvanceBookingDays)
		}
	}

	if !slot.OfferedOn(date) {
		return fmt.Errorf("%w: slot %s is not offered on %s", ErrSlotUnavailable, slot.Code, date.Format(domain.DateFormat))
	}

	if date.Equal(today) && uc.policy.MinBookingNoticeMinutes > 0 {
		nowTS := types.NewTimeString(now)
		minutes, err := nowTS.MinutesUntil(slot.StartTime)
		if err != nil {
			return fmt.Errorf("%w: invalid slot start time", ErrInvalidData)
		}
		if minutes < uc.policy.MinBookingNoticeMinutes {
			return fmt.Errorf("%w: slot %s starts too soon to book today", ErrSlotUnavailable, slot.Code)
		}
	}

	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
