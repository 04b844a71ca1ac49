package get_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
)

// Usecase сетка доступности слотов на календарный месяц
type Usecase struct {
	sessionRepo  SessionRepository
	slotRepo     SlotRepository
	timeProvider TimeProvider
	horizonDays  int
}

func NewUsecase(sessionRepo SessionRepository, slotRepo SlotRepository, timeProvider TimeProvider, horizonDays int) *Usecase {
	return &Usecase{
		sessionRepo:  sessionRepo,
		slotRepo:     slotRepo,
		timeProvider: timeProvider,
		horizonDays:  horizonDays,
	}
}

// Execute возвращает состояние всех слотов на каждый день месяца.
// month задаётся в формате YYYY-MM.
func (uc *Usecase) Execute(ctx context.Context, month string) (*AvailabilityResponse, error) {
	monthStart, err := time.Parse(domain.MonthFormat, month)
	if err != nil {
		return nil, fmt.Errorf("%w: %q, expected %s", ErrInvalidMonth, month, domain.MonthFormat)
	}

	slots, err := uc.slotRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("get_availability.Execute - failed to list slots: %w", err)
	}

	monthEnd := monthStart.AddDate(0, 1, -1)
	active, err := uc.sessionRepo.ListActiveInRange(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("get_availability.Execute - failed to list sessions for %s: %w", month, err)
	}

	now := uc.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	return &AvailabilityResponse{
		Month: month,
		Days:  buildMonthGrid(monthStart, slots, active, today, uc.horizonDays),
	}, nil
}
