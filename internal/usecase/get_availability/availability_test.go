package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GMS-BookingService/internal/domain"
)

type fakeTimeProvider struct {
	now time.Time
}

func (p *fakeTimeProvider) Now() time.Time {
	return p.now
}

type mockSlotRepo struct {
	slots []*domain.Slot
}

func (m *mockSlotRepo) List(_ context.Context) ([]*domain.Slot, error) {
	return m.slots, nil
}

type mockSessionRepo struct {
	sessions []*domain.Session
}

func (m *mockSessionRepo) ListActiveInRange(_ context.Context, from, to time.Time) ([]*domain.Session, error) {
	var result []*domain.Session
	for _, s := range m.sessions {
		if !s.SessionDate.Before(from) && !s.SessionDate.After(to) {
			result = append(result, s)
		}
	}
	return result, nil
}

func weekdaySlots() []*domain.Slot {
	return []*domain.Slot{
		{Code: "early-morning", StartTime: "07:30", EndTime: "09:30", Weekdays: []int{1, 2, 3, 4, 5}, CreditCost: 1},
		{Code: "late-morning", StartTime: "09:30", EndTime: "11:30", Weekdays: []int{1, 2, 3, 4, 5}, CreditCost: 1},
	}
}

func slotState(t *testing.T, resp *AvailabilityResponse, date, code string) string {
	t.Helper()
	for _, day := range resp.Days {
		if day.Date != date {
			continue
		}
		for _, s := range day.Slots {
			if s.SlotCode == code {
				return s.State
			}
		}
	}
	t.Fatalf("slot %s not found on %s", code, date)
	return ""
}

func TestExecute_MonthGrid(t *testing.T) {
	// 2026-03-10 вторник
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	booked := []*domain.Session{
		{
			SlotCode:    "early-morning",
			SessionDate: time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
			Status:      domain.StatusConfirmed,
		},
	}

	uc := NewUsecase(
		&mockSessionRepo{sessions: booked},
		&mockSlotRepo{slots: weekdaySlots()},
		&fakeTimeProvider{now: now},
		30,
	)

	resp, err := uc.Execute(context.Background(), "2026-03")
	require.NoError(t, err)
	assert.Equal(t, "2026-03", resp.Month)
	assert.Len(t, resp.Days, 31)

	// Прошедший день недоступен целиком
	assert.Equal(t, "unavailable", slotState(t, resp, "2026-03-09", "early-morning"))

	// Сегодня и будущее в пределах горизонта: свободно
	assert.Equal(t, "free", slotState(t, resp, "2026-03-10", "early-morning"))
	assert.Equal(t, "free", slotState(t, resp, "2026-03-11", "late-morning"))

	// Активная сессия делает слот занятым, второй слот дня остаётся свободным
	assert.Equal(t, "booked", slotState(t, resp, "2026-03-12", "early-morning"))
	assert.Equal(t, "free", slotState(t, resp, "2026-03-12", "late-morning"))

	// Выходные: слот не предлагается
	assert.Equal(t, "unavailable", slotState(t, resp, "2026-03-14", "early-morning"))
	assert.Equal(t, "unavailable", slotState(t, resp, "2026-03-15", "late-morning"))
}

func TestExecute_PastMonthFullyUnavailable(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	uc := NewUsecase(
		&mockSessionRepo{},
		&mockSlotRepo{slots: weekdaySlots()},
		&fakeTimeProvider{now: now},
		30,
	)

	resp, err := uc.Execute(context.Background(), "2026-01")
	require.NoError(t, err)

	for _, day := range resp.Days {
		for _, s := range day.Slots {
			assert.Equal(t, "unavailable", s.State, "day %s slot %s", day.Date, s.SlotCode)
		}
	}
}

func TestExecute_BeyondHorizonUnavailable(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	uc := NewUsecase(
		&mockSessionRepo{},
		&mockSlotRepo{slots: weekdaySlots()},
		&fakeTimeProvider{now: now},
		30,
	)

	// Горизонт 30 дней заканчивается 2026-04-09
	resp, err := uc.Execute(context.Background(), "2026-04")
	require.NoError(t, err)

	// 2026-04-09 четверг, в пределах горизонта
	assert.Equal(t, "free", slotState(t, resp, "2026-04-09", "early-morning"))
	// 2026-04-10 пятница, за горизонтом
	assert.Equal(t, "unavailable", slotState(t, resp, "2026-04-10", "early-morning"))
}

func TestExecute_NoHorizonLimit(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	uc := NewUsecase(
		&mockSessionRepo{},
		&mockSlotRepo{slots: weekdaySlots()},
		&fakeTimeProvider{now: now},
		0,
	)

	resp, err := uc.Execute(context.Background(), "2026-12")
	require.NoError(t, err)

	// 2026-12-01 вторник
	assert.Equal(t, "free", slotState(t, resp, "2026-12-01", "early-morning"))
}

func TestExecute_InvalidMonth(t *testing.T) {
	uc := NewUsecase(
		&mockSessionRepo{},
		&mockSlotRepo{slots: weekdaySlots()},
		&fakeTimeProvider{now: time.Now()},
		30,
	)

	_, err := uc.Execute(context.Background(), "march-2026")
	assert.ErrorIs(t, err, ErrInvalidMonth)

	_, err = uc.Execute(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidMonth)
}
