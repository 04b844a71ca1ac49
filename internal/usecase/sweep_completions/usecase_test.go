package sweep_completions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/pkg/types"
)

type fakeTimeProvider struct {
	now time.Time
}

func (p *fakeTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockSessionRepo struct {
	sessions []*domain.Session
}

func (m *mockSessionRepo) CompleteExpired(_ context.Context, today time.Time, now types.TimeString) (int64, error) {
	var completed int64
	for _, s := range m.sessions {
		if s.Status != domain.StatusConfirmed {
			continue
		}
		if s.SessionDate.Before(today) || (s.SessionDate.Equal(today) && s.EndTime.IsBefore(now)) {
			s.Status = domain.StatusCompleted
			completed++
		}
	}
	return completed, nil
}

func TestExecute_CompletesExpiredSessions(t *testing.T) {
	// Сейчас 2026-03-10 12:00
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	repo := &mockSessionRepo{sessions: []*domain.Session{
		// Вчерашняя подтверждённая: завершается
		{ID: 1, SessionDate: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), EndTime: "09:30", Status: domain.StatusConfirmed},
		// Сегодняшняя, уже закончилась: завершается
		{ID: 2, SessionDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), EndTime: "11:30", Status: domain.StatusConfirmed},
		// Сегодняшняя, ещё идёт: не трогается
		{ID: 3, SessionDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), EndTime: "13:30", Status: domain.StatusConfirmed},
		// Завтрашняя: не трогается
		{ID: 4, SessionDate: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), EndTime: "09:30", Status: domain.StatusConfirmed},
		// Ожидающая подтверждения: не завершается автоматически
		{ID: 5, SessionDate: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), EndTime: "09:30", Status: domain.StatusPending},
		// Отменённая: не трогается
		{ID: 6, SessionDate: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), EndTime: "09:30", Status: domain.StatusCancelled},
	}}

	uc := NewUsecase(repo, &fakeTimeProvider{now: now}, nopLogger{})

	completed, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), completed)

	assert.Equal(t, domain.StatusCompleted, repo.sessions[0].Status)
	assert.Equal(t, domain.StatusCompleted, repo.sessions[1].Status)
	assert.Equal(t, domain.StatusConfirmed, repo.sessions[2].Status)
	assert.Equal(t, domain.StatusConfirmed, repo.sessions[3].Status)
	assert.Equal(t, domain.StatusPending, repo.sessions[4].Status)
	assert.Equal(t, domain.StatusCancelled, repo.sessions[5].Status)
}

func TestExecute_Idempotent(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &mockSessionRepo{sessions: []*domain.Session{
		{ID: 1, SessionDate: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), EndTime: "09:30", Status: domain.StatusConfirmed},
	}}

	uc := NewUsecase(repo, &fakeTimeProvider{now: now}, nopLogger{})

	completed, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), completed)

	// Повторный запуск ничего не находит
	completed, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), completed)
}
