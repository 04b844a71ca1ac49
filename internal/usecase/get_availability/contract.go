package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	ListActiveInRange(ctx context.Context, from, to time.Time) ([]*domain.Session, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	List(ctx context.Context) ([]*domain.Slot, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
