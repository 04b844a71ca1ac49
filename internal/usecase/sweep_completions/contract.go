package sweep_completions

import (
	"context"
	"time"

	"github.com/m04kA/GMS-BookingService/pkg/types"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	CompleteExpired(ctx context.Context, today time.Time, now types.TimeString) (int64, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
