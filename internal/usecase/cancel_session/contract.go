package cancel_session

import (
	"context"
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Session, error)
	CancelActive(ctx context.Context, id int64, reason string) error
}

// LedgerRepository интерфейс репозитория леджера
type LedgerRepository interface {
	Append(ctx context.Context, e *domain.LedgerEntry) (*domain.LedgerEntry, error)
	GetConsumeByReference(ctx context.Context, reference string) (*domain.LedgerEntry, error)
	HasRefundForReference(ctx context.Context, reference string) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
