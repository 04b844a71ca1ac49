package ledger

import (
	"context"

	"github.com/m04kA/GMS-BookingService/internal/domain"
)

// LedgerRepository интерфейс репозитория леджера
type LedgerRepository interface {
	SumByMember(ctx context.Context, memberID int64) (int, error)
	ListByMember(ctx context.Context, memberID int64) ([]*domain.LedgerEntry, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
