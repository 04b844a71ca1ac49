package purchase_credits

import (
	"context"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/internal/integrations/payments"
)

// LedgerRepository интерфейс репозитория леджера
type LedgerRepository interface {
	Append(ctx context.Context, e *domain.LedgerEntry) (*domain.LedgerEntry, error)
	SumByMember(ctx context.Context, memberID int64) (int, error)
}

// MemberClient интерфейс клиента справочника участников
type MemberClient interface {
	Exists(ctx context.Context, memberID int64) (bool, error)
}

// PaymentClient интерфейс клиента платежного провайдера
type PaymentClient interface {
	Charge(ctx context.Context, req payments.ChargeRequest) (*payments.Charge, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
