package book_session

import (
	"context"
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) (*domain.Session, error)
	GetActiveBySlot(ctx context.Context, date time.Time, slotCode string) (*domain.Session, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Slot, error)
}

// LedgerRepository интерфейс репозитория леджера
type LedgerRepository interface {
	Append(ctx context.Context, e *domain.LedgerEntry) (*domain.LedgerEntry, error)
	SumByMember(ctx context.Context, memberID int64) (int, error)
	ListByMember(ctx context.Context, memberID int64) ([]*domain.LedgerEntry, error)
}

// MemberClient интерфейс клиента справочника участников
type MemberClient interface {
	Exists(ctx context.Context, memberID int64) (bool, error)
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

// Policy бизнес-политика бронирования (из конфигурации сервиса)
type Policy struct {
	// AdvanceBookingDays горизонт бронирования в днях (0 = без ограничения)
	AdvanceBookingDays int
	// MinBookingNoticeMinutes минимальное время до начала слота при бронировании на сегодня
	MinBookingNoticeMinutes int
	// RequireApproval при true сессия создается в статусе pending
	RequireApproval bool
}
