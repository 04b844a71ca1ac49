package get_slots

import (
	"context"

	"github.com/m04kA/GMS-BookingService/internal/domain"
)

type SlotRepository interface {
	List(ctx context.Context) ([]*domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
