package get_ledger_history

import (
	"context"

	"github.com/m04kA/GMS-BookingService/internal/service/ledger/models"
)

type LedgerService interface {
	History(ctx context.Context, memberID int64) (*models.HistoryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
