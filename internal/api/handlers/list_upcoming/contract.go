package list_upcoming

import (
	"context"

	"github.com/m04kA/GMS-BookingService/internal/service/sessions/models"
)

type SessionsService interface {
	ListUpcoming(ctx context.Context, memberID int64) (*models.SessionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
