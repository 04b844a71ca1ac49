package cancel_session

import (
	"context"

	cancelSession "github.com/m04kA/GMS-BookingService/internal/usecase/cancel_session"
)

type CancelSessionUseCase interface {
	Execute(ctx context.Context, memberID, sessionID int64, req *cancelSession.CancelSessionRequest) (*cancelSession.CancelSessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
