package book_session

import (
	"context"

	bookSession "github.com/m04kA/GMS-BookingService/internal/usecase/book_session"
)

type BookSessionUseCase interface {
	Execute(ctx context.Context, memberID int64, req *bookSession.BookSessionRequest) (*bookSession.BookSessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
