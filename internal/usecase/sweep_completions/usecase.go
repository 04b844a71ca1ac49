package sweep_completions

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/GMS-BookingService/pkg/types"
)

// Usecase периодический перевод истёкших подтверждённых сессий
// в статус completed. Операция идемпотентна: повторный запуск
// не затрагивает уже завершённые сессии.
type Usecase struct {
	sessionRepo  SessionRepository
	timeProvider TimeProvider
	logger       Logger
}

func NewUsecase(sessionRepo SessionRepository, timeProvider TimeProvider, logger Logger) *Usecase {
	return &Usecase{
		sessionRepo:  sessionRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute завершает все подтверждённые сессии, чьё время окончания прошло
func (uc *Usecase) Execute(ctx context.Context) (int64, error) {
	now := uc.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	completed, err := uc.sessionRepo.CompleteExpired(ctx, today, types.NewTimeString(now))
	if err != nil {
		return 0, fmt.Errorf("sweep_completions.Execute - failed to complete expired sessions: %w", err)
	}

	if completed > 0 {
		uc.logger.Info("sweep_completions.Execute - marked %d sessions as completed", completed)
	}

	return completed, nil
}
