package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	sessionRepo "github.com/m04kA/GMS-BookingService/internal/infra/storage/session"
	"github.com/m04kA/GMS-BookingService/internal/service/sessions/models"
)

// Service реестр сессий: read-модель над тем же хранилищем,
// в которое пишет Reservation Scheduler. Коммит бронирования виден
// в выборках сразу, без какой-либо отложенной согласованности
type Service struct {
	sessionRepo  SessionRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр реестра сессий
func NewService(sessionRepo SessionRepository, timeProvider TimeProvider, logger Logger) *Service {
	return &Service{
		sessionRepo:  sessionRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByID получает сессию по ID
// Участник может видеть только свои сессии
func (s *Service) GetByID(ctx context.Context, id int64, memberID int64) (*models.SessionResponse, error) {
	s.logger.Info("GetByID: fetching session id=%d for member=%d", id, memberID)

	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("GetByID: session id=%d not found", id)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("GetByID: repository error for session id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if session.MemberID != memberID {
		s.logger.Warn("GetByID: access denied for member=%d to session id=%d", memberID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainSession(session), nil
}

// ListUpcoming получает предстоящие сессии участника:
// только активные статусы, дата не раньше сегодняшней, сортировка по возрастанию
func (s *Service) ListUpcoming(ctx context.Context, memberID int64) (*models.SessionListResponse, error) {
	now := s.timeProvider.Now()
	today := dateOnly(now)

	s.logger.Info("ListUpcoming: fetching sessions for member=%d from=%s", memberID, today.Format("2006-01-02"))

	sessions, err := s.sessionRepo.ListUpcoming(ctx, memberID, today)
	if err != nil {
		s.logger.Error("ListUpcoming: repository error for member=%d: %v", memberID, err)
		return nil, fmt.Errorf("%w: ListUpcoming - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListUpcoming: fetched %d sessions for member=%d", len(sessions), memberID)
	return models.FromDomainSessionList(sessions), nil
}

// ListPast получает прошедшие сессии участника:
// только финальные статусы, дата строго раньше сегодняшней, сначала новые
func (s *Service) ListPast(ctx context.Context, memberID int64) (*models.SessionListResponse, error) {
	now := s.timeProvider.Now()
	today := dateOnly(now)

	s.logger.Info("ListPast: fetching sessions for member=%d before=%s", memberID, today.Format("2006-01-02"))

	sessions, err := s.sessionRepo.ListPast(ctx, memberID, today)
	if err != nil {
		s.logger.Error("ListPast: repository error for member=%d: %v", memberID, err)
		return nil, fmt.Errorf("%w: ListPast - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListPast: fetched %d sessions for member=%d", len(sessions), memberID)
	return models.FromDomainSessionList(sessions), nil
}

// dateOnly обнуляет время, оставляя только дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
