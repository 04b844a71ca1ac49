package cancel_session

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/internal/infra/storage/ledger"
	"github.com/m04kA/GMS-BookingService/internal/infra/storage/session"
	"github.com/m04kA/GMS-BookingService/pkg/ptr"
)

// Usecase отмена сессии с возвратом кредитов.
// Отмена и возврат выполняются в одной serializable-транзакции:
// в отличие от бронирования, здесь нет внешних вызовов между шагами.
type Usecase struct {
	sessionRepo  SessionRepository
	ledgerRepo   LedgerRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

func NewUsecase(
	sessionRepo SessionRepository,
	ledgerRepo LedgerRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Usecase {
	return &Usecase{
		sessionRepo:  sessionRepo,
		ledgerRepo:   ledgerRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute отменяет сессию участника и возвращает списанные кредиты
func (uc *Usecase) Execute(ctx context.Context, memberID, sessionID int64, req *CancelSessionRequest) (*CancelSessionResponse, error) {
	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidData, domain.MaxCancellationReasonLength)
	}

	var (
		cancelled *domain.Session
		refunded  int
	)

	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		s, err := uc.sessionRepo.GetByID(ctx, sessionID)
		if err != nil {
			if errors.Is(err, session.ErrSessionNotFound) {
				return fmt.Errorf("%w: session %d", ErrSessionNotFound, sessionID)
			}
			return fmt.Errorf("failed to load session %d: %w", sessionID, err)
		}

		if s.MemberID != memberID {
			return fmt.Errorf("%w: session %d belongs to another member", ErrAccessDenied, sessionID)
		}

		if !s.CanBeCancelled() {
			return fmt.Errorf("%w: session %d is %s", ErrAlreadyTerminal, sessionID, s.Status)
		}

		if err := uc.sessionRepo.CancelActive(ctx, sessionID, req.Reason); err != nil {
			if errors.Is(err, session.ErrNotCancellable) {
				return fmt.Errorf("%w: session %d", ErrAlreadyTerminal, sessionID)
			}
			return fmt.Errorf("failed to cancel session %d: %w", sessionID, err)
		}

		consume, err := uc.ledgerRepo.GetConsumeByReference(ctx, s.BookingRef)
		if err != nil {
			return fmt.Errorf("failed to load consume entry for booking_ref %s: %w", s.BookingRef, err)
		}

		alreadyRefunded, err := uc.ledgerRepo.HasRefundForReference(ctx, s.BookingRef)
		if err != nil {
			return fmt.Errorf("failed to check refund for booking_ref %s: %w", s.BookingRef, err)
		}

		// Возврат зеркален списанию. Повторный refund по одному booking_ref
		// блокируется и здесь, и уникальным индексом в леджере.
		if !alreadyRefunded {
			entry := &domain.LedgerEntry{
				MemberID:  s.MemberID,
				Type:      domain.EntryRefund,
				Amount:    -consume.Amount,
				Reference: ptr.Ptr(s.BookingRef),
			}
			if _, err := uc.ledgerRepo.Append(ctx, entry); err != nil && !errors.Is(err, ledger.ErrAlreadyRefunded) {
				return fmt.Errorf("failed to append refund entry for booking_ref %s: %w", s.BookingRef, err)
			}
			refunded = -consume.Amount
		}

		cancelled = s
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrAccessDenied) || errors.Is(err, ErrAlreadyTerminal) {
			return nil, err
		}
		return nil, fmt.Errorf("cancel_session.Execute - session %d: %w", sessionID, err)
	}

	uc.logger.Info("cancel_session.Execute - cancelled session %d: member=%d refunded=%d booking_ref=%s",
		sessionID, memberID, refunded, cancelled.BookingRef)

	return toResponse(cancelled, refunded, uc.timeProvider.Now()), nil
}
