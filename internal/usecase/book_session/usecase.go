package book_session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/internal/infra/storage/ledger"
	"github.com/m04kA/GMS-BookingService/internal/infra/storage/session"
	"github.com/m04kA/GMS-BookingService/internal/infra/storage/slot"
	"github.com/m04kA/GMS-BookingService/pkg/ptr"
)

// Usecase бронирование сессии: проверка доступности, списание кредитов,
// фиксация сессии. Списание и фиксация — отдельные транзакции, при
// неудачной фиксации выполняется компенсирующий возврат кредитов.
type Usecase struct {
	sessionRepo  SessionRepository
	slotRepo     SlotRepository
	ledgerRepo   LedgerRepository
	memberClient MemberClient
	txManager    TransactionManager
	timeProvider TimeProvider
	policy       Policy
	logger       Logger
}

func NewUsecase(
	sessionRepo SessionRepository,
	slotRepo SlotRepository,
	ledgerRepo LedgerRepository,
	memberClient MemberClient,
	txManager TransactionManager,
	timeProvider TimeProvider,
	policy Policy,
	logger Logger,
) *Usecase {
	return &Usecase{
		sessionRepo:  sessionRepo,
		slotRepo:     slotRepo,
		ledgerRepo:   ledgerRepo,
		memberClient: memberClient,
		txManager:    txManager,
		timeProvider: timeProvider,
		policy:       policy,
		logger:       logger,
	}
}

// Execute бронирует слот на дату для участника
func (uc *Usecase) Execute(ctx context.Context, memberID int64, req *BookSessionRequest) (*BookSessionResponse, error) {
	date, err := uc.validateRequest(req)
	if err != nil {
		return nil, err
	}

	exists, err := uc.memberClient.Exists(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("book_session.Execute - failed to check member %d: %w", memberID, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: member %d", ErrMemberNotFound, memberID)
	}

	slotInfo, err := uc.slotRepo.GetByCode(ctx, req.SlotCode)
	if err != nil {
		if errors.Is(err, slot.ErrSlotNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSlotNotFound, req.SlotCode)
		}
		return nil, fmt.Errorf("book_session.Execute - failed to load slot %s: %w", req.SlotCode, err)
	}

	if err := uc.validateDate(date, slotInfo); err != nil {
		return nil, err
	}

	// Быстрая проверка занятости до списания кредитов. Гонку с параллельным
	// бронированием окончательно разрешает уникальный индекс при фиксации.
	if _, err := uc.sessionRepo.GetActiveBySlot(ctx, date, slotInfo.Code); err == nil {
		return nil, fmt.Errorf("%w: %s on %s", ErrSlotUnavailable, slotInfo.Code, date.Format(domain.DateFormat))
	} else if !errors.Is(err, session.ErrSessionNotFound) {
		return nil, fmt.Errorf("book_session.Execute - failed to check slot occupancy: %w", err)
	}

	bookingRef := uuid.NewString()

	balance, err := uc.debitCredits(ctx, memberID, slotInfo.CreditCost, bookingRef)
	if err != nil {
		return nil, err
	}

	created, err := uc.commitSession(ctx, memberID, slotInfo, date, bookingRef)
	if err != nil {
		refundErr := uc.compensate(ctx, memberID, slotInfo.CreditCost, bookingRef)
		if refundErr != nil {
			uc.alertRefundFailure(ctx, memberID, bookingRef, refundErr)
			return nil, fmt.Errorf("%w: booking_ref=%s, credits may not have been restored", ErrBookingFailed, bookingRef)
		}
		if errors.Is(err, ErrSlotUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: booking_ref=%s, credits restored", ErrBookingFailed, bookingRef)
	}

	uc.logger.Info("book_session.Execute - booked session %d: member=%d slot=%s date=%s booking_ref=%s",
		created.ID, memberID, slotInfo.Code, date.Format(domain.DateFormat), bookingRef)

	return toResponse(created, balance), nil
}

// debitCredits списывает стоимость слота в serializable-транзакции.
// Баланс после списания не может стать отрицательным.
func (uc *Usecase) debitCredits(ctx context.Context, memberID int64, cost int, bookingRef string) (int, error) {
	var balance int

	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		current, err := uc.ledgerRepo.SumByMember(ctx, memberID)
		if err != nil {
			return fmt.Errorf("failed to read balance: %w", err)
		}

		if current-cost < 0 {
			return fmt.Errorf("%w: balance=%d, required=%d", ErrInsufficientCredits, current, cost)
		}

		entry := &domain.LedgerEntry{
			MemberID:  memberID,
			Type:      domain.EntryConsume,
			Amount:    -cost,
			Reference: ptr.Ptr(bookingRef),
		}
		if _, err := uc.ledgerRepo.Append(ctx, entry); err != nil {
			return fmt.Errorf("failed to append consume entry: %w", err)
		}

		balance = current - cost
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientCredits) {
			return 0, err
		}
		return 0, fmt.Errorf("book_session.debitCredits - member %d: %w", memberID, err)
	}

	return balance, nil
}

// commitSession фиксирует сессию в serializable-транзакции.
// Повторно перепроверяет занятость слота под блокировкой.
func (uc *Usecase) commitSession(ctx context.Context, memberID int64, slotInfo *domain.Slot, date time.Time, bookingRef string) (*domain.Session, error) {
	status := domain.StatusConfirmed
	if uc.policy.RequireApproval {
		status = domain.StatusPending
	}

	var created *domain.Session

	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if _, err := uc.sessionRepo.GetActiveBySlot(ctx, date, slotInfo.Code); err == nil {
			return fmt.Errorf("%w: %s on %s", ErrSlotUnavailable, slotInfo.Code, date.Format(domain.DateFormat))
		} else if !errors.Is(err, session.ErrSessionNotFound) {
			return fmt.Errorf("failed to check slot occupancy: %w", err)
		}

		s, err := uc.sessionRepo.Create(ctx, &domain.Session{
			MemberID:    memberID,
			SlotCode:    slotInfo.Code,
			SessionDate: date,
			StartTime:   slotInfo.StartTime,
			EndTime:     slotInfo.EndTime,
			CreditCost:  slotInfo.CreditCost,
			BookingRef:  bookingRef,
			Status:      status,
		})
		if err != nil {
			if errors.Is(err, session.ErrSlotTaken) {
				return fmt.Errorf("%w: %s on %s", ErrSlotUnavailable, slotInfo.Code, date.Format(domain.DateFormat))
			}
			return fmt.Errorf("failed to create session: %w", err)
		}

		created = s
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("book_session.commitSession - booking_ref %s: %w", bookingRef, err)
	}

	return created, nil
}

// compensate возвращает списанные кредиты после неудачной фиксации сессии.
// Идемпотентность возврата обеспечивает уникальный индекс по booking_ref.
func (uc *Usecase) compensate(ctx context.Context, memberID int64, cost int, bookingRef string) error {
	return uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		entry := &domain.LedgerEntry{
			MemberID:  memberID,
			Type:      domain.EntryRefund,
			Amount:    cost,
			Reference: ptr.Ptr(bookingRef),
		}
		if _, err := uc.ledgerRepo.Append(ctx, entry); err != nil {
			if errors.Is(err, ledger.ErrAlreadyRefunded) {
				return nil
			}
			return err
		}
		return nil
	})
}

// alertRefundFailure логирует инцидент для оператора: кредиты списаны,
// сессия не создана, компенсация не применилась
func (uc *Usecase) alertRefundFailure(ctx context.Context, memberID int64, bookingRef string, refundErr error) {
	uc.logger.Error("book_session - OPERATOR ALERT: compensation failed, member %d may be missing credits: booking_ref=%s, error: %v",
		memberID, bookingRef, refundErr)

	entries, err := uc.ledgerRepo.ListByMember(ctx, memberID)
	if err != nil {
		uc.logger.Error("book_session - failed to dump ledger history for member %d: %v", memberID, err)
		return
	}

	for _, e := range entries {
		ref := ""
		if e.Reference != nil {
			ref = *e.Reference
		}
		uc.logger.Error("book_session - ledger entry for member %d: id=%d type=%s amount=%d reference=%s created_at=%s",
			memberID, e.ID, e.Type, e.Amount, ref, e.CreatedAt.Format(time.RFC3339))
	}
}
