package purchase_credits

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/internal/integrations/payments"
	"github.com/m04kA/GMS-BookingService/pkg/ptr"
)

// Usecase покупка кредитов: платёж у внешнего провайдера, затем
// зачисление в леджер. Платёж выполняется до зачисления; если зачисление
// не удалось, инцидент логируется для оператора с id платежа.
type Usecase struct {
	ledgerRepo    LedgerRepository
	memberClient  MemberClient
	paymentClient PaymentClient
	txManager     TransactionManager
	logger        Logger
}

func NewUsecase(
	ledgerRepo LedgerRepository,
	memberClient MemberClient,
	paymentClient PaymentClient,
	txManager TransactionManager,
	logger Logger,
) *Usecase {
	return &Usecase{
		ledgerRepo:    ledgerRepo,
		memberClient:  memberClient,
		paymentClient: paymentClient,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute покупает пакет кредитов для участника
func (uc *Usecase) Execute(ctx context.Context, memberID int64, req *PurchaseCreditsRequest) (*PurchaseCreditsResponse, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, err
	}

	exists, err := uc.memberClient.Exists(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("purchase_credits.Execute - failed to check member %d: %w", memberID, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: member %d", ErrMemberNotFound, memberID)
	}

	charge, err := uc.paymentClient.Charge(ctx, payments.ChargeRequest{
		PayerRef:    strconv.FormatInt(memberID, 10),
		AmountMinor: req.UnitPriceMinor * int64(req.Amount),
		Method:      req.PaymentMethod,
	})
	if err != nil {
		if errors.Is(err, payments.ErrChargeDeclined) {
			return nil, fmt.Errorf("%w: member %d", ErrPaymentDeclined, memberID)
		}
		return nil, fmt.Errorf("%w: member %d: %v", ErrPaymentUnavailable, memberID, err)
	}

	var (
		entryID int64
		balance int
	)

	err = uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		entry := &domain.LedgerEntry{
			MemberID:       memberID,
			Type:           domain.EntryPurchase,
			Amount:         req.Amount,
			UnitPriceMinor: ptr.Ptr(req.UnitPriceMinor),
			ChargeID:       ptr.Ptr(charge.ID),
		}
		created, err := uc.ledgerRepo.Append(ctx, entry)
		if err != nil {
			return fmt.Errorf("failed to append purchase entry: %w", err)
		}

		sum, err := uc.ledgerRepo.SumByMember(ctx, memberID)
		if err != nil {
			return fmt.Errorf("failed to read balance: %w", err)
		}

		entryID = created.ID
		balance = sum
		return nil
	})
	if err != nil {
		// Платёж прошёл, кредиты не зачислены. Оператору нужен charge_id
		// для ручного зачисления или возврата средств.
		uc.logger.Error("purchase_credits - OPERATOR ALERT: payment succeeded but credits not granted: member=%d charge_id=%s amount=%d, error: %v",
			memberID, charge.ID, req.Amount, err)
		return nil, fmt.Errorf("%w: charge_id=%s", ErrInternal, charge.ID)
	}

	uc.logger.Info("purchase_credits.Execute - granted %d credits to member %d: charge_id=%s balance=%d",
		req.Amount, memberID, charge.ID, balance)

	return &PurchaseCreditsResponse{
		EntryID:  entryID,
		Amount:   req.Amount,
		Balance:  balance,
		ChargeID: charge.ID,
	}, nil
}

func (uc *Usecase) validateRequest(req *PurchaseCreditsRequest) error {
	if req.Amount < domain.MinPurchaseAmount || req.Amount > domain.MaxPurchaseAmount {
		return fmt.Errorf("%w: amount must be between %d and %d", ErrInvalidData, domain.MinPurchaseAmount, domain.MaxPurchaseAmount)
	}
	if req.UnitPriceMinor <= 0 {
		return fmt.Errorf("%w: unit_price_minor must be positive", ErrInvalidData)
	}
	if req.PaymentMethod == "" {
		return fmt.Errorf("%w: payment_method is required", ErrInvalidData)
	}
	return nil
}
