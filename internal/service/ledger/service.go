package ledger

import (
	"context"
	"fmt"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/internal/service/ledger/models"
)

// Service read-сторона кредитного леджера: баланс, полоса статуса, история
// Баланс всегда пересчитывается по записям в момент чтения
type Service struct {
	ledgerRepo LedgerRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса леджера
func NewService(ledgerRepo LedgerRepository, logger Logger) *Service {
	return &Service{
		ledgerRepo: ledgerRepo,
		logger:     logger,
	}
}

// Balance возвращает текущий баланс участника и полосу статуса для UI
func (s *Service) Balance(ctx context.Context, memberID int64) (*models.BalanceResponse, error) {
	balance, err := s.ledgerRepo.SumByMember(ctx, memberID)
	if err != nil {
		s.logger.Error("Balance: repository error for member=%d: %v", memberID, err)
		return nil, fmt.Errorf("%w: Balance - repository error: %v", ErrInternal, err)
	}

	return &models.BalanceResponse{
		MemberID: memberID,
		Balance:  balance,
		Band:     string(domain.BandForBalance(balance)),
	}, nil
}

// History возвращает все операции участника, сначала новые
func (s *Service) History(ctx context.Context, memberID int64) (*models.HistoryResponse, error) {
	entries, err := s.ledgerRepo.ListByMember(ctx, memberID)
	if err != nil {
		s.logger.Error("History: repository error for member=%d: %v", memberID, err)
		return nil, fmt.Errorf("%w: History - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("History: fetched %d entries for member=%d", len(entries), memberID)
	return models.FromDomainEntryList(memberID, entries), nil
}
