package book_session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/internal/infra/storage/ledger"
	"github.com/m04kA/GMS-BookingService/internal/infra/storage/session"
	"github.com/m04kA/GMS-BookingService/internal/infra/storage/slot"
)

type fakeTimeProvider struct {
	now time.Time
}

func (p *fakeTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockSessionRepo struct {
	nextID    int64
	sessions  map[int64]*domain.Session
	createErr error
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{nextID: 1, sessions: make(map[int64]*domain.Session)}
}

func (m *mockSessionRepo) Create(_ context.Context, s *domain.Session) (*domain.Session, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	for _, existing := range m.sessions {
		if existing.IsActive() && existing.SessionDate.Equal(s.SessionDate) && existing.SlotCode == s.SlotCode {
			return nil, session.ErrSlotTaken
		}
	}
	created := *s
	created.ID = m.nextID
	created.CreatedAt = time.Now()
	m.nextID++
	m.sessions[created.ID] = &created
	return &created, nil
}

func (m *mockSessionRepo) GetActiveBySlot(_ context.Context, date time.Time, slotCode string) (*domain.Session, error) {
	for _, s := range m.sessions {
		if s.IsActive() && s.SessionDate.Equal(date) && s.SlotCode == slotCode {
			return s, nil
		}
	}
	return nil, session.ErrSessionNotFound
}

type mockSlotRepo struct {
	slots map[string]*domain.Slot
}

func (m *mockSlotRepo) GetByCode(_ context.Context, code string) (*domain.Slot, error) {
	if s, ok := m.slots[code]; ok {
		return s, nil
	}
	return nil, slot.ErrSlotNotFound
}

type mockLedgerRepo struct {
	nextID    int64
	entries   []*domain.LedgerEntry
	appendErr error
}

func newMockLedgerRepo(initialBalance int, memberID int64) *mockLedgerRepo {
	repo := &mockLedgerRepo{nextID: 1}
	if initialBalance > 0 {
		repo.entries = append(repo.entries, &domain.LedgerEntry{
			ID:       repo.nextID,
			MemberID: memberID,
			Type:     domain.EntryPurchase,
			Amount:   initialBalance,
		})
		repo.nextID++
	}
	return repo
}

func (m *mockLedgerRepo) Append(_ context.Context, e *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	if m.appendErr != nil {
		return nil, m.appendErr
	}
	if e.Type == domain.EntryRefund && e.Reference != nil {
		for _, existing := range m.entries {
			if existing.Type == domain.EntryRefund && existing.Reference != nil && *existing.Reference == *e.Reference {
				return nil, ledger.ErrAlreadyRefunded
			}
		}
	}
	created := *e
	created.ID = m.nextID
	created.CreatedAt = time.Now()
	m.nextID++
	m.entries = append(m.entries, &created)
	return &created, nil
}

func (m *mockLedgerRepo) SumByMember(_ context.Context, memberID int64) (int, error) {
	sum := 0
	for _, e := range m.entries {
		if e.MemberID == memberID {
			sum += e.Amount
		}
	}
	return sum, nil
}

func (m *mockLedgerRepo) ListByMember(_ context.Context, memberID int64) ([]*domain.LedgerEntry, error) {
	var result []*domain.LedgerEntry
	for _, e := range m.entries {
		if e.MemberID == memberID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockLedgerRepo) countByType(entryType domain.EntryType) int {
	count := 0
	for _, e := range m.entries {
		if e.Type == entryType {
			count++
		}
	}
	return count
}

type mockMemberClient struct {
	members map[int64]bool
}

func (m *mockMemberClient) Exists(_ context.Context, memberID int64) (bool, error) {
	return m.members[memberID], nil
}

// failingLedgerRepo ломает Append только для refund записей
type failingLedgerRepo struct {
	*mockLedgerRepo
}

func (m *failingLedgerRepo) Append(ctx context.Context, e *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	if e.Type == domain.EntryRefund {
		return nil, fmt.Errorf("%w: connection reset", ledger.ErrExecQuery)
	}
	return m.mockLedgerRepo.Append(ctx, e)
}

const testMemberID = int64(42)

// 2026-03-10 вторник, 12:00
var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func testSlots() *mockSlotRepo {
	return &mockSlotRepo{slots: map[string]*domain.Slot{
		"early-morning": {Code: "early-morning", StartTime: "07:30", EndTime: "09:30", Weekdays: []int{1, 2, 3, 4, 5}, CreditCost: 1},
		"late-morning":  {Code: "late-morning", StartTime: "09:30", EndTime: "11:30", Weekdays: []int{1, 2, 3, 4, 5}, CreditCost: 1},
	}}
}

func newTestUsecase(sessionRepo SessionRepository, ledgerRepo LedgerRepository) *Usecase {
	return NewUsecase(
		sessionRepo,
		testSlots(),
		ledgerRepo,
		&mockMemberClient{members: map[int64]bool{testMemberID: true}},
		fakeTxManager{},
		&fakeTimeProvider{now: testNow},
		Policy{AdvanceBookingDays: 30, MinBookingNoticeMinutes: 60},
		nopLogger{},
	)
}

func TestExecute_Success(t *testing.T) {
	sessionRepo := newMockSessionRepo()
	ledgerRepo := newMockLedgerRepo(4, testMemberID)
	uc := newTestUsecase(sessionRepo, ledgerRepo)

	resp, err := uc.Execute(context.Background(), testMemberID, &BookSessionRequest{
		SessionDate: "2026-03-12",
		SlotCode:    "early-morning",
	})
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "early-morning", resp.SlotCode)
	assert.Equal(t, "2026-03-12", resp.SessionDate)
	assert.Equal(t, 3, resp.Balance)
	assert.NotEmpty(t, resp.BookingRef)

	// Списание привязано к booking_ref сессии
	entries, _ := ledgerRepo.ListByMember(context.Background(), testMemberID)
	require.Len(t, entries, 2)
	consume := entries[1]
	assert.Equal(t, domain.EntryConsume, consume.Type)
	assert.Equal(t, -1, consume.Amount)
	require.NotNil(t, consume.Reference)
	assert.Equal(t, resp.BookingRef, *consume.Reference)
}

func TestExecute_RequireApproval(t *testing.T) {
	sessionRepo := newMockSessionRepo()
	ledgerRepo := newMockLedgerRepo(4, testMemberID)
	uc := newTestUsecase(sessionRepo, ledgerRepo)
	uc.policy.RequireApproval = true

	resp, err := uc.Execute(context.Background(), testMemberID, &BookSessionRequest{
		SessionDate: "2026-03-12",
		SlotCode:    "early-morning",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
}

func TestExecute_InsufficientCredits(t *testing.T) {
	sessionRepo := newMockSessionRepo()
	ledgerRepo := newMockLedgerRepo(0, testMemberID)
	uc := newTestUsecase(sessionRepo, ledgerRepo)

	_, err := uc.Execute(context.Background(), testMemberID, &BookSessionRequest{
		SessionDate: "2026-03-12",
		SlotCode:    "early-morning",
	})
	assert.ErrorIs(t, err, ErrInsufficientCredits)

	// Ничего не списано, сессия не создана
	balance, _ := ledgerRepo.SumByMember(context.Background(), testMemberID)
	assert.Equal(t, 0, balance)
	assert.Empty(t, sessionRepo.sessions)
}

func TestExecute_SlotAlreadyBooked(t *testing.T) {
	sessionRepo := newMockSessionRepo()
	_, err := sessionRepo.Create(context.Background(), &domain.Session{
		MemberID:    99,
		SlotCode:    "early-morning",
		SessionDate: time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		Status:      domain.StatusConfirmed,
	})
	require.NoError(t, err)

	ledgerRepo := newMockLedgerRepo(4, testMemberID)
	uc := newTestUsecase(sessionRepo, ledgerRepo)

	_, err = uc.Execute(context.Background(), testMemberID, &BookSessionRequest{
		SessionDate: "2026-03-12",
		SlotCode:    "early-morning",
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	// Быстрая проверка отсекает до списания: баланс не тронут
	balance, _ := ledgerRepo.SumByMember(context.Background(), testMemberID)
	assert.Equal(t, 4, balance)
}

func TestExecute_CommitFailureRefundsCredits(t *testing.T) {
	sessionRepo := newMockSessionRepo()
	sessionRepo.createErr = fmt.Errorf("%w: deadlock", session.ErrExecQuery)

	ledgerRepo := newMockLedgerRepo(4, testMemberID)
	uc := newTestUsecase(sessionRepo, ledgerRepo)

	_, err := uc.Execute(context.Background(), testMemberID, &BookSessionRequest{
		SessionDate: "2026-03-12",
		SlotCode:    "early-morning",
	})
	require.ErrorIs(t, err, ErrBookingFailed)
	assert.Contains(t, err.Error(), "credits restored")

	// Компенсирующий refund вернул баланс
	balance, _ := ledgerRepo.SumByMember(context.Background(), testMemberID)
	assert.Equal(t, 4, balance)
	assert.Equal(t, 1, ledgerRepo.countByType(domain.EntryConsume))
	assert.Equal(t, 1, ledgerRepo.countByType(domain.EntryRefund))
}

func TestExecute_RefundFailureReportsBookingRef(t *testing.T) {
	sessionRepo := newMockSessionRepo()
	sessionRepo.createErr = fmt.Errorf("%w: deadlock", session.ErrExecQuery)

	ledgerRepo := &failingLedgerRepo{mockLedgerRepo: newMockLedgerRepo(4, testMemberID)}
	uc := newTestUsecase(sessionRepo, ledgerRepo)

	_, err := uc.Execute(context.Background(), testMemberID, &BookSessionRequest{
		SessionDate: "2026-03-12",
		SlotCode:    "early-morning",
	})
	require.ErrorIs(t, err, ErrBookingFailed)
	assert.Contains(t, err.Error(), "booking_ref=")
	assert.Contains(t, err.Error(), "may not have been restored")
}

func TestExecute_LostRaceOnCommit(t *testing.T) {
	sessionRepo := newMockSessionRepo()
	sessionRepo.createErr = session.ErrSlotTaken

	ledgerRepo := newMockLedgerRepo(4, testMemberID)
	uc := newTestUsecase(sessionRepo, ledgerRepo)

	_, err := uc.Execute(context.Background(), testMemberID, &BookSessionRequest{
		SessionDate: "2026-03-12",
		SlotCode:    "early-morning",
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	// Проигравший гонку получает кредиты обратно
	balance, _ := ledgerRepo.SumByMember(context.Background(), testMemberID)
	assert.Equal(t, 4, balance)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		slot    string
		wantErr error
	}{
		{"past date", "2026-03-09", "early-morning", ErrInvalidData},
		{"bad date format", "12.03.2026", "early-morning", ErrInvalidData},
		{"empty slot code", "2026-03-12", "", ErrInvalidData},
		{"unknown slot", "2026-03-12", "midnight", ErrSlotNotFound},
		{"beyond horizon", "2026-05-01", "early-morning", ErrDateTooFarInFuture},
		{"weekend", "2026-03-14", "early-morning", ErrSlotUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUsecase(newMockSessionRepo(), newMockLedgerRepo(4, testMemberID))
			_, err := uc.Execute(context.Background(), testMemberID, &BookSessionRequest{
				SessionDate: tt.date,
				SlotCode:    tt.slot,
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_SameDayTooLate(t *testing.T) {
	uc := newTestUsecase(newMockSessionRepo(), newMockLedgerRepo(4, testMemberID))

	// Сейчас 12:00, слот late-morning уже начался
	_, err := uc.Execute(context.Background(), testMemberID, &BookSessionRequest{
		SessionDate: "2026-03-10",
		SlotCode:    "late-morning",
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_UnknownMember(t *testing.T) {
	uc := newTestUsecase(newMockSessionRepo(), newMockLedgerRepo(4, testMemberID))

	_, err := uc.Execute(context.Background(), int64(777), &BookSessionRequest{
		SessionDate: "2026-03-12",
		SlotCode:    "early-morning",
	})
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestExecute_BookingRefsAreUnique(t *testing.T) {
	sessionRepo := newMockSessionRepo()
	ledgerRepo := newMockLedgerRepo(4, testMemberID)
	uc := newTestUsecase(sessionRepo, ledgerRepo)

	first, err := uc.Execute(context.Background(), testMemberID, &BookSessionRequest{
		SessionDate: "2026-03-12",
		SlotCode:    "early-morning",
	})
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), testMemberID, &BookSessionRequest{
		SessionDate: "2026-03-12",
		SlotCode:    "late-morning",
	})
	require.NoError(t, err)

	assert.NotEqual(t, first.BookingRef, second.BookingRef)
	assert.Equal(t, 3, first.Balance)
	assert.Equal(t, 2, second.Balance)
}
