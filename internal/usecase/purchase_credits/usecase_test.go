package purchase_credits

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/internal/integrations/payments"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockLedgerRepo struct {
	nextID    int64
	entries   []*domain.LedgerEntry
	appendErr error
}

func (m *mockLedgerRepo) Append(_ context.Context, e *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	if m.appendErr != nil {
		return nil, m.appendErr
	}
	created := *e
	m.nextID++
	created.ID = m.nextID
	created.CreatedAt = time.Now()
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

type mockMemberClient struct {
	members map[int64]bool
}

func (m *mockMemberClient) Exists(_ context.Context, memberID int64) (bool, error) {
	return m.members[memberID], nil
}

type mockPaymentClient struct {
	chargeErr error
	requests  []payments.ChargeRequest
}

func (m *mockPaymentClient) Charge(_ context.Context, req payments.ChargeRequest) (*payments.Charge, error) {
	m.requests = append(m.requests, req)
	if m.chargeErr != nil {
		return nil, m.chargeErr
	}
	return &payments.Charge{ID: "ch_test_001", Status: "succeeded"}, nil
}

const testMemberID = int64(42)

func newTestUsecase(ledgerRepo *mockLedgerRepo, paymentClient *mockPaymentClient) *Usecase {
	return NewUsecase(
		ledgerRepo,
		&mockMemberClient{members: map[int64]bool{testMemberID: true}},
		paymentClient,
		fakeTxManager{},
		nopLogger{},
	)
}

func validRequest() *PurchaseCreditsRequest {
	return &PurchaseCreditsRequest{Amount: 10, UnitPriceMinor: 1500, PaymentMethod: "card"}
}

func TestExecute_Success(t *testing.T) {
	ledgerRepo := &mockLedgerRepo{}
	paymentClient := &mockPaymentClient{}
	uc := newTestUsecase(ledgerRepo, paymentClient)

	resp, err := uc.Execute(context.Background(), testMemberID, validRequest())
	require.NoError(t, err)

	assert.Equal(t, 10, resp.Amount)
	assert.Equal(t, 10, resp.Balance)
	assert.Equal(t, "ch_test_001", resp.ChargeID)

	// Запись purchase хранит цену и id платежа
	require.Len(t, ledgerRepo.entries, 1)
	entry := ledgerRepo.entries[0]
	assert.Equal(t, domain.EntryPurchase, entry.Type)
	assert.Equal(t, 10, entry.Amount)
	require.NotNil(t, entry.UnitPriceMinor)
	assert.Equal(t, int64(1500), *entry.UnitPriceMinor)
	require.NotNil(t, entry.ChargeID)
	assert.Equal(t, "ch_test_001", *entry.ChargeID)

	// Сумма платежа: количество * цена за кредит
	require.Len(t, paymentClient.requests, 1)
	assert.Equal(t, int64(15000), paymentClient.requests[0].AmountMinor)
	assert.Equal(t, "42", paymentClient.requests[0].PayerRef)
}

func TestExecute_PaymentDeclined(t *testing.T) {
	ledgerRepo := &mockLedgerRepo{}
	paymentClient := &mockPaymentClient{chargeErr: payments.ErrChargeDeclined}
	uc := newTestUsecase(ledgerRepo, paymentClient)

	_, err := uc.Execute(context.Background(), testMemberID, validRequest())
	assert.ErrorIs(t, err, ErrPaymentDeclined)
	assert.Empty(t, ledgerRepo.entries)
}

func TestExecute_PaymentProviderDown(t *testing.T) {
	ledgerRepo := &mockLedgerRepo{}
	paymentClient := &mockPaymentClient{chargeErr: payments.ErrInternal}
	uc := newTestUsecase(ledgerRepo, paymentClient)

	_, err := uc.Execute(context.Background(), testMemberID, validRequest())
	assert.ErrorIs(t, err, ErrPaymentUnavailable)
	assert.Empty(t, ledgerRepo.entries)
}

func TestExecute_AppendFailureReportsChargeID(t *testing.T) {
	ledgerRepo := &mockLedgerRepo{appendErr: fmt.Errorf("connection reset")}
	paymentClient := &mockPaymentClient{}
	uc := newTestUsecase(ledgerRepo, paymentClient)

	_, err := uc.Execute(context.Background(), testMemberID, validRequest())
	require.ErrorIs(t, err, ErrInternal)
	assert.Contains(t, err.Error(), "charge_id=ch_test_001")
}

func TestExecute_UnknownMember(t *testing.T) {
	uc := newTestUsecase(&mockLedgerRepo{}, &mockPaymentClient{})

	_, err := uc.Execute(context.Background(), int64(777), validRequest())
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		req  *PurchaseCreditsRequest
	}{
		{"zero amount", &PurchaseCreditsRequest{Amount: 0, UnitPriceMinor: 1500, PaymentMethod: "card"}},
		{"negative amount", &PurchaseCreditsRequest{Amount: -5, UnitPriceMinor: 1500, PaymentMethod: "card"}},
		{"amount above cap", &PurchaseCreditsRequest{Amount: domain.MaxPurchaseAmount + 1, UnitPriceMinor: 1500, PaymentMethod: "card"}},
		{"zero price", &PurchaseCreditsRequest{Amount: 10, UnitPriceMinor: 0, PaymentMethod: "card"}},
		{"missing method", &PurchaseCreditsRequest{Amount: 10, UnitPriceMinor: 1500}},
	}

	paymentClient := &mockPaymentClient{}
	uc := newTestUsecase(&mockLedgerRepo{}, paymentClient)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), testMemberID, tt.req)
			assert.ErrorIs(t, err, ErrInvalidData)
		})
	}

	// Провайдер не вызывался ни разу
	assert.Empty(t, paymentClient.requests)
}
