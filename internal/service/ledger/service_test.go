package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GMS-BookingService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockLedgerRepo struct {
	entries []*domain.LedgerEntry
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

const testMemberID = int64(42)

func repoWithBalance(balance int) *mockLedgerRepo {
	return &mockLedgerRepo{entries: []*domain.LedgerEntry{
		{ID: 1, MemberID: testMemberID, Type: domain.EntryPurchase, Amount: balance, CreatedAt: time.Now()},
	}}
}

func TestBalance_Bands(t *testing.T) {
	tests := []struct {
		balance int
		band    string
	}{
		{10, "ok"},
		{3, "ok"},
		{2, "warning"},
		{1, "warning"},
		{0, "critical"},
	}

	for _, tt := range tests {
		svc := NewService(repoWithBalance(tt.balance), nopLogger{})

		resp, err := svc.Balance(context.Background(), testMemberID)
		require.NoError(t, err)
		assert.Equal(t, tt.balance, resp.Balance, "balance %d", tt.balance)
		assert.Equal(t, tt.band, resp.Band, "balance %d", tt.balance)
	}
}

func TestBalance_EmptyLedger(t *testing.T) {
	svc := NewService(&mockLedgerRepo{}, nopLogger{})

	resp, err := svc.Balance(context.Background(), testMemberID)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Balance)
	assert.Equal(t, "critical", resp.Band)
}

func TestHistory(t *testing.T) {
	ref := "3f1d2b54-0d47-4c6e-9a5a-6a7e8c1b2d3e"
	repo := &mockLedgerRepo{entries: []*domain.LedgerEntry{
		{ID: 1, MemberID: testMemberID, Type: domain.EntryPurchase, Amount: 4, CreatedAt: time.Now()},
		{ID: 2, MemberID: testMemberID, Type: domain.EntryConsume, Amount: -1, Reference: &ref, CreatedAt: time.Now()},
		{ID: 3, MemberID: 99, Type: domain.EntryPurchase, Amount: 10, CreatedAt: time.Now()},
	}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.History(context.Background(), testMemberID)
	require.NoError(t, err)

	// Только записи запрошенного участника
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, "purchase", resp.Entries[0].Type)
	assert.Equal(t, "consume", resp.Entries[1].Type)
	require.NotNil(t, resp.Entries[1].Reference)
	assert.Equal(t, ref, *resp.Entries[1].Reference)
}
