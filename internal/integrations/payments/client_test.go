package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testRequest() ChargeRequest {
	return ChargeRequest{PayerRef: "42", AmountMinor: 15000, Method: "card"}
}

func TestCharge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/charges", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req ChargeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(15000), req.AmountMinor)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "ch_001", "status": "succeeded"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, nopLogger{})

	charge, err := client.Charge(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "ch_001", charge.ID)
	assert.Equal(t, "succeeded", charge.Status)
}

func TestCharge_Declined(t *testing.T) {
	for _, status := range []int{http.StatusPaymentRequired, http.StatusUnprocessableEntity} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			w.Write([]byte(`{"code": "card_declined", "message": "insufficient funds"}`))
		}))

		client := NewClient(srv.URL, 5*time.Second, nopLogger{})

		_, err := client.Charge(context.Background(), testRequest())
		assert.ErrorIs(t, err, ErrChargeDeclined, "status %d", status)

		srv.Close()
	}
}

func TestCharge_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, nopLogger{})

	_, err := client.Charge(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
