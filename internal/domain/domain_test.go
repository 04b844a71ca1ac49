package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBandForBalance(t *testing.T) {
	assert.Equal(t, BandOK, BandForBalance(10))
	assert.Equal(t, BandOK, BandForBalance(3))
	assert.Equal(t, BandWarning, BandForBalance(2))
	assert.Equal(t, BandWarning, BandForBalance(1))
	assert.Equal(t, BandCritical, BandForBalance(0))
}

func TestISOWeekday(t *testing.T) {
	// 2026-03-02 is a Monday, 2026-03-08 is a Sunday
	assert.Equal(t, 1, ISOWeekday(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 5, ISOWeekday(time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 6, ISOWeekday(time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 7, ISOWeekday(time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)))
}

func TestSlot_OfferedOn(t *testing.T) {
	weekdaySlot := &Slot{Code: "early-morning", Weekdays: []int{1, 2, 3, 4, 5}}

	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	assert.True(t, weekdaySlot.OfferedOn(monday))
	assert.False(t, weekdaySlot.OfferedOn(saturday))
	assert.False(t, weekdaySlot.OfferedOn(sunday))
}

func TestSession_StatusHelpers(t *testing.T) {
	pending := &Session{Status: StatusPending}
	confirmed := &Session{Status: StatusConfirmed}
	completed := &Session{Status: StatusCompleted}
	cancelled := &Session{Status: StatusCancelled}

	assert.True(t, pending.IsActive())
	assert.True(t, confirmed.IsActive())
	assert.False(t, completed.IsActive())
	assert.False(t, cancelled.IsActive())

	assert.True(t, pending.CanBeCancelled())
	assert.True(t, confirmed.CanBeCancelled())
	assert.False(t, completed.CanBeCancelled())
	assert.False(t, cancelled.CanBeCancelled())

	assert.True(t, completed.IsTerminal())
	assert.True(t, cancelled.IsTerminal())
	assert.False(t, confirmed.IsTerminal())
}
