package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("07:30")
	require.NoError(t, err)
	assert.Equal(t, "07:30", ts.String())

	_, err = NewTimeStringFromString("7:30:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 3, 14, 9, 5, 59, 0, time.UTC))
	assert.Equal(t, "09:05", ts.String())
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("09:30")

	result, err := ts.AddMinutes(120)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:30"), result)

	result, err = ts.AddMinutes(-60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("08:30"), result)
}

func TestTimeString_MinutesUntil(t *testing.T) {
	from := TimeString("07:30")
	to := TimeString("09:30")

	minutes, err := from.MinutesUntil(to)
	require.NoError(t, err)
	assert.Equal(t, 120, minutes)

	minutes, err = to.MinutesUntil(from)
	require.NoError(t, err)
	assert.Equal(t, -120, minutes)
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("07:30").IsBefore("09:30"))
	assert.False(t, TimeString("09:30").IsBefore("07:30"))
	assert.True(t, TimeString("09:30").IsAfter("07:30"))
	assert.False(t, TimeString("09:30").IsAfter("09:30"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("09:30:00"))
	assert.Equal(t, TimeString("09:30"), ts)

	require.NoError(t, ts.Scan([]byte("11:30:00")))
	assert.Equal(t, TimeString("11:30"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 1, 1, 7, 30, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("07:30"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("07:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "07:30", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("garbage").Value()
	assert.Error(t, err)
}
