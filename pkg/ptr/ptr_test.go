package ptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPtr(t *testing.T) {
	s := Ptr("booking-ref")
	require.NotNil(t, s)
	assert.Equal(t, "booking-ref", *s)

	n := Ptr(int64(250))
	require.NotNil(t, n)
	assert.Equal(t, int64(250), *n)

	// Каждый вызов возвращает новый указатель
	assert.NotSame(t, Ptr(1), Ptr(1))
}
