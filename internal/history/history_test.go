package history

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fibolab/fibbot/internal/domain"
)

func sampleAt(i int, price int64) domain.PriceSample {
	return domain.PriceSample{
		Time:  time.Unix(int64(i), 0),
		Price: decimal.NewFromInt(price),
	}
}

func TestPushEvictsOldest(t *testing.T) {
	h := New(3)

	for i := 0; i < 5; i++ {
		h.Push(sampleAt(i, int64(i+1)))
	}

	require.Equal(t, 3, h.Len())
	assert.True(t, h.Full())

	prices := h.Prices()
	require.Len(t, prices, 3)
	assert.True(t, prices[0].Equal(decimal.NewFromInt(3)))
	assert.True(t, prices[1].Equal(decimal.NewFromInt(4)))
	assert.True(t, prices[2].Equal(decimal.NewFromInt(5)))
}

func TestDefaultCapacity(t *testing.T) {
	h := New(0)

	for i := 0; i < DefaultCapacity+10; i++ {
		h.Push(sampleAt(i, 1))
	}

	assert.Equal(t, DefaultCapacity, h.Len())
}

func TestPricesPreservesInsertionOrder(t *testing.T) {
	h := New(5)
	values := []int64{7, 3, 9, 1, 5}
	for i, v := range values {
		h.Push(sampleAt(i, v))
	}

	prices := h.Prices()
	require.Len(t, prices, len(values))
	for i, v := range values {
		assert.True(t, prices[i].Equal(decimal.NewFromInt(v)), "index %d", i)
	}
}

func TestHighLow(t *testing.T) {
	h := New(5)
	for i, v := range []int64{7, 3, 9, 1, 5} {
		h.Push(sampleAt(i, v))
	}

	high, low, err := h.HighLow()
	require.NoError(t, err)
	assert.True(t, high.Equal(decimal.NewFromInt(9)))
	assert.True(t, low.Equal(decimal.NewFromInt(1)))
}

func TestHighLowEmpty(t *testing.T) {
	h := New(5)

	_, _, err := h.HighLow()
	require.ErrorIs(t, err, ErrEmpty)
}
