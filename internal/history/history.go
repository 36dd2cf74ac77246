// Package history keeps a fixed-capacity rolling window of price samples.
package history

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/fibolab/fibbot/internal/domain"
)

// DefaultCapacity matches the slow EMA period: indicators need a full window.
const DefaultCapacity = 21

// ErrEmpty is returned when an aggregate is requested over an empty window.
var ErrEmpty = errors.New("price history is empty")

// PriceHistory is a chronological, capacity-bounded buffer of price samples.
// The oldest sample is evicted when the capacity is exceeded.
type PriceHistory struct {
	samples  []domain.PriceSample
	capacity int
}

// New creates a price history with the given capacity.
// Non-positive capacity falls back to DefaultCapacity.
func New(capacity int) *PriceHistory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &PriceHistory{
		samples:  make([]domain.PriceSample, 0, capacity),
		capacity: capacity,
	}
}

// Push appends a sample at the tail, evicting from the head past capacity.
// It always succeeds.
func (h *PriceHistory) Push(sample domain.PriceSample) {
	h.samples = append(h.samples, sample)
	for len(h.samples) > h.capacity {
		h.samples = h.samples[1:]
	}
}

// Len returns the number of samples currently in the window.
func (h *PriceHistory) Len() int {
	return len(h.samples)
}

// Full reports whether the window holds capacity samples.
func (h *PriceHistory) Full() bool {
	return len(h.samples) == h.capacity
}

// Prices returns the ordered price values of the current window, oldest first.
func (h *PriceHistory) Prices() []decimal.Decimal {
	prices := make([]decimal.Decimal, len(h.samples))
	for i, s := range h.samples {
		prices[i] = s.Price
	}
	return prices
}

// HighLow returns the maximum and minimum price over the current window.
func (h *PriceHistory) HighLow() (high, low decimal.Decimal, err error) {
	if len(h.samples) == 0 {
		return decimal.Zero, decimal.Zero, ErrEmpty
	}

	high = h.samples[0].Price
	low = h.samples[0].Price
	for _, s := range h.samples[1:] {
		if s.Price.GreaterThan(high) {
			high = s.Price
		}
		if s.Price.LessThan(low) {
			low = s.Price
		}
	}
	return high, low, nil
}
