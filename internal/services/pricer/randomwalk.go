package pricer

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/fibolab/fibbot/internal/domain"
)

// RandomWalkPricer simulates a market by walking the price up or down by a
// bounded random percentage on every call. A fixed seed makes the sequence
// deterministic, which keeps simulations reproducible.
type RandomWalkPricer struct {
	rng         *rand.Rand
	price       decimal.Decimal
	maxStepFrac float64
}

// NewRandomWalkPricer creates a random walk starting at startPrice.
// maxStepPercent bounds the per-tick move, e.g. 2 means at most ±2%.
func NewRandomWalkPricer(startPrice decimal.Decimal, maxStepPercent float64, seed int64) (*RandomWalkPricer, error) {
	if startPrice.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("start price must be positive, got %s", startPrice.String())
	}
	if maxStepPercent <= 0 || maxStepPercent >= 100 {
		return nil, fmt.Errorf("max step percent must be in (0, 100), got %f", maxStepPercent)
	}

	return &RandomWalkPricer{
		rng:         rand.New(rand.NewSource(seed)),
		price:       startPrice,
		maxStepFrac: maxStepPercent / 100,
	}, nil
}

// GetPrice advances the walk one step and returns the new price.
// The multiplicative step keeps the price strictly positive.
func (p *RandomWalkPricer) GetPrice(_ context.Context, _ domain.Pair) (decimal.Decimal, error) {
	step := (p.rng.Float64()*2 - 1) * p.maxStepFrac
	p.price = p.price.Mul(decimal.NewFromFloat(1 + step))
	return p.price, nil
}
