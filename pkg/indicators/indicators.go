// Package indicators provides the technical analysis primitives used by the
// decision engine: EMA trend values, Fibonacci retracement levels and an
// advisory RSI.
package indicators

import (
	"fmt"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/momentum"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ErrNotEnoughData is returned when a sequence is shorter than the requested
// period. Callers treat it as "insufficient data, skip trading logic", not as
// a failure.
var ErrNotEnoughData = errors.New("not enough data points")

// fibRatios are the retracement offsets applied from the window high,
// ordered so that level 0 is the high itself and level 6 is the low.
var fibRatios = [7]decimal.Decimal{
	decimal.Zero,
	decimal.NewFromFloat(0.25),
	decimal.NewFromFloat(0.382),
	decimal.NewFromFloat(0.5),
	decimal.NewFromFloat(0.618),
	decimal.NewFromFloat(0.75),
	decimal.NewFromInt(1),
}

// Indices of the two retracement levels consulted by trade signals.
const (
	FibSellLevelIndex = 1
	FibBuyLevelIndex  = 5
)

// EMA computes the exponential moving average of the sequence with smoothing
// factor k = 2/(period+1). The running value is seeded with the first element
// of the sequence, so the result is order-sensitive: prices must be
// chronological, oldest first.
func EMA(prices []decimal.Decimal, period int) (decimal.Decimal, error) {
	if period <= 0 {
		return decimal.Zero, fmt.Errorf("ema period must be positive, got %d", period)
	}
	if len(prices) < period {
		return decimal.Zero, errors.Wrapf(ErrNotEnoughData, "need %d, got %d", period, len(prices))
	}

	k := decimal.NewFromInt(2).Div(decimal.NewFromInt(int64(period) + 1))
	oneMinusK := decimal.NewFromInt(1).Sub(k)

	ema := prices[0]
	for _, price := range prices[1:] {
		ema = price.Mul(k).Add(ema.Mul(oneMinusK))
	}
	return ema, nil
}

// FibonacciLevels derives the seven retracement prices for the given window
// extremes: level[i] = high - (high-low)*ratio[i]. Level 0 equals the high,
// level 6 equals the low, and values strictly decrease when high > low.
func FibonacciLevels(high, low decimal.Decimal) ([7]decimal.Decimal, error) {
	var levels [7]decimal.Decimal
	if high.LessThan(low) {
		return levels, fmt.Errorf("high %s is below low %s", high.String(), low.String())
	}

	diff := high.Sub(low)
	for i, ratio := range fibRatios {
		levels[i] = high.Sub(diff.Mul(ratio))
	}
	return levels, nil
}

// RSI computes the Relative Strength Index for the given period. It is
// advisory context attached to decision logs and plays no part in signals.
func RSI(prices []decimal.Decimal, period int) (decimal.Decimal, error) {
	if period <= 0 {
		return decimal.Zero, fmt.Errorf("rsi period must be positive, got %d", period)
	}
	if len(prices) < period+1 {
		return decimal.Zero, errors.Wrapf(ErrNotEnoughData, "need %d, got %d", period+1, len(prices))
	}

	rsi := momentum.NewRsiWithPeriod[float64](period)
	inputChan := helper.SliceToChan(decimalsToFloat64(prices))
	values := helper.ChanToSlice(rsi.Compute(inputChan))
	if len(values) == 0 {
		return decimal.Zero, errors.Wrap(ErrNotEnoughData, "rsi produced no values")
	}
	return decimal.NewFromFloat(values[len(values)-1]), nil
}

// decimalsToFloat64 converts a slice of decimal.Decimal to []float64.
func decimalsToFloat64(decimals []decimal.Decimal) []float64 {
	result := make([]float64, len(decimals))
	for i, d := range decimals {
		result[i], _ = d.Float64()
	}
	return result
}
