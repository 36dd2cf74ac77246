// Package risk implements the stop-loss safety check that runs ahead of
// signal evaluation on every eligible tick.
package risk

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fibolab/fibbot/internal/domain"
	"github.com/fibolab/fibbot/internal/ledger"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// StopLoss forces an exit when the price moves against the last executed
// trade's reference price by more than Percent.
type StopLoss struct {
	percent decimal.Decimal
}

// NewStopLoss creates a stop-loss check. percent is expressed in percent
// points, e.g. 12 for a 12% adverse move.
func NewStopLoss(percent decimal.Decimal) (StopLoss, error) {
	if percent.LessThanOrEqual(decimal.Zero) || percent.GreaterThanOrEqual(hundred) {
		return StopLoss{}, fmt.Errorf("stop loss percent must be in (0, 100), got %s", percent.String())
	}
	return StopLoss{percent: percent.Div(hundred)}, nil
}

// Check evaluates the ledger's open exposure against the current price.
// It returns the forced trade kind and true when the stop-loss fires.
// At most one branch can fire because the reference prices are mutually
// exclusive. Boundaries are inclusive.
func (s StopLoss) Check(price decimal.Decimal, l *ledger.Ledger) (domain.TradeKind, bool) {
	if l.HasLongExposure() {
		threshold := l.LastBuyPrice.Mul(one.Sub(s.percent))
		if price.LessThanOrEqual(threshold) {
			return domain.TradeStopLossSell, true
		}
		return 0, false
	}

	if l.HasSellExposure() {
		threshold := l.LastSellPrice.Mul(one.Add(s.percent))
		if price.GreaterThanOrEqual(threshold) {
			return domain.TradeStopLossBuy, true
		}
	}
	return 0, false
}
