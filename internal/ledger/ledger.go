// Package ledger holds the two simulated balances and last-trade bookkeeping.
// It is the execution venue of the bot: trades mutate it and nothing else.
package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fibolab/fibbot/internal/domain"
)

var (
	// defaultFeeRate is charged on the acquired side of every trade.
	defaultFeeRate = decimal.NewFromFloat(0.001)
	// defaultTradeSizePercent of the initial quote balance is spent per trade.
	defaultTradeSizePercent = decimal.NewFromInt(10)

	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// Ledger tracks the quote and asset balances of a single simulated account.
//
// LastBuyPrice and LastSellPrice are mutually exclusive: setting one clears
// the other. They represent the most recent open exposure direction, not a
// strict inventory model. A zero value means "unset"; prices are strictly
// positive so the zero value is unambiguous.
type Ledger struct {
	Pair          domain.Pair
	QuoteBalance  decimal.Decimal
	AssetBalance  decimal.Decimal
	LastBuyPrice  decimal.Decimal
	LastSellPrice decimal.Decimal
	LastTradeTime time.Time

	// TradeSize is denominated in quote units and fixed at creation.
	// Note: the sell-side balance check compares it against AssetBalance,
	// which is in asset units. That asymmetry is intentional and lives only
	// in sell() below.
	TradeSize decimal.Decimal

	feeRate decimal.Decimal
}

// New creates a ledger funded with the given quote balance. The per-trade
// size is fixed to tradeSizePercent of that initial balance.
func New(pair domain.Pair, initialQuote decimal.Decimal, tradeSizePercent decimal.Decimal) (*Ledger, error) {
	if initialQuote.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("initial quote balance must be positive, got %s", initialQuote.String())
	}
	if tradeSizePercent.LessThanOrEqual(decimal.Zero) || tradeSizePercent.GreaterThan(hundred) {
		tradeSizePercent = defaultTradeSizePercent
	}

	return &Ledger{
		Pair:         pair,
		QuoteBalance: initialQuote,
		AssetBalance: decimal.Zero,
		TradeSize:    initialQuote.Mul(tradeSizePercent).Div(hundred),
		feeRate:      defaultFeeRate,
	}, nil
}

// ExecuteTrade applies a trade of the fixed size at the given price.
//
// When the relevant balance is insufficient the trade degrades to a no-op and
// nil is returned, but LastTradeTime is still advanced: a refused trade
// resets the cooldown just like an executed one.
func (l *Ledger) ExecuteTrade(kind domain.TradeKind, price decimal.Decimal, now time.Time) *domain.TradeEvent {
	l.LastTradeTime = now

	if kind.IsBuy() {
		return l.buy(kind, price, now)
	}
	return l.sell(kind, price, now)
}

func (l *Ledger) buy(kind domain.TradeKind, price decimal.Decimal, now time.Time) *domain.TradeEvent {
	if l.QuoteBalance.LessThan(l.TradeSize) {
		return nil
	}

	acquired := l.TradeSize.Div(price).Mul(one.Sub(l.feeRate))
	l.QuoteBalance = l.QuoteBalance.Sub(l.TradeSize)
	l.AssetBalance = l.AssetBalance.Add(acquired)
	l.LastBuyPrice = price
	l.LastSellPrice = decimal.Zero

	return &domain.TradeEvent{
		Kind:        kind,
		Pair:        l.Pair,
		Price:       price,
		QuoteAmount: l.TradeSize,
		BaseAmount:  acquired,
		Time:        now,
	}
}

func (l *Ledger) sell(kind domain.TradeKind, price decimal.Decimal, now time.Time) *domain.TradeEvent {
	// TradeSize is quote-denominated but compared against the asset balance.
	if l.AssetBalance.LessThan(l.TradeSize) {
		return nil
	}

	received := l.TradeSize.Mul(price).Mul(one.Sub(l.feeRate))
	l.AssetBalance = l.AssetBalance.Sub(l.TradeSize)
	l.QuoteBalance = l.QuoteBalance.Add(received)
	l.LastSellPrice = price
	l.LastBuyPrice = decimal.Zero

	return &domain.TradeEvent{
		Kind:        kind,
		Pair:        l.Pair,
		Price:       price,
		QuoteAmount: received,
		BaseAmount:  l.TradeSize,
		Time:        now,
	}
}

// HasLongExposure reports whether the most recent trade direction was a buy.
func (l *Ledger) HasLongExposure() bool {
	return !l.LastBuyPrice.IsZero()
}

// HasSellExposure reports whether the most recent trade direction was a sell.
func (l *Ledger) HasSellExposure() bool {
	return !l.LastSellPrice.IsZero()
}
