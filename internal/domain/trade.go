package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TradeKind represents the type of executed trade.
type TradeKind int

const (
	TradeBuy TradeKind = iota
	TradeSell
	TradeStopLossBuy
	TradeStopLossSell
)

// trade kind string constants to avoid magic strings
const (
	tradeKindStringBuy          = "buy"
	tradeKindStringSell         = "sell"
	tradeKindStringStopLossBuy  = "stop_loss_buy"
	tradeKindStringStopLossSell = "stop_loss_sell"
)

// String returns the string representation of the trade kind.
func (k TradeKind) String() string {
	switch k {
	case TradeBuy:
		return tradeKindStringBuy
	case TradeSell:
		return tradeKindStringSell
	case TradeStopLossBuy:
		return tradeKindStringStopLossBuy
	case TradeStopLossSell:
		return tradeKindStringStopLossSell
	default:
		return "unknown"
	}
}

// IsBuy reports whether the kind converts quote balance into asset balance.
func (k TradeKind) IsBuy() bool {
	return k == TradeBuy || k == TradeStopLossBuy
}

// IsStopLoss reports whether the trade was forced by the stop-loss check.
func (k TradeKind) IsStopLoss() bool {
	return k == TradeStopLossBuy || k == TradeStopLossSell
}

// TradeEvent describes a single executed trade.
type TradeEvent struct {
	// Kind of the trade.
	Kind TradeKind
	// Pair trading pair.
	Pair Pair
	// Price at which the trade was executed.
	Price decimal.Decimal
	// QuoteAmount quote currency moved by the trade.
	QuoteAmount decimal.Decimal
	// BaseAmount base currency moved by the trade (net of fee on buys).
	BaseAmount decimal.Decimal
	// Time wall-clock time of execution.
	Time time.Time
}

// String returns a human-readable string representation.
func (t *TradeEvent) String() string {
	return fmt.Sprintf("%s %s price: %s quote: %s base: %s",
		t.Pair.String(), t.Kind.String(), t.Price.String(), t.QuoteAmount.String(), t.BaseAmount.String())
}
