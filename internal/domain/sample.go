package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceSample is a single timestamped price observation. Immutable once created.
type PriceSample struct {
	// Time wall-clock time the price was observed.
	Time time.Time
	// Price observed market price, strictly positive.
	Price decimal.Decimal
}
