// Package pricer provides price feed implementations behind a single
// pull-based interface so the decision core can be driven by a simulated
// walk in tests and by live exchange APIs in production.
package pricer

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fibolab/fibbot/internal/domain"
)

// Pricer fetches the current price of a trading pair.
type Pricer interface {
	GetPrice(ctx context.Context, pair domain.Pair) (decimal.Decimal, error)
}
