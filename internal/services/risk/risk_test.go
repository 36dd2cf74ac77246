package risk

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fibolab/fibbot/internal/domain"
	"github.com/fibolab/fibbot/internal/ledger"
)

var testPair = domain.Pair{From: "BTC", To: "USDT"}

func newLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	l, err := ledger.New(testPair, decimal.NewFromInt(10000), decimal.NewFromInt(10))
	require.NoError(t, err)
	return l
}

func TestNewStopLossValidation(t *testing.T) {
	for _, percent := range []int64{0, -1, 100, 150} {
		_, err := NewStopLoss(decimal.NewFromInt(percent))
		require.Error(t, err, "percent %d", percent)
	}

	_, err := NewStopLoss(decimal.NewFromInt(12))
	require.NoError(t, err)
}

func TestCheckNoExposure(t *testing.T) {
	stopLoss, err := NewStopLoss(decimal.NewFromInt(12))
	require.NoError(t, err)

	_, fired := stopLoss.Check(decimal.NewFromInt(1), newLedger(t))
	assert.False(t, fired)
}

func TestCheckLongExposure(t *testing.T) {
	stopLoss, err := NewStopLoss(decimal.NewFromInt(12))
	require.NoError(t, err)

	l := newLedger(t)
	l.LastBuyPrice = decimal.NewFromInt(100)

	tests := []struct {
		name  string
		price string
		fired bool
	}{
		{"well below threshold", "50", true},
		{"exact threshold is inclusive", "88", true},
		{"just above threshold", "88.000001", false},
		{"at entry price", "100", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, fired := stopLoss.Check(decimal.RequireFromString(tt.price), l)
			assert.Equal(t, tt.fired, fired)
			if tt.fired {
				assert.Equal(t, domain.TradeStopLossSell, kind)
			}
		})
	}
}

func TestCheckSellExposure(t *testing.T) {
	stopLoss, err := NewStopLoss(decimal.NewFromInt(12))
	require.NoError(t, err)

	l := newLedger(t)
	l.LastSellPrice = decimal.NewFromInt(100)

	tests := []struct {
		name  string
		price string
		fired bool
	}{
		{"well above threshold", "150", true},
		{"exact threshold is inclusive", "112", true},
		{"just below threshold", "111.999999", false},
		{"at exit price", "100", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, fired := stopLoss.Check(decimal.RequireFromString(tt.price), l)
			assert.Equal(t, tt.fired, fired)
			if tt.fired {
				assert.Equal(t, domain.TradeStopLossBuy, kind)
			}
		})
	}
}
