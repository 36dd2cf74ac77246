//go:build integration

package pricer

import (
	"context"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fibolab/fibbot/config"
	"github.com/fibolab/fibbot/internal/clients"
	"github.com/fibolab/fibbot/internal/domain"
)

// TestHyperliquidPricer_GetPrice_Integration calls the real Hyperliquid API.
// To run: go test -tags=integration -v ./...
// The SDK client needs a key even though mid-price data is public.
func TestHyperliquidPricer_GetPrice_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	keyHex := os.Getenv("HYPERLIQUID_PRIVATE_KEY")
	if keyHex == "" {
		t.Fatal("HYPERLIQUID_PRIVATE_KEY environment variable must be set for integration tests")
	}

	client, err := clients.NewHyperliquidClient(keyHex, config.DefaultHyperliquidAPIURL)
	require.NoError(t, err)

	pricer := NewHyperliquidPricer(client.Info())
	ctx := context.Background()

	t.Run("returns mid price for BTC", func(t *testing.T) {
		pair := domain.Pair{From: "BTC", To: "USDT"}

		price, err := pricer.GetPrice(ctx, pair)
		require.NoError(t, err)
		require.True(t, price.GreaterThan(decimal.Zero), "Expected price > 0 for %s, got %s", pair.String(), price.String())
		t.Logf("Current %s mid price: %s", pair.String(), price.String())
	})

	t.Run("returns error for unknown coin", func(t *testing.T) {
		pair := domain.Pair{From: "NOSUCHCOIN", To: "USDT"}

		price, err := pricer.GetPrice(ctx, pair)
		assert.Error(t, err, "Expected error for unknown coin")
		t.Logf("Error for unknown coin: %v", err)
		assert.True(t, price.IsZero(), "Expected zero price for unknown coin, got %s", price.String())
	})
}
