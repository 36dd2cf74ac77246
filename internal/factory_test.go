package internal

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fibolab/fibbot/config"
	"github.com/fibolab/fibbot/internal/domain"
)

func simulateConfig(t *testing.T) config.Config {
	t.Helper()

	return config.Config{
		Platform:           "simulate",
		Pair:               domain.Pair{From: "BTC", To: "USDT"},
		InitialBalance:     decimal.NewFromInt(10000),
		TradeSizePercent:   decimal.NewFromInt(10),
		JournalDir:         t.TempDir(),
		WalkStartPrice:     decimal.NewFromInt(100),
		WalkMaxStepPercent: config.DefaultWalkMaxStep,
		WalkSeed:           config.DefaultWalkSeed,
	}
}

func TestNewPricerDispatch(t *testing.T) {
	conf := simulateConfig(t)

	p, err := newPricer(conf)
	require.NoError(t, err)
	require.NotNil(t, p)

	conf.Platform = "binance"
	p, err = newPricer(conf)
	require.NoError(t, err)
	require.NotNil(t, p)

	conf.Platform = "bybit"
	p, err = newPricer(conf)
	require.NoError(t, err)
	require.NotNil(t, p)

	conf.Platform = "hyperliquid"
	conf.HyperliquidPrivateKey = strings.Repeat("01", 32)
	conf.HyperliquidBaseURL = config.DefaultHyperliquidAPIURL
	p, err = newPricer(conf)
	require.NoError(t, err)
	require.NotNil(t, p)

	conf.Platform = "kraken"
	_, err = newPricer(conf)
	require.Error(t, err)
}

func TestNewPricerHyperliquidRequiresKey(t *testing.T) {
	conf := simulateConfig(t)
	conf.Platform = "hyperliquid"
	conf.HyperliquidBaseURL = config.DefaultHyperliquidAPIURL

	_, err := newPricer(conf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "private key")
}

// NewTradingBot must return construction failures as errors so the caller can
// release bots that were already created.
func TestNewTradingBotErrorPropagation(t *testing.T) {
	conf := simulateConfig(t)
	conf.Platform = "unsupported"

	_, err := NewTradingBot(conf, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")

	conf = simulateConfig(t)
	bot, err := NewTradingBot(conf, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, bot.Close())
}
