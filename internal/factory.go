// Package internal wires configuration into running trading bots.
package internal

import (
	"fmt"

	binance "github.com/adshao/go-binance/v2"
	bybit "github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fibolab/fibbot/config"
	"github.com/fibolab/fibbot/internal/clients"
	"github.com/fibolab/fibbot/internal/ledger"
	"github.com/fibolab/fibbot/internal/services/journal"
	"github.com/fibolab/fibbot/internal/services/pricer"
	"github.com/fibolab/fibbot/internal/services/strategy/fib"
)

// newPricer is the single point of truth for dispatching to platform-specific
// price feeds. Binance and Bybit price endpoints are public; the Hyperliquid
// SDK additionally needs a key to construct its client.
func newPricer(conf config.Config) (pricer.Pricer, error) {
	switch conf.Platform {
	case "binance":
		return pricer.NewBinancePricer(binance.NewClient("", "")), nil
	case "bybit":
		return pricer.NewBybitPricer(bybit.NewClient()), nil
	case "hyperliquid":
		client, err := clients.NewHyperliquidClient(conf.HyperliquidPrivateKey, conf.HyperliquidBaseURL)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create hyperliquid client")
		}
		return pricer.NewHyperliquidPricer(client.Info()), nil
	case "simulate":
		return pricer.NewRandomWalkPricer(conf.WalkStartPrice, conf.WalkMaxStepPercent, conf.WalkSeed)
	default:
		return nil, fmt.Errorf("unsupported platform: %s", conf.Platform)
	}
}

// newStrategy assembles the ledger, journal, pricer and decision core.
func newStrategy(conf config.Config, logger *zap.Logger) (TradingStrategy, error) {
	priceFeed, err := newPricer(conf)
	if err != nil {
		return nil, err
	}

	led, err := ledger.New(conf.Pair, conf.InitialBalance, conf.TradeSizePercent)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create ledger")
	}

	tradeJournal, err := journal.New(conf.JournalDir, conf.Pair)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create trade journal")
	}

	strategyLogger := logger.With(zap.String("pair", conf.Pair.String()))
	strategy, err := fib.NewFibStrategy(strategyLogger, fib.Config{
		Pair:                  conf.Pair,
		Cooldown:              conf.Cooldown,
		StopLossPercent:       conf.StopLossPercent,
		LevelTolerancePercent: conf.LevelTolerancePercent,
	}, led, priceFeed, tradeJournal)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fib strategy")
	}

	return strategy, nil
}
