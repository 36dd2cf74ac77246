// Command fibbot runs the single-asset Fibonacci/EMA trading simulator.
// It trades against an in-memory ledger using a simulated random-walk price
// feed by default; Binance or Bybit public price APIs can be used instead.
//
// Usage:
//
//	fibbot --config config.yaml
//	fibbot setup              (interactive wizard, then start)
//	fibbot                    (CLI flags)
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fibolab/fibbot/config"
	"github.com/fibolab/fibbot/internal"
	"github.com/fibolab/fibbot/internal/setup"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run returns instead of calling logger.Fatal so that deferred cleanup
// (journal WAL handles of already-created bots) executes on a partial
// startup failure.
func run() error {
	configs, err := loadConfigs()
	if err != nil {
		return err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	for _, conf := range configs {
		bot, err := internal.NewTradingBot(conf, logger)
		if err != nil {
			return fmt.Errorf("failed to create trading bot for %s: %w", conf.Pair.String(), err)
		}
		defer bot.Close()

		g.Go(func() error {
			return bot.Run(ctx, logger)
		})
		logger.Info("started", zap.String("pair", conf.Pair.String()), zap.String("platform", conf.Platform))
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(err.Error())
	}
	return nil
}

func loadConfigs() ([]config.Config, error) {
	if len(os.Args) > 1 && os.Args[1] == "setup" {
		path, err := setup.RunTUI()
		if err != nil {
			return nil, err
		}
		return config.Load(path)
	}
	return config.Get()
}
