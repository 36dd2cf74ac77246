package internal

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fibolab/fibbot/config"
	"github.com/fibolab/fibbot/internal/domain"
)

// TradingStrategy is the decision core driven by the bot loop.
type TradingStrategy interface {
	Initialize(ctx context.Context) error
	Trade(ctx context.Context) ([]domain.TradeEvent, error)
	Close() error
}

// TradingBot represents a single trading instance.
type TradingBot struct {
	Config   config.Config
	strategy TradingStrategy
}

// NewTradingBot creates a new trading bot instance for the given config.
func NewTradingBot(conf config.Config, logger *zap.Logger) (*TradingBot, error) {
	strategy, err := newStrategy(conf, logger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create trading strategy")
	}

	return &TradingBot{
		Config:   conf,
		strategy: strategy,
	}, nil
}

// Close closes the trading bot.
func (b *TradingBot) Close() error {
	return b.strategy.Close()
}

// Run executes the trading bot until the context is cancelled.
func (b *TradingBot) Run(ctx context.Context, logger *zap.Logger) error {
	if err := b.strategy.Initialize(ctx); err != nil {
		return errors.Wrap(err, "failed to initialize trading strategy")
	}

	ticker := time.NewTicker(b.Config.PollPriceInterval)
	defer ticker.Stop()

	logger.Info("starting trading loop",
		zap.String("pair", b.Config.Pair.String()),
		zap.Duration("poll_interval", b.Config.PollPriceInterval))

	for {
		select {
		case <-ctx.Done():
			logger.Info("context done, stopping trading bot run loop", zap.String("pair", b.Config.Pair.String()))
			return ctx.Err()
		case <-ticker.C:
			logger.Debug("trade service tick", zap.String("pair", b.Config.Pair.String()))
			events, err := b.strategy.Trade(ctx)
			if err != nil {
				logger.Error("trading strategy failed", zap.String("pair", b.Config.Pair.String()), zap.Error(err))
				continue
			}

			for _, event := range events {
				logger.Info("trade event occurred", zap.String("pair", b.Config.Pair.String()), zap.Stringer("event", &event))
			}
		}
	}
}
