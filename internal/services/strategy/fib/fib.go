// Package fib implements the Fibonacci retracement / EMA cross trading
// strategy: a per-tick state machine over a rolling 21-sample price window,
// gated by a cooldown and a stop-loss safety check.
package fib

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fibolab/fibbot/internal/domain"
	"github.com/fibolab/fibbot/internal/history"
	"github.com/fibolab/fibbot/internal/ledger"
	"github.com/fibolab/fibbot/internal/services/risk"
	"github.com/fibolab/fibbot/pkg/indicators"
)

const (
	defaultFastPeriod = 12
	defaultSlowPeriod = 21
	defaultCooldown   = 4 * time.Hour

	// advisoryRSIPeriod is only attached to decision logs.
	advisoryRSIPeriod = 14
)

var (
	defaultStopLossPercent  = decimal.NewFromInt(12)
	defaultTolerancePercent = decimal.NewFromInt(1)

	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

type pricer interface {
	GetPrice(ctx context.Context, pair domain.Pair) (decimal.Decimal, error)
}

type eventJournal interface {
	Record(event domain.TradeEvent) error
	Close() error
}

// Config holds the tunable parameters of the strategy. Zero values fall back
// to the reference defaults (EMA 12/21, 4h cooldown, 12% stop loss, ±1% level
// tolerance).
type Config struct {
	Pair                  domain.Pair
	FastPeriod            int
	SlowPeriod            int
	Cooldown              time.Duration
	StopLossPercent       decimal.Decimal
	LevelTolerancePercent decimal.Decimal
}

func (c *Config) applyDefaults() {
	if c.FastPeriod == 0 {
		c.FastPeriod = defaultFastPeriod
	}
	if c.SlowPeriod == 0 {
		c.SlowPeriod = defaultSlowPeriod
	}
	if c.Cooldown == 0 {
		c.Cooldown = defaultCooldown
	}
	if c.StopLossPercent.IsZero() {
		c.StopLossPercent = defaultStopLossPercent
	}
	if c.LevelTolerancePercent.IsZero() {
		c.LevelTolerancePercent = defaultTolerancePercent
	}
}

// FibStrategy executes the Fibonacci/EMA decision flow each tick.
type FibStrategy struct {
	pair       domain.Pair
	fastPeriod int
	slowPeriod int
	cooldown   time.Duration
	tolerance  decimal.Decimal // fraction, e.g. 0.01

	hist     *history.PriceHistory
	ledger   *ledger.Ledger
	stopLoss risk.StopLoss

	pricer  pricer
	journal eventJournal
	l       *zap.Logger
}

// NewFibStrategy returns a configured strategy. The ledger is the execution
// venue and the single holder of balance state; journal may be nil when no
// audit log is wanted.
func NewFibStrategy(l *zap.Logger, conf Config, led *ledger.Ledger, pricer pricer, journal eventJournal) (*FibStrategy, error) {
	if led == nil {
		return nil, errors.New("ledger is required")
	}
	conf.applyDefaults()

	if conf.FastPeriod <= 0 || conf.SlowPeriod <= 0 {
		return nil, fmt.Errorf("EMA periods must be positive, got fast=%d slow=%d", conf.FastPeriod, conf.SlowPeriod)
	}
	if conf.FastPeriod >= conf.SlowPeriod {
		return nil, fmt.Errorf("fast period %d must be below slow period %d", conf.FastPeriod, conf.SlowPeriod)
	}

	stopLoss, err := risk.NewStopLoss(conf.StopLossPercent)
	if err != nil {
		return nil, errors.Wrap(err, "invalid stop loss")
	}

	if conf.LevelTolerancePercent.LessThanOrEqual(decimal.Zero) || conf.LevelTolerancePercent.GreaterThanOrEqual(hundred) {
		return nil, fmt.Errorf("level tolerance percent must be in (0, 100), got %s", conf.LevelTolerancePercent.String())
	}

	if l == nil {
		l = zap.NewNop()
	}

	return &FibStrategy{
		pair:       conf.Pair,
		fastPeriod: conf.FastPeriod,
		slowPeriod: conf.SlowPeriod,
		cooldown:   conf.Cooldown,
		tolerance:  conf.LevelTolerancePercent.Div(hundred),
		hist:       history.New(conf.SlowPeriod),
		ledger:     led,
		stopLoss:   stopLoss,
		pricer:     pricer,
		journal:    journal,
		l:          l,
	}, nil
}

// Ledger exposes the balance state for observation by the driver.
func (s *FibStrategy) Ledger() *ledger.Ledger {
	return s.ledger
}

// Initialize logs the starting state. Unlike live-exchange strategies there
// is nothing to reconcile: all state is in memory.
func (s *FibStrategy) Initialize(ctx context.Context) error {
	s.l.Info("starting bot",
		zap.String("pair", s.pair.String()),
		zap.String("quote_balance", s.ledger.QuoteBalance.String()),
		zap.String("asset_balance", s.ledger.AssetBalance.String()),
		zap.String("trade_size", s.ledger.TradeSize.String()),
		zap.Duration("cooldown", s.cooldown))
	return nil
}

// Trade performs one evaluation against the injected pricer and wall clock,
// journaling every executed trade.
func (s *FibStrategy) Trade(ctx context.Context) ([]domain.TradeEvent, error) {
	price, err := s.pricer.GetPrice(ctx, s.pair)
	if err != nil {
		return nil, errors.Wrapf(err, "pricer failed for pair %s", s.pair.String())
	}

	events, err := s.Tick(price, time.Now())
	if err != nil {
		return nil, err
	}

	for _, event := range events {
		if s.journal == nil {
			continue
		}
		if err := s.journal.Record(event); err != nil {
			s.l.Error("failed to journal trade event", zap.Error(err), zap.Stringer("event", &event))
		}
	}
	return events, nil
}

// Tick runs the per-tick decision flow for one price sample:
//
//  1. push the sample into the rolling window (always);
//  2. halt while warming up (window not full / EMAs not computable);
//  3. halt while the cooldown since the last trade attempt is active
//     (the stop-loss is blocked by the cooldown as well);
//  4. derive Fibonacci levels from the window extremes;
//  5. run the stop-loss check, which may force an exit or re-entry;
//  6. detect EMA crosses against the previous window (window minus the
//     newest sample, same seeding rule);
//  7. entry: price within tolerance of the buy retracement level and
//     fast momentum up;
//  8. exit: price within tolerance of the sell retracement level and
//     fast momentum down.
//
// Steps 7 and 8 are evaluated independently; together with step 5 a single
// tick can produce more than one event.
func (s *FibStrategy) Tick(price decimal.Decimal, now time.Time) ([]domain.TradeEvent, error) {
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("price must be positive, got %s", price.String())
	}

	s.hist.Push(domain.PriceSample{Time: now, Price: price})
	if !s.hist.Full() {
		return nil, nil
	}

	prices := s.hist.Prices()

	fast, err := indicators.EMA(prices, s.fastPeriod)
	if errors.Is(err, indicators.ErrNotEnoughData) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	slow, err := indicators.EMA(prices, s.slowPeriod)
	if errors.Is(err, indicators.ErrNotEnoughData) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	if now.Sub(s.ledger.LastTradeTime) < s.cooldown {
		s.l.Debug("cooldown active, skipping tick",
			zap.Time("last_trade", s.ledger.LastTradeTime),
			zap.Duration("cooldown", s.cooldown))
		return nil, nil
	}

	high, low, err := s.hist.HighLow()
	if err != nil {
		return nil, err
	}
	levels, err := indicators.FibonacciLevels(high, low)
	if err != nil {
		return nil, err
	}

	var events []domain.TradeEvent

	if kind, fired := s.stopLoss.Check(price, s.ledger); fired {
		if event := s.ledger.ExecuteTrade(kind, price, now); event != nil {
			s.logDecision("stop loss triggered", *event, prices, fast, slow)
			events = append(events, *event)
		} else {
			s.l.Warn("stop loss fired but trade was refused by balance check",
				zap.Stringer("kind", kind),
				zap.String("price", price.String()))
		}
	}

	crossUp, crossDown := s.detectCross(prices, fast, slow)

	if s.withinBand(price, levels[indicators.FibBuyLevelIndex]) && (crossUp || fast.GreaterThan(slow)) {
		if event := s.ledger.ExecuteTrade(domain.TradeBuy, price, now); event != nil {
			s.logDecision("entry signal", *event, prices, fast, slow)
			events = append(events, *event)
		}
	}

	if s.withinBand(price, levels[indicators.FibSellLevelIndex]) && (crossDown || fast.LessThan(slow)) {
		if event := s.ledger.ExecuteTrade(domain.TradeSell, price, now); event != nil {
			s.logDecision("exit signal", *event, prices, fast, slow)
			events = append(events, *event)
		}
	}

	return events, nil
}

// detectCross compares the current EMAs with those of the window excluding
// the newest sample. Both windows use the same seeding rule, otherwise the
// comparison would be meaningless. When the previous window is too short for
// a period the cross is simply not detectable this tick.
func (s *FibStrategy) detectCross(prices []decimal.Decimal, fast, slow decimal.Decimal) (crossUp, crossDown bool) {
	prev := prices[:len(prices)-1]

	prevFast, err := indicators.EMA(prev, s.fastPeriod)
	if err != nil {
		return false, false
	}
	prevSlow, err := indicators.EMA(prev, s.slowPeriod)
	if err != nil {
		return false, false
	}

	crossUp = prevFast.LessThanOrEqual(prevSlow) && fast.GreaterThan(slow)
	crossDown = prevFast.GreaterThanOrEqual(prevSlow) && fast.LessThan(slow)
	return crossUp, crossDown
}

// withinBand reports whether the price is within the configured tolerance of
// the level, band boundaries inclusive.
func (s *FibStrategy) withinBand(price, level decimal.Decimal) bool {
	if level.IsZero() {
		return false
	}
	lower := level.Mul(one.Sub(s.tolerance))
	upper := level.Mul(one.Add(s.tolerance))
	return price.GreaterThanOrEqual(lower) && price.LessThanOrEqual(upper)
}

func (s *FibStrategy) logDecision(msg string, event domain.TradeEvent, prices []decimal.Decimal, fast, slow decimal.Decimal) {
	fields := []zap.Field{
		zap.String("pair", s.pair.String()),
		zap.Stringer("kind", event.Kind),
		zap.String("price", event.Price.String()),
		zap.String("quote_amount", event.QuoteAmount.String()),
		zap.String("base_amount", event.BaseAmount.String()),
		zap.String("ema_fast", fast.String()),
		zap.String("ema_slow", slow.String()),
		zap.String("quote_balance", s.ledger.QuoteBalance.String()),
		zap.String("asset_balance", s.ledger.AssetBalance.String()),
	}

	if rsi, err := indicators.RSI(prices, advisoryRSIPeriod); err == nil {
		fields = append(fields, zap.String("rsi", rsi.StringFixed(2)))
	}

	s.l.Info(msg, fields...)
}

// Close releases the journal, if any.
func (s *FibStrategy) Close() error {
	if s.journal == nil {
		return nil
	}
	return s.journal.Close()
}
