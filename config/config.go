// Package config loads bot configuration from a YAML file or CLI flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/fibolab/fibbot/internal/domain"
)

// Defaults of the reference cadence and risk controls.
const (
	DefaultPollPriceInterval = 4 * time.Hour
	DefaultCooldown          = 4 * time.Hour
	DefaultJournalDir        = "./wal"
	DefaultWalkSeed          = 1
	DefaultWalkMaxStep       = 2.0
	DefaultHyperliquidAPIURL = "https://api.hyperliquid.xyz"
)

// Config is the runtime configuration of a single bot.
type Config struct {
	Platform              string
	Pair                  domain.Pair
	InitialBalance        decimal.Decimal
	TradeSizePercent      decimal.Decimal
	PollPriceInterval     time.Duration
	Cooldown              time.Duration
	StopLossPercent       decimal.Decimal
	LevelTolerancePercent decimal.Decimal
	JournalDir            string

	// Hyperliquid SDK parameters, used when Platform is "hyperliquid".
	// The key is only used to construct the SDK client; no orders are placed.
	HyperliquidPrivateKey string
	HyperliquidBaseURL    string

	// Random walk simulator parameters, used when Platform is "simulate".
	WalkStartPrice     decimal.Decimal
	WalkMaxStepPercent float64
	WalkSeed           int64
}

// ConfigTmp mirrors Config with YAML-friendly field types.
type ConfigTmp struct {
	Platform                 string        `yaml:"platform"`
	Pair                     string        `yaml:"pair"`
	InitialBalanceStr        string        `yaml:"initial_balance"`
	TradeSizePercentStr      string        `yaml:"trade_size_percent,omitempty"`
	PollPriceInterval        time.Duration `yaml:"poll_price_interval,omitempty"`
	Cooldown                 time.Duration `yaml:"cooldown,omitempty"`
	StopLossPercentStr       string        `yaml:"stop_loss_percent,omitempty"`
	LevelTolerancePercentStr string        `yaml:"level_tolerance_percent,omitempty"`
	JournalDir               string        `yaml:"journal_dir,omitempty"`
	HyperliquidPrivateKey    string        `yaml:"hyperliquid_private_key,omitempty"`
	HyperliquidBaseURL       string        `yaml:"hyperliquid_base_url,omitempty"`
	WalkStartPriceStr        string        `yaml:"walk_start_price,omitempty"`
	WalkMaxStepPercent       float64       `yaml:"walk_max_step_percent,omitempty"`
	WalkSeed                 int64         `yaml:"walk_seed,omitempty"`
}

// Get loads configuration: --config points to a YAML file with one entry per
// bot, otherwise single-bot CLI flags are used.
func Get() ([]Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	pairFlag := flag.String("pair", "BTC_USDT", "trade pair, example: BTC_USDT")
	platformFlag := flag.String("platform", "simulate", "price feed platform: simulate, binance, bybit or hyperliquid")
	balanceFlag := flag.String("balance", "10000", "initial quote balance")
	tradeSizeFlag := flag.String("tradesize", "10", "percent of initial balance spent per trade")
	pollFlag := flag.Duration("pollpriceinterval", DefaultPollPriceInterval, "poll market price interval")
	cooldownFlag := flag.Duration("cooldown", DefaultCooldown, "minimum time between trade attempts")
	stopLossFlag := flag.String("stoploss", "12", "stop loss percent")
	toleranceFlag := flag.String("leveltolerance", "1", "fibonacci level tolerance percent")
	seedFlag := flag.Int64("seed", DefaultWalkSeed, "random walk seed (simulate platform)")
	hlKeyFlag := flag.String("hyperliquidkey", "", "hyperliquid private key hex (hyperliquid platform)")
	flag.Parse()

	if *configPath != "" {
		return Load(*configPath)
	}

	pair, err := PairFromString(*pairFlag)
	if err != nil {
		return nil, err
	}

	conf := Config{
		Platform:              *platformFlag,
		Pair:                  pair,
		PollPriceInterval:     *pollFlag,
		Cooldown:              *cooldownFlag,
		JournalDir:            DefaultJournalDir,
		HyperliquidPrivateKey: *hlKeyFlag,
		HyperliquidBaseURL:    DefaultHyperliquidAPIURL,
		WalkMaxStepPercent:    DefaultWalkMaxStep,
		WalkSeed:              *seedFlag,
	}

	if conf.InitialBalance, err = decimal.NewFromString(*balanceFlag); err != nil {
		return nil, fmt.Errorf("invalid --balance provided: %w", err)
	}
	if conf.TradeSizePercent, err = decimal.NewFromString(*tradeSizeFlag); err != nil {
		return nil, fmt.Errorf("invalid --tradesize provided: %w", err)
	}
	if conf.StopLossPercent, err = decimal.NewFromString(*stopLossFlag); err != nil {
		return nil, fmt.Errorf("invalid --stoploss provided: %w", err)
	}
	if conf.LevelTolerancePercent, err = decimal.NewFromString(*toleranceFlag); err != nil {
		return nil, fmt.Errorf("invalid --leveltolerance provided: %w", err)
	}
	conf.WalkStartPrice = conf.InitialBalance.Div(decimal.NewFromInt(100))

	return []Config{conf}, nil
}

// Load reads a YAML config file with one entry per bot.
func Load(path string) ([]Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var tmps []ConfigTmp
	if err := yaml.Unmarshal(data, &tmps); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if len(tmps) == 0 {
		return nil, fmt.Errorf("config file %s contains no bot entries", path)
	}

	configs := make([]Config, 0, len(tmps))
	for i, tmp := range tmps {
		conf, err := tmp.toConfig()
		if err != nil {
			return nil, fmt.Errorf("config entry %d: %w", i, err)
		}
		configs = append(configs, conf)
	}
	return configs, nil
}

func (t ConfigTmp) toConfig() (Config, error) {
	pair, err := PairFromString(t.Pair)
	if err != nil {
		return Config{}, err
	}

	conf := Config{
		Platform:              t.Platform,
		Pair:                  pair,
		PollPriceInterval:     t.PollPriceInterval,
		Cooldown:              t.Cooldown,
		JournalDir:            t.JournalDir,
		HyperliquidPrivateKey: t.HyperliquidPrivateKey,
		HyperliquidBaseURL:    t.HyperliquidBaseURL,
		WalkMaxStepPercent:    t.WalkMaxStepPercent,
		WalkSeed:              t.WalkSeed,
	}

	if conf.Platform == "" {
		conf.Platform = "simulate"
	}
	if conf.PollPriceInterval == 0 {
		conf.PollPriceInterval = DefaultPollPriceInterval
	}
	if conf.Cooldown == 0 {
		conf.Cooldown = DefaultCooldown
	}
	if conf.JournalDir == "" {
		conf.JournalDir = DefaultJournalDir
	}
	if conf.WalkMaxStepPercent == 0 {
		conf.WalkMaxStepPercent = DefaultWalkMaxStep
	}
	if conf.WalkSeed == 0 {
		conf.WalkSeed = DefaultWalkSeed
	}
	if conf.HyperliquidBaseURL == "" {
		conf.HyperliquidBaseURL = DefaultHyperliquidAPIURL
	}

	if conf.InitialBalance, err = parseDecimal(t.InitialBalanceStr, "10000"); err != nil {
		return Config{}, fmt.Errorf("invalid initial_balance: %w", err)
	}
	if conf.TradeSizePercent, err = parseDecimal(t.TradeSizePercentStr, "10"); err != nil {
		return Config{}, fmt.Errorf("invalid trade_size_percent: %w", err)
	}
	if conf.StopLossPercent, err = parseDecimal(t.StopLossPercentStr, "12"); err != nil {
		return Config{}, fmt.Errorf("invalid stop_loss_percent: %w", err)
	}
	if conf.LevelTolerancePercent, err = parseDecimal(t.LevelTolerancePercentStr, "1"); err != nil {
		return Config{}, fmt.Errorf("invalid level_tolerance_percent: %w", err)
	}
	if conf.WalkStartPrice, err = parseDecimal(t.WalkStartPriceStr, "100"); err != nil {
		return Config{}, fmt.Errorf("invalid walk_start_price: %w", err)
	}

	return conf, nil
}

func parseDecimal(value, fallback string) (decimal.Decimal, error) {
	if value == "" {
		value = fallback
	}
	return decimal.NewFromString(value)
}

// PairFromString parses a BASE_QUOTE pair string, e.g. "BTC_USDT".
func PairFromString(s string) (domain.Pair, error) {
	parts := strings.Split(s, "_")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return domain.Pair{}, fmt.Errorf("invalid pair format %q, expected BASE_QUOTE (e.g. BTC_USDT)", s)
	}
	return domain.Pair{From: parts[0], To: parts[1]}, nil
}
