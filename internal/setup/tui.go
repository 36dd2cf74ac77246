// Package setup provides an interactive terminal wizard that writes a
// starter configuration file.
package setup

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/fibolab/fibbot/config"
)

const generatedConfigFile = "config.gen.yaml"

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

// RunTUI launches the terminal configuration wizard and writes the result to
// config.gen.yaml. It returns the generated file path.
func RunTUI() (string, error) {
	var (
		platform     string
		pair         string
		balanceStr   string
		tradeSizeStr string
		intervalStr  string
		stopLossStr  string
		confirm      bool
	)

	// defaults
	balanceStr = "10000"
	tradeSizeStr = "10"
	intervalStr = "4h"
	stopLossStr = "12"

	fmt.Print("\033[H\033[2J") // Clear screen
	fmt.Println(headerStyle.Render("FIBBOT CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Fibonacci levels, EMA crosses, zero real money.\n"))

	fmt.Println(stepStyle.Render("STEP 1: PRICE FEED"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select price feed").
				Options(
					huh.NewOption("Simulation (random walk)", "simulate"),
					huh.NewOption("Binance", "binance"),
					huh.NewOption("Bybit", "bybit"),
					huh.NewOption("Hyperliquid", "hyperliquid"),
				).
				Value(&platform),
		),
	).Run()
	if err != nil {
		return "", err
	}

	var hlKey string
	if platform == "hyperliquid" {
		err = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Hyperliquid private key (hex)").
					Description("Used to construct the SDK client; no orders are placed").
					EchoMode(huh.EchoModePassword).
					Value(&hlKey).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("key is required for the hyperliquid feed")
						}
						return nil
					}),
			),
		).Run()
		if err != nil {
			return "", err
		}
	}

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("FIBBOT CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 2: ASSET & BALANCE"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Trading Pair").
				Description("Must contain underscore (e.g. BTC_USDT)").
				Value(&pair).
				Validate(func(s string) error {
					_, err := config.PairFromString(s)
					return err
				}),
			huh.NewInput().
				Title("Initial quote balance").
				Value(&balanceStr).
				Validate(validatePositiveDecimal),
			huh.NewInput().
				Title("Trade size % of initial balance").
				Value(&tradeSizeStr).
				Validate(validatePercent),
		),
	).Run()
	if err != nil {
		return "", err
	}

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("FIBBOT CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 3: TIMING & RISK"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Tick Interval").
				Description("Duration string (e.g. 30s, 5m, 4h); also the cooldown").
				Value(&intervalStr).
				Validate(func(s string) error {
					_, err := time.ParseDuration(s)
					return err
				}),
			huh.NewInput().
				Title("Stop Loss %").
				Value(&stopLossStr).
				Validate(validatePercent),
		),
	).Run()
	if err != nil {
		return "", err
	}

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("FIBBOT CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("FINAL CONFIRMATION"))

	summary := fmt.Sprintf(
		"Feed: %s\nPair: %s\nBalance: %s\nTrade size: %s%%\nInterval: %s\nStop loss: %s%%\n",
		platform, strings.ToUpper(pair), balanceStr, tradeSizeStr, intervalStr, stopLossStr,
	)
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save and start").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return "", err
	}
	if !confirm {
		return "", fmt.Errorf("setup cancelled by user")
	}

	interval, _ := time.ParseDuration(intervalStr)
	cfgTmp := config.ConfigTmp{
		Platform:              platform,
		Pair:                  strings.ToUpper(pair),
		InitialBalanceStr:     balanceStr,
		TradeSizePercentStr:   tradeSizeStr,
		PollPriceInterval:     interval,
		Cooldown:              interval,
		StopLossPercentStr:    stopLossStr,
		HyperliquidPrivateKey: hlKey,
	}

	data, err := yaml.Marshal([]config.ConfigTmp{cfgTmp})
	if err != nil {
		return "", fmt.Errorf("failed to generate yaml: %w", err)
	}

	if err := os.WriteFile(generatedConfigFile, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save config file: %w", err)
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(fmt.Sprintf("\n✓ Configuration saved to %s\nStarting bot...", generatedConfigFile)))
	return generatedConfigFile, nil
}

func validatePositiveDecimal(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("must be a valid number")
	}
	if d.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("must be positive")
	}
	return nil
}

func validatePercent(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("must be a valid number")
	}
	if d.LessThan(decimal.NewFromInt(1)) || d.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("must be between 1 and 100")
	}
	return nil
}
