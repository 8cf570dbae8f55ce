package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/huh"

	"github.com/mholmer/giftlog/config"
)

type InitConfigCmd struct{}

func (cmd *InitConfigCmd) Run(ctx *kong.Context, globals *Globals) error {
	cfg, err := loadConfig(ctx.Stderr)
	if err != nil {
		return err
	}
	return runConfigForm(ctx, cfg, "Set up giftlog")
}

type UpdateConfigCmd struct{}

func (cmd *UpdateConfigCmd) Run(ctx *kong.Context, globals *Globals) error {
	cfg, err := loadConfig(ctx.Stderr)
	if err != nil {
		return err
	}
	return runConfigForm(ctx, cfg, "Update giftlog defaults")
}

// runConfigForm walks the user through the saved defaults and writes the
// config file. Without a terminal it refuses instead of hanging.
func runConfigForm(ctx *kong.Context, cfg *config.Config, title string) error {
	if !isTerminal() {
		printError(ctx.Stderr, "config setup needs an interactive terminal")
		return reportedError()
	}

	currencyValue := cfg.Settings.Currency
	baseValue := ""
	if cfg.Settings.BaseValue > 0 {
		baseValue = strconv.FormatFloat(cfg.Settings.BaseValue, 'f', -1, 64)
	}
	variationValue := ""
	if cfg.Settings.Variation > 0 {
		variationValue = strconv.Itoa(cfg.Settings.Variation)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description("Default currency (3-letter code)").
				Placeholder("SEK").
				Value(&currencyValue).
				Validate(validateCurrencyCode),
			huh.NewInput().
				Description("Default base value").
				Placeholder("70").
				Value(&baseValue).
				Validate(validateOptionalNumber),
			huh.NewInput().
				Description("Variation percent").
				Placeholder("20").
				Value(&variationValue).
				Validate(validateOptionalNumber),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("failed to read config input: %w", err)
	}

	cfg.Settings.Currency = strings.ToUpper(strings.TrimSpace(currencyValue))
	if baseValue != "" {
		cfg.Settings.BaseValue, _ = strconv.ParseFloat(baseValue, 64)
	}
	if variationValue != "" {
		cfg.Settings.Variation, _ = strconv.Atoi(variationValue)
	}

	if err := cfg.Save(); err != nil {
		return err
	}
	printSuccess(ctx.Stdout, fmt.Sprintf("config saved to %s", cfg.Home))
	return nil
}

func validateCurrencyCode(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if len(s) != 3 {
		return fmt.Errorf("currency must be a 3-letter code")
	}
	return nil
}

func validateOptionalNumber(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("must be a number")
	}
	return nil
}
