package cli

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"kucli/config"
)

var wizardHeader = lipgloss.NewStyle().
	Foreground(lipgloss.Color("205")).
	Background(lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}).
	Padding(1, 2).
	Bold(true).
	MarginBottom(1)

type initAnswers struct {
	BaseURL           string `yaml:"base_url"`
	ValuationCurrency string `yaml:"valuation_currency"`
	BalancesDust      string `yaml:"balances_dust"`
	ValueDust         string `yaml:"value_dust"`
	WebhookURL        string `yaml:"webhook_url,omitempty"`
	HTTPTimeout       string `yaml:"http_timeout"`
}

// Init runs the interactive wizard and writes a config file. API
// credentials deliberately stay out of the file; they are read from the
// environment at run time.
func (a *App) Init(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	output := fs.String("output", config.DefaultFile, "where to write the config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	answers := initAnswers{
		BaseURL:           "https://api.kucoin.com",
		ValuationCurrency: "USD",
		BalancesDust:      "0.0005",
		ValueDust:         "0.01",
		HTTPTimeout:       "15s",
	}
	confirmed := false

	fmt.Fprintln(a.out, wizardHeader.Render("KUCLI SETUP"))

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Exchange endpoint").
				Options(
					huh.NewOption("Production (api.kucoin.com)", "https://api.kucoin.com"),
					huh.NewOption("Sandbox (openapi-sandbox.kucoin.com)", "https://openapi-sandbox.kucoin.com"),
				).
				Value(&answers.BaseURL),
			huh.NewInput().
				Title("Valuation currency").
				Description("Fiat currency for the value report (e.g. USD, EUR)").
				Value(&answers.ValuationCurrency).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("currency cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Balances dust threshold").
				Description("Holdings at or below this are hidden from balances").
				Value(&answers.BalancesDust).
				Validate(validateDecimal),
			huh.NewInput().
				Title("Value dust threshold").
				Description("Holdings at or below this are hidden from the value report").
				Value(&answers.ValueDust).
				Validate(validateDecimal),
			huh.NewInput().
				Title("Webhook URL").
				Description("Optional, order/transfer events are posted here").
				Value(&answers.WebhookURL),
			huh.NewInput().
				Title("HTTP timeout").
				Description("Duration string (e.g. 5s, 15s)").
				Value(&answers.HTTPTimeout).
				Validate(func(s string) error {
					_, err := time.ParseDuration(s)
					return err
				}),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save configuration?").
				Affirmative("Yes, save").
				Negative("No, exit").
				Value(&confirmed),
		),
	).Run()
	if err != nil {
		return err
	}
	if !confirmed {
		return errors.New("setup cancelled by user")
	}

	data, err := yaml.Marshal(answers)
	if err != nil {
		return errors.Wrap(err, "failed to generate yaml")
	}
	if err := os.WriteFile(*output, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to save config file")
	}

	a.header("configuration saved to %s", *output)
	a.line("set %s, %s and %s in the environment before trading",
		config.EnvAPIKey, config.EnvAPISecret, config.EnvAPIPassphrase)
	return nil
}

func validateDecimal(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("must be a valid number")
	}
	if d.IsNegative() {
		return fmt.Errorf("must not be negative")
	}
	return nil
}
