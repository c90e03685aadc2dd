// Package config loads CLI configuration from a yaml file and the
// environment.
package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up when --config is not given.
const DefaultFile = "kucli.yaml"

// Credential environment variables. The API session is built from these
// in main and handed down explicitly; nothing else reads the environment.
const (
	EnvAPIKey        = "KUCOIN_API_KEY"
	EnvAPISecret     = "KUCOIN_API_SECRET"
	EnvAPIPassphrase = "KUCOIN_API_PASSPHRASE"
)

// Config is the resolved CLI configuration.
type Config struct {
	// BaseURL REST endpoint of the exchange.
	BaseURL string
	// ValuationCurrency fiat currency the value report is denominated in.
	ValuationCurrency string
	// BalancesDust threshold below which the balances view hides a holding.
	BalancesDust decimal.Decimal
	// ValueDust threshold below which the value report hides a holding.
	ValueDust decimal.Decimal
	// WebhookURL optional notification endpoint, empty disables posting.
	WebhookURL string
	// HTTPTimeout per-request timeout for exchange calls.
	HTTPTimeout time.Duration

	// credentials, from the environment
	APIKey        string
	APISecret     string
	APIPassphrase string
}

type configTmp struct {
	BaseURL           string `yaml:"base_url,omitempty"`
	ValuationCurrency string `yaml:"valuation_currency,omitempty"`
	BalancesDust      string `yaml:"balances_dust,omitempty"`
	ValueDust         string `yaml:"value_dust,omitempty"`
	WebhookURL        string `yaml:"webhook_url,omitempty"`
	HTTPTimeout       string `yaml:"http_timeout,omitempty"`
}

// Load reads the config file at path, falling back to defaults for
// everything the file omits. An empty path means defaults only, except
// that DefaultFile is picked up when it exists. Credentials always come
// from the environment.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}

	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.APIKey = os.Getenv(EnvAPIKey)
	cfg.APISecret = os.Getenv(EnvAPISecret)
	cfg.APIPassphrase = os.Getenv(EnvAPIPassphrase)

	return cfg, nil
}

func defaults() Config {
	return Config{
		BaseURL:           "https://api.kucoin.com",
		ValuationCurrency: "USD",
		BalancesDust:      decimal.RequireFromString("0.0005"),
		ValueDust:         decimal.RequireFromString("0.01"),
		HTTPTimeout:       15 * time.Second,
	}
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read config %s", path)
	}

	var tmp configTmp
	if err := yaml.Unmarshal(raw, &tmp); err != nil {
		return errors.Wrapf(err, "failed to parse config %s", path)
	}

	if tmp.BaseURL != "" {
		c.BaseURL = tmp.BaseURL
	}
	if tmp.ValuationCurrency != "" {
		c.ValuationCurrency = tmp.ValuationCurrency
	}
	if tmp.BalancesDust != "" {
		dust, err := decimal.NewFromString(tmp.BalancesDust)
		if err != nil {
			return errors.Wrap(err, "incorrect 'balances_dust' param in yaml config")
		}
		c.BalancesDust = dust
	}
	if tmp.ValueDust != "" {
		dust, err := decimal.NewFromString(tmp.ValueDust)
		if err != nil {
			return errors.Wrap(err, "incorrect 'value_dust' param in yaml config")
		}
		c.ValueDust = dust
	}
	if tmp.WebhookURL != "" {
		c.WebhookURL = tmp.WebhookURL
	}
	if tmp.HTTPTimeout != "" {
		timeout, err := time.ParseDuration(tmp.HTTPTimeout)
		if err != nil {
			return errors.Wrap(err, "incorrect 'http_timeout' param in yaml config")
		}
		c.HTTPTimeout = timeout
	}
	return nil
}
