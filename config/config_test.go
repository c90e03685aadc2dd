package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://api.kucoin.com", cfg.BaseURL)
	assert.Equal(t, "USD", cfg.ValuationCurrency)
	assert.True(t, cfg.BalancesDust.Equal(decimal.RequireFromString("0.0005")))
	assert.True(t, cfg.ValueDust.Equal(decimal.RequireFromString("0.01")))
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
}

func TestLoad_YamlOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kucli.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
base_url: https://openapi-sandbox.kucoin.com
valuation_currency: EUR
balances_dust: "0.001"
value_dust: "0.05"
webhook_url: https://hooks.example.com/kucli
http_timeout: 5s
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://openapi-sandbox.kucoin.com", cfg.BaseURL)
	assert.Equal(t, "EUR", cfg.ValuationCurrency)
	assert.True(t, cfg.BalancesDust.Equal(decimal.RequireFromString("0.001")))
	assert.True(t, cfg.ValueDust.Equal(decimal.RequireFromString("0.05")))
	assert.Equal(t, "https://hooks.example.com/kucli", cfg.WebhookURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
}

func TestLoad_CredentialsFromEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "k")
	t.Setenv(EnvAPISecret, "s")
	t.Setenv(EnvAPIPassphrase, "p")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "k", cfg.APIKey)
	assert.Equal(t, "s", cfg.APISecret)
	assert.Equal(t, "p", cfg.APIPassphrase)
}

func TestLoad_BadDecimal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kucli.yaml")
	require.NoError(t, os.WriteFile(path, []byte("value_dust: \"a lot\"\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "value_dust")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
