// Command kucli is an operator CLI for a KuCoin spot account: balances,
// tickers, order history, limit orders, sub-account transfers.
//
// Usage:
//
//	kucli [-config kucli.yaml] [-verbose] <command> [flags]
//
// Credentials come from the environment (or a .env file):
//
//	KUCOIN_API_KEY, KUCOIN_API_SECRET, KUCOIN_API_PASSPHRASE
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"kucli/config"
	"kucli/internal/cli"
	"kucli/internal/exchange/kucoin"
	"kucli/internal/notify"
)

func main() {
	configPath := flag.String("config", "", "path to yaml config")
	verbose := flag.Bool("verbose", false, "debug logging")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	client := kucoin.NewClient(kucoin.Config{
		BaseURL:    cfg.BaseURL,
		Key:        cfg.APIKey,
		Secret:     cfg.APISecret,
		Passphrase: cfg.APIPassphrase,
		Timeout:    cfg.HTTPTimeout,
	})
	notifier := notify.NewWebhook(cfg.WebhookURL, logger)
	app := cli.New(cfg, client, notifier, logger, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := flag.Arg(0)
	var args []string
	if flag.NArg() > 1 {
		args = flag.Args()[1:]
	}

	if err := app.Run(ctx, command, args); err != nil {
		logger.Debug("command failed", zap.String("command", command), zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger keeps structured logs out of the way of table output unless
// the operator asks for them.
func newLogger(verbose bool) (*zap.Logger, error) {
	logCfg := zap.NewProductionConfig()
	logCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return logCfg.Build()
}
