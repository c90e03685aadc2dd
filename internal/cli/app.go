// Package cli implements the kucli subcommands. It is thin glue: every
// command fetches data through the exchange client, runs the pure core
// (order resolution, portfolio valuation), and renders the result.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"kucli/config"
	"kucli/internal/entity"
	"kucli/internal/notify"
	"kucli/internal/order"
)

// Exchange is the market/account collaborator the commands talk to.
type Exchange interface {
	GetQuote(ctx context.Context, pair entity.Pair) (entity.Quote, error)
	GetBalances(ctx context.Context, accountType string) ([]entity.Balance, error)
	GetOrders(ctx context.Context, status string) ([]entity.Order, error)
	GetDepositAddresses(ctx context.Context, currency string) ([]entity.DepositAddress, error)
	GetFiatPrices(ctx context.Context, base string, currencies []string) (entity.PriceMap, error)
	CreateLimitOrder(ctx context.Context, order entity.ResolvedOrder) (string, error)
	InnerTransfer(ctx context.Context, currency, from, to string, amount decimal.Decimal) (string, error)
	WatchTicker(ctx context.Context, pair entity.Pair, out chan<- entity.TickerTick) error
}

// App wires one configured session to the subcommands.
type App struct {
	cfg      config.Config
	exchange Exchange
	notifier *notify.Webhook
	resolver *order.Resolver
	logger   *zap.Logger
	out      io.Writer
}

// New builds the App. The exchange client and notifier are constructed
// by the caller so no package-level singletons exist.
func New(cfg config.Config, exchange Exchange, notifier *notify.Webhook, logger *zap.Logger, out io.Writer) *App {
	return &App{
		cfg:      cfg,
		exchange: exchange,
		notifier: notifier,
		resolver: order.NewResolver(nil),
		logger:   logger,
		out:      out,
	}
}

// Run dispatches a subcommand with its arguments.
func (a *App) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "balances":
		return a.Balances(ctx, args)
	case "value":
		return a.Value(ctx, args)
	case "ticker":
		return a.Ticker(ctx, args)
	case "orders":
		return a.Orders(ctx, args)
	case "create":
		return a.Create(ctx, args)
	case "deposit":
		return a.Deposit(ctx, args)
	case "transfer":
		return a.Transfer(ctx, args)
	case "watch":
		return a.Watch(ctx, args)
	case "init":
		return a.Init(args)
	case "", "help":
		a.Usage()
		return nil
	}
	a.Usage()
	return errors.Errorf("unknown command %q", command)
}

// Usage prints the command overview.
func (a *App) Usage() {
	fmt.Fprint(a.out, `kucli - simple KuCoin cli, have fun

commands:
  balances   list sub-account balances
  value      portfolio valuation in fiat
  ticker     best bid/ask for a symbol
  orders     list open and closed orders
  create     resolve and place a limit order
  deposit    deposit addresses for a currency
  transfer   move funds between sub-accounts
  watch      live ticker stream
  init       interactive config wizard

run 'kucli <command> -h' for command flags
`)
}
