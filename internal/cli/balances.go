package cli

import (
	"context"
	"flag"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"kucli/internal/entity"
	"kucli/internal/portfolio"
)

const balanceCols = "%10s %10s %15s %15s %15s"

// Balances lists sub-account balances above the dust threshold.
func (a *App) Balances(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("balances", flag.ContinueOnError)
	accountType := fs.String("account", "", "filter by account type (main, trade)")
	all := fs.Bool("all", false, "include dust balances")
	if err := fs.Parse(args); err != nil {
		return err
	}

	balances, err := a.exchange.GetBalances(ctx, *accountType)
	if err != nil {
		return err
	}

	a.header(balanceCols, "ACCOUNT", "CURRENCY", "BALANCE", "AVAILABLE", "HOLDS")
	for _, b := range balances {
		if !*all && !b.Total.GreaterThan(a.cfg.BalancesDust) {
			continue
		}
		a.line(balanceCols, b.AccountType, b.Currency,
			b.Total.String(), b.Available.String(), b.Holds.String())
	}
	return nil
}

const valueCols = "%10s %10s %15s %15s %15s %15s"

// Value renders the portfolio valuation report. Balances and the fiat
// price snapshot are independent reads, so they are fetched in parallel.
func (a *App) Value(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("value", flag.ContinueOnError)
	currency := fs.String("currency", a.cfg.ValuationCurrency, "fiat currency to value in")
	accountType := fs.String("account", "", "filter by account type (main, trade)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		balances []entity.Balance
		prices   entity.PriceMap
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		balances, err = a.exchange.GetBalances(gctx, *accountType)
		return err
	})
	g.Go(func() error {
		var err error
		prices, err = a.exchange.GetFiatPrices(gctx, *currency, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	lines, err := portfolio.Valuate(balances, prices, a.cfg.ValueDust)
	if err != nil {
		return err
	}
	a.logger.Debug("valuation computed",
		zap.Int("balances", len(balances)), zap.Int("lines", len(lines)))

	a.header(valueCols, "ACCOUNT", "CURRENCY", "BALANCE", "AVAILABLE", "HOLDS", *currency)
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.FiatValue)
		a.line(valueCols, l.AccountType, l.Currency,
			l.Total.String(), l.Available.String(), l.Holds.String(),
			l.FiatValue.StringFixed(2))
	}
	a.accent(valueCols, "", "", "", "", "TOTAL", total.StringFixed(2))
	return nil
}
