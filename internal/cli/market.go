package cli

import (
	"context"
	"flag"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"kucli/internal/entity"
)

const tickerCols = "%-10s %-20s %-20s %-20s"

// Ticker shows the top-of-book quote for a symbol.
func (a *App) Ticker(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("ticker", flag.ContinueOnError)
	symbol := fs.String("symbol", "", "symbol to view (example: ADA-EUR)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pair, err := entity.ParsePair(*symbol)
	if err != nil {
		return err
	}

	quote, err := a.exchange.GetQuote(ctx, pair)
	if err != nil {
		return err
	}

	a.header(tickerCols, "SYMBOL", "PRICE", "BIDRATE", "ASKRATE")
	a.line(tickerCols, pair.Symbol(),
		quote.Price.String(), quote.BestBid.String(), quote.BestAsk.String())
	return nil
}

// Watch streams live quotes for a symbol until interrupted.
func (a *App) Watch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	symbol := fs.String("symbol", "", "symbol to watch (example: ADA-EUR)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pair, err := entity.ParsePair(*symbol)
	if err != nil {
		return err
	}

	a.header(tickerCols, "TIME", "PRICE", "BIDRATE", "ASKRATE")

	ticks := make(chan entity.TickerTick)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(ticks)
		return a.exchange.WatchTicker(gctx, pair, ticks)
	})
	g.Go(func() error {
		for tick := range ticks {
			a.line(tickerCols, tick.Time.Format("15:04:05"),
				tick.Quote.Price.String(), tick.Quote.BestBid.String(), tick.Quote.BestAsk.String())
		}
		return nil
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
