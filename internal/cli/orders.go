package cli

import (
	"context"
	"flag"

	"github.com/charmbracelet/huh"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"kucli/internal/entity"
)

const orderCols = "%-10s %-10s %-10s %-10s %-15s %-15s %-20s %-30s"

// Orders lists open and closed orders.
func (a *App) Orders(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("orders", flag.ContinueOnError)
	status := fs.String("status", "", "filter: active or done, empty for both")
	if err := fs.Parse(args); err != nil {
		return err
	}

	orders, err := a.exchange.GetOrders(ctx, *status)
	if err != nil {
		return err
	}

	a.header(orderCols, "STATUS", "DIRECTION", "SYMBOL", "TYPE", "PRICE", "QUANTITY", "FEES", "CREATED")
	for _, o := range orders {
		a.line(orderCols, o.Status(), o.Side.String(), o.Symbol, o.Type,
			o.Price.String(), o.Size.String(), o.Fee.String(),
			o.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

// Create resolves an order intent against the live quote and submits it
// as a limit order once confirmed.
func (a *App) Create(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	pairFlag := fs.String("pair", "", "trade pair (example: ADA-EUR)")
	directionFlag := fs.String("direction", "buy", "buy or sell")
	quantityFlag := fs.String("quantity", "", "quantity to buy or sell")
	spendFlag := fs.String("spend", "", "spend this amount instead of a quantity")
	confirm := fs.Bool("confirm", false, "submit without asking")
	if err := fs.Parse(args); err != nil {
		return err
	}

	intent, err := buildIntent(*pairFlag, *directionFlag, *quantityFlag, *spendFlag)
	if err != nil {
		return err
	}

	quote, err := a.exchange.GetQuote(ctx, intent.Pair)
	if err != nil {
		return err
	}

	resolved, err := a.resolver.Resolve(intent, quote)
	if err != nil {
		return err
	}

	verb := "spending"
	if resolved.Side == entity.SideSell {
		verb = "proceeds"
	}
	a.header("Going to %s %s %s at %s %s, %s %s %s",
		resolved.Side, resolved.AssetQuantity.String(), resolved.Pair.Target,
		resolved.LimitPrice.String(), resolved.Pair.Base,
		verb, resolved.CounterAmount.String(), resolved.Pair.Base)

	if !*confirm && !a.askConfirmation(resolved) {
		a.warn("no action taken, use --confirm to create this order")
		return nil
	}

	id, err := a.exchange.CreateLimitOrder(ctx, resolved)
	if err != nil {
		return err
	}
	a.accent("> created %s", id)
	a.logger.Info("order created",
		zap.String("order_id", id),
		zap.String("symbol", resolved.Pair.Symbol()),
		zap.String("side", resolved.Side.String()))

	if a.notifier != nil {
		a.notifier.OrderCreated(ctx, id, resolved)
	}
	return nil
}

// askConfirmation prompts interactively. When no terminal is attached
// the prompt fails and the order stays unsubmitted.
func (a *App) askConfirmation(resolved entity.ResolvedOrder) bool {
	confirmed := false
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Place this order?").
				Description(resolved.String()).
				Affirmative("Yes, place it").
				Negative("No").
				Value(&confirmed),
		),
	).Run()
	return err == nil && confirmed
}

func buildIntent(pairStr, direction, quantityStr, spendStr string) (entity.OrderIntent, error) {
	pair, err := entity.ParsePair(pairStr)
	if err != nil {
		return entity.OrderIntent{}, err
	}
	side, err := entity.ParseSide(direction)
	if err != nil {
		return entity.OrderIntent{}, err
	}

	intent := entity.OrderIntent{Pair: pair, Side: side}
	if quantityStr != "" {
		intent.Quantity, err = decimal.NewFromString(quantityStr)
		if err != nil {
			return entity.OrderIntent{}, errors.Wrap(err, "invalid --quantity")
		}
	}
	if spendStr != "" {
		intent.Spend, err = decimal.NewFromString(spendStr)
		if err != nil {
			return entity.OrderIntent{}, errors.Wrap(err, "invalid --spend")
		}
	}
	return intent, nil
}
