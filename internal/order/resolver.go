// Package order turns high-level order intents into concrete limit orders.
package order

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"kucli/internal/entity"
)

// ErrInvalidIntent is returned when an intent is malformed or ambiguous.
var ErrInvalidIntent = errors.New("invalid order intent")

// defaultQuantityScale is the fallback quantity increment. Exchange
// per-symbol increment metadata has proven unreliable, so callers that
// need exact per-asset scales must supply a ScaleProvider.
const defaultQuantityScale int32 = 4

// ScaleProvider reports the number of decimal places allowed in an
// order quantity for a pair.
type ScaleProvider interface {
	QuantityScale(pair entity.Pair) int32
}

type fixedScale int32

func (f fixedScale) QuantityScale(entity.Pair) int32 { return int32(f) }

// Resolver computes the missing leg of an order intent against a live
// quote. It is pure: no network access, no retries, no shared state.
type Resolver struct {
	scales ScaleProvider
}

// NewResolver returns a Resolver using the given scale provider, or the
// fixed default scale when provider is nil.
func NewResolver(provider ScaleProvider) *Resolver {
	if provider == nil {
		provider = fixedScale(defaultQuantityScale)
	}
	return &Resolver{scales: provider}
}

// Resolve derives quantity, limit price and counter value from an
// intent and a quote.
//
// A buy takes liquidity at the ask, a sell at the bid. For buys the
// spend is base currency committed; for sells the counter amount is the
// expected base currency proceeds. The quantity is truncated, never
// rounded, so the order can't exceed what the operator asked for.
func (r *Resolver) Resolve(intent entity.OrderIntent, quote entity.Quote) (entity.ResolvedOrder, error) {
	if err := validateIntent(intent, quote); err != nil {
		return entity.ResolvedOrder{}, err
	}

	var limit decimal.Decimal
	if intent.Side == entity.SideBuy {
		limit = quote.BestAsk
	} else {
		limit = quote.BestBid
	}

	quantity, counter := crossDerive(intent, limit)
	quantity = quantity.RoundFloor(r.scales.QuantityScale(intent.Pair))

	return entity.ResolvedOrder{
		Pair:          intent.Pair,
		Side:          intent.Side,
		AssetQuantity: quantity,
		LimitPrice:    limit,
		CounterAmount: counter,
	}, nil
}

// crossDerive computes the missing one of quantity/spend. The sell
// formulas mirror the historical tool: a sell sized by spend multiplies
// by the price instead of dividing, and its counter amount is the
// proceeds figure.
func crossDerive(intent entity.OrderIntent, limit decimal.Decimal) (quantity, counter decimal.Decimal) {
	if intent.Side == entity.SideBuy {
		if intent.HasSpend() {
			return intent.Spend.Div(limit), intent.Spend
		}
		return intent.Quantity, intent.Quantity.Mul(limit)
	}

	if intent.HasSpend() {
		return intent.Spend.Mul(limit), intent.Spend
	}
	return intent.Quantity, limit.Mul(intent.Quantity)
}

func validateIntent(intent entity.OrderIntent, quote entity.Quote) error {
	if intent.Pair.Target == "" || intent.Pair.Base == "" {
		return errors.Wrapf(ErrInvalidIntent, "incomplete pair %q", intent.Pair.String())
	}
	if intent.Side != entity.SideBuy && intent.Side != entity.SideSell {
		return errors.Wrapf(ErrInvalidIntent, "unknown side %q", intent.Side)
	}
	if intent.HasQuantity() == intent.HasSpend() {
		return errors.Wrap(ErrInvalidIntent, "exactly one of quantity and spend must be set")
	}
	if !quote.BestBid.IsPositive() || !quote.BestAsk.IsPositive() {
		return errors.Wrapf(ErrInvalidIntent, "non-positive quote bid=%s ask=%s",
			quote.BestBid.String(), quote.BestAsk.String())
	}
	return nil
}
