package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderIntent is a high-level order request as entered by the operator.
// Exactly one of Quantity and Spend must be positive; the zero value of
// the other means "compute this".
type OrderIntent struct {
	Pair Pair
	Side Side
	// Quantity amount of the target asset to trade.
	Quantity decimal.Decimal
	// Spend amount of base currency to commit (buy) or to derive the
	// sell size from.
	Spend decimal.Decimal
}

// HasQuantity reports whether the intent carries a quantity.
func (i OrderIntent) HasQuantity() bool {
	return i.Quantity.IsPositive()
}

// HasSpend reports whether the intent carries a spend amount.
func (i OrderIntent) HasSpend() bool {
	return i.Spend.IsPositive()
}

// ResolvedOrder is a concrete limit order derived from an OrderIntent
// and a live quote. AssetQuantity and CounterAmount are kept as two
// separately named fields so a sell never reports its proceeds figure
// in place of the executed size.
type ResolvedOrder struct {
	Pair Pair
	Side Side
	// AssetQuantity amount of the target asset, truncated to the
	// quantity scale of the pair.
	AssetQuantity decimal.Decimal
	// LimitPrice best ask for buys, best bid for sells.
	LimitPrice decimal.Decimal
	// CounterAmount base currency committed by a buy, or the expected
	// proceeds of a sell.
	CounterAmount decimal.Decimal
}

// String returns a human-readable confirmation line.
func (o ResolvedOrder) String() string {
	return fmt.Sprintf("%s %s %s at %s %s, counter value %s %s",
		o.Side, o.AssetQuantity.String(), o.Pair.Target,
		o.LimitPrice.String(), o.Pair.Base,
		o.CounterAmount.String(), o.Pair.Base)
}

// Order is a historical order as reported by the exchange.
type Order struct {
	ID        string
	Symbol    string
	Side      Side
	Type      string
	Price     decimal.Decimal
	Size      decimal.Decimal
	Fee       decimal.Decimal
	Active    bool
	CreatedAt time.Time
}

// Status returns "open" for active orders and "closed" otherwise.
func (o Order) Status() string {
	if o.Active {
		return "open"
	}
	return "closed"
}
