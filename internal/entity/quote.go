package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote top-of-book prices for a pair at a point in time.
type Quote struct {
	// Price last traded price.
	Price decimal.Decimal
	// BestBid highest resting buy price.
	BestBid decimal.Decimal
	// BestAsk lowest resting sell price.
	BestAsk decimal.Decimal
}

// PriceMap maps a currency code to its unit fiat price. Always a fresh
// snapshot supplied per call, never cached.
type PriceMap map[string]decimal.Decimal

// TickerTick is one live top-of-book update from the websocket feed.
type TickerTick struct {
	Pair  Pair
	Quote Quote
	Time  time.Time
}

// DepositAddress is one deposit destination for a currency.
type DepositAddress struct {
	Address string
	Memo    string
	Chain   string
}
