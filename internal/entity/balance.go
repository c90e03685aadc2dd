package entity

import "github.com/shopspring/decimal"

// Balance is a single sub-account holding as reported by the exchange.
type Balance struct {
	// AccountType sub-account kind, e.g. "main" or "trade".
	AccountType string
	Currency    string
	Total       decimal.Decimal
	Available   decimal.Decimal
	Holds       decimal.Decimal
}

// ValuationLine is a Balance joined with its fiat-equivalent value.
type ValuationLine struct {
	AccountType string
	Currency    string
	Total       decimal.Decimal
	Available   decimal.Decimal
	Holds       decimal.Decimal
	// FiatValue available balance valued at the unit fiat price,
	// rounded to cents. Held funds are reported but not valued.
	FiatValue decimal.Decimal
}
