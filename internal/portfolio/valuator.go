// Package portfolio aggregates account balances into a fiat valuation.
package portfolio

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"kucli/internal/entity"
)

// ErrMissingPrice is returned when the price map lacks a quote for a
// currency present in the balance set.
var ErrMissingPrice = errors.New("missing fiat price")

// Valuate joins balances with unit fiat prices into an ordered report.
//
// Lines are grouped by account type (stable, so ties keep the exchange
// order) and balances at or below the dust threshold are dropped. The
// fiat value is computed on the available balance only; held funds are
// reported but not valued. One missing price aborts the whole call
// rather than producing a silently partial report.
func Valuate(balances []entity.Balance, prices entity.PriceMap, dustThreshold decimal.Decimal) ([]entity.ValuationLine, error) {
	sorted := make([]entity.Balance, len(balances))
	copy(sorted, balances)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AccountType < sorted[j].AccountType
	})

	lines := make([]entity.ValuationLine, 0, len(sorted))
	for _, b := range sorted {
		price, ok := prices[b.Currency]
		if !ok {
			return nil, errors.Wrapf(ErrMissingPrice, "currency %s", b.Currency)
		}
		if !b.Total.GreaterThan(dustThreshold) {
			continue
		}
		lines = append(lines, entity.ValuationLine{
			AccountType: b.AccountType,
			Currency:    b.Currency,
			Total:       b.Total,
			Available:   b.Available,
			Holds:       b.Holds,
			FiatValue:   price.Mul(b.Available).Round(2),
		})
	}
	return lines, nil
}

// Currencies returns the distinct currency codes of a balance set, in
// first-seen order. Used to scope the fiat price request.
func Currencies(balances []entity.Balance) []string {
	seen := make(map[string]struct{}, len(balances))
	out := make([]string, 0, len(balances))
	for _, b := range balances {
		if _, ok := seen[b.Currency]; ok {
			continue
		}
		seen[b.Currency] = struct{}{}
		out = append(out, b.Currency)
	}
	return out
}
