package entity

import (
	"strings"

	"github.com/pkg/errors"
)

// Side direction of an order.
type Side string

const (
	// SideBuy buy the target asset at the ask.
	SideBuy Side = "buy"
	// SideSell sell the target asset at the bid.
	SideSell Side = "sell"
)

// ParseSide parses a direction string, case-insensitive.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(s) {
	case "buy":
		return SideBuy, nil
	case "sell":
		return SideSell, nil
	}
	return "", errors.Errorf("invalid direction %q, want buy or sell", s)
}

// String returns the string representation.
func (s Side) String() string {
	return string(s)
}
