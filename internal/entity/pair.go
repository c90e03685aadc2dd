// Package entity defines core data structures used throughout the CLI.
package entity

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidPair is returned when a pair string cannot be parsed.
var ErrInvalidPair = errors.New("invalid trading pair")

// Pair cryptocurrency trading pair.
type Pair struct {
	// Target asset being bought or sold.
	Target string
	// Base currency the trade is priced and settled in.
	Base string
}

// ParsePair parses a "TARGET-BASE" pair string, e.g. "ADA-EUR".
func ParsePair(s string) (Pair, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Pair{}, errors.Wrapf(ErrInvalidPair, "%q", s)
	}
	return Pair{Target: parts[0], Base: parts[1]}, nil
}

// String returns the string representation.
func (p Pair) String() string {
	return fmt.Sprintf("%s-%s", p.Target, p.Base)
}

// Symbol returns the exchange symbol for the pair.
func (p Pair) Symbol() string {
	return p.String()
}
