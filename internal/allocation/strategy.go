// Package allocation matches sold shares against purchase lots.
package allocation

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/KotFed0t/lot_allocator/internal/model"
)

var ErrUnknownStrategy = errors.New("unknown allocation strategy")

type compareFn func(a, b model.Lot) int

// Strategy is an ordering of lots used to decide which lots a sale consumes first.
type Strategy struct {
	name    string
	compare compareFn
}

var (
	LowestPrice  = Strategy{name: "lowest", compare: byPurchasePrice}
	HighestPrice = Strategy{name: "highest", compare: reversed(byPurchasePrice)}
	FirstIn      = Strategy{name: "fifo", compare: byPurchaseDate}
	LastIn       = Strategy{name: "lifo", compare: reversed(byPurchaseDate)}
)

var strategies = []Strategy{FirstIn, LastIn, LowestPrice, HighestPrice}

// Strategies returns all known strategies.
func Strategies() []Strategy {
	return slices.Clone(strategies)
}

func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range strategies {
		if s.name == name {
			return s, nil
		}
	}
	return Strategy{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

func (s Strategy) String() string {
	return s.name
}

func (s Strategy) IsZero() bool {
	return s.compare == nil
}

func byPurchasePrice(a, b model.Lot) int {
	return a.PurchasePrice.Cmp(b.PurchasePrice)
}

func byPurchaseDate(a, b model.Lot) int {
	return a.PurchaseDate.Compare(b.PurchaseDate)
}

func reversed(fn compareFn) compareFn {
	return func(a, b model.Lot) int {
		return fn(b, a)
	}
}
