package utils

import "github.com/shopspring/decimal"

// SumDecimals returns the exact sum of the values extracted from items.
func SumDecimals[T any](items []T, extract func(T) decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(extract(item))
	}
	return sum
}
