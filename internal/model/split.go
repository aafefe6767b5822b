package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultScale is the number of decimal places kept for split-adjusted shares.
const DefaultScale int32 = 6

// SplitRatio converts SharesIn old shares into SharesOut new shares.
type SplitRatio struct {
	SharesIn  decimal.Decimal
	SharesOut decimal.Decimal
}

func NewSplitRatio(sharesIn, sharesOut decimal.Decimal) SplitRatio {
	return SplitRatio{SharesIn: sharesIn, SharesOut: sharesOut}
}

func IdentitySplitRatio() SplitRatio {
	return SplitRatio{SharesIn: decimal.NewFromInt(1), SharesOut: decimal.NewFromInt(1)}
}

func (r SplitRatio) IsIdentity() bool {
	return r.SharesIn.Equal(r.SharesOut)
}

func (r SplitRatio) Ratio(scale int32) decimal.Decimal {
	return divRoundHalfEven(r.SharesOut, r.SharesIn, scale)
}

func (r SplitRatio) Multiply(other SplitRatio) SplitRatio {
	return SplitRatio{
		SharesIn:  r.SharesIn.Mul(other.SharesIn),
		SharesOut: r.SharesOut.Mul(other.SharesOut),
	}
}

// Apply converts shares held before the split into shares held after it.
func (r SplitRatio) Apply(shares decimal.Decimal, scale int32) decimal.Decimal {
	return divRoundHalfEven(shares.Mul(r.SharesOut), r.SharesIn, scale)
}

// Revert converts shares held after the split back into shares held before it.
func (r SplitRatio) Revert(shares decimal.Decimal, scale int32) decimal.Decimal {
	return divRoundHalfEven(shares.Mul(r.SharesIn), r.SharesOut, scale)
}

// AdjustPrice converts a per-share price paid before the split into the price
// of one post-split share: price / Ratio(scale).
func (r SplitRatio) AdjustPrice(price decimal.Decimal, scale int32) decimal.Decimal {
	return divRoundHalfEven(price, r.Ratio(scale), scale)
}

type StockSplit struct {
	Ticker string
	Date   time.Time
	Ratio  SplitRatio
}

// SplitRatioBetween combines the splits dated from <= date <= to.
// A zero to means there is no upper bound.
func SplitRatioBetween(splits []StockSplit, from, to time.Time) SplitRatio {
	ratio := IdentitySplitRatio()
	for _, split := range splits {
		if split.Date.Before(from) {
			continue
		}
		if !to.IsZero() && split.Date.After(to) {
			continue
		}
		ratio = ratio.Multiply(split.Ratio)
	}
	return ratio
}

// divRoundHalfEven divides a by b rounding to scale decimal places, ties to even.
func divRoundHalfEven(a, b decimal.Decimal, scale int32) decimal.Decimal {
	q, rem := a.QuoRem(b, scale)
	if rem.IsZero() {
		return q
	}

	unit := decimal.New(1, -scale)
	twice := rem.Abs().Mul(decimal.NewFromInt(2))
	half := b.Abs().Mul(unit)

	roundAway := false
	switch twice.Cmp(half) {
	case 1:
		roundAway = true
	case 0:
		roundAway = !q.Shift(scale).Mod(decimal.NewFromInt(2)).IsZero()
	}
	if !roundAway {
		return q
	}

	if a.Sign()*b.Sign() < 0 {
		return q.Sub(unit)
	}
	return q.Add(unit)
}
