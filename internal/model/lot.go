package model

import (
	"time"

	"github.com/KotFed0t/lot_allocator/utils"
	"github.com/shopspring/decimal"
)

// Lot is one purchase of a security. Share amounts are expressed in the units
// of the date the lot is looked at, i.e. already adjusted for splits.
type Lot struct {
	ID              int64
	Ticker          string
	PurchaseDate    time.Time
	PurchasePrice   decimal.Decimal
	TotalShares     decimal.Decimal
	AllocatedShares decimal.Decimal
}

func (l Lot) RemainingShares() decimal.Decimal {
	return l.TotalShares.Sub(l.AllocatedShares)
}

// Allocate moves up to maxShares of the remaining shares into AllocatedShares
// and returns the part of maxShares that could not be allocated.
func (l *Lot) Allocate(maxShares decimal.Decimal) decimal.Decimal {
	shares := decimal.Min(maxShares, l.RemainingShares())
	if shares.Sign() <= 0 {
		return maxShares
	}
	l.AllocatedShares = l.AllocatedShares.Add(shares)
	return maxShares.Sub(shares)
}

// LotAllocation is the amount of shares taken from one lot.
// Index is the position of the lot in the slice the allocation was planned on.
type LotAllocation struct {
	LotID  int64
	Index  int
	Shares decimal.Decimal
}

type AllocationResult struct {
	Requested   decimal.Decimal
	Allocations []LotAllocation
	Shortfall   decimal.Decimal
}

func (r AllocationResult) Allocated() decimal.Decimal {
	return utils.SumDecimals(r.Allocations, func(a LotAllocation) decimal.Decimal { return a.Shares })
}

func (r AllocationResult) HasShortfall() bool {
	return r.Shortfall.Sign() > 0
}

// Apply adds the planned shares to the lots. lots must be in the same order
// as the slice the result was planned on.
func (r AllocationResult) Apply(lots []*Lot) {
	for _, a := range r.Allocations {
		lot := lots[a.Index]
		lot.AllocatedShares = lot.AllocatedShares.Add(a.Shares)
	}
}

// OpenLotsSummary is the cached view of the open lots of a security.
type OpenLotsSummary struct {
	Ticker          string
	AsOf            time.Time
	Lots            []Lot
	RemainingShares decimal.Decimal
	CostBasis       decimal.Decimal
}
