package allocation

import (
	"slices"

	"github.com/KotFed0t/lot_allocator/internal/model"
	"github.com/KotFed0t/lot_allocator/utils"
	"github.com/shopspring/decimal"
)

// Plan decides how many shares each lot gives up so that the lots together
// hold shares allocated shares. shares is the cumulative target: whatever the
// lots already have allocated counts towards it. The lots are not modified.
func (s Strategy) Plan(lots []model.Lot, shares decimal.Decimal) model.AllocationResult {
	alreadyAllocated := utils.SumDecimals(lots, func(l model.Lot) decimal.Decimal { return l.AllocatedShares })

	remaining := shares.Sub(alreadyAllocated)
	if remaining.Sign() <= 0 {
		return model.AllocationResult{Requested: decimal.Zero, Shortfall: decimal.Zero}
	}

	result := model.AllocationResult{Requested: remaining}
	for _, i := range s.order(lots) {
		if remaining.Sign() <= 0 {
			break
		}

		available := lots[i].RemainingShares()
		if available.Sign() <= 0 {
			continue
		}

		taken := decimal.Min(available, remaining)
		result.Allocations = append(result.Allocations, model.LotAllocation{
			LotID:  lots[i].ID,
			Index:  i,
			Shares: taken,
		})
		remaining = remaining.Sub(taken)
	}

	result.Shortfall = decimal.Max(remaining, decimal.Zero)
	return result
}

// AllocateLots plans the allocation and applies it to the lots in place.
// The caller must hold exclusive access to the lots for the duration of the call.
func (s Strategy) AllocateLots(lots []*model.Lot, shares decimal.Decimal) model.AllocationResult {
	values := make([]model.Lot, len(lots))
	for i, lot := range lots {
		values[i] = *lot
	}

	result := s.Plan(values, shares)
	result.Apply(lots)
	return result
}

// order returns the lot indexes sorted by the strategy, ties keep input order.
func (s Strategy) order(lots []model.Lot) []int {
	indexes := make([]int, len(lots))
	for i := range indexes {
		indexes[i] = i
	}
	if s.compare == nil {
		return indexes
	}

	slices.SortStableFunc(indexes, func(a, b int) int {
		return s.compare(lots[a], lots[b])
	})
	return indexes
}
