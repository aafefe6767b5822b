package allocation

import (
	"testing"
	"time"

	"github.com/KotFed0t/lot_allocator/internal/model"
	"github.com/KotFed0t/lot_allocator/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(n int) time.Time {
	return time.Date(2024, time.January, n, 0, 0, 0, 0, time.UTC)
}

func newLot(id int64, purchaseDate time.Time, price, total, allocated string) *model.Lot {
	return &model.Lot{
		ID:              id,
		Ticker:          "SBER",
		PurchaseDate:    purchaseDate,
		PurchasePrice:   d(price),
		TotalShares:     d(total),
		AllocatedShares: d(allocated),
	}
}

func allocatedByID(lots []*model.Lot) map[int64]string {
	res := make(map[int64]string, len(lots))
	for _, lot := range lots {
		res[lot.ID] = lot.AllocatedShares.String()
	}
	return res
}

func sumAllocated(lots []*model.Lot) decimal.Decimal {
	return utils.SumDecimals(lots, func(l *model.Lot) decimal.Decimal { return l.AllocatedShares })
}

func sumRemaining(lots []*model.Lot) decimal.Decimal {
	return utils.SumDecimals(lots, func(l *model.Lot) decimal.Decimal { return l.RemainingShares() })
}

func TestAllocateLots_Ordering(t *testing.T) {
	tests := []struct {
		name     string
		strategy Strategy
		want     map[int64]string
	}{
		{name: "lowest price", strategy: LowestPrice, want: map[int64]string{1: "5", 2: "10", 3: "0"}},
		{name: "highest price", strategy: HighestPrice, want: map[int64]string{1: "5", 2: "0", 3: "10"}},
		{name: "first in", strategy: FirstIn, want: map[int64]string{1: "0", 2: "10", 3: "5"}},
		{name: "last in", strategy: LastIn, want: map[int64]string{1: "10", 2: "0", 3: "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// prices [5, 3, 8], dates [day-3, day-1, day-2]
			lots := []*model.Lot{
				newLot(1, day(3), "5", "10", "0"),
				newLot(2, day(1), "3", "10", "0"),
				newLot(3, day(2), "8", "10", "0"),
			}

			result := tt.strategy.AllocateLots(lots, d("15"))

			assert.Equal(t, tt.want, allocatedByID(lots))
			assert.Equal(t, "15", result.Allocated().String())
			assert.False(t, result.HasShortfall())
		})
	}
}

func TestAllocateLots_LowestPriceFirst(t *testing.T) {
	lots := []*model.Lot{
		newLot(1, day(1), "5", "10", "0"),
		newLot(2, day(2), "3", "10", "0"),
		newLot(3, day(3), "8", "10", "0"),
	}

	result := LowestPrice.AllocateLots(lots, d("15"))

	require.Len(t, result.Allocations, 2)
	assert.Equal(t, int64(2), result.Allocations[0].LotID)
	assert.Equal(t, "10", result.Allocations[0].Shares.String())
	assert.Equal(t, int64(1), result.Allocations[1].LotID)
	assert.Equal(t, "5", result.Allocations[1].Shares.String())
	assert.Equal(t, "0", lots[2].AllocatedShares.String())
}

func TestAllocateLots_FirstInFirstOut(t *testing.T) {
	// the lot labeled day-3 is the oldest purchase
	lots := []*model.Lot{
		newLot(3, day(1), "1", "10", "0"),
		newLot(1, day(3), "1", "10", "0"),
		newLot(2, day(2), "1", "10", "0"),
	}

	FirstIn.AllocateLots(lots, d("15"))

	assert.Equal(t, map[int64]string{3: "10", 2: "5", 1: "0"}, allocatedByID(lots))
}

func TestAllocateLots_Idempotent(t *testing.T) {
	lots := []*model.Lot{
		newLot(1, day(1), "5", "10", "0"),
		newLot(2, day(2), "3", "10", "0"),
	}

	first := FirstIn.AllocateLots(lots, d("12"))
	after := allocatedByID(lots)
	second := FirstIn.AllocateLots(lots, d("12"))

	assert.Len(t, first.Allocations, 2)
	assert.Empty(t, second.Allocations)
	assert.True(t, second.Requested.IsZero())
	assert.Equal(t, after, allocatedByID(lots))
}

func TestAllocateLots_CumulativeTarget(t *testing.T) {
	lots := []*model.Lot{
		newLot(1, day(1), "5", "10", "4"),
		newLot(2, day(2), "3", "10", "0"),
	}

	result := FirstIn.AllocateLots(lots, d("9"))

	assert.Equal(t, "5", result.Requested.String())
	assert.Equal(t, map[int64]string{1: "9", 2: "0"}, allocatedByID(lots))
}

func TestAllocateLots_OverSatisfiedIsNoop(t *testing.T) {
	lots := []*model.Lot{newLot(1, day(1), "5", "10", "8")}

	result := HighestPrice.AllocateLots(lots, d("3"))

	assert.Empty(t, result.Allocations)
	assert.True(t, result.Shortfall.IsZero())
	assert.Equal(t, "8", lots[0].AllocatedShares.String())
}

func TestAllocateLots_SkipsFullyAllocatedLots(t *testing.T) {
	lots := []*model.Lot{
		newLot(1, day(1), "1", "10", "10"),
		newLot(2, day(2), "2", "10", "0"),
	}

	result := LowestPrice.AllocateLots(lots, d("14"))

	require.Len(t, result.Allocations, 1)
	assert.Equal(t, int64(2), result.Allocations[0].LotID)
	assert.Equal(t, map[int64]string{1: "10", 2: "4"}, allocatedByID(lots))
}

func TestAllocateLots_InsufficientShares(t *testing.T) {
	lots := []*model.Lot{
		newLot(1, day(1), "5", "10", "0"),
		newLot(2, day(2), "3", "2.5", "0"),
	}

	result := FirstIn.AllocateLots(lots, d("20"))

	assert.True(t, sumRemaining(lots).IsZero())
	assert.Equal(t, "12.5", result.Allocated().String())
	assert.Equal(t, "7.5", result.Shortfall.String())
	assert.True(t, result.HasShortfall())
	assert.Equal(t, "7.5", d("20").Sub(sumAllocated(lots)).String())
}

func TestAllocateLots_Conservation(t *testing.T) {
	requests := []string{"0", "3", "10.5", "17", "25", "40"}

	for _, strategy := range Strategies() {
		for _, shares := range requests {
			t.Run(strategy.String()+"/"+shares, func(t *testing.T) {
				lots := []*model.Lot{
					newLot(1, day(4), "7.25", "10", "2"),
					newLot(2, day(1), "3.10", "5.5", "0"),
					newLot(3, day(9), "4", "8", "8"),
					newLot(4, day(2), "9.99", "12", "1.5"),
				}
				before := sumAllocated(lots)
				remainingBefore := sumRemaining(lots)

				result := strategy.AllocateLots(lots, d(shares))

				want := decimal.Min(d(shares).Sub(before), remainingBefore)
				want = decimal.Max(want, decimal.Zero)
				assert.True(t, want.Equal(sumAllocated(lots).Sub(before)), "allocated %s, want %s", sumAllocated(lots).Sub(before), want)
				assert.True(t, want.Equal(result.Allocated()))
				for _, lot := range lots {
					assert.False(t, lot.RemainingShares().IsNegative(), "lot %d over-allocated", lot.ID)
				}
			})
		}
	}
}

func TestAllocateLots_ExactDecimals(t *testing.T) {
	lots := []*model.Lot{
		newLot(1, day(1), "1", "0.1", "0"),
		newLot(2, day(2), "1", "0.2", "0"),
		newLot(3, day(3), "1", "0.3", "0"),
	}

	result := FirstIn.AllocateLots(lots, d("0.6"))

	assert.True(t, d("0.6").Equal(sumAllocated(lots)))
	assert.True(t, result.Shortfall.IsZero())
	assert.Len(t, result.Allocations, 3)
}

func TestAllocateLots_TiesKeepInputOrder(t *testing.T) {
	lots := []*model.Lot{
		newLot(5, day(1), "4", "10", "0"),
		newLot(6, day(1), "4", "10", "0"),
		newLot(7, day(1), "4", "10", "0"),
	}

	result := LowestPrice.AllocateLots(lots, d("15"))

	require.Len(t, result.Allocations, 2)
	assert.Equal(t, int64(5), result.Allocations[0].LotID)
	assert.Equal(t, int64(6), result.Allocations[1].LotID)
}

func TestPlan_DoesNotModifyLots(t *testing.T) {
	lots := []model.Lot{
		*newLot(1, day(1), "5", "10", "0"),
		*newLot(2, day(2), "3", "10", "0"),
	}

	result := LowestPrice.Plan(lots, d("12"))

	require.Len(t, result.Allocations, 2)
	assert.Equal(t, 1, result.Allocations[0].Index)
	assert.Equal(t, 0, result.Allocations[1].Index)
	assert.True(t, lots[0].AllocatedShares.IsZero())
	assert.True(t, lots[1].AllocatedShares.IsZero())
}

func TestPlan_EmptyLots(t *testing.T) {
	result := FirstIn.Plan(nil, d("5"))

	assert.Empty(t, result.Allocations)
	assert.Equal(t, "5", result.Shortfall.String())
}
