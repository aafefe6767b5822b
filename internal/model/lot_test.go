package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLot_Allocate(t *testing.T) {
	lot := Lot{ID: 1, TotalShares: d("10"), AllocatedShares: d("4")}

	left := lot.Allocate(d("5"))

	assert.True(t, left.IsZero())
	assert.Equal(t, "9", lot.AllocatedShares.String())
	assert.Equal(t, "1", lot.RemainingShares().String())

	left = lot.Allocate(d("3"))

	assert.Equal(t, "2", left.String())
	assert.Equal(t, "10", lot.AllocatedShares.String())
	assert.True(t, lot.RemainingShares().IsZero())
}

func TestLot_AllocateFullyAllocated(t *testing.T) {
	lot := Lot{ID: 1, TotalShares: d("10"), AllocatedShares: d("10")}

	left := lot.Allocate(d("2.5"))

	assert.Equal(t, "2.5", left.String())
	assert.Equal(t, "10", lot.AllocatedShares.String())
}

func TestAllocationResult_Apply(t *testing.T) {
	lots := []*Lot{
		{ID: 7, TotalShares: d("10"), AllocatedShares: d("0")},
		{ID: 8, TotalShares: d("10"), AllocatedShares: d("1")},
	}
	result := AllocationResult{
		Requested: d("6"),
		Allocations: []LotAllocation{
			{LotID: 8, Index: 1, Shares: d("4")},
			{LotID: 7, Index: 0, Shares: d("2")},
		},
		Shortfall: d("0"),
	}

	result.Apply(lots)

	assert.Equal(t, "2", lots[0].AllocatedShares.String())
	assert.Equal(t, "5", lots[1].AllocatedShares.String())
	assert.Equal(t, "6", result.Allocated().String())
	assert.False(t, result.HasShortfall())
}
