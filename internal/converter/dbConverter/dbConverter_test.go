package dbConverter

import (
	"testing"
	"time"

	"github.com/KotFed0t/lot_allocator/internal/model"
	"github.com/KotFed0t/lot_allocator/internal/model/dbModel"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestConvertLot(t *testing.T) {
	purchased := time.Date(2023, time.May, 2, 0, 0, 0, 0, time.UTC)

	lot := ConvertLot(dbModel.Lot{
		LotID:           42,
		Ticker:          "LKOH",
		PurchaseDate:    purchased,
		PurchasePrice:   decimal.RequireFromString("5120.5"),
		Shares:          decimal.NewFromInt(12),
		AllocatedShares: decimal.NewFromInt(5),
	})

	assert.Equal(t, int64(42), lot.ID)
	assert.Equal(t, purchased, lot.PurchaseDate)
	assert.Equal(t, "12", lot.TotalShares.String())
	assert.Equal(t, "7", lot.RemainingShares().String())
}

func TestConvertStockSplit(t *testing.T) {
	split := ConvertStockSplit(dbModel.StockSplit{
		Ticker:    "GMKN",
		SplitDate: time.Date(2024, time.April, 4, 0, 0, 0, 0, time.UTC),
		SharesIn:  decimal.NewFromInt(1),
		SharesOut: decimal.NewFromInt(100),
	})

	assert.Equal(t, "GMKN", split.Ticker)
	assert.Equal(t, "100", split.Ratio.Ratio(model.DefaultScale).String())
}
