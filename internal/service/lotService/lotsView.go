package lotService

import (
	"time"

	"github.com/KotFed0t/lot_allocator/internal/model"
	"github.com/shopspring/decimal"
)

// lotsView holds open lots as seen on one date. lots[i] is stored[i] with the
// splits between its purchase date and that date applied by ratios[i].
type lotsView struct {
	stored []model.Lot
	lots   []model.Lot
	ratios []model.SplitRatio
}

// adjustLots drops lots purchased after asOf, shares can't be sold before they are bought.
func adjustLots(stored []model.Lot, splits []model.StockSplit, asOf time.Time, scale int32) lotsView {
	view := lotsView{}

	for _, lot := range stored {
		if lot.PurchaseDate.After(asOf) {
			continue
		}

		ratio := model.SplitRatioBetween(splits, lot.PurchaseDate, asOf)

		adjusted := lot
		if !ratio.IsIdentity() {
			adjusted.TotalShares = ratio.Apply(lot.TotalShares, scale)
			adjusted.AllocatedShares = ratio.Apply(lot.AllocatedShares, scale)
			adjusted.PurchasePrice = ratio.AdjustPrice(lot.PurchasePrice, scale)
		}

		view.stored = append(view.stored, lot)
		view.lots = append(view.lots, adjusted)
		view.ratios = append(view.ratios, ratio)
	}

	return view
}

// saleAllocation converts one planned allocation back to purchase-date units.
// It returns the allocation and the lot's new stored allocated shares.
func (v lotsView) saleAllocation(a model.LotAllocation, salePrice decimal.Decimal, scale int32) (model.SaleAllocation, decimal.Decimal) {
	stored := v.stored[a.Index]
	adjusted := v.lots[a.Index]
	ratio := v.ratios[a.Index]

	purchaseShares := ratio.Revert(a.Shares, scale)
	if a.Shares.Equal(adjusted.RemainingShares()) || purchaseShares.GreaterThan(stored.RemainingShares()) {
		// the split rounding must not leave dust behind or overshoot the lot
		purchaseShares = stored.RemainingShares()
	}

	cost := stored.PurchasePrice.Mul(purchaseShares).RoundBank(scale)
	proceeds := salePrice.Mul(a.Shares).RoundBank(scale)

	return model.SaleAllocation{
		LotID:          stored.ID,
		PurchaseDate:   stored.PurchaseDate,
		PurchasePrice:  adjusted.PurchasePrice,
		Shares:         a.Shares,
		PurchaseShares: purchaseShares,
		Cost:           cost,
		Proceeds:       proceeds,
		Gain:           proceeds.Sub(cost),
	}, stored.AllocatedShares.Add(purchaseShares)
}
