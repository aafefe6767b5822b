package dbConverter

import (
	"github.com/KotFed0t/lot_allocator/internal/model"
	"github.com/KotFed0t/lot_allocator/internal/model/dbModel"
)

func ConvertSecurity(dbSecurity dbModel.Security) model.Security {
	return model.Security{
		Ticker:    dbSecurity.Ticker,
		Shortname: dbSecurity.Shortname,
		Scale:     dbSecurity.Scale,
	}
}

// ConvertLot keeps the stored purchase-date units, split adjustment happens in the service.
func ConvertLot(dbLot dbModel.Lot) model.Lot {
	return model.Lot{
		ID:              dbLot.LotID,
		Ticker:          dbLot.Ticker,
		PurchaseDate:    dbLot.PurchaseDate,
		PurchasePrice:   dbLot.PurchasePrice,
		TotalShares:     dbLot.Shares,
		AllocatedShares: dbLot.AllocatedShares,
	}
}

func ConvertStockSplit(dbSplit dbModel.StockSplit) model.StockSplit {
	return model.StockSplit{
		Ticker: dbSplit.Ticker,
		Date:   dbSplit.SplitDate,
		Ratio:  model.NewSplitRatio(dbSplit.SharesIn, dbSplit.SharesOut),
	}
}

func ConvertRealizedGain(dbGain dbModel.RealizedGain) model.RealizedGain {
	return model.RealizedGain{
		Ticker:         dbGain.Ticker,
		Shortname:      dbGain.Shortname,
		SaleDate:       dbGain.SaleDate,
		PurchaseDate:   dbGain.PurchaseDate,
		Strategy:       dbGain.Strategy,
		Shares:         dbGain.Shares,
		PurchaseShares: dbGain.PurchaseShares,
		PurchasePrice:  dbGain.PurchasePrice,
		SalePrice:      dbGain.SalePrice,
		Cost:           dbGain.Cost,
		Proceeds:       dbGain.Proceeds,
		Gain:           dbGain.Gain,
	}
}

func ToDbSaleAllocation(allocation model.SaleAllocation) dbModel.SaleAllocation {
	return dbModel.SaleAllocation{
		SaleID:         allocation.SaleID,
		LotID:          allocation.LotID,
		Shares:         allocation.Shares,
		PurchaseShares: allocation.PurchaseShares,
		Cost:           allocation.Cost,
		Proceeds:       allocation.Proceeds,
		Gain:           allocation.Gain,
	}
}
