package dbModel

import (
	"time"

	"github.com/shopspring/decimal"
)

type SaleAllocation struct {
	SaleID         int64           `db:"sale_id"`
	LotID          int64           `db:"lot_id"`
	Shares         decimal.Decimal `db:"shares"`
	PurchaseShares decimal.Decimal `db:"purchase_shares"`
	Cost           decimal.Decimal `db:"cost"`
	Proceeds       decimal.Decimal `db:"proceeds"`
	Gain           decimal.Decimal `db:"gain"`
}

type RealizedGain struct {
	Ticker         string          `db:"ticker"`
	Shortname      string          `db:"shortname"`
	SaleDate       time.Time       `db:"sale_date"`
	PurchaseDate   time.Time       `db:"purchase_date"`
	Strategy       string          `db:"strategy"`
	Shares         decimal.Decimal `db:"shares"`
	PurchaseShares decimal.Decimal `db:"purchase_shares"`
	PurchasePrice  decimal.Decimal `db:"purchase_price"`
	SalePrice      decimal.Decimal `db:"sale_price"`
	Cost           decimal.Decimal `db:"cost"`
	Proceeds       decimal.Decimal `db:"proceeds"`
	Gain           decimal.Decimal `db:"gain"`
}
