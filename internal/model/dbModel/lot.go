package dbModel

import (
	"time"

	"github.com/shopspring/decimal"
)

type Security struct {
	Ticker    string `db:"ticker"`
	Shortname string `db:"shortname"`
	Scale     int32  `db:"scale"`
}

type Lot struct {
	LotID           int64           `db:"lot_id"`
	Ticker          string          `db:"ticker"`
	PurchaseDate    time.Time       `db:"purchase_date"`
	PurchasePrice   decimal.Decimal `db:"purchase_price"`
	Shares          decimal.Decimal `db:"shares"`
	AllocatedShares decimal.Decimal `db:"allocated_shares"`
}

type StockSplit struct {
	Ticker    string          `db:"ticker"`
	SplitDate time.Time       `db:"split_date"`
	SharesIn  decimal.Decimal `db:"shares_in"`
	SharesOut decimal.Decimal `db:"shares_out"`
}
