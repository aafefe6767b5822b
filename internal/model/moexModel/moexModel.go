package moexModel

import "github.com/shopspring/decimal"

// Table is the ISS column oriented block: every row of Data has one value per column.
type Table struct {
	Columns []string `json:"columns"`
	Data    [][]any  `json:"data"`
}

type RawSecurities struct {
	Securities Table `json:"securities"`
}

type RawSplits struct {
	Splits Table `json:"splits"`
}

type SecurityInfo struct {
	Ticker    string
	Shortname string
}

// Split is one row of the ISS splits statistics: Before shares became After shares on TradeDate.
type Split struct {
	Ticker    string
	TradeDate string
	Before    decimal.Decimal
	After     decimal.Decimal
}
