package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Security struct {
	Ticker    string
	Shortname string
	Scale     int32
}

type Sale struct {
	ID       int64
	Ticker   string
	SaleDate time.Time
	Shares   decimal.Decimal
	Price    decimal.Decimal
	Strategy string
}

// SaleAllocation links a sale to one purchase lot.
// Shares are in sale-date units, PurchaseShares in purchase-date units.
type SaleAllocation struct {
	SaleID         int64
	LotID          int64
	PurchaseDate   time.Time
	PurchasePrice  decimal.Decimal
	Shares         decimal.Decimal
	PurchaseShares decimal.Decimal
	Cost           decimal.Decimal
	Proceeds       decimal.Decimal
	Gain           decimal.Decimal
}

type SaleResult struct {
	Sale        Sale
	Allocations []SaleAllocation
	Cost        decimal.Decimal
	Proceeds    decimal.Decimal
	Gain        decimal.Decimal
}

type SalePreview struct {
	Ticker      string
	SaleDate    time.Time
	Strategy    string
	Lots        []Lot
	Allocations []LotAllocation
	Shortfall   decimal.Decimal
}

// RealizedGain is one row of the realized gains report.
type RealizedGain struct {
	Ticker         string
	Shortname      string
	SaleDate       time.Time
	PurchaseDate   time.Time
	Strategy       string
	Shares         decimal.Decimal
	PurchaseShares decimal.Decimal
	PurchasePrice  decimal.Decimal
	SalePrice      decimal.Decimal
	Cost           decimal.Decimal
	Proceeds       decimal.Decimal
	Gain           decimal.Decimal
}

type PurchaseRequest struct {
	Ticker string
	Date   time.Time
	Shares decimal.Decimal
	Price  decimal.Decimal
}

type SaleRequest struct {
	ChatID int64
	Ticker string
	Date   time.Time
	Shares decimal.Decimal
	Price  decimal.Decimal
	// empty means the chat's default strategy
	Strategy string
}

// Report is a generated realized gains file. Link is set when the file was
// uploaded to cloud storage, otherwise File holds its content.
type Report struct {
	Filename string
	Link     string
	File     []byte
}
