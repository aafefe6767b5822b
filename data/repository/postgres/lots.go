package postgres

import (
	"context"

	"github.com/KotFed0t/lot_allocator/internal/converter/dbConverter"
	"github.com/KotFed0t/lot_allocator/internal/model"
	"github.com/KotFed0t/lot_allocator/internal/model/dbModel"
	"github.com/shopspring/decimal"
)

func (r *Postgres) InsertLot(ctx context.Context, lot model.Lot) (lotID int64, err error) {
	op := "Postgres.InsertLot"
	query := `
		INSERT INTO lots (ticker, purchase_date, purchase_price, shares, allocated_shares)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING lot_id
	`

	logStart(ctx, op, query, lot.Ticker, lot.PurchaseDate, lot.PurchasePrice, lot.TotalShares)
	defer func() { logDone(ctx, op, err) }()

	err = r.txOrDb(ctx).QueryRowxContext(
		ctx,
		query,
		lot.Ticker,
		lot.PurchaseDate,
		lot.PurchasePrice,
		lot.TotalShares,
		lot.AllocatedShares,
	).Scan(&lotID)
	if err != nil {
		return 0, mapErr(err)
	}

	return lotID, nil
}

// GetOpenLots returns the lots of ticker that still have unallocated shares, in purchase-date units.
func (r *Postgres) GetOpenLots(ctx context.Context, ticker string) ([]model.Lot, error) {
	query := `
		SELECT lot_id, ticker, purchase_date, purchase_price, shares, allocated_shares
		FROM lots
		WHERE ticker = $1
		AND allocated_shares < shares
		ORDER BY lot_id
	`

	return r.getLots(ctx, "Postgres.GetOpenLots", query, ticker)
}

// GetOpenLotsForUpdate is GetOpenLots holding row locks until the surrounding transaction ends.
func (r *Postgres) GetOpenLotsForUpdate(ctx context.Context, ticker string) ([]model.Lot, error) {
	query := `
		SELECT lot_id, ticker, purchase_date, purchase_price, shares, allocated_shares
		FROM lots
		WHERE ticker = $1
		AND allocated_shares < shares
		ORDER BY lot_id
		FOR UPDATE
	`

	return r.getLots(ctx, "Postgres.GetOpenLotsForUpdate", query, ticker)
}

func (r *Postgres) getLots(ctx context.Context, op, query, ticker string) (lots []model.Lot, err error) {
	logStart(ctx, op, query, ticker)
	defer func() { logDone(ctx, op, err) }()

	rows, err := r.txOrDb(ctx).QueryxContext(ctx, query, ticker)
	if err != nil {
		return nil, mapErr(err)
	}

	defer rows.Close()

	for rows.Next() {
		var lot dbModel.Lot
		err = rows.StructScan(&lot)
		if err != nil {
			return nil, err
		}
		lots = append(lots, dbConverter.ConvertLot(lot))
	}

	return lots, rows.Err()
}

// UpdateLotAllocatedShares stores the new allocated amount, in purchase-date units.
func (r *Postgres) UpdateLotAllocatedShares(ctx context.Context, lotID int64, allocatedShares decimal.Decimal) (err error) {
	op := "Postgres.UpdateLotAllocatedShares"
	query := `UPDATE lots SET allocated_shares = $1 WHERE lot_id = $2`

	logStart(ctx, op, query, lotID, allocatedShares)
	defer func() { logDone(ctx, op, err) }()

	res, err := r.txOrDb(ctx).ExecContext(ctx, query, allocatedShares, lotID)
	if err != nil {
		return mapErr(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return mapErr(errNoRowsAffected(lotID))
	}

	return nil
}
