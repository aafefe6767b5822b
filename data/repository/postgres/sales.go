package postgres

import (
	"context"

	"github.com/KotFed0t/lot_allocator/internal/converter/dbConverter"
	"github.com/KotFed0t/lot_allocator/internal/model"
	"github.com/KotFed0t/lot_allocator/internal/model/dbModel"
)

func (r *Postgres) InsertSale(ctx context.Context, sale model.Sale) (saleID int64, err error) {
	op := "Postgres.InsertSale"
	query := `
		INSERT INTO sales (ticker, sale_date, shares, price, strategy)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING sale_id
	`

	logStart(ctx, op, query, sale.Ticker, sale.SaleDate, sale.Shares, sale.Price, sale.Strategy)
	defer func() { logDone(ctx, op, err) }()

	err = r.txOrDb(ctx).QueryRowxContext(ctx, query, sale.Ticker, sale.SaleDate, sale.Shares, sale.Price, sale.Strategy).Scan(&saleID)
	if err != nil {
		return 0, mapErr(err)
	}

	return saleID, nil
}

func (r *Postgres) InsertSaleAllocations(ctx context.Context, allocations []model.SaleAllocation) (err error) {
	if len(allocations) == 0 {
		return nil
	}

	op := "Postgres.InsertSaleAllocations"
	query := `
		INSERT INTO sale_allocations (sale_id, lot_id, shares, purchase_shares, cost, proceeds, gain)
		VALUES (:sale_id, :lot_id, :shares, :purchase_shares, :cost, :proceeds, :gain)
	`

	rows := make([]dbModel.SaleAllocation, 0, len(allocations))
	for _, allocation := range allocations {
		rows = append(rows, dbConverter.ToDbSaleAllocation(allocation))
	}

	logStart(ctx, op, query, len(rows))
	defer func() { logDone(ctx, op, err) }()

	_, err = r.txOrDb(ctx).NamedExecContext(ctx, query, rows)
	return mapErr(err)
}

// GetRealizedGains returns every sale allocation joined with its sale and lot, newest sale first.
func (r *Postgres) GetRealizedGains(ctx context.Context) (gains []model.RealizedGain, err error) {
	op := "Postgres.GetRealizedGains"
	query := `
		SELECT
			s.ticker,
			sec.shortname,
			s.sale_date,
			l.purchase_date,
			s.strategy,
			a.shares,
			a.purchase_shares,
			l.purchase_price,
			s.price AS sale_price,
			a.cost,
			a.proceeds,
			a.gain
		FROM sale_allocations a
		JOIN sales s USING (sale_id)
		JOIN lots l USING (lot_id)
		JOIN securities sec ON sec.ticker = s.ticker
		ORDER BY s.sale_date DESC, s.sale_id DESC, l.purchase_date
	`

	logStart(ctx, op, query)
	defer func() { logDone(ctx, op, err) }()

	var rows []dbModel.RealizedGain
	err = r.txOrDb(ctx).SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, mapErr(err)
	}

	gains = make([]model.RealizedGain, 0, len(rows))
	for _, row := range rows {
		gains = append(gains, dbConverter.ConvertRealizedGain(row))
	}

	return gains, nil
}
