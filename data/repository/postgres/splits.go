package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/KotFed0t/lot_allocator/internal/converter/dbConverter"
	"github.com/KotFed0t/lot_allocator/internal/model"
	"github.com/KotFed0t/lot_allocator/internal/model/dbModel"
)

func (r *Postgres) GetSplits(ctx context.Context, ticker string) (splits []model.StockSplit, err error) {
	op := "Postgres.GetSplits"
	query := `
		SELECT ticker, split_date, shares_in, shares_out
		FROM stock_splits
		WHERE ticker = $1
		ORDER BY split_date
	`

	logStart(ctx, op, query, ticker)
	defer func() { logDone(ctx, op, err) }()

	var rows []dbModel.StockSplit
	err = r.txOrDb(ctx).SelectContext(ctx, &rows, query, ticker)
	if err != nil {
		return nil, mapErr(err)
	}

	splits = make([]model.StockSplit, 0, len(rows))
	for _, row := range rows {
		splits = append(splits, dbConverter.ConvertStockSplit(row))
	}

	return splits, nil
}

func (r *Postgres) UpsertSplits(ctx context.Context, splits []model.StockSplit) (err error) {
	if len(splits) == 0 {
		return nil
	}

	op := "Postgres.UpsertSplits"
	sb := strings.Builder{}
	args := make([]any, 0, len(splits)*4)

	sb.WriteString(`INSERT INTO stock_splits (ticker, split_date, shares_in, shares_out) VALUES `)

	for i, split := range splits {
		args = append(args, split.Ticker, split.Date, split.Ratio.SharesIn, split.Ratio.SharesOut)

		start := i*4 + 1
		sb.WriteString(fmt.Sprintf("($%d, $%d, $%d, $%d)", start, start+1, start+2, start+3))

		if i < len(splits)-1 {
			sb.WriteString(",")
		}
	}

	sb.WriteString(`
		ON CONFLICT (ticker, split_date) DO UPDATE SET
			shares_in = EXCLUDED.shares_in,
			shares_out = EXCLUDED.shares_out
	`)

	logStart(ctx, op, sb.String(), len(splits))
	defer func() { logDone(ctx, op, err) }()

	_, err = r.txOrDb(ctx).ExecContext(ctx, sb.String(), args...)
	return mapErr(err)
}

func errNoRowsAffected(id int64) error {
	return fmt.Errorf("id %d: %w", id, sql.ErrNoRows)
}
