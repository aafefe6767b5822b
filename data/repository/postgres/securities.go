package postgres

import (
	"context"

	"github.com/KotFed0t/lot_allocator/internal/converter/dbConverter"
	"github.com/KotFed0t/lot_allocator/internal/model"
	"github.com/KotFed0t/lot_allocator/internal/model/dbModel"
)

// UpsertSecurity registers the security, an empty shortname keeps the stored one.
func (r *Postgres) UpsertSecurity(ctx context.Context, security model.Security) (err error) {
	op := "Postgres.UpsertSecurity"
	query := `
		INSERT INTO securities (ticker, shortname, scale)
		VALUES ($1, $2, $3)
		ON CONFLICT (ticker) DO UPDATE SET
			shortname = COALESCE(NULLIF(EXCLUDED.shortname, ''), securities.shortname)
	`

	scale := security.Scale
	if scale <= 0 {
		scale = model.DefaultScale
	}

	logStart(ctx, op, query, security.Ticker, security.Shortname, scale)
	defer func() { logDone(ctx, op, err) }()

	_, err = r.txOrDb(ctx).ExecContext(ctx, query, security.Ticker, security.Shortname, scale)
	return mapErr(err)
}

func (r *Postgres) GetSecurity(ctx context.Context, ticker string) (security model.Security, err error) {
	op := "Postgres.GetSecurity"
	query := `SELECT ticker, shortname, scale FROM securities WHERE ticker = $1`

	logStart(ctx, op, query, ticker)
	defer func() { logDone(ctx, op, err) }()

	dbSecurity := dbModel.Security{}
	err = r.txOrDb(ctx).GetContext(ctx, &dbSecurity, query, ticker)
	if err != nil {
		return model.Security{}, mapErr(err)
	}

	return dbConverter.ConvertSecurity(dbSecurity), nil
}

func (r *Postgres) GetSecurities(ctx context.Context) (securities []model.Security, err error) {
	op := "Postgres.GetSecurities"
	query := `SELECT ticker, shortname, scale FROM securities ORDER BY ticker`

	logStart(ctx, op, query)
	defer func() { logDone(ctx, op, err) }()

	var rows []dbModel.Security
	err = r.txOrDb(ctx).SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, mapErr(err)
	}

	securities = make([]model.Security, 0, len(rows))
	for _, row := range rows {
		securities = append(securities, dbConverter.ConvertSecurity(row))
	}

	return securities, nil
}
