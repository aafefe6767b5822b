package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/KotFed0t/lot_allocator/data/repository"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapErr(t *testing.T) {
	other := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil", err: nil, want: nil},
		{name: "no rows", err: fmt.Errorf("scan: %w", sql.ErrNoRows), want: repository.ErrNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: repository.ErrAlreadyExists},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503", ConstraintName: "lots_ticker_fkey"}, want: repository.ErrNotFound},
		{name: "other", err: other, want: other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapErr(tt.err)

			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}
