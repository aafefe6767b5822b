package telegram

import (
	"testing"
	"time"

	"github.com/KotFed0t/lot_allocator/internal/allocation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBuyArgs(t *testing.T) {
	req, err := parseBuyArgs([]string{"sber", "10", "250,5", "2024-03-01"})
	require.NoError(t, err)

	assert.Equal(t, "SBER", req.Ticker)
	assert.Equal(t, "10", req.Shares.String())
	assert.Equal(t, "250.5", req.Price.String())
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), req.Date)

	req, err = parseBuyArgs([]string{"SBER", "1", "300"})
	require.NoError(t, err)
	assert.True(t, req.Date.IsZero())
}

func TestParseBuyArgs_Errors(t *testing.T) {
	tests := [][]string{
		nil,
		{"SBER", "10"},
		{"SBER", "ten", "250"},
		{"SBER", "10", "250", "01.03.2024"},
		{"SBER", "10", "250", "2024-03-01", "extra"},
	}

	for _, args := range tests {
		_, err := parseBuyArgs(args)
		assert.Error(t, err, args)
	}
}

func TestParseSellArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		date     time.Time
		strategy string
	}{
		{name: "required only", args: []string{"gazp", "5", "130"}},
		{name: "date", args: []string{"gazp", "5", "130", "2024-05-20"}, date: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)},
		{name: "strategy", args: []string{"gazp", "5", "130", "LIFO"}, strategy: "lifo"},
		{
			name:     "strategy then date",
			args:     []string{"gazp", "5", "130", "highest", "2024-05-20"},
			date:     time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
			strategy: "highest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := parseSellArgs(tt.args)
			require.NoError(t, err)

			assert.Equal(t, "GAZP", req.Ticker)
			assert.Equal(t, "5", req.Shares.String())
			assert.Equal(t, "130", req.Price.String())
			assert.Equal(t, tt.date, req.Date)
			assert.Equal(t, tt.strategy, req.Strategy)
		})
	}
}

func TestParseSellArgs_UnknownStrategy(t *testing.T) {
	_, err := parseSellArgs([]string{"GAZP", "5", "130", "cheapest"})
	assert.ErrorIs(t, err, allocation.ErrUnknownStrategy)
}

func TestParsePreviewData(t *testing.T) {
	req, err := parsePreviewData("SBER|12.5|lowest", "|")
	require.NoError(t, err)

	assert.Equal(t, "SBER", req.Ticker)
	assert.Equal(t, "12.5", req.Shares.String())
	assert.Equal(t, "lowest", req.Strategy)
}
