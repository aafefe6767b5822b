package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSumDecimals(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{name: "empty", values: nil, want: "0"},
		{name: "single", values: []string{"12.5"}, want: "12.5"},
		{name: "exact tenths", values: []string{"0.1", "0.2", "0.3"}, want: "0.6"},
		{name: "mixed signs", values: []string{"10", "-2.25", "0.000001"}, want: "7.750001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]decimal.Decimal, 0, len(tt.values))
			for _, v := range tt.values {
				items = append(items, decimal.RequireFromString(v))
			}

			got := SumDecimals(items, func(d decimal.Decimal) decimal.Decimal { return d })

			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestSumDecimals_Extractor(t *testing.T) {
	type holding struct {
		shares decimal.Decimal
	}
	items := []holding{{shares: decimal.NewFromInt(3)}, {shares: decimal.NewFromInt(4)}}

	got := SumDecimals(items, func(h holding) decimal.Decimal { return h.shares })

	assert.Equal(t, "7", got.String())
}

func TestWithRequestID_KeepsExisting(t *testing.T) {
	ctx := WithRequestID(t.Context())
	rqID := GetRequestIDFromCtx(ctx)

	assert.NotEmpty(t, rqID)
	assert.Equal(t, rqID, GetRequestIDFromCtx(WithRequestID(ctx)))
}
