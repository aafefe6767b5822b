package moexApi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KotFed0t/lot_allocator/config"
	"github.com/KotFed0t/lot_allocator/internal/externalApi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApi(t *testing.T, handler http.HandlerFunc) *MoexApi {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.API.Timeout = 5 * time.Second
	cfg.API.MoexApi.Url = srv.URL

	return New(cfg)
}

func TestGetSplits(t *testing.T) {
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/iss/statistics/engines/stock/splits/GMKN.json", r.URL.Path)
		assert.Equal(t, "off", r.URL.Query().Get("iss.meta"))
		_, _ = w.Write([]byte(`{"splits": {
			"columns": ["tradedate", "secid", "before", "after"],
			"data": [["2024-04-04", "GMKN", 1, 100], ["2010-01-02", "GMKN", 3, 1]]
		}}`))
	})

	splits, err := api.GetSplits(t.Context(), "GMKN")
	require.NoError(t, err)
	require.Len(t, splits, 2)

	assert.Equal(t, "GMKN", splits[0].Ticker)
	assert.Equal(t, time.Date(2024, 4, 4, 0, 0, 0, 0, time.UTC), splits[0].Date)
	assert.Equal(t, "1", splits[0].Ratio.SharesIn.String())
	assert.Equal(t, "100", splits[0].Ratio.SharesOut.String())
	assert.Equal(t, "3", splits[1].Ratio.SharesIn.String())
	assert.Equal(t, "1", splits[1].Ratio.SharesOut.String())
}

func TestGetSplits_Empty(t *testing.T) {
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"splits": {"columns": ["tradedate", "secid", "before", "after"], "data": []}}`))
	})

	splits, err := api.GetSplits(t.Context(), "SBER")
	require.NoError(t, err)
	assert.Empty(t, splits)
}

func TestGetSplits_InvalidRows(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "short row",
			body: `{"splits": {"columns": ["tradedate", "secid", "before", "after"], "data": [["2024-04-04", "GMKN", 1]]}}`,
		},
		{
			name: "zero ratio",
			body: `{"splits": {"columns": ["tradedate", "secid", "before", "after"], "data": [["2024-04-04", "GMKN", 0, 100]]}}`,
		},
		{
			name: "bad date",
			body: `{"splits": {"columns": ["tradedate", "secid", "before", "after"], "data": [["04.04.2024", "GMKN", 1, 100]]}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := api.GetSplits(t.Context(), "GMKN")
			assert.Error(t, err)
		})
	}
}

func TestGetSecurityInfo(t *testing.T) {
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "SBER", r.URL.Query().Get("securities"))
		_, _ = w.Write([]byte(`{"securities": {"columns": ["SECID", "SHORTNAME"], "data": [["SBER", "Сбербанк"]]}}`))
	})

	info, err := api.GetSecurityInfo(t.Context(), "SBER")
	require.NoError(t, err)
	assert.Equal(t, "SBER", info.Ticker)
	assert.Equal(t, "Сбербанк", info.Shortname)
}

func TestGetSecurityInfo_NotFound(t *testing.T) {
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"securities": {"columns": ["SECID", "SHORTNAME"], "data": []}}`))
	})

	_, err := api.GetSecurityInfo(t.Context(), "NOPE")
	assert.ErrorIs(t, err, externalApi.ErrNotFound)
}

func TestGetSplits_ServerError(t *testing.T) {
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := api.GetSplits(t.Context(), "GMKN")
	assert.Error(t, err)
}
