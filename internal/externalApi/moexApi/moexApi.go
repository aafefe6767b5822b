package moexApi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/KotFed0t/lot_allocator/config"
	"github.com/KotFed0t/lot_allocator/internal/externalApi"
	"github.com/KotFed0t/lot_allocator/internal/model"
	"github.com/KotFed0t/lot_allocator/internal/model/moexModel"
	"github.com/KotFed0t/lot_allocator/utils"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

type MoexApi struct {
	client *resty.Client
}

func New(cfg *config.Config) *MoexApi {
	client := resty.New().
		SetDebug(cfg.API.Debug).
		SetTimeout(cfg.API.Timeout).
		SetBaseURL(cfg.API.MoexApi.Url)
	return &MoexApi{client: client}
}

func (a *MoexApi) GetSecurityInfo(ctx context.Context, ticker string) (moexModel.SecurityInfo, error) {
	rqId := utils.GetRequestIDFromCtx(ctx)
	url := "/iss/engines/stock/markets/shares/boards/TQBR/securities.json"
	params := map[string]string{
		"iss.meta":           "off",
		"iss.only":           "securities",
		"securities.columns": "SECID,SHORTNAME",
		"securities":         ticker,
	}

	slog.Debug("start MoexApi.GetSecurityInfo request", slog.String("rqID", rqId), slog.String("ticker", ticker))

	raw := moexModel.RawSecurities{}
	if err := a.get(ctx, url, params, &raw); err != nil {
		slog.Error("MoexApi.GetSecurityInfo request failed", slog.String("err", err.Error()), slog.String("rqID", rqId))
		return moexModel.SecurityInfo{}, err
	}

	var res []moexModel.SecurityInfo
	err := handleTable(raw.Securities, func(row map[string]any) error {
		info := moexModel.SecurityInfo{}
		var ok bool
		if info.Ticker, ok = row["SECID"].(string); !ok {
			return fmt.Errorf("invalid type SECID = %v", row["SECID"])
		}
		if info.Shortname, ok = row["SHORTNAME"].(string); !ok {
			return fmt.Errorf("invalid type SHORTNAME = %v", row["SHORTNAME"])
		}
		res = append(res, info)
		return nil
	})
	if err != nil {
		slog.Error("can't parse raw data", slog.String("err", err.Error()), slog.String("rqID", rqId))
		return moexModel.SecurityInfo{}, err
	}

	if len(res) == 0 {
		return moexModel.SecurityInfo{}, externalApi.ErrNotFound
	}
	if len(res) != 1 {
		return moexModel.SecurityInfo{}, errors.New("unexpected slice length, expected only 1 element")
	}

	slog.Debug("MoexApi.GetSecurityInfo request complete", slog.String("rqID", rqId))

	return res[0], nil
}

// GetSplits returns the splits MOEX has recorded for ticker, oldest first.
func (a *MoexApi) GetSplits(ctx context.Context, ticker string) ([]model.StockSplit, error) {
	rqId := utils.GetRequestIDFromCtx(ctx)
	url := fmt.Sprintf("/iss/statistics/engines/stock/splits/%s.json", ticker)
	params := map[string]string{
		"iss.meta": "off",
	}

	slog.Debug("start MoexApi.GetSplits request", slog.String("rqID", rqId), slog.String("ticker", ticker))

	raw := moexModel.RawSplits{}
	if err := a.get(ctx, url, params, &raw); err != nil {
		slog.Error("MoexApi.GetSplits request failed", slog.String("err", err.Error()), slog.String("rqID", rqId))
		return nil, err
	}

	splits := make([]model.StockSplit, 0, len(raw.Splits.Data))
	err := handleTable(raw.Splits, func(row map[string]any) error {
		split, err := parseSplit(row)
		if err != nil {
			return err
		}

		date, err := time.Parse(time.DateOnly, split.TradeDate)
		if err != nil {
			return fmt.Errorf("invalid tradedate %q: %w", split.TradeDate, err)
		}

		splits = append(splits, model.StockSplit{
			Ticker: ticker,
			Date:   date,
			Ratio:  model.NewSplitRatio(split.Before, split.After),
		})
		return nil
	})
	if err != nil {
		slog.Error("can't parse raw data", slog.String("err", err.Error()), slog.String("rqID", rqId))
		return nil, err
	}

	slog.Debug("MoexApi.GetSplits request complete", slog.String("rqID", rqId), slog.Int("splits", len(splits)))

	return splits, nil
}

func (a *MoexApi) get(ctx context.Context, url string, params map[string]string, dest any) error {
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(params).
		Get(url)
	if err != nil {
		return fmt.Errorf("error while dialing MoexApi: %w", err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return externalApi.ErrNotFound
	}
	if resp.IsError() {
		return fmt.Errorf("unexpected MoexApi status %d", resp.StatusCode())
	}

	decoder := json.NewDecoder(bytes.NewReader(resp.Body()))
	decoder.UseNumber()
	if err = decoder.Decode(dest); err != nil {
		return fmt.Errorf("can't unmarshall MoexApi response: %w", err)
	}

	return nil
}

func handleTable(table moexModel.Table, handleFn func(row map[string]any) error) error {
	for i, data := range table.Data {
		if len(data) != len(table.Columns) {
			return fmt.Errorf("invalid row %d: %d values for %d columns", i, len(data), len(table.Columns))
		}

		row := make(map[string]any, len(table.Columns))
		for j, column := range table.Columns {
			row[column] = data[j]
		}

		if err := handleFn(row); err != nil {
			return err
		}
	}
	return nil
}

func parseSplit(row map[string]any) (moexModel.Split, error) {
	split := moexModel.Split{}
	var ok bool

	if split.Ticker, ok = row["secid"].(string); !ok {
		return moexModel.Split{}, fmt.Errorf("invalid type secid = %v", row["secid"])
	}
	if split.TradeDate, ok = row["tradedate"].(string); !ok {
		return moexModel.Split{}, fmt.Errorf("invalid type tradedate = %v", row["tradedate"])
	}

	var err error
	if split.Before, err = toDecimal(row["before"]); err != nil {
		return moexModel.Split{}, fmt.Errorf("invalid before: %w", err)
	}
	if split.After, err = toDecimal(row["after"]); err != nil {
		return moexModel.Split{}, fmt.Errorf("invalid after: %w", err)
	}

	if split.Before.Sign() <= 0 || split.After.Sign() <= 0 {
		return moexModel.Split{}, fmt.Errorf("non positive split %s:%s", split.Before, split.After)
	}

	return split, nil
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case json.Number:
		return decimal.NewFromString(n.String())
	case string:
		return decimal.NewFromString(n)
	default:
		return decimal.Decimal{}, fmt.Errorf("unexpected type %T", v)
	}
}
