package xslsxGenerator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KotFed0t/lot_allocator/internal/model"
	"github.com/KotFed0t/lot_allocator/utils"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	gainsSheet   = "Сделки"
	summarySheet = "Итого"
	dateFormat   = "2006-01-02"
)

type XSLSXGenerator struct{}

func New() *XSLSXGenerator {
	return &XSLSXGenerator{}
}

// Generate builds the realized gains workbook: one row per sale allocation and a per-ticker summary.
func (g *XSLSXGenerator) Generate(ctx context.Context, gains []model.RealizedGain) (fileBytes []byte, fileExtension string, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "XSLSXGenerator.Generate"

	if len(gains) == 0 {
		return nil, "", errors.New("empty realized gains")
	}

	slog.Debug("Generate start", slog.String("rqID", rqID), slog.String("op", op), slog.Int("rows", len(gains)))

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("got error while closing file", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		}
	}()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{"#cfe2f3"},
		},
	})
	if err != nil {
		return nil, "", err
	}

	if err = g.fillGainsSheet(f, gains, headerStyle); err != nil {
		slog.Error("got error while filling gains sheet", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	if err = g.fillSummarySheet(f, gains, headerStyle); err != nil {
		slog.Error("got error while filling summary sheet", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		slog.Error("got error while deleting Sheet1", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		slog.Error("got error while Saving file to bytes buffer", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	slog.Debug("Generate completed", slog.String("rqID", rqID), slog.String("op", op))

	return buf.Bytes(), ".xlsx", nil
}

func (g *XSLSXGenerator) fillGainsSheet(f *excelize.File, gains []model.RealizedGain, headerStyle int) error {
	if _, err := f.NewSheet(gainsSheet); err != nil {
		return err
	}

	headers := []string{
		"тикер", "название", "дата продажи", "дата покупки", "стратегия",
		"кол-во", "кол-во на дату покупки", "цена покупки", "цена продажи",
		"себестоимость", "выручка", "прибыль",
	}
	if err := f.SetSheetRow(gainsSheet, "A1", &headers); err != nil {
		return err
	}
	if err := f.SetCellStyle(gainsSheet, "A1", "L1", headerStyle); err != nil {
		return fmt.Errorf("set header style: %w", err)
	}

	for i, gain := range gains {
		row := []any{
			gain.Ticker,
			gain.Shortname,
			gain.SaleDate.Format(dateFormat),
			gain.PurchaseDate.Format(dateFormat),
			gain.Strategy,
			gain.Shares.InexactFloat64(),
			gain.PurchaseShares.InexactFloat64(),
			gain.PurchasePrice.InexactFloat64(),
			gain.SalePrice.InexactFloat64(),
			gain.Cost.InexactFloat64(),
			gain.Proceeds.InexactFloat64(),
			gain.Gain.InexactFloat64(),
		}
		if err := f.SetSheetRow(gainsSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}

	return f.AutoFilter(gainsSheet, fmt.Sprintf("A1:L%d", len(gains)+1), nil)
}

type tickerTotals struct {
	ticker   string
	cost     decimal.Decimal
	proceeds decimal.Decimal
	gain     decimal.Decimal
}

func (g *XSLSXGenerator) fillSummarySheet(f *excelize.File, gains []model.RealizedGain, headerStyle int) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	headers := []string{"тикер", "себестоимость", "выручка", "прибыль"}
	if err := f.SetSheetRow(summarySheet, "A1", &headers); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A1", "D1", headerStyle); err != nil {
		return fmt.Errorf("set header style: %w", err)
	}

	totals := summarize(gains)
	for i, t := range totals {
		row := []any{t.ticker, t.cost.InexactFloat64(), t.proceeds.InexactFloat64(), t.gain.InexactFloat64()}
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}

	totalRow := len(totals) + 2
	_ = f.SetCellStr(summarySheet, fmt.Sprintf("A%d", totalRow), "всего")
	for _, col := range []string{"B", "C", "D"} {
		formula := fmt.Sprintf("SUM(%s2:%s%d)", col, col, totalRow-1)
		if err := f.SetCellFormula(summarySheet, fmt.Sprintf("%s%d", col, totalRow), formula); err != nil {
			return err
		}
	}

	return nil
}

// summarize keeps tickers in order of first appearance.
func summarize(gains []model.RealizedGain) []tickerTotals {
	var totals []tickerTotals
	index := make(map[string]int)

	for _, gain := range gains {
		i, ok := index[gain.Ticker]
		if !ok {
			i = len(totals)
			index[gain.Ticker] = i
			totals = append(totals, tickerTotals{ticker: gain.Ticker})
		}
		totals[i].cost = totals[i].cost.Add(gain.Cost)
		totals[i].proceeds = totals[i].proceeds.Add(gain.Proceeds)
		totals[i].gain = totals[i].gain.Add(gain.Gain)
	}

	return totals
}
