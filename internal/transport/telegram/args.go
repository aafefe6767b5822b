package telegram

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KotFed0t/lot_allocator/internal/allocation"
	"github.com/KotFed0t/lot_allocator/internal/model"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

var errUsage = errors.New("wrong command arguments")

// parseBuyArgs parses "TICKER SHARES PRICE [YYYY-MM-DD]".
func parseBuyArgs(args []string) (model.PurchaseRequest, error) {
	if len(args) < 3 || len(args) > 4 {
		return model.PurchaseRequest{}, errUsage
	}

	req := model.PurchaseRequest{Ticker: strings.ToUpper(args[0])}

	var err error
	if req.Shares, err = parseDecimal(args[1]); err != nil {
		return model.PurchaseRequest{}, err
	}
	if req.Price, err = parseDecimal(args[2]); err != nil {
		return model.PurchaseRequest{}, err
	}
	if len(args) == 4 {
		if req.Date, err = parseDate(args[3]); err != nil {
			return model.PurchaseRequest{}, err
		}
	}

	return req, nil
}

// parseSellArgs parses "TICKER SHARES PRICE [YYYY-MM-DD] [strategy]".
// The date and the strategy may come in any order.
func parseSellArgs(args []string) (model.SaleRequest, error) {
	if len(args) < 3 || len(args) > 5 {
		return model.SaleRequest{}, errUsage
	}

	req := model.SaleRequest{Ticker: strings.ToUpper(args[0])}

	var err error
	if req.Shares, err = parseDecimal(args[1]); err != nil {
		return model.SaleRequest{}, err
	}
	if req.Price, err = parseDecimal(args[2]); err != nil {
		return model.SaleRequest{}, err
	}

	for _, arg := range args[3:] {
		if date, err := time.Parse(dateLayout, arg); err == nil {
			req.Date = date
			continue
		}
		strategy, err := allocation.ParseStrategy(arg)
		if err != nil {
			return model.SaleRequest{}, fmt.Errorf("%q is neither a date nor a strategy: %w", arg, err)
		}
		req.Strategy = strategy.String()
	}

	return req, nil
}

// parsePreviewArgs parses "TICKER SHARES [strategy]".
func parsePreviewArgs(args []string) (model.SaleRequest, error) {
	if len(args) < 2 || len(args) > 3 {
		return model.SaleRequest{}, errUsage
	}

	req := model.SaleRequest{Ticker: strings.ToUpper(args[0])}

	var err error
	if req.Shares, err = parseDecimal(args[1]); err != nil {
		return model.SaleRequest{}, err
	}
	if len(args) == 3 {
		strategy, err := allocation.ParseStrategy(args[2])
		if err != nil {
			return model.SaleRequest{}, err
		}
		req.Strategy = strategy.String()
	}

	return req, nil
}

// parsePreviewData is parsePreviewArgs for the callback data of the preview buttons.
func parsePreviewData(data string, sep string) (model.SaleRequest, error) {
	return parsePreviewArgs(strings.Split(data, sep))
}

// parseDecimal accepts both "1.5" and "1,5".
func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid number %q: %w", s, errUsage)
	}
	return d, nil
}

func parseDate(s string) (time.Time, error) {
	date, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, errUsage)
	}
	return date, nil
}
