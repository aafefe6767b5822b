package telebotConverter

import (
	"fmt"
	"strings"

	"github.com/KotFed0t/lot_allocator/internal/allocation"
	"github.com/KotFed0t/lot_allocator/internal/model"
	"github.com/KotFed0t/lot_allocator/internal/model/tg/tgCallback"
	"github.com/shopspring/decimal"
	tele "gopkg.in/telebot.v4"
)

const dateFormat = "02.01.2006"

func money(d decimal.Decimal) string {
	return d.StringFixedBank(2)
}

func LotResponse(lot model.Lot) string {
	return fmt.Sprintf(
		"✅ Покупка записана (лот #%d)\n%s: %s шт. по %s ₽ от %s",
		lot.ID, lot.Ticker, lot.TotalShares, money(lot.PurchasePrice), lot.PurchaseDate.Format(dateFormat),
	)
}

func SaleResultResponse(res model.SaleResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("✅ Продажа #%d записана (%s)\n", res.Sale.ID, res.Sale.Strategy))
	sb.WriteString(fmt.Sprintf("%s: %s шт. по %s ₽ от %s\n\n", res.Sale.Ticker, res.Sale.Shares, money(res.Sale.Price), res.Sale.SaleDate.Format(dateFormat)))

	sb.WriteString("📋 Списано из лотов:\n")
	for _, a := range res.Allocations {
		sb.WriteString(fmt.Sprintf(
			"  ▸ лот #%d от %s: %s шт. по %s ₽, прибыль %s ₽\n",
			a.LotID, a.PurchaseDate.Format(dateFormat), a.Shares, money(a.PurchasePrice), money(a.Gain),
		))
	}

	sb.WriteString(fmt.Sprintf("\n💰 Себестоимость: %s ₽\n", money(res.Cost)))
	sb.WriteString(fmt.Sprintf("💵 Выручка: %s ₽\n", money(res.Proceeds)))
	sb.WriteString(fmt.Sprintf("📈 Прибыль: %s ₽", money(res.Gain)))

	return sb.String()
}

// PreviewResponse lists the planned allocation with buttons to preview the other strategies.
func PreviewResponse(preview model.SalePreview, shares decimal.Decimal) (text string, markup *tele.ReplyMarkup) {
	markup = &tele.ReplyMarkup{}
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("🔎 %s: продажа %s шт. на %s, стратегия %s\n\n", preview.Ticker, shares, preview.SaleDate.Format(dateFormat), preview.Strategy))

	if len(preview.Allocations) == 0 {
		sb.WriteString("Нет открытых лотов\n")
	}

	for _, a := range preview.Allocations {
		lot := preview.Lots[a.Index]
		sb.WriteString(fmt.Sprintf(
			"  ▸ лот #%d от %s по %s ₽: %s из %s шт.\n",
			lot.ID, lot.PurchaseDate.Format(dateFormat), money(lot.PurchasePrice), a.Shares, lot.RemainingShares(),
		))
	}

	if preview.Shortfall.Sign() > 0 {
		sb.WriteString(fmt.Sprintf("\n⚠️ Не хватает %s шт.", preview.Shortfall))
	}

	btns := make([]tele.Btn, 0, len(allocation.Strategies()))
	for _, strategy := range allocation.Strategies() {
		if strategy.String() == preview.Strategy {
			continue
		}
		data := strings.Join([]string{preview.Ticker, shares.String(), strategy.String()}, tgCallback.DataSeparator)
		btns = append(btns, markup.Data(strategy.String(), tgCallback.PreviewStrategy, data))
	}
	markup.Inline(markup.Row(btns...))

	return sb.String(), markup
}

func OpenLotsResponse(summary model.OpenLotsSummary) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📊 %s на %s\n\n", summary.Ticker, summary.AsOf.Format(dateFormat)))

	if len(summary.Lots) == 0 {
		sb.WriteString("Нет открытых лотов")
		return sb.String()
	}

	for _, lot := range summary.Lots {
		sb.WriteString(fmt.Sprintf(
			"  ▸ лот #%d от %s: %s из %s шт. по %s ₽\n",
			lot.ID, lot.PurchaseDate.Format(dateFormat), lot.RemainingShares(), lot.TotalShares, money(lot.PurchasePrice),
		))
	}

	sb.WriteString(fmt.Sprintf("\nВсего: %s шт.\n", summary.RemainingShares))
	sb.WriteString(fmt.Sprintf("💰 Себестоимость: %s ₽", money(summary.CostBasis)))

	return sb.String()
}

// StrategyResponse shows the current strategy with a button for every strategy.
func StrategyResponse(current allocation.Strategy) (text string, markup *tele.ReplyMarkup) {
	markup = &tele.ReplyMarkup{}

	btns := make([]tele.Btn, 0, len(allocation.Strategies()))
	for _, strategy := range allocation.Strategies() {
		label := strategy.String()
		if strategy.String() == current.String() {
			label = "✔️ " + label
		}
		btns = append(btns, markup.Data(label, tgCallback.SetStrategy, strategy.String()))
	}
	markup.Inline(markup.Row(btns...))

	text = fmt.Sprintf(
		"Стратегия списания лотов: %s\n\nfifo: сначала старые\nlifo: сначала новые\nlowest: сначала дешевые\nhighest: сначала дорогие",
		current,
	)
	return text, markup
}
