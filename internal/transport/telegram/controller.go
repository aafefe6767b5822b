package telegram

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KotFed0t/lot_allocator/internal/allocation"
	"github.com/KotFed0t/lot_allocator/internal/converter/telebotConverter"
	"github.com/KotFed0t/lot_allocator/internal/model"
	"github.com/KotFed0t/lot_allocator/internal/model/tg/tgCallback"
	"github.com/KotFed0t/lot_allocator/internal/service"
	"github.com/KotFed0t/lot_allocator/utils"
	tele "gopkg.in/telebot.v4"
)

const internalErrMsg = "что-то пошло не так..."

const helpMsg = `Команды:
/buy TICKER SHARES PRICE [YYYY-MM-DD] - записать покупку
/sell TICKER SHARES PRICE [YYYY-MM-DD] [стратегия] - записать продажу
/preview TICKER SHARES [стратегия] - какие лоты будут списаны
/lots [TICKER] - открытые лоты
/strategy [fifo|lifo|lowest|highest] - стратегия по умолчанию
/report - отчет о реализованной прибыли`

type LotService interface {
	RecordPurchase(ctx context.Context, req model.PurchaseRequest) (model.Lot, error)
	RecordSale(ctx context.Context, req model.SaleRequest) (model.SaleResult, error)
	PreviewSale(ctx context.Context, req model.SaleRequest) (model.SalePreview, error)
	GetOpenLots(ctx context.Context, ticker string, asOf time.Time) (model.OpenLotsSummary, error)
	DefaultStrategy(ctx context.Context, chatID int64) (allocation.Strategy, error)
	SetDefaultStrategy(ctx context.Context, chatID int64, name string) (allocation.Strategy, error)
	RealizedGainsReport(ctx context.Context, chatID int64) (model.Report, error)
}

type Session interface {
	GetSession(ctx context.Context, chatID int64) (model.Session, error)
	SetSession(ctx context.Context, chatID int64, session model.Session) error
}

type Controller struct {
	lotService LotService
	session    Session
}

func NewController(lotService LotService, session Session) *Controller {
	return &Controller{
		lotService: lotService,
		session:    session,
	}
}

func (ctrl *Controller) Start(c tele.Context) error {
	return c.Send("Привет! Я веду учет лотов и считаю прибыль по продажам.\n\n" + helpMsg)
}

func (ctrl *Controller) Buy(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)

	req, err := parseBuyArgs(c.Args())
	if err != nil {
		return c.Send("Формат: /buy TICKER SHARES PRICE [YYYY-MM-DD]")
	}

	lot, err := ctrl.lotService.RecordPurchase(ctx, req)
	if err != nil {
		slog.Error("got error from lotService.RecordPurchase", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return c.Send(errorMessage(err))
	}

	ctrl.rememberTicker(ctx, c.Chat().ID, lot.Ticker)

	return c.Send(telebotConverter.LotResponse(lot))
}

func (ctrl *Controller) Sell(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)

	req, err := parseSellArgs(c.Args())
	if err != nil {
		return c.Send("Формат: /sell TICKER SHARES PRICE [YYYY-MM-DD] [fifo|lifo|lowest|highest]")
	}
	req.ChatID = c.Chat().ID

	res, err := ctrl.lotService.RecordSale(ctx, req)
	if err != nil {
		slog.Error("got error from lotService.RecordSale", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return c.Send(errorMessage(err))
	}

	ctrl.rememberTicker(ctx, c.Chat().ID, res.Sale.Ticker)

	return c.Send(telebotConverter.SaleResultResponse(res))
}

func (ctrl *Controller) Preview(c tele.Context) error {
	req, err := parsePreviewArgs(c.Args())
	if err != nil {
		return c.Send("Формат: /preview TICKER SHARES [fifo|lifo|lowest|highest]")
	}

	text, markup, err := ctrl.preview(c, req)
	if err != nil {
		return c.Send(errorMessage(err))
	}
	return c.Send(text, markup)
}

// PreviewStrategy redraws the preview message for the strategy of the pressed button.
func (ctrl *Controller) PreviewStrategy(c tele.Context) error {
	req, err := parsePreviewData(c.Callback().Data, tgCallback.DataSeparator)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: internalErrMsg})
	}

	text, markup, err := ctrl.preview(c, req)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: errorMessage(err)})
	}

	_ = c.Respond()
	return c.Edit(text, markup)
}

func (ctrl *Controller) preview(c tele.Context, req model.SaleRequest) (string, *tele.ReplyMarkup, error) {
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)
	req.ChatID = c.Chat().ID

	preview, err := ctrl.lotService.PreviewSale(ctx, req)
	if err != nil {
		slog.Error("got error from lotService.PreviewSale", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return "", nil, err
	}

	text, markup := telebotConverter.PreviewResponse(preview, req.Shares)
	return text, markup, nil
}

// Lots shows the open lots of the given ticker, or of the last ticker the chat worked with.
func (ctrl *Controller) Lots(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)

	var ticker string
	if args := c.Args(); len(args) > 0 {
		ticker = strings.ToUpper(args[0])
	} else {
		chatSession, err := ctrl.session.GetSession(ctx, c.Chat().ID)
		if err != nil {
			slog.Error("got error from session.GetSession", slog.String("rqID", rqID), slog.String("err", err.Error()))
		}
		ticker = chatSession.LastTicker
	}

	if ticker == "" {
		return c.Send("Формат: /lots TICKER")
	}

	summary, err := ctrl.lotService.GetOpenLots(ctx, ticker, time.Time{})
	if err != nil {
		slog.Error("got error from lotService.GetOpenLots", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return c.Send(errorMessage(err))
	}

	ctrl.rememberTicker(ctx, c.Chat().ID, summary.Ticker)

	return c.Send(telebotConverter.OpenLotsResponse(summary))
}

func (ctrl *Controller) Strategy(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)

	var (
		strategy allocation.Strategy
		err      error
	)
	if args := c.Args(); len(args) > 0 {
		strategy, err = ctrl.lotService.SetDefaultStrategy(ctx, c.Chat().ID, args[0])
	} else {
		strategy, err = ctrl.lotService.DefaultStrategy(ctx, c.Chat().ID)
	}
	if err != nil {
		slog.Error("got error from lotService strategy", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return c.Send(errorMessage(err))
	}

	text, markup := telebotConverter.StrategyResponse(strategy)
	return c.Send(text, markup)
}

func (ctrl *Controller) SetStrategy(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)

	strategy, err := ctrl.lotService.SetDefaultStrategy(ctx, c.Chat().ID, c.Callback().Data)
	if err != nil {
		slog.Error("got error from lotService.SetDefaultStrategy", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return c.Respond(&tele.CallbackResponse{Text: errorMessage(err)})
	}

	_ = c.Respond(&tele.CallbackResponse{Text: "Стратегия: " + strategy.String()})

	text, markup := telebotConverter.StrategyResponse(strategy)
	return c.Edit(text, markup)
}

func (ctrl *Controller) Report(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)

	_ = c.Notify(tele.UploadingDocument)

	report, err := ctrl.lotService.RealizedGainsReport(ctx, c.Chat().ID)
	if err != nil {
		slog.Error("got error from lotService.RealizedGainsReport", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return c.Send(errorMessage(err))
	}

	if report.Link != "" {
		return c.Send(fmt.Sprintf("📄 Отчет о прибыли: %s", report.Link))
	}

	doc := &tele.Document{
		File:     tele.FromReader(bytes.NewReader(report.File)),
		FileName: report.Filename,
		Caption:  "📄 Отчет о прибыли",
	}
	return c.Send(doc)
}

func (ctrl *Controller) rememberTicker(ctx context.Context, chatID int64, ticker string) {
	chatSession, err := ctrl.session.GetSession(ctx, chatID)
	if err != nil || chatSession.LastTicker == ticker {
		return
	}

	chatSession.LastTicker = ticker
	if err = ctrl.session.SetSession(ctx, chatID, chatSession); err != nil {
		slog.Warn("can't save last ticker", slog.String("rqID", utils.GetRequestIDFromCtx(ctx)), slog.String("err", err.Error()))
	}
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrInsufficientShares):
		return "⚠️ В открытых лотах не хватает акций для продажи"
	case errors.Is(err, service.ErrNotFound):
		return "Не удалось найти указанный тикер или данные"
	case errors.Is(err, service.ErrLocked):
		return "⏳ По этой бумаге уже идет операция, повторите позже"
	case errors.Is(err, allocation.ErrUnknownStrategy):
		return "Неизвестная стратегия, доступны: fifo, lifo, lowest, highest"
	case errors.Is(err, service.ErrInvalidRequest):
		return "Проверьте количество и цену: количество должно быть больше нуля"
	default:
		return internalErrMsg
	}
}
