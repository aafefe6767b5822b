package tgbot

import (
	"log/slog"

	"github.com/KotFed0t/lot_allocator/config"
	"github.com/KotFed0t/lot_allocator/internal/model/tg/tgCallback"
	"github.com/KotFed0t/lot_allocator/internal/transport/telegram"
	customMW "github.com/KotFed0t/lot_allocator/internal/transport/telegram/middleware"
	tele "gopkg.in/telebot.v4"
	"gopkg.in/telebot.v4/middleware"
)

type TGBot struct {
	bot  *tele.Bot
	ctrl *telegram.Controller
}

func New(cfg *config.Config, ctrl *telegram.Controller) *TGBot {
	settings := tele.Settings{
		Token:  cfg.Telegram.Token,
		Poller: &tele.LongPoller{Timeout: cfg.Telegram.UpdTimeout},
		OnError: func(err error, c tele.Context) {
			slog.Error("unhandled telebot error", slog.String("err", err.Error()))
		},
	}

	b, err := tele.NewBot(settings)
	if err != nil {
		slog.Error("error while tele.NewBot", slog.String("err", err.Error()))
		panic(err)
	}

	return &TGBot{bot: b, ctrl: ctrl}
}

func (b *TGBot) Start() {
	b.bot.Use(middleware.Recover(), customMW.Logger())

	b.setupRoutes()

	go b.bot.Start()
	slog.Info("tgbot started!")
}

func (b *TGBot) Stop() {
	slog.Info("start stopping tgbot")
	b.bot.Stop()
	slog.Info("tgbot stopped")
}

func (b *TGBot) setupRoutes() {
	b.bot.Handle("/start", b.ctrl.Start)
	b.bot.Handle("/help", b.ctrl.Start)
	b.bot.Handle("/buy", b.ctrl.Buy)
	b.bot.Handle("/sell", b.ctrl.Sell)
	b.bot.Handle("/preview", b.ctrl.Preview)
	b.bot.Handle("/lots", b.ctrl.Lots)
	b.bot.Handle("/strategy", b.ctrl.Strategy)
	b.bot.Handle("/report", b.ctrl.Report)

	b.bot.Handle("\f"+tgCallback.SetStrategy, b.ctrl.SetStrategy)
	b.bot.Handle("\f"+tgCallback.PreviewStrategy, b.ctrl.PreviewStrategy)

	b.bot.Handle(tele.OnText, func(c tele.Context) error {
		return c.Send("сначала введите одну из команд, /help")
	})
}
