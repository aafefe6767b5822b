package middleware

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	tele "gopkg.in/telebot.v4"
)

func Logger() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			now := time.Now()

			rqID := uuid.NewString()
			c.Set("rqID", rqID)

			attrs := []any{slog.String("rqID", rqID)}
			if chat := c.Chat(); chat != nil {
				attrs = append(attrs, slog.Int64("chatID", chat.ID))
			}
			if c.Callback() != nil {
				attrs = append(attrs, slog.String("callback", c.Callback().Unique))
			} else if msg := c.Message(); msg != nil {
				attrs = append(attrs, slog.String("text", msg.Text))
			}

			slog.Info("start request", attrs...)

			err := next(c)

			attrs = append(attrs, slog.String("request duration", fmt.Sprintf("%.2fs", time.Since(now).Seconds())))
			if err != nil {
				attrs = append(attrs, slog.String("err", err.Error()))
				slog.Error("request failed", attrs...)
				return err
			}

			slog.Info("request finished", attrs...)
			return nil
		}
	}
}
