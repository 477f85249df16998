package middleware

import (
	"log/slog"
	"runtime/debug"

	"github.com/IjehJoel987/Tekegram/core/logger"

	tele "gopkg.in/telebot.v4"
)

// RecoverMiddleware converts a handler panic into an error log with a stack
// trace, keeping the update loop alive.
func RecoverMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		defer func() {
			if r := recover(); r != nil {
				logger.TG.Error("panic recovered",
					slog.String("event", "tg.panic"),
					slog.Any("err", r),
					slog.String("stack", string(debug.Stack())),
				)
			}
		}()
		return next(c)
	}
}
