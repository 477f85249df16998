package router

import (
	"time"

	tg "github.com/IjehJoel987/Tekegram/core/telegram"
	"github.com/IjehJoel987/Tekegram/core/telegram/callbacks"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// CallbackOptions sets the fallback used when the registry holds nothing
// for a callback key and no registry-level fallback is installed.
type CallbackOptions struct {
	NotFound tele.HandlerFunc
}

// CallbackRoute builds the OnCallback route. The callback is acknowledged
// up front so the client spinner stops even when the handler is slow.
func CallbackRoute(reg *tg.Registry, opts CallbackOptions) tg.Route {
	handler := func(c tele.Context) error {
		cb := c.Callback()
		if cb == nil {
			return nil
		}
		start := time.Now()

		key := cb.Unique
		if key == "" {
			key, _ = callbacks.ParseCallbackData(cb)
		}
		name := "callback." + handlerName(key)
		extras := []slog.Attr{slog.String("cb_key", key)}

		_ = c.Respond()

		if h, ok := reg.GetCallback(key); ok && h != nil {
			return runHandler(c, name, start, func() error {
				return h(c)
			}, extras...)
		}

		fallback := reg.CallbackNotFound()
		if fallback == nil {
			fallback = opts.NotFound
		}
		extras = append(extras, slog.String("reason", "not_found"))
		return runHandler(c, name, start, func() error {
			if fallback == nil {
				return nil
			}
			return fallback(c)
		}, extras...)
	}

	return tg.Route{Endpoint: tele.OnCallback, Handler: wrap(handler)}
}
