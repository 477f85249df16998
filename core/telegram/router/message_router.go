package router

import (
	"time"

	tg "github.com/IjehJoel987/Tekegram/core/telegram"

	tele "gopkg.in/telebot.v4"
)

// FSM is the slice of the flow manager the text router needs: whether a
// user has a form in progress, and the handler that advances it.
type FSM interface {
	InProgress(userID int64) bool
	ManagerHandler(c tele.Context) error
}

// TextOptions sets the fallbacks used when no flow or command matches.
type TextOptions struct {
	UnknownText     tele.HandlerFunc
	UnknownDocument tele.HandlerFunc
}

// TextRoutes builds the OnText and OnDocument routes. Text updates go to the
// active flow first, then to registered commands matched by their text, then
// to the registry's text fallback, then to opts.UnknownText.
func TextRoutes(fsmMgr FSM, reg *tg.Registry, opts TextOptions) []tg.Route {
	onText := func(c tele.Context) error {
		start := time.Now()

		if fsmMgr != nil && fsmMgr.InProgress(c.Sender().ID) {
			return runHandler(c, "fsm", start, func() error {
				return fsmMgr.ManagerHandler(c)
			})
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(c.Text()); ok && cmd.Handler != nil {
				return runHandler(c, handlerName(key), start, func() error {
					return cmd.Handler(c)
				})
			}
			if fb := reg.TextFallback(); fb != nil {
				return runHandler(c, "fallback", start, func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return runHandler(c, "unknown_text", start, func() error {
				return opts.UnknownText(c)
			})
		}
		summarize(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	onDocument := func(c tele.Context) error {
		start := time.Now()
		if fsmMgr != nil && fsmMgr.InProgress(c.Sender().ID) {
			return runHandler(c, "fsm_document", start, func() error {
				return fsmMgr.ManagerHandler(c)
			})
		}
		if opts.UnknownDocument != nil {
			return runHandler(c, "unexpected_document", start, func() error {
				return opts.UnknownDocument(c)
			})
		}
		summarize(c, "unexpected_document", start, "skip", "ok", nil)
		return nil
	}

	return []tg.Route{
		{Endpoint: tele.OnText, Handler: wrap(onText)},
		{Endpoint: tele.OnDocument, Handler: wrap(onDocument)},
	}
}
