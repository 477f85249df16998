package router

import (
	"github.com/IjehJoel987/Tekegram/core/logger"
	tg "github.com/IjehJoel987/Tekegram/core/telegram"
	"github.com/IjehJoel987/Tekegram/core/telegram/middleware"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// CommandRouteOptions configures the admin gate applied to restricted commands.
type CommandRouteOptions struct {
	Admin         middleware.AdminChecker
	OnAdminReject tele.HandlerFunc
}

// CommandRoutes turns every registered command into a route wrapped with the
// standard middleware chain. Admin-only commands additionally pass through
// the admin gate.
func CommandRoutes(reg *tg.Registry, opts CommandRouteOptions) []tg.Route {
	if reg == nil {
		return nil
	}

	gate := middleware.AdminOnlyMiddleware(middleware.AdminOptions{
		Checker:  opts.Admin,
		OnReject: opts.OnAdminReject,
	})

	cmds := reg.Commands()
	routes := make([]tg.Route, 0, len(cmds))
	for name, def := range cmds {
		h := wrap(def.Handler)
		if def.AdminOnly {
			h = gate(h)
		}
		routes = append(routes, tg.Route{Endpoint: name, Handler: h})
	}

	logger.TWire.Info("tg.wire",
		slog.String("event", "complete"),
		slog.Int("commands", len(cmds)),
		slog.Int("callbacks", len(reg.ListCallbacks())),
	)

	return routes
}
