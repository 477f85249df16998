// Package bot assembles the PC Doctor support bot: menu navigation, the
// request flows (purchase, issue report, callback, inquiry, tracking), the
// profile and settings screens, and the admin management surface. It wires
// the domain registry, session manager, and snapshot store into the core
// Telegram runtime.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"
	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/IjehJoel987/Tekegram/core/config"
	"github.com/IjehJoel987/Tekegram/core/logger"
	coretelegram "github.com/IjehJoel987/Tekegram/core/telegram"
	"github.com/IjehJoel987/Tekegram/core/telegram/middleware"
	"github.com/IjehJoel987/Tekegram/core/telegram/router"
	"github.com/IjehJoel987/Tekegram/core/telegram/sender"
	"github.com/IjehJoel987/Tekegram/domain"
	"github.com/IjehJoel987/Tekegram/lifecycle"
	"github.com/IjehJoel987/Tekegram/registry"
	"github.com/IjehJoel987/Tekegram/session"
	"github.com/IjehJoel987/Tekegram/store"
)

const component = "bot"

// App owns the bot's state and implements the handler surface. It satisfies
// the core runner's TelegramApp interface and the text router's FSM
// interface.
type App struct {
	cfg      *coreconfig.Config
	reg      *registry.Registry
	sessions *session.Manager
	store    *store.FileStore
	engine   *lifecycle.Engine

	// Populated by the OnStart hook; needed for sends that target a user
	// other than the one whose update is being handled.
	bot        atomic.Pointer[tele.Bot]
	dispatcher atomic.Pointer[sender.Dispatcher]
}

// New builds the app from a loaded snapshot. Sessions that fail to decode
// (e.g. after a flow was renamed) are dropped individually rather than
// aborting startup.
func New(cfg *coreconfig.Config, snap *store.Snapshot, fs *store.FileStore) (*App, error) {
	if cfg == nil {
		return nil, errors.New("bot: nil config")
	}
	if snap == nil {
		snap = store.NewSnapshot()
	}
	a := &App{
		cfg:      cfg,
		reg:      registry.New(cfg.Telegram.RootOwnerID, snap),
		sessions: session.NewManager(),
		store:    fs,
	}
	if err := a.sessions.Restore(snap.Sessions); err != nil {
		logger.Warn(context.Background(), component, "session.restore_partial",
			slog.String("err", err.Error()),
		)
	}
	a.engine = lifecycle.NewEngine(a.reg, a.persist, a.notifyStatusChange)
	return a, nil
}

// CoreConfig satisfies the core runner's ConfigCarrier interface.
func (a *App) CoreConfig() *coreconfig.Config { return a.cfg }

// Registry exposes the domain registry, mainly for tests.
func (a *App) Registry() *registry.Registry { return a.reg }

// Sessions exposes the session manager, mainly for tests.
func (a *App) Sessions() *session.Manager { return a.sessions }

// TelegramRunOptions wires commands, callbacks, and routes into the core
// Telegram runtime.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()
	a.registerCommands(reg)
	if err := a.registerCallbacks(reg); err != nil {
		return coretelegram.RunOptions{}, err
	}
	reg.SetTextFallback(a.handleText)
	reg.SetCallbackNotFound(func(c tele.Context) error {
		return c.Respond(&tele.CallbackResponse{Text: "That button has expired. Send /start."})
	})

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		Admin:         a.reg,
		OnAdminReject: a.handleAdminReject,
	})
	routes = append(routes, router.TextRoutes(a, reg, router.TextOptions{
		UnknownText:     a.handleUnknown,
		UnknownDocument: a.handleUnexpectedDocument,
	})...)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, coretelegram.Route{
		Endpoint: tele.OnPhoto,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(a.handlePhoto)),
	})

	return coretelegram.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg, a.handleThrottled),
		Routes:      routes,
		OnStart:     a.onStart,
		OnStop:      a.onStop,
	}, nil
}

func (a *App) onStart(ctx context.Context, rt coretelegram.Runtime) error {
	a.bot.Store(rt.Bot)
	a.dispatcher.Store(rt.Dispatcher)
	counts := a.reg.Counts()
	logger.Info(ctx, component, "started",
		slog.Int("users", counts.Users),
		slog.Int("orders", counts.Orders),
		slog.Int("issues", counts.Issues),
		slog.Int("callbacks", counts.Callbacks),
		slog.Int("inquiries", counts.Inquiries),
		slog.Int("active_sessions", a.sessions.Count()),
	)
	return nil
}

func (a *App) onStop(ctx context.Context, _ coretelegram.Runtime) error {
	a.persist(ctx)
	a.bot.Store(nil)
	a.dispatcher.Store(nil)
	return nil
}

// persist writes the full state back to disk. Mutating handlers call it
// after every change; a failed save is logged and already reported by the
// store, so user-facing flows continue.
func (a *App) persist(ctx context.Context) {
	snap := a.reg.Export()
	sessions, err := a.sessions.Export()
	if err != nil {
		logger.Error(ctx, component, "session.export_failed",
			slog.String("err", err.Error()),
		)
	} else {
		snap.Sessions = sessions
	}
	if err := a.store.Save(ctx, snap); err != nil {
		logger.Error(ctx, component, "persist.failed",
			slog.String("err", err.Error()),
		)
	}
}

// sendTo delivers a message to an arbitrary user, outside the update that
// produced it. Sends go through the dispatcher when one is attached, with a
// synchronous fallback when the queue is full or closed.
func (a *App) sendTo(ctx context.Context, userID int64, what any, opts ...any) error {
	b := a.bot.Load()
	if b == nil {
		return errors.New("bot: runtime not started")
	}
	run := func() error {
		_, err := b.Send(&tele.User{ID: userID}, what, opts...)
		return err
	}
	if d := a.dispatcher.Load(); d != nil {
		err := d.Enqueue(ctx, "notify", "sendMessage", run)
		if err == nil {
			return nil
		}
		if !errors.Is(err, sender.ErrQueueFull) && !errors.Is(err, sender.ErrQueueClosed) {
			return err
		}
	}
	return run()
}

// notifyStatusChange tells the request owner about an applied transition,
// honouring the profile's notification toggle.
func (a *App) notifyStatusChange(ctx context.Context, userID int64, ch lifecycle.Change) {
	if profile, ok := a.reg.Profile(userID); ok && !profile.NotificationsEnabled {
		return
	}
	msg := fmt.Sprintf(
		"📋 *Status Update*\n\nYour request `%s` moved from _%s_ to *%s*.",
		ch.ID, domain.StatusLabel(ch.From), domain.StatusLabel(ch.To),
	)
	if err := a.sendTo(ctx, userID, msg, tele.ModeMarkdown); err != nil {
		logger.Warn(ctx, component, "notify.failed",
			slog.Int64("user_id", userID),
			slog.String("request_id", ch.ID),
			slog.String("err", err.Error()),
		)
	}
}

// notifyAdmins fans a message out to every admin. Partial failures are
// collected and logged, not surfaced to the triggering user.
func (a *App) notifyAdmins(ctx context.Context, what any, opts ...any) {
	var errs error
	for _, id := range a.reg.Admins() {
		if err := a.sendTo(ctx, id, what, opts...); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("admin %d: %w", id, err))
		}
	}
	if errs != nil {
		logger.Warn(ctx, component, "admin_notify.partial",
			slog.String("err", errs.Error()),
		)
	}
}
