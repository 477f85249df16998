// Package lifecycle validates and applies request status transitions.
package lifecycle

import (
	"context"
	"errors"
	"log/slog"

	"github.com/IjehJoel987/Tekegram/core/logger"
	"github.com/IjehJoel987/Tekegram/domain"
	"github.com/IjehJoel987/Tekegram/registry"
)

const lifecycleComponent = "lifecycle"

// ErrNotFound is returned when no request matches the given id.
var ErrNotFound = errors.New("lifecycle: request not found")

// PersistFunc saves the registry state after a transition is applied. It
// runs before the notification so the owner is never told about a change
// that was not written.
type PersistFunc func(ctx context.Context)

// NotifyFunc is called after a transition persists, with the owning user's
// id. It runs outside the registry lock; delivery failures are the hook's
// problem.
type NotifyFunc func(ctx context.Context, userID int64, change Change)

// Change describes one applied transition.
type Change struct {
	ID   string
	Kind domain.RequestKind
	From domain.Status
	To   domain.Status
}

// Engine applies status transitions against the registry, enforcing each
// variant's fixed status set.
type Engine struct {
	reg     *registry.Registry
	persist PersistFunc
	notify  NotifyFunc
}

func NewEngine(reg *registry.Registry, persist PersistFunc, notify NotifyFunc) *Engine {
	return &Engine{reg: reg, persist: persist, notify: notify}
}

// Transition moves the request to the target status. The target must
// belong to the request variant's status set. Re-applying the current
// status is allowed and goes through the same persist-then-notify path;
// repeat taps are not deduplicated.
func (e *Engine) Transition(ctx context.Context, id string, to domain.Status) (Change, error) {
	kind, ok := domain.KindByPrefix(id)
	if !ok {
		return Change{}, ErrNotFound
	}
	if !kind.ValidStatus(to) {
		return Change{}, &domain.InvalidStatusError{Kind: kind, Status: to}
	}

	from, ok := e.reg.RequestStatus(id)
	if !ok {
		return Change{}, ErrNotFound
	}
	if !e.reg.SetRequestStatus(id, to) {
		return Change{}, ErrNotFound
	}
	change := Change{ID: id, Kind: kind, From: from, To: to}

	logger.Info(ctx, lifecycleComponent, "request.status_changed",
		slog.String("request_id", id),
		slog.String("from", string(from)),
		slog.String("to", string(to)),
	)
	if e.persist != nil {
		e.persist(ctx)
	}
	if e.notify != nil {
		if owner, ok := e.reg.RequestOwner(id); ok {
			e.notify(ctx, owner, change)
		}
	}
	return change, nil
}
