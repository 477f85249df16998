package middleware

import tele "gopkg.in/telebot.v4"

// AdminChecker answers whether a user may run admin-only handlers. The
// admin set changes at runtime, so checks go through an interface instead
// of a fixed id.
type AdminChecker interface {
	IsAdmin(userID int64) bool
}

// AdminOptions defines the checker and the handler invoked on rejection.
// A nil OnReject silently drops the update.
type AdminOptions struct {
	Checker  AdminChecker
	OnReject tele.HandlerFunc
}

// AdminOnlyMiddleware blocks non-admin senders from reaching downstream
// handlers. With no Checker configured every sender passes.
func AdminOnlyMiddleware(opts AdminOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if opts.Checker == nil || opts.Checker.IsAdmin(c.Sender().ID) {
				return next(c)
			}
			if opts.OnReject != nil {
				return opts.OnReject(c)
			}
			return nil
		}
	}
}
