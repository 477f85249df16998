package telegram

import (
	"time"

	tele "gopkg.in/telebot.v4"
)

const defaultLongPollSeconds = 10

// PollerOptions configures BuildPoller.
type PollerOptions struct {
	LongPollTimeoutSeconds int
}

// BuildPoller returns a long poller with the configured timeout.
func BuildPoller(opts PollerOptions) tele.Poller {
	sec := opts.LongPollTimeoutSeconds
	if sec <= 0 {
		sec = defaultLongPollSeconds
	}
	return &tele.LongPoller{Timeout: time.Duration(sec) * time.Second}
}
