// Package commands defines the registration record for slash commands.
package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command describes one slash command. AdminOnly routes it through the
// admin gate; Hidden keeps it out of /help and the Telegram command list;
// Aliases register extra endpoints sharing the same handler.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	AdminOnly   bool
	Hidden      bool
	Aliases     []string
}
