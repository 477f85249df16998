// Package format holds text helpers for Telegram message bodies.
package format

import (
	"fmt"
	"regexp"
)

const (
	// MarkdownV1 denotes Telegram markdown version 1.
	MarkdownV1 = 1
	// MarkdownV2 denotes Telegram markdown version 2.
	MarkdownV2 = 2
)

var (
	mdV1Special = regexp.MustCompile("([_*\\\\\\[`])")
	mdV2Special = regexp.MustCompile(`([` + regexp.QuoteMeta("_*[]()~`>#+-=|{}.!") + `])`)
)

// EscapeMarkdown escapes characters that would otherwise open a formatting
// entity, so user-supplied text can be embedded in a styled message.
func EscapeMarkdown(text string, version int) (string, error) {
	switch version {
	case MarkdownV1:
		return mdV1Special.ReplaceAllString(text, `\$1`), nil
	case MarkdownV2:
		return mdV2Special.ReplaceAllString(text, `\$1`), nil
	}
	return "", fmt.Errorf("unsupported markdown version: %d", version)
}
