package bot

import (
	"github.com/IjehJoel987/Tekegram/core/telegram/format"
)

// escapeMD neutralizes Markdown control characters in user-supplied text
// before it is embedded in a Markdown-mode message. Unescaped input would
// otherwise break rendering of the surrounding message.
func escapeMD(s string) string {
	out, err := format.EscapeMarkdown(s, format.MarkdownV1)
	if err != nil {
		return s
	}
	return out
}
