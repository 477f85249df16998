package bot

import (
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/IjehJoel987/Tekegram/core/telegram/callbacks"
	"github.com/IjehJoel987/Tekegram/core/telegram/helpers"
	"github.com/IjehJoel987/Tekegram/core/telegram/keyboard"
	"github.com/IjehJoel987/Tekegram/domain"
	"github.com/IjehJoel987/Tekegram/session"
)

// handleContentAdmin manages the two admin-editable text maps: tips shown
// under Tips & Guides and the canned answers on the inquiry menu.
func (a *App) handleContentAdmin(c tele.Context) error {
	tips := a.reg.Tips()
	responses := a.reg.Responses()

	var b strings.Builder
	b.WriteString("📚 *Content Management*\n\n*Tips:*\n")
	for _, title := range sortedKeys(tips) {
		fmt.Fprintf(&b, "• %s\n", domain.TitleCase(title))
	}
	b.WriteString("\n*Canned answers:*\n")
	for _, key := range sortedKeys(responses) {
		fmt.Fprintf(&b, "• %s\n", domain.TitleCase(key))
	}

	rows := [][]keyboard.InlineBtn{
		{
			{Text: "➕ Tip", Unique: cbContentAdd, Data: string(session.ContentTips)},
			{Text: "➕ Answer", Unique: cbContentAdd, Data: string(session.ContentResponses)},
		},
	}
	for _, title := range sortedKeys(tips) {
		rows = append(rows, []keyboard.InlineBtn{{
			Text:   "🗑 Tip: " + domain.TitleCase(title),
			Unique: cbContentDel,
			Data:   string(session.ContentTips) + "|" + title,
		}})
	}
	return helpers.SendMD(c, b.String(), keyboard.InlineButtonsRows(rows...))
}

func (a *App) handleContentAdd(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	target := session.ContentTarget(callbacks.CallbackPayload(c))
	if target != session.ContentTips && target != session.ContentResponses {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown content type."})
	}
	a.sessions.Set(c.Sender().ID, &session.Content{Target: target, Step: session.ContentTitle})
	a.persist(ctx)
	if err := c.Respond(); err != nil {
		return err
	}
	if target == session.ContentTips {
		return helpers.SendMD(c, "📘 Tip title? (an existing title overwrites it, e.g. `battery`)")
	}
	return helpers.SendMD(c, "📝 Answer key? (an existing key overwrites it, e.g. `boot`)")
}

func (a *App) contentInput(c tele.Context, f *session.Content, text string) error {
	ctx := helpers.BuildContext(c)
	switch f.Step {
	case session.ContentTitle:
		f.Title = strings.ToLower(strings.TrimSpace(text))
		if f.Title == "" {
			return helpers.SendText(c, "❌ Give it a title.")
		}
		f.Step = session.ContentBody
		a.sessions.Set(c.Sender().ID, f)
		a.persist(ctx)
		return helpers.SendMD(c, fmt.Sprintf("✍️ Now send the full text for `%s`. Markdown works.", f.Title))

	case session.ContentBody:
		if f.Target == session.ContentTips {
			a.reg.SetTip(f.Title, text)
		} else {
			a.reg.SetResponse(f.Title, text)
		}
		a.sessions.Clear(c.Sender().ID)
		a.persist(ctx)
		return helpers.SendMD(c, fmt.Sprintf("✅ `%s` saved.", f.Title), mainMenu())
	}
	return helpers.SendText(c, "⚠️ Unexpected step. Send /cancel and start over.")
}

func (a *App) handleContentDelete(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	parts, err := callbacks.PayloadParts(c, "|")
	if err != nil || len(parts) != 2 {
		return c.Respond(&tele.CallbackResponse{Text: "Bad payload."})
	}
	target, title := session.ContentTarget(parts[0]), parts[1]
	if target != session.ContentTips {
		return c.Respond(&tele.CallbackResponse{Text: "Only tips can be deleted."})
	}
	if !a.reg.DeleteTip(title) {
		return c.Respond(&tele.CallbackResponse{Text: "Already gone."})
	}
	a.persist(ctx)
	return c.Respond(&tele.CallbackResponse{Text: "Deleted: " + title})
}
