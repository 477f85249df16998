package bot

import (
	"fmt"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/IjehJoel987/Tekegram/core/telegram/callbacks"
	"github.com/IjehJoel987/Tekegram/core/telegram/helpers"
	"github.com/IjehJoel987/Tekegram/core/telegram/keyboard"
	"github.com/IjehJoel987/Tekegram/domain"
	"github.com/IjehJoel987/Tekegram/session"
)

func (a *App) handleInquiryMenu(c tele.Context) error {
	markup := keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "💻 Not booting", Unique: cbInquiry, Data: "boot"},
			{Text: "🖥 Display", Unique: cbInquiry, Data: "display"},
		},
		[]keyboard.InlineBtn{
			{Text: "🔋 Charging", Unique: cbInquiry, Data: "charging"},
			{Text: "⚡ Performance", Unique: cbInquiry, Data: "performance"},
		},
		[]keyboard.InlineBtn{
			{Text: "✍️ Something else", Unique: cbInquiry, Data: "other"},
		},
	)
	return helpers.SendMD(c, "❓ *What do you want to ask about?*", markup)
}

func (a *App) handleInquiryType(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	kind := callbacks.CallbackPayload(c)

	if kind == "other" {
		a.sessions.Set(c.Sender().ID, &session.InquiryOther{})
		a.persist(ctx)
		if err := c.Respond(); err != nil {
			return err
		}
		return helpers.SendText(c, "✍️ Type your question and we'll get back to you.")
	}

	answer, ok := a.reg.Response(kind)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "No answer saved for that yet."})
	}
	if err := c.Respond(); err != nil {
		return err
	}
	return helpers.SendMD(c, answer, backToMenuMarkup())
}

func (a *App) inquiryInput(c tele.Context, text string) error {
	ctx := helpers.BuildContext(c)
	id := a.reg.CreateInquiry(domain.Inquiry{
		UserID:    c.Sender().ID,
		Username:  c.Sender().Username,
		Name:      senderName(c),
		Type:      "other",
		Text:      text,
		Status:    domain.InquiryPendingResponse,
		Timestamp: domain.Timestamp(time.Now()),
	})
	a.sessions.Clear(c.Sender().ID)
	a.persist(ctx)

	a.notifyAdmins(ctx, fmt.Sprintf(
		"📝 *NEW INQUIRY* `%s`\n\n%s\n\n%s",
		id, adminUserLine(senderName(c), c.Sender().Username), escapeMD(text),
	), tele.ModeMarkdown)

	return helpers.SendMD(c, fmt.Sprintf(
		"✅ *Question received!*\n\nReference: `%s`\nWe'll reply as soon as we can.",
		id,
	), mainMenu())
}
