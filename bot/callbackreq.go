package bot

import (
	"fmt"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/IjehJoel987/Tekegram/core/telegram/helpers"
	"github.com/IjehJoel987/Tekegram/domain"
	"github.com/IjehJoel987/Tekegram/session"
)

func (a *App) handleCallbackMenu(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	a.sessions.Set(c.Sender().ID, &session.Callback{})
	a.persist(ctx)
	return helpers.SendMD(c,
		"📞 *Request a Callback*\n\nSend your phone number plus a short note on the problem.\n\nExample: `08012345678 - laptop won't turn on`")
}

func (a *App) callbackInput(c tele.Context, text string) error {
	ctx := helpers.BuildContext(c)
	if !domain.ContainsPhone(text) {
		return helpers.SendText(c, "📵 Drop a valid phone number (e.g. 080XXXXXXXX).")
	}

	id := a.reg.CreateCallback(domain.CallbackRequest{
		UserID:        c.Sender().ID,
		Username:      c.Sender().Username,
		Name:          senderName(c),
		PhoneAndIssue: text,
		Status:        domain.CallbackPending,
		Timestamp:     domain.Timestamp(time.Now()),
	})
	a.sessions.Clear(c.Sender().ID)
	a.persist(ctx)

	a.notifyAdmins(ctx, fmt.Sprintf(
		"🚨 *CALLBACK REQUEST* `%s`\n\n%s\n📞 %s",
		id, adminUserLine(senderName(c), c.Sender().Username), escapeMD(text),
	), tele.ModeMarkdown)

	return helpers.SendMD(c, fmt.Sprintf(
		"✅ *Callback booked!*\n\nReference: `%s`\nA technician will call you shortly.",
		id,
	), mainMenu())
}
