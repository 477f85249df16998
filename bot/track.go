package bot

import (
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/IjehJoel987/Tekegram/core/telegram/helpers"
	"github.com/IjehJoel987/Tekegram/domain"
	"github.com/IjehJoel987/Tekegram/session"
)

func (a *App) handleTrackMenu(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	a.sessions.Set(c.Sender().ID, &session.Track{})
	a.persist(ctx)
	return helpers.SendMD(c,
		"🚚 *Track a Request*\n\nSend your request ID.\n\nExamples: `ORD1234`, `ISS5678`, `CB9012`, `INQ3456`")
}

// trackInput clears the session whether or not the lookup succeeds; a typo
// should not trap the user in the flow.
func (a *App) trackInput(c tele.Context, text string) error {
	ctx := helpers.BuildContext(c)
	a.sessions.Clear(c.Sender().ID)
	a.persist(ctx)

	id := strings.ToUpper(text)
	if !domain.IsRequestID(id) {
		return helpers.SendMD(c, "❌ That doesn't look like a request ID. Expected something like `ORD1234`.", mainMenu())
	}
	return a.sendRequestStatus(c, id)
}

func (a *App) sendRequestStatus(c tele.Context, id string) error {
	kind, _ := domain.KindByPrefix(id)
	var body string
	switch kind {
	case domain.KindOrder:
		o, ok := a.reg.Order(id)
		if !ok {
			return a.sendRequestNotFound(c, id)
		}
		body = fmt.Sprintf(
			"📦 *Order* `%s`\n\nItem: %s (%s)\nQuantity: %d\nTotal: %s\nStatus: *%s*\nPlaced: %s",
			id, domain.TitleCase(o.Item), o.Model, o.Quantity,
			domain.FormatMoney(o.Total), domain.StatusLabel(o.Status), o.Timestamp,
		)
	case domain.KindIssue:
		i, ok := a.reg.Issue(id)
		if !ok {
			return a.sendRequestNotFound(c, id)
		}
		body = fmt.Sprintf(
			"🔧 *Issue* `%s`\n\nType: %s\nModel: %s\nStatus: *%s*\nReported: %s",
			id, domain.TitleCase(i.Type), i.Model, domain.StatusLabel(i.Status), i.Timestamp,
		)
	case domain.KindCallback:
		cb, ok := a.reg.Callback(id)
		if !ok {
			return a.sendRequestNotFound(c, id)
		}
		body = fmt.Sprintf(
			"📞 *Callback* `%s`\n\nStatus: *%s*\nRequested: %s",
			id, domain.StatusLabel(cb.Status), cb.Timestamp,
		)
	case domain.KindInquiry:
		q, ok := a.reg.Inquiry(id)
		if !ok {
			return a.sendRequestNotFound(c, id)
		}
		body = fmt.Sprintf(
			"📝 *Inquiry* `%s`\n\nStatus: *%s*\nAsked: %s",
			id, domain.StatusLabel(q.Status), q.Timestamp,
		)
	default:
		return a.sendRequestNotFound(c, id)
	}
	return helpers.SendMD(c, body, mainMenu())
}

func (a *App) sendRequestNotFound(c tele.Context, id string) error {
	return helpers.SendMD(c, fmt.Sprintf("❌ *Request ID `%s` not found.*", id), mainMenu())
}
