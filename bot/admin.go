package bot

import (
	"errors"
	"fmt"
	"html"
	"os"
	"sort"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/IjehJoel987/Tekegram/core/telegram/callbacks"
	"github.com/IjehJoel987/Tekegram/core/telegram/helpers"
	"github.com/IjehJoel987/Tekegram/core/telegram/keyboard"
	"github.com/IjehJoel987/Tekegram/domain"
	"github.com/IjehJoel987/Tekegram/lifecycle"
	"github.com/IjehJoel987/Tekegram/registry"
)

const adminListLimit = 10

func (a *App) handleAdminStats(c tele.Context) error {
	counts := a.reg.Counts()
	var b strings.Builder
	b.WriteString("📊 *Bot Stats*\n\n")
	fmt.Fprintf(&b, "👥 Users: %d\n", counts.Users)
	fmt.Fprintf(&b, "📦 Orders: %d\n", counts.Orders)
	fmt.Fprintf(&b, "🔧 Issues: %d\n", counts.Issues)
	fmt.Fprintf(&b, "📞 Callbacks: %d\n", counts.Callbacks)
	fmt.Fprintf(&b, "📝 Inquiries: %d\n", counts.Inquiries)
	fmt.Fprintf(&b, "⏳ Active sessions: %d\n", a.sessions.Count())
	return helpers.SendMD(c, b.String())
}

func (a *App) handleAdminManage(c tele.Context) error {
	markup := keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "📦 Orders", Unique: cbAdminList, Data: string(domain.KindOrder)},
			{Text: "🔧 Issues", Unique: cbAdminList, Data: string(domain.KindIssue)},
		},
		[]keyboard.InlineBtn{
			{Text: "📞 Callbacks", Unique: cbAdminList, Data: string(domain.KindCallback)},
			{Text: "📝 Inquiries", Unique: cbAdminList, Data: string(domain.KindInquiry)},
		},
	)
	if c.Callback() != nil {
		if err := c.Respond(); err != nil {
			return err
		}
		return helpers.EditOrSendMD(c, "🗂 *Manage Requests*", markup)
	}
	return helpers.SendMD(c, "🗂 *Manage Requests*", markup)
}

func (a *App) handleAdminListKind(c tele.Context) error {
	kind := domain.RequestKind(callbacks.CallbackPayload(c))
	if kind.InitialStatus() == "" {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown request type."})
	}

	type entry struct {
		id, ts string
		status domain.Status
	}
	var entries []entry
	for _, id := range a.reg.RequestIDs(kind) {
		status, ok := a.reg.RequestStatus(id)
		if !ok {
			continue
		}
		entries = append(entries, entry{id: id, ts: a.requestTimestamp(id), status: status})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ts > entries[j].ts })
	if len(entries) > adminListLimit {
		entries = entries[:adminListLimit]
	}

	if err := c.Respond(); err != nil {
		return err
	}
	if len(entries) == 0 {
		return helpers.EditOrSendMD(c, fmt.Sprintf("🗂 No %s yet.", kind.Label()),
			keyboard.InlineButtons([]keyboard.InlineBtn{{Text: "⬅️ Back", Unique: cbAdminManage}}))
	}

	btns := make([]keyboard.InlineBtn, 0, len(entries)+1)
	for _, e := range entries {
		btns = append(btns, keyboard.InlineBtn{
			Text:   fmt.Sprintf("%s %s · %s", statusEmoji(e.status), e.id, domain.StatusLabel(e.status)),
			Unique: cbAdminView,
			Data:   e.id,
		})
	}
	btns = append(btns, keyboard.InlineBtn{Text: "⬅️ Back", Unique: cbAdminManage})
	return helpers.EditOrSendMD(c,
		fmt.Sprintf("🗂 *Latest %s* (newest first)", domain.TitleCase(kind.Label())),
		keyboard.InlineButtonsNPerRow(btns, 1))
}

func (a *App) requestTimestamp(id string) string {
	switch kind, _ := domain.KindByPrefix(id); kind {
	case domain.KindOrder:
		if o, ok := a.reg.Order(id); ok {
			return o.Timestamp
		}
	case domain.KindIssue:
		if i, ok := a.reg.Issue(id); ok {
			return i.Timestamp
		}
	case domain.KindCallback:
		if cb, ok := a.reg.Callback(id); ok {
			return cb.Timestamp
		}
	case domain.KindInquiry:
		if q, ok := a.reg.Inquiry(id); ok {
			return q.Timestamp
		}
	}
	return ""
}

func statusEmoji(s domain.Status) string {
	switch s {
	// IssueResolved and InquiryResolved share the "resolved" value, so one
	// case covers both.
	case domain.OrderDelivered, domain.OrderCancelled,
		domain.IssueResolved, domain.IssueClosed,
		domain.CallbackCompleted:
		return "✅"
	}
	return "⏳"
}

func (a *App) handleAdminView(c tele.Context) error {
	id := callbacks.CallbackPayload(c)
	if err := c.Respond(); err != nil {
		return err
	}
	return a.renderAdminView(c, id)
}

func (a *App) renderAdminView(c tele.Context, id string) error {
	kind, ok := domain.KindByPrefix(id)
	if !ok {
		return helpers.EditOrSendMD(c, fmt.Sprintf("❌ Request `%s` not found.", id))
	}
	body, found := a.adminRequestDetail(id, kind)
	if !found {
		return helpers.EditOrSendMD(c, fmt.Sprintf("❌ Request `%s` not found.", id))
	}
	current, _ := a.reg.RequestStatus(id)

	statuses := kind.AdminStatuses()
	btns := make([]keyboard.InlineBtn, 0, len(statuses)+1)
	for _, s := range statuses {
		mark := "⚪"
		if s == current {
			mark = "✅"
		}
		btns = append(btns, keyboard.InlineBtn{
			Text:   mark + " " + domain.StatusLabel(s),
			Unique: cbSetStatus,
			Data:   id + "|" + string(s),
		})
	}
	markup := keyboard.InlineButtonsNPerRow(btns, 2)
	markup.InlineKeyboard = append(markup.InlineKeyboard,
		keyboard.ToInlineKeyboard([][]tele.Btn{{markup.Data("⬅️ Back", cbAdminList, string(kind))}})...)
	return helpers.EditOrSendMD(c, body, markup)
}

func (a *App) adminRequestDetail(id string, kind domain.RequestKind) (string, bool) {
	switch kind {
	case domain.KindOrder:
		o, ok := a.reg.Order(id)
		if !ok {
			return "", false
		}
		return fmt.Sprintf(
			"📦 *Order* `%s`\n\n%s\nUser ID: `%d`\n\nItem: %s (%s)\nQuantity: %d x %s\nTotal: %s\n📍 %s\n\nStatus: *%s*\nPlaced: %s",
			id, adminUserLine(o.Name, o.Username), o.UserID,
			domain.TitleCase(o.Item), o.Model, o.Quantity, domain.FormatMoney(o.UnitPrice),
			domain.FormatMoney(o.Total), orDash(escapeMD(o.Address)),
			domain.StatusLabel(o.Status), o.Timestamp,
		), true
	case domain.KindIssue:
		i, ok := a.reg.Issue(id)
		if !ok {
			return "", false
		}
		return fmt.Sprintf(
			"🔧 *Issue* `%s`\n\n%s\nUser ID: `%d`\n\nType: %s\nModel: %s\nPhotos: %d\n\n%s\n\nStatus: *%s*\nReported: %s",
			id, adminUserLine(i.Name, i.Username), i.UserID,
			domain.TitleCase(i.Type), orDash(escapeMD(i.Model)), len(i.Photos), orDash(escapeMD(i.Description)),
			domain.StatusLabel(i.Status), i.Timestamp,
		), true
	case domain.KindCallback:
		cb, ok := a.reg.Callback(id)
		if !ok {
			return "", false
		}
		return fmt.Sprintf(
			"📞 *Callback* `%s`\n\n%s\nUser ID: `%d`\n\n%s\n\nStatus: *%s*\nRequested: %s",
			id, adminUserLine(cb.Name, cb.Username), cb.UserID,
			escapeMD(cb.PhoneAndIssue), domain.StatusLabel(cb.Status), cb.Timestamp,
		), true
	case domain.KindInquiry:
		q, ok := a.reg.Inquiry(id)
		if !ok {
			return "", false
		}
		return fmt.Sprintf(
			"📝 *Inquiry* `%s`\n\n%s\nUser ID: `%d`\n\n%s\n\nStatus: *%s*\nAsked: %s",
			id, adminUserLine(q.Name, q.Username), q.UserID,
			escapeMD(q.Text), domain.StatusLabel(q.Status), q.Timestamp,
		), true
	}
	return "", false
}

func (a *App) handleSetStatus(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	parts, err := callbacks.PayloadParts(c, "|")
	if err != nil || len(parts) != 2 {
		return c.Respond(&tele.CallbackResponse{Text: "Bad status payload."})
	}
	id, status := parts[0], domain.Status(parts[1])

	// The engine persists and notifies; repeat taps go through the same
	// path rather than being deduplicated.
	_, err = a.engine.Transition(ctx, id, status)
	switch {
	case errors.Is(err, lifecycle.ErrNotFound):
		return c.Respond(&tele.CallbackResponse{Text: "Request not found."})
	case err != nil:
		var invalid *domain.InvalidStatusError
		if errors.As(err, &invalid) {
			return c.Respond(&tele.CallbackResponse{Text: invalid.Error()})
		}
		return err
	}

	if err := c.Respond(&tele.CallbackResponse{Text: "Updated to " + domain.StatusLabel(status)}); err != nil {
		return err
	}
	return a.renderAdminView(c, id)
}

func (a *App) handleBroadcast(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	msg := strings.TrimSpace(c.Message().Payload)
	if msg == "" {
		return helpers.SendMD(c, "Usage: `/broadcast <message>`")
	}

	sent := 0
	for _, id := range a.reg.UserIDs() {
		profile, ok := a.reg.Profile(id)
		if !ok || !profile.NotificationsEnabled {
			continue
		}
		if err := a.sendTo(ctx, id, "📣 "+msg); err == nil {
			sent++
		}
	}
	return helpers.SendText(c, fmt.Sprintf("📣 Broadcast sent to %d users.", sent))
}

const dumpLimit = 4000

func (a *App) handleDump(c tele.Context) error {
	raw, err := os.ReadFile(a.store.Path())
	if err != nil {
		return helpers.SendText(c, "❌ Could not read the data file: "+err.Error())
	}
	if len(raw) > dumpLimit {
		raw = raw[:dumpLimit]
	}
	return helpers.SendText(c, "<pre>"+html.EscapeString(string(raw))+"</pre>", &tele.SendOptions{ParseMode: tele.ModeHTML})
}

func (a *App) handleAddAdmin(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	if !a.reg.IsRootOwner(c.Sender().ID) {
		return helpers.SendText(c, "🚫 Only the owner can manage admins.")
	}
	id, err := strconv.ParseInt(strings.TrimSpace(c.Message().Payload), 10, 64)
	if err != nil {
		return helpers.SendMD(c, "Usage: `/addadmin <user id>`")
	}
	if !a.reg.AddAdmin(id) {
		return helpers.SendText(c, "That user is already an admin.")
	}
	a.persist(ctx)
	return helpers.SendMD(c, fmt.Sprintf("✅ `%d` is now an admin.", id))
}

func (a *App) handleRemoveAdmin(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	if !a.reg.IsRootOwner(c.Sender().ID) {
		return helpers.SendText(c, "🚫 Only the owner can manage admins.")
	}
	id, err := strconv.ParseInt(strings.TrimSpace(c.Message().Payload), 10, 64)
	if err != nil {
		return helpers.SendMD(c, "Usage: `/removeadmin <user id>`")
	}
	if err := a.reg.RemoveAdmin(id); err != nil {
		if errors.Is(err, registry.ErrRootOwner) {
			return helpers.SendText(c, "🚫 The owner cannot be removed.")
		}
		return helpers.SendText(c, "That user is not an admin.")
	}
	a.persist(ctx)
	return helpers.SendMD(c, fmt.Sprintf("✅ `%d` is no longer an admin.", id))
}

func (a *App) handleListAdmins(c tele.Context) error {
	var b strings.Builder
	b.WriteString("👮 *Admins*\n\n")
	for _, id := range a.reg.Admins() {
		if a.reg.IsRootOwner(id) {
			fmt.Fprintf(&b, "• `%d` (Owner)\n", id)
		} else {
			fmt.Fprintf(&b, "• `%d`\n", id)
		}
	}
	return helpers.SendMD(c, b.String())
}
