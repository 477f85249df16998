package bot

import (
	"fmt"

	tele "gopkg.in/telebot.v4"

	"github.com/IjehJoel987/Tekegram/core/telegram/helpers"
	"github.com/IjehJoel987/Tekegram/domain"
	"github.com/IjehJoel987/Tekegram/session"
)

// handlePhoto routes incoming photos: attachments while an issue report is
// collecting its description, otherwise a payment receipt for the user's
// most recent payable order.
func (a *App) handlePhoto(c tele.Context) error {
	msg := c.Message()
	if msg == nil || msg.Photo == nil {
		return nil
	}
	ctx := helpers.BuildContext(c)
	userID := c.Sender().ID
	fileID := msg.Photo.FileID

	if flow, ok := a.sessions.Get(userID); ok {
		f, isIssue := flow.(*session.IssueReport)
		if !isIssue || f.Step != session.IssueDescription {
			return helpers.SendText(c, "🖼 Finish the current step first, or /cancel.")
		}
		var attached bool
		var count int
		a.reg.UpdateIssue(f.IssueID, func(i *domain.Issue) {
			attached = i.AttachPhoto(fileID)
			count = len(i.Photos)
		})
		if !attached {
			return helpers.SendText(c, fmt.Sprintf(
				"🖼 Photo limit reached (%d). Now describe the issue in text.",
				domain.MaxIssuePhotos,
			))
		}
		a.persist(ctx)
		return helpers.SendText(c, fmt.Sprintf(
			"🖼 Photo saved (%d/%d). Add more or describe the issue in text.",
			count, domain.MaxIssuePhotos,
		))
	}

	orderID, ok := a.latestPayableOrder(userID)
	if !ok {
		return helpers.SendMD(c, "🖼 Photo received. If it's for an issue report, use *Report an Issue* first.")
	}

	a.reg.UpdateOrder(orderID, func(o *domain.Order) {
		o.Status = domain.OrderPaymentSubmitted
	})
	a.persist(ctx)

	order, _ := a.reg.Order(orderID)
	a.notifyAdmins(ctx, &tele.Photo{
		File: tele.File{FileID: fileID},
		Caption: fmt.Sprintf(
			"💳 PAYMENT RECEIPT for %s\n%s\nTotal: %s",
			orderID, adminUserLine(order.Name, order.Username), domain.FormatMoney(order.Total),
		),
	})
	return helpers.SendMD(c, fmt.Sprintf(
		"✅ *Receipt received for* `%s`*!*\n\nWe'll verify the payment and update your order.",
		orderID,
	), mainMenu())
}

// latestPayableOrder returns the user's newest order still waiting on
// payment. Ids carry no ordering, so recency comes from the timestamp.
func (a *App) latestPayableOrder(userID int64) (string, bool) {
	var bestID, bestTS string
	for _, id := range a.reg.RequestIDs(domain.KindOrder) {
		o, ok := a.reg.Order(id)
		if !ok || o.UserID != userID {
			continue
		}
		if o.Status != domain.OrderPendingConfirmation && o.Status != domain.OrderConfirmed {
			continue
		}
		if o.Timestamp >= bestTS {
			bestID, bestTS = id, o.Timestamp
		}
	}
	return bestID, bestID != ""
}
