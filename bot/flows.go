package bot

import (
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/IjehJoel987/Tekegram/core/telegram/helpers"
	"github.com/IjehJoel987/Tekegram/session"
)

// InProgress satisfies the text router's FSM interface.
func (a *App) InProgress(userID int64) bool {
	return a.sessions.InProgress(userID)
}

// ManagerHandler receives every text update while a flow is active and
// dispatches on the flow's concrete type.
//
// A main-menu label typed mid-flow cancels the flow and runs the menu action
// as a fresh request, except on free-text steps: an address line that happens
// to equal a button label is still an address.
func (a *App) ManagerHandler(c tele.Context) error {
	userID := c.Sender().ID
	flow, ok := a.sessions.Get(userID)
	if !ok {
		return a.handleText(c)
	}

	text := strings.TrimSpace(c.Text())
	if !flow.FreeText() {
		if h, menuHit := a.menuHandler(text); menuHit {
			a.sessions.Clear(userID)
			a.persist(helpers.BuildContext(c))
			if err := helpers.SendText(c, "❌ Process canceled. Here you go:"); err != nil {
				return err
			}
			return h(c)
		}
	}
	if text == "" {
		return helpers.SendText(c, "✍️ Please answer with text, or /cancel to stop.")
	}

	switch f := flow.(type) {
	case *session.Purchase:
		return a.purchaseInput(c, f, text)
	case *session.IssueReport:
		return a.issueInput(c, f, text)
	case *session.Callback:
		return a.callbackInput(c, text)
	case *session.Track:
		return a.trackInput(c, text)
	case *session.InquiryOther:
		return a.inquiryInput(c, text)
	case *session.Profile:
		return a.profileInput(c, f, text)
	case *session.Price:
		return a.priceInput(c, f, text)
	case *session.TechnicianEdit:
		return a.technicianInput(c, f, text)
	case *session.Payment:
		return a.paymentInput(c, f, text)
	case *session.Content:
		return a.contentInput(c, f, text)
	}

	// A flow kind this build does not know. Drop it rather than trapping
	// the user.
	a.sessions.Clear(userID)
	a.persist(helpers.BuildContext(c))
	return helpers.SendText(c, fmt.Sprintf("⚠️ Lost track of that process (%s). Starting over.", flow.Kind()), &tele.SendOptions{ReplyMarkup: mainMenu()})
}
