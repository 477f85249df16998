package bot

import (
	"context"
	"fmt"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/IjehJoel987/Tekegram/core/telegram/callbacks"
	"github.com/IjehJoel987/Tekegram/core/telegram/helpers"
	"github.com/IjehJoel987/Tekegram/core/telegram/keyboard"
	"github.com/IjehJoel987/Tekegram/domain"
	"github.com/IjehJoel987/Tekegram/session"
)

func (a *App) handleReportMenu(c tele.Context) error {
	markup := keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "💿 Software", Unique: cbReportIssue, Data: "software"},
			{Text: "🔩 Hardware", Unique: cbReportIssue, Data: "hardware"},
		},
		[]keyboard.InlineBtn{{Text: "🏠 Main Menu", Unique: cbMainMenu}},
	)
	return helpers.SendMD(c, "🛠 *What kind of issue are you seeing?*", markup)
}

func (a *App) handleReportType(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	issueType := callbacks.CallbackPayload(c)
	if issueType != "software" && issueType != "hardware" {
		return c.Respond(&tele.CallbackResponse{Text: "Pick software or hardware."})
	}

	id := a.reg.CreateIssue(domain.Issue{
		UserID:    c.Sender().ID,
		Username:  c.Sender().Username,
		Name:      senderName(c),
		Type:      issueType,
		Status:    domain.IssueReported,
		Timestamp: domain.Timestamp(time.Now()),
	})
	a.sessions.Set(c.Sender().ID, &session.IssueReport{
		Step:      session.IssueModel,
		IssueType: issueType,
		IssueID:   id,
	})
	a.persist(ctx)

	if err := c.Respond(); err != nil {
		return err
	}
	return helpers.SendText(c, "💻 Which laptop model is affected? (e.g. HP Pavilion 15)")
}

func (a *App) issueInput(c tele.Context, f *session.IssueReport, text string) error {
	ctx := helpers.BuildContext(c)
	switch f.Step {
	case session.IssueModel:
		a.reg.UpdateIssue(f.IssueID, func(i *domain.Issue) {
			i.Model = text
		})
		f.Step = session.IssueDescription
		a.sessions.Set(c.Sender().ID, f)
		a.persist(ctx)
		return helpers.SendMD(c, fmt.Sprintf(
			"📝 Describe the issue in detail. You can also send up to %d photos before the description.",
			domain.MaxIssuePhotos,
		))

	case session.IssueDescription:
		a.reg.UpdateIssue(f.IssueID, func(i *domain.Issue) {
			i.Description = text
			i.Status = domain.IssueUnderReview
		})
		a.sessions.Clear(c.Sender().ID)
		a.persist(ctx)

		issue, ok := a.reg.Issue(f.IssueID)
		if !ok {
			return helpers.SendText(c, "⚠️ Something went sideways saving that report. Try again.", &tele.SendOptions{ReplyMarkup: mainMenu()})
		}
		a.notifyAdmins(ctx, fmt.Sprintf(
			"🔧 *NEW ISSUE* `%s`\n\n%s\n💿 Type: %s\n💻 Model: %s\n\n%s",
			f.IssueID, adminUserLine(issue.Name, issue.Username),
			domain.TitleCase(issue.Type), escapeMD(issue.Model), escapeMD(issue.Description),
		), tele.ModeMarkdown)
		a.forwardIssuePhotos(ctx, f.IssueID, issue)

		return helpers.SendMD(c, fmt.Sprintf(
			"✅ *Issue logged!*\n\nYour reference: `%s`\nStatus: %s\n\nTrack it any time with 🚚 Track Request.",
			f.IssueID, domain.StatusLabel(issue.Status),
		), mainMenu())
	}
	return helpers.SendText(c, "⚠️ Unexpected step. Send /cancel and start over.")
}

func (a *App) forwardIssuePhotos(ctx context.Context, id string, issue domain.Issue) {
	for n, fileID := range issue.Photos {
		photo := &tele.Photo{
			File:    tele.File{FileID: fileID},
			Caption: fmt.Sprintf("🔧 Issue %s photo %d/%d", id, n+1, len(issue.Photos)),
		}
		a.notifyAdmins(ctx, photo)
	}
}
