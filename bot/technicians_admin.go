package bot

import (
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/IjehJoel987/Tekegram/core/telegram/callbacks"
	"github.com/IjehJoel987/Tekegram/core/telegram/helpers"
	"github.com/IjehJoel987/Tekegram/core/telegram/keyboard"
	"github.com/IjehJoel987/Tekegram/domain"
	"github.com/IjehJoel987/Tekegram/session"
)

func (a *App) handleTechniciansAdmin(c tele.Context) error {
	markup := keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "➕ Add", Unique: cbTechAction, Data: string(session.TechAdd)},
			{Text: "✏️ Edit", Unique: cbTechAction, Data: string(session.TechEdit)},
			{Text: "🗑 Remove", Unique: cbTechAction, Data: string(session.TechRemove)},
		},
	)
	return helpers.SendMD(c, a.rosterText(), markup)
}

func (a *App) rosterText() string {
	techs := a.reg.Technicians()
	if len(techs) == 0 {
		return "🧑‍🔧 *Technician Roster*\n\nEmpty."
	}
	var b strings.Builder
	b.WriteString("🧑‍🔧 *Technician Roster*\n\n")
	for i, t := range techs {
		fmt.Fprintf(&b, "%d. %s — %s — ⭐ %s — %s — %s\n", i+1, t.Name, t.Contact, t.Rating, t.Fee, t.Area)
	}
	return b.String()
}

func (a *App) handleTechAction(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	action := session.TechAction(callbacks.CallbackPayload(c))

	switch action {
	case session.TechAdd:
		a.sessions.Set(c.Sender().ID, &session.TechnicianEdit{
			Action: session.TechAdd,
			Step:   session.TechStepName,
		})
		a.persist(ctx)
		if err := c.Respond(); err != nil {
			return err
		}
		return helpers.SendText(c, "🧑‍🔧 New technician's name?")

	case session.TechEdit, session.TechRemove:
		if len(a.reg.Technicians()) == 0 {
			return c.Respond(&tele.CallbackResponse{Text: "The roster is empty."})
		}
		a.sessions.Set(c.Sender().ID, &session.TechnicianEdit{
			Action: action,
			Step:   session.TechStepSelect,
		})
		a.persist(ctx)
		if err := c.Respond(); err != nil {
			return err
		}
		return helpers.SendMD(c, a.rosterText()+"\nSend the technician's number.")
	}
	return c.Respond(&tele.CallbackResponse{Text: "Unknown action."})
}

func (a *App) technicianInput(c tele.Context, f *session.TechnicianEdit, text string) error {
	ctx := helpers.BuildContext(c)
	switch f.Step {
	case session.TechStepName:
		f.Draft.Name = text
		f.Step = session.TechStepContact
		a.sessions.Set(c.Sender().ID, f)
		a.persist(ctx)
		return helpers.SendText(c, "📞 Contact number?")
	case session.TechStepContact:
		f.Draft.Contact = text
		f.Step = session.TechStepRating
		a.sessions.Set(c.Sender().ID, f)
		a.persist(ctx)
		return helpers.SendMD(c, "⭐ Rating? (e.g. `4.5/5`)")
	case session.TechStepRating:
		f.Draft.Rating = text
		f.Step = session.TechStepFee
		a.sessions.Set(c.Sender().ID, f)
		a.persist(ctx)
		return helpers.SendMD(c, "💵 Call-out fee? (e.g. `₦2,000`)")
	case session.TechStepFee:
		f.Draft.Fee = text
		f.Step = session.TechStepArea
		a.sessions.Set(c.Sender().ID, f)
		a.persist(ctx)
		return helpers.SendText(c, "📍 Area covered?")
	case session.TechStepArea:
		f.Draft.Area = text
		total := a.reg.AddTechnician(f.Draft)
		a.sessions.Clear(c.Sender().ID)
		a.persist(ctx)
		return helpers.SendMD(c, fmt.Sprintf(
			"✅ *%s* added. Roster now has %d technician(s).", f.Draft.Name, total), mainMenu())

	case session.TechStepSelect:
		n, err := strconv.Atoi(text)
		techs := a.reg.Technicians()
		if err != nil || n < 1 || n > len(techs) {
			return helpers.SendText(c, fmt.Sprintf("❌ Send a number between 1 and %d.", len(techs)))
		}
		f.Index = n - 1
		if f.Action == session.TechRemove {
			removed, err := a.reg.RemoveTechnician(f.Index)
			a.sessions.Clear(c.Sender().ID)
			a.persist(ctx)
			if err != nil {
				return helpers.SendText(c, "❌ Could not remove: "+err.Error())
			}
			return helpers.SendMD(c, fmt.Sprintf("🗑 *%s* removed from the roster.", removed.Name), mainMenu())
		}
		f.Step = session.TechStepField
		a.sessions.Set(c.Sender().ID, f)
		a.persist(ctx)
		return helpers.SendMD(c, "Which field?\n\n`1` Name\n`2` Contact\n`3` Rating\n`4` Fee\n`5` Area")

	case session.TechStepField:
		n, err := strconv.Atoi(text)
		if err != nil {
			return helpers.SendText(c, "❌ Send a number between 1 and 5.")
		}
		field, ok := domain.TechnicianFieldByIndex(n)
		if !ok {
			return helpers.SendText(c, "❌ Send a number between 1 and 5.")
		}
		tech, exists := a.reg.Technician(f.Index)
		if !exists {
			a.sessions.Clear(c.Sender().ID)
			a.persist(ctx)
			return helpers.SendText(c, "❌ That technician is gone. Start over with /technicians.")
		}
		f.Field = field
		f.Step = session.TechStepValue
		a.sessions.Set(c.Sender().ID, f)
		a.persist(ctx)
		return helpers.SendMD(c, fmt.Sprintf(
			"Current %s: `%s`\n\nSend the new value.", field, field.Get(tech)))

	case session.TechStepValue:
		if err := a.reg.UpdateTechnician(f.Index, f.Field, text); err != nil {
			a.sessions.Clear(c.Sender().ID)
			a.persist(ctx)
			return helpers.SendText(c, "❌ Could not update: "+err.Error())
		}
		a.sessions.Clear(c.Sender().ID)
		a.persist(ctx)
		return helpers.SendMD(c, "✅ Updated.\n\n"+a.rosterText(), mainMenu())
	}
	return helpers.SendText(c, "⚠️ Unexpected step. Send /cancel and start over.")
}
