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

// skipToken lets users leave any profile field unchanged.
const skipToken = "skip"

func (a *App) handleProfileMenu(c tele.Context) error {
	profile := a.reg.EnsureProfile(c.Sender().ID)
	if !profile.HasContactInfo() {
		markup := keyboard.InlineButtonsRows(
			[]keyboard.InlineBtn{{Text: "📇 Set up my profile", Unique: cbSetupProfile}},
			[]keyboard.InlineBtn{{Text: "🏠 Main Menu", Unique: cbMainMenu}},
		)
		return helpers.SendMD(c, "👤 *My Profile*\n\nNothing here yet. Set it up so we can reach you about your requests.", markup)
	}

	markup := keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{Text: "✏️ Update", Unique: cbSetupProfile}},
		[]keyboard.InlineBtn{{Text: "🏠 Main Menu", Unique: cbMainMenu}},
	)
	return helpers.SendMD(c, renderProfile(profile), markup)
}

func renderProfile(p domain.UserProfile) string {
	var b strings.Builder
	b.WriteString("👤 *My Profile*\n\n")
	fmt.Fprintf(&b, "Name: %s\n", orDash(escapeMD(p.Name)))
	fmt.Fprintf(&b, "Phone: %s\n", orDash(p.Phone))
	fmt.Fprintf(&b, "Email: %s\n", orDash(p.Email))
	fmt.Fprintf(&b, "Department: %s\n", orDash(p.Department))
	fmt.Fprintf(&b, "Hall: %s\n", orDash(p.Hall))
	fmt.Fprintf(&b, "Room: %s\n\n", orDash(p.Room))
	fmt.Fprintf(&b, "📊 Requests: %d\n", p.Requests)
	fmt.Fprintf(&b, "🕘 Last request: `%s`\n", p.LastRequest)
	if p.PreferredTech != "" {
		fmt.Fprintf(&b, "🧑‍🔧 Preferred technician: %s\n", p.PreferredTech)
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func (a *App) handleSetupProfile(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	a.sessions.Set(c.Sender().ID, &session.Profile{Step: session.ProfileName})
	a.persist(ctx)
	if err := c.Respond(); err != nil {
		return err
	}
	return helpers.SendMD(c, "📇 What's your full name? (or type `skip`)")
}

func (a *App) profileInput(c tele.Context, f *session.Profile, text string) error {
	ctx := helpers.BuildContext(c)
	skipped := strings.EqualFold(text, skipToken)

	if !skipped {
		switch f.Step {
		case session.ProfilePhone:
			if !domain.IsValidPhone(text) {
				return helpers.SendMD(c, "❌ Invalid phone format. Try again or type `skip`.")
			}
		case session.ProfileEmail:
			if !domain.IsValidEmail(text) {
				return helpers.SendMD(c, "❌ Invalid email format. Try again or type `skip`.")
			}
		}
		step := f.Step
		a.reg.UpdateProfile(c.Sender().ID, func(p *domain.UserProfile) {
			switch step {
			case session.ProfileName:
				p.Name = text
			case session.ProfilePhone:
				p.Phone = text
			case session.ProfileEmail:
				p.Email = text
			case session.ProfileDepartment:
				p.Department = text
			case session.ProfileHall:
				p.Hall = text
			case session.ProfileRoom:
				p.Room = text
			}
		})
	}

	next := session.NextProfileStep(f.Step)
	if next == "" {
		a.sessions.Clear(c.Sender().ID)
		a.persist(ctx)
		profile, _ := a.reg.Profile(c.Sender().ID)
		return helpers.SendMD(c, "✅ *Profile saved!*\n\n"+renderProfile(profile), mainMenu())
	}

	f.Step = next
	a.sessions.Set(c.Sender().ID, f)
	a.persist(ctx)
	return helpers.SendMD(c, profilePrompt(next))
}

func profilePrompt(s session.ProfileStep) string {
	switch s {
	case session.ProfilePhone:
		return "📱 Phone number? (or type `skip`)"
	case session.ProfileEmail:
		return "📧 Email address? (or type `skip`)"
	case session.ProfileDepartment:
		return "🏫 Department? (or type `skip`)"
	case session.ProfileHall:
		return "🏠 Hall of residence? (or type `skip`)"
	case session.ProfileRoom:
		return "🚪 Room number? (or type `skip`)"
	}
	return "📇 What's your full name? (or type `skip`)"
}

func (a *App) handleSettings(c tele.Context) error {
	profile := a.reg.EnsureProfile(c.Sender().ID)
	return helpers.SendMD(c, "⚙️ *Settings*", settingsMarkup(profile))
}

func settingsMarkup(p domain.UserProfile) *tele.ReplyMarkup {
	notif := "🔔 Notifications: ON"
	if !p.NotificationsEnabled {
		notif = "🔕 Notifications: OFF"
	}
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{Text: notif, Unique: cbToggleNotifs}},
		[]keyboard.InlineBtn{{Text: "🧑‍🔧 Preferred technician", Unique: cbPreferredTech}},
		[]keyboard.InlineBtn{{Text: "📇 Update contact info", Unique: cbSetupProfile}},
		[]keyboard.InlineBtn{{Text: "🏠 Main Menu", Unique: cbMainMenu}},
	)
}

func (a *App) handleToggleNotifications(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	a.reg.UpdateProfile(c.Sender().ID, func(p *domain.UserProfile) {
		p.NotificationsEnabled = !p.NotificationsEnabled
	})
	a.persist(ctx)
	profile, _ := a.reg.Profile(c.Sender().ID)
	state := "on"
	if !profile.NotificationsEnabled {
		state = "off"
	}
	if err := c.Respond(&tele.CallbackResponse{Text: "Notifications " + state}); err != nil {
		return err
	}
	return helpers.EditMD(c, "⚙️ *Settings*", settingsMarkup(profile))
}

func (a *App) handlePreferredTechMenu(c tele.Context) error {
	techs := a.reg.Technicians()
	if len(techs) == 0 {
		return c.Respond(&tele.CallbackResponse{Text: "No technicians on the roster yet."})
	}
	btns := make([]keyboard.InlineBtn, 0, len(techs))
	for i, t := range techs {
		btns = append(btns, keyboard.InlineBtn{
			Text:   fmt.Sprintf("%s (%s)", t.Name, t.Rating),
			Unique: cbSelectTech,
			Data:   strconv.Itoa(i),
		})
	}
	if err := c.Respond(); err != nil {
		return err
	}
	return helpers.EditMD(c, "🧑‍🔧 *Pick your preferred technician:*", keyboard.InlineButtonsNPerRow(btns, 1))
}

func (a *App) handleSelectTech(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	idx, err := callbacks.PayloadInt(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Bad selection."})
	}
	tech, ok := a.reg.Technician(idx)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "That technician is gone from the roster."})
	}
	a.reg.UpdateProfile(c.Sender().ID, func(p *domain.UserProfile) {
		p.PreferredTech = tech.Name
	})
	a.persist(ctx)
	if err := c.Respond(&tele.CallbackResponse{Text: "Saved: " + tech.Name}); err != nil {
		return err
	}
	profile, _ := a.reg.Profile(c.Sender().ID)
	return helpers.EditMD(c, "⚙️ *Settings*", settingsMarkup(profile))
}
