package bot

import (
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/IjehJoel987/Tekegram/core/telegram/helpers"
	"github.com/IjehJoel987/Tekegram/core/telegram/keyboard"
	"github.com/IjehJoel987/Tekegram/domain"
)

// Main-menu reply-keyboard labels. Incoming text is matched against these
// verbatim, so they double as routing tokens.
const (
	menuPurchase    = "💳 Purchase"
	menuInquiry     = "❓ Inquiry"
	menuReportIssue = "🛠 Report an Issue"
	menuTrack       = "🚚 Track Request"
	menuPriceList   = "💰 Price List"
	menuTips        = "📘 Tips & Guides"
	menuTechnician  = "🧑‍🔧 Find a Technician"
	menuProfile     = "👤 My Profile"
	menuCallback    = "📞 Request Callback"
	menuSettings    = "⚙️ Settings"
)

func mainMenu() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{menuPurchase, menuInquiry},
		[]string{menuReportIssue, menuTrack},
		[]string{menuPriceList, menuTips},
		[]string{menuTechnician, menuProfile},
		[]string{menuCallback, menuSettings},
	)
}

func backToMenuMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "🏠 Main Menu", Unique: cbMainMenu},
	})
}

// menuHandler resolves a main-menu label to its handler.
func (a *App) menuHandler(label string) (tele.HandlerFunc, bool) {
	switch label {
	case menuPurchase:
		return a.handlePurchaseMenu, true
	case menuInquiry:
		return a.handleInquiryMenu, true
	case menuReportIssue:
		return a.handleReportMenu, true
	case menuTrack:
		return a.handleTrackMenu, true
	case menuPriceList:
		return a.handlePriceList, true
	case menuTips:
		return a.handleTipsMenu, true
	case menuTechnician:
		return a.handleTechnicianList, true
	case menuProfile:
		return a.handleProfileMenu, true
	case menuCallback:
		return a.handleCallbackMenu, true
	case menuSettings:
		return a.handleSettings, true
	}
	return nil, false
}

const welcomeText = "👋 Welcome to *PC DOCTOR* — powered by OBLAK Tech!\n\n" +
	"We fix laptops, sell parts, and keep you running.\n" +
	"Pick an option from the menu below to get started."

func (a *App) handleStart(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	a.reg.EnsureProfile(c.Sender().ID)
	a.sessions.Clear(c.Sender().ID)
	a.persist(ctx)
	return helpers.SendMD(c, welcomeText, mainMenu())
}

func (a *App) handleHelp(c tele.Context) error {
	var b strings.Builder
	b.WriteString("ℹ️ *Commands*\n\n")
	b.WriteString("/start — main menu\n")
	b.WriteString("/help — this message\n")
	b.WriteString("/cancel — abort the current process\n")
	b.WriteString("/id — show your Telegram ID\n")
	if a.reg.IsAdmin(c.Sender().ID) {
		b.WriteString("\n👮 *Admin*\n\n")
		b.WriteString("/admin — stats\n")
		b.WriteString("/manage — manage requests\n")
		b.WriteString("/broadcast — message all users\n")
		b.WriteString("/prices — edit the price list\n")
		b.WriteString("/technicians — manage the roster\n")
		b.WriteString("/payment — edit payment details\n")
		b.WriteString("/content — edit tips and canned answers\n")
		b.WriteString("/dump — raw data file\n")
		b.WriteString("/addadmin, /removeadmin, /listadmins\n")
	}
	return helpers.SendMD(c, b.String(), mainMenu())
}

func (a *App) handleCancel(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	if a.sessions.Clear(c.Sender().ID) {
		a.persist(ctx)
		return helpers.SendText(c, "❌ Bet. Process canceled. Pick something else from the menu.", &tele.SendOptions{ReplyMarkup: mainMenu()})
	}
	return helpers.SendText(c, "Nothing to cancel. Pick an option from the menu.", &tele.SendOptions{ReplyMarkup: mainMenu()})
}

func (a *App) handleID(c tele.Context) error {
	return helpers.SendMD(c, fmt.Sprintf("🆔 Your ID: `%d`", c.Sender().ID))
}

// handleText is the fallback for text that is neither a command nor part of
// an active flow: menu labels first, then bare request ids, then a nudge.
func (a *App) handleText(c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	if h, ok := a.menuHandler(text); ok {
		return h(c)
	}
	if domain.IsRequestID(text) {
		return a.sendRequestStatus(c, strings.ToUpper(text))
	}
	return a.handleUnknown(c)
}

func (a *App) handleUnknown(c tele.Context) error {
	return helpers.SendText(c, "🤷 I didn't get that. Tap a button below to keep it moving.", &tele.SendOptions{ReplyMarkup: mainMenu()})
}

func (a *App) handleUnexpectedDocument(c tele.Context) error {
	return helpers.SendText(c, "📎 I can't use that file. If it's a payment receipt, send it as a photo.")
}

func (a *App) handleThrottled(c tele.Context) error {
	return helpers.SendText(c, "⏳ Chill a sec… still processing your last request.")
}

func (a *App) handleAdminReject(c tele.Context) error {
	return helpers.SendText(c, "🚫 Admins only.")
}

func (a *App) handleMainMenuCallback(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	if a.sessions.Clear(c.Sender().ID) {
		a.persist(ctx)
	}
	if err := c.Respond(); err != nil {
		return err
	}
	return helpers.SendMD(c, "🏠 Back to the main menu. What next?", mainMenu())
}

// itemEmoji decorates catalog item buttons.
func itemEmoji(item string) string {
	switch {
	case strings.Contains(item, "battery"):
		return "🔋"
	case strings.Contains(item, "ram"):
		return "🧠"
	case strings.Contains(item, "screen"):
		return "💡"
	case strings.Contains(item, "keyboard"):
		return "⌨️"
	case strings.Contains(item, "charger"):
		return "⚡"
	case strings.Contains(item, "ssd"), strings.Contains(item, "hdd"):
		return "💽"
	}
	return "🔧"
}
