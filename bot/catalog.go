package bot

import (
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/IjehJoel987/Tekegram/core/telegram/callbacks"
	"github.com/IjehJoel987/Tekegram/core/telegram/helpers"
	"github.com/IjehJoel987/Tekegram/core/telegram/keyboard"
	"github.com/IjehJoel987/Tekegram/domain"
)

var priceGroups = []string{
	"Memory (RAM)", "Storage", "Power", "Display", "Input", "Other Components",
}

func priceGroup(item string) string {
	switch {
	case strings.Contains(item, "ram"):
		return "Memory (RAM)"
	case strings.Contains(item, "ssd"), strings.Contains(item, "hdd"):
		return "Storage"
	case strings.Contains(item, "battery"), strings.Contains(item, "charger"):
		return "Power"
	case strings.Contains(item, "screen"):
		return "Display"
	case strings.Contains(item, "keyboard"):
		return "Input"
	}
	return "Other Components"
}

func (a *App) handlePriceList(c tele.Context) error {
	catalog := a.reg.Catalog()
	if len(catalog) == 0 {
		return helpers.SendText(c, "💰 The price list is empty right now.")
	}

	grouped := make(map[string][]string)
	for _, item := range sortedKeys(catalog) {
		g := priceGroup(item)
		grouped[g] = append(grouped[g], item)
	}

	var b strings.Builder
	b.WriteString("💰 *PRICE LIST*\n")
	for _, group := range priceGroups {
		items := grouped[group]
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n*%s*\n", group)
		for _, item := range items {
			fmt.Fprintf(&b, "%s %s\n", itemEmoji(item), domain.TitleCase(item))
			for _, model := range sortedKeys(catalog[item]) {
				fmt.Fprintf(&b, "   %s — %s\n", model, domain.FormatMoney(catalog[item][model]))
			}
		}
	}
	b.WriteString("\n_PRICES MAY VARY. Confirm before paying._")
	return helpers.SendMD(c, b.String(), backToMenuMarkup())
}

func (a *App) handleTipsMenu(c tele.Context) error {
	tips := a.reg.Tips()
	if len(tips) == 0 {
		return helpers.SendText(c, "📘 No guides saved yet.")
	}
	btns := make([]keyboard.InlineBtn, 0, len(tips))
	for _, title := range sortedKeys(tips) {
		btns = append(btns, keyboard.InlineBtn{
			Text:   domain.TitleCase(title),
			Unique: cbTip,
			Data:   title,
		})
	}
	return helpers.SendMD(c, "📘 *Tips & Guides*", keyboard.InlineButtonsNPerRow(btns, 2))
}

func (a *App) handleTip(c tele.Context) error {
	title := callbacks.CallbackPayload(c)
	body, ok := a.reg.Tip(title)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "That guide was removed."})
	}
	if err := c.Respond(); err != nil {
		return err
	}
	return helpers.SendMD(c, body, backToMenuMarkup())
}

func (a *App) handleTechnicianList(c tele.Context) error {
	techs := a.reg.Technicians()
	if len(techs) == 0 {
		return helpers.SendText(c, "🧑‍🔧 No technicians on the roster right now.")
	}
	var b strings.Builder
	b.WriteString("🧑‍🔧 *Our Technicians*\n\n")
	for i, t := range techs {
		fmt.Fprintf(&b, "%d. *%s*\n   📞 %s\n   ⭐ %s · 💵 %s\n   📍 %s\n\n",
			i+1, t.Name, t.Contact, t.Rating, t.Fee, t.Area)
	}
	b.WriteString("Want one to call you? Use 📞 Request Callback.")
	return helpers.SendMD(c, b.String(), backToMenuMarkup())
}
