package bot

import (
	"errors"
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

func (a *App) handlePricesAdmin(c tele.Context) error {
	items := a.reg.Items()
	btns := make([]keyboard.InlineBtn, 0, len(items)+1)
	for _, item := range items {
		btns = append(btns, keyboard.InlineBtn{
			Text:   itemEmoji(item) + " " + domain.TitleCase(item),
			Unique: cbPriceItem,
			Data:   item,
		})
	}
	btns = append(btns, keyboard.InlineBtn{Text: "➕ Add new item", Unique: cbPriceAddItem})
	return helpers.SendMD(c, "💰 *Price Management*\n\nPick an item to edit:", keyboard.InlineButtonsNPerRow(btns, 2))
}

func (a *App) handlePriceItem(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	item := callbacks.CallbackPayload(c)
	models, ok := a.reg.Models(item)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "That item no longer exists."})
	}

	a.sessions.Set(c.Sender().ID, &session.Price{Step: session.PriceUpdate, Item: item})
	a.persist(ctx)
	if err := c.Respond(); err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s *%s*\n\n", itemEmoji(item), domain.TitleCase(item))
	for _, model := range sortedKeys(models) {
		fmt.Fprintf(&b, "• %s — %s\n", model, domain.FormatMoney(models[model]))
	}
	b.WriteString("\nSend `Model:Price` to add or update, `Model:` to delete, `done` to finish.")
	return helpers.SendMD(c, b.String())
}

func (a *App) handlePriceAddItem(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	a.sessions.Set(c.Sender().ID, &session.Price{Step: session.PriceNewItem})
	a.persist(ctx)
	if err := c.Respond(); err != nil {
		return err
	}
	return helpers.SendMD(c, "➕ Name of the new item? (e.g. `ram 16gb`)")
}

func (a *App) priceInput(c tele.Context, f *session.Price, text string) error {
	ctx := helpers.BuildContext(c)
	switch f.Step {
	case session.PriceNewItem:
		item := normalizeItemKey(text)
		if item == "" {
			return helpers.SendText(c, "❌ Give the item a name.")
		}
		if !a.reg.AddItem(item) {
			return helpers.SendMD(c, fmt.Sprintf("❌ `%s` already exists. Pick another name or /cancel.", item))
		}
		f.Item = item
		f.Step = session.PriceNewModels
		a.sessions.Set(c.Sender().ID, f)
		a.persist(ctx)
		return helpers.SendMD(c, fmt.Sprintf(
			"✅ Added `%s`. Now send `Model:Price` lines (e.g. `HP:12000`), then `done`.", item))

	case session.PriceNewModels, session.PriceUpdate:
		line, err := parsePriceLine(text)
		if err != nil {
			return helpers.SendMD(c, "❌ Invalid format. Use `Model:Price` (e.g. `HP:12000`).")
		}
		switch {
		case line.done:
			a.sessions.Clear(c.Sender().ID)
			a.persist(ctx)
			models, _ := a.reg.Models(f.Item)
			var b strings.Builder
			fmt.Fprintf(&b, "✅ *%s* saved.\n\n", domain.TitleCase(f.Item))
			for _, model := range sortedKeys(models) {
				fmt.Fprintf(&b, "• %s — %s\n", model, domain.FormatMoney(models[model]))
			}
			return helpers.SendMD(c, b.String(), mainMenu())
		case line.delete:
			if !a.reg.DeleteModel(f.Item, line.model) {
				return helpers.SendMD(c, fmt.Sprintf("❌ No model `%s` under this item.", line.model))
			}
			a.persist(ctx)
			return helpers.SendMD(c, fmt.Sprintf("🗑 Removed `%s`. More lines, or `done`.", line.model))
		default:
			a.reg.SetPrice(f.Item, line.model, line.price)
			a.persist(ctx)
			return helpers.SendMD(c, fmt.Sprintf(
				"✅ %s — %s. More lines, or `done`.", line.model, domain.FormatMoney(line.price)))
		}
	}
	return helpers.SendText(c, "⚠️ Unexpected step. Send /cancel and start over.")
}

// normalizeItemKey turns "RAM 16GB" into the catalog key "ram_16gb".
func normalizeItemKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "_")
}

type priceLine struct {
	model  string
	price  int
	delete bool
	done   bool
}

var errBadPriceLine = errors.New("bot: malformed price line")

// parsePriceLine parses one admin price-edit line: the "done" sentinel,
// "Model:Price" to set, or "Model:" to delete.
func parsePriceLine(s string) (priceLine, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "done") {
		return priceLine{done: true}, nil
	}
	model, rawPrice, found := strings.Cut(s, ":")
	model = strings.TrimSpace(model)
	if !found || model == "" {
		return priceLine{}, errBadPriceLine
	}
	rawPrice = strings.TrimSpace(rawPrice)
	if rawPrice == "" {
		return priceLine{model: model, delete: true}, nil
	}
	price, err := strconv.Atoi(rawPrice)
	if err != nil || price <= 0 {
		return priceLine{}, errBadPriceLine
	}
	return priceLine{model: model, price: price}, nil
}
