package bot

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/IjehJoel987/Tekegram/core/telegram/callbacks"
	"github.com/IjehJoel987/Tekegram/core/telegram/helpers"
	"github.com/IjehJoel987/Tekegram/core/telegram/keyboard"
	"github.com/IjehJoel987/Tekegram/domain"
	"github.com/IjehJoel987/Tekegram/session"
)

func (a *App) handlePurchaseMenu(c tele.Context) error {
	items := a.reg.Items()
	if len(items) == 0 {
		return helpers.SendText(c, "🛒 The catalog is empty right now. Check back later.")
	}
	btns := make([]keyboard.InlineBtn, 0, len(items))
	for _, item := range items {
		btns = append(btns, keyboard.InlineBtn{
			Text:   itemEmoji(item) + " " + domain.TitleCase(item),
			Unique: cbPurchaseItem,
			Data:   item,
		})
	}
	markup := keyboard.InlineButtonsNPerRow(btns, 2)
	return helpers.SendMD(c, "🛒 *What would you like to purchase?*", markup)
}

func (a *App) handlePurchaseItem(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	item := callbacks.CallbackPayload(c)
	models, ok := a.reg.Models(item)
	if !ok || len(models) == 0 {
		return c.Respond(&tele.CallbackResponse{Text: "That item is no longer available."})
	}

	id := a.reg.CreateOrder(domain.Order{
		UserID:    c.Sender().ID,
		Username:  c.Sender().Username,
		Name:      senderName(c),
		Item:      item,
		Status:    domain.OrderCollectingInfo,
		Timestamp: domain.Timestamp(time.Now()),
	})
	a.sessions.Set(c.Sender().ID, &session.Purchase{
		Step:    session.PurchaseModel,
		Item:    item,
		OrderID: id,
	})
	a.persist(ctx)

	if err := c.Respond(); err != nil {
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s *%s*\n\n", itemEmoji(item), domain.TitleCase(item))
	for _, model := range sortedKeys(models) {
		fmt.Fprintf(&b, "• %s — %s\n", model, domain.FormatMoney(models[model]))
	}
	b.WriteString("\n💻 Which laptop model is it for? (e.g. HP, Dell)")
	return helpers.SendMD(c, b.String())
}

func (a *App) purchaseInput(c tele.Context, f *session.Purchase, text string) error {
	ctx := helpers.BuildContext(c)
	switch f.Step {
	case session.PurchaseModel:
		models, ok := a.reg.Models(f.Item)
		if !ok || len(models) == 0 {
			a.sessions.Clear(c.Sender().ID)
			a.reg.DeleteOrder(f.OrderID)
			a.persist(ctx)
			return helpers.SendText(c, "😬 That item just got pulled from the catalog. Start over from the menu.", &tele.SendOptions{ReplyMarkup: mainMenu()})
		}
		model, price := matchModel(models, text)
		a.reg.UpdateOrder(f.OrderID, func(o *domain.Order) {
			o.Model = model
			o.UnitPrice = price
		})
		f.Step = session.PurchaseQuantity
		a.sessions.Set(c.Sender().ID, f)
		a.persist(ctx)
		return helpers.SendMD(c, fmt.Sprintf("✅ *%s* at %s each.\n\n🔢 How many do you need?", model, domain.FormatMoney(price)))

	case session.PurchaseQuantity:
		qty, err := strconv.Atoi(text)
		if err != nil || qty <= 0 {
			return helpers.SendText(c, "❌ Enter a valid number like 1, 2, 3…")
		}
		a.reg.UpdateOrder(f.OrderID, func(o *domain.Order) {
			o.Quantity = qty
		})
		f.Step = session.PurchaseAddress
		a.sessions.Set(c.Sender().ID, f)
		a.persist(ctx)
		return helpers.SendText(c, "📍 Where should we deliver? Send your full address.")

	case session.PurchaseAddress:
		a.reg.UpdateOrder(f.OrderID, func(o *domain.Order) {
			o.Address = text
			o.Total = o.UnitPrice * o.Quantity
			o.Status = domain.OrderPendingConfirmation
		})
		a.sessions.Clear(c.Sender().ID)
		a.persist(ctx)

		order, ok := a.reg.Order(f.OrderID)
		if !ok {
			return helpers.SendText(c, "⚠️ Something went sideways saving that order. Try again.", &tele.SendOptions{ReplyMarkup: mainMenu()})
		}
		a.notifyAdmins(ctx, fmt.Sprintf(
			"🛒 *NEW ORDER* `%s`\n\n%s\n%s x%d — %s\n📍 %s",
			f.OrderID, adminUserLine(order.Name, order.Username),
			domain.TitleCase(order.Item), order.Quantity, domain.FormatMoney(order.Total),
			escapeMD(order.Address),
		), tele.ModeMarkdown)
		return helpers.SendMD(c, orderSummary(f.OrderID, order, a.reg.Payment()), mainMenu())
	}
	return helpers.SendText(c, "⚠️ Unexpected step. Send /cancel and start over.")
}

func orderSummary(id string, o domain.Order, pay domain.PaymentInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🧾 *Order Summary* `%s`\n\n", id)
	fmt.Fprintf(&b, "📦 Item: %s (%s)\n", domain.TitleCase(o.Item), o.Model)
	fmt.Fprintf(&b, "🔢 Quantity: %d x %s\n", o.Quantity, domain.FormatMoney(o.UnitPrice))
	fmt.Fprintf(&b, "💵 Total: *%s*\n", domain.FormatMoney(o.Total))
	fmt.Fprintf(&b, "📍 Delivery: %s\n\n", escapeMD(o.Address))
	fmt.Fprintf(&b, "🏦 *Payment Details*\n")
	fmt.Fprintf(&b, "Bank: %s\n", pay.BankName)
	fmt.Fprintf(&b, "Account Number: `%s`\n", pay.AccountNumber)
	fmt.Fprintf(&b, "Account Name: %s\n\n", pay.AccountName)
	b.WriteString("📸 Send a photo of your transfer receipt here once paid.")
	return b.String()
}

// matchModel finds the catalog model named in the user's text, falling back
// to the first model when nothing matches.
func matchModel(models map[string]int, text string) (string, int) {
	lower := strings.ToLower(text)
	keys := sortedKeys(models)
	for _, k := range keys {
		if strings.Contains(lower, strings.ToLower(k)) {
			return k, models[k]
		}
	}
	first := keys[0]
	return first, models[first]
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func senderName(c tele.Context) string {
	u := c.Sender()
	if u == nil {
		return ""
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.Username
	}
	return name
}

// adminUserLine renders the requester identity for admin notifications.
func adminUserLine(name, username string) string {
	if username != "" {
		return fmt.Sprintf("👤 %s (@%s)", escapeMD(name), escapeMD(username))
	}
	return "👤 " + escapeMD(name)
}
