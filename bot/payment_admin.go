package bot

import (
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/IjehJoel987/Tekegram/core/telegram/callbacks"
	"github.com/IjehJoel987/Tekegram/core/telegram/helpers"
	"github.com/IjehJoel987/Tekegram/core/telegram/keyboard"
	"github.com/IjehJoel987/Tekegram/domain"
	"github.com/IjehJoel987/Tekegram/session"
)

func (a *App) handlePaymentAdmin(c tele.Context) error {
	pay := a.reg.Payment()
	markup := keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{Text: "🏦 Bank", Unique: cbPayField, Data: string(domain.PaymentBank)}},
		[]keyboard.InlineBtn{{Text: "🔢 Account Number", Unique: cbPayField, Data: string(domain.PaymentAccountNumber)}},
		[]keyboard.InlineBtn{{Text: "🪪 Account Name", Unique: cbPayField, Data: string(domain.PaymentAccountName)}},
	)
	body := fmt.Sprintf(
		"🏦 *Payment Details*\n\nBank: %s\nAccount Number: `%s`\nAccount Name: %s\n\nPick a field to change:",
		pay.BankName, pay.AccountNumber, pay.AccountName,
	)
	return helpers.SendMD(c, body, markup)
}

func (a *App) handlePaymentField(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	field := domain.PaymentField(callbacks.CallbackPayload(c))
	switch field {
	case domain.PaymentBank, domain.PaymentAccountNumber, domain.PaymentAccountName:
	default:
		return c.Respond(&tele.CallbackResponse{Text: "Unknown field."})
	}

	a.sessions.Set(c.Sender().ID, &session.Payment{Field: field})
	a.persist(ctx)
	if err := c.Respond(); err != nil {
		return err
	}
	current := field.Get(a.reg.Payment())
	return helpers.SendMD(c, fmt.Sprintf(
		"Current %s: `%s`\n\nSend the new value.", domain.TitleCase(string(field)), current))
}

// paymentInput writes the new field value. Account names are stored upper
// case, the way banks print them.
func (a *App) paymentInput(c tele.Context, f *session.Payment, text string) error {
	ctx := helpers.BuildContext(c)
	value := text
	if f.Field == domain.PaymentAccountName {
		value = strings.ToUpper(value)
	}
	a.reg.SetPaymentField(f.Field, value)
	a.sessions.Clear(c.Sender().ID)
	a.persist(ctx)

	pay := a.reg.Payment()
	return helpers.SendMD(c, fmt.Sprintf(
		"✅ Saved.\n\n🏦 Bank: %s\nAccount Number: `%s`\nAccount Name: %s",
		pay.BankName, pay.AccountNumber, pay.AccountName,
	), mainMenu())
}
