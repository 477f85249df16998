package bot

import (
	"github.com/hashicorp/go-multierror"
	tele "gopkg.in/telebot.v4"

	coretelegram "github.com/IjehJoel987/Tekegram/core/telegram"
	"github.com/IjehJoel987/Tekegram/core/telegram/commands"
)

// Callback unique keys. Payloads ride after the key in the callback data;
// multi-part payloads use "|" as separator.
const (
	cbMainMenu      = "main_menu"
	cbPurchaseItem  = "purchase_item"  // payload: item key
	cbReportIssue   = "report_issue"   // payload: software|hardware
	cbInquiry       = "inquiry"        // payload: inquiry type
	cbTip           = "show_tip"       // payload: tip title
	cbSetupProfile  = "setup_profile"
	cbToggleNotifs  = "toggle_notifications"
	cbPreferredTech = "set_preferred_tech"
	cbSelectTech    = "select_tech" // payload: roster index
	cbAdminManage   = "admin_manage"
	cbAdminList     = "admin_list" // payload: kind prefix (ORD, ISS, CB, INQ)
	cbAdminView     = "admin_view" // payload: request id
	cbSetStatus     = "set_status" // payload: id|status
	cbPriceItem     = "price_item" // payload: item key
	cbPriceAddItem  = "price_add_item"
	cbPayField      = "payment_field" // payload: field key
	cbTechAction    = "tech_action"   // payload: add|edit|remove|list
	cbContentAdd    = "content_add"   // payload: tips|responses
	cbContentDel    = "content_del"   // payload: target|title
)

func (a *App) registerCommands(reg *coretelegram.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Main menu",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     a.handleHelp,
		Description: "How to use the bot",
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     a.handleCancel,
		Description: "Abort the current process",
	})
	reg.RegisterCommand("/id", commands.Command{
		Handler:     a.handleID,
		Description: "Show your Telegram ID",
	})

	reg.RegisterCommand("/admin", commands.Command{
		Handler:     a.handleAdminStats,
		Description: "Bot statistics",
		AdminOnly:   true,
		Hidden:      true,
		Aliases:     []string{"/stats"},
	})
	reg.RegisterCommand("/manage", commands.Command{
		Handler:     a.handleAdminManage,
		Description: "Manage requests",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.RegisterCommand("/broadcast", commands.Command{
		Handler:     a.handleBroadcast,
		Description: "Message all users",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.RegisterCommand("/prices", commands.Command{
		Handler:     a.handlePricesAdmin,
		Description: "Edit the price list",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.RegisterCommand("/technicians", commands.Command{
		Handler:     a.handleTechniciansAdmin,
		Description: "Manage the technician roster",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.RegisterCommand("/payment", commands.Command{
		Handler:     a.handlePaymentAdmin,
		Description: "Edit payment details",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.RegisterCommand("/content", commands.Command{
		Handler:     a.handleContentAdmin,
		Description: "Edit tips and canned answers",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.RegisterCommand("/dump", commands.Command{
		Handler:     a.handleDump,
		Description: "Raw data file",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.RegisterCommand("/addadmin", commands.Command{
		Handler:     a.handleAddAdmin,
		Description: "Grant admin rights",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.RegisterCommand("/removeadmin", commands.Command{
		Handler:     a.handleRemoveAdmin,
		Description: "Revoke admin rights",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.RegisterCommand("/listadmins", commands.Command{
		Handler:     a.handleListAdmins,
		Description: "List admins",
		AdminOnly:   true,
		Hidden:      true,
	})
}

func (a *App) registerCallbacks(reg *coretelegram.Registry) error {
	var errs error
	register := func(key string, h tele.HandlerFunc) {
		if err := reg.RegisterCallback(key, h); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	register(cbMainMenu, a.handleMainMenuCallback)
	register(cbPurchaseItem, a.handlePurchaseItem)
	register(cbReportIssue, a.handleReportType)
	register(cbInquiry, a.handleInquiryType)
	register(cbTip, a.handleTip)
	register(cbSetupProfile, a.handleSetupProfile)
	register(cbToggleNotifs, a.handleToggleNotifications)
	register(cbPreferredTech, a.handlePreferredTechMenu)
	register(cbSelectTech, a.handleSelectTech)

	register(cbAdminManage, a.adminOnly(a.handleAdminManage))
	register(cbAdminList, a.adminOnly(a.handleAdminListKind))
	register(cbAdminView, a.adminOnly(a.handleAdminView))
	register(cbSetStatus, a.adminOnly(a.handleSetStatus))
	register(cbPriceItem, a.adminOnly(a.handlePriceItem))
	register(cbPriceAddItem, a.adminOnly(a.handlePriceAddItem))
	register(cbPayField, a.adminOnly(a.handlePaymentField))
	register(cbTechAction, a.adminOnly(a.handleTechAction))
	register(cbContentAdd, a.adminOnly(a.handleContentAdd))
	register(cbContentDel, a.adminOnly(a.handleContentDelete))

	return errs
}

// adminOnly gates a callback handler; command gating is handled by the
// command router, but callback buttons can outlive an admin demotion.
func (a *App) adminOnly(h tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if c.Sender() == nil || !a.reg.IsAdmin(c.Sender().ID) {
			return c.Respond(&tele.CallbackResponse{Text: "🚫 Admins only."})
		}
		return h(c)
	}
}
