// Package session implements the per-user conversation state machine.
//
// Each in-progress conversation is one Flow value: a tagged union over the
// multi-step tasks the bot supports. Flows carry their own typed step
// enumeration and accumulator, and handlers dispatch on the concrete type,
// so an unknown step can never fall through silently.
package session

import (
	"github.com/IjehJoel987/Tekegram/domain"
)

// Kind names a flow for persistence and logging.
type Kind string

const (
	KindPurchase     Kind = "purchase"
	KindIssueReport  Kind = "issue_report"
	KindCallback     Kind = "callback"
	KindTrack        Kind = "track_request"
	KindInquiryOther Kind = "inquiry_other"
	KindProfile      Kind = "update_profile"
	KindPrice        Kind = "admin_price"
	KindTechnician   Kind = "manage_technicians"
	KindPayment      Kind = "payment_info"
	KindContent      Kind = "manage_content"
)

// Flow is one user's in-progress multi-step task.
type Flow interface {
	Kind() Kind
	// StepName identifies the current step for persistence and logging.
	StepName() string
	// FreeText reports whether the current step accepts arbitrary prose.
	// Free-text steps are exempt from menu-label interception: an address
	// line that happens to equal a menu button must not cancel the flow.
	FreeText() bool
}

// PurchaseStep enumerates the purchase flow's steps.
type PurchaseStep string

const (
	PurchaseModel    PurchaseStep = "model"
	PurchaseQuantity PurchaseStep = "quantity"
	PurchaseAddress  PurchaseStep = "address"
)

// Purchase collects model, quantity, and delivery address for an order.
// The order entity is created on the first input and referenced by id.
type Purchase struct {
	Step    PurchaseStep `json:"step"`
	Item    string       `json:"item"`
	OrderID string       `json:"order_id,omitempty"`
}

func (f *Purchase) Kind() Kind       { return KindPurchase }
func (f *Purchase) StepName() string { return string(f.Step) }
func (f *Purchase) FreeText() bool   { return f.Step == PurchaseAddress }

// IssueStep enumerates the issue-report flow's steps.
type IssueStep string

const (
	IssueModel       IssueStep = "model"
	IssueDescription IssueStep = "description"
)

// IssueReport collects laptop model and a description. Photo attachments
// are accepted only during the description step.
type IssueReport struct {
	Step      IssueStep `json:"step"`
	IssueType string    `json:"issue_type"`
	IssueID   string    `json:"issue_id,omitempty"`
}

func (f *IssueReport) Kind() Kind       { return KindIssueReport }
func (f *IssueReport) StepName() string { return string(f.Step) }
func (f *IssueReport) FreeText() bool   { return f.Step == IssueDescription }

// Callback has a single free-text step that must contain a phone number.
type Callback struct{}

func (f *Callback) Kind() Kind       { return KindCallback }
func (f *Callback) StepName() string { return "details" }
func (f *Callback) FreeText() bool   { return true }

// Track has a single step that expects a request identifier.
type Track struct{}

func (f *Track) Kind() Kind       { return KindTrack }
func (f *Track) StepName() string { return "id" }
func (f *Track) FreeText() bool   { return false }

// InquiryOther has a single free-text step holding the question.
type InquiryOther struct{}

func (f *InquiryOther) Kind() Kind       { return KindInquiryOther }
func (f *InquiryOther) StepName() string { return "question" }
func (f *InquiryOther) FreeText() bool   { return true }

// ProfileStep enumerates the profile-setup flow's steps. Every step accepts
// a literal "skip" token to leave the field unchanged.
type ProfileStep string

const (
	ProfileName       ProfileStep = "name"
	ProfilePhone      ProfileStep = "phone"
	ProfileEmail      ProfileStep = "email"
	ProfileDepartment ProfileStep = "department"
	ProfileHall       ProfileStep = "hall"
	ProfileRoom       ProfileStep = "room"
)

// NextProfileStep returns the statically defined successor, or "" after the
// final step.
func NextProfileStep(s ProfileStep) ProfileStep {
	switch s {
	case ProfileName:
		return ProfilePhone
	case ProfilePhone:
		return ProfileEmail
	case ProfileEmail:
		return ProfileDepartment
	case ProfileDepartment:
		return ProfileHall
	case ProfileHall:
		return ProfileRoom
	}
	return ""
}

// Profile walks the contact and location fields of the user profile.
type Profile struct {
	Step ProfileStep `json:"step"`
}

func (f *Profile) Kind() Kind       { return KindProfile }
func (f *Profile) StepName() string { return string(f.Step) }
func (f *Profile) FreeText() bool   { return false }

// PriceStep enumerates the admin price-management flow's steps.
type PriceStep string

const (
	// PriceNewItem waits for the name of a new catalog item.
	PriceNewItem PriceStep = "new_item"
	// PriceNewModels collects Model:Price lines for a just-added item
	// until the "done" sentinel.
	PriceNewModels PriceStep = "new_models"
	// PriceUpdate collects Model:Price / Model: (delete) lines for an
	// existing item until the "done" sentinel.
	PriceUpdate PriceStep = "update_prices"
)

// Price edits the price catalog.
type Price struct {
	Step PriceStep `json:"step"`
	Item string    `json:"item,omitempty"`
}

func (f *Price) Kind() Kind       { return KindPrice }
func (f *Price) StepName() string { return string(f.Step) }
func (f *Price) FreeText() bool   { return false }

// TechAction discriminates the technician-management sub-flows.
type TechAction string

const (
	TechAdd    TechAction = "add"
	TechEdit   TechAction = "edit"
	TechRemove TechAction = "remove"
)

// TechStep enumerates the technician flow's steps across all actions.
type TechStep string

const (
	TechStepName    TechStep = "name"
	TechStepContact TechStep = "contact"
	TechStepRating  TechStep = "rating"
	TechStepFee     TechStep = "fee"
	TechStepArea    TechStep = "area"
	TechStepSelect  TechStep = "select"
	TechStepField   TechStep = "field"
	TechStepValue   TechStep = "value"
)

// TechnicianEdit manages the roster: append, edit a field, or remove.
type TechnicianEdit struct {
	Action TechAction             `json:"tech_action"`
	Step   TechStep               `json:"step"`
	Index  int                    `json:"index,omitempty"`
	Field  domain.TechnicianField `json:"field,omitempty"`
	Draft  domain.Technician      `json:"draft,omitempty"`
}

func (f *TechnicianEdit) Kind() Kind       { return KindTechnician }
func (f *TechnicianEdit) StepName() string { return string(f.Step) }
func (f *TechnicianEdit) FreeText() bool   { return false }

// Payment updates a single payment-info field.
type Payment struct {
	Field domain.PaymentField `json:"payment_field"`
}

func (f *Payment) Kind() Kind       { return KindPayment }
func (f *Payment) StepName() string { return string(f.Field) }
func (f *Payment) FreeText() bool   { return false }

// ContentTarget selects which admin-editable text map a Content flow edits.
type ContentTarget string

const (
	ContentTips      ContentTarget = "tips"
	ContentResponses ContentTarget = "responses"
)

// ContentStep enumerates the tip/response editing steps.
type ContentStep string

const (
	ContentTitle ContentStep = "title"
	ContentBody  ContentStep = "content"
)

// Content edits a saved tip or canned inquiry response: title, then body.
type Content struct {
	Target ContentTarget `json:"target"`
	Step   ContentStep   `json:"step"`
	Title  string        `json:"title,omitempty"`
}

func (f *Content) Kind() Kind       { return KindContent }
func (f *Content) StepName() string { return string(f.Step) }
func (f *Content) FreeText() bool   { return f.Step == ContentBody }
