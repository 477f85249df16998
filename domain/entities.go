package domain

// UserProfile is the per-user record created lazily on first contact.
// Profiles are never deleted; location fields are optional free text.
type UserProfile struct {
	Name                 string `json:"name"`
	Phone                string `json:"phone"`
	Email                string `json:"email"`
	Department           string `json:"department,omitempty"`
	Hall                 string `json:"hall,omitempty"`
	Room                 string `json:"room,omitempty"`
	Requests             int    `json:"requests"`
	LastRequest          string `json:"last_order"`
	PreferredTech        string `json:"preferred_tech"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
}

// NewUserProfile returns a zero profile with notifications enabled,
// matching the default applied on first interaction.
func NewUserProfile() *UserProfile {
	return &UserProfile{LastRequest: "None", NotificationsEnabled: true}
}

// HasContactInfo reports whether the profile setup has ever been completed
// far enough to be worth displaying.
func (p *UserProfile) HasContactInfo() bool {
	return p.Name != "" || p.Phone != "" || p.Email != ""
}

// Order is a parts purchase request.
type Order struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username,omitempty"`
	Name      string `json:"name"`
	Item      string `json:"item"`
	Model     string `json:"model,omitempty"`
	UnitPrice int    `json:"unit_price,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
	Address   string `json:"address,omitempty"`
	Total     int    `json:"total,omitempty"`
	Status    Status `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Issue is a reported software or hardware problem.
type Issue struct {
	UserID      int64    `json:"user_id"`
	Username    string   `json:"username,omitempty"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Model       string   `json:"model,omitempty"`
	Description string   `json:"description,omitempty"`
	Photos      []string `json:"photos,omitempty"`
	Status      Status   `json:"status"`
	Timestamp   string   `json:"timestamp"`
}

// MaxIssuePhotos caps the attachments accepted during the description step.
const MaxIssuePhotos = 3

// AttachPhoto records a photo file id on the issue. It returns false when
// the cap has been reached; the count is left unchanged in that case.
func (i *Issue) AttachPhoto(fileID string) bool {
	if len(i.Photos) >= MaxIssuePhotos {
		return false
	}
	i.Photos = append(i.Photos, fileID)
	return true
}

// CallbackRequest asks a technician to phone the user back.
type CallbackRequest struct {
	UserID        int64  `json:"user_id"`
	Username      string `json:"username,omitempty"`
	Name          string `json:"name"`
	PhoneAndIssue string `json:"phone_and_issue"`
	Status        Status `json:"status"`
	Timestamp     string `json:"timestamp"`
}

// Inquiry is a free-form technical question.
type Inquiry struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username,omitempty"`
	Name      string `json:"name"`
	Type      string `json:"inquiry_type"`
	Text      string `json:"inquiry_text"`
	Status    Status `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Technician is one entry of the ordered roster shown to users.
type Technician struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Rating  string `json:"rating"`
	Fee     string `json:"fee"`
	Area    string `json:"area"`
}

// TechnicianField identifies one editable roster column.
type TechnicianField int

const (
	TechName TechnicianField = iota + 1
	TechContact
	TechRating
	TechFee
	TechArea
)

// TechnicianFieldByIndex maps the 1-5 selection used by the admin edit flow.
func TechnicianFieldByIndex(n int) (TechnicianField, bool) {
	if n < int(TechName) || n > int(TechArea) {
		return 0, false
	}
	return TechnicianField(n), true
}

func (f TechnicianField) String() string {
	switch f {
	case TechName:
		return "name"
	case TechContact:
		return "contact"
	case TechRating:
		return "rating"
	case TechFee:
		return "fee"
	case TechArea:
		return "area"
	}
	return "unknown"
}

// Get returns the current value of the field on t.
func (f TechnicianField) Get(t Technician) string {
	switch f {
	case TechName:
		return t.Name
	case TechContact:
		return t.Contact
	case TechRating:
		return t.Rating
	case TechFee:
		return t.Fee
	case TechArea:
		return t.Area
	}
	return ""
}

// Set writes value into the field on t.
func (f TechnicianField) Set(t *Technician, value string) {
	switch f {
	case TechName:
		t.Name = value
	case TechContact:
		t.Contact = value
	case TechRating:
		t.Rating = value
	case TechFee:
		t.Fee = value
	case TechArea:
		t.Area = value
	}
}

// PaymentInfo is the singleton bank-transfer destination shown with orders.
type PaymentInfo struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
}

// PaymentField identifies one editable payment-info column.
type PaymentField string

const (
	PaymentBank          PaymentField = "bank_name"
	PaymentAccountNumber PaymentField = "account_number"
	PaymentAccountName   PaymentField = "account_name"
)

// Get returns the current value of the field on p.
func (f PaymentField) Get(p PaymentInfo) string {
	switch f {
	case PaymentBank:
		return p.BankName
	case PaymentAccountNumber:
		return p.AccountNumber
	case PaymentAccountName:
		return p.AccountName
	}
	return ""
}

// Set writes value into the field on p.
func (f PaymentField) Set(p *PaymentInfo, value string) {
	switch f {
	case PaymentBank:
		p.BankName = value
	case PaymentAccountNumber:
		p.AccountNumber = value
	case PaymentAccountName:
		p.AccountName = value
	}
}

// PriceCatalog maps item key to model label to integer naira price.
type PriceCatalog map[string]map[string]int

// Clone returns a deep copy of the catalog.
func (c PriceCatalog) Clone() PriceCatalog {
	out := make(PriceCatalog, len(c))
	for item, models := range c {
		m := make(map[string]int, len(models))
		for k, v := range models {
			m[k] = v
		}
		out[item] = m
	}
	return out
}
