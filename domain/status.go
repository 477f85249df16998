package domain

import "fmt"

// Status is a request lifecycle state. Each request kind has its own fixed
// status set; a request's status is always a member of its kind's set.
type Status string

// Order statuses.
const (
	OrderCollectingInfo      Status = "collecting_info"
	OrderPendingConfirmation Status = "pending_confirmation"
	OrderConfirmed           Status = "confirmed"
	OrderPaymentSubmitted    Status = "payment_submitted"
	OrderPaymentVerified     Status = "payment_verified"
	OrderProcessing          Status = "processing"
	OrderShipped             Status = "shipped"
	OrderDelivered           Status = "delivered"
	OrderCancelled           Status = "cancelled"
)

// Issue statuses.
const (
	IssueReported    Status = "reported"
	IssueUnderReview Status = "under_review"
	IssueInProgress  Status = "in_progress"
	IssueResolved    Status = "resolved"
	IssueClosed      Status = "closed"
)

// Callback statuses.
const (
	CallbackPending   Status = "pending"
	CallbackCalled    Status = "called"
	CallbackCompleted Status = "completed"
	CallbackNoAnswer  Status = "no_answer"
)

// Inquiry statuses.
const (
	InquiryPendingResponse Status = "pending_response"
	InquiryResponded       Status = "responded"
	InquiryResolved        Status = "resolved"
)

// RequestKind discriminates the four request variants.
type RequestKind string

const (
	KindOrder    RequestKind = "ORD"
	KindIssue    RequestKind = "ISS"
	KindCallback RequestKind = "CB"
	KindInquiry  RequestKind = "INQ"
)

// Kinds lists all request kinds in display order.
var Kinds = []RequestKind{KindOrder, KindIssue, KindCallback, KindInquiry}

// KindByPrefix resolves the kind from a request identifier prefix.
func KindByPrefix(id string) (RequestKind, bool) {
	for _, k := range Kinds {
		if len(id) > len(k) && id[:len(k)] == string(k) {
			return k, true
		}
	}
	return "", false
}

func (k RequestKind) String() string { return string(k) }

// Label returns the human name used in admin menus.
func (k RequestKind) Label() string {
	switch k {
	case KindOrder:
		return "orders"
	case KindIssue:
		return "issues"
	case KindCallback:
		return "callbacks"
	case KindInquiry:
		return "inquiries"
	}
	return "requests"
}

// InitialStatus returns the status assigned at creation time for the kind.
func (k RequestKind) InitialStatus() Status {
	switch k {
	case KindOrder:
		return OrderCollectingInfo
	case KindIssue:
		return IssueReported
	case KindCallback:
		return CallbackPending
	case KindInquiry:
		return InquiryPendingResponse
	}
	return ""
}

var statusSets = map[RequestKind][]Status{
	KindOrder: {
		OrderCollectingInfo, OrderPendingConfirmation, OrderConfirmed,
		OrderPaymentSubmitted, OrderPaymentVerified, OrderProcessing,
		OrderShipped, OrderDelivered, OrderCancelled,
	},
	KindIssue: {
		IssueReported, IssueUnderReview, IssueInProgress,
		IssueResolved, IssueClosed,
	},
	KindCallback: {
		CallbackPending, CallbackCalled, CallbackCompleted, CallbackNoAnswer,
	},
	KindInquiry: {
		InquiryPendingResponse, InquiryResponded, InquiryResolved,
	},
}

// Statuses returns the fixed status set for the kind, in workflow order.
func (k RequestKind) Statuses() []Status {
	return statusSets[k]
}

// ValidStatus reports whether s belongs to the kind's fixed status set.
func (k RequestKind) ValidStatus(s Status) bool {
	for _, candidate := range statusSets[k] {
		if candidate == s {
			return true
		}
	}
	return false
}

// AdminStatuses returns the statuses offered on the admin detail view.
// Orders skip the transient collecting_info state.
func (k RequestKind) AdminStatuses() []Status {
	if k == KindOrder {
		return statusSets[KindOrder][1:]
	}
	return statusSets[k]
}

// InvalidStatusError reports a transition to a status outside the variant's
// fixed set.
type InvalidStatusError struct {
	Kind   RequestKind
	Status Status
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("status %q is not valid for %s requests", e.Status, e.Kind.Label())
}
