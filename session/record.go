package session

import (
	"encoding/json"
	"fmt"
)

// Record is the persisted form of a Flow: the flow name plus its serialized
// step and accumulator. Unknown flow names are rejected on restore so a
// snapshot written by a newer build fails loudly instead of resuming a
// half-understood conversation.
type Record struct {
	Flow Kind            `json:"flow"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Encode serializes a Flow into its persistence Record.
func Encode(f Flow) (Record, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return Record{}, fmt.Errorf("session: encode %s flow: %w", f.Kind(), err)
	}
	return Record{Flow: f.Kind(), Data: data}, nil
}

// Decode reconstructs the typed Flow a Record was encoded from.
func Decode(r Record) (Flow, error) {
	var f Flow
	switch r.Flow {
	case KindPurchase:
		f = &Purchase{}
	case KindIssueReport:
		f = &IssueReport{}
	case KindCallback:
		f = &Callback{}
	case KindTrack:
		f = &Track{}
	case KindInquiryOther:
		f = &InquiryOther{}
	case KindProfile:
		f = &Profile{}
	case KindPrice:
		f = &Price{}
	case KindTechnician:
		f = &TechnicianEdit{}
	case KindPayment:
		f = &Payment{}
	case KindContent:
		f = &Content{}
	default:
		return nil, fmt.Errorf("session: unknown flow %q", r.Flow)
	}
	if len(r.Data) > 0 {
		if err := json.Unmarshal(r.Data, f); err != nil {
			return nil, fmt.Errorf("session: decode %s flow: %w", r.Flow, err)
		}
	}
	return f, nil
}
