// Package store persists the bot's full state as a single JSON snapshot.
//
// Writes go through a temp file in the same directory followed by an atomic
// rename, with the previous snapshot refreshed into a sibling backup first,
// so a crash at any point leaves at least one readable copy on disk.
package store

import (
	"github.com/IjehJoel987/Tekegram/domain"
	"github.com/IjehJoel987/Tekegram/session"
)

// Snapshot is the complete persisted state. Integer-keyed maps serialize
// with stringified keys, which is what encoding/json does for int64 map
// keys, so the on-disk schema is stable across loads.
type Snapshot struct {
	Users            map[int64]*domain.UserProfile      `json:"user_data"`
	Orders           map[string]*domain.Order           `json:"orders"`
	Issues           map[string]*domain.Issue           `json:"issues"`
	Callbacks        map[string]*domain.CallbackRequest `json:"callbacks"`
	Inquiries        map[string]*domain.Inquiry         `json:"inquiries"`
	Sessions         map[int64]session.Record           `json:"user_states"`
	Catalog          domain.PriceCatalog                `json:"item_prices"`
	AdminIDs         []int64                            `json:"admin_ids"`
	Technicians      []domain.Technician                `json:"technicians"`
	Payment          domain.PaymentInfo                 `json:"payment_info"`
	InquiryResponses map[string]string                  `json:"inquiry_responses"`
	Tips             map[string]string                  `json:"tips"`
}

// NewSnapshot returns an empty snapshot with every collection allocated.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Users:            make(map[int64]*domain.UserProfile),
		Orders:           make(map[string]*domain.Order),
		Issues:           make(map[string]*domain.Issue),
		Callbacks:        make(map[string]*domain.CallbackRequest),
		Inquiries:        make(map[string]*domain.Inquiry),
		Sessions:         make(map[int64]session.Record),
		Catalog:          make(domain.PriceCatalog),
		InquiryResponses: make(map[string]string),
		Tips:             make(map[string]string),
	}
}

// normalize allocates any collection a hand-edited or older snapshot file
// left null, so callers never index into a nil map.
func (s *Snapshot) normalize() {
	if s.Users == nil {
		s.Users = make(map[int64]*domain.UserProfile)
	}
	if s.Orders == nil {
		s.Orders = make(map[string]*domain.Order)
	}
	if s.Issues == nil {
		s.Issues = make(map[string]*domain.Issue)
	}
	if s.Callbacks == nil {
		s.Callbacks = make(map[string]*domain.CallbackRequest)
	}
	if s.Inquiries == nil {
		s.Inquiries = make(map[string]*domain.Inquiry)
	}
	if s.Sessions == nil {
		s.Sessions = make(map[int64]session.Record)
	}
	if s.Catalog == nil {
		s.Catalog = make(domain.PriceCatalog)
	}
	if s.InquiryResponses == nil {
		s.InquiryResponses = make(map[string]string)
	}
	if s.Tips == nil {
		s.Tips = make(map[string]string)
	}
}
