// Package registry holds the bot's in-memory state: user profiles, the
// four request collections, the admin set, and the admin-editable content
// maps. One RWMutex guards everything; methods return copies so callers
// never hold references into guarded state.
package registry

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/IjehJoel987/Tekegram/domain"
	"github.com/IjehJoel987/Tekegram/store"
)

// Registry is the authoritative in-memory state. It is safe for concurrent
// use. Persistence is the caller's concern: mutate, then export and save.
type Registry struct {
	mu        sync.RWMutex
	rootOwner int64

	users     map[int64]*domain.UserProfile
	orders    map[string]*domain.Order
	issues    map[string]*domain.Issue
	callbacks map[string]*domain.CallbackRequest
	inquiries map[string]*domain.Inquiry

	admins      map[int64]struct{}
	catalog     domain.PriceCatalog
	technicians []domain.Technician
	payment     domain.PaymentInfo
	tips        map[string]string
	responses   map[string]string

	// randInt is swappable for deterministic id tests.
	randInt func(n int) int
}

// New builds a Registry from a loaded snapshot. Empty collections are
// seeded with the shipped defaults so a first run has a working catalog,
// roster, payment details, and content maps.
func New(rootOwner int64, snap *store.Snapshot) *Registry {
	r := &Registry{
		rootOwner:   rootOwner,
		users:       snap.Users,
		orders:      snap.Orders,
		issues:      snap.Issues,
		callbacks:   snap.Callbacks,
		inquiries:   snap.Inquiries,
		admins:      make(map[int64]struct{}, len(snap.AdminIDs)),
		catalog:     snap.Catalog,
		technicians: snap.Technicians,
		payment:     snap.Payment,
		tips:        snap.Tips,
		responses:   snap.InquiryResponses,
		randInt:     rand.IntN,
	}
	for _, id := range snap.AdminIDs {
		r.admins[id] = struct{}{}
	}
	if len(r.catalog) == 0 {
		r.catalog = domain.DefaultCatalog()
	}
	if len(r.technicians) == 0 {
		r.technicians = domain.DefaultTechnicians()
	}
	if r.payment == (domain.PaymentInfo{}) {
		r.payment = domain.DefaultPaymentInfo()
	}
	if len(r.tips) == 0 {
		r.tips = domain.DefaultTips()
	}
	if len(r.responses) == 0 {
		r.responses = domain.DefaultInquiryResponses()
	}
	return r
}

// Export copies the registry's state into a snapshot. Session records are
// not the registry's concern; the caller merges them in before saving.
func (r *Registry) Export() *store.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := store.NewSnapshot()
	for id, u := range r.users {
		cp := *u
		snap.Users[id] = &cp
	}
	for id, o := range r.orders {
		cp := *o
		snap.Orders[id] = &cp
	}
	for id, i := range r.issues {
		cp := *i
		cp.Photos = append([]string(nil), i.Photos...)
		snap.Issues[id] = &cp
	}
	for id, c := range r.callbacks {
		cp := *c
		snap.Callbacks[id] = &cp
	}
	for id, q := range r.inquiries {
		cp := *q
		snap.Inquiries[id] = &cp
	}
	snap.AdminIDs = r.adminsLocked()
	snap.Catalog = r.catalog.Clone()
	snap.Technicians = append([]domain.Technician(nil), r.technicians...)
	snap.Payment = r.payment
	snap.Tips = copyStringMap(r.tips)
	snap.InquiryResponses = copyStringMap(r.responses)
	return snap
}

// EnsureProfile returns the user's profile, creating a fresh one on first
// contact. The returned value is a copy.
func (r *Registry) EnsureProfile(userID int64) domain.UserProfile {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.users[userID]
	if !ok {
		p = domain.NewUserProfile()
		r.users[userID] = p
	}
	return copyProfile(p)
}

// Profile returns a copy of the user's profile.
func (r *Registry) Profile(userID int64) (domain.UserProfile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.users[userID]
	if !ok {
		return domain.UserProfile{}, false
	}
	return copyProfile(p), true
}

// UpdateProfile applies fn to the user's profile, creating it if needed.
func (r *Registry) UpdateProfile(userID int64, fn func(*domain.UserProfile)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.users[userID]
	if !ok {
		p = domain.NewUserProfile()
		r.users[userID] = p
	}
	fn(p)
}

// UserIDs returns every known user id. Used for broadcasts.
func (r *Registry) UserIDs() []int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]int64, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// allocateID rolls prefix + four random digits until the id is unused
// within its kind's collection. The registry lock must be held.
func (r *Registry) allocateIDLocked(kind domain.RequestKind) string {
	for {
		id := fmt.Sprintf("%s%d", kind, 1000+r.randInt(9000))
		if !r.idTakenLocked(kind, id) {
			return id
		}
	}
}

func (r *Registry) idTakenLocked(kind domain.RequestKind, id string) bool {
	switch kind {
	case domain.KindOrder:
		_, ok := r.orders[id]
		return ok
	case domain.KindIssue:
		_, ok := r.issues[id]
		return ok
	case domain.KindCallback:
		_, ok := r.callbacks[id]
		return ok
	case domain.KindInquiry:
		_, ok := r.inquiries[id]
		return ok
	}
	return false
}

// recordRequestLocked bumps the owner's request counter and remembers the
// id as their most recent request.
func (r *Registry) recordRequestLocked(userID int64, id string) {
	p, ok := r.users[userID]
	if !ok {
		p = domain.NewUserProfile()
		r.users[userID] = p
	}
	p.Requests++
	p.LastRequest = id
}

// CreateOrder stores the order under a fresh id and links it to the user.
func (r *Registry) CreateOrder(o domain.Order) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.allocateIDLocked(domain.KindOrder)
	r.orders[id] = &o
	r.recordRequestLocked(o.UserID, id)
	return id
}

// Order returns a copy of the order.
func (r *Registry) Order(id string) (domain.Order, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return domain.Order{}, false
	}
	return *o, true
}

// UpdateOrder applies fn to the stored order and reports whether it exists.
func (r *Registry) UpdateOrder(id string, fn func(*domain.Order)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return false
	}
	fn(o)
	return true
}

// DeleteOrder removes an abandoned order and unlinks it from its owner.
func (r *Registry) DeleteOrder(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return false
	}
	delete(r.orders, id)
	if p, ok := r.users[o.UserID]; ok {
		if p.Requests > 0 {
			p.Requests--
		}
		if p.LastRequest == id {
			p.LastRequest = "None"
		}
	}
	return true
}

// CreateIssue stores the issue under a fresh id and links it to the user.
func (r *Registry) CreateIssue(i domain.Issue) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.allocateIDLocked(domain.KindIssue)
	r.issues[id] = &i
	r.recordRequestLocked(i.UserID, id)
	return id
}

// Issue returns a copy of the issue.
func (r *Registry) Issue(id string) (domain.Issue, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.issues[id]
	if !ok {
		return domain.Issue{}, false
	}
	cp := *i
	cp.Photos = append([]string(nil), i.Photos...)
	return cp, true
}

// UpdateIssue applies fn to the stored issue and reports whether it exists.
func (r *Registry) UpdateIssue(id string, fn func(*domain.Issue)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.issues[id]
	if !ok {
		return false
	}
	fn(i)
	return true
}

// CreateCallback stores the callback request under a fresh id.
func (r *Registry) CreateCallback(c domain.CallbackRequest) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.allocateIDLocked(domain.KindCallback)
	r.callbacks[id] = &c
	r.recordRequestLocked(c.UserID, id)
	return id
}

// Callback returns a copy of the callback request.
func (r *Registry) Callback(id string) (domain.CallbackRequest, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.callbacks[id]
	if !ok {
		return domain.CallbackRequest{}, false
	}
	return *c, true
}

// CreateInquiry stores the inquiry under a fresh id.
func (r *Registry) CreateInquiry(q domain.Inquiry) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.allocateIDLocked(domain.KindInquiry)
	r.inquiries[id] = &q
	r.recordRequestLocked(q.UserID, id)
	return id
}

// Inquiry returns a copy of the inquiry.
func (r *Registry) Inquiry(id string) (domain.Inquiry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.inquiries[id]
	if !ok {
		return domain.Inquiry{}, false
	}
	return *q, true
}

// RequestStatus resolves the status of any request id across the four
// collections.
func (r *Registry) RequestStatus(id string) (domain.Status, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.statusLocked(id)
}

func (r *Registry) statusLocked(id string) (domain.Status, bool) {
	if o, ok := r.orders[id]; ok {
		return o.Status, true
	}
	if i, ok := r.issues[id]; ok {
		return i.Status, true
	}
	if c, ok := r.callbacks[id]; ok {
		return c.Status, true
	}
	if q, ok := r.inquiries[id]; ok {
		return q.Status, true
	}
	return "", false
}

// SetRequestStatus writes a new status to whichever collection holds id.
// Validation is the lifecycle engine's job; this is the raw write.
func (r *Registry) SetRequestStatus(id string, s domain.Status) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.orders[id]; ok {
		o.Status = s
		return true
	}
	if i, ok := r.issues[id]; ok {
		i.Status = s
		return true
	}
	if c, ok := r.callbacks[id]; ok {
		c.Status = s
		return true
	}
	if q, ok := r.inquiries[id]; ok {
		q.Status = s
		return true
	}
	return false
}

// RequestOwner returns the user id that filed the request.
func (r *Registry) RequestOwner(id string) (int64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if o, ok := r.orders[id]; ok {
		return o.UserID, true
	}
	if i, ok := r.issues[id]; ok {
		return i.UserID, true
	}
	if c, ok := r.callbacks[id]; ok {
		return c.UserID, true
	}
	if q, ok := r.inquiries[id]; ok {
		return q.UserID, true
	}
	return 0, false
}

// RequestIDs returns every id of the given kind, sorted.
func (r *Registry) RequestIDs(kind domain.RequestKind) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []string
	switch kind {
	case domain.KindOrder:
		for id := range r.orders {
			ids = append(ids, id)
		}
	case domain.KindIssue:
		for id := range r.issues {
			ids = append(ids, id)
		}
	case domain.KindCallback:
		for id := range r.callbacks {
			ids = append(ids, id)
		}
	case domain.KindInquiry:
		for id := range r.inquiries {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Counts reports collection sizes for the admin stats view.
type Counts struct {
	Users     int
	Orders    int
	Issues    int
	Callbacks int
	Inquiries int
}

func (r *Registry) Counts() Counts {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Counts{
		Users:     len(r.users),
		Orders:    len(r.orders),
		Issues:    len(r.issues),
		Callbacks: len(r.callbacks),
		Inquiries: len(r.inquiries),
	}
}

func copyProfile(p *domain.UserProfile) domain.UserProfile {
	return *p
}

func copyStringMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
