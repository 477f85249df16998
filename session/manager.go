package session

import (
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Manager holds the active flow per user. At most one flow exists per user;
// starting a new one replaces whatever was in progress.
type Manager struct {
	mu    sync.RWMutex
	flows map[int64]Flow
}

func NewManager() *Manager {
	return &Manager{flows: make(map[int64]Flow)}
}

// Get returns the user's active flow, if any.
func (m *Manager) Get(userID int64) (Flow, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.flows[userID]
	return f, ok
}

// InProgress reports whether the user has an active flow.
func (m *Manager) InProgress(userID int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.flows[userID]
	return ok
}

// Set installs or replaces the user's active flow.
func (m *Manager) Set(userID int64, f Flow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flows[userID] = f
}

// Clear drops the user's active flow and reports whether one existed.
func (m *Manager) Clear(userID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.flows[userID]
	delete(m.flows, userID)
	return ok
}

// Count returns the number of users with an active flow.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.flows)
}

// Export serializes every active flow for the snapshot.
func (m *Manager) Export() (map[int64]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[int64]Record, len(m.flows))
	var errs error
	for uid, f := range m.flows {
		rec, err := Encode(f)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		out[uid] = rec
	}
	return out, errs
}

// Restore replaces all active flows with the decoded records. Records that
// fail to decode are skipped and reported together; the rest still load.
func (m *Manager) Restore(records map[int64]Record) error {
	flows := make(map[int64]Flow, len(records))
	var errs error
	for uid, rec := range records {
		f, err := Decode(rec)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		flows[uid] = f
	}

	m.mu.Lock()
	m.flows = flows
	m.mu.Unlock()
	return errs
}
