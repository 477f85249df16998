package registry

import (
	"errors"
	"sort"
)

// ErrRootOwner is returned when an operation would demote the root owner.
var ErrRootOwner = errors.New("registry: root owner cannot be removed")

// RootOwner returns the configured root owner id.
func (r *Registry) RootOwner() int64 { return r.rootOwner }

// IsRootOwner reports whether id is the root owner.
func (r *Registry) IsRootOwner(id int64) bool { return id == r.rootOwner }

// IsAdmin reports whether id may use admin operations. The root owner is
// always an admin regardless of the stored set.
func (r *Registry) IsAdmin(id int64) bool {
	if id == r.rootOwner {
		return true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.admins[id]
	return ok
}

// Admins returns the full admin set, root owner included, sorted.
func (r *Registry) Admins() []int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.adminsLocked()
}

func (r *Registry) adminsLocked() []int64 {
	ids := make([]int64, 0, len(r.admins)+1)
	seen := false
	for id := range r.admins {
		if id == r.rootOwner {
			seen = true
		}
		ids = append(ids, id)
	}
	if !seen && r.rootOwner != 0 {
		ids = append(ids, r.rootOwner)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// AddAdmin grants admin rights and reports whether the set changed.
func (r *Registry) AddAdmin(id int64) bool {
	if id == r.rootOwner {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.admins[id]; ok {
		return false
	}
	r.admins[id] = struct{}{}
	return true
}

// RemoveAdmin revokes admin rights. Removing the root owner is refused.
func (r *Registry) RemoveAdmin(id int64) error {
	if id == r.rootOwner {
		return ErrRootOwner
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.admins[id]; !ok {
		return errors.New("registry: not an admin")
	}
	delete(r.admins, id)
	return nil
}
