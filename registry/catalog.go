package registry

import (
	"errors"
	"sort"
	"strings"

	"github.com/IjehJoel987/Tekegram/domain"
)

// Catalog returns a deep copy of the price catalog.
func (r *Registry) Catalog() domain.PriceCatalog {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.catalog.Clone()
}

// Items returns the catalog's item keys, sorted.
func (r *Registry) Items() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]string, 0, len(r.catalog))
	for item := range r.catalog {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

// Models returns a copy of the model-to-price map for one item.
func (r *Registry) Models(item string) (map[string]int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	models, ok := r.catalog[item]
	if !ok {
		return nil, false
	}
	out := make(map[string]int, len(models))
	for k, v := range models {
		out[k] = v
	}
	return out, true
}

// Price looks up one model's price.
func (r *Registry) Price(item, model string) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	models, ok := r.catalog[item]
	if !ok {
		return 0, false
	}
	price, ok := models[model]
	return price, ok
}

// AddItem registers a new catalog item with no models yet. Item keys are
// stored lowercased. Reports whether the item was new.
func (r *Registry) AddItem(item string) bool {
	key := strings.ToLower(strings.TrimSpace(item))
	if key == "" {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.catalog[key]; ok {
		return false
	}
	r.catalog[key] = make(map[string]int)
	return true
}

// SetPrice creates or updates a model price, creating the item if needed.
func (r *Registry) SetPrice(item, model string, price int) {
	key := strings.ToLower(strings.TrimSpace(item))
	r.mu.Lock()
	defer r.mu.Unlock()
	models, ok := r.catalog[key]
	if !ok {
		models = make(map[string]int)
		r.catalog[key] = models
	}
	models[model] = price
}

// DeleteModel removes one model; an item left with no models is removed
// from the catalog entirely.
func (r *Registry) DeleteModel(item, model string) bool {
	key := strings.ToLower(strings.TrimSpace(item))
	r.mu.Lock()
	defer r.mu.Unlock()
	models, ok := r.catalog[key]
	if !ok {
		return false
	}
	if _, ok := models[model]; !ok {
		return false
	}
	delete(models, model)
	if len(models) == 0 {
		delete(r.catalog, key)
	}
	return true
}

// Technicians returns a copy of the roster in display order.
func (r *Registry) Technicians() []domain.Technician {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Technician(nil), r.technicians...)
}

// AddTechnician appends to the roster and returns the new length.
func (r *Registry) AddTechnician(t domain.Technician) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.technicians = append(r.technicians, t)
	return len(r.technicians)
}

// Technician returns the roster entry at a zero-based index.
func (r *Registry) Technician(index int) (domain.Technician, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if index < 0 || index >= len(r.technicians) {
		return domain.Technician{}, false
	}
	return r.technicians[index], true
}

// UpdateTechnician writes one field of the roster entry at index.
func (r *Registry) UpdateTechnician(index int, field domain.TechnicianField, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if index < 0 || index >= len(r.technicians) {
		return errors.New("registry: technician index out of range")
	}
	field.Set(&r.technicians[index], value)
	return nil
}

// RemoveTechnician deletes the roster entry at index, preserving order.
func (r *Registry) RemoveTechnician(index int) (domain.Technician, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if index < 0 || index >= len(r.technicians) {
		return domain.Technician{}, errors.New("registry: technician index out of range")
	}
	removed := r.technicians[index]
	r.technicians = append(r.technicians[:index], r.technicians[index+1:]...)
	return removed, nil
}

// Payment returns the current payment details.
func (r *Registry) Payment() domain.PaymentInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.payment
}

// SetPaymentField updates one payment-info field.
func (r *Registry) SetPaymentField(field domain.PaymentField, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	field.Set(&r.payment, value)
}

// Tips returns a copy of the saved tips.
func (r *Registry) Tips() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return copyStringMap(r.tips)
}

// Tip looks up one tip by its lowercased title.
func (r *Registry) Tip(title string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	body, ok := r.tips[strings.ToLower(title)]
	return body, ok
}

// SetTip stores a tip under its lowercased title.
func (r *Registry) SetTip(title, body string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tips[strings.ToLower(strings.TrimSpace(title))] = body
}

// DeleteTip removes a tip and reports whether it existed.
func (r *Registry) DeleteTip(title string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(title)
	_, ok := r.tips[key]
	delete(r.tips, key)
	return ok
}

// Responses returns a copy of the canned inquiry responses.
func (r *Registry) Responses() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return copyStringMap(r.responses)
}

// Response looks up one canned response by its lowercased key.
func (r *Registry) Response(key string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	body, ok := r.responses[strings.ToLower(key)]
	return body, ok
}

// SetResponse stores a canned response under its lowercased key.
func (r *Registry) SetResponse(key, body string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[strings.ToLower(strings.TrimSpace(key))] = body
}
