package clinics

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryRepo stores clinics in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Clinic
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Clinic)}
}

// List returns clinics matching the filter, cheapest tier first.
func (r *MemoryRepo) List(ctx context.Context, filter Filter) ([]Clinic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []Clinic{}
	for _, clinic := range r.byID {
		if !matches(clinic, filter) {
			continue
		}
		matched = append(matched, clinic)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].PriceBand.rank() != matched[j].PriceBand.rank() {
			return matched[i].PriceBand.rank() < matched[j].PriceBand.rank()
		}
		return matched[i].Name < matched[j].Name
	})
	return matched, nil
}

// GetByID returns a clinic by id.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Clinic, error) {
	if err := ctx.Err(); err != nil {
		return Clinic{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clinic, ok := r.byID[id]
	if !ok {
		return Clinic{}, ErrNotFound
	}
	return clinic, nil
}

// Create stores the clinic.
func (r *MemoryRepo) Create(ctx context.Context, clinic Clinic) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if clinic.CreatedAt.IsZero() {
		clinic.CreatedAt = now
	}
	clinic.UpdatedAt = now
	r.byID[clinic.ID] = clinic
	return nil
}

// Update replaces an existing clinic.
func (r *MemoryRepo) Update(ctx context.Context, clinic Clinic) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[clinic.ID]
	if !ok {
		return ErrNotFound
	}
	clinic.CreatedAt = existing.CreatedAt
	clinic.UpdatedAt = time.Now().UTC()
	r.byID[clinic.ID] = clinic
	return nil
}

// Delete removes a clinic.
func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func matches(clinic Clinic, filter Filter) bool {
	if filter.County != "" && !strings.EqualFold(clinic.County, filter.County) {
		return false
	}
	if filter.Service != "" && !containsService(clinic.AvailableServices, filter.Service) {
		return false
	}
	if filter.PriceBand != "" && clinic.PriceBand != filter.PriceBand {
		return false
	}
	return true
}

func containsService(available, wanted string) bool {
	for _, svc := range strings.Split(available, ",") {
		if strings.EqualFold(strings.TrimSpace(svc), strings.TrimSpace(wanted)) {
			return true
		}
	}
	return false
}
