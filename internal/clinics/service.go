package clinics

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ValidationError reports a malformed clinic payload.
type ValidationError struct {
	Field string
	Issue string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid clinic: %s %s", e.Field, e.Issue)
}

// Service contains business logic for the clinic directory.
type Service struct {
	Repo  Repo
	Cache *ListingCache
}

// NewService constructs a Service.
func NewService(repo Repo, cache *ListingCache) *Service {
	return &Service{Repo: repo, Cache: cache}
}

// List returns clinics matching the filter, consulting the cache first.
func (s *Service) List(ctx context.Context, filter Filter) ([]Clinic, error) {
	if filter.PriceBand != "" && !filter.PriceBand.Valid() {
		return nil, &ValidationError{Field: "priceBand", Issue: "must be one of FREE, LOW, MEDIUM, HIGH"}
	}

	if listing, ok := s.Cache.Get(ctx, filter); ok {
		return listing, nil
	}
	listing, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, filter, listing)
	return listing, nil
}

// Get returns a single clinic.
func (s *Service) Get(ctx context.Context, id string) (Clinic, error) {
	return s.Repo.GetByID(ctx, id)
}

// Create validates and stores a new clinic, invalidating cached listings.
func (s *Service) Create(ctx context.Context, clinic Clinic) (Clinic, error) {
	if err := validateClinic(clinic); err != nil {
		return Clinic{}, err
	}
	clinic.ID = uuid.NewString()
	if err := s.Repo.Create(ctx, clinic); err != nil {
		return Clinic{}, err
	}
	s.Cache.Flush(ctx)
	return s.Repo.GetByID(ctx, clinic.ID)
}

// Update validates and replaces an existing clinic, invalidating cached listings.
func (s *Service) Update(ctx context.Context, clinic Clinic) (Clinic, error) {
	if strings.TrimSpace(clinic.ID) == "" {
		return Clinic{}, &ValidationError{Field: "id", Issue: "is required"}
	}
	if err := validateClinic(clinic); err != nil {
		return Clinic{}, err
	}
	if err := s.Repo.Update(ctx, clinic); err != nil {
		return Clinic{}, err
	}
	s.Cache.Flush(ctx)
	return s.Repo.GetByID(ctx, clinic.ID)
}

// Delete removes a clinic, invalidating cached listings.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Cache.Flush(ctx)
	return nil
}

func validateClinic(clinic Clinic) error {
	if strings.TrimSpace(clinic.Name) == "" {
		return &ValidationError{Field: "name", Issue: "is required"}
	}
	if strings.TrimSpace(clinic.County) == "" {
		return &ValidationError{Field: "county", Issue: "is required"}
	}
	if strings.TrimSpace(clinic.AvailableServices) == "" {
		return &ValidationError{Field: "availableServices", Issue: "is required"}
	}
	if !clinic.PriceBand.Valid() {
		return &ValidationError{Field: "priceBand", Issue: "must be one of FREE, LOW, MEDIUM, HIGH"}
	}
	return nil
}
