package clinics

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("clinic not found")

// Repo defines persistence operations for the clinic directory.
type Repo interface {
	List(ctx context.Context, filter Filter) ([]Clinic, error)
	GetByID(ctx context.Context, id string) (Clinic, error)
	Create(ctx context.Context, clinic Clinic) error
	Update(ctx context.Context, clinic Clinic) error
	Delete(ctx context.Context, id string) error
}
