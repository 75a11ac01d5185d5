package clinic

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, c *Clinic) error
	GetByID(ctx context.Context, id uuid.UUID) (*Clinic, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Clinic, error)
	Update(ctx context.Context, c *Clinic) error
	Delete(ctx context.Context, id uuid.UUID) error
	ClearPrimary(ctx context.Context, doctorID uuid.UUID) error
}
