package doctor

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows doctor listings. Empty fields are ignored.
type ListFilter struct {
	Specialization string
	Name           string
}

type Repository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	GetByEmail(ctx context.Context, email string) (*Doctor, error)
	Update(ctx context.Context, d *Doctor) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f ListFilter, limit, offset int) ([]*Doctor, int, error)

	GetSettings(ctx context.Context, doctorID uuid.UUID) (*Settings, error)
	SaveSettings(ctx context.Context, s *Settings) error
}
