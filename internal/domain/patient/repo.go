package patient

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows patient listings. Empty fields are ignored.
type ListFilter struct {
	Name    string
	Phone   string
	Blocked *bool
}

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetByPhone(ctx context.Context, phone string) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	List(ctx context.Context, f ListFilter, limit, offset int) ([]*Patient, int, error)
	SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error
	// IncrementNoShow bumps the counter and returns the new value.
	IncrementNoShow(ctx context.Context, id uuid.UUID) (int, error)
}
