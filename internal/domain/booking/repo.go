package booking

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows appointment listings. Empty fields are ignored.
type ListFilter struct {
	Date      string
	Status    Status
	PatientID *uuid.UUID
}

type Repository interface {
	Insert(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, f ListFilter, limit, offset int) ([]*Appointment, int, error)
	// ListActiveByDay returns pending and confirmed appointments for one
	// doctor-day, optionally restricted to a clinic, ordered by start time.
	ListActiveByDay(ctx context.Context, doctorID uuid.UUID, date string, clinicID *uuid.UUID) ([]*Appointment, error)
	CountActiveByDay(ctx context.Context, doctorID uuid.UUID, date string) (int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, reason *string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
