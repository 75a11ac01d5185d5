package schedule

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Entry, error)
	// ListWorkingWindows returns the working entries for one weekday,
	// optionally restricted to a clinic, ordered by start time.
	ListWorkingWindows(ctx context.Context, doctorID uuid.UUID, dayOfWeek int, clinicID *uuid.UUID) ([]*Entry, error)
	// ReplaceForDoctor swaps the doctor's entire weekly schedule in one
	// transaction. Readers never observe a half-replaced week.
	ReplaceForDoctor(ctx context.Context, doctorID uuid.UUID, entries []*Entry) error
}
