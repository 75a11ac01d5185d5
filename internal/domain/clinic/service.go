package clinic

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Input carries the editable clinic fields.
type Input struct {
	Name      string   `json:"name" validate:"required"`
	Address   *string  `json:"address"`
	Phone     *string  `json:"phone"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
	IsPrimary bool     `json:"is_primary"`
}

// Create adds a clinic for the doctor. Marking it primary demotes any
// existing primary clinic.
func (s *Service) Create(ctx context.Context, doctorID uuid.UUID, in Input) (*Clinic, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Invalid("clinic name is required")
	}
	if in.IsPrimary {
		if err := s.repo.ClearPrimary(ctx, doctorID); err != nil {
			return nil, err
		}
	}
	c := &Clinic{
		DoctorID:  doctorID,
		Name:      name,
		Address:   in.Address,
		Phone:     in.Phone,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		IsPrimary: in.IsPrimary,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Clinic, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Clinic, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

// Update edits a clinic after checking it belongs to the calling doctor.
func (s *Service) Update(ctx context.Context, doctorID, clinicID uuid.UUID, in Input) (*Clinic, error) {
	c, err := s.owned(ctx, doctorID, clinicID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Invalid("clinic name is required")
	}
	if in.IsPrimary && !c.IsPrimary {
		if err := s.repo.ClearPrimary(ctx, doctorID); err != nil {
			return nil, err
		}
	}
	c.Name = name
	c.Address = in.Address
	c.Phone = in.Phone
	c.Latitude = in.Latitude
	c.Longitude = in.Longitude
	c.IsPrimary = in.IsPrimary
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, doctorID, clinicID uuid.UUID) error {
	if _, err := s.owned(ctx, doctorID, clinicID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, clinicID)
}

func (s *Service) owned(ctx context.Context, doctorID, clinicID uuid.UUID) (*Clinic, error) {
	c, err := s.repo.GetByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if c.DoctorID != doctorID {
		return nil, apperr.Forbidden("clinic belongs to another doctor")
	}
	return c, nil
}
