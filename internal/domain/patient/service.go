package patient

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NormalizePhone strips spaces and dashes so the same number always matches
// the same patient row.
func NormalizePhone(phone string) (string, error) {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(phone))
	if !phonePattern.MatchString(cleaned) {
		return "", apperr.Invalid("invalid phone number %q", phone)
	}
	return cleaned, nil
}

// CreateInput carries a new patient record.
type CreateInput struct {
	FirstName  string  `json:"first_name" validate:"required"`
	FatherName *string `json:"father_name"`
	LastName   *string `json:"last_name"`
	Phone      string  `json:"phone" validate:"required"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Gender     *string `json:"gender" validate:"omitempty,oneof=male female other"`
	BirthDate  *string `json:"birth_date"`
	Address    *string `json:"address"`
	Notes      *string `json:"notes"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Patient, error) {
	phone, err := NormalizePhone(in.Phone)
	if err != nil {
		return nil, err
	}
	p := &Patient{
		FirstName:  strings.TrimSpace(in.FirstName),
		FatherName: in.FatherName,
		LastName:   in.LastName,
		Phone:      phone,
		Email:      in.Email,
		Gender:     in.Gender,
		BirthDate:  in.BirthDate,
		Address:    in.Address,
		Notes:      in.Notes,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByPhone(ctx context.Context, phone string) (*Patient, error) {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByPhone(ctx, normalized)
}

// FindOrCreateByPhone looks a patient up by phone and creates a minimal
// record when none exists. Booking by phone relies on this.
func (s *Service) FindOrCreateByPhone(ctx context.Context, name, phone string) (*Patient, error) {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.GetByPhone(ctx, normalized)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Invalid("patient name is required for a new patient")
	}
	p = &Patient{FirstName: name, Phone: normalized}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateInput carries editable patient fields. Nil pointers leave the
// current value in place.
type UpdateInput struct {
	FirstName  *string `json:"first_name"`
	FatherName *string `json:"father_name"`
	LastName   *string `json:"last_name"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
	Gender     *string `json:"gender"`
	BirthDate  *string `json:"birth_date"`
	Address    *string `json:"address"`
	Notes      *string `json:"notes"`
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.FirstName != nil {
		if strings.TrimSpace(*in.FirstName) == "" {
			return nil, apperr.Invalid("first_name cannot be empty")
		}
		p.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.Phone != nil {
		phone, err := NormalizePhone(*in.Phone)
		if err != nil {
			return nil, err
		}
		p.Phone = phone
	}
	if in.FatherName != nil {
		p.FatherName = in.FatherName
	}
	if in.LastName != nil {
		p.LastName = in.LastName
	}
	if in.Email != nil {
		p.Email = in.Email
	}
	if in.Gender != nil {
		p.Gender = in.Gender
	}
	if in.BirthDate != nil {
		p.BirthDate = in.BirthDate
	}
	if in.Address != nil {
		p.Address = in.Address
	}
	if in.Notes != nil {
		p.Notes = in.Notes
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, f ListFilter, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}

func (s *Service) Block(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetBlocked(ctx, id, true)
}

func (s *Service) Unblock(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetBlocked(ctx, id, false)
}

// SetBlocked is used by the booking flow when a patient crosses the no-show
// threshold.
func (s *Service) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error {
	return s.repo.SetBlocked(ctx, id, blocked)
}

// RecordNoShow bumps the patient's no-show counter and returns the new
// count.
func (s *Service) RecordNoShow(ctx context.Context, id uuid.UUID) (int, error) {
	return s.repo.IncrementNoShow(ctx, id)
}
