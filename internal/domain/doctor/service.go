package doctor

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
)

// ErrInvalidCredentials is returned by Authenticate when the email or
// password does not match. It deliberately does not say which.
var ErrInvalidCredentials = errors.New("invalid email or password")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RegisterInput carries a new doctor account.
type RegisterInput struct {
	FirstName      string  `json:"first_name" validate:"required"`
	FatherName     *string `json:"father_name"`
	LastName       string  `json:"last_name" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required,min=8"`
	PhonePersonal  *string `json:"phone_personal"`
	Specialization *string `json:"specialization"`
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*Doctor, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	d := &Doctor{
		FirstName:      strings.TrimSpace(in.FirstName),
		FatherName:     in.FatherName,
		LastName:       strings.TrimSpace(in.LastName),
		Email:          strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash:   string(hash),
		PhonePersonal:  in.PhonePersonal,
		Specialization: in.Specialization,
		IsActive:       true,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Authenticate checks the email/password pair and returns the doctor on
// success. Inactive accounts cannot log in.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Doctor, error) {
	d, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !d.IsActive {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(d.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return d, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

// GetActive returns the doctor only when the account is active. Booking and
// slot lookups go through this so deactivated doctors disappear from the
// public surface.
func (s *Service) GetActive(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !d.IsActive {
		return nil, apperr.NotFound("doctor")
	}
	return d, nil
}

// ProfileInput carries profile fields a doctor may edit. Nil pointers leave
// the current value in place.
type ProfileInput struct {
	FirstName       *string `json:"first_name"`
	FatherName      *string `json:"father_name"`
	LastName        *string `json:"last_name"`
	PhonePersonal   *string `json:"phone_personal"`
	PhoneClinic     *string `json:"phone_clinic"`
	Specialization  *string `json:"specialization"`
	Qualifications  *string `json:"qualifications"`
	Bio             *string `json:"bio"`
	ProfileImageURL *string `json:"profile_image_url"`
}

func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, in ProfileInput) (*Doctor, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.FirstName != nil {
		if strings.TrimSpace(*in.FirstName) == "" {
			return nil, apperr.Invalid("first_name cannot be empty")
		}
		d.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		if strings.TrimSpace(*in.LastName) == "" {
			return nil, apperr.Invalid("last_name cannot be empty")
		}
		d.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.FatherName != nil {
		d.FatherName = in.FatherName
	}
	if in.PhonePersonal != nil {
		d.PhonePersonal = in.PhonePersonal
	}
	if in.PhoneClinic != nil {
		d.PhoneClinic = in.PhoneClinic
	}
	if in.Specialization != nil {
		d.Specialization = in.Specialization
	}
	if in.Qualifications != nil {
		d.Qualifications = in.Qualifications
	}
	if in.Bio != nil {
		d.Bio = in.Bio
	}
	if in.ProfileImageURL != nil {
		d.ProfileImageURL = in.ProfileImageURL
	}
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.Deactivate(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter, limit, offset int) ([]*Doctor, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}

// Settings returns the doctor's booking settings, falling back to defaults
// when none were ever saved.
func (s *Service) Settings(ctx context.Context, doctorID uuid.UUID) (*Settings, error) {
	st, err := s.repo.GetSettings(ctx, doctorID)
	if errors.Is(err, apperr.ErrNotFound) {
		return DefaultSettings(doctorID), nil
	}
	return st, err
}

// SettingsInput updates a subset of the booking settings.
type SettingsInput struct {
	SlotInterval              *int `json:"slot_interval" validate:"omitempty,min=5,max=240"`
	CancellationDeadlineHours *int `json:"cancellation_deadline_hours" validate:"omitempty,min=0,max=168"`
	MaxDailyAppointments      *int `json:"max_daily_appointments" validate:"omitempty,min=1,max=200"`
	MaxNoShowCount            *int `json:"max_no_show_count" validate:"omitempty,min=1,max=50"`
}

func (s *Service) UpdateSettings(ctx context.Context, doctorID uuid.UUID, in SettingsInput) (*Settings, error) {
	st, err := s.Settings(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if in.SlotInterval != nil {
		st.SlotInterval = *in.SlotInterval
	}
	if in.CancellationDeadlineHours != nil {
		st.CancellationDeadlineHours = *in.CancellationDeadlineHours
	}
	if in.MaxDailyAppointments != nil {
		st.MaxDailyAppointments = *in.MaxDailyAppointments
	}
	if in.MaxNoShowCount != nil {
		st.MaxNoShowCount = *in.MaxNoShowCount
	}
	if err := s.repo.SaveSettings(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}
