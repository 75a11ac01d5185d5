package doctor

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
)

type mockRepo struct {
	doctors  map[uuid.UUID]*Doctor
	settings map[uuid.UUID]*Settings
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		doctors:  make(map[uuid.UUID]*Doctor),
		settings: make(map[uuid.UUID]*Settings),
	}
}

func (m *mockRepo) Create(_ context.Context, d *Doctor) error {
	for _, existing := range m.doctors {
		if existing.Email == d.Email {
			return apperr.Conflict("email %s already registered", d.Email)
		}
	}
	d.ID = uuid.New()
	m.doctors[d.ID] = d
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Doctor, error) {
	d, ok := m.doctors[id]
	if !ok {
		return nil, apperr.NotFound("doctor")
	}
	return d, nil
}

func (m *mockRepo) GetByEmail(_ context.Context, email string) (*Doctor, error) {
	for _, d := range m.doctors {
		if d.Email == email {
			return d, nil
		}
	}
	return nil, apperr.NotFound("doctor")
}

func (m *mockRepo) Update(_ context.Context, d *Doctor) error {
	if _, ok := m.doctors[d.ID]; !ok {
		return apperr.NotFound("doctor")
	}
	m.doctors[d.ID] = d
	return nil
}

func (m *mockRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	d, ok := m.doctors[id]
	if !ok {
		return apperr.NotFound("doctor")
	}
	d.IsActive = false
	return nil
}

func (m *mockRepo) List(_ context.Context, f ListFilter, limit, offset int) ([]*Doctor, int, error) {
	var items []*Doctor
	for _, d := range m.doctors {
		if d.IsActive {
			items = append(items, d)
		}
	}
	return items, len(items), nil
}

func (m *mockRepo) GetSettings(_ context.Context, doctorID uuid.UUID) (*Settings, error) {
	s, ok := m.settings[doctorID]
	if !ok {
		return nil, apperr.NotFound("settings")
	}
	return s, nil
}

func (m *mockRepo) SaveSettings(_ context.Context, s *Settings) error {
	m.settings[s.DoctorID] = s
	return nil
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	d, err := svc.Register(ctx, RegisterInput{
		FirstName: "Sara",
		LastName:  "Haddad",
		Email:     "  Sara@Example.COM ",
		Password:  "correct-horse",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if d.Email != "sara@example.com" {
		t.Errorf("email not normalized: %q", d.Email)
	}
	if d.PasswordHash == "correct-horse" || d.PasswordHash == "" {
		t.Errorf("password stored unhashed")
	}

	if _, err := svc.Authenticate(ctx, "sara@example.com", "correct-horse"); err != nil {
		t.Errorf("Authenticate with valid password: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "sara@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Authenticate with bad password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody@example.com", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Authenticate with unknown email: got %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	in := RegisterInput{FirstName: "A", LastName: "B", Email: "dup@example.com", Password: "password1"}
	if _, err := svc.Register(ctx, in); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := svc.Register(ctx, in); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("second Register: got %v, want ErrConflict", err)
	}
}

func TestAuthenticateDeactivated(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	d, err := svc.Register(ctx, RegisterInput{FirstName: "A", LastName: "B", Email: "gone@example.com", Password: "password1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := svc.Deactivate(ctx, d.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "gone@example.com", "password1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Authenticate deactivated: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.GetActive(ctx, d.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("GetActive deactivated: got %v, want ErrNotFound", err)
	}
}

func TestSettingsDefaults(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()
	id := uuid.New()

	st, err := svc.Settings(ctx, id)
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	if st.SlotInterval != 30 || st.CancellationDeadlineHours != 18 ||
		st.MaxDailyAppointments != 20 || st.MaxNoShowCount != 3 {
		t.Errorf("unexpected defaults: %+v", st)
	}

	interval := 15
	updated, err := svc.UpdateSettings(ctx, id, SettingsInput{SlotInterval: &interval})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if updated.SlotInterval != 15 {
		t.Errorf("SlotInterval = %d, want 15", updated.SlotInterval)
	}
	if updated.MaxDailyAppointments != 20 {
		t.Errorf("untouched field changed: %+v", updated)
	}

	again, err := svc.Settings(ctx, id)
	if err != nil {
		t.Fatalf("Settings after update: %v", err)
	}
	if again.SlotInterval != 15 {
		t.Errorf("settings not persisted: %+v", again)
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	d, err := svc.Register(ctx, RegisterInput{FirstName: "Omar", LastName: "Khalil", Email: "omar@example.com", Password: "password1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	bio := "Cardiologist, 12 years of practice"
	updated, err := svc.UpdateProfile(ctx, d.ID, ProfileInput{Bio: &bio})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Bio == nil || *updated.Bio != bio {
		t.Errorf("bio not updated")
	}
	if updated.FirstName != "Omar" {
		t.Errorf("untouched field changed: %q", updated.FirstName)
	}

	empty := "  "
	if _, err := svc.UpdateProfile(ctx, d.ID, ProfileInput{FirstName: &empty}); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("empty first_name: got %v, want ErrInvalidInput", err)
	}
}
