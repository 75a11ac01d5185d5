package clinic

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
)

type mockRepo struct {
	clinics map[uuid.UUID]*Clinic
}

func newMockRepo() *mockRepo {
	return &mockRepo{clinics: make(map[uuid.UUID]*Clinic)}
}

func (m *mockRepo) Create(_ context.Context, c *Clinic) error {
	c.ID = uuid.New()
	m.clinics[c.ID] = c
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Clinic, error) {
	c, ok := m.clinics[id]
	if !ok {
		return nil, apperr.NotFound("clinic")
	}
	return c, nil
}

func (m *mockRepo) ListByDoctor(_ context.Context, doctorID uuid.UUID) ([]*Clinic, error) {
	var items []*Clinic
	for _, c := range m.clinics {
		if c.DoctorID == doctorID {
			items = append(items, c)
		}
	}
	return items, nil
}

func (m *mockRepo) Update(_ context.Context, c *Clinic) error {
	if _, ok := m.clinics[c.ID]; !ok {
		return apperr.NotFound("clinic")
	}
	m.clinics[c.ID] = c
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.clinics[id]; !ok {
		return apperr.NotFound("clinic")
	}
	delete(m.clinics, id)
	return nil
}

func (m *mockRepo) ClearPrimary(_ context.Context, doctorID uuid.UUID) error {
	for _, c := range m.clinics {
		if c.DoctorID == doctorID {
			c.IsPrimary = false
		}
	}
	return nil
}

func TestCreatePrimaryDemotesPrevious(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()
	doctorID := uuid.New()

	first, err := svc.Create(ctx, doctorID, Input{Name: "Downtown", IsPrimary: true})
	if err != nil {
		t.Fatalf("Create first: %v", err)
	}
	second, err := svc.Create(ctx, doctorID, Input{Name: "Uptown", IsPrimary: true})
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}

	got, _ := svc.Get(ctx, first.ID)
	if got.IsPrimary {
		t.Errorf("first clinic still primary after second became primary")
	}
	got, _ = svc.Get(ctx, second.ID)
	if !got.IsPrimary {
		t.Errorf("second clinic not primary")
	}
}

func TestOwnershipEnforced(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()
	owner := uuid.New()
	intruder := uuid.New()

	c, err := svc.Create(ctx, owner, Input{Name: "Main"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Update(ctx, intruder, c.ID, Input{Name: "Hijacked"}); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("Update by intruder: got %v, want ErrForbidden", err)
	}
	if err := svc.Delete(ctx, intruder, c.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("Delete by intruder: got %v, want ErrForbidden", err)
	}
	if err := svc.Delete(ctx, owner, c.ID); err != nil {
		t.Errorf("Delete by owner: %v", err)
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc := NewService(newMockRepo())
	if _, err := svc.Create(context.Background(), uuid.New(), Input{Name: "   "}); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("blank name: got %v, want ErrInvalidInput", err)
	}
}
