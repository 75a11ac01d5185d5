package patient

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
)

type mockRepo struct {
	patients map[uuid.UUID]*Patient
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	for _, existing := range m.patients {
		if existing.Phone == p.Phone {
			return apperr.Conflict("phone %s already registered", p.Phone)
		}
	}
	p.ID = uuid.New()
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, apperr.NotFound("patient")
	}
	return p, nil
}

func (m *mockRepo) GetByPhone(_ context.Context, phone string) (*Patient, error) {
	for _, p := range m.patients {
		if p.Phone == phone {
			return p, nil
		}
	}
	return nil, apperr.NotFound("patient")
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	if _, ok := m.patients[p.ID]; !ok {
		return apperr.NotFound("patient")
	}
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) List(_ context.Context, f ListFilter, limit, offset int) ([]*Patient, int, error) {
	var items []*Patient
	for _, p := range m.patients {
		if f.Blocked != nil && p.IsBlocked != *f.Blocked {
			continue
		}
		items = append(items, p)
	}
	return items, len(items), nil
}

func (m *mockRepo) SetBlocked(_ context.Context, id uuid.UUID, blocked bool) error {
	p, ok := m.patients[id]
	if !ok {
		return apperr.NotFound("patient")
	}
	p.IsBlocked = blocked
	return nil
}

func (m *mockRepo) IncrementNoShow(_ context.Context, id uuid.UUID) (int, error) {
	p, ok := m.patients[id]
	if !ok {
		return 0, apperr.NotFound("patient")
	}
	p.NoShowCount++
	return p.NoShowCount, nil
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"0912345678", "0912345678", false},
		{"+963 912 345 678", "+963912345678", false},
		{"091-234-5678", "0912345678", false},
		{"(091) 2345678", "0912345678", false},
		{"12345", "", true},
		{"not-a-phone", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := NormalizePhone(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("NormalizePhone(%q) expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizePhone(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFindOrCreateByPhone(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	p1, err := svc.FindOrCreateByPhone(ctx, "Lina", "0912345678")
	if err != nil {
		t.Fatalf("FindOrCreateByPhone (create): %v", err)
	}
	if p1.FirstName != "Lina" || p1.Phone != "0912345678" {
		t.Errorf("unexpected patient: %+v", p1)
	}

	// Same number with different formatting must resolve to the same row.
	p2, err := svc.FindOrCreateByPhone(ctx, "ignored", "091-234-5678")
	if err != nil {
		t.Fatalf("FindOrCreateByPhone (find): %v", err)
	}
	if p2.ID != p1.ID {
		t.Errorf("expected same patient, got %s and %s", p1.ID, p2.ID)
	}

	// A new number without a name is rejected.
	if _, err := svc.FindOrCreateByPhone(ctx, "  ", "0999999999"); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("missing name: got %v, want ErrInvalidInput", err)
	}
}

func TestBlockUnblock(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateInput{FirstName: "Sami", Phone: "0911111111"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Block(ctx, p.ID); err != nil {
		t.Fatalf("Block: %v", err)
	}
	got, _ := svc.Get(ctx, p.ID)
	if !got.IsBlocked {
		t.Errorf("patient not blocked")
	}

	if err := svc.Unblock(ctx, p.ID); err != nil {
		t.Fatalf("Unblock: %v", err)
	}
	got, _ = svc.Get(ctx, p.ID)
	if got.IsBlocked {
		t.Errorf("patient still blocked")
	}

	if err := svc.Block(ctx, uuid.New()); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Block unknown: got %v, want ErrNotFound", err)
	}
}

func TestRecordNoShow(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateInput{FirstName: "Rana", Phone: "0922222222"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for want := 1; want <= 3; want++ {
		got, err := svc.RecordNoShow(ctx, p.ID)
		if err != nil {
			t.Fatalf("RecordNoShow: %v", err)
		}
		if got != want {
			t.Errorf("no-show count = %d, want %d", got, want)
		}
	}
}

func TestCreateDuplicatePhone(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateInput{FirstName: "A", Phone: "0933333333"}); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := svc.Create(ctx, CreateInput{FirstName: "B", Phone: "093 333 3333"}); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("duplicate phone: got %v, want ErrConflict", err)
	}
}
