package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
)

type mockRepo struct {
	entries map[uuid.UUID][]*Entry
}

func newMockRepo() *mockRepo {
	return &mockRepo{entries: make(map[uuid.UUID][]*Entry)}
}

func (m *mockRepo) ListByDoctor(_ context.Context, doctorID uuid.UUID) ([]*Entry, error) {
	return m.entries[doctorID], nil
}

func (m *mockRepo) ListWorkingWindows(_ context.Context, doctorID uuid.UUID, dayOfWeek int, clinicID *uuid.UUID) ([]*Entry, error) {
	var windows []*Entry
	for _, e := range m.entries[doctorID] {
		if e.DayOfWeek != dayOfWeek || !e.IsWorking {
			continue
		}
		if clinicID != nil && (e.ClinicID == nil || *e.ClinicID != *clinicID) {
			continue
		}
		windows = append(windows, e)
	}
	return windows, nil
}

func (m *mockRepo) ReplaceForDoctor(_ context.Context, doctorID uuid.UUID, entries []*Entry) error {
	for _, e := range entries {
		e.ID = uuid.New()
		e.DoctorID = doctorID
	}
	m.entries[doctorID] = entries
	return nil
}

func TestReplaceValidWeek(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()
	doctorID := uuid.New()

	entries, err := svc.Replace(ctx, doctorID, []EntryInput{
		{DayOfWeek: 0, StartTime: "08:00", EndTime: "12:00", IsWorking: true},
		{DayOfWeek: 0, StartTime: "14:00", EndTime: "18:00", IsWorking: true},
		{DayOfWeek: 5, StartTime: "00:00", EndTime: "00:00", IsWorking: false},
	})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	for _, e := range entries {
		if e.DoctorID != doctorID {
			t.Errorf("entry not stamped with doctor id: %+v", e)
		}
	}
}

func TestReplaceRejectsBadInput(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()
	doctorID := uuid.New()

	cases := []struct {
		name   string
		inputs []EntryInput
	}{
		{"day out of range", []EntryInput{{DayOfWeek: 7, StartTime: "08:00", EndTime: "12:00", IsWorking: true}}},
		{"negative day", []EntryInput{{DayOfWeek: -1, StartTime: "08:00", EndTime: "12:00", IsWorking: true}}},
		{"bad time", []EntryInput{{DayOfWeek: 1, StartTime: "8:00", EndTime: "12:00", IsWorking: true}}},
		{"start equals end", []EntryInput{{DayOfWeek: 1, StartTime: "09:00", EndTime: "09:00", IsWorking: true}}},
		{"start after end", []EntryInput{{DayOfWeek: 1, StartTime: "15:00", EndTime: "09:00", IsWorking: true}}},
		{"overlapping same day", []EntryInput{
			{DayOfWeek: 2, StartTime: "08:00", EndTime: "12:00", IsWorking: true},
			{DayOfWeek: 2, StartTime: "11:00", EndTime: "14:00", IsWorking: true},
		}},
	}
	for _, tc := range cases {
		if _, err := svc.Replace(ctx, doctorID, tc.inputs); !errors.Is(err, apperr.ErrInvalidInput) {
			t.Errorf("%s: got %v, want ErrInvalidInput", tc.name, err)
		}
	}
}

func TestReplaceAllowsTouchingWindows(t *testing.T) {
	svc := NewService(newMockRepo())

	// 08:00-12:00 and 12:00-16:00 share a boundary but do not overlap.
	_, err := svc.Replace(context.Background(), uuid.New(), []EntryInput{
		{DayOfWeek: 3, StartTime: "08:00", EndTime: "12:00", IsWorking: true},
		{DayOfWeek: 3, StartTime: "12:00", EndTime: "16:00", IsWorking: true},
	})
	if err != nil {
		t.Fatalf("Replace touching windows: %v", err)
	}
}

func TestReplaceIsAtomicSwap(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()
	doctorID := uuid.New()

	if _, err := svc.Replace(ctx, doctorID, []EntryInput{
		{DayOfWeek: 1, StartTime: "08:00", EndTime: "12:00", IsWorking: true},
	}); err != nil {
		t.Fatalf("first Replace: %v", err)
	}
	if _, err := svc.Replace(ctx, doctorID, []EntryInput{
		{DayOfWeek: 2, StartTime: "10:00", EndTime: "14:00", IsWorking: true},
	}); err != nil {
		t.Fatalf("second Replace: %v", err)
	}

	entries, err := svc.ListByDoctor(ctx, doctorID)
	if err != nil {
		t.Fatalf("ListByDoctor: %v", err)
	}
	if len(entries) != 1 || entries[0].DayOfWeek != 2 {
		t.Errorf("old schedule leaked through replace: %+v", entries)
	}
}

func TestListWorkingWindowsEmptyDay(t *testing.T) {
	svc := NewService(newMockRepo())

	windows, err := svc.ListWorkingWindows(context.Background(), uuid.New(), 4, nil)
	if err != nil {
		t.Fatalf("ListWorkingWindows: %v", err)
	}
	if windows == nil || len(windows) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", windows)
	}
}

func TestListWorkingWindowsRejectsBadDay(t *testing.T) {
	svc := NewService(newMockRepo())
	if _, err := svc.ListWorkingWindows(context.Background(), uuid.New(), 9, nil); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("day 9: got %v, want ErrInvalidInput", err)
	}
}
