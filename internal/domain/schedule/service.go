package schedule

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
	"github.com/clinicdesk/clinicdesk/pkg/hhmm"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// EntryInput is one window in a schedule replacement request.
type EntryInput struct {
	ClinicID  *uuid.UUID `json:"clinic_id"`
	DayOfWeek int        `json:"day_of_week" validate:"min=0,max=6"`
	StartTime string     `json:"start_time" validate:"required,hhmm"`
	EndTime   string     `json:"end_time" validate:"required,hhmm"`
	IsWorking bool       `json:"is_working"`
}

// ListByDoctor returns the full weekly schedule ordered by day then start
// time.
func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Entry, error) {
	entries, err := s.repo.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*Entry{}
	}
	return entries, nil
}

// ListWorkingWindows returns the working windows for a single weekday sorted
// by start time. A day with no entries yields an empty slice, not an error.
func (s *Service) ListWorkingWindows(ctx context.Context, doctorID uuid.UUID, dayOfWeek int, clinicID *uuid.UUID) ([]*Entry, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, apperr.Invalid("day_of_week must be 0..6, got %d", dayOfWeek)
	}
	windows, err := s.repo.ListWorkingWindows(ctx, doctorID, dayOfWeek, clinicID)
	if err != nil {
		return nil, err
	}
	if windows == nil {
		windows = []*Entry{}
	}
	return windows, nil
}

// Replace validates the submitted week and swaps it in atomically. Windows
// on the same day must not overlap each other.
func (s *Service) Replace(ctx context.Context, doctorID uuid.UUID, inputs []EntryInput) ([]*Entry, error) {
	type span struct{ start, end int }
	byDay := make(map[int][]span)

	entries := make([]*Entry, 0, len(inputs))
	for _, in := range inputs {
		if in.DayOfWeek < 0 || in.DayOfWeek > 6 {
			return nil, apperr.Invalid("day_of_week must be 0..6, got %d", in.DayOfWeek)
		}
		start, err := hhmm.Parse(in.StartTime)
		if err != nil {
			return nil, apperr.Invalid("start_time: %v", err)
		}
		end, err := hhmm.Parse(in.EndTime)
		if err != nil {
			return nil, apperr.Invalid("end_time: %v", err)
		}
		if in.IsWorking {
			if start >= end {
				return nil, apperr.Invalid("start_time %s must be before end_time %s", in.StartTime, in.EndTime)
			}
			for _, other := range byDay[in.DayOfWeek] {
				if start < other.end && other.start < end {
					return nil, apperr.Invalid("overlapping windows on day %d", in.DayOfWeek)
				}
			}
			byDay[in.DayOfWeek] = append(byDay[in.DayOfWeek], span{start, end})
		}
		entries = append(entries, &Entry{
			ClinicID:  in.ClinicID,
			DayOfWeek: in.DayOfWeek,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
			IsWorking: in.IsWorking,
		})
	}

	if err := s.repo.ReplaceForDoctor(ctx, doctorID, entries); err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].DayOfWeek != entries[j].DayOfWeek {
			return entries[i].DayOfWeek < entries[j].DayOfWeek
		}
		return entries[i].StartTime < entries[j].StartTime
	})
	return entries, nil
}
