package booking

import (
	"github.com/clinicdesk/clinicdesk/internal/domain/schedule"
	"github.com/clinicdesk/clinicdesk/pkg/hhmm"
)

// interval is a half-open [start, end) span in minutes since midnight.
type interval struct {
	start, end int
}

// overlaps reports whether two half-open intervals intersect. Touching
// boundaries (a.end == b.start) do not count.
func overlaps(a, b interval) bool {
	return a.start < b.end && b.start < a.end
}

// buildSlots cuts each working window into consecutive slots of exactly
// step minutes and marks the ones colliding with a booked interval as
// unavailable. A trailing remainder shorter than step is dropped. Windows
// arrive sorted by start time, so the slots come out chronologically ordered
// and non-overlapping.
func buildSlots(windows []*schedule.Entry, booked []interval, step int) ([]Slot, error) {
	slots := []Slot{}
	for _, w := range windows {
		start, err := hhmm.Parse(w.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := hhmm.Parse(w.EndTime)
		if err != nil {
			return nil, err
		}
		for at := start; at+step <= end; at += step {
			slot := interval{start: at, end: at + step}
			available := true
			for _, b := range booked {
				if overlaps(slot, b) {
					available = false
					break
				}
			}
			slots = append(slots, Slot{
				StartTime:   hhmm.Format(slot.start),
				EndTime:     hhmm.Format(slot.end),
				ClinicID:    w.ClinicID,
				IsAvailable: available,
			})
		}
	}
	return slots, nil
}

// bookedIntervals converts active appointments to minute intervals, skipping
// any row with an unparseable time rather than failing the whole day.
func bookedIntervals(appts []*Appointment) []interval {
	out := make([]interval, 0, len(appts))
	for _, a := range appts {
		start, err := hhmm.Parse(a.StartTime)
		if err != nil {
			continue
		}
		end, err := hhmm.Parse(a.EndTime)
		if err != nil {
			continue
		}
		out = append(out, interval{start: start, end: end})
	}
	return out
}
