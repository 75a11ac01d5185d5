package schedule

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one working window in a doctor's weekly schedule. DayOfWeek uses
// 0 for Sunday through 6 for Saturday, matching time.Weekday. Times are
// 24-hour "HH:MM" wall clock strings; StartTime is inclusive and EndTime
// exclusive.
type Entry struct {
	ID        uuid.UUID  `json:"id"`
	DoctorID  uuid.UUID  `json:"doctor_id"`
	ClinicID  *uuid.UUID `json:"clinic_id,omitempty"`
	DayOfWeek int        `json:"day_of_week"`
	StartTime string     `json:"start_time"`
	EndTime   string     `json:"end_time"`
	IsWorking bool       `json:"is_working"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// ClinicName is joined in for read endpoints and never written.
	ClinicName *string `json:"clinic_name,omitempty"`
}
