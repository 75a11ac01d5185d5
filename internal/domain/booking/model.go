package booking

import (
	"time"

	"github.com/google/uuid"
)

// Appointment is a booked visit. Date is "YYYY-MM-DD"; StartTime and EndTime
// are "HH:MM" with the usual half-open [start, end) meaning.
type Appointment struct {
	ID                 uuid.UUID  `json:"id"`
	DoctorID           uuid.UUID  `json:"doctor_id"`
	PatientID          uuid.UUID  `json:"patient_id"`
	ClinicID           *uuid.UUID `json:"clinic_id,omitempty"`
	Date               string     `json:"date"`
	StartTime          string     `json:"start_time"`
	EndTime            string     `json:"end_time"`
	Status             Status     `json:"status"`
	Notes              *string    `json:"notes,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	// Joined for list endpoints, never written.
	PatientName  *string `json:"patient_name,omitempty"`
	PatientPhone *string `json:"patient_phone,omitempty"`
}

// Slot is one bookable interval on a doctor's day.
type Slot struct {
	StartTime   string     `json:"start_time"`
	EndTime     string     `json:"end_time"`
	ClinicID    *uuid.UUID `json:"clinic_id,omitempty"`
	IsAvailable bool       `json:"is_available"`
}
