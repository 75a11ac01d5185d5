package doctor

import (
	"time"

	"github.com/google/uuid"
)

// Doctor is a practitioner account. Doctors authenticate with email and
// password; everything else hangs off their ID.
type Doctor struct {
	ID              uuid.UUID `json:"id"`
	FirstName       string    `json:"first_name"`
	FatherName      *string   `json:"father_name,omitempty"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	PhonePersonal   *string   `json:"phone_personal,omitempty"`
	PhoneClinic     *string   `json:"phone_clinic,omitempty"`
	Specialization  *string   `json:"specialization,omitempty"`
	Qualifications  *string   `json:"qualifications,omitempty"`
	Bio             *string   `json:"bio,omitempty"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// FullName joins the doctor's name parts, skipping the optional father name.
func (d *Doctor) FullName() string {
	if d.FatherName != nil && *d.FatherName != "" {
		return d.FirstName + " " + *d.FatherName + " " + d.LastName
	}
	return d.FirstName + " " + d.LastName
}

// Settings are the per-doctor booking knobs. Rows are created lazily; a
// doctor without a row gets DefaultSettings.
type Settings struct {
	DoctorID                  uuid.UUID `json:"doctor_id"`
	SlotInterval              int       `json:"slot_interval"`
	CancellationDeadlineHours int       `json:"cancellation_deadline_hours"`
	MaxDailyAppointments      int       `json:"max_daily_appointments"`
	MaxNoShowCount            int       `json:"max_no_show_count"`
	UpdatedAt                 time.Time `json:"updated_at"`
}

// DefaultSettings returns the settings applied to doctors who have never
// customized theirs.
func DefaultSettings(doctorID uuid.UUID) *Settings {
	return &Settings{
		DoctorID:                  doctorID,
		SlotInterval:              30,
		CancellationDeadlineHours: 18,
		MaxDailyAppointments:      20,
		MaxNoShowCount:            3,
	}
}
