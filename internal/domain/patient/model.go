package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient is a person who books appointments. Patients are not accounts;
// they are identified by phone number and created on first booking when
// necessary.
type Patient struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	FatherName  *string   `json:"father_name,omitempty"`
	LastName    *string   `json:"last_name,omitempty"`
	Phone       string    `json:"phone"`
	Email       *string   `json:"email,omitempty"`
	Gender      *string   `json:"gender,omitempty"`
	BirthDate   *string   `json:"birth_date,omitempty"`
	Address     *string   `json:"address,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	IsBlocked   bool      `json:"is_blocked"`
	NoShowCount int       `json:"no_show_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
