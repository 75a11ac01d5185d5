package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a persisted in-app message for a doctor or a patient.
type Notification struct {
	ID            uuid.UUID  `json:"id"`
	RecipientID   uuid.UUID  `json:"recipient_id"`
	RecipientType string     `json:"recipient_type"`
	Kind          string     `json:"kind"`
	Title         string     `json:"title"`
	Message       string     `json:"message"`
	AppointmentID *uuid.UUID `json:"appointment_id,omitempty"`
	IsRead        bool       `json:"is_read"`
	CreatedAt     time.Time  `json:"created_at"`
}

var validRecipientTypes = map[string]bool{"doctor": true, "patient": true}

var validKinds = map[string]bool{"info": true, "success": true, "warning": true, "error": true}
