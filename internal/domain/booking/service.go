package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinicdesk/internal/domain/doctor"
	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"github.com/clinicdesk/clinicdesk/internal/domain/schedule"
	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
	"github.com/clinicdesk/clinicdesk/pkg/hhmm"
)

const dateLayout = "2006-01-02"

// WindowSource provides the working windows for a doctor-day.
type WindowSource interface {
	ListWorkingWindows(ctx context.Context, doctorID uuid.UUID, dayOfWeek int, clinicID *uuid.UUID) ([]*schedule.Entry, error)
}

// DoctorDirectory resolves doctors and their booking settings.
type DoctorDirectory interface {
	GetActive(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error)
	Settings(ctx context.Context, id uuid.UUID) (*doctor.Settings, error)
}

// PatientDirectory resolves and maintains patient records for bookings.
type PatientDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
	FindOrCreateByPhone(ctx context.Context, name, phone string) (*patient.Patient, error)
	RecordNoShow(ctx context.Context, id uuid.UUID) (int, error)
	SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error
}

// Notice is a notification emitted by the booking flow. Delivery is
// best-effort; a failed notification never fails the booking.
type Notice struct {
	RecipientID   uuid.UUID
	RecipientType string
	Kind          string
	Title         string
	Message       string
	AppointmentID uuid.UUID
}

type Notifier interface {
	Notify(ctx context.Context, n Notice) error
}

// Atomic runs a function inside a database transaction. The conflict guard
// depends on it running at serializable isolation in production.
type Atomic interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Service struct {
	repo     Repository
	windows  WindowSource
	doctors  DoctorDirectory
	patients PatientDirectory
	notifier Notifier
	atomic   Atomic
	log      zerolog.Logger
	now      func() time.Time
}

func NewService(repo Repository, windows WindowSource, doctors DoctorDirectory,
	patients PatientDirectory, notifier Notifier, atomic Atomic, log zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		windows:  windows,
		doctors:  doctors,
		patients: patients,
		notifier: notifier,
		atomic:   atomic,
		log:      log,
		now:      time.Now,
	}
}

// AvailableSlots computes the bookable slots for a doctor on a date. The
// interval defaults to the doctor's configured slot length when zero. A day
// with no working windows yields an empty slice.
func (s *Service) AvailableSlots(ctx context.Context, doctorID uuid.UUID, date string, clinicID *uuid.UUID, interval int) ([]Slot, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, apperr.Invalid("invalid date %q: want YYYY-MM-DD", date)
	}
	if interval < 0 {
		return nil, apperr.Invalid("interval must be positive, got %d", interval)
	}

	if _, err := s.doctors.GetActive(ctx, doctorID); err != nil {
		return nil, err
	}
	if interval == 0 {
		settings, err := s.doctors.Settings(ctx, doctorID)
		if err != nil {
			return nil, err
		}
		interval = settings.SlotInterval
	}

	windows, err := s.windows.ListWorkingWindows(ctx, doctorID, int(day.Weekday()), clinicID)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return []Slot{}, nil
	}

	booked, err := s.repo.ListActiveByDay(ctx, doctorID, date, clinicID)
	if err != nil {
		return nil, err
	}
	return buildSlots(windows, bookedIntervals(booked), interval)
}

// BookRequest carries a booking. The patient is given either by ID or by
// name and phone; the latter creates a patient record on first contact.
type BookRequest struct {
	DoctorID     uuid.UUID  `json:"doctor_id" validate:"required"`
	ClinicID     *uuid.UUID `json:"clinic_id"`
	Date         string     `json:"date" validate:"required"`
	StartTime    string     `json:"start_time" validate:"required,hhmm"`
	EndTime      string     `json:"end_time" validate:"required,hhmm"`
	PatientID    *uuid.UUID `json:"patient_id"`
	PatientName  string     `json:"patient_name"`
	PatientPhone string     `json:"patient_phone"`
	Notes        *string    `json:"notes"`
}

// Book places a pending appointment. The overlap check and the insert run in
// one transaction so two callers racing for the same slot cannot both win;
// the loser gets ErrConflict.
func (s *Service) Book(ctx context.Context, req BookRequest) (*Appointment, error) {
	day, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, apperr.Invalid("invalid date %q: want YYYY-MM-DD", req.Date)
	}
	start, err := hhmm.Parse(req.StartTime)
	if err != nil {
		return nil, apperr.Invalid("start_time: %v", err)
	}
	end, err := hhmm.Parse(req.EndTime)
	if err != nil {
		return nil, apperr.Invalid("end_time: %v", err)
	}
	if start >= end {
		return nil, apperr.Invalid("start_time %s must be before end_time %s", req.StartTime, req.EndTime)
	}

	if _, err := s.doctors.GetActive(ctx, req.DoctorID); err != nil {
		return nil, err
	}
	settings, err := s.doctors.Settings(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}

	p, err := s.resolvePatient(ctx, req)
	if err != nil {
		return nil, err
	}
	if p.IsBlocked {
		return nil, apperr.Forbidden("patient is blocked from booking")
	}

	appt := &Appointment{
		DoctorID:  req.DoctorID,
		PatientID: p.ID,
		ClinicID:  req.ClinicID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    StatusPending,
		Notes:     req.Notes,
	}

	requested := interval{start: start, end: end}
	bookTx := func(ctx context.Context) error {
		windows, err := s.windows.ListWorkingWindows(ctx, req.DoctorID, int(day.Weekday()), req.ClinicID)
		if err != nil {
			return err
		}
		if !insideWindow(requested, windows) {
			return apperr.Conflict("%s-%s is outside the doctor's working hours", req.StartTime, req.EndTime)
		}

		dayCount, err := s.repo.CountActiveByDay(ctx, req.DoctorID, req.Date)
		if err != nil {
			return err
		}
		if dayCount >= settings.MaxDailyAppointments {
			return apperr.Conflict("the doctor is fully booked on %s", req.Date)
		}

		active, err := s.repo.ListActiveByDay(ctx, req.DoctorID, req.Date, nil)
		if err != nil {
			return err
		}
		for _, b := range bookedIntervals(active) {
			if overlaps(requested, b) {
				return apperr.Conflict("slot %s-%s is already booked", req.StartTime, req.EndTime)
			}
		}
		return s.repo.Insert(ctx, appt)
	}

	err = s.atomic.InTx(ctx, bookTx)
	if isSerializationFailure(err) {
		// The loser of a concurrent booking race is aborted by the
		// serializable store before it can see the winner's row. Re-run
		// once: the second pass observes the committed appointment and
		// reports the overlap itself.
		err = s.atomic.InTx(ctx, bookTx)
		if isSerializationFailure(err) {
			err = apperr.Conflict("slot %s-%s was booked by someone else, pick another time", req.StartTime, req.EndTime)
		}
	}
	if err != nil {
		return nil, err
	}

	s.notify(ctx, Notice{
		RecipientID:   req.DoctorID,
		RecipientType: "doctor",
		Kind:          "info",
		Title:         "New appointment request",
		Message:       fmt.Sprintf("%s requested %s %s-%s", p.FirstName, req.Date, req.StartTime, req.EndTime),
		AppointmentID: appt.ID,
	})
	return appt, nil
}

func (s *Service) resolvePatient(ctx context.Context, req BookRequest) (*patient.Patient, error) {
	if req.PatientID != nil {
		return s.patients.Get(ctx, *req.PatientID)
	}
	if req.PatientPhone == "" {
		return nil, apperr.Invalid("patient_id or patient_phone is required")
	}
	return s.patients.FindOrCreateByPhone(ctx, req.PatientName, req.PatientPhone)
}

// isSerializationFailure matches the SQLSTATEs Postgres uses to abort the
// losing transaction of a serializable conflict (40001) or a deadlock
// (40P01). Both mean "somebody else got there first", not a broken store.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

// insideWindow reports whether the requested interval fits entirely inside
// one working window.
func insideWindow(requested interval, windows []*schedule.Entry) bool {
	for _, w := range windows {
		start, err := hhmm.Parse(w.StartTime)
		if err != nil {
			continue
		}
		end, err := hhmm.Parse(w.EndTime)
		if err != nil {
			continue
		}
		if start <= requested.start && requested.end <= end {
			return true
		}
	}
	return false
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID, f ListFilter, limit, offset int) ([]*Appointment, int, error) {
	if f.Date != "" {
		if _, err := time.Parse(dateLayout, f.Date); err != nil {
			return nil, 0, apperr.Invalid("invalid date %q: want YYYY-MM-DD", f.Date)
		}
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, 0, apperr.Invalid("unknown status %q", f.Status)
	}
	return s.repo.ListByDoctor(ctx, doctorID, f, limit, offset)
}

// Delete removes an appointment record entirely. Doctors use it for entries
// created by mistake; a normal cancellation should go through UpdateStatus so
// the history survives.
func (s *Service) Delete(ctx context.Context, doctorID, id uuid.UUID) error {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if appt.DoctorID != doctorID {
		return apperr.Forbidden("appointment belongs to another doctor")
	}
	return s.repo.Delete(ctx, id)
}

// UpdateStatus moves an appointment through its lifecycle on behalf of the
// owning doctor. Marking a no-show bumps the patient's counter and blocks
// them once they cross the doctor's threshold.
func (s *Service) UpdateStatus(ctx context.Context, doctorID, id uuid.UUID, next Status, reason *string) (*Appointment, error) {
	if !next.Valid() {
		return nil, apperr.Invalid("unknown status %q", next)
	}
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.DoctorID != doctorID {
		return nil, apperr.Forbidden("appointment belongs to another doctor")
	}
	if !appt.Status.CanTransition(next) {
		return nil, apperr.Conflict("cannot move appointment from %s to %s", appt.Status, next)
	}
	if err := s.repo.UpdateStatus(ctx, id, next, reason); err != nil {
		return nil, err
	}
	appt.Status = next
	appt.CancellationReason = reason

	switch next {
	case StatusConfirmed:
		s.notify(ctx, Notice{
			RecipientID:   appt.PatientID,
			RecipientType: "patient",
			Kind:          "success",
			Title:         "Appointment confirmed",
			Message:       fmt.Sprintf("Your appointment on %s at %s is confirmed", appt.Date, appt.StartTime),
			AppointmentID: appt.ID,
		})
	case StatusCancelled:
		s.notify(ctx, Notice{
			RecipientID:   appt.PatientID,
			RecipientType: "patient",
			Kind:          "warning",
			Title:         "Appointment cancelled",
			Message:       fmt.Sprintf("Your appointment on %s at %s was cancelled", appt.Date, appt.StartTime),
			AppointmentID: appt.ID,
		})
	case StatusNoShow:
		s.handleNoShow(ctx, appt)
	}
	return appt, nil
}

func (s *Service) handleNoShow(ctx context.Context, appt *Appointment) {
	count, err := s.patients.RecordNoShow(ctx, appt.PatientID)
	if err != nil {
		s.log.Error().Err(err).Str("patient_id", appt.PatientID.String()).Msg("failed to record no-show")
		return
	}
	settings, err := s.doctors.Settings(ctx, appt.DoctorID)
	if err != nil {
		s.log.Error().Err(err).Str("doctor_id", appt.DoctorID.String()).Msg("failed to load settings for no-show check")
		return
	}
	if count < settings.MaxNoShowCount {
		return
	}
	if err := s.patients.SetBlocked(ctx, appt.PatientID, true); err != nil {
		s.log.Error().Err(err).Str("patient_id", appt.PatientID.String()).Msg("failed to block patient")
		return
	}
	s.notify(ctx, Notice{
		RecipientID:   appt.DoctorID,
		RecipientType: "doctor",
		Kind:          "warning",
		Title:         "Patient blocked",
		Message:       fmt.Sprintf("A patient was blocked after %d missed appointments", count),
		AppointmentID: appt.ID,
	})
}

// CancelByPatient cancels an appointment on request of the patient, verified
// by phone number. Cancellations inside the doctor's deadline are refused.
func (s *Service) CancelByPatient(ctx context.Context, id uuid.UUID, phone string) (*Appointment, error) {
	normalized, err := patient.NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p, err := s.patients.Get(ctx, appt.PatientID)
	if err != nil {
		return nil, err
	}
	if p.Phone != normalized {
		return nil, apperr.Forbidden("phone number does not match this appointment")
	}
	if !appt.Status.CanTransition(StatusCancelled) {
		return nil, apperr.Conflict("cannot cancel an appointment in state %s", appt.Status)
	}

	settings, err := s.doctors.Settings(ctx, appt.DoctorID)
	if err != nil {
		return nil, err
	}
	startsAt, err := appointmentStart(appt)
	if err != nil {
		return nil, err
	}
	deadline := time.Duration(settings.CancellationDeadlineHours) * time.Hour
	if startsAt.Sub(s.now()) < deadline {
		return nil, apperr.Conflict("appointments must be cancelled at least %d hours in advance", settings.CancellationDeadlineHours)
	}

	reason := "cancelled by patient"
	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled, &reason); err != nil {
		return nil, err
	}
	appt.Status = StatusCancelled
	appt.CancellationReason = &reason

	s.notify(ctx, Notice{
		RecipientID:   appt.DoctorID,
		RecipientType: "doctor",
		Kind:          "warning",
		Title:         "Appointment cancelled",
		Message:       fmt.Sprintf("The appointment on %s at %s was cancelled by the patient", appt.Date, appt.StartTime),
		AppointmentID: appt.ID,
	})
	return appt, nil
}

func appointmentStart(a *Appointment) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, a.Date, time.Local)
	if err != nil {
		return time.Time{}, apperr.Invalid("invalid appointment date %q", a.Date)
	}
	minutes, err := hhmm.Parse(a.StartTime)
	if err != nil {
		return time.Time{}, apperr.Invalid("invalid appointment start %q", a.StartTime)
	}
	return day.Add(time.Duration(minutes) * time.Minute), nil
}

func (s *Service) notify(ctx context.Context, n Notice) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.log.Warn().Err(err).
			Str("recipient_id", n.RecipientID.String()).
			Str("recipient_type", n.RecipientType).
			Msg("failed to deliver notification")
	}
}
