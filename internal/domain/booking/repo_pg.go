package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
	"github.com/clinicdesk/clinicdesk/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const apptCols = `a.id, a.doctor_id, a.patient_id, a.clinic_id,
	to_char(a.appointment_date, 'YYYY-MM-DD'),
	to_char(a.start_time, 'HH24:MI'), to_char(a.end_time, 'HH24:MI'),
	a.status, a.notes, a.cancellation_reason, a.created_at, a.updated_at,
	p.first_name || COALESCE(' ' || p.last_name, ''), p.phone`

func scanAppt(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.DoctorID, &a.PatientID, &a.ClinicID,
		&a.Date, &a.StartTime, &a.EndTime, &a.Status, &a.Notes,
		&a.CancellationReason, &a.CreatedAt, &a.UpdatedAt,
		&a.PatientName, &a.PatientPhone)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("appointment")
	}
	return &a, err
}

func (r *repoPG) Insert(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO appointments (id, doctor_id, patient_id, clinic_id,
			appointment_date, start_time, end_time, status, notes)
		VALUES ($1,$2,$3,$4,$5::date,$6::time,$7::time,$8,$9)`,
		a.ID, a.DoctorID, a.PatientID, a.ClinicID,
		a.Date, a.StartTime, a.EndTime, a.Status, a.Notes)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return scanAppt(r.conn(ctx).QueryRow(ctx, `
		SELECT `+apptCols+`
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		WHERE a.id = $1`, id))
}

func (r *repoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID, f ListFilter, limit, offset int) ([]*Appointment, int, error) {
	where := ` FROM appointments a JOIN patients p ON p.id = a.patient_id WHERE a.doctor_id = $1`
	args := []interface{}{doctorID}
	idx := 2

	if f.Date != "" {
		where += fmt.Sprintf(` AND a.appointment_date = $%d::date`, idx)
		args = append(args, f.Date)
		idx++
	}
	if f.Status != "" {
		where += fmt.Sprintf(` AND a.status = $%d`, idx)
		args = append(args, f.Status)
		idx++
	}
	if f.PatientID != nil {
		where += fmt.Sprintf(` AND a.patient_id = $%d`, idx)
		args = append(args, *f.PatientID)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*)`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + apptCols + where +
		fmt.Sprintf(` ORDER BY a.appointment_date DESC, a.start_time LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := scanAppt(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *repoPG) ListActiveByDay(ctx context.Context, doctorID uuid.UUID, date string, clinicID *uuid.UUID) ([]*Appointment, error) {
	query := `
		SELECT ` + apptCols + `
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		WHERE a.doctor_id = $1 AND a.appointment_date = $2::date
			AND a.status IN ('pending', 'confirmed')`
	args := []interface{}{doctorID, date}
	if clinicID != nil {
		query += ` AND a.clinic_id = $3`
		args = append(args, *clinicID)
	}
	query += ` ORDER BY a.start_time`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := scanAppt(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *repoPG) CountActiveByDay(ctx context.Context, doctorID uuid.UUID, date string) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM appointments
		WHERE doctor_id = $1 AND appointment_date = $2::date
			AND status IN ('pending', 'confirmed')`, doctorID, date).Scan(&count)
	return count, err
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, reason *string) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointments SET status = $2, cancellation_reason = $3, updated_at = NOW()
		WHERE id = $1`, id, status, reason)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("appointment")
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("appointment")
	}
	return nil
}
