package schedule

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

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

// Times are stored as Postgres time columns; to_char keeps the wire format
// a plain "HH:MM" string.
const entryCols = `ws.id, ws.doctor_id, ws.clinic_id, ws.day_of_week,
	to_char(ws.start_time, 'HH24:MI'), to_char(ws.end_time, 'HH24:MI'),
	ws.is_working, ws.created_at, ws.updated_at, c.name`

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.DoctorID, &e.ClinicID, &e.DayOfWeek,
		&e.StartTime, &e.EndTime, &e.IsWorking, &e.CreatedAt, &e.UpdatedAt,
		&e.ClinicName)
	return &e, err
}

func (r *repoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Entry, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+entryCols+`
		FROM work_schedules ws
		LEFT JOIN clinics c ON c.id = ws.clinic_id
		WHERE ws.doctor_id = $1
		ORDER BY ws.day_of_week, ws.start_time`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *repoPG) ListWorkingWindows(ctx context.Context, doctorID uuid.UUID, dayOfWeek int, clinicID *uuid.UUID) ([]*Entry, error) {
	query := `
		SELECT ` + entryCols + `
		FROM work_schedules ws
		LEFT JOIN clinics c ON c.id = ws.clinic_id
		WHERE ws.doctor_id = $1 AND ws.day_of_week = $2 AND ws.is_working`
	args := []interface{}{doctorID, dayOfWeek}
	if clinicID != nil {
		query += ` AND ws.clinic_id = $3`
		args = append(args, *clinicID)
	}
	query += ` ORDER BY ws.start_time`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *repoPG) ReplaceForDoctor(ctx context.Context, doctorID uuid.UUID, entries []*Entry) error {
	return db.WithTx(ctx, r.pool, pgx.ReadCommitted, func(ctx context.Context) error {
		if _, err := r.conn(ctx).Exec(ctx,
			`DELETE FROM work_schedules WHERE doctor_id = $1`, doctorID); err != nil {
			return err
		}
		for _, e := range entries {
			e.ID = uuid.New()
			e.DoctorID = doctorID
			if _, err := r.conn(ctx).Exec(ctx, `
				INSERT INTO work_schedules (id, doctor_id, clinic_id, day_of_week,
					start_time, end_time, is_working)
				VALUES ($1,$2,$3,$4,$5::time,$6::time,$7)`,
				e.ID, e.DoctorID, e.ClinicID, e.DayOfWeek,
				e.StartTime, e.EndTime, e.IsWorking); err != nil {
				return err
			}
		}
		return nil
	})
}
