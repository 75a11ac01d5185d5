package doctor

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

const doctorCols = `id, first_name, father_name, last_name, email, password_hash,
	phone_personal, phone_clinic, specialization, qualifications, bio,
	profile_image_url, is_active, created_at, updated_at`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.FirstName, &d.FatherName, &d.LastName, &d.Email,
		&d.PasswordHash, &d.PhonePersonal, &d.PhoneClinic, &d.Specialization,
		&d.Qualifications, &d.Bio, &d.ProfileImageURL, &d.IsActive,
		&d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("doctor")
	}
	return &d, err
}

func (r *repoPG) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO doctors (id, first_name, father_name, last_name, email, password_hash,
			phone_personal, phone_clinic, specialization, qualifications, bio,
			profile_image_url, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,TRUE)`,
		d.ID, d.FirstName, d.FatherName, d.LastName, d.Email, d.PasswordHash,
		d.PhonePersonal, d.PhoneClinic, d.Specialization, d.Qualifications,
		d.Bio, d.ProfileImageURL)
	if isUniqueViolation(err) {
		return apperr.Conflict("email %s already registered", d.Email)
	}
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return scanDoctor(r.conn(ctx).QueryRow(ctx, `SELECT `+doctorCols+` FROM doctors WHERE id = $1`, id))
}

func (r *repoPG) GetByEmail(ctx context.Context, email string) (*Doctor, error) {
	return scanDoctor(r.conn(ctx).QueryRow(ctx, `SELECT `+doctorCols+` FROM doctors WHERE email = $1`, email))
}

func (r *repoPG) Update(ctx context.Context, d *Doctor) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE doctors SET first_name=$2, father_name=$3, last_name=$4,
			phone_personal=$5, phone_clinic=$6, specialization=$7,
			qualifications=$8, bio=$9, profile_image_url=$10, updated_at=NOW()
		WHERE id = $1`,
		d.ID, d.FirstName, d.FatherName, d.LastName,
		d.PhonePersonal, d.PhoneClinic, d.Specialization,
		d.Qualifications, d.Bio, d.ProfileImageURL)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("doctor")
	}
	return nil
}

func (r *repoPG) Deactivate(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE doctors SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("doctor")
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, f ListFilter, limit, offset int) ([]*Doctor, int, error) {
	query := `SELECT ` + doctorCols + ` FROM doctors WHERE is_active = TRUE`
	countQuery := `SELECT COUNT(*) FROM doctors WHERE is_active = TRUE`
	var args []interface{}
	idx := 1

	if f.Specialization != "" {
		query += fmt.Sprintf(` AND specialization ILIKE $%d`, idx)
		countQuery += fmt.Sprintf(` AND specialization ILIKE $%d`, idx)
		args = append(args, "%"+f.Specialization+"%")
		idx++
	}
	if f.Name != "" {
		clause := fmt.Sprintf(` AND (first_name ILIKE $%d OR last_name ILIKE $%d)`, idx, idx)
		query += clause
		countQuery += clause
		args = append(args, "%"+f.Name+"%")
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY last_name, first_name LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}

func (r *repoPG) GetSettings(ctx context.Context, doctorID uuid.UUID) (*Settings, error) {
	var s Settings
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT doctor_id, slot_interval, cancellation_deadline_hours,
			max_daily_appointments, max_no_show_count, updated_at
		FROM appointment_settings WHERE doctor_id = $1`, doctorID).
		Scan(&s.DoctorID, &s.SlotInterval, &s.CancellationDeadlineHours,
			&s.MaxDailyAppointments, &s.MaxNoShowCount, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("settings")
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repoPG) SaveSettings(ctx context.Context, s *Settings) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO appointment_settings (doctor_id, slot_interval,
			cancellation_deadline_hours, max_daily_appointments, max_no_show_count)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (doctor_id) DO UPDATE SET
			slot_interval = EXCLUDED.slot_interval,
			cancellation_deadline_hours = EXCLUDED.cancellation_deadline_hours,
			max_daily_appointments = EXCLUDED.max_daily_appointments,
			max_no_show_count = EXCLUDED.max_no_show_count,
			updated_at = NOW()`,
		s.DoctorID, s.SlotInterval, s.CancellationDeadlineHours,
		s.MaxDailyAppointments, s.MaxNoShowCount)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
