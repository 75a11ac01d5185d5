package notification

import (
	"context"

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

const notifCols = `id, recipient_id, recipient_type, kind, title, message,
	appointment_id, is_read, created_at`

func scanNotif(row pgx.Row) (*Notification, error) {
	var n Notification
	err := row.Scan(&n.ID, &n.RecipientID, &n.RecipientType, &n.Kind,
		&n.Title, &n.Message, &n.AppointmentID, &n.IsRead, &n.CreatedAt)
	return &n, err
}

func (r *repoPG) Insert(ctx context.Context, n *Notification) error {
	n.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO notifications (id, recipient_id, recipient_type, kind, title,
			message, appointment_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		n.ID, n.RecipientID, n.RecipientType, n.Kind, n.Title, n.Message, n.AppointmentID)
	return err
}

func (r *repoPG) ListByRecipient(ctx context.Context, recipientID uuid.UUID, recipientType string, unreadOnly bool, limit, offset int) ([]*Notification, int, error) {
	where := ` FROM notifications WHERE recipient_id = $1 AND recipient_type = $2`
	if unreadOnly {
		where += ` AND NOT is_read`
	}
	args := []interface{}{recipientID, recipientType}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*)`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+notifCols+where+` ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Notification
	for rows.Next() {
		n, err := scanNotif(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, n)
	}
	return items, total, rows.Err()
}

func (r *repoPG) CountUnread(ctx context.Context, recipientID uuid.UUID, recipientType string) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications
		WHERE recipient_id = $1 AND recipient_type = $2 AND NOT is_read`,
		recipientID, recipientType).Scan(&count)
	return count, err
}

func (r *repoPG) MarkRead(ctx context.Context, id, recipientID uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE notifications SET is_read = TRUE
		WHERE id = $1 AND recipient_id = $2`, id, recipientID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("notification")
	}
	return nil
}

func (r *repoPG) MarkAllRead(ctx context.Context, recipientID uuid.UUID, recipientType string) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE notifications SET is_read = TRUE
		WHERE recipient_id = $1 AND recipient_type = $2 AND NOT is_read`,
		recipientID, recipientType)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id, recipientID uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		DELETE FROM notifications WHERE id = $1 AND recipient_id = $2`, id, recipientID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("notification")
	}
	return nil
}
