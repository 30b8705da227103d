package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"pet-health/internal/domain/healthscore"
	"pet-health/internal/domain/notifications"
)

const notificationColumns = `
	id, owner_user_id, pet_id, key, type,
	title, message, action_path, action_label, priority,
	read, read_at, created_at`

// unreadKeyIndex es el índice único parcial (owner_user_id, key) WHERE NOT read.
const unreadKeyIndex = "notifications_unread_key_idx"

type NotificationsRepo struct {
	db *sql.DB
}

func NewNotificationsRepo(db *sql.DB) *NotificationsRepo {
	return &NotificationsRepo{db: db}
}

func (r *NotificationsRepo) Create(ctx context.Context, n notifications.Notification) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (`+notificationColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		n.ID,
		n.OwnerUserID,
		n.PetID,
		n.Key,
		n.Type,
		n.Title,
		n.Message,
		n.ActionPath,
		n.ActionLabel,
		string(n.Priority),
		n.Read,
		toNullTime(n.ReadAt),
		n.CreatedAt,
	)
	if isUniqueViolation(err, unreadKeyIndex) {
		return notifications.ErrAlreadyPending
	}
	return err
}

func (r *NotificationsRepo) GetByID(ctx context.Context, id string) (notifications.Notification, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return notifications.Notification{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id)
	n, err := scanNotification(row)
	if err != nil {
		return notifications.Notification{}, notFound(err)
	}
	return n, nil
}

func (r *NotificationsRepo) HasUnread(ctx context.Context, ownerUserID, key string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM notifications
			WHERE owner_user_id = $1 AND key = $2 AND NOT read
		)
	`, ownerUserID, key).Scan(&exists)
	return exists, err
}

func (r *NotificationsRepo) ListByOwner(ctx context.Context, ownerUserID string, unreadOnly bool) ([]notifications.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE owner_user_id = $1`
	if unreadOnly {
		query += ` AND NOT read`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, strings.TrimSpace(ownerUserID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]notifications.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NotificationsRepo) MarkRead(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications
		SET read = TRUE, read_at = $2
		WHERE id = $1
	`, strings.TrimSpace(id), at)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func scanNotification(s rowScanner) (notifications.Notification, error) {
	var n notifications.Notification
	var priority string
	var readAt sql.NullTime
	if err := s.Scan(
		&n.ID,
		&n.OwnerUserID,
		&n.PetID,
		&n.Key,
		&n.Type,
		&n.Title,
		&n.Message,
		&n.ActionPath,
		&n.ActionLabel,
		&priority,
		&n.Read,
		&readAt,
		&n.CreatedAt,
	); err != nil {
		return notifications.Notification{}, err
	}
	n.Priority = healthscore.Priority(priority)
	n.ReadAt = fromNullTime(readAt)
	return n, nil
}
