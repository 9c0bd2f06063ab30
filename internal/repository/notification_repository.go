package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/conceptlens/conceptlens-backend/internal/model"
)

// MaxNotificationRows caps inbox listings.
const MaxNotificationRows = 100

// NotificationRepository handles inbox data access.
type NotificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

// Create inserts a notification.
func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO notifications (recipient_id, type, title, message, link)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, is_read, created_at`,
		n.RecipientID, n.Type, n.Title, n.Message, n.Link,
	).Scan(&n.ID, &n.IsRead, &n.CreatedAt)
}

// ListByRecipient retrieves a user's inbox, newest first.
func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID) ([]model.Notification, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, recipient_id, type, title, message, link, is_read, created_at
		 FROM notifications
		 WHERE recipient_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`, recipientID, MaxNotificationRows)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Type, &n.Title, &n.Message, &n.Link, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// CountUnread returns a user's unread notification count.
func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND NOT is_read`,
		recipientID).Scan(&n)
	return n, err
}

// MarkRead flags one of the user's notifications as read.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipientID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND recipient_id = $2`,
		id, recipientID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRows
	}
	return nil
}
