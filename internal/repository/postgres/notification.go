package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"microfin-backend/internal/domain"
	"microfin-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	attrs, err := json.Marshal(n.Attributes)
	if err != nil {
		return err
	}
	n.CreatedOn = time.Now()
	query := `INSERT INTO notifications (id, member_id, title, message, attributes, is_read, created_on)
	          VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err = r.db.ExecContext(ctx, query, n.ID, n.MemberID, n.Title, n.Message, attrs, n.IsRead, n.CreatedOn)
	return err
}

func (r *notificationRepository) List(ctx context.Context, memberID string, limit int) ([]domain.Notification, error) {
	if limit < 1 {
		limit = 50
	}
	query := `SELECT id, member_id, title, message, attributes, is_read, created_on
	          FROM notifications WHERE member_id = $1 ORDER BY created_on DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, memberID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var attrs []byte
		if err := rows.Scan(&n.ID, &n.MemberID, &n.Title, &n.Message, &attrs, &n.IsRead, &n.CreatedOn); err != nil {
			return nil, err
		}
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &n.Attributes); err != nil {
				return nil, err
			}
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, memberID string) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND member_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, memberID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
