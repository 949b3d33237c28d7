package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/unishare/internal/app/models"
	"github.com/yigit/unishare/internal/pkg/notify"
)

// NotificationRepository persists in-app notifications. It is the production notify.Sink.
type NotificationRepository struct {
	DB *pgxpool.Pool
}

var _ notify.Sink = (*NotificationRepository)(nil)

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

// Create inserts a notification row
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	sqlStr, args, err := squirrel.Insert("notifications").
		Columns("user_id", "type", "message", "link").
		Values(n.UserID, n.Type, n.Message, n.Link).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.DB.QueryRow(ctx, sqlStr, args...).Scan(&n.ID, &n.CreatedAt); err != nil {
		return fmt.Errorf("error inserting notification: %w", err)
	}
	return nil
}

// Deliver implements notify.Sink
func (r *NotificationRepository) Deliver(ctx context.Context, n notify.Notification) error {
	return r.Create(ctx, &models.Notification{
		UserID:  n.UserID,
		Type:    string(n.Type),
		Message: n.Message,
		Link:    n.Link,
	})
}
