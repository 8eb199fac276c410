package notificationRepo

import (
	"context"

	"fundihub/models"
)

// NotificationRepository defines persistence operations for notifications.
// Notifications are append-only; only the read flag is ever mutated.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, notificationID string) (*models.Notification, error)
	ListByRecipient(ctx context.Context, recipient string, role models.Role) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
}
