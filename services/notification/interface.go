package notification

import (
	"context"

	"fundihub/models"
	"fundihub/services/realtime"
)

// Dispatcher is the realtime push contract the emitter needs.
// *realtime.Hub satisfies it.
type Dispatcher interface {
	Send(userID string, event realtime.Event) bool
}

// NotificationService persists notifications and fans them out over the
// available push channels.
type NotificationService interface {
	// Notify persists a notification addressed to recipient+role and then
	// attempts realtime and FCM delivery best-effort. The returned error
	// reflects persistence only; delivery failures are never surfaced.
	Notify(ctx context.Context, recipient string, role models.Role, ntype models.NotificationType, title, message string, data map[string]any) (*models.Notification, error)
	GetByID(ctx context.Context, notificationID string) (*models.Notification, error)
	ListForRecipient(ctx context.Context, recipient string, role models.Role) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
}
