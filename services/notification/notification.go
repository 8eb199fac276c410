package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	notificationRepo "fundihub/database/repository/notification"
	providerRepo "fundihub/database/repository/provider"
	userRepo "fundihub/database/repository/user"
	"fundihub/models"
	"fundihub/services/realtime"
	"fundihub/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo       notificationRepo.NotificationRepository
	Dispatcher Dispatcher
	Users      userRepo.UserRepository
	Providers  providerRepo.ProviderRepository
	Logger     *zap.Logger
}

// NormalizeRole lower-cases a role string and validates it against the known
// recipient roles.
func NormalizeRole(role string) (models.Role, error) {
	switch models.Role(strings.ToLower(role)) {
	case models.RoleClient:
		return models.RoleClient, nil
	case models.RoleProvider:
		return models.RoleProvider, nil
	case models.RoleAdmin:
		return models.RoleAdmin, nil
	}
	return "", fmt.Errorf("unknown recipient role %q", role)
}

// Notify persists the notification, then pushes it over realtime and FCM.
// Delivery is best-effort on both channels.
func (s *DefaultNotificationService) Notify(ctx context.Context, recipient string, role models.Role, ntype models.NotificationType, title, message string, data map[string]any) (*models.Notification, error) {
	normalized, err := NormalizeRole(string(role))
	if err != nil {
		return nil, err
	}

	n := &models.Notification{
		ID:            uuid.New().String(),
		Recipient:     recipient,
		RecipientRole: normalized,
		Type:          ntype,
		Title:         title,
		Message:       message,
		Data:          data,
		Read:          false,
		CreatedAt:     time.Now(),
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to persist notification: %w", err)
	}

	if s.Dispatcher != nil {
		delivered := s.Dispatcher.Send(recipient, realtime.Event{
			Type: "notification",
			Payload: map[string]any{
				"id":      n.ID,
				"type":    n.Type,
				"title":   n.Title,
				"message": n.Message,
				"data":    n.Data,
			},
		})
		if !delivered {
			s.Logger.Debug("notification: recipient offline, realtime push skipped",
				zap.String("recipient", recipient))
		}
	}

	s.pushFCM(ctx, n, normalized)
	return n, nil
}

// pushFCM sends a mobile push when firebase is configured and the recipient
// has a registered token. Failures are logged and swallowed.
func (s *DefaultNotificationService) pushFCM(ctx context.Context, n *models.Notification, role models.Role) {
	if utils.FCMClient == nil {
		return
	}

	var token string
	switch role {
	case models.RoleClient:
		if s.Users == nil {
			return
		}
		u, err := s.Users.GetByID(ctx, n.Recipient)
		if err != nil || u == nil {
			return
		}
		token = u.FCMToken
	case models.RoleProvider:
		if s.Providers == nil {
			return
		}
		p, err := s.Providers.GetByID(ctx, n.Recipient)
		if err != nil || p == nil {
			return
		}
		token = p.FCMToken
	default:
		return
	}
	if token == "" {
		return
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Message,
		},
		Data: map[string]string{
			"type": string(n.Type),
			"role": string(role),
		},
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		s.Logger.Warn("notification: FCM push failed",
			zap.String("recipient", n.Recipient), zap.Error(err))
	}
}

// GetByID loads a single notification.
func (s *DefaultNotificationService) GetByID(ctx context.Context, notificationID string) (*models.Notification, error) {
	return s.Repo.GetByID(ctx, notificationID)
}

// ListForRecipient returns all notifications addressed to a recipient.
func (s *DefaultNotificationService) ListForRecipient(ctx context.Context, recipient string, role models.Role) ([]models.Notification, error) {
	normalized, err := NormalizeRole(string(role))
	if err != nil {
		return nil, err
	}
	return s.Repo.ListByRecipient(ctx, recipient, normalized)
}

// MarkRead flips the read flag on a notification.
func (s *DefaultNotificationService) MarkRead(ctx context.Context, notificationID string) error {
	return s.Repo.MarkRead(ctx, notificationID)
}
