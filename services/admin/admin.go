package admin

import (
	"context"
	"fmt"

	providerRepo "fundihub/database/repository/provider"
	"fundihub/models"
	"fundihub/services/notification"

	"go.uber.org/zap"
)

// AdminService covers moderation actions.
type AdminService interface {
	SuspendProvider(ctx context.Context, providerID, reason string) error
	ReinstateProvider(ctx context.Context, providerID string) error
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Providers       providerRepo.ProviderRepository
	NotificationSvc notification.NotificationService
	Logger          *zap.Logger
}

// SuspendProvider flags a provider and sends them a suspension alert.
func (s *DefaultAdminService) SuspendProvider(ctx context.Context, providerID, reason string) error {
	if err := s.Providers.SetSuspended(ctx, providerID, true); err != nil {
		return fmt.Errorf("failed to suspend provider %s: %w", providerID, err)
	}

	message := "Your provider account has been suspended pending review."
	if reason != "" {
		message = fmt.Sprintf("Your provider account has been suspended: %s", reason)
	}
	if _, err := s.NotificationSvc.Notify(ctx, providerID, models.RoleProvider,
		models.NotificationSuspensionAlert, "Account Suspended", message,
		map[string]any{"reason": reason}); err != nil {
		s.Logger.Warn("admin: failed to notify suspended provider",
			zap.String("providerID", providerID), zap.Error(err))
	}
	return nil
}

// ReinstateProvider lifts a suspension.
func (s *DefaultAdminService) ReinstateProvider(ctx context.Context, providerID string) error {
	if err := s.Providers.SetSuspended(ctx, providerID, false); err != nil {
		return fmt.Errorf("failed to reinstate provider %s: %w", providerID, err)
	}
	return nil
}
