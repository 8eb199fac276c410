package providerRepo

import (
	"context"

	"fundihub/models"
)

// ProviderRepository defines persistence operations for provider accounts.
type ProviderRepository interface {
	Create(ctx context.Context, provider *models.Provider) error
	GetByID(ctx context.Context, providerID string) (*models.Provider, error)
	GetByEmail(ctx context.Context, email string) (*models.Provider, error)
	SetSuspended(ctx context.Context, providerID string, suspended bool) error
}
