package userRepo

import (
	"context"

	"fundihub/models"
)

// UserRepository defines persistence operations for client accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
