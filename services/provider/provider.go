package provider

import (
	"context"
	"fmt"
	"time"

	providerRepo "fundihub/database/repository/provider"
	"fundihub/models"
	"fundihub/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

// ProviderService manages provider accounts.
type ProviderService interface {
	Register(ctx context.Context, name, email, phone, serviceType, password string) (*models.Provider, string, error)
	Login(ctx context.Context, email, password string) (*models.Provider, string, error)
	GetProviderByID(ctx context.Context, providerID string) (*models.Provider, error)
}

// DefaultProviderService is the production implementation.
type DefaultProviderService struct {
	Repo providerRepo.ProviderRepository
}

// Register creates a provider account and returns a signed token.
func (s *DefaultProviderService) Register(ctx context.Context, name, email, phone, serviceType, password string) (*models.Provider, string, error) {
	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", fmt.Errorf("an account with email %s already exists", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	p := &models.Provider{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		ServiceType:  serviceType,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateToken(p.ID, string(models.RoleProvider), tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return p, token, nil
}

// Login verifies credentials and returns a signed token. Suspended
// providers cannot sign in.
func (s *DefaultProviderService) Login(ctx context.Context, email, password string) (*models.Provider, string, error) {
	p, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if p == nil {
		return nil, "", fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("invalid credentials")
	}
	if p.Suspended {
		return nil, "", fmt.Errorf("account suspended, contact support")
	}

	token, err := utils.GenerateToken(p.ID, string(models.RoleProvider), tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return p, token, nil
}

// GetProviderByID loads a provider account.
func (s *DefaultProviderService) GetProviderByID(ctx context.Context, providerID string) (*models.Provider, error) {
	p, err := s.Repo.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("provider %s not found", providerID)
	}
	return p, nil
}
