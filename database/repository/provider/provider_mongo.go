package providerRepo

import (
	"context"
	"fmt"
	"time"

	"fundihub/database"
	"fundihub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo constructs a new instance of MongoProviderRepo.
func NewMongoProviderRepo() ProviderRepository {
	return &MongoProviderRepo{
		coll: database.DB().Collection("providers"),
	}
}

// Create inserts a new provider document.
func (repo *MongoProviderRepo) Create(ctx context.Context, provider *models.Provider) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := repo.coll.InsertOne(ctxWithTimeout, provider)
	if err != nil {
		return fmt.Errorf("error creating provider: %w", err)
	}
	return nil
}

// GetByID retrieves a provider by ID.
func (repo *MongoProviderRepo) GetByID(ctx context.Context, providerID string) (*models.Provider, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var provider models.Provider
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"id": providerID}).Decode(&provider)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching provider %s: %w", providerID, err)
	}
	return &provider, nil
}

// GetByEmail retrieves a provider by email.
func (repo *MongoProviderRepo) GetByEmail(ctx context.Context, email string) (*models.Provider, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var provider models.Provider
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"email": email}).Decode(&provider)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching provider by email %s: %w", email, err)
	}
	return &provider, nil
}

// SetSuspended flags or unflags a provider for moderation.
func (repo *MongoProviderRepo) SetSuspended(ctx context.Context, providerID string, suspended bool) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": providerID}
	update := bson.M{"$set": bson.M{"suspended": suspended, "updatedAt": time.Now()}}
	res, err := repo.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return fmt.Errorf("error updating provider %s suspension: %w", providerID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("provider %s not found", providerID)
	}
	return nil
}
