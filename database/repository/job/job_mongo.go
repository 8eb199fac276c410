package jobRepo

import (
	"context"
	"fmt"
	"time"

	"fundihub/database"
	"fundihub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoJobRepo implements JobRepository using MongoDB.
type MongoJobRepo struct {
	coll *mongo.Collection
}

// NewMongoJobRepo constructs a new instance of MongoJobRepo.
func NewMongoJobRepo() JobRepository {
	return &MongoJobRepo{
		coll: database.DB().Collection("jobs"),
	}
}

// Create inserts a new job document.
func (repo *MongoJobRepo) Create(ctx context.Context, job *models.Job) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := repo.coll.InsertOne(ctxWithTimeout, job)
	if err != nil {
		return fmt.Errorf("error creating job: %w", err)
	}
	return nil
}

// GetByBookingID retrieves the job derived from a booking, or nil if none exists.
func (repo *MongoJobRepo) GetByBookingID(ctx context.Context, bookingID string) (*models.Job, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var job models.Job
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"bookingId": bookingID}).Decode(&job)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching job for booking %s: %w", bookingID, err)
	}
	return &job, nil
}

// UpdateStatusByBookingID updates the status of the job derived from a booking.
func (repo *MongoJobRepo) UpdateStatusByBookingID(ctx context.Context, bookingID string, status models.BookingStatus) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"bookingId": bookingID}
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	_, err := repo.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return fmt.Errorf("error updating job status for booking %s: %w", bookingID, err)
	}
	return nil
}
