package paymentRepo

import (
	"context"
	"fmt"
	"time"

	"fundihub/database"
	"fundihub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoPaymentRepo implements PaymentRepository using MongoDB.
type MongoPaymentRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepo constructs a new instance of MongoPaymentRepo.
func NewMongoPaymentRepo() PaymentRepository {
	return &MongoPaymentRepo{
		coll: database.DB().Collection("payments"),
	}
}

// Create inserts a new payment document.
func (repo *MongoPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := repo.coll.InsertOne(ctxWithTimeout, payment)
	if err != nil {
		return fmt.Errorf("error creating payment: %w", err)
	}
	return nil
}

// GetByID retrieves a payment by its ID.
func (repo *MongoPaymentRepo) GetByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var payment models.Payment
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"id": paymentID}).Decode(&payment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching payment %s: %w", paymentID, err)
	}
	return &payment, nil
}

// GetByBookingID retrieves the payment for a booking, or nil if none exists.
func (repo *MongoPaymentRepo) GetByBookingID(ctx context.Context, bookingID string) (*models.Payment, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var payment models.Payment
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"bookingId": bookingID}).Decode(&payment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching payment for booking %s: %w", bookingID, err)
	}
	return &payment, nil
}

// UpdateStatus sets the payment status and, when non-empty, the gateway
// transaction reference.
func (repo *MongoPaymentRepo) UpdateStatus(ctx context.Context, paymentID string, status models.PaymentStatus, transactionRef string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"status": status, "updatedAt": time.Now()}
	if transactionRef != "" {
		set["transactionRef"] = transactionRef
	}
	filter := bson.M{"id": paymentID}
	_, err := repo.coll.UpdateOne(ctxWithTimeout, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("error updating payment %s: %w", paymentID, err)
	}
	return nil
}
