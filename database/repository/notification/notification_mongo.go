package notificationRepo

import (
	"context"
	"fmt"
	"time"

	"fundihub/database"
	"fundihub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoNotificationRepo implements NotificationRepository using MongoDB.
type MongoNotificationRepo struct {
	coll *mongo.Collection
}

// NewMongoNotificationRepo constructs a new instance of MongoNotificationRepo.
func NewMongoNotificationRepo() NotificationRepository {
	return &MongoNotificationRepo{
		coll: database.DB().Collection("notifications"),
	}
}

// Create inserts a new notification document.
func (repo *MongoNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := repo.coll.InsertOne(ctxWithTimeout, notification)
	if err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}
	return nil
}

// GetByID retrieves a notification by its ID.
func (repo *MongoNotificationRepo) GetByID(ctx context.Context, notificationID string) (*models.Notification, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var notification models.Notification
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"id": notificationID}).Decode(&notification)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching notification %s: %w", notificationID, err)
	}
	return &notification, nil
}

// ListByRecipient returns all notifications for a recipient, newest first.
func (repo *MongoNotificationRepo) ListByRecipient(ctx context.Context, recipient string, role models.Role) ([]models.Notification, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"recipient": recipient, "recipientModel": role}
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := repo.coll.Find(ctxWithTimeout, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications for %s: %w", recipient, err)
	}
	defer cursor.Close(ctxWithTimeout)

	var notifications []models.Notification
	for cursor.Next(ctxWithTimeout) {
		var n models.Notification
		if err := cursor.Decode(&n); err != nil {
			return nil, fmt.Errorf("error decoding notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return notifications, nil
}

// MarkRead sets the read flag on a notification.
func (repo *MongoNotificationRepo) MarkRead(ctx context.Context, notificationID string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": notificationID}
	update := bson.M{"$set": bson.M{"read": true}}
	_, err := repo.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return fmt.Errorf("error marking notification %s read: %w", notificationID, err)
	}
	return nil
}
