package models

import "time"

// Role identifies which side of the marketplace a recipient belongs to.
// Stored lower-case; inputs are normalized case-insensitively.
type Role string

const (
	RoleClient   Role = "client"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

// NotificationType labels a notification. The set is extensible; these are
// the types the workflow emits.
type NotificationType string

const (
	NotificationBookingAccepted  NotificationType = "BOOKING_ACCEPTED"
	NotificationBookingRejected  NotificationType = "BOOKING_REJECTED"
	NotificationBookingCancelled NotificationType = "BOOKING_CANCELLED"
	NotificationJobUpdate        NotificationType = "JOB_UPDATE"
	NotificationJobCompleted     NotificationType = "JOB_COMPLETED"
	NotificationPaymentRequest   NotificationType = "PAYMENT_REQUEST"
	NotificationPaymentError     NotificationType = "PAYMENT_ERROR"
	NotificationSuspensionAlert  NotificationType = "SUSPENSION_ALERT"
)

// Notification is a durable notice addressed to one recipient. Only the
// read flag is ever mutated after creation.
type Notification struct {
	ID            string           `bson:"id" json:"id"`
	Recipient     string           `bson:"recipient" json:"recipient"`
	RecipientRole Role             `bson:"recipientModel" json:"recipientModel"`
	Type          NotificationType `bson:"type" json:"type"`
	Title         string           `bson:"title" json:"title"`
	Message       string           `bson:"message" json:"message"`
	Data          map[string]any   `bson:"data,omitempty" json:"data,omitempty"`
	Read          bool             `bson:"read" json:"read"`
	CreatedAt     time.Time        `bson:"createdAt" json:"createdAt"`
}
