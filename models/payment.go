package models

import "time"

// PaymentMethod enumerates supported payment channels.
type PaymentMethod string

const (
	PaymentMethodMpesa  PaymentMethod = "mpesa"
	PaymentMethodPaypal PaymentMethod = "paypal"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodCash   PaymentMethod = "cash"
)

// PaymentStatus enumerates the lifecycle states of a payment.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusCompleted  PaymentStatus = "completed"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusRefunded   PaymentStatus = "refunded"
)

// DefaultServiceFee is the floor amount (KES) charged when a completed
// booking has no recorded cost. The platform deliberately bills this fixed
// fee rather than leaving the payment at zero.
const DefaultServiceFee = 3500

// Payment is a request for money owed on a completed booking. At most one
// payment is created per booking; the method defaults to the platform's
// primary mobile-money channel and can be changed by a later
// method-selection flow.
type Payment struct {
	ID             string        `bson:"id" json:"id"`
	BookingID      string        `bson:"bookingId" json:"bookingId"`
	ClientID       string        `bson:"clientId" json:"clientId"`
	ProviderID     string        `bson:"providerId" json:"providerId"`
	Amount         float64       `bson:"amount" json:"amount"`
	Method         PaymentMethod `bson:"method" json:"method"`
	Status         PaymentStatus `bson:"status" json:"status"`
	TransactionRef string        `bson:"transactionRef,omitempty" json:"transactionRef,omitempty"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updatedAt" json:"updatedAt"`
}
