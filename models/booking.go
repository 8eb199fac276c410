package models

import "time"

// BookingStatus enumerates the lifecycle states of a booking.
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusAccepted   BookingStatus = "accepted"
	BookingStatusRejected   BookingStatus = "rejected"
	BookingStatusCancelled  BookingStatus = "cancelled"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
)

// bookingTransitions is the allowed status graph. Completed, rejected and
// cancelled are terminal; a new booking must be created to redo service.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:    {BookingStatusAccepted, BookingStatusRejected, BookingStatusCancelled},
	BookingStatusAccepted:   {BookingStatusInProgress, BookingStatusCancelled},
	BookingStatusInProgress: {BookingStatusCompleted, BookingStatusCancelled},
}

// IsValidBookingStatus reports whether s is a member of the status enum.
func IsValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusRejected,
		BookingStatusCancelled, BookingStatusInProgress, BookingStatusCompleted:
		return true
	}
	return false
}

// CanTransition reports whether the status graph permits moving from one
// status to another.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Booking represents a service request between a client and a provider.
// Party references are canonical typed ids; the record is never physically
// deleted (cancellation is a status).
type Booking struct {
	ID            string        `bson:"id" json:"id"`
	ClientID      string        `bson:"clientId" json:"clientId"`
	ProviderID    string        `bson:"providerId" json:"providerId"`
	ServiceType   string        `bson:"serviceType" json:"serviceType"`
	Schedule      time.Time     `bson:"schedule" json:"schedule"`
	Status        BookingStatus `bson:"status" json:"status"`
	Amount        float64       `bson:"amount,omitempty" json:"amount,omitempty"`
	EstimatedCost float64       `bson:"estimatedCost,omitempty" json:"estimatedCost,omitempty"`
	Address       string        `bson:"address" json:"address"`
	Description   string        `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// ResolvedAmount returns the recorded cost of the booking, preferring the
// estimate over the raw amount. Zero means no cost has been recorded yet.
func (b *Booking) ResolvedAmount() float64 {
	if b.EstimatedCost > 0 {
		return b.EstimatedCost
	}
	return b.Amount
}
