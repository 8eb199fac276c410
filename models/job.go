package models

import "time"

// Job is the work record derived from an accepted booking. Exactly one Job
// exists per accepted booking; bookings that skip acceptance never get one.
// Its status mirrors the booking lifecycle from acceptance onward.
type Job struct {
	ID          string        `bson:"id" json:"id"`
	BookingID   string        `bson:"bookingId" json:"bookingId"`
	ClientID    string        `bson:"clientId" json:"clientId"`
	ProviderID  string        `bson:"providerId" json:"providerId"`
	ServiceType string        `bson:"serviceType" json:"serviceType"`
	Schedule    time.Time     `bson:"schedule" json:"schedule"`
	Amount      float64       `bson:"amount" json:"amount"`
	Status      BookingStatus `bson:"status" json:"status"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}
