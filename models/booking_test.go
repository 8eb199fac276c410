package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidBookingStatus(t *testing.T) {
	for _, s := range []BookingStatus{
		BookingStatusPending, BookingStatusAccepted, BookingStatusRejected,
		BookingStatusCancelled, BookingStatusInProgress, BookingStatusCompleted,
	} {
		assert.Truef(t, IsValidBookingStatus(s), "%s", s)
	}

	assert.False(t, IsValidBookingStatus("archived"))
	assert.False(t, IsValidBookingStatus(""))
}

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to BookingStatus }{
		{BookingStatusPending, BookingStatusAccepted},
		{BookingStatusPending, BookingStatusRejected},
		{BookingStatusPending, BookingStatusCancelled},
		{BookingStatusAccepted, BookingStatusInProgress},
		{BookingStatusAccepted, BookingStatusCancelled},
		{BookingStatusInProgress, BookingStatusCompleted},
		{BookingStatusInProgress, BookingStatusCancelled},
	}
	for _, tc := range allowed {
		assert.Truef(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct{ from, to BookingStatus }{
		{BookingStatusPending, BookingStatusInProgress},
		{BookingStatusPending, BookingStatusCompleted},
		{BookingStatusAccepted, BookingStatusCompleted},
		{BookingStatusAccepted, BookingStatusRejected},
		{BookingStatusCompleted, BookingStatusCancelled},
		{BookingStatusRejected, BookingStatusAccepted},
		{BookingStatusCancelled, BookingStatusPending},
		{BookingStatusCompleted, BookingStatusInProgress},
	}
	for _, tc := range denied {
		assert.Falsef(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestResolvedAmountPrefersEstimate(t *testing.T) {
	b := &Booking{Amount: 1200, EstimatedCost: 2200}
	assert.Equal(t, 2200.0, b.ResolvedAmount())

	b = &Booking{Amount: 1200}
	assert.Equal(t, 1200.0, b.ResolvedAmount())

	b = &Booking{}
	assert.Zero(t, b.ResolvedAmount())
}
