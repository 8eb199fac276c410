package bookingRepo

import (
	"context"

	"fundihub/models"
)

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	// UpdateStatusCAS flips the booking status only if the stored status
	// still equals expected. It returns false when no document matched,
	// which for an existing booking means another writer won the race.
	UpdateStatusCAS(ctx context.Context, bookingID string, expected, next models.BookingStatus) (bool, error)
}
