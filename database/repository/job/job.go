package jobRepo

import (
	"context"

	"fundihub/models"
)

// JobRepository defines persistence operations for derived job records.
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByBookingID(ctx context.Context, bookingID string) (*models.Job, error)
	// UpdateStatusByBookingID keeps the job projection in step with its
	// booking from acceptance onward.
	UpdateStatusByBookingID(ctx context.Context, bookingID string, status models.BookingStatus) error
}
