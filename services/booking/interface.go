package booking

import (
	"context"

	bookingRepo "fundihub/database/repository/booking"
	jobRepo "fundihub/database/repository/job"
	paymentRepo "fundihub/database/repository/payment"
	"fundihub/models"
	"fundihub/services/notification"

	"go.uber.org/zap"
)

// CreateBookingInput carries the fields a client supplies when requesting
// service.
type CreateBookingInput struct {
	ClientID      string
	ProviderID    string
	ServiceType   string
	Schedule      int64 // unix seconds
	EstimatedCost float64
	Address       string
	Description   string
}

// TransitionResult tells the caller exactly which side effects of a
// transition succeeded, alongside the updated booking. Partial failure in
// the completed branch returns this with the booking already updated.
type TransitionResult struct {
	Booking             *models.Booking      `json:"booking"`
	Notification        *models.Notification `json:"notification,omitempty"`
	JobCreated          bool                 `json:"jobCreated"`
	PaymentCreated      bool                 `json:"paymentCreated"`
	NotificationCreated bool                 `json:"notificationCreated"`
	Delivered           bool                 `json:"delivered"`
}

// ReminderScheduler queues a pre-visit reminder for an accepted booking.
// Implemented by services/tasks; optional.
type ReminderScheduler interface {
	ScheduleBookingReminder(booking *models.Booking) error
}

// WorkflowService is the single mutation path for booking status.
type WorkflowService interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	Transition(ctx context.Context, bookingID, requesterID string, requesterRole models.Role, target models.BookingStatus) (*TransitionResult, error)
}

// DefaultWorkflowService implements WorkflowService.
type DefaultWorkflowService struct {
	Bookings        bookingRepo.BookingRepository
	Jobs            jobRepo.JobRepository
	Payments        paymentRepo.PaymentRepository
	NotificationSvc notification.NotificationService
	Dispatcher      notification.Dispatcher
	Reminders       ReminderScheduler
	Logger          *zap.Logger
}
