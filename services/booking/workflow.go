package booking

import (
	"context"
	"fmt"
	"time"

	"fundihub/models"
	"fundihub/services/realtime"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking records a new pending booking for a client.
func (s *DefaultWorkflowService) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	if input.ClientID == "" || input.ProviderID == "" {
		return nil, fmt.Errorf("booking requires both client and provider references")
	}
	if input.ServiceType == "" {
		return nil, fmt.Errorf("booking requires a service type")
	}

	now := time.Now()
	b := &models.Booking{
		ID:            uuid.New().String(),
		ClientID:      input.ClientID,
		ProviderID:    input.ProviderID,
		ServiceType:   input.ServiceType,
		Schedule:      time.Unix(input.Schedule, 0),
		Status:        models.BookingStatusPending,
		EstimatedCost: input.EstimatedCost,
		Address:       input.Address,
		Description:   input.Description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return b, nil
}

// GetBooking loads a booking by id.
func (s *DefaultWorkflowService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, NewWorkflowError(CodeNotFound, fmt.Sprintf("booking %s not found", bookingID), nil)
	}
	return b, nil
}

// Transition validates and applies a status change, then sequences the
// derived side effects. The booking status write is guarded by a
// compare-and-swap on the loaded status; a lost race surfaces as Conflict.
func (s *DefaultWorkflowService) Transition(ctx context.Context, bookingID, requesterID string, requesterRole models.Role, target models.BookingStatus) (*TransitionResult, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, NewWorkflowError(CodeDownstream, "failed to load booking", err)
	}
	if b == nil {
		return nil, NewWorkflowError(CodeNotFound, fmt.Sprintf("booking %s not found", bookingID), nil)
	}

	if !models.IsValidBookingStatus(target) {
		return nil, NewWorkflowError(CodeInvalidStatus, fmt.Sprintf("unknown status %q", target), nil)
	}

	if err := authorizeTransition(b, requesterID, requesterRole, target); err != nil {
		return nil, err
	}

	current := b.Status
	if !models.CanTransition(current, target) {
		return nil, NewWorkflowError(CodeInvalidTransition,
			fmt.Sprintf("cannot transition booking from %s to %s", current, target), nil)
	}

	swapped, err := s.Bookings.UpdateStatusCAS(ctx, b.ID, current, target)
	if err != nil {
		return nil, NewWorkflowError(CodeDownstream, "failed to persist status change", err)
	}
	if !swapped {
		return nil, NewWorkflowError(CodeConflict,
			fmt.Sprintf("booking %s was modified concurrently", b.ID), nil)
	}
	b.Status = target
	b.UpdatedAt = time.Now()

	switch target {
	case models.BookingStatusAccepted:
		return s.finishAccepted(ctx, b, current)
	case models.BookingStatusCompleted:
		return s.finishCompleted(ctx, b)
	case models.BookingStatusRejected:
		return s.finishSimple(ctx, b, models.RoleClient, models.NotificationBookingRejected,
			"Booking Rejected",
			fmt.Sprintf("Your %s booking was declined by the provider.", b.ServiceType))
	case models.BookingStatusCancelled:
		s.mirrorJobStatus(ctx, b)
		return s.finishSimple(ctx, b, models.RoleProvider, models.NotificationBookingCancelled,
			"Booking Cancelled",
			fmt.Sprintf("The client cancelled the %s booking.", b.ServiceType))
	case models.BookingStatusInProgress:
		s.mirrorJobStatus(ctx, b)
		return s.finishSimple(ctx, b, models.RoleClient, models.NotificationJobUpdate,
			"Job Started",
			fmt.Sprintf("Your %s job is now in progress.", b.ServiceType))
	}

	// Unreachable: every target the graph admits is handled above.
	return nil, NewWorkflowError(CodeInvalidTransition, fmt.Sprintf("unhandled target %q", target), nil)
}

// authorizeTransition checks that the requester is the booking party allowed
// to request this target status. Ids are compared in string form.
func authorizeTransition(b *models.Booking, requesterID string, role models.Role, target models.BookingStatus) error {
	if target == models.BookingStatusCancelled {
		if role != models.RoleClient || requesterID != b.ClientID {
			return NewWorkflowError(CodeForbidden, "only the booking's client may cancel", nil)
		}
		return nil
	}
	if role != models.RoleProvider || requesterID != b.ProviderID {
		return NewWorkflowError(CodeForbidden,
			fmt.Sprintf("only the booking's provider may set status %s", target), nil)
	}
	return nil
}

// finishAccepted creates the job projection for a booking that just entered
// accepted. Job creation is required: if it fails, the status flip is
// compensated so the booking is left unchanged.
func (s *DefaultWorkflowService) finishAccepted(ctx context.Context, b *models.Booking, previous models.BookingStatus) (*TransitionResult, error) {
	jobCreated := false
	existing, err := s.Jobs.GetByBookingID(ctx, b.ID)
	if err == nil && existing == nil {
		job := ProjectFromAcceptedBooking(b, serviceFee())
		err = s.Jobs.Create(ctx, job)
		jobCreated = err == nil
	}
	if err != nil {
		// Revert so the booking stays accepted only if the job exists.
		reverted, revertErr := s.Bookings.UpdateStatusCAS(ctx, b.ID, b.Status, previous)
		if revertErr != nil {
			s.Logger.Error("workflow: failed to revert booking after job creation failure",
				zap.String("bookingID", b.ID), zap.Error(revertErr))
		} else if !reverted {
			s.Logger.Error("workflow: booking advanced before revert, left without a job",
				zap.String("bookingID", b.ID), zap.String("previous", string(previous)))
		}
		return nil, NewWorkflowError(CodeDownstream, "job creation failed", err)
	}

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleBookingReminder(b); err != nil {
			s.Logger.Warn("workflow: failed to schedule booking reminder",
				zap.String("bookingID", b.ID), zap.Error(err))
		}
	}

	result, _ := s.finishSimple(ctx, b, models.RoleClient, models.NotificationBookingAccepted,
		"Booking Accepted",
		fmt.Sprintf("Your %s booking was accepted by the provider.", b.ServiceType))
	result.JobCreated = jobCreated
	return result, nil
}

// finishCompleted issues the payment request and the completion
// notifications. The status change is never rolled back here: payment
// failure yields a PAYMENT_ERROR notification and a partial-failure result.
func (s *DefaultWorkflowService) finishCompleted(ctx context.Context, b *models.Booking) (*TransitionResult, error) {
	s.mirrorJobStatus(ctx, b)

	result := &TransitionResult{Booking: b}

	payment, err := s.Payments.GetByBookingID(ctx, b.ID)
	if err == nil && payment == nil {
		payment, err = IssuePaymentRequest(b)
		if err == nil {
			err = s.Payments.Create(ctx, payment)
		}
		result.PaymentCreated = err == nil
	}
	if err != nil {
		n, ok := s.notify(ctx, b.ClientID, models.RoleClient, models.NotificationPaymentError,
			"Payment Request Failed",
			fmt.Sprintf("We could not prepare the payment for your %s booking. Support has been notified.", b.ServiceType),
			map[string]any{"bookingId": b.ID, "status": b.Status})
		result.Notification = n
		result.NotificationCreated = ok
		return result, NewWorkflowError(CodeDownstream, "payment request failed after completion", err)
	}

	completedNote, createdCompleted := s.notify(ctx, b.ClientID, models.RoleClient, models.NotificationJobCompleted,
		"Job Completed",
		fmt.Sprintf("Your %s job has been completed.", b.ServiceType),
		map[string]any{"bookingId": b.ID, "status": b.Status})

	_, createdPayment := s.notify(ctx, b.ClientID, models.RoleClient, models.NotificationPaymentRequest,
		"Payment Request",
		fmt.Sprintf("Please pay KES %.2f for your completed %s job.", payment.Amount, b.ServiceType),
		map[string]any{"bookingId": b.ID, "paymentId": payment.ID, "amount": payment.Amount, "method": payment.Method})

	result.Notification = completedNote
	result.NotificationCreated = createdCompleted && createdPayment
	result.Delivered = s.dispatch(b, completedNote)
	return result, nil
}

// finishSimple persists the primary notification for a transition and
// attempts realtime delivery. Used by the branches with no required side
// effects beyond the status write.
func (s *DefaultWorkflowService) finishSimple(ctx context.Context, b *models.Booking, recipientRole models.Role, ntype models.NotificationType, title, message string) (*TransitionResult, error) {
	recipient := b.ClientID
	if recipientRole == models.RoleProvider {
		recipient = b.ProviderID
	}

	n, created := s.notify(ctx, recipient, recipientRole, ntype, title, message,
		map[string]any{"bookingId": b.ID, "status": b.Status})

	return &TransitionResult{
		Booking:             b,
		Notification:        n,
		NotificationCreated: created,
		Delivered:           s.dispatch(b, n),
	}, nil
}

// notify creates a notification through the emitter, swallowing and logging
// any failure. Notification creation never escalates.
func (s *DefaultWorkflowService) notify(ctx context.Context, recipient string, role models.Role, ntype models.NotificationType, title, message string, data map[string]any) (*models.Notification, bool) {
	n, err := s.NotificationSvc.Notify(ctx, recipient, role, ntype, title, message, data)
	if err != nil {
		s.Logger.Warn("workflow: notification creation failed",
			zap.String("recipient", recipient), zap.String("type", string(ntype)), zap.Error(err))
		return nil, false
	}
	return n, true
}

// dispatch pushes the status event to the booking's client. Best-effort:
// delivery failure never fails the transition, the caller only learns
// delivered=false.
func (s *DefaultWorkflowService) dispatch(b *models.Booking, n *models.Notification) bool {
	if s.Dispatcher == nil {
		return false
	}
	payload := map[string]any{
		"bookingId": b.ID,
		"status":    b.Status,
	}
	if n != nil {
		payload["title"] = n.Title
		payload["message"] = n.Message
	}
	return s.Dispatcher.Send(b.ClientID, realtime.Event{Type: "booking_status", Payload: payload})
}

// mirrorJobStatus keeps the derived job in step with the booking. The job is
// a projection, so failures here are logged, not surfaced.
func (s *DefaultWorkflowService) mirrorJobStatus(ctx context.Context, b *models.Booking) {
	if err := s.Jobs.UpdateStatusByBookingID(ctx, b.ID, b.Status); err != nil {
		s.Logger.Warn("workflow: failed to mirror job status",
			zap.String("bookingID", b.ID), zap.String("status", string(b.Status)), zap.Error(err))
	}
}
