package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"fundihub/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeSendReminder = "reminder:send"

// How long before the scheduled visit the reminder fires.
const reminderLead = time.Hour

// NewReminderTask builds an asynq task scheduled for fireAt.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// Scheduler enqueues booking reminders. Satisfies booking.ReminderScheduler.
type Scheduler struct {
	Client *asynq.Client
	Logger *zap.Logger
}

// ScheduleBookingReminder queues a pre-visit reminder for both parties of an
// accepted booking. Bookings already within the lead window are skipped.
func (s *Scheduler) ScheduleBookingReminder(b *models.Booking) error {
	fireAt := b.Schedule.Add(-reminderLead)
	if time.Until(fireAt) <= 0 {
		return nil
	}

	reminders := []models.ReminderPayload{
		{
			Target:    "client",
			ID:        b.ClientID,
			BookingID: b.ID,
			Title:     "Upcoming Booking",
			Body:      fmt.Sprintf("Your %s service is scheduled in about an hour.", b.ServiceType),
			FireDate:  fireAt.Format(time.RFC3339),
		},
		{
			Target:    "provider",
			ID:        b.ProviderID,
			BookingID: b.ID,
			Title:     "Upcoming Job",
			Body:      fmt.Sprintf("Your %s job starts in about an hour.", b.ServiceType),
			FireDate:  fireAt.Format(time.RFC3339),
		},
	}

	for _, p := range reminders {
		task, opts, err := NewReminderTask(p, fireAt)
		if err != nil {
			return fmt.Errorf("failed to build reminder task: %w", err)
		}
		if _, err := s.Client.Enqueue(task, opts...); err != nil {
			return fmt.Errorf("failed to enqueue reminder for %s %s: %w", p.Target, p.ID, err)
		}
		s.Logger.Debug("tasks: reminder scheduled",
			zap.String("bookingID", b.ID), zap.String("target", p.Target), zap.Time("fireAt", fireAt))
	}
	return nil
}
