package models

// ReminderPayload is the queued task body for a scheduled booking reminder.
type ReminderPayload struct {
	Target    string `json:"target"` // "client" or "provider"
	ID        string `json:"id"`
	BookingID string `json:"bookingId"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	FireDate  string `json:"fireDate"`
}
