package booking

import (
	"time"

	"fundihub/models"

	"github.com/google/uuid"
)

// ProjectFromAcceptedBooking derives the Job record for a booking entering
// the accepted state. Pure derivation; the caller is responsible for
// invoking it exactly once, at the accepted transition.
func ProjectFromAcceptedBooking(b *models.Booking, defaultAmount float64) *models.Job {
	amount := b.ResolvedAmount()
	if amount <= 0 {
		amount = defaultAmount
	}
	now := time.Now()
	return &models.Job{
		ID:          uuid.New().String(),
		BookingID:   b.ID,
		ClientID:    b.ClientID,
		ProviderID:  b.ProviderID,
		ServiceType: b.ServiceType,
		Schedule:    b.Schedule,
		Amount:      amount,
		Status:      models.BookingStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
