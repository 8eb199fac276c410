package booking

import (
	"fmt"
	"time"

	"fundihub/config"
	"fundihub/models"

	"github.com/google/uuid"
)

// serviceFee is the fallback amount when a booking carries no recorded cost.
// Operators can override the fixed platform floor through configuration.
func serviceFee() float64 {
	if fee := config.AppConfig.DefaultServiceFee; fee > 0 {
		return float64(fee)
	}
	return models.DefaultServiceFee
}

// IssuePaymentRequest builds the pending payment for a completed booking.
// The amount falls back to the platform's fixed service fee when the booking
// has no recorded cost. The method defaults to mpesa; a later
// method-selection flow may change it. Both party references are required.
func IssuePaymentRequest(b *models.Booking) (*models.Payment, error) {
	if b.ClientID == "" {
		return nil, fmt.Errorf("cannot issue payment for booking %s: client reference missing", b.ID)
	}
	if b.ProviderID == "" {
		return nil, fmt.Errorf("cannot issue payment for booking %s: provider reference missing", b.ID)
	}

	amount := b.ResolvedAmount()
	if amount <= 0 {
		amount = serviceFee()
	}

	now := time.Now()
	return &models.Payment{
		ID:         uuid.New().String(),
		BookingID:  b.ID,
		ClientID:   b.ClientID,
		ProviderID: b.ProviderID,
		Amount:     amount,
		Method:     models.PaymentMethodMpesa,
		Status:     models.PaymentStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}
