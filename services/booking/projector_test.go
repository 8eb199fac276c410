package booking

import (
	"testing"
	"time"

	"fundihub/config"
	"fundihub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectFromAcceptedBooking(t *testing.T) {
	schedule := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	b := &models.Booking{
		ID:            "b-7",
		ClientID:      "client-7",
		ProviderID:    "provider-7",
		ServiceType:   "electrical",
		Schedule:      schedule,
		Status:        models.BookingStatusAccepted,
		EstimatedCost: 5100,
	}

	job := ProjectFromAcceptedBooking(b, models.DefaultServiceFee)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, "b-7", job.BookingID)
	assert.Equal(t, "client-7", job.ClientID)
	assert.Equal(t, "provider-7", job.ProviderID)
	assert.Equal(t, "electrical", job.ServiceType)
	assert.Equal(t, schedule, job.Schedule)
	assert.Equal(t, 5100.0, job.Amount)
	assert.Equal(t, models.BookingStatusPending, job.Status)
}

func TestProjectFromAcceptedBookingDefaultsAmount(t *testing.T) {
	b := &models.Booking{ID: "b-8", ClientID: "c", ProviderID: "p", ServiceType: "cleaning"}

	job := ProjectFromAcceptedBooking(b, models.DefaultServiceFee)
	assert.Equal(t, float64(models.DefaultServiceFee), job.Amount)
}

func TestProjectFromAcceptedBookingPrefersEstimateOverAmount(t *testing.T) {
	b := &models.Booking{ID: "b-9", ClientID: "c", ProviderID: "p", Amount: 1000, EstimatedCost: 1800}

	job := ProjectFromAcceptedBooking(b, models.DefaultServiceFee)
	assert.Equal(t, 1800.0, job.Amount)
}

func TestIssuePaymentRequest(t *testing.T) {
	b := &models.Booking{
		ID:            "b-10",
		ClientID:      "client-10",
		ProviderID:    "provider-10",
		EstimatedCost: 2200,
	}

	p, err := IssuePaymentRequest(b)
	require.NoError(t, err)
	assert.Equal(t, 2200.0, p.Amount)
	assert.Equal(t, models.PaymentStatusPending, p.Status)
	assert.Equal(t, models.PaymentMethodMpesa, p.Method)
	assert.Equal(t, "b-10", p.BookingID)
	assert.Empty(t, p.TransactionRef)
}

func TestIssuePaymentRequestAppliesFloor(t *testing.T) {
	b := &models.Booking{ID: "b-11", ClientID: "c", ProviderID: "p"}

	p, err := IssuePaymentRequest(b)
	require.NoError(t, err)
	assert.Equal(t, float64(models.DefaultServiceFee), p.Amount)
}

func TestIssuePaymentRequestHonorsConfiguredFee(t *testing.T) {
	config.AppConfig.DefaultServiceFee = 5000
	defer func() { config.AppConfig.DefaultServiceFee = 0 }()

	p, err := IssuePaymentRequest(&models.Booking{ID: "b-14", ClientID: "c", ProviderID: "p"})
	require.NoError(t, err)
	assert.Equal(t, 5000.0, p.Amount)
}

func TestIssuePaymentRequestRequiresParties(t *testing.T) {
	_, err := IssuePaymentRequest(&models.Booking{ID: "b-12", ProviderID: "p"})
	assert.Error(t, err)

	_, err = IssuePaymentRequest(&models.Booking{ID: "b-13", ClientID: "c"})
	assert.Error(t, err)
}
