package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fundihub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type workflowFixture struct {
	svc        *DefaultWorkflowService
	bookings   *memBookingRepo
	jobs       *memJobRepo
	payments   *memPaymentRepo
	notifier   *recordingNotifier
	dispatcher *fakeDispatcher
}

func newWorkflowFixture() *workflowFixture {
	f := &workflowFixture{
		bookings:   newMemBookingRepo(),
		jobs:       newMemJobRepo(),
		payments:   newMemPaymentRepo(),
		notifier:   &recordingNotifier{},
		dispatcher: &fakeDispatcher{},
	}
	f.svc = &DefaultWorkflowService{
		Bookings:        f.bookings,
		Jobs:            f.jobs,
		Payments:        f.payments,
		NotificationSvc: f.notifier,
		Dispatcher:      f.dispatcher,
		Logger:          zap.NewNop(),
	}
	return f
}

func (f *workflowFixture) seedBooking(t *testing.T, status models.BookingStatus, estimatedCost float64) *models.Booking {
	t.Helper()
	b := &models.Booking{
		ID:            "b-1",
		ClientID:      "client-1",
		ProviderID:    "provider-1",
		ServiceType:   "plumbing",
		Schedule:      time.Now().Add(48 * time.Hour),
		Status:        status,
		EstimatedCost: estimatedCost,
	}
	require.NoError(t, f.bookings.Create(context.Background(), b))
	return b
}

func TestCreateBookingStartsPending(t *testing.T) {
	f := newWorkflowFixture()

	b, err := f.svc.CreateBooking(context.Background(), CreateBookingInput{
		ClientID:    "client-1",
		ProviderID:  "provider-1",
		ServiceType: "cleaning",
		Schedule:    time.Now().Add(24 * time.Hour).Unix(),
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, b.Status)
	assert.NotEmpty(t, b.ID)

	_, err = f.svc.CreateBooking(context.Background(), CreateBookingInput{ClientID: "client-1"})
	assert.Error(t, err)
}

func TestTransitionUnknownBooking(t *testing.T) {
	f := newWorkflowFixture()

	_, err := f.svc.Transition(context.Background(), "missing", "provider-1", models.RoleProvider, models.BookingStatusAccepted)
	assert.Equal(t, CodeNotFound, ErrCode(err))
}

func TestTransitionUnknownStatus(t *testing.T) {
	f := newWorkflowFixture()
	f.seedBooking(t, models.BookingStatusPending, 0)

	_, err := f.svc.Transition(context.Background(), "b-1", "provider-1", models.RoleProvider, models.BookingStatus("teleported"))
	assert.Equal(t, CodeInvalidStatus, ErrCode(err))
	assert.Equal(t, models.BookingStatusPending, f.bookings.status("b-1"))
}

func TestTransitionInvalidEdgeLeavesStatus(t *testing.T) {
	cases := []struct {
		from   models.BookingStatus
		to     models.BookingStatus
		byRole models.Role
		byID   string
	}{
		{models.BookingStatusPending, models.BookingStatusCompleted, models.RoleProvider, "provider-1"},
		{models.BookingStatusPending, models.BookingStatusInProgress, models.RoleProvider, "provider-1"},
		{models.BookingStatusCompleted, models.BookingStatusAccepted, models.RoleProvider, "provider-1"},
		{models.BookingStatusRejected, models.BookingStatusAccepted, models.RoleProvider, "provider-1"},
		{models.BookingStatusCancelled, models.BookingStatusCancelled, models.RoleClient, "client-1"},
	}
	for _, tc := range cases {
		f := newWorkflowFixture()
		f.seedBooking(t, tc.from, 0)

		_, err := f.svc.Transition(context.Background(), "b-1", tc.byID, tc.byRole, tc.to)
		assert.Equalf(t, CodeInvalidTransition, ErrCode(err), "%s -> %s", tc.from, tc.to)
		assert.Equal(t, tc.from, f.bookings.status("b-1"))
		assert.Empty(t, f.notifier.all())
	}
}

func TestTransitionForbiddenMutatesNothing(t *testing.T) {
	f := newWorkflowFixture()
	f.seedBooking(t, models.BookingStatusPending, 0)

	// A client cannot accept, even the booking's own client.
	_, err := f.svc.Transition(context.Background(), "b-1", "client-1", models.RoleClient, models.BookingStatusAccepted)
	assert.Equal(t, CodeForbidden, ErrCode(err))

	// A different provider cannot accept.
	_, err = f.svc.Transition(context.Background(), "b-1", "provider-9", models.RoleProvider, models.BookingStatusAccepted)
	assert.Equal(t, CodeForbidden, ErrCode(err))

	// A provider cannot cancel.
	_, err = f.svc.Transition(context.Background(), "b-1", "provider-1", models.RoleProvider, models.BookingStatusCancelled)
	assert.Equal(t, CodeForbidden, ErrCode(err))

	assert.Equal(t, models.BookingStatusPending, f.bookings.status("b-1"))
	assert.Zero(t, f.jobs.count())
	assert.Empty(t, f.notifier.all())
}

func TestAcceptCreatesExactlyOneJob(t *testing.T) {
	f := newWorkflowFixture()
	f.seedBooking(t, models.BookingStatusPending, 4200)

	res, err := f.svc.Transition(context.Background(), "b-1", "provider-1", models.RoleProvider, models.BookingStatusAccepted)
	require.NoError(t, err)
	assert.True(t, res.JobCreated)
	assert.Equal(t, models.BookingStatusAccepted, res.Booking.Status)
	assert.Equal(t, 1, f.jobs.count())

	job, err := f.jobs.GetByBookingID(context.Background(), "b-1")
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, "b-1", job.BookingID)
	assert.Equal(t, 4200.0, job.Amount)
	assert.Equal(t, models.BookingStatusPending, job.Status)

	notes := f.notifier.all()
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotificationBookingAccepted, notes[0].Type)
	assert.Equal(t, "client-1", notes[0].Recipient)
}

func TestAcceptRevertsStatusWhenJobCreationFails(t *testing.T) {
	f := newWorkflowFixture()
	f.seedBooking(t, models.BookingStatusPending, 0)
	f.jobs.createErr = errors.New("jobs collection unavailable")

	_, err := f.svc.Transition(context.Background(), "b-1", "provider-1", models.RoleProvider, models.BookingStatusAccepted)
	assert.Equal(t, CodeDownstream, ErrCode(err))
	assert.Equal(t, models.BookingStatusPending, f.bookings.status("b-1"))
	assert.Zero(t, f.jobs.count())
	assert.Empty(t, f.notifier.all())
}

// advancingBookingRepo moves the booking forward immediately after a
// successful accept, standing in for a concurrent writer that slips in
// before any compensating revert.
type advancingBookingRepo struct {
	*memBookingRepo
}

func (r *advancingBookingRepo) UpdateStatusCAS(ctx context.Context, id string, expected, next models.BookingStatus) (bool, error) {
	swapped, err := r.memBookingRepo.UpdateStatusCAS(ctx, id, expected, next)
	if swapped && next == models.BookingStatusAccepted {
		_, _ = r.memBookingRepo.UpdateStatusCAS(ctx, id, models.BookingStatusAccepted, models.BookingStatusInProgress)
	}
	return swapped, err
}

func TestAcceptRevertLostToConcurrentWriterIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	f := newWorkflowFixture()
	f.seedBooking(t, models.BookingStatusPending, 0)
	f.jobs.createErr = errors.New("jobs collection unavailable")
	f.svc.Bookings = &advancingBookingRepo{memBookingRepo: f.bookings}
	f.svc.Logger = zap.New(core)

	_, err := f.svc.Transition(context.Background(), "b-1", "provider-1", models.RoleProvider, models.BookingStatusAccepted)
	assert.Equal(t, CodeDownstream, ErrCode(err))

	// The concurrent writer won; the booking keeps its advanced status and
	// the lost revert is surfaced in the log.
	assert.Equal(t, models.BookingStatusInProgress, f.bookings.status("b-1"))
	assert.Zero(t, f.jobs.count())
	require.Equal(t, 1, logs.FilterMessageSnippet("advanced before revert").Len())
}

func TestConcurrentAcceptHasOneWinner(t *testing.T) {
	f := newWorkflowFixture()
	f.seedBooking(t, models.BookingStatusPending, 0)

	const racers = 8
	errs := make([]error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Transition(context.Background(), "b-1", "provider-1", models.RoleProvider, models.BookingStatusAccepted)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		// Losers see either the CAS conflict or, if they loaded after the
		// winner's write, an invalid accepted->accepted edge.
		code := ErrCode(err)
		assert.Contains(t, []WorkflowErrorCode{CodeConflict, CodeInvalidTransition}, code)
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, f.jobs.count())
	assert.Equal(t, models.BookingStatusAccepted, f.bookings.status("b-1"))
}

func TestRejectNotifiesClient(t *testing.T) {
	f := newWorkflowFixture()
	f.seedBooking(t, models.BookingStatusPending, 0)

	res, err := f.svc.Transition(context.Background(), "b-1", "provider-1", models.RoleProvider, models.BookingStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusRejected, res.Booking.Status)
	assert.False(t, res.JobCreated)
	require.NotNil(t, res.Notification)
	assert.Equal(t, models.NotificationBookingRejected, res.Notification.Type)
	assert.Equal(t, "client-1", res.Notification.Recipient)
	assert.Zero(t, f.jobs.count())
}

func TestCancelNotifiesProvider(t *testing.T) {
	f := newWorkflowFixture()
	f.seedBooking(t, models.BookingStatusAccepted, 0)

	res, err := f.svc.Transition(context.Background(), "b-1", "client-1", models.RoleClient, models.BookingStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, res.Booking.Status)
	require.NotNil(t, res.Notification)
	assert.Equal(t, models.NotificationBookingCancelled, res.Notification.Type)
	assert.Equal(t, "provider-1", res.Notification.Recipient)
	assert.Equal(t, models.RoleProvider, res.Notification.RecipientRole)
}

func TestCancelMirrorsJobStatus(t *testing.T) {
	f := newWorkflowFixture()
	f.seedBooking(t, models.BookingStatusPending, 0)

	_, err := f.svc.Transition(context.Background(), "b-1", "provider-1", models.RoleProvider, models.BookingStatusAccepted)
	require.NoError(t, err)
	_, err = f.svc.Transition(context.Background(), "b-1", "client-1", models.RoleClient, models.BookingStatusCancelled)
	require.NoError(t, err)

	job, err := f.jobs.GetByBookingID(context.Background(), "b-1")
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, models.BookingStatusCancelled, job.Status)
}

func TestCompletedIssuesFloorAmountPayment(t *testing.T) {
	f := newWorkflowFixture()
	f.seedBooking(t, models.BookingStatusInProgress, 0)

	res, err := f.svc.Transition(context.Background(), "b-1", "provider-1", models.RoleProvider, models.BookingStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, res.Booking.Status)
	assert.True(t, res.PaymentCreated)

	p, err := f.payments.GetByBookingID(context.Background(), "b-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, float64(models.DefaultServiceFee), p.Amount)
	assert.Equal(t, models.PaymentStatusPending, p.Status)
	assert.Equal(t, models.PaymentMethodMpesa, p.Method)

	notes := f.notifier.all()
	require.Len(t, notes, 2)
	assert.Equal(t, models.NotificationJobCompleted, notes[0].Type)
	assert.Equal(t, models.NotificationPaymentRequest, notes[1].Type)
	assert.Equal(t, "client-1", notes[0].Recipient)
	assert.Equal(t, "client-1", notes[1].Recipient)
}

func TestCompletedPassesThroughEstimatedCost(t *testing.T) {
	f := newWorkflowFixture()
	f.seedBooking(t, models.BookingStatusInProgress, 2200)

	_, err := f.svc.Transition(context.Background(), "b-1", "provider-1", models.RoleProvider, models.BookingStatusCompleted)
	require.NoError(t, err)

	p, err := f.payments.GetByBookingID(context.Background(), "b-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 2200.0, p.Amount)
}

func TestCompletedPaymentFailureKeepsStatus(t *testing.T) {
	f := newWorkflowFixture()
	f.seedBooking(t, models.BookingStatusInProgress, 0)
	f.payments.createErr = errors.New("payments collection unavailable")

	res, err := f.svc.Transition(context.Background(), "b-1", "provider-1", models.RoleProvider, models.BookingStatusCompleted)
	assert.Equal(t, CodeDownstream, ErrCode(err))

	// Status is never rolled back on payment failure.
	assert.Equal(t, models.BookingStatusCompleted, f.bookings.status("b-1"))
	require.NotNil(t, res)
	assert.False(t, res.PaymentCreated)
	require.NotNil(t, res.Notification)
	assert.Equal(t, models.NotificationPaymentError, res.Notification.Type)
}

func TestCompletedIsIdempotentOnExistingPayment(t *testing.T) {
	f := newWorkflowFixture()
	f.seedBooking(t, models.BookingStatusInProgress, 0)
	require.NoError(t, f.payments.Create(context.Background(), &models.Payment{
		ID:        "p-existing",
		BookingID: "b-1",
		Amount:    500,
		Status:    models.PaymentStatusPending,
	}))

	res, err := f.svc.Transition(context.Background(), "b-1", "provider-1", models.RoleProvider, models.BookingStatusCompleted)
	require.NoError(t, err)
	assert.False(t, res.PaymentCreated)

	p, err := f.payments.GetByBookingID(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, "p-existing", p.ID)
}

func TestDeliveredReflectsConnection(t *testing.T) {
	f := newWorkflowFixture()
	f.seedBooking(t, models.BookingStatusPending, 0)

	res, err := f.svc.Transition(context.Background(), "b-1", "provider-1", models.RoleProvider, models.BookingStatusRejected)
	require.NoError(t, err)
	assert.False(t, res.Delivered)
	require.NotNil(t, res.Notification, "notification persists regardless of delivery")

	f2 := newWorkflowFixture()
	f2.dispatcher.online = true
	f2.seedBooking(t, models.BookingStatusPending, 0)

	res, err = f2.svc.Transition(context.Background(), "b-1", "provider-1", models.RoleProvider, models.BookingStatusRejected)
	require.NoError(t, err)
	assert.True(t, res.Delivered)
	require.Len(t, f2.dispatcher.events, 1)
	assert.Equal(t, "booking_status", f2.dispatcher.events[0].Type)
	assert.Equal(t, "b-1", f2.dispatcher.events[0].Payload["bookingId"])
}

func TestNotificationFailureDoesNotBlockTransition(t *testing.T) {
	f := newWorkflowFixture()
	f.seedBooking(t, models.BookingStatusPending, 0)
	f.notifier.failWith = errors.New("notifications collection unavailable")

	res, err := f.svc.Transition(context.Background(), "b-1", "provider-1", models.RoleProvider, models.BookingStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusRejected, f.bookings.status("b-1"))
	assert.False(t, res.NotificationCreated)
	assert.Nil(t, res.Notification)
}
