package booking

import (
	"context"
	"sync"

	"fundihub/models"
	"fundihub/services/realtime"
)

// memBookingRepo is an in-memory BookingRepository with a mutex-guarded
// compare-and-swap, so concurrent transition tests exercise real CAS
// semantics.
type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
	casErr   error
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *memBookingRepo) Create(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *memBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *memBookingRepo) UpdateStatusCAS(_ context.Context, id string, expected, next models.BookingStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.casErr != nil {
		return false, r.casErr
	}
	b, ok := r.bookings[id]
	if !ok || b.Status != expected {
		return false, nil
	}
	b.Status = next
	return true, nil
}

func (r *memBookingRepo) status(id string) models.BookingStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bookings[id].Status
}

type memJobRepo struct {
	mu        sync.Mutex
	jobs      map[string]*models.Job // keyed by booking id
	createErr error
	creates   int
}

func newMemJobRepo() *memJobRepo {
	return &memJobRepo{jobs: make(map[string]*models.Job)}
}

func (r *memJobRepo) Create(_ context.Context, j *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.creates++
	cp := *j
	r.jobs[j.BookingID] = &cp
	return nil
}

func (r *memJobRepo) GetByBookingID(_ context.Context, bookingID string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[bookingID]
	if !ok {
		return nil, nil
	}
	cp := *j
	return &cp, nil
}

func (r *memJobRepo) UpdateStatusByBookingID(_ context.Context, bookingID string, status models.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j, ok := r.jobs[bookingID]; ok {
		j.Status = status
	}
	return nil
}

func (r *memJobRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.jobs)
}

type memPaymentRepo struct {
	mu        sync.Mutex
	payments  map[string]*models.Payment // keyed by booking id
	createErr error
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{payments: make(map[string]*models.Payment)}
}

func (r *memPaymentRepo) Create(_ context.Context, p *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	cp := *p
	r.payments[p.BookingID] = &cp
	return nil
}

func (r *memPaymentRepo) GetByID(_ context.Context, id string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memPaymentRepo) GetByBookingID(_ context.Context, bookingID string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[bookingID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPaymentRepo) UpdateStatus(_ context.Context, id string, status models.PaymentStatus, ref string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.ID == id {
			p.Status = status
			if ref != "" {
				p.TransactionRef = ref
			}
			return nil
		}
	}
	return nil
}

// recordingNotifier captures notifications instead of persisting them.
type recordingNotifier struct {
	mu       sync.Mutex
	sent     []*models.Notification
	failWith error
}

func (n *recordingNotifier) Notify(_ context.Context, recipient string, role models.Role, ntype models.NotificationType, title, message string, data map[string]any) (*models.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failWith != nil {
		return nil, n.failWith
	}
	note := &models.Notification{
		ID:            "n-" + string(ntype),
		Recipient:     recipient,
		RecipientRole: role,
		Type:          ntype,
		Title:         title,
		Message:       message,
		Data:          data,
	}
	n.sent = append(n.sent, note)
	return note, nil
}

func (n *recordingNotifier) GetByID(context.Context, string) (*models.Notification, error) {
	return nil, nil
}

func (n *recordingNotifier) ListForRecipient(context.Context, string, models.Role) ([]models.Notification, error) {
	return nil, nil
}

func (n *recordingNotifier) MarkRead(context.Context, string) error { return nil }

func (n *recordingNotifier) all() []*models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]*models.Notification, len(n.sent))
	copy(out, n.sent)
	return out
}

// fakeDispatcher simulates the realtime hub; online controls whether sends
// succeed.
type fakeDispatcher struct {
	mu     sync.Mutex
	online bool
	events []realtime.Event
}

func (d *fakeDispatcher) Send(_ string, event realtime.Event) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.online {
		return false
	}
	d.events = append(d.events, event)
	return true
}
