package realtime

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type scriptConn struct {
	writes   []any
	writeErr error
	closed   bool
}

func (c *scriptConn) WriteJSON(v any) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	c.writes = append(c.writes, v)
	return nil
}

func (c *scriptConn) Close() error {
	c.closed = true
	return nil
}

func TestSendToOfflineUser(t *testing.T) {
	h := NewHub(zap.NewNop())

	delivered := h.Send("nobody", Event{Type: "booking_status"})
	assert.False(t, delivered)
}

func TestSendToRegisteredConnection(t *testing.T) {
	h := NewHub(zap.NewNop())
	conn := &scriptConn{}
	h.Register("user-1", conn)

	assert.True(t, h.Online("user-1"))
	delivered := h.Send("user-1", Event{Type: "booking_status", Payload: map[string]any{"bookingId": "b-1"}})
	assert.True(t, delivered)
	require.Len(t, conn.writes, 1)
	assert.Equal(t, "booking_status", conn.writes[0].(Event).Type)
}

func TestSendWriteFailureDropsConnection(t *testing.T) {
	h := NewHub(zap.NewNop())
	conn := &scriptConn{writeErr: errors.New("broken pipe")}
	h.Register("user-1", conn)

	delivered := h.Send("user-1", Event{Type: "booking_status"})
	assert.False(t, delivered)
	assert.True(t, conn.closed)
	assert.False(t, h.Online("user-1"))
}

func TestRegisterReplacesStaleConnection(t *testing.T) {
	h := NewHub(zap.NewNop())
	old := &scriptConn{}
	fresh := &scriptConn{}

	h.Register("user-1", old)
	h.Register("user-1", fresh)
	assert.True(t, old.closed)

	delivered := h.Send("user-1", Event{Type: "booking_status"})
	assert.True(t, delivered)
	assert.Empty(t, old.writes)
	assert.Len(t, fresh.writes, 1)
}

// overlapConn fails the writer-exclusivity contract check if two WriteJSON
// calls ever run at the same time.
type overlapConn struct {
	inFlight int32
	overlaps int32
	writes   int32
}

func (c *overlapConn) WriteJSON(any) error {
	if atomic.AddInt32(&c.inFlight, 1) > 1 {
		atomic.AddInt32(&c.overlaps, 1)
	}
	time.Sleep(time.Millisecond)
	atomic.AddInt32(&c.inFlight, -1)
	atomic.AddInt32(&c.writes, 1)
	return nil
}

func (c *overlapConn) Close() error { return nil }

func TestSendSerializesWritesPerConnection(t *testing.T) {
	h := NewHub(zap.NewNop())
	conn := &overlapConn{}
	h.Register("client-1", conn)

	const senders = 16
	var wg sync.WaitGroup
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, h.Send("client-1", Event{Type: "booking_status"}))
		}()
	}
	wg.Wait()

	assert.Zero(t, atomic.LoadInt32(&conn.overlaps), "writes to one connection must not overlap")
	assert.Equal(t, int32(senders), atomic.LoadInt32(&conn.writes))
}

func TestUnregisterConnRemovesByIdentity(t *testing.T) {
	h := NewHub(zap.NewNop())
	conn := &scriptConn{}
	h.Register("user-1", conn)

	h.UnregisterConn(conn)
	assert.False(t, h.Online("user-1"))

	// Unregistering a stale handle must not evict a newer connection.
	fresh := &scriptConn{}
	h.Register("user-1", fresh)
	h.UnregisterConn(conn)
	assert.True(t, h.Online("user-1"))
}
