package events

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeConn struct {
	mu      sync.Mutex
	written []interface{}
	fail    bool
	closed  bool
}

func (f *fakeConn) SetWriteDeadline(time.Time) error { return nil }

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("broken pipe")
	}
	f.written = append(f.written, v)
	return nil
}

func (f *fakeConn) WriteMessage(int, []byte) error { return nil }

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func TestBroadcast(t *testing.T) {
	hub := NewHub()
	good := &fakeConn{}
	bad := &fakeConn{fail: true}

	hub.Add(good)
	hub.Add(bad)
	assert.Equal(t, 2, hub.Len())

	hub.Broadcast("products", "created", 7)

	assert.Equal(t, []interface{}{Change{Type: "created", Resource: "products", ID: 7}}, good.written)
	assert.True(t, bad.closed)
	assert.Equal(t, 1, hub.Len())
}

func TestBroadcastWithoutClients(t *testing.T) {
	hub := NewHub()
	hub.Broadcast("tags", "deleted", 1)
	assert.Equal(t, 0, hub.Len())
}

func TestRemoveIsIdempotent(t *testing.T) {
	hub := NewHub()
	conn := &fakeConn{}
	client := hub.Add(conn)

	hub.Remove(client)
	hub.Remove(client)

	assert.True(t, conn.closed)
	assert.Equal(t, 0, hub.Len())
}
