package websocket

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/anjiri1684/review_board/logger"
	"github.com/anjiri1684/review_board/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu      sync.Mutex
	events  []Event
	failing bool
	closed  bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return errors.New("broken pipe")
	}
	c.events = append(c.events, v.(Event))
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) snapshot() ([]Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.events...), c.closed
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func TestHub_BroadcastsReviewCreated(t *testing.T) {
	hub := startHub(t)
	first, second := &fakeConn{}, &fakeConn{}
	hub.Register(NewClient(uuid.New(), first))
	hub.Register(NewClient(uuid.New(), second))
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	review := models.Review{ID: uuid.New(), CustomerName: "Ana", Country: "PT", Rating: 4}
	hub.ReviewCreated(review)

	for _, conn := range []*fakeConn{first, second} {
		require.Eventually(t, func() bool {
			events, _ := conn.snapshot()
			return len(events) == 1
		}, time.Second, 5*time.Millisecond)
		events, _ := conn.snapshot()
		assert.Equal(t, EventReviewCreated, events[0].Type)
		assert.Equal(t, review.ID, events[0].Review.ID)
	}
}

func TestHub_DropsFailingClients(t *testing.T) {
	hub := startHub(t)
	broken := &fakeConn{failing: true}
	hub.Register(NewClient(uuid.New(), broken))
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.ReviewCreated(models.Review{ID: uuid.New()})

	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
	_, closed := broken.snapshot()
	assert.True(t, closed)
}

func TestHub_Unregister(t *testing.T) {
	hub := startHub(t)
	client := NewClient(uuid.New(), &fakeConn{})
	hub.Register(client)
	hub.Unregister(client)

	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHub_StoppedHubDoesNotBlock(t *testing.T) {
	hub := NewHub(logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	conn := &fakeConn{}
	client := NewClient(uuid.New(), conn)
	require.True(t, hub.Register(client))

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}
	_, closed := conn.snapshot()
	assert.True(t, closed)

	returned := make(chan bool, 1)
	go func() {
		hub.Unregister(client)
		returned <- hub.Register(NewClient(uuid.New(), &fakeConn{}))
	}()

	select {
	case registered := <-returned:
		assert.False(t, registered)
	case <-time.After(time.Second):
		t.Fatal("Unregister or Register blocked on a stopped hub")
	}
}
