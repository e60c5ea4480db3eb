package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClient struct {
	mu       sync.Mutex
	messages [][]byte
	closed   bool
	fail     bool
}

func (c *fakeClient) WriteMessage(_ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("broken pipe")
	}
	c.messages = append(c.messages, data)
	return nil
}

func (c *fakeClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeClient) received() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

func (c *fakeClient) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, cancel
}

func TestPublishReachesClients(t *testing.T) {
	hub, _ := startHub(t)
	good := &fakeClient{}
	broken := &fakeClient{fail: true}
	require.True(t, hub.Add(good))
	require.True(t, hub.Add(broken))

	hub.Publish(map[string]any{"action": "product_created", "id": 1})

	require.Eventually(t, func() bool { return good.received() == 1 }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, broken.isClosed, time.Second, 5*time.Millisecond)

	var event map[string]any
	require.NoError(t, json.Unmarshal(good.messages[0], &event))
	assert.Equal(t, "product_created", event["action"])
}

func TestRemoveClosesClient(t *testing.T) {
	hub, _ := startHub(t)
	c := &fakeClient{}
	require.True(t, hub.Add(c))

	hub.Remove(c)
	assert.Eventually(t, c.isClosed, time.Second, 5*time.Millisecond)
}

func TestStoppedHubRejectsClients(t *testing.T) {
	hub, cancel := startHub(t)
	c := &fakeClient{}
	require.True(t, hub.Add(c))

	cancel()
	assert.Eventually(t, c.isClosed, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return !hub.Add(&fakeClient{}) }, time.Second, 5*time.Millisecond)
	hub.Remove(c)
}

func TestPublishDoesNotBlockWhenFull(t *testing.T) {
	hub := NewHub(zap.NewNop())
	for i := 0; i < 200; i++ {
		hub.Publish(i)
	}
	assert.Len(t, hub.broadcast, cap(hub.broadcast))
}
