package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"storefront-be/internal/dto"
	"storefront-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub(nil, logger.NewZapLoggerFrom(zap.NewNop()))
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, cancel
}

func join(hub *Hub, sessionID uuid.UUID, buffer int) *Client {
	c := &Client{Hub: hub, SessionID: sessionID, Send: make(chan []byte, buffer)}
	hub.register <- c
	return c
}

func receive(t *testing.T, c *Client) ([]byte, bool) {
	t.Helper()
	select {
	case msg, ok := <-c.Send:
		return msg, ok
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return nil, false
	}
}

func TestHub_NotifyCartUpdatedReachesEveryTabOfSession(t *testing.T) {
	hub, _ := startHub(t)
	session := uuid.New()
	tab1 := join(hub, session, 4)
	tab2 := join(hub, session, 4)
	stranger := join(hub, uuid.New(), 4)

	hub.NotifyCartUpdated(session, &dto.CartResponse{ItemCount: 3, Total: decimal.NewFromInt(12)})

	for _, c := range []*Client{tab1, tab2} {
		raw, ok := receive(t, c)
		require.True(t, ok)
		var msg dto.CartUpdatedMessage
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, MessageCartUpdated, msg.Type)
		assert.Equal(t, 3, msg.Cart.ItemCount)
	}

	assert.Equal(t, 2, hub.ConnectionCount(session))
	select {
	case <-stranger.Send:
		t.Fatal("other session must not receive the push")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_SlowClientIsDroppedOnce(t *testing.T) {
	hub, _ := startHub(t)
	session := uuid.New()
	slow := join(hub, session, 1)
	slow.Send <- []byte("unread")

	hub.NotifyCartUpdated(session, &dto.CartResponse{})

	assert.Eventually(t, func() bool { return hub.ConnectionCount(session) == 0 }, time.Second, 10*time.Millisecond)
	msg, ok := receive(t, slow)
	require.True(t, ok)
	assert.Equal(t, "unread", string(msg))
	_, ok = receive(t, slow)
	assert.False(t, ok)

	// A late unregister for the same client must not close Send again.
	hub.unregister <- slow
	assert.Equal(t, 0, hub.ConnectionCount(session))
}

func TestHub_StopClosesClients(t *testing.T) {
	hub, cancel := startHub(t)
	c := join(hub, uuid.New(), 1)

	cancel()

	_, ok := receive(t, c)
	assert.False(t, ok)
	assert.Equal(t, 0, hub.ConnectionCount(c.SessionID))

	// Pushes after shutdown are dropped without blocking.
	hub.NotifyCartUpdated(c.SessionID, &dto.CartResponse{})
}
