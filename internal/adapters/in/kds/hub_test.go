package kds_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"restaurant/internal/adapters/in/kds"
	"restaurant/internal/core/domain/model/order"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHubServer(t *testing.T) (*kds.Hub, string) {
	t.Helper()

	hub := kds.NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.ServeWS(w, r)
	}))
	t.Cleanup(srv.Close)

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestHub_BroadcastsEventsToEveryDisplay(t *testing.T) {
	hub, url := newHubServer(t)
	first := dial(t, url)
	second := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	events := make(chan order.Event, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx, events)

	events <- order.Event{
		Type:    order.EventStatusChanged,
		OrderID: "5f0c7a9e-1111-4c2b-9a43-0a1b2c3d4e5f",
		Number:  "ORD-1-abc",
		Status:  "processing",
	}

	for _, conn := range []*websocket.Conn{first, second} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, payload, err := conn.ReadMessage()
		require.NoError(t, err)

		var msg kds.Message
		require.NoError(t, json.Unmarshal(payload, &msg))
		assert.Equal(t, "order.status_changed", msg.Event)
		assert.Equal(t, "ORD-1-abc", msg.Data.Number)
		assert.Equal(t, "processing", msg.Data.Status)
	}
}

func TestHub_ForgetsDisconnectedDisplays(t *testing.T) {
	hub, url := newHubServer(t)
	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	_ = conn.Close()

	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_RunDisconnectsDisplaysOnShutdown(t *testing.T) {
	hub, url := newHubServer(t)
	dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	events := make(chan order.Event)
	close(events)
	hub.Run(context.Background(), events)

	assert.Equal(t, 0, hub.ClientCount())
}
