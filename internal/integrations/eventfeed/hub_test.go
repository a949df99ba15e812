package eventfeed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffjr007/locahubaju-project/internal/domain"
	"github.com/jeffjr007/locahubaju-project/internal/integrations/notifier"
	"github.com/jeffjr007/locahubaju-project/pkg/logger"
)

func startServer(t *testing.T, hub *Hub) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Serve(conn, "admin-1")
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func notification() notifier.Notification {
	event := domain.Event{
		Kind:        domain.EventCreated,
		Reservation: domain.Reservation{ID: "r-1", SpaceID: "sala-1", UserID: "u-1"},
	}
	return notifier.Notification{Event: event, Payload: notifier.BuildPayload(event, time.UTC)}
}

func TestHub_SendWithoutSubscribersIsSkipped(t *testing.T) {
	hub := NewHub(logger.Discard())

	err := hub.Send(context.Background(), notification())
	assert.ErrorIs(t, err, notifier.ErrSkipped)
	assert.Equal(t, "websocket", hub.Name())
}

func TestHub_BroadcastsToAllClients(t *testing.T) {
	hub := NewHub(logger.Discard())
	url := startServer(t, hub)

	first := dial(t, url)
	second := dial(t, url)
	require.Eventually(t, func() bool { return hub.Clients() == 2 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, hub.Send(context.Background(), notification()))

	for _, conn := range []*websocket.Conn{first, second} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var msg struct {
			Type    string                 `json:"type"`
			Payload map[string]interface{} `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, "created", msg.Type)
		assert.Equal(t, "r-1", msg.Payload["reservationId"])
		assert.Equal(t, notifier.ActionCreated, msg.Payload["acao"])
	}
}

func TestHub_UnregistersOnDisconnect(t *testing.T) {
	hub := NewHub(logger.Discard())
	url := startServer(t, hub)

	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_CloseDisconnectsClients(t *testing.T) {
	hub := NewHub(logger.Discard())
	url := startServer(t, hub)

	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, hub.Close())
	assert.Equal(t, 0, hub.Clients())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)

	// новые подключения после Close сразу закрываются
	late := dial(t, url)
	require.NoError(t, late.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = late.ReadMessage()
	assert.Error(t, err)
	assert.Equal(t, 0, hub.Clients())
}
