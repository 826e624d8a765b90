package websocket

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHubServer(t *testing.T) (*Hub, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(zerolog.Nop(), nil)
	go hub.Run()

	handler := NewHandler(hub, zerolog.Nop())

	router := gin.New()
	router.GET("/ws", handler.HandleConnection)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *gorilla.Conn {
	t.Helper()
	conn, _, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d connected clients, have %d", want, hub.ClientCount())
}

func readEvent(t *testing.T, conn *gorilla.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(payload, &event))
	return event
}

func TestHub_BroadcastReachesEveryClient(t *testing.T) {
	hub, url := newTestHubServer(t)

	first := dial(t, url)
	second := dial(t, url)
	waitForClients(t, hub, 2)

	hub.Broadcast(EventJobCreated, map[string]string{"id": "job-42", "title": "Backend Engineer"})

	for _, conn := range []*gorilla.Conn{first, second} {
		event := readEvent(t, conn)
		assert.Equal(t, EventJobCreated, event.Event)

		data, ok := event.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "job-42", data["id"])
	}
}

func TestHub_DeleteEventCarriesBareIdentity(t *testing.T) {
	hub, url := newTestHubServer(t)

	conn := dial(t, url)
	waitForClients(t, hub, 1)

	hub.Broadcast(EventJobDeleted, "job-7")

	event := readEvent(t, conn)
	assert.Equal(t, EventJobDeleted, event.Event)
	assert.Equal(t, "job-7", event.Data)
}

func TestHub_ClientCountTracksConnections(t *testing.T) {
	hub, url := newTestHubServer(t)
	assert.Equal(t, 0, hub.ClientCount())

	conn := dial(t, url)
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)
}

func TestHub_BroadcastWithNoClients(t *testing.T) {
	hub, url := newTestHubServer(t)

	// Must not block or panic with an empty client set
	hub.Broadcast(EventJobUpdated, map[string]string{"id": "job-1"})

	conn := dial(t, url)
	waitForClients(t, hub, 1)

	// A client connected after the fact sees only later events
	hub.Broadcast(EventJobCreated, map[string]string{"id": "job-2"})
	event := readEvent(t, conn)
	assert.Equal(t, EventJobCreated, event.Event)
}
