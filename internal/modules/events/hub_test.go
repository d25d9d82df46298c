package events

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestConn returns both ends of a live websocket: the server side to
// register with the hub, the client side to read published events.
func newTestConn(t *testing.T) (server *websocket.Conn, client *websocket.Conn) {
	t.Helper()

	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	accepted := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			accepted <- nil
			return
		}
		accepted <- conn
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	server = <-accepted
	require.NotNil(t, server, "websocket upgrade failed")
	return server, client
}

func TestPublishConcurrentWriters(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	server, client := newTestConn(t)
	hub.Register(1, server)

	const writers = 8
	const perWriter = 5

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				hub.Publish("task.updated", map[string]interface{}{"writer": n, "seq": j})
			}
		}(i)
	}

	require.NoError(t, client.SetReadDeadline(time.Now().Add(5*time.Second)))
	for received := 0; received < writers*perWriter; received++ {
		var ev Event
		require.NoError(t, client.ReadJSON(&ev), "frame %d", received)
		assert.Equal(t, "task.updated", ev.Kind)
	}
	wg.Wait()

	assert.Equal(t, 1, hub.OnlineCount(), "healthy connection must not be dropped")
}

func TestReconnectSurvivesStaleUnregister(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	oldServer, _ := newTestConn(t)
	newServer, newClient := newTestConn(t)

	hub.Register(7, oldServer)
	hub.Register(7, newServer)

	// The replaced connection's read loop unwinds and tears itself down;
	// the fresh connection must stay registered.
	hub.Unregister(7, oldServer)
	assert.Equal(t, 1, hub.OnlineCount())

	hub.Publish("lead.confirmed", map[string]interface{}{"lead_id": int64(1)})

	require.NoError(t, newClient.SetReadDeadline(time.Now().Add(5*time.Second)))
	var ev Event
	require.NoError(t, newClient.ReadJSON(&ev))
	assert.Equal(t, "lead.confirmed", ev.Kind)

	hub.Unregister(7, newServer)
	assert.Equal(t, 0, hub.OnlineCount())
}
