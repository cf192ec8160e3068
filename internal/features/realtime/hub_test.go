package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"taskhive/internal/events"
	"taskhive/internal/util/logger"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Hub_PublishReachesSubscribers(t *testing.T) {
	hub := NewHub(logger.GetLogger())
	upgrader := websocket.Upgrader{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Subscribe("project:test", conn)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer client.Close()

	require.Eventually(t, func() bool {
		return hub.SubscriberCount("project:test") == 1
	}, time.Second, 10*time.Millisecond)

	hub.Publish("project:test", events.Event{
		Type:    events.TaskCreated,
		Message: "Task created",
	})

	var received events.Event
	require.NoError(t, client.ReadJSON(&received))
	assert.Equal(t, events.TaskCreated, received.Type)
	assert.Equal(t, "Task created", received.Message)
}

func Test_Hub_ConcurrentPublishAndPing_SerializesWrites(t *testing.T) {
	hub := NewHub(logger.GetLogger())
	upgrader := websocket.Upgrader{}

	subscribed := make(chan *client, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		subscribed <- hub.Subscribe("project:busy", conn)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	dialed, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer dialed.Close()

	cl := <-subscribed

	// Fan-out and keepalive pings race on the same connection; the
	// per-client write mutex must keep the frames intact.
	const messages = 50
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range messages {
			hub.Publish("project:busy", events.Event{Type: events.TaskUpdated, Message: "tick"})
		}
	}()
	go func() {
		defer wg.Done()
		for range messages {
			if err := cl.writePing(); err != nil {
				return
			}
		}
	}()

	require.NoError(t, dialed.SetReadDeadline(time.Now().Add(5*time.Second)))
	for received := 0; received < messages; received++ {
		var event events.Event
		require.NoError(t, dialed.ReadJSON(&event))
		assert.Equal(t, events.TaskUpdated, event.Type)
	}
	wg.Wait()

	assert.Equal(t, 1, hub.SubscriberCount("project:busy"))
}

func Test_Hub_PublishToEmptyChannel_IsNoop(t *testing.T) {
	hub := NewHub(logger.GetLogger())

	hub.Publish("project:nobody", events.Event{Type: events.TaskUpdated})

	assert.Equal(t, 0, hub.SubscriberCount("project:nobody"))
}

func Test_Hub_UnsubscribeRemovesChannelWhenEmpty(t *testing.T) {
	hub := NewHub(logger.GetLogger())
	upgrader := websocket.Upgrader{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Subscribe("user:test", conn)
		hub.Unsubscribe("user:test", conn)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer client.Close()

	require.Eventually(t, func() bool {
		return hub.SubscriberCount("user:test") == 0
	}, time.Second, 10*time.Millisecond)
}
