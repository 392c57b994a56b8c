package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"neohand/internal/infrastructure/realtime"
	"neohand/pkg/logger"
)

const (
	writeWait = 10 * time.Second
	sendQueue = 256
)

// Client is one browser connection pinned to a single feed topic.
type Client struct {
	Topic string
	Conn  *websocket.Conn
	Send  chan []byte

	sub *realtime.Subscription
}

// Manager bridges hub topics to WebSocket clients: every event published on
// a topic is serialized once per client and pushed down its connection.
type Manager struct {
	hub *realtime.Hub

	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewManager(hub *realtime.Hub) *Manager {
	return &Manager{
		hub:     hub,
		clients: make(map[*Client]struct{}),
	}
}

// Serve attaches conn to the given topic feed and blocks until the
// connection drops. The hub subscription is released on the way out, so a
// client that goes away never leaves a stale listener behind.
func (m *Manager) Serve(conn *websocket.Conn, topic string) {
	client := &Client{
		Topic: topic,
		Conn:  conn,
		Send:  make(chan []byte, sendQueue),
		sub:   m.hub.Subscribe(topic, sendQueue),
	}

	m.mu.Lock()
	m.clients[client] = struct{}{}
	m.mu.Unlock()

	go client.writePump()

	forwardDone := make(chan struct{})
	go func() {
		client.forward()
		close(forwardDone)
	}()

	client.readPump()

	m.mu.Lock()
	delete(m.clients, client)
	m.mu.Unlock()

	// Release the hub subscription first; forward exits once its channel
	// closes, and only then is the send queue safe to close.
	client.sub.Close()
	<-forwardDone
	close(client.Send)
}

// ClientCount reports the number of connected clients.
func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// forward turns hub events into JSON frames on the send queue.
func (c *Client) forward() {
	for event := range c.sub.C {
		frame, err := json.Marshal(map[string]interface{}{
			"kind":    event.Kind,
			"payload": event.Payload,
		})
		if err != nil {
			logger.Error("encoding feed event: %v", err)
			continue
		}
		select {
		case c.Send <- frame:
		default:
			// Slow socket; the hub drops the subscription on the next publish.
		}
	}
}

// readPump drains inbound frames. The feed is one-way; reads exist only to
// detect the close handshake.
func (c *Client) readPump() {
	defer c.Conn.Close()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("websocket read error on %s: %v", c.Topic, err)
			}
			return
		}
	}
}

// writePump sends queued frames to the connection.
func (c *Client) writePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Warn("websocket write error on %s: %v", c.Topic, err)
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
