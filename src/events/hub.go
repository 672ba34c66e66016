// Package events streams sync and reminder notifications to browser clients
// over websockets. Processes that do not serve websockets, such as the worker,
// hand events to the API through a Redis channel.
package events

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"famwealth/src/schemas"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 16
)

type client struct {
	userID string
	conn   *websocket.Conn
	send   chan schemas.Event
}

// Hub keeps the open websocket connections per user and fans events out to
// the connections of the event's user.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]map[*client]struct{}
	upgrader websocket.Upgrader
	logger   *logrus.Logger
}

func NewHub(logger *logrus.Logger, allowedOrigins []string) *Hub {
	return &Hub{
		clients: make(map[string]map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(r *http.Request) bool { return true }
	}
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set["*"] || set[origin]
	}
}

// Publish delivers event to every connection of event.UserID. A client whose
// buffer is full is disconnected instead of blocking the publisher.
func (h *Hub) Publish(_ context.Context, event schemas.Event) error {
	h.mu.RLock()
	var slow []*client
	for c := range h.clients[event.UserID] {
		select {
		case c.send <- event:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.WithField("user_id", c.userID).Warn("dropping slow websocket client")
		h.unregister(c)
	}
	return nil
}

// Connections reports how many sockets userID has open.
func (h *Hub) Connections(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Serve upgrades the request and streams userID's events until the client
// goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Errorf("Error upgrading to WebSocket: %v", err)
		return
	}
	c := &client{userID: userID, conn: conn, send: make(chan schemas.Event, sendBuffer)}
	h.register(c)

	go h.writePump(c)
	go h.readPump(c)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.userID] == nil {
		h.clients[c.userID] = make(map[*client]struct{})
	}
	h.clients[c.userID][c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, ok := conns[c]; !ok {
		return
	}
	delete(conns, c)
	if len(conns) == 0 {
		delete(h.clients, c.userID)
	}
	close(c.send)
}

// Close disconnects every client. The write pumps send a close frame as their
// queues are closed.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, conns := range h.clients {
		for c := range conns {
			close(c.send)
		}
		delete(h.clients, userID)
	}
}

// readPump only exists to notice closed connections and answer pings.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case event, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				h.logger.WithField("user_id", c.userID).Errorf("Error sending message to client: %v", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// publisher is what the relay needs from the Redis handler.
type publisher interface {
	Publish(ctx context.Context, channel string, value interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
}

// Channel is the Redis pub/sub channel events travel on between processes.
const Channel = "famwealth:events"

// RedisPublisher sends events to the Redis channel for the API's relay.
type RedisPublisher struct {
	redis publisher
}

func NewRedisPublisher(redis publisher) *RedisPublisher {
	return &RedisPublisher{redis: redis}
}

func (p *RedisPublisher) Publish(ctx context.Context, event schemas.Event) error {
	return p.redis.Publish(ctx, Channel, event)
}

// Relay forwards events from the Redis channel into the hub until ctx ends.
// It returns once the subscription is established.
func Relay(ctx context.Context, redis publisher, hub *Hub) error {
	messages, err := redis.Subscribe(ctx, Channel)
	if err != nil {
		return err
	}
	go func() {
		for payload := range messages {
			var event schemas.Event
			if err := json.Unmarshal(payload, &event); err != nil {
				hub.logger.Warnf("discarding malformed event: %v", err)
				continue
			}
			_ = hub.Publish(ctx, event)
		}
	}()
	return nil
}
