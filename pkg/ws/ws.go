// Package ws fans server-side events out to WebSocket subscribers using
// gorilla/websocket. Every connection is registered under a topic (the
// seller id for the order feed) and only receives messages published to it.
//
//	hub := ws.NewHub()
//	go hub.Run(ctx)
//
//	ws.Upgrade(w, r, hub, sellerID)
//	hub.Publish(sellerID, payload)
package ws

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shashiranjanraj/salesdesk/pkg/logger"
	"github.com/shashiranjanraj/salesdesk/pkg/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024 // subscribers only send control frames
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// SetCheckOrigin replaces the default (allow-all) origin checker.
func SetCheckOrigin(fn func(r *http.Request) bool) {
	upgrader.CheckOrigin = fn
}

// ─── Client ───────────────────────────────────────────────────────────────────

// Client is a single subscribed connection.
type Client struct {
	hub   *Hub
	conn  *websocket.Conn
	topic string
	send  chan []byte
}

// readPump only services pongs and close frames; inbound data is discarded.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("ws: unexpected close", "topic", c.topic, "error", err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ─── Hub ──────────────────────────────────────────────────────────────────────

type envelope struct {
	topic string
	data  []byte
}

// Hub owns the set of connections. Only Run touches the set.
type Hub struct {
	topics     map[string]map[*Client]struct{}
	broadcast  chan envelope
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	count      atomic.Int64
}

// NewHub creates a Hub. Call Run in its own goroutine at startup.
func NewHub() *Hub {
	return &Hub{
		topics:     make(map[string]map[*Client]struct{}),
		broadcast:  make(chan envelope, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run is the hub event loop. It returns when ctx is cancelled, closing
// every connection.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, set := range h.topics {
				for c := range set {
					h.drop(c)
				}
			}
			return

		case c := <-h.register:
			set, ok := h.topics[c.topic]
			if !ok {
				set = make(map[*Client]struct{})
				h.topics[c.topic] = set
			}
			set[c] = struct{}{}
			h.count.Add(1)
			metrics.FeedConnections.Inc()
			logger.Debug("ws: client connected", "topic", c.topic, "total", h.count.Load())

		case c := <-h.unregister:
			h.drop(c)

		case env := <-h.broadcast:
			for c := range h.topics[env.topic] {
				select {
				case c.send <- env.data:
				default:
					h.drop(c) // too slow to keep up
				}
			}
		}
	}
}

func (h *Hub) drop(c *Client) {
	set, ok := h.topics[c.topic]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.topics, c.topic)
	}
	close(c.send)
	h.count.Add(-1)
	metrics.FeedConnections.Dec()
}

// Publish queues data for every subscriber of topic. It never blocks; when
// the hub is backed up the message is dropped.
func (h *Hub) Publish(topic string, data []byte) {
	select {
	case h.broadcast <- envelope{topic: topic, data: data}:
	default:
		logger.Warn("ws: broadcast queue full, message dropped", "topic", topic)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int { return int(h.count.Load()) }

// ─── Upgrade ─────────────────────────────────────────────────────────────────

// Upgrade upgrades an HTTP connection to a WebSocket subscribed to topic.
func Upgrade(w http.ResponseWriter, r *http.Request, hub *Hub, topic string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("ws: upgrade failed", "error", err)
		return
	}

	c := &Client{hub: hub, conn: conn, topic: topic, send: make(chan []byte, 64)}
	select {
	case hub.register <- c:
	case <-hub.done:
		conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}
