// Package live pushes group membership changes to websocket subscribers.
package live

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	EventJoined  = "joined"
	EventLeft    = "left"
	EventDeleted = "deleted"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 32
)

var ErrStopped = errors.New("live hub stopped")

// Event is broadcast to every subscriber of a group.
type Event struct {
	Type        string    `json:"type"`
	GroupID     string    `json:"groupId"`
	UserID      string    `json:"userId,omitempty"`
	MemberCount int       `json:"memberCount"`
	At          time.Time `json:"at"`
}

// client is a websocket connection or, with conn nil, an in-process subscriber.
type client struct {
	conn   *websocket.Conn
	send   chan []byte
	room   string
	userID string
}

type broadcastMsg struct {
	room string
	data []byte
}

// Hub fans events out per group. All room state is owned by Run.
type Hub struct {
	rooms      map[string]map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan broadcastMsg
	done       chan struct{}
	upgrader   websocket.Upgrader
}

// NewHub accepts websocket upgrades from origins; an empty list accepts any origin.
func NewHub(origins []string) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan broadcastMsg),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(origins) == 0 || slices.Contains(origins, origin)
			},
		},
	}
}

// Run serves the hub until ctx is cancelled, then closes every subscriber.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case c := <-h.register:
			if h.rooms[c.room] == nil {
				h.rooms[c.room] = make(map[*client]bool)
			}
			h.rooms[c.room][c] = true

		case c := <-h.unregister:
			h.drop(c)

		case m := <-h.broadcast:
			for c := range h.rooms[m.room] {
				select {
				case c.send <- m.data:
				default:
					// slow subscriber
					h.drop(c)
				}
			}

		case <-ctx.Done():
			for _, conns := range h.rooms {
				for c := range conns {
					h.drop(c)
				}
			}
			return
		}
	}
}

func (h *Hub) drop(c *client) {
	conns := h.rooms[c.room]
	if _, ok := conns[c]; !ok {
		return
	}
	delete(conns, c)
	close(c.send)
	if len(conns) == 0 {
		delete(h.rooms, c.room)
	}
}

// Publish delivers e to the subscribers of e.GroupID. It is a no-op once the hub stopped.
func (h *Hub) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	data, err := json.Marshal(e)
	if err != nil {
		log.Error().Err(err).Str("group_id", e.GroupID).Msg("marshal live event")
		return
	}
	select {
	case h.broadcast <- broadcastMsg{room: e.GroupID, data: data}:
	case <-h.done:
	}
}

// Subscribe registers an in-process subscriber. cancel must be called to release it.
func (h *Hub) Subscribe(room string) (events <-chan []byte, cancel func(), err error) {
	c := &client{send: make(chan []byte, sendBuffer), room: room}
	if err := h.add(c); err != nil {
		return nil, nil, err
	}
	return c.send, func() { h.remove(c) }, nil
}

// Serve upgrades the request and streams the events of room to it.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, room, userID string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader already replied
		return err
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer), room: room, userID: userID}
	if err := h.add(c); err != nil {
		conn.Close()
		return err
	}
	log.Debug().Str("group_id", room).Str("user_id", userID).Msg("live subscriber connected")
	go h.writePump(c)
	go h.readPump(c)
	return nil
}

func (h *Hub) add(c *client) error {
	select {
	case h.register <- c:
		return nil
	case <-h.done:
		return ErrStopped
	}
}

func (h *Hub) remove(c *client) {
	select {
	case h.unregister <- c:
	case <-h.done:
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

// readPump discards inbound frames; the stream is server to client only.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.remove(c)
		c.conn.Close()
		log.Debug().Str("group_id", c.room).Str("user_id", c.userID).Msg("live subscriber disconnected")
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
