package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"gymdesk/internal/logger"
	"gymdesk/internal/metrics"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192

	channelPrefix = "gym:"
)

// Hub tracks websocket clients per gym room and relays events between
// instances through Redis pub/sub. Delivery is fire-and-forget: a slow
// client is dropped, not waited for.
type Hub struct {
	mu    sync.Mutex
	rooms map[int]map[*Client]struct{}
	redis *redis.Client
}

func NewHub(rdb *redis.Client) *Hub {
	return &Hub{
		rooms: make(map[int]map[*Client]struct{}),
		redis: rdb,
	}
}

// Run consumes the gym:* pattern and fans incoming events out to local
// rooms. Blocks until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	sub := h.redis.PSubscribe(ctx, channelPrefix+"*")
	defer sub.Close()

	logger.Info("Chat hub started")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Chat hub stopped")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			gymID, err := strconv.Atoi(strings.TrimPrefix(msg.Channel, channelPrefix))
			if err != nil {
				continue
			}
			h.broadcastLocal(gymID, []byte(msg.Payload))
		}
	}
}

// Publish pushes an event to every instance's room for the gym,
// including this one.
func (h *Hub) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	return h.redis.Publish(ctx, fmt.Sprintf("%s%d", channelPrefix, ev.GymID), payload).Err()
}

func (h *Hub) broadcastLocal(gymID int, payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.rooms[gymID] {
		select {
		case c.send <- payload:
		default:
			// Slow consumer, cut it loose.
			h.removeLocked(c)
		}
	}
}

func (h *Hub) join(c *Client, gymID int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c.gymID != 0 {
		if room, ok := h.rooms[c.gymID]; ok {
			delete(room, c)
			if len(room) == 0 {
				delete(h.rooms, c.gymID)
			}
		}
	} else {
		metrics.WebsocketClients.Inc()
	}

	c.gymID = gymID
	if h.rooms[gymID] == nil {
		h.rooms[gymID] = make(map[*Client]struct{})
	}
	h.rooms[gymID][c] = struct{}{}
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *Client) {
	if room, ok := h.rooms[c.gymID]; ok {
		if _, present := room[c]; present {
			delete(room, c)
			if len(room) == 0 {
				delete(h.rooms, c.gymID)
			}
			close(c.send)
			metrics.WebsocketClients.Dec()
		}
	}
}

// RoomSize reports the local client count for a gym room.
func (h *Hub) RoomSize(gymID int) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[gymID])
}

// Client is one websocket connection.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID int
	gymID  int
}

func newClient(hub *Hub, conn *websocket.Conn, userID int) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 64),
		userID: userID,
	}
}

// inbound is what clients send over the socket: either a room join or
// a chat message.
type inbound struct {
	Type       string `json:"type"`
	GymID      int    `json:"gym_id,omitempty"`
	ReceiverID int    `json:"receiver_id,omitempty"`
	Body       string `json:"body,omitempty"`
}

func (c *Client) readPump(svc Service) {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("Websocket closed unexpectedly", "user_id", c.userID, "error", err)
			}
			return
		}

		var in inbound
		if err := json.Unmarshal(data, &in); err != nil {
			continue
		}

		switch in.Type {
		case "join":
			c.hub.join(c, in.GymID)
		case EventMessage:
			_, err := svc.SendMessage(context.Background(), c.userID, SendMessageRequest{
				ReceiverID: in.ReceiverID,
				Body:       in.Body,
			})
			if err != nil {
				logger.Debug("Websocket message rejected", "user_id", c.userID, "error", err)
			}
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
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
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
