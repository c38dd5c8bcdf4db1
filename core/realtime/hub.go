package realtime

import (
	"campusflow/core/logger"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64

	TopicChatPrefix = "chat:"
	TopicUserPrefix = "user:"

	// EventRevoke drops a user's subscriptions to a topic on every instance. Data is the user id.
	EventRevoke = "subscription.revoked"
)

// Event is the frame pushed to subscribers.
type Event struct {
	Type  string `json:"type"`
	Topic string `json:"topic"`
	Data  any    `json:"data,omitempty"`
}

type frame struct {
	Action string `json:"action"`
	Topic  string `json:"topic"`
}

// ChatAuthorizer decides whether a user may follow a chat topic.
type ChatAuthorizer interface {
	IsParticipant(ctx context.Context, chatID, userID uuid.UUID) (bool, error)
}

func ChatTopic(chatID uuid.UUID) string {
	return TopicChatPrefix + chatID.String()
}

func UserTopic(userID uuid.UUID) string {
	return TopicUserPrefix + userID.String()
}

type client struct {
	userID uuid.UUID
	conn   *websocket.Conn
	send   chan []byte
	topics map[string]struct{}
}

type Hub struct {
	mu       sync.RWMutex
	topics   map[string]map[*client]struct{}
	broker   Broker
	chats    ChatAuthorizer
	upgrader websocket.Upgrader
}

func NewHub(broker Broker) *Hub {
	h := &Hub{
		topics: map[string]map[*client]struct{}{},
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	if broker == nil {
		broker = NewLocalBroker()
	}
	h.broker = broker
	return h
}

func (h *Hub) SetChatAuthorizer(a ChatAuthorizer) {
	h.chats = a
}

// Run pumps broker deliveries into local subscribers until ctx is done.
func (h *Hub) Run(ctx context.Context) error {
	return h.broker.Run(ctx, h.deliver)
}

// Publish fans an event out to every instance subscribed to topic.
func (h *Hub) Publish(ctx context.Context, topic, eventType string, data any) {
	if err := h.broker.Publish(ctx, Event{Type: eventType, Topic: topic, Data: data}); err != nil {
		logger.Error("Hub:Publish", "topic", topic, "error", err)
	}
}

// Revoke unsubscribes userID's sockets from topic, e.g. after they leave a chat.
func (h *Hub) Revoke(ctx context.Context, topic string, userID uuid.UUID) {
	h.Publish(ctx, topic, EventRevoke, userID.String())
}

func (h *Hub) deliver(ev Event) {
	if ev.Type == EventRevoke {
		h.revoke(ev)
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		logger.Error("Hub:Deliver:Marshal", err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.topics[ev.Topic] {
		select {
		case c.send <- payload:
		default:
			logger.Warn("Hub:Deliver:SlowClient", "user_id", c.userID, "topic", ev.Topic)
		}
	}
}

func (h *Hub) revoke(ev Event) {
	raw, _ := ev.Data.(string)
	userID, err := uuid.Parse(raw)
	if err != nil {
		logger.Warn("Hub:Revoke:BadUser", "topic", ev.Topic, "data", ev.Data)
		return
	}
	notice, _ := json.Marshal(Event{Type: "unsubscribed", Topic: ev.Topic})

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.topics[ev.Topic] {
		if c.userID != userID {
			continue
		}
		h.removeLocked(c, ev.Topic)
		select {
		case c.send <- notice:
		default:
		}
	}
}

// Subscribers returns how many sockets follow topic on this instance.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

func (h *Hub) authorize(ctx context.Context, userID uuid.UUID, topic string) bool {
	switch {
	case strings.HasPrefix(topic, TopicUserPrefix):
		return topic == UserTopic(userID)
	case strings.HasPrefix(topic, TopicChatPrefix):
		chatID, err := uuid.Parse(strings.TrimPrefix(topic, TopicChatPrefix))
		if err != nil || h.chats == nil {
			return false
		}
		ok, err := h.chats.IsParticipant(ctx, chatID, userID)
		if err != nil {
			logger.Error("Hub:Authorize", "topic", topic, "error", err)
			return false
		}
		return ok
	default:
		return false
	}
}

func (h *Hub) subscribe(c *client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.topics[topic]
	if !ok {
		set = map[*client]struct{}{}
		h.topics[topic] = set
	}
	set[c] = struct{}{}
	c.topics[topic] = struct{}{}
}

func (h *Hub) unsubscribe(c *client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c, topic)
}

func (h *Hub) removeLocked(c *client, topic string) {
	if set, ok := h.topics[topic]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.topics, topic)
		}
	}
	delete(c.topics, topic)
}

// release drops every subscription the client holds.
func (h *Hub) release(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for topic := range c.topics {
		h.removeLocked(c, topic)
	}
}

// ServeWS upgrades the request and serves frames for an authenticated user.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID uuid.UUID) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("Hub:ServeWS:Upgrade", err)
		return err
	}
	c := &client{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		topics: map[string]struct{}{},
	}
	logger.Info("Hub:ServeWS:Connected", "user_id", userID)

	done := make(chan struct{})
	go h.writePump(c, done)
	h.readPump(r.Context(), c)

	h.release(c)
	close(done)
	logger.Info("Hub:ServeWS:Disconnected", "user_id", userID)
	return nil
}

func (h *Hub) reply(c *client, ev Event) {
	payload, _ := json.Marshal(ev)
	select {
	case c.send <- payload:
	default:
	}
}

func (h *Hub) readPump(ctx context.Context, c *client) {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var f frame
		if err := c.conn.ReadJSON(&f); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("Hub:ReadPump", "user_id", c.userID, "error", err)
			}
			return
		}
		switch f.Action {
		case "subscribe":
			if !h.authorize(ctx, c.userID, f.Topic) {
				h.reply(c, Event{Type: "error", Topic: f.Topic, Data: "not allowed"})
				continue
			}
			h.subscribe(c, f.Topic)
			h.reply(c, Event{Type: "subscribed", Topic: f.Topic})
		case "unsubscribe":
			h.unsubscribe(c, f.Topic)
			h.reply(c, Event{Type: "unsubscribed", Topic: f.Topic})
		case "ping":
			h.reply(c, Event{Type: "pong"})
		default:
			h.reply(c, Event{Type: "error", Data: "unknown action"})
		}
	}
}

func (h *Hub) writePump(c *client, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		}
	}
}
