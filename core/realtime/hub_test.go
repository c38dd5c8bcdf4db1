package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type stubChats struct {
	members map[uuid.UUID]uuid.UUID
}

func (s stubChats) IsParticipant(_ context.Context, chatID, userID uuid.UUID) (bool, error) {
	return s.members[chatID] == userID, nil
}

func dial(t *testing.T, hub *Hub, userID uuid.UUID) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.ServeWS(w, r, userID)
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var ev Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return ev
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestHubSubscribePublishAndRelease(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	userID, chatID := uuid.New(), uuid.New()
	hub := NewHub(NewLocalBroker())
	hub.SetChatAuthorizer(stubChats{members: map[uuid.UUID]uuid.UUID{chatID: userID}})
	go func() { _ = hub.Run(ctx) }()

	conn := dial(t, hub, userID)
	topic := ChatTopic(chatID)

	if err := conn.WriteJSON(frame{Action: "subscribe", Topic: topic}); err != nil {
		t.Fatal(err)
	}
	if ev := readEvent(t, conn); ev.Type != "subscribed" || ev.Topic != topic {
		t.Fatalf("unexpected ack %+v", ev)
	}

	hub.Publish(ctx, topic, "message.created", map[string]string{"text": "hi"})
	if ev := readEvent(t, conn); ev.Type != "message.created" || ev.Topic != topic {
		t.Fatalf("unexpected event %+v", ev)
	}

	_ = conn.Close()
	waitFor(t, func() bool { return hub.Subscribers(topic) == 0 })
}

func TestHubRevokeStopsDelivery(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	leaver, stayer, chatID := uuid.New(), uuid.New(), uuid.New()
	hub := NewHub(NewLocalBroker())
	hub.SetChatAuthorizer(memberSet{leaver: true, stayer: true})
	go func() { _ = hub.Run(ctx) }()

	topic := ChatTopic(chatID)
	leaving := dial(t, hub, leaver)
	staying := dial(t, hub, stayer)
	for _, conn := range []*websocket.Conn{leaving, staying} {
		_ = conn.WriteJSON(frame{Action: "subscribe", Topic: topic})
		if ev := readEvent(t, conn); ev.Type != "subscribed" {
			t.Fatalf("unexpected ack %+v", ev)
		}
	}

	hub.Revoke(ctx, topic, leaver)
	if ev := readEvent(t, leaving); ev.Type != "unsubscribed" || ev.Topic != topic {
		t.Fatalf("leaver got %+v, want unsubscribed", ev)
	}
	waitFor(t, func() bool { return hub.Subscribers(topic) == 1 })

	hub.Publish(ctx, topic, "message.new", "after leaving")
	if ev := readEvent(t, staying); ev.Type != "message.new" {
		t.Fatalf("remaining member got %+v", ev)
	}

	_ = leaving.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, raw, err := leaving.ReadMessage(); err == nil {
		t.Fatalf("former member still receives chat frames: %s", raw)
	}
}

type memberSet map[uuid.UUID]bool

func (m memberSet) IsParticipant(_ context.Context, _, userID uuid.UUID) (bool, error) {
	return m[userID], nil
}

func TestHubRejectsForeignTopics(t *testing.T) {
	userID := uuid.New()
	hub := NewHub(nil)
	hub.SetChatAuthorizer(stubChats{members: map[uuid.UUID]uuid.UUID{}})
	conn := dial(t, hub, userID)
	defer conn.Close()

	for _, topic := range []string{UserTopic(uuid.New()), ChatTopic(uuid.New()), "global"} {
		_ = conn.WriteJSON(frame{Action: "subscribe", Topic: topic})
		if ev := readEvent(t, conn); ev.Type != "error" {
			t.Fatalf("%s: expected error, got %+v", topic, ev)
		}
		if hub.Subscribers(topic) != 0 {
			t.Fatalf("%s should have no subscribers", topic)
		}
	}

	_ = conn.WriteJSON(frame{Action: "subscribe", Topic: UserTopic(userID)})
	if ev := readEvent(t, conn); ev.Type != "subscribed" {
		t.Fatalf("own user topic should be allowed, got %+v", ev)
	}
}
