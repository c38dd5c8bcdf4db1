package push

import (
	"campusflow/core/config"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExpoSenderSend(t *testing.T) {
	var got []Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("missing access token header")
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"data":[{"status":"ok","id":"abc"}]}`))
	}))
	defer srv.Close()

	s := NewExpoSender(config.PushConfig{ExpoURL: srv.URL, AccessToken: "tok"})
	err := s.Send(context.Background(), Message{To: "ExponentPushToken[x]", Title: "Hi", Body: "there"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Hi" || got[0].Sound != "default" {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestExpoSenderDeviceNotRegistered(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"status":"error","message":"gone","details":{"error":"DeviceNotRegistered"}}]}`))
	}))
	defer srv.Close()

	s := NewExpoSender(config.PushConfig{ExpoURL: srv.URL})
	if err := s.Send(context.Background(), Message{To: "ExponentPushToken[x]"}); err != ErrDeviceNotRegistered {
		t.Fatalf("got %v, want ErrDeviceNotRegistered", err)
	}
}

func TestIsExpoToken(t *testing.T) {
	if !IsExpoToken("ExponentPushToken[abc]") || IsExpoToken("fcm-token") {
		t.Fatal("token detection is wrong")
	}
}
