package push

import (
	"bytes"
	"campusflow/core/config"
	"campusflow/core/logger"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type Message struct {
	To       string         `json:"to"`
	Title    string         `json:"title"`
	Body     string         `json:"body"`
	Data     map[string]any `json:"data,omitempty"`
	Sound    string         `json:"sound,omitempty"`
	Priority string         `json:"priority,omitempty"`
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type ticket struct {
	Status  string `json:"status"`
	ID      string `json:"id"`
	Message string `json:"message"`
	Details struct {
		Error string `json:"error"`
	} `json:"details"`
}

type expoResponse struct {
	Data   []ticket `json:"data"`
	Errors []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// ErrDeviceNotRegistered means the token should be dropped.
var ErrDeviceNotRegistered = errors.New("push: device not registered")

type ExpoSender struct {
	url         string
	accessToken string
	http        *http.Client
}

func NewExpoSender(cfg config.PushConfig) *ExpoSender {
	return &ExpoSender{
		url:         cfg.ExpoURL,
		accessToken: cfg.AccessToken,
		http:        &http.Client{Timeout: 10 * time.Second},
	}
}

func IsExpoToken(token string) bool {
	return strings.HasPrefix(token, "ExponentPushToken[") || strings.HasPrefix(token, "ExpoPushToken[")
}

func (s *ExpoSender) Send(ctx context.Context, msg Message) error {
	if msg.Sound == "" {
		msg.Sound = "default"
	}
	body, err := json.Marshal([]Message{msg})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.accessToken)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		logger.Error("ExpoSender:Send:Do", err)
		return err
	}
	defer resp.Body.Close()

	var out expoResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode expo response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode >= 300 || len(out.Errors) > 0 {
		return fmt.Errorf("expo push failed: status %d %+v", resp.StatusCode, out.Errors)
	}
	for _, t := range out.Data {
		if t.Status == "error" {
			if t.Details.Error == "DeviceNotRegistered" {
				return ErrDeviceNotRegistered
			}
			return fmt.Errorf("expo ticket error: %s", t.Message)
		}
	}
	return nil
}
