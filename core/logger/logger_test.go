package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func capture(t *testing.T, env string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := L()
	Use(New(env, &buf))
	t.Cleanup(func() { Use(prev) })
	return &buf
}

func TestFieldsInProduction(t *testing.T) {
	buf := capture(t, "production")

	Error("Repo:Create", "user_id", "u1", "error", errors.New("boom"))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("not json: %v (%q)", err, buf.String())
	}
	if line["msg"] != "Repo:Create" || line["user_id"] != "u1" || line["error"] != "boom" {
		t.Fatalf("unexpected line %v", line)
	}
	if line["level"] != "error" {
		t.Fatalf("level = %v", line["level"])
	}
}

func TestBareErrorArgument(t *testing.T) {
	buf := capture(t, "production")

	Warn("Cache:Get", errors.New("timeout"))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatal(err)
	}
	if line["error"] != "timeout" {
		t.Fatalf("error field = %v", line["error"])
	}
}

func TestProductionSkipsDebug(t *testing.T) {
	buf := capture(t, "production")
	Debug("Noise")
	if buf.Len() != 0 {
		t.Fatalf("debug line written in production: %q", buf.String())
	}
}

func TestTextInDevelopment(t *testing.T) {
	buf := capture(t, "development")
	Debug("Hub:Run", "clients", 3, "dangling")
	out := buf.String()
	for _, want := range []string{"Hub:Run", "clients=3", "detail=dangling", "level=debug"} {
		if !strings.Contains(out, want) {
			t.Fatalf("%q missing from %q", want, out)
		}
	}
}
