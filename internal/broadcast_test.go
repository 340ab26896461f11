package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func waitForClients(t *testing.T, b *Broadcaster, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for b.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("ClientCount() = %v, want %v", b.ClientCount(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBroadcasterRoundTrip(t *testing.T) {
	b := NewBroadcaster()
	port, err := b.Start("127.0.0.1:0")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = b.Stop(ctx)
	}()

	conn, _, err := websocket.DefaultDialer.Dial(fmt.Sprintf("ws://127.0.0.1:%d/ws", port), nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()
	waitForClients(t, b, 1)

	b.Broadcast("cursor", map[string]int64{"current_time": 5000})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}

	var frame Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if frame.Type != "cursor" {
		t.Errorf("frame.Type = %v, want cursor", frame.Type)
	}
	payload, ok := frame.Payload.(map[string]interface{})
	if !ok {
		t.Fatalf("frame.Payload type = %T, want object", frame.Payload)
	}
	if got := payload["current_time"]; got != float64(5000) {
		t.Errorf("payload current_time = %v, want 5000", got)
	}
}

func TestBroadcasterHealth(t *testing.T) {
	b := NewBroadcaster()
	port, err := b.Start("127.0.0.1:0")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = b.Stop(ctx)
	}()

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/health", port))
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %v, want 200", resp.StatusCode)
	}
}

func TestBroadcasterStopDisconnectsClients(t *testing.T) {
	b := NewBroadcaster()
	port, err := b.Start("127.0.0.1:0")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	conn, _, err := websocket.DefaultDialer.Dial(fmt.Sprintf("ws://127.0.0.1:%d/ws", port), nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()
	waitForClients(t, b, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := b.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if got := b.ClientCount(); got != 0 {
		t.Errorf("ClientCount() = %v after Stop(), want 0", got)
	}
}

func TestBroadcastWithoutClients(t *testing.T) {
	b := NewBroadcaster()
	// Must not block or panic with nobody connected
	b.Broadcast("state", map[string]bool{"is_playing": true})
	if got := b.ClientCount(); got != 0 {
		t.Errorf("ClientCount() = %v, want 0", got)
	}
}
