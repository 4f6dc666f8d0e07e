package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pastrysoft/merge-bakery/game/engine"
)

func dialTestHub(t *testing.T, hub *Hub, sessionID string) (*websocket.Conn, func()) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, sessionID)
	}))

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		srv.Close()
		t.Fatalf("Failed to dial: %v", err)
	}

	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

func waitForClients(t *testing.T, hub *Hub, sessionID string, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount(sessionID) == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Expected %d clients for session %s, got %d", want, sessionID, hub.ClientCount(sessionID))
}

func TestBroadcastToSession(t *testing.T) {
	hub := NewHub()
	conn, cleanup := dialTestHub(t, hub, "test")
	defer cleanup()
	waitForClients(t, hub, "test", 1)

	eng := engine.NewEngineWithDefaults()
	hub.BroadcastToSession("test", eng.State())

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read broadcast: %v", err)
	}

	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("Failed to decode message: %v", err)
	}
	if msg.SessionID != "test" {
		t.Errorf("Expected session test, got %q", msg.SessionID)
	}
	if msg.Event != "state_update" {
		t.Errorf("Expected state_update event, got %q", msg.Event)
	}
	if msg.GameState == nil || msg.GameState.Energy != 100 {
		t.Error("Expected the full game state in the broadcast")
	}
}

func TestBroadcastEvent(t *testing.T) {
	hub := NewHub()
	conn, cleanup := dialTestHub(t, hub, "test")
	defer cleanup()
	waitForClients(t, hub, "test", 1)

	hub.BroadcastEvent("test", "session_deleted", map[string]string{"reason": "expired"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read broadcast: %v", err)
	}

	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("Failed to decode message: %v", err)
	}
	if msg.Event != "session_deleted" {
		t.Errorf("Expected session_deleted event, got %q", msg.Event)
	}
	if msg.GameState != nil {
		t.Error("Expected no game state on a custom event")
	}
}

func TestBroadcastScopedToSession(t *testing.T) {
	hub := NewHub()
	conn, cleanup := dialTestHub(t, hub, "mine")
	defer cleanup()
	waitForClients(t, hub, "mine", 1)

	// A broadcast for another session never reaches this client.
	hub.BroadcastEvent("other", "noise", nil)
	hub.BroadcastEvent("mine", "signal", nil)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read broadcast: %v", err)
	}

	var msg Message
	json.Unmarshal(raw, &msg)
	if msg.Event != "signal" {
		t.Errorf("Expected the first delivered event to be signal, got %q", msg.Event)
	}
}

func TestBroadcastWithoutClients(t *testing.T) {
	hub := NewHub()

	// No subscribers is not an error.
	hub.BroadcastToSession("nobody", nil)
	hub.BroadcastEvent("nobody", "event", nil)

	if got := hub.ClientCount("nobody"); got != 0 {
		t.Errorf("Expected 0 clients, got %d", got)
	}
}

func TestClientUnregistersOnClose(t *testing.T) {
	hub := NewHub()
	conn, cleanup := dialTestHub(t, hub, "test")
	defer cleanup()
	waitForClients(t, hub, "test", 1)

	conn.Close()
	waitForClients(t, hub, "test", 0)
}
