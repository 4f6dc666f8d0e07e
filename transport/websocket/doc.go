// Package websocket provides WebSocket transport for the merge bakery game.
//
// The websocket package implements:
//   - Real-time state push to connected clients
//   - Session-aware WebSocket connections
//   - Broadcasting after player operations and tick commits
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// write goroutine plus a read goroutine that only keeps the connection alive.
// All game mutations arrive over the REST API; the WebSocket channel is
// push-only.
//
// Message Protocol:
//
// Outgoing messages are JSON-encoded:
//
//	{"session_id": "abc1", "event": "state_update", "game_state": {...}}
//
// The full state is sent on every change, including the deferred spawn and
// merge commits that land on server ticks after their animation delay.
//
// Session Integration:
//
// Clients specify their session ID via query parameter (?session=abc1) when
// establishing the connection. State updates are broadcast only to clients
// connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	server := api.NewServer(gameService, hub)
//
//	// after a tick changed state:
//	hub.BroadcastToSession(update.SessionID, update.GameState)
//
// Concurrency:
//
// Broadcasts originate from HTTP handler goroutines and from the tick pump,
// so the hub guards its client map with a mutex. Slow clients whose send
// buffers fill up are dropped rather than allowed to stall a broadcast.
package websocket
