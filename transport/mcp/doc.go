// Package mcp provides a Model Context Protocol server for the merge bakery game.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for board, order, task and economy operations
//   - Session-aware command execution
//   - Thin-client proxying to the REST API
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - game_state: Get current state with a text board rendering
//   - spawn_item: Activate a generator cell
//   - move_item: Move, merge or swap items between cells
//   - merge_all: Batch-merge a matching item group
//   - delete_item: Remove an item from the board
//   - generate_order / complete_order: Order board management
//   - complete_task: Pay for renovation tasks to earn XP
//   - purchase_energy: Trade gems for energy
//   - create_session / get_session / list_sessions: Session management
//   - list_catalogs: List available item catalogs
//   - game_instructions: Full rules text
//
// Architecture:
//
// The client proxies every tool call to the REST API over HTTP rather than
// holding its own game service. This keeps MCP and browser clients on the
// same state: a spawn issued over MCP is broadcast to WebSocket subscribers
// exactly like one issued from the web UI.
//
// Board Rendering:
//
// game_state renders the board as two-character tokens, one per cell: a
// lowercase type letter plus level digit for items (c1, t2, b3), uppercase
// for generators (C1, B1), and " ." for empty cells.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// Deferred Commits:
//
// Spawn and merge results land after an animation delay on the server's tick
// loop, so tool output immediately after an operation may show the item
// still in flight. The tool descriptions tell agents to re-read game_state.
package mcp
