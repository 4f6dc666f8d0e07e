// Package api provides HTTP REST API handlers for the merge bakery game.
//
// The api package implements:
//   - RESTful endpoints for board, order, task and energy operations
//   - Session management endpoints
//   - Catalog listing
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session (optional catalog_id)
//   - GET /api/sessions - List all sessions (sort, order, limit params)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session and its save
//
// Board Operations:
//   - GET /api/sessions/{id}/state - Current game state
//   - POST /api/sessions/{id}/move - Move or merge an item between cells
//   - POST /api/sessions/{id}/spawn - Activate a generator
//   - POST /api/sessions/{id}/merge-all - Batch-merge matching items
//   - POST /api/sessions/{id}/delete-item - Remove an item
//   - POST /api/sessions/{id}/select - Set or clear the selected item
//
// Orders, Tasks and Economy:
//   - POST /api/sessions/{id}/orders - Generate a new order
//   - POST /api/sessions/{id}/orders/{orderId}/complete - Deliver an order
//   - POST /api/sessions/{id}/tasks/{taskId}/complete - Pay for a task
//   - POST /api/sessions/{id}/purchase-energy - Trade gems for energy
//   - POST /api/sessions/{id}/offline-progress - Reconcile elapsed time
//
// Catalogs:
//   - GET /api/catalogs - List available catalogs
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Operation endpoints return an
// OpResult envelope:
//
//	{
//	  "success": true|false,
//	  "game_state": { ... },
//	  "message": "optional rejection reason"
//	}
//
// A rejected operation (for example spawning with the board full) is still a
// 200 response with success=false; HTTP error codes are reserved for missing
// sessions and malformed requests.
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
//
// WebSocket:
//
// GET /ws?session={id} upgrades the connection and subscribes it to state
// broadcasts for that session, including deferred spawn/merge commits that
// land on server ticks.
package api
