package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pastrysoft/merge-bakery/game/catalog"
	"github.com/pastrysoft/merge-bakery/game/engine"
	"github.com/pastrysoft/merge-bakery/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Merge Bakery",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Merge Bakery - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Spawn pastries from generators, merge pairs into higher levels, deliver
customer orders for coins, and spend coins on renovation tasks to level up.

AVAILABLE TOOLS:
- create_session: Create new game session
- get_session: Get session details
- list_sessions: List all active sessions
- game_state: Get current game state (board, orders, tasks, resources)
- spawn_item: Tap a generator to spawn an item (costs 1 energy)
- move_item: Drag an item to another cell (merges equal type+level pairs)
- merge_all: Batch-merge everything matching an item's type and level
- delete_item: Remove an item from the board
- generate_order: Request a new customer order
- complete_order: Deliver an order if the board has all required items
- complete_task: Pay coins for a renovation task (grants XP)
- purchase_energy: Trade gems for energy
- list_catalogs: List available item catalogs
- game_instructions: Get comprehensive game instructions and rules

NOTE: Spawn and merge results land after a short animation delay; call
game_state again if the board looks unchanged right after an operation.`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional catalog selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"catalog_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the catalog to use (optional, defaults to the built-in bakery)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Board operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state: board, resources, orders and tasks",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "spawn_item",
		Description: "Tap a generator cell to spawn an item into the nearest free cell. Costs 1 energy.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"cell_id": map[string]interface{}{
					"type":        "string",
					"description": "Cell ID of the generator, e.g. \"3-4\" (row-col)",
				},
			},
			Required: []string{"session_id", "cell_id"},
		},
	}, c.handleSpawnItem)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_item",
		Description: "Move an item from one cell to another. Dropping onto an equal type+level item merges them into one item of the next level; dropping onto a different item swaps them.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"from_cell_id": map[string]interface{}{
					"type":        "string",
					"description": "Source cell ID, e.g. \"2-3\"",
				},
				"to_cell_id": map[string]interface{}{
					"type":        "string",
					"description": "Destination cell ID, e.g. \"2-4\"",
				},
			},
			Required: []string{"session_id", "from_cell_id", "to_cell_id"},
		},
	}, c.handleMoveItem)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "merge_all",
		Description: "Batch-merge every item on the board matching the given item's type and level. Items pair up with their nearest partner; an odd leftover stays unmerged.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"item_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of any item in the matching group",
				},
			},
			Required: []string{"session_id", "item_id"},
		},
	}, c.handleMergeAll)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_item",
		Description: "Remove an item from the board permanently",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"item_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the item to delete",
				},
			},
			Required: []string{"session_id", "item_id"},
		},
	}, c.handleDeleteItem)

	// Orders, tasks and economy
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "generate_order",
		Description: "Request a new customer order. Fails silently when the order board is full.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGenerateOrder)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "complete_order",
		Description: "Deliver an order. Succeeds only when the board holds every required item; delivered items are consumed and coins are credited.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"order_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the order to deliver",
				},
			},
			Required: []string{"session_id", "order_id"},
		},
	}, c.handleCompleteOrder)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "complete_task",
		Description: "Pay coins for a renovation task. Grants XP and may level you up, unlocking better generator output and a level reward.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"task_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the task to pay for, e.g. \"t3\"",
				},
			},
			Required: []string{"session_id", "task_id"},
		},
	}, c.handleCompleteTask)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "purchase_energy",
		Description: "Trade gems for a refill of energy",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handlePurchaseEnergy)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_catalogs",
		Description: "List available item catalogs",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListCatalogs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	catalogID, _ := args["catalog_id"].(string)

	body := map[string]string{}
	if catalogID != "" {
		body["catalog_id"] = catalogID
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nCatalog: %s\n\n%s",
		session.ID, session.CatalogID, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		level := 0
		if s.GameState != nil {
			level = s.GameState.Level
		}
		result += fmt.Sprintf("- %s (Catalog: %s, Level: %d, Created: %s)\n",
			s.ID, s.CatalogID, level, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Session: %s\nCatalog: %s\nCreated: %s\n\n%s",
		session.ID, session.CatalogID,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.GameState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleSpawnItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	cellID, _ := args["cell_id"].(string)

	body := map[string]string{"cell_id": cellID}

	var result service.OpResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/spawn", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatOpResult("Spawn", &result)), nil
}

func (c *Client) handleMoveItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	fromCellID, _ := args["from_cell_id"].(string)
	toCellID, _ := args["to_cell_id"].(string)

	body := map[string]string{
		"from_cell_id": fromCellID,
		"to_cell_id":   toCellID,
	}

	var result service.OpResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/move", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatOpResult("Move", &result)), nil
}

func (c *Client) handleMergeAll(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	itemID, _ := args["item_id"].(string)

	body := map[string]string{"item_id": itemID}

	var result service.OpResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/merge-all", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatOpResult("Merge-all", &result)), nil
}

func (c *Client) handleDeleteItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	itemID, _ := args["item_id"].(string)

	body := map[string]string{"item_id": itemID}

	var result service.OpResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/delete-item", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatOpResult("Delete", &result)), nil
}

func (c *Client) handleGenerateOrder(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var result service.OpResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/orders", sessionID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatOpResult("Generate order", &result)), nil
}

func (c *Client) handleCompleteOrder(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	orderID, _ := args["order_id"].(string)

	var result service.OpResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/orders/%s/complete", sessionID, orderID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatOpResult("Deliver order", &result)), nil
}

func (c *Client) handleCompleteTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	taskID, _ := args["task_id"].(string)

	var result service.OpResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/tasks/%s/complete", sessionID, taskID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatOpResult("Task", &result)), nil
}

func (c *Client) handlePurchaseEnergy(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var result service.OpResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/purchase-energy", sessionID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatOpResult("Purchase energy", &result)), nil
}

func (c *Client) handleListCatalogs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var catalogs []*catalog.Info
	err := c.apiCall("GET", "/api/catalogs", nil, &catalogs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Catalogs:\n\n"
	for _, info := range catalogs {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Grid: %dx%d, Tasks: %d\n\n",
			info.Name, info.CatalogID, info.Description, info.Rows, info.Cols, info.TaskCount)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🥐 Merge Bakery - Complete Instructions

GAME OBJECTIVE:
Run a bakery by merging pastries. Spawn items from generators, merge equal
pairs into higher levels, deliver customer orders for coins, and spend coins
on renovation tasks to earn XP and level up.

BOARD:
The board is a grid of cells identified as "row-col" (e.g. "3-4"). The
starting board holds a coffee machine generator in the center. Cells hold at
most one item.

BOARD LEGEND (game_state rendering):
•  .  - empty cell
• c1  - coffee, level 1 (c=coffee, t=tea, b=bread; digit is the level)
• C1  - coffee machine generator, level 1 (uppercase = generator)
• B1  - oven generator, level 1

CORE MECHANICS:
• Spawn: tap a generator (spawn_item). Costs 1 energy. The rolled item lands
  in the nearest free cell after a short animation. What gets rolled depends
  on the generator's level and your player level.
• Merge: move an item onto another of the same type AND level (move_item).
  The pair is consumed and one item of the next level appears. Items at
  their max level cannot merge.
• Merge-all: merge_all pairs up every matching item on the board with its
  nearest partner. An odd leftover stays. Results land after the merge
  animation.
• Swap: moving an item onto a different item swaps the two.

ENERGY:
• Each spawn costs 1 energy. Energy regenerates 1 point every 10 seconds up
  to the maximum, including while you are away.
• When out of energy you can purchase a refill with gems (purchase_energy).

ORDERS:
• Orders ask for specific items at specific levels. Deliver with
  complete_order once every required item exists on the board; required
  items are consumed and coins are credited.
• Delivery is all-or-nothing: a partial match delivers nothing.
• A new order arrives automatically after a delivery; you can also request
  one with generate_order while the order board has room.

TASKS AND LEVELING:
• Renovation tasks cost coins and grant XP (complete_task). Each task can be
  completed once.
• Reaching the next XP threshold levels you up, grants a reward item placed
  on the board, and can unlock new item families and higher spawn levels.

STRATEGY TIPS:
• Keep board space free: spawns need an empty cell and fail with "No space!"
  otherwise (no energy is charged for a failed spawn).
• Merge aggressively before spawning more; high-level items serve orders
  worth more coins.
• Check orders before merging past the requested level - a level 3 order
  cannot be served by a level 4 item.
• Spawn and merge results are deferred by an animation delay; re-read
  game_state after a burst of operations.

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has unique 4-character ID
- Sessions maintain independent state and are saved to disk
- Use session-specific tools for multi-game management

Happy baking! 🥖☕`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatOpResult(op string, result *service.OpResult) string {
	var b strings.Builder
	if result.Success {
		b.WriteString(fmt.Sprintf("✓ %s successful\n", op))
	} else {
		b.WriteString(fmt.Sprintf("✗ %s rejected", op))
		if result.Message != "" {
			b.WriteString(": " + result.Message)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder

	b.WriteString(fmt.Sprintf("Energy: %d/%d | Coins: %d | Gems: %d | Level: %d | XP: %d\n\n",
		state.Energy, state.MaxEnergy, state.Coins, state.Gems, state.Level, state.XP))

	b.WriteString(formatGrid(state))

	if len(state.Orders) > 0 {
		b.WriteString("\nOrders:\n")
		for _, order := range state.Orders {
			reqs := make([]string, 0, len(order.Items))
			for _, item := range order.Items {
				reqs = append(reqs, fmt.Sprintf("%s L%d", item.Type, item.Level))
			}
			b.WriteString(fmt.Sprintf("- %s: %s → %d coins\n",
				order.ID, strings.Join(reqs, ", "), order.Reward.Coins))
		}
	}

	// Only the next few open tasks; the full list is long
	open := 0
	for _, task := range state.Tasks {
		if task.Completed {
			continue
		}
		if open == 0 {
			b.WriteString("\nNext tasks:\n")
		}
		b.WriteString(fmt.Sprintf("- %s: %s (cost %d, +%d XP)\n", task.ID, task.Name, task.Cost, task.XP))
		open++
		if open >= 3 {
			break
		}
	}

	if len(state.SpawnAnimations) > 0 || len(state.MergeAnimations) > 0 {
		b.WriteString(fmt.Sprintf("\nIn flight: %d spawns, %d merges (results land after the animation delay)\n",
			len(state.SpawnAnimations), len(state.MergeAnimations)))
	}

	if state.ShowEnergyPurchase {
		b.WriteString("\n⚡ Out of energy - purchase_energy is available\n")
	}

	if state.Notification != nil {
		b.WriteString(fmt.Sprintf("\nNotification [%s]: %s\n",
			state.Notification.Type, state.Notification.Message))
	}

	return b.String()
}

// formatGrid renders the board as fixed-width tokens, one cell per token.
func formatGrid(state *engine.GameState) string {
	rows, cols := 0, 0
	for _, cell := range state.Grid {
		if cell.Row+1 > rows {
			rows = cell.Row + 1
		}
		if cell.Col+1 > cols {
			cols = cell.Col + 1
		}
	}
	if rows == 0 || cols == 0 {
		return "(empty board)\n"
	}

	tokens := make([]string, rows*cols)
	for i := range tokens {
		tokens[i] = " ."
	}
	for _, cell := range state.Grid {
		if cell.Item != nil {
			tokens[cell.Row*cols+cell.Col] = itemToken(cell.Item)
		}
	}

	var b strings.Builder
	b.WriteString("Board (cells are \"row-col\"):\n")
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			b.WriteString(tokens[r*cols+c])
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// itemToken renders one item as a two-character token: a type letter plus
// the level digit. Generators use the uppercase letter.
func itemToken(item *engine.Item) string {
	var letter string
	switch item.Type {
	case catalog.Coffee:
		letter = "c"
	case catalog.Tea:
		letter = "t"
	case catalog.Bread:
		letter = "b"
	case catalog.GeneratorCoffee:
		letter = "C"
	case catalog.GeneratorBread:
		letter = "B"
	default:
		letter = "?"
	}
	return fmt.Sprintf("%s%d", letter, item.Level)
}
