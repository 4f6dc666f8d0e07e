package service

import (
	"context"

	"github.com/pastrysoft/merge-bakery/game/catalog"
	"github.com/pastrysoft/merge-bakery/game/engine"
)

// GameService defines all game-related operations.
type GameService interface {
	// Session management
	CreateSession(ctx context.Context, catalogID string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Grid operations
	MoveItem(ctx context.Context, sessionID, fromCellID, toCellID string) (*OpResult, error)
	DeleteItem(ctx context.Context, sessionID, itemID string) (*OpResult, error)
	SpawnItem(ctx context.Context, sessionID, cellID string) (*OpResult, error)
	MergeAllItems(ctx context.Context, sessionID, itemID string) (*OpResult, error)
	SetSelectedItem(ctx context.Context, sessionID, itemID string) (*OpResult, error)

	// Orders and progression
	GenerateOrder(ctx context.Context, sessionID string) (*OpResult, error)
	CompleteOrder(ctx context.Context, sessionID, orderID string) (*OpResult, error)
	CompleteTask(ctx context.Context, sessionID, taskID string) (*OpResult, error)
	PurchaseEnergy(ctx context.Context, sessionID string) (*OpResult, error)
	ProcessOfflineProgress(ctx context.Context, sessionID string) (*OpResult, error)

	// Game state
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Time pumps: Tick runs due deferred commits, EnergyTick runs passive
	// regen. Both return updates for sessions whose state changed.
	Tick(ctx context.Context) ([]TickUpdate, error)
	EnergyTick(ctx context.Context) ([]TickUpdate, error)

	// Catalogs
	ListCatalogs(ctx context.Context) ([]*catalog.Info, error)
}
