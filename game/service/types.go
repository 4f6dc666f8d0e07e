package service

import (
	"time"

	"github.com/pastrysoft/merge-bakery/game/catalog"
	"github.com/pastrysoft/merge-bakery/game/engine"
)

// SessionInfo provides information about a game session.
type SessionInfo struct {
	ID             string            `json:"id"`
	CatalogID      string            `json:"catalog_id"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	GameState      *engine.GameState `json:"game_state"`
}

// OpResult is the outcome of one engine operation. Success false means the
// engine refused the operation as a policy rejection; the returned state
// still reflects any notification raised on the failure path.
type OpResult struct {
	Success   bool              `json:"success"`
	GameState *engine.GameState `json:"game_state"`
	Message   string            `json:"message,omitempty"`
}

// TickUpdate pairs a session with its state after a tick changed something,
// for WebSocket broadcast.
type TickUpdate struct {
	SessionID string
	GameState *engine.GameState
}

// Session represents an active playthrough.
type Session struct {
	ID             string
	Engine         *engine.Engine
	CatalogID      string
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// SessionManager defines session storage operations.
type SessionManager interface {
	Create(id string, cat *catalog.Catalog, catalogID string) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// CatalogManager handles catalog loading.
type CatalogManager interface {
	Load(name string) (*catalog.Catalog, error)
	List() ([]*catalog.Info, error)
	GetDefault() *catalog.Catalog
}
