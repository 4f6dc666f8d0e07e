package session

import (
	"time"

	"github.com/pastrysoft/merge-bakery/game/engine"
	"github.com/pastrysoft/merge-bakery/game/service"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData represents the JSON structure for persisted sessions.
// The snapshot lives under the "merge2-storage" key, matching the save format
// the web client used, so existing saves keep loading.
type PersistedSessionData struct {
	ID             string          `json:"id"`
	CatalogID      string          `json:"catalog_id"`
	CreatedAt      time.Time       `json:"created_at"`
	LastAccessedAt time.Time       `json:"last_accessed_at"`
	Save           engine.Snapshot `json:"merge2-storage"`
}
