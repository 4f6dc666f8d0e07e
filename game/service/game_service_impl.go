package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/pastrysoft/merge-bakery/game/catalog"
	"github.com/pastrysoft/merge-bakery/game/clock"
	"github.com/pastrysoft/merge-bakery/game/engine"
)

// gameServiceImpl implements the GameService interface. The mutex serializes
// every engine operation; the engines themselves are not safe for concurrent
// use.
type gameServiceImpl struct {
	sessions SessionManager
	catalogs CatalogManager
	clock    clock.Clock
	mu       sync.Mutex
}

// NewGameService creates a new game service instance.
func NewGameService(sessions SessionManager, catalogs CatalogManager, clk clock.Clock) GameService {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &gameServiceImpl{
		sessions: sessions,
		catalogs: catalogs,
		clock:    clk,
	}
}

// CreateSession creates a new playthrough from the named catalog, falling
// back to the default catalog when catalogID is empty.
func (s *gameServiceImpl) CreateSession(ctx context.Context, catalogID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cat *catalog.Catalog
	var err error
	if catalogID != "" && catalogID != "default" {
		cat, err = s.catalogs.Load(catalogID)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog %s: %w", catalogID, err)
		}
	} else {
		catalogID = "default"
		cat = s.catalogs.GetDefault()
	}

	session, err := s.sessions.Create("", cat, catalogID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return sessionInfo(session), nil
}

// GetSession retrieves session information.
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	return sessionInfo(session), nil
}

// ListSessions returns all active sessions.
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions.List()
	infos := make([]*SessionInfo, 0, len(sessions))
	for _, session := range sessions {
		infos = append(infos, sessionInfo(session))
	}
	return infos, nil
}

// DeleteSession removes a session and its save file.
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.Delete(sessionID)
}

// GetGameState returns the current state for a session.
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	return session.Engine.State(), nil
}

// MoveItem resolves a drag between two cells.
func (s *gameServiceImpl) MoveItem(ctx context.Context, sessionID, fromCellID, toCellID string) (*OpResult, error) {
	return s.mutate(sessionID, func(eng *engine.Engine) (bool, string) {
		if eng.MoveItem(fromCellID, toCellID) {
			return true, ""
		}
		return false, "move rejected"
	})
}

// DeleteItem removes an item from the board.
func (s *gameServiceImpl) DeleteItem(ctx context.Context, sessionID, itemID string) (*OpResult, error) {
	return s.mutate(sessionID, func(eng *engine.Engine) (bool, string) {
		eng.DeleteItem(itemID)
		return true, ""
	})
}

// SpawnItem activates a generator.
func (s *gameServiceImpl) SpawnItem(ctx context.Context, sessionID, cellID string) (*OpResult, error) {
	return s.mutate(sessionID, func(eng *engine.Engine) (bool, string) {
		if eng.SpawnItem(cellID) {
			return true, ""
		}
		return false, "spawn rejected"
	})
}

// MergeAllItems batch-merges everything matching the item's type and level.
func (s *gameServiceImpl) MergeAllItems(ctx context.Context, sessionID, itemID string) (*OpResult, error) {
	return s.mutate(sessionID, func(eng *engine.Engine) (bool, string) {
		if eng.MergeAllItems(itemID) {
			return true, ""
		}
		return false, "merge-all rejected"
	})
}

// SetSelectedItem records the detail-panel selection.
func (s *gameServiceImpl) SetSelectedItem(ctx context.Context, sessionID, itemID string) (*OpResult, error) {
	return s.mutate(sessionID, func(eng *engine.Engine) (bool, string) {
		eng.SetSelectedItem(itemID)
		return true, ""
	})
}

// GenerateOrder appends a new order if the board has room.
func (s *gameServiceImpl) GenerateOrder(ctx context.Context, sessionID string) (*OpResult, error) {
	return s.mutate(sessionID, func(eng *engine.Engine) (bool, string) {
		if eng.GenerateOrder() {
			return true, ""
		}
		return false, "order board full or nothing producible"
	})
}

// CompleteOrder delivers an order.
func (s *gameServiceImpl) CompleteOrder(ctx context.Context, sessionID, orderID string) (*OpResult, error) {
	return s.mutate(sessionID, func(eng *engine.Engine) (bool, string) {
		if eng.CompleteOrder(orderID) {
			return true, ""
		}
		return false, "order requirements not met"
	})
}

// CompleteTask pays for a renovation task.
func (s *gameServiceImpl) CompleteTask(ctx context.Context, sessionID, taskID string) (*OpResult, error) {
	return s.mutate(sessionID, func(eng *engine.Engine) (bool, string) {
		if eng.CompleteTask(taskID) {
			return true, ""
		}
		return false, "task unavailable or not enough coins"
	})
}

// PurchaseEnergy trades gems for energy.
func (s *gameServiceImpl) PurchaseEnergy(ctx context.Context, sessionID string) (*OpResult, error) {
	return s.mutate(sessionID, func(eng *engine.Engine) (bool, string) {
		if eng.PurchaseEnergy() {
			return true, ""
		}
		return false, "not enough gems"
	})
}

// ProcessOfflineProgress reconciles elapsed time into restored energy.
func (s *gameServiceImpl) ProcessOfflineProgress(ctx context.Context, sessionID string) (*OpResult, error) {
	return s.mutate(sessionID, func(eng *engine.Engine) (bool, string) {
		restored := eng.ProcessOfflineProgress()
		return true, fmt.Sprintf("restored %d energy", restored)
	})
}

// Tick runs due deferred commits across all sessions.
func (s *gameServiceImpl) Tick(ctx context.Context) ([]TickUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	var updates []TickUpdate
	for _, session := range s.sessions.List() {
		if session.Engine.RunScheduled(now) == 0 {
			continue
		}
		s.sessions.Save(session.ID)
		updates = append(updates, TickUpdate{SessionID: session.ID, GameState: session.Engine.State()})
	}
	return updates, nil
}

// EnergyTick runs one passive regeneration step across all sessions.
func (s *gameServiceImpl) EnergyTick(ctx context.Context) ([]TickUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updates []TickUpdate
	for _, session := range s.sessions.List() {
		before := session.Engine.State().Energy
		session.Engine.RegenTick()
		if session.Engine.State().Energy == before {
			continue
		}
		s.sessions.Save(session.ID)
		updates = append(updates, TickUpdate{SessionID: session.ID, GameState: session.Engine.State()})
	}
	return updates, nil
}

// ListCatalogs returns the loadable catalogs.
func (s *gameServiceImpl) ListCatalogs(ctx context.Context) ([]*catalog.Info, error) {
	return s.catalogs.List()
}

// mutate runs one engine operation under the service lock and persists the
// session afterwards. The snapshot is saved even for rejected operations so
// regen timestamps and notifications survive restarts.
func (s *gameServiceImpl) mutate(sessionID string, op func(*engine.Engine) (bool, string)) (*OpResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	ok, msg := op(session.Engine)
	s.sessions.Save(sessionID)

	return &OpResult{
		Success:   ok,
		GameState: session.Engine.State(),
		Message:   msg,
	}, nil
}

func sessionInfo(session *Session) *SessionInfo {
	return &SessionInfo{
		ID:             session.ID,
		CatalogID:      session.CatalogID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.State(),
	}
}
