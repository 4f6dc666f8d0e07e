package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pastrysoft/merge-bakery/game/catalog"
	"github.com/pastrysoft/merge-bakery/game/clock"
)

// Engine owns one playthrough's state and implements every collaborator-facing
// operation. It is not safe for concurrent use; the service layer serializes
// access. All failures are policy rejections signaled as booleans, never Go
// errors (there is no unrecoverable state).
type Engine struct {
	state   *GameState
	catalog *catalog.Catalog
	clock   clock.Clock
	rng     Rand
	sched   *scheduler
}

// NewEngine creates an engine with a fresh grid seeded from the catalog.
func NewEngine(cat *catalog.Catalog, clk clock.Clock, rng Rand) (*Engine, error) {
	if err := catalog.Validate(cat); err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	if rng == nil {
		rng = DefaultRand()
	}

	e := &Engine{
		catalog: cat,
		clock:   clk,
		rng:     rng,
		sched:   newScheduler(),
	}
	e.state = e.initialState()
	return e, nil
}

// NewEngineWithDefaults creates an engine on the built-in catalog, wall clock,
// and global random source.
func NewEngineWithDefaults() *Engine {
	e, err := NewEngine(catalog.Default(), clock.RealClock{}, DefaultRand())
	if err != nil {
		// The built-in catalog always validates.
		panic(fmt.Sprintf("default catalog invalid: %v", err))
	}
	return e
}

// State returns the live game state. Callers must treat it as read-only.
func (e *Engine) State() *GameState {
	return e.state
}

// Catalog returns the static data the engine was built with.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// RunScheduled executes every deferred commit due at or before now and
// returns how many ran. The service tick pump calls this with wall time;
// tests call it with virtual time.
func (e *Engine) RunScheduled(now time.Time) int {
	return e.sched.runDue(now)
}

// PendingCommits reports how many deferred commits are in flight.
func (e *Engine) PendingCommits() int {
	return e.sched.pending()
}

func (e *Engine) initialState() *GameState {
	tasks := make([]*Task, len(e.catalog.Tasks))
	for i, spec := range e.catalog.Tasks {
		tasks[i] = &Task{
			ID:   spec.ID,
			Name: spec.Name,
			Cost: spec.Cost,
			XP:   spec.XP,
		}
	}

	s := &GameState{
		Grid:             e.createGrid(e.catalog.Rows, e.catalog.Cols),
		Energy:           e.catalog.StartEnergy,
		MaxEnergy:        e.catalog.MaxEnergy,
		Coins:            e.catalog.StartCoins,
		Gems:             e.catalog.StartGems,
		Level:            1,
		XP:               0,
		Orders:           []*Order{},
		Tasks:            tasks,
		LastEnergyUpdate: e.clock.Now().UnixMilli(),
		SpawnAnimations:  []*SpawnAnimation{},
		MergeAnimations:  []*MergeAnimation{},
		CoinAnimations:   []*CoinAnimation{},
	}
	return s
}

// newItem mints an item of the given type and level. MaxLevel is frozen from
// the catalog at creation time.
func (e *Engine) newItem(t catalog.ItemType, level int) *Item {
	return &Item{
		ID:       uuid.NewString(),
		Type:     t,
		Level:    level,
		MaxLevel: e.catalog.MaxLevel(t),
	}
}

// SetSelectedItem records which item the detail panel shows. An empty id
// clears the selection.
func (e *Engine) SetSelectedItem(itemID string) {
	e.state.SelectedItemID = itemID
}

// SetShowEnergyPurchase toggles the energy purchase prompt.
func (e *Engine) SetShowEnergyPurchase(show bool) {
	e.state.ShowEnergyPurchase = show
}
