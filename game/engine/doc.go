// Package engine provides the core game logic for the Merge Bakery game.
//
// The engine package implements the game mechanics including:
//   - Grid-based item placement, merging, and swapping
//   - Generator activation with probability-table spawn rolls
//   - Order generation, matching, and fulfillment
//   - Player progression (coins, gems, energy, level, XP, tasks)
//   - The animation ledger with deferred state commits
//
// Core Types:
//
// Engine owns one playthrough's GameState and exposes every operation the UI
// collaborator calls. Item, Cell, Order, and Task mirror the persisted data
// model; Snapshot is the subset written to disk.
//
// Usage:
//
//	eng, err := engine.NewEngine(catalog.Default(), clock.RealClock{}, engine.DefaultRand())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	eng.SpawnItem("4-3")
//	eng.RunScheduled(time.Now().Add(engine.SpawnDuration))
//	state := eng.State()
//
// Deferred Commits:
//
// Spawn, merge-all, coin, and notification effects do not mutate state
// immediately. Each operation enqueues an animation record and schedules a
// commit a fixed duration later; RunScheduled executes all due commits. The
// clock is injected, so tests drive commits with virtual time. A spawn commit
// re-validates that its destination cell is still empty, and a merge-all
// commit re-validates each recorded pairing, so nothing that moved during the
// animation window can be overwritten.
package engine
