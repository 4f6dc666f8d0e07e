package engine

import (
	"testing"
	"time"

	"github.com/pastrysoft/merge-bakery/game/catalog"
	"github.com/pastrysoft/merge-bakery/game/clock"
)

// scriptRand replays a fixed sequence so probability rolls are pinned.
// Exhausted sequences repeat their last value.
type scriptRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *scriptRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[r.fi]
	if r.fi < len(r.floats)-1 {
		r.fi++
	}
	return v
}

func (r *scriptRand) IntN(n int) int {
	v := 0
	if len(r.ints) > 0 {
		v = r.ints[r.ii]
		if r.ii < len(r.ints)-1 {
			r.ii++
		}
	}
	if v >= n {
		v = n - 1
	}
	return v
}

func newTestEngine(t *testing.T, rng Rand) (*Engine, *clock.FakeClock) {
	t.Helper()

	clk := clock.NewFakeClock(time.Unix(1700000000, 0))
	if rng == nil {
		rng = NewRand(42)
	}

	eng, err := NewEngine(catalog.Default(), clk, rng)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return eng, clk
}

// runAll advances the clock past every animation window and runs due commits.
func runAll(eng *Engine, clk *clock.FakeClock) {
	clk.Advance(NotificationDuration + time.Second)
	eng.RunScheduled(clk.Now())
}

func TestNewEngineInitialState(t *testing.T) {
	eng, _ := newTestEngine(t, nil)
	state := eng.State()

	cat := catalog.Default()
	if len(state.Grid) != cat.Rows*cat.Cols {
		t.Fatalf("Expected %d cells, got %d", cat.Rows*cat.Cols, len(state.Grid))
	}
	if state.Energy != cat.StartEnergy {
		t.Errorf("Expected starting energy %d, got %d", cat.StartEnergy, state.Energy)
	}
	if state.Coins != cat.StartCoins {
		t.Errorf("Expected starting coins %d, got %d", cat.StartCoins, state.Coins)
	}
	if state.Gems != cat.StartGems {
		t.Errorf("Expected starting gems %d, got %d", cat.StartGems, state.Gems)
	}
	if state.Level != 1 {
		t.Errorf("Expected level 1, got %d", state.Level)
	}
	if len(state.Tasks) != len(cat.Tasks) {
		t.Errorf("Expected %d tasks, got %d", len(cat.Tasks), len(state.Tasks))
	}
}

func TestNewEngineSeedsCenterGenerator(t *testing.T) {
	eng, _ := newTestEngine(t, nil)

	cat := catalog.Default()
	centerID := "4-3" // rows/2, cols/2 for 9x7
	center := eng.FindCellByID(centerID)
	if center == nil {
		t.Fatalf("Center cell %s not found", centerID)
	}
	if center.Item == nil {
		t.Fatal("Expected an item at the center cell")
	}
	if center.Item.Type != cat.StartGenerator {
		t.Errorf("Expected center item %s, got %s", cat.StartGenerator, center.Item.Type)
	}
	if center.Item.Level != 1 {
		t.Errorf("Expected center generator level 1, got %d", center.Item.Level)
	}

	// Every other cell is empty.
	items := 0
	for _, cell := range eng.State().Grid {
		if cell.Item != nil {
			items++
		}
	}
	if items != 1 {
		t.Errorf("Expected exactly 1 item on a fresh board, got %d", items)
	}
}

func TestNewEngineRejectsInvalidCatalog(t *testing.T) {
	cat := catalog.Default()
	cat.Rows = 0

	if _, err := NewEngine(cat, nil, nil); err == nil {
		t.Fatal("Expected error for invalid catalog")
	}
}

func TestCellIDsAreRowCol(t *testing.T) {
	eng, _ := newTestEngine(t, nil)

	cell := eng.FindCellByID("0-0")
	if cell == nil || cell.Row != 0 || cell.Col != 0 {
		t.Fatal("Expected cell 0-0 at row 0, col 0")
	}
	cell = eng.FindCellByID("8-6")
	if cell == nil || cell.Row != 8 || cell.Col != 6 {
		t.Fatal("Expected cell 8-6 at row 8, col 6")
	}
	if eng.FindCellByID("9-0") != nil {
		t.Error("Expected no cell 9-0 on a 9x7 board")
	}
}

func TestSetSelectedItem(t *testing.T) {
	eng, _ := newTestEngine(t, nil)

	eng.SetSelectedItem("some-id")
	if eng.State().SelectedItemID != "some-id" {
		t.Errorf("Expected selection some-id, got %q", eng.State().SelectedItemID)
	}

	eng.SetSelectedItem("")
	if eng.State().SelectedItemID != "" {
		t.Error("Expected empty id to clear the selection")
	}
}

func TestDeleteItem(t *testing.T) {
	eng, _ := newTestEngine(t, nil)

	cell := eng.FindCellByID("0-0")
	cell.Item = eng.newItem(catalog.Coffee, 2)
	eng.SetSelectedItem(cell.Item.ID)

	eng.DeleteItem(cell.Item.ID)

	if cell.Item != nil {
		t.Error("Expected item to be removed")
	}
	if eng.State().SelectedItemID != "" {
		t.Error("Expected matching selection to be cleared")
	}

	// Unknown id is a silent no-op.
	eng.DeleteItem("nope")
}

func TestItemMaxLevelFrozenFromCatalog(t *testing.T) {
	eng, _ := newTestEngine(t, nil)

	item := eng.newItem(catalog.Coffee, 1)
	if item.MaxLevel != 6 {
		t.Errorf("Expected coffee max level 6, got %d", item.MaxLevel)
	}

	item = eng.newItem(catalog.GeneratorBread, 1)
	if item.MaxLevel != 4 {
		t.Errorf("Expected bread generator max level 4, got %d", item.MaxLevel)
	}
}

func TestNotificationAutoDismiss(t *testing.T) {
	eng, clk := newTestEngine(t, nil)

	eng.ShowNotification("hello", NotifyInfo)
	if eng.State().Notification == nil {
		t.Fatal("Expected a notification")
	}

	// Not yet due.
	clk.Advance(NotificationDuration - time.Millisecond)
	eng.RunScheduled(clk.Now())
	if eng.State().Notification == nil {
		t.Fatal("Notification dismissed too early")
	}

	clk.Advance(2 * time.Millisecond)
	eng.RunScheduled(clk.Now())
	if eng.State().Notification != nil {
		t.Error("Expected notification to auto-dismiss")
	}
}

func TestNotificationReplacementNotDismissedEarly(t *testing.T) {
	eng, clk := newTestEngine(t, nil)

	eng.ShowNotification("first", NotifyInfo)
	clk.Advance(NotificationDuration / 2)
	eng.ShowNotification("second", NotifyWarning)

	// The first notification's dismiss fires but must not clear the second.
	clk.Advance(NotificationDuration/2 + time.Millisecond)
	eng.RunScheduled(clk.Now())

	if eng.State().Notification == nil {
		t.Fatal("Second notification cleared by the first's dismiss")
	}
	if eng.State().Notification.Message != "second" {
		t.Errorf("Expected message %q, got %q", "second", eng.State().Notification.Message)
	}

	clk.Advance(NotificationDuration)
	eng.RunScheduled(clk.Now())
	if eng.State().Notification != nil {
		t.Error("Expected second notification to dismiss at its own deadline")
	}
}

func TestCoinAnimationLifecycle(t *testing.T) {
	eng, clk := newTestEngine(t, nil)

	id := eng.AddCoinAnimation(10, 20, 50, nil, nil)
	if len(eng.State().CoinAnimations) != 1 {
		t.Fatalf("Expected 1 coin animation, got %d", len(eng.State().CoinAnimations))
	}
	if eng.State().CoinAnimations[0].ID != id {
		t.Error("Expected returned id to match the queued animation")
	}

	clk.Advance(CoinDuration + time.Millisecond)
	eng.RunScheduled(clk.Now())
	if len(eng.State().CoinAnimations) != 0 {
		t.Error("Expected coin animation to be cleaned up")
	}
}
