package engine

import (
	"testing"
	"time"

	"github.com/pastrysoft/merge-bakery/game/catalog"
)

func TestSpawnItemHappyPath(t *testing.T) {
	eng, clk := newTestEngine(t, nil)

	if !eng.SpawnItem("4-3") {
		t.Fatal("Expected spawn from the starting generator to succeed")
	}

	if eng.State().Energy != 99 {
		t.Errorf("Expected energy 99 after spawn, got %d", eng.State().Energy)
	}
	if len(eng.State().SpawnAnimations) != 1 {
		t.Fatalf("Expected 1 spawn animation, got %d", len(eng.State().SpawnAnimations))
	}
	anim := eng.State().SpawnAnimations[0]
	if anim.FromCellID != "4-3" {
		t.Errorf("Expected animation from 4-3, got %s", anim.FromCellID)
	}
	// The bread generator's level-1 table always yields flour.
	if anim.Item.Type != catalog.Bread || anim.Item.Level != 1 {
		t.Errorf("Expected bread level 1, got %s level %d", anim.Item.Type, anim.Item.Level)
	}

	// The item is in flight, not on the board.
	target := eng.FindCellByID(anim.ToCellID)
	if target.Item != nil {
		t.Fatal("Expected target cell to stay empty during the animation")
	}
	if manhattan(target, eng.FindCellByID("4-3")) != 1 {
		t.Errorf("Expected the nearest free cell, got %s", anim.ToCellID)
	}

	clk.Advance(SpawnDuration + time.Millisecond)
	eng.RunScheduled(clk.Now())

	if target.Item == nil || target.Item.ID != anim.Item.ID {
		t.Error("Expected the spawned item to land in the target cell")
	}
	if len(eng.State().SpawnAnimations) != 0 {
		t.Error("Expected the spawn animation to be cleaned up")
	}
}

func TestSpawnItemOutOfEnergy(t *testing.T) {
	eng, _ := newTestEngine(t, nil)
	eng.state.Energy = 0

	if eng.SpawnItem("4-3") {
		t.Fatal("Expected spawn with no energy to be rejected")
	}
	// Gems cover the refill price, so the purchase prompt opens.
	if !eng.State().ShowEnergyPurchase {
		t.Error("Expected the energy purchase prompt")
	}

	eng.SetShowEnergyPurchase(false)
	eng.state.Gems = 5
	if eng.SpawnItem("4-3") {
		t.Fatal("Expected spawn with no energy to be rejected")
	}
	if eng.State().ShowEnergyPurchase {
		t.Error("Expected no purchase prompt when gems cannot cover the price")
	}
}

func TestSpawnItemNoSpace(t *testing.T) {
	eng, _ := newTestEngine(t, nil)

	for _, cell := range eng.State().Grid {
		if cell.Item == nil {
			cell.Item = eng.newItem(catalog.Coffee, 1)
		}
	}

	if eng.SpawnItem("4-3") {
		t.Fatal("Expected spawn on a full board to be rejected")
	}
	// The rejection costs nothing.
	if eng.State().Energy != 100 {
		t.Errorf("Expected energy untouched at 100, got %d", eng.State().Energy)
	}
	n := eng.State().Notification
	if n == nil || n.Type != NotifyWarning {
		t.Fatal("Expected a warning notification")
	}
}

func TestSpawnItemRejectsEmptyCell(t *testing.T) {
	eng, _ := newTestEngine(t, nil)

	if eng.SpawnItem("0-0") {
		t.Error("Expected spawn from an empty cell to be rejected")
	}
	if eng.SpawnItem("99-99") {
		t.Error("Expected spawn from an unknown cell to be rejected")
	}
	if eng.State().Energy != 100 {
		t.Errorf("Expected energy untouched at 100, got %d", eng.State().Energy)
	}
}

func TestSpawnCommitSkipsFilledTarget(t *testing.T) {
	eng, clk := newTestEngine(t, nil)

	if !eng.SpawnItem("4-3") {
		t.Fatal("Expected spawn to succeed")
	}
	anim := eng.State().SpawnAnimations[0]

	// Something else lands in the target cell during the animation.
	blocker := eng.newItem(catalog.Tea, 3)
	eng.FindCellByID(anim.ToCellID).Item = blocker

	clk.Advance(SpawnDuration + time.Millisecond)
	eng.RunScheduled(clk.Now())

	got := eng.FindCellByID(anim.ToCellID).Item
	if got == nil || got.ID != blocker.ID {
		t.Error("Expected the occupying item to survive the stale commit")
	}
	if len(eng.State().SpawnAnimations) != 0 {
		t.Error("Expected the spawn animation to be cleaned up regardless")
	}
}

func TestSpawnSkipsCellsClaimedByPendingSpawns(t *testing.T) {
	eng, _ := newTestEngine(t, nil)

	if !eng.SpawnItem("4-3") {
		t.Fatal("Expected first spawn to succeed")
	}
	first := eng.State().SpawnAnimations[0].ToCellID

	if !eng.SpawnItem("4-3") {
		t.Fatal("Expected second spawn to succeed")
	}
	second := eng.State().SpawnAnimations[1].ToCellID

	if first == second {
		t.Errorf("Expected distinct target cells, both went to %s", first)
	}
}

func TestRollSpawnCumulativeDraw(t *testing.T) {
	cases := []struct {
		name      string
		draw      float64
		wantType  catalog.ItemType
		wantLevel int
	}{
		{"low draw picks the first row", 0.0, catalog.Coffee, 1},
		{"draw below boundary stays on coffee", 0.79, catalog.Coffee, 1},
		{"draw at boundary moves to tea", 0.8, catalog.Tea, 1},
		{"high draw picks the last row", 0.99, catalog.Tea, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eng, _ := newTestEngine(t, &scriptRand{floats: []float64{tc.draw}})

			// Level-2 coffee generator: 0.8 coffee, 0.2 tea.
			gotType, gotLevel := eng.rollSpawn(catalog.GeneratorCoffee, 2)
			if gotType != tc.wantType || gotLevel != tc.wantLevel {
				t.Errorf("Expected %s level %d, got %s level %d",
					tc.wantType, tc.wantLevel, gotType, gotLevel)
			}
		})
	}
}

func TestRollSpawnMissingTableFallsBack(t *testing.T) {
	eng, _ := newTestEngine(t, nil)

	gotType, gotLevel := eng.rollSpawn(catalog.Bread, 1)
	if gotType != catalog.Coffee || gotLevel != 1 {
		t.Errorf("Expected coffee level 1 fallback, got %s level %d", gotType, gotLevel)
	}
}
