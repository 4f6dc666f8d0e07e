package engine

import (
	"testing"

	"github.com/pastrysoft/merge-bakery/game/catalog"
)

func clearGrid(eng *Engine) {
	for _, cell := range eng.State().Grid {
		cell.Item = nil
	}
}

func TestGenerateOrder(t *testing.T) {
	// Two requirements, both level 2.
	rng := &scriptRand{ints: []int{1, 1, 1}, floats: []float64{0.5}}
	eng, _ := newTestEngine(t, rng)

	if !eng.GenerateOrder() {
		t.Fatal("Expected order generation to succeed")
	}

	orders := eng.State().Orders
	if len(orders) != 1 {
		t.Fatalf("Expected 1 order, got %d", len(orders))
	}
	order := orders[0]
	if len(order.Items) != 2 {
		t.Fatalf("Expected 2 order items, got %d", len(order.Items))
	}
	for _, req := range order.Items {
		// The fresh board only has a bread generator, so only bread is
		// producible.
		if req.Type != catalog.Bread {
			t.Errorf("Expected bread requirement, got %s", req.Type)
		}
		if req.Level != 2 {
			t.Errorf("Expected level 2 requirement, got %d", req.Level)
		}
	}
	// Reward is level x 10 per requirement.
	if order.Reward.Coins != 40 {
		t.Errorf("Expected 40 coin reward, got %d", order.Reward.Coins)
	}
}

func TestGenerateOrderRespectsMaxOrders(t *testing.T) {
	eng, _ := newTestEngine(t, nil)

	// Level 1 allows 2 simultaneous orders.
	if !eng.GenerateOrder() || !eng.GenerateOrder() {
		t.Fatal("Expected the first two orders to succeed")
	}
	if eng.GenerateOrder() {
		t.Error("Expected generation past the order cap to be rejected")
	}
	if len(eng.State().Orders) != 2 {
		t.Errorf("Expected 2 orders, got %d", len(eng.State().Orders))
	}
}

func TestGenerateOrderCapsRequirementLevel(t *testing.T) {
	// Every IntN draw asks for the top index.
	rng := &scriptRand{ints: []int{2, 5, 5, 5}, floats: []float64{0.0}}
	eng, _ := newTestEngine(t, rng)

	if !eng.GenerateOrder() {
		t.Fatal("Expected order generation to succeed")
	}
	// Player level 1 caps requirements at item level 2.
	for _, req := range eng.State().Orders[0].Items {
		if req.Level > 2 {
			t.Errorf("Expected requirement level <= 2, got %d", req.Level)
		}
	}
}

func TestGenerateOrderNeedsProducibleFamily(t *testing.T) {
	eng, _ := newTestEngine(t, nil)
	clearGrid(eng)

	if eng.GenerateOrder() {
		t.Error("Expected generation without generators to be rejected")
	}

	// A plain item is not a generator.
	placeItem(eng, "0-0", catalog.Bread, 3)
	if eng.GenerateOrder() {
		t.Error("Expected generation without generators to be rejected")
	}
}

func TestProducibleFamiliesFollowGeneratorLevel(t *testing.T) {
	eng, _ := newTestEngine(t, nil)
	clearGrid(eng)

	has := func(families []catalog.ItemType, want catalog.ItemType) bool {
		for _, f := range families {
			if f == want {
				return true
			}
		}
		return false
	}

	placeItem(eng, "0-0", catalog.GeneratorCoffee, 1)
	families := eng.producibleFamilies()
	if !has(families, catalog.Coffee) {
		t.Error("Expected coffee from a level-1 coffee generator")
	}
	if has(families, catalog.Tea) {
		t.Error("Expected no tea from a level-1 coffee generator")
	}

	// Level 2 unlocks tea in the spawn table.
	eng.FindCellByID("0-0").Item.Level = 2
	families = eng.producibleFamilies()
	if !has(families, catalog.Tea) {
		t.Error("Expected tea from a level-2 coffee generator")
	}

	// Generators themselves have zero rarity and never appear.
	if has(families, catalog.GeneratorCoffee) {
		t.Error("Expected no generator family in the producible set")
	}
}

func TestCompleteOrder(t *testing.T) {
	eng, _ := newTestEngine(t, nil)
	clearGrid(eng)

	eng.state.Orders = []*Order{{
		ID: "order-1",
		Items: []OrderItem{
			{Type: catalog.Bread, Level: 1},
			{Type: catalog.Bread, Level: 1},
		},
		Reward: OrderReward{Coins: 20},
	}}
	placeItem(eng, "0-0", catalog.Bread, 1)
	placeItem(eng, "2-2", catalog.Bread, 1)

	if !eng.CompleteOrder("order-1") {
		t.Fatal("Expected order completion to succeed")
	}

	if eng.FindCellByID("0-0").Item != nil || eng.FindCellByID("2-2").Item != nil {
		t.Error("Expected matched items to be consumed")
	}
	if eng.State().Coins != 20 {
		t.Errorf("Expected 20 coins, got %d", eng.State().Coins)
	}
	for _, o := range eng.State().Orders {
		if o.ID == "order-1" {
			t.Error("Expected the completed order to be removed")
		}
	}
}

func TestCompleteOrderNeedsDistinctItems(t *testing.T) {
	eng, _ := newTestEngine(t, nil)
	clearGrid(eng)

	eng.state.Orders = []*Order{{
		ID: "order-1",
		Items: []OrderItem{
			{Type: catalog.Bread, Level: 1},
			{Type: catalog.Bread, Level: 1},
		},
		Reward: OrderReward{Coins: 20},
	}}
	// One bread cannot satisfy two requirements.
	placeItem(eng, "0-0", catalog.Bread, 1)

	if eng.CompleteOrder("order-1") {
		t.Fatal("Expected incomplete match to be rejected")
	}

	// The rejection is a full no-op.
	if eng.FindCellByID("0-0").Item == nil {
		t.Error("Expected the partial match to stay on the board")
	}
	if eng.State().Coins != 0 {
		t.Errorf("Expected no coins, got %d", eng.State().Coins)
	}
	if len(eng.State().Orders) != 1 {
		t.Error("Expected the order to survive")
	}
}

func TestCompleteOrderRefillsBoard(t *testing.T) {
	eng, _ := newTestEngine(t, nil)

	eng.state.Orders = []*Order{
		{ID: "order-1", Items: []OrderItem{{Type: catalog.Bread, Level: 1}}, Reward: OrderReward{Coins: 10}},
	}
	placeItem(eng, "0-0", catalog.Bread, 1)

	if !eng.CompleteOrder("order-1") {
		t.Fatal("Expected order completion to succeed")
	}

	// The starting generator is still on the board, so the order list refills
	// to the level-1 cap.
	if len(eng.State().Orders) != 2 {
		t.Errorf("Expected 2 orders after refill, got %d", len(eng.State().Orders))
	}
}

func TestCompleteOrderUnknownID(t *testing.T) {
	eng, _ := newTestEngine(t, nil)

	if eng.CompleteOrder("missing") {
		t.Error("Expected completion of an unknown order to be rejected")
	}
}
