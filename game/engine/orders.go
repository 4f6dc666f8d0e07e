package engine

import "github.com/pastrysoft/merge-bakery/game/catalog"

// GenerateOrder appends a new order drawn from the families the player can
// currently produce. It reports false when the order board is full or no
// orderable family is producible.
func (e *Engine) GenerateOrder() bool {
	levelSpec := e.catalog.LevelFor(e.state.Level)
	if len(e.state.Orders) >= levelSpec.MaxOrders {
		return false
	}

	viable := e.producibleFamilies()
	if len(viable) == 0 {
		return false
	}

	count := e.rng.IntN(e.catalog.MaxOrderItems) + 1

	maxItemLevel := levelSpec.MaxItemLevel
	if maxItemLevel > 6 {
		maxItemLevel = 6
	}

	items := make([]OrderItem, 0, count)
	coins := 0
	for i := 0; i < count; i++ {
		family := e.weightedFamily(viable)
		level := e.rng.IntN(maxItemLevel) + 1
		items = append(items, OrderItem{Type: family, Level: level})
		coins += level * e.catalog.RewardPerLevel
	}

	e.state.Orders = append(e.state.Orders, &Order{
		ID:     newAnimationID(),
		Items:  items,
		Reward: OrderReward{Coins: coins},
	})
	return true
}

// producibleFamilies scans the grid for generators and collects the families
// their current-level probability tables can emit, filtered to families with
// a positive order rarity. A level 2+ coffee generator's table includes tea,
// which is how tea becomes orderable.
func (e *Engine) producibleFamilies() []catalog.ItemType {
	seen := make(map[catalog.ItemType]bool)
	var families []catalog.ItemType

	for _, cell := range e.state.Grid {
		if cell.Item == nil || !cell.Item.Type.IsGenerator() {
			continue
		}
		for _, out := range e.catalog.SpawnTable(cell.Item.Type, cell.Item.Level) {
			if seen[out.Type] || e.catalog.Rarity(out.Type) <= 0 {
				continue
			}
			seen[out.Type] = true
			families = append(families, out.Type)
		}
	}

	return families
}

// weightedFamily picks a family with probability proportional to its rarity
// weight.
func (e *Engine) weightedFamily(families []catalog.ItemType) catalog.ItemType {
	total := 0.0
	for _, f := range families {
		total += e.catalog.Rarity(f)
	}

	draw := e.rng.Float64() * total
	for _, f := range families {
		draw -= e.catalog.Rarity(f)
		if draw <= 0 {
			return f
		}
	}
	return families[len(families)-1]
}

// CompleteOrder delivers an order: every requirement must be satisfiable by a
// distinct grid item, matched greedily left to right. On success the matched
// items are removed, the reward credited, the order deleted, and the board
// refilled up to the level cap. Anything short of a full match is a no-op.
func (e *Engine) CompleteOrder(orderID string) bool {
	orderIdx := -1
	for i, o := range e.state.Orders {
		if o.ID == orderID {
			orderIdx = i
			break
		}
	}
	if orderIdx == -1 {
		return false
	}
	order := e.state.Orders[orderIdx]

	used := make(map[string]bool, len(order.Items))
	matched := make([]*Cell, 0, len(order.Items))

	for _, req := range order.Items {
		var found *Cell
		for _, cell := range e.state.Grid {
			if used[cell.ID] || cell.Item == nil {
				continue
			}
			if cell.Item.Type == req.Type && cell.Item.Level == req.Level {
				found = cell
				break
			}
		}
		if found == nil {
			return false
		}
		used[found.ID] = true
		matched = append(matched, found)
	}

	for _, cell := range matched {
		cell.Item = nil
	}

	e.state.Coins += order.Reward.Coins
	e.state.Orders = append(e.state.Orders[:orderIdx], e.state.Orders[orderIdx+1:]...)

	// Refill the board. GenerateOrder returning false breaks the loop, so a
	// board with no producible families cannot spin forever.
	maxOrders := e.catalog.LevelFor(e.state.Level).MaxOrders
	for len(e.state.Orders) < maxOrders {
		if !e.GenerateOrder() {
			break
		}
	}

	return true
}
