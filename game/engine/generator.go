package engine

import "github.com/pastrysoft/merge-bakery/game/catalog"

// SpawnItem activates the generator in the given cell: it costs 1 energy,
// rolls the generator's probability table, and sends the spawned item flying
// to the nearest free cell. The item lands when the spawn animation
// completes, and only if the cell is still empty then.
func (e *Engine) SpawnItem(cellID string) bool {
	if e.state.Energy <= 0 {
		// Offer the paid refill path when the player can afford it.
		if e.state.Gems >= e.catalog.EnergyPrice {
			e.state.ShowEnergyPurchase = true
		}
		return false
	}

	generator := e.FindCellByID(cellID)
	if generator == nil || generator.Item == nil {
		return false
	}

	// Cells already claimed by an in-flight spawn don't count as free.
	empty := e.emptyCells(true)
	if len(empty) == 0 {
		e.ShowNotification("No space! Merge items to make room.", NotifyWarning)
		return false
	}

	if !e.ConsumeEnergy(1) {
		return false
	}

	spawnType, spawnLevel := e.rollSpawn(generator.Item.Type, generator.Item.Level)

	target := empty[0]
	best := manhattan(target, generator)
	for _, c := range empty[1:] {
		if d := manhattan(c, generator); d < best {
			best = d
			target = c
		}
	}

	item := e.newItem(spawnType, spawnLevel)
	now := e.clock.Now()
	anim := &SpawnAnimation{
		ID:         newAnimationID(),
		Item:       item,
		FromCellID: cellID,
		ToCellID:   target.ID,
		StartTime:  now.UnixMilli(),
	}
	e.state.SpawnAnimations = append(e.state.SpawnAnimations, anim)

	targetID := target.ID
	e.sched.after(now, SpawnDuration, func() {
		// Re-validate at commit time: something may have filled the cell
		// during the animation window.
		if cell := e.FindCellByID(targetID); cell != nil && cell.Item == nil {
			cell.Item = item
		}
		e.removeSpawnAnimation(anim.ID)
	})

	return true
}

// rollSpawn draws a (type, level) pair from the generator's probability table
// via cumulative probabilities. Absent or malformed tables fall back to
// coffee level 1.
func (e *Engine) rollSpawn(generatorType catalog.ItemType, generatorLevel int) (catalog.ItemType, int) {
	table := e.catalog.SpawnTable(generatorType, generatorLevel)

	spawnType := catalog.Coffee
	spawnLevel := 1

	if len(table) > 0 {
		draw := e.rng.Float64()
		cumulative := 0.0
		for _, out := range table {
			cumulative += out.Probability
			if draw < cumulative {
				spawnType = out.Type
				spawnLevel = out.Level
				if spawnLevel < 1 {
					spawnLevel = 1
				}
				break
			}
		}
	}

	return spawnType, spawnLevel
}
