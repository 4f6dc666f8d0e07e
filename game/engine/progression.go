package engine

// ConsumeEnergy deducts energy and stamps the regen timestamp. It reports
// false and leaves state untouched when there is not enough.
func (e *Engine) ConsumeEnergy(amount int) bool {
	if e.state.Energy < amount {
		return false
	}
	e.state.Energy -= amount
	e.state.LastEnergyUpdate = e.clock.Now().UnixMilli()
	return true
}

// RestoreEnergy grants reward or purchased energy. It deliberately bypasses
// MaxEnergy and leaves the regen timestamp alone: paid and reward energy is
// never wasted by the cap, only ambient regeneration is (see RegenTick).
func (e *Engine) RestoreEnergy(amount int) {
	e.state.Energy += amount
}

// RegenTick is the passive regeneration step, called once per
// EnergyTickInterval by the environment. While below MaxEnergy it grants one
// energy and stamps the timestamp.
func (e *Engine) RegenTick() {
	if e.state.Energy >= e.state.MaxEnergy {
		return
	}
	e.state.Energy++
	e.state.LastEnergyUpdate = e.clock.Now().UnixMilli()
}

// ProcessOfflineProgress reconciles wall-clock time that passed while the
// session was closed: one energy per elapsed tick, clamped to MaxEnergy. The
// timestamp always advances to now so the same window is never credited
// twice.
func (e *Engine) ProcessOfflineProgress() int {
	now := e.clock.Now().UnixMilli()
	elapsed := now - e.state.LastEnergyUpdate
	restored := 0

	if elapsed > 0 {
		restore := int(elapsed / EnergyTickInterval.Milliseconds())
		if restore > 0 && e.state.Energy < e.state.MaxEnergy {
			before := e.state.Energy
			e.state.Energy += restore
			if e.state.Energy > e.state.MaxEnergy {
				e.state.Energy = e.state.MaxEnergy
			}
			restored = e.state.Energy - before
		}
	}

	e.state.LastEnergyUpdate = now
	return restored
}

// PurchaseEnergy trades gems for an energy refill at the catalog's fixed
// price. Insufficient gems fail silently.
func (e *Engine) PurchaseEnergy() bool {
	if e.state.Gems < e.catalog.EnergyPrice {
		return false
	}
	e.state.Gems -= e.catalog.EnergyPrice
	e.RestoreEnergy(e.catalog.EnergyGrant)
	e.state.ShowEnergyPurchase = false
	e.ShowNotification("Purchased energy!", NotifySuccess)
	return true
}

// CompleteTask pays a task's coin cost, marks it completed, grants its XP,
// and evaluates a level-up. Already-completed tasks and unaffordable costs
// are a no-op.
//
// Level advancement is a single step per call: a task granting enough XP to
// cross two thresholds yields one level now and the next one on a later
// completion.
func (e *Engine) CompleteTask(taskID string) bool {
	var task *Task
	for _, t := range e.state.Tasks {
		if t.ID == taskID {
			task = t
			break
		}
	}
	if task == nil || task.Completed || e.state.Coins < task.Cost {
		return false
	}

	e.state.Coins -= task.Cost
	task.Completed = true
	e.state.XP += task.XP

	e.evaluateLevelUp()
	return true
}

func (e *Engine) evaluateLevelUp() {
	next, ok := e.catalog.Levels[e.state.Level+1]
	if !ok || e.state.XP < next.XPThreshold {
		return
	}

	e.state.Level++

	reward := next.Reward
	if reward == nil {
		e.ShowNotification("Level up!", NotifySuccess)
		return
	}

	// Place the reward item in the first empty cell. With a full board the
	// item is dropped; only the notification differs.
	placed := false
	for _, cell := range e.state.Grid {
		if cell.Item == nil {
			cell.Item = e.newItem(reward.Type, reward.Level)
			placed = true
			break
		}
	}

	if placed {
		e.ShowNotification("Level up! A new reward landed on your board.", NotifySuccess)
	} else {
		e.ShowNotification("Level up! No space for your reward item.", NotifyWarning)
	}

	if reward.Energy > 0 {
		e.RestoreEnergy(reward.Energy)
	}
}
