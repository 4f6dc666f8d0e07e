package engine

// MoveItem resolves a drag from one cell to another into a placement, a
// merge, or a swap. It reports whether any state changed. No energy or
// currency cost on any path.
func (e *Engine) MoveItem(fromID, toID string) bool {
	if fromID == toID {
		return false
	}

	from := e.FindCellByID(fromID)
	to := e.FindCellByID(toID)
	if from == nil || to == nil || from.Item == nil {
		return false
	}

	switch {
	case to.Item == nil:
		// Placement
		to.Item = from.Item
		from.Item = nil

	case to.Item.Type == from.Item.Type &&
		to.Item.Level == from.Item.Level &&
		to.Item.Level < to.Item.MaxLevel:
		// Merge: the destination becomes a brand-new item one level up.
		merged := e.newItem(to.Item.Type, to.Item.Level+1)
		to.Item = merged
		from.Item = nil
		e.state.SelectedItemID = merged.ID

	default:
		// Swap
		from.Item, to.Item = to.Item, from.Item
	}

	return true
}

// mergePairing records one recipient/donor pair chosen by MergeAllItems. The
// item ids are re-validated at commit time.
type mergePairing struct {
	recipientCellID string
	recipientItemID string
	donorCellID     string
	donorItemID     string
}

// MergeAllItems pairs up every item on the board matching the given item's
// type and level and merges each pair after the merge animation completes.
// Each pair consolidates one level only; four matching items yield two merged
// items, not one.
func (e *Engine) MergeAllItems(itemID string) bool {
	origin := e.FindCellContaining(itemID)
	if origin == nil {
		return false
	}
	item := origin.Item
	if item.Level >= item.MaxLevel {
		return false
	}

	// Candidate pool in grid scan order.
	var pool []*Cell
	for _, c := range e.state.Grid {
		if c.Item != nil && c.Item.Type == item.Type && c.Item.Level == item.Level {
			pool = append(pool, c)
		}
	}
	if len(pool) < 2 {
		return false
	}

	pairings := e.pairNearest(pool, origin)

	now := e.clock.Now()
	for _, p := range pairings {
		donor := e.FindCellByID(p.donorCellID)
		e.state.MergeAnimations = append(e.state.MergeAnimations, &MergeAnimation{
			ID:         newAnimationID(),
			Item:       donor.Item,
			FromCellID: p.donorCellID,
			ToCellID:   p.recipientCellID,
			StartTime:  now.UnixMilli(),
		})
	}

	selected := e.state.SelectedItemID
	e.sched.after(now, MergeDuration, func() {
		e.commitMergeAll(pairings, selected)
	})

	return true
}

// pairNearest greedily picks a recipient (preferring the originally selected
// cell), then the donor with minimum squared distance to it, until fewer than
// two candidates remain.
func (e *Engine) pairNearest(pool []*Cell, origin *Cell) []mergePairing {
	var pairings []mergePairing

	remove := func(cell *Cell) {
		for i, c := range pool {
			if c == cell {
				pool = append(pool[:i], pool[i+1:]...)
				return
			}
		}
	}

	for len(pool) >= 2 {
		recipient := pool[0]
		for _, c := range pool {
			if c == origin {
				recipient = c
				break
			}
		}
		remove(recipient)

		donor := pool[0]
		best := squaredDistance(recipient, donor)
		for _, c := range pool[1:] {
			if d := squaredDistance(recipient, c); d < best {
				best = d
				donor = c
			}
		}
		remove(donor)

		pairings = append(pairings, mergePairing{
			recipientCellID: recipient.ID,
			recipientItemID: recipient.Item.ID,
			donorCellID:     donor.ID,
			donorItemID:     donor.Item.ID,
		})
	}

	return pairings
}

// commitMergeAll applies recorded pairings once the animation window closes.
// Each pairing is re-validated: if either cell no longer holds the recorded
// item the pairing is skipped, so mutations that slipped in during the
// animation cannot be corrupted.
func (e *Engine) commitMergeAll(pairings []mergePairing, selectedAtEnqueue string) {
	for _, p := range pairings {
		recipient := e.FindCellByID(p.recipientCellID)
		donor := e.FindCellByID(p.donorCellID)
		if recipient == nil || donor == nil {
			continue
		}
		if recipient.Item == nil || recipient.Item.ID != p.recipientItemID {
			continue
		}
		if donor.Item == nil || donor.Item.ID != p.donorItemID {
			continue
		}

		merged := e.newItem(recipient.Item.Type, recipient.Item.Level+1)
		consumedSelection := p.recipientItemID == selectedAtEnqueue || p.donorItemID == selectedAtEnqueue
		recipient.Item = merged
		donor.Item = nil

		if consumedSelection && e.state.SelectedItemID == selectedAtEnqueue {
			e.state.SelectedItemID = merged.ID
		}
	}

	e.state.MergeAnimations = e.state.MergeAnimations[:0]
}
