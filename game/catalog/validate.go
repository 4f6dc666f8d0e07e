package catalog

import (
	"fmt"
	"math"
	"sort"
)

const (
	MinGridDim = 3
	MaxGridDim = 20

	// Probability tables must sum to 1 within this tolerance.
	probabilityTolerance = 1e-6
)

// Validate checks a catalog for correctness and playability.
func Validate(c *Catalog) error {
	if c.Name == "" {
		return fmt.Errorf("catalog validation: name is required")
	}
	if c.Rows < MinGridDim || c.Rows > MaxGridDim {
		return fmt.Errorf("catalog validation: rows must be between %d and %d, got %d", MinGridDim, MaxGridDim, c.Rows)
	}
	if c.Cols < MinGridDim || c.Cols > MaxGridDim {
		return fmt.Errorf("catalog validation: cols must be between %d and %d, got %d", MinGridDim, MaxGridDim, c.Cols)
	}
	if c.MaxEnergy <= 0 {
		return fmt.Errorf("catalog validation: max_energy must be positive, got %d", c.MaxEnergy)
	}
	if c.StartEnergy < 0 || c.StartEnergy > c.MaxEnergy {
		return fmt.Errorf("catalog validation: start_energy must be between 0 and max_energy (%d), got %d", c.MaxEnergy, c.StartEnergy)
	}
	if c.EnergyPrice <= 0 || c.EnergyGrant <= 0 {
		return fmt.Errorf("catalog validation: energy_price and energy_grant must be positive")
	}
	if c.MaxOrderItems <= 0 {
		return fmt.Errorf("catalog validation: max_order_items must be positive, got %d", c.MaxOrderItems)
	}
	if c.RewardPerLevel <= 0 {
		return fmt.Errorf("catalog validation: reward_per_level must be positive, got %d", c.RewardPerLevel)
	}

	if len(c.Items) == 0 {
		return fmt.Errorf("catalog validation: at least one item family is required")
	}
	for t, spec := range c.Items {
		if len(spec.Levels) == 0 {
			return fmt.Errorf("catalog validation: item %q has no levels", t)
		}
		// Levels must be contiguous from 1 so maxLevel == len(levels).
		for lvl := 1; lvl <= len(spec.Levels); lvl++ {
			if _, ok := spec.Levels[lvl]; !ok {
				return fmt.Errorf("catalog validation: item %q is missing level %d", t, lvl)
			}
		}
		if spec.Rarity < 0 {
			return fmt.Errorf("catalog validation: item %q has negative rarity", t)
		}
	}

	if _, ok := c.Items[c.StartGenerator]; !ok {
		return fmt.Errorf("catalog validation: start_generator %q is not a catalog item", c.StartGenerator)
	}
	if !c.StartGenerator.IsGenerator() {
		return fmt.Errorf("catalog validation: start_generator %q is not a generator family", c.StartGenerator)
	}

	for gen, tables := range c.Generators {
		if _, ok := c.Items[gen]; !ok {
			return fmt.Errorf("catalog validation: generator %q is not a catalog item", gen)
		}
		for level, table := range tables {
			if level < 1 || level > c.MaxLevel(gen) {
				return fmt.Errorf("catalog validation: generator %q has table for out-of-range level %d", gen, level)
			}
			sum := 0.0
			for _, out := range table {
				spec, ok := c.Items[out.Type]
				if !ok {
					return fmt.Errorf("catalog validation: generator %q level %d spawns unknown item %q", gen, level, out.Type)
				}
				if out.Level < 1 || out.Level > len(spec.Levels) {
					return fmt.Errorf("catalog validation: generator %q level %d spawns %q at invalid level %d", gen, level, out.Type, out.Level)
				}
				if out.Probability <= 0 {
					return fmt.Errorf("catalog validation: generator %q level %d has non-positive probability for %q", gen, level, out.Type)
				}
				sum += out.Probability
			}
			if math.Abs(sum-1.0) > probabilityTolerance {
				return fmt.Errorf("catalog validation: generator %q level %d probabilities sum to %g, want 1", gen, level, sum)
			}
		}
	}

	if err := validateLevels(c); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Tasks))
	totalXP := 0
	for _, task := range c.Tasks {
		if task.ID == "" {
			return fmt.Errorf("catalog validation: task %q has empty id", task.Name)
		}
		if seen[task.ID] {
			return fmt.Errorf("catalog validation: duplicate task id %q", task.ID)
		}
		seen[task.ID] = true
		if task.Cost < 0 || task.XP < 0 {
			return fmt.Errorf("catalog validation: task %q has negative cost or xp", task.ID)
		}
		totalXP += task.XP
	}

	// Every configured level must be reachable from the task economy.
	if top := c.Levels[c.MaxDefinedLevel()]; totalXP < top.XPThreshold {
		return fmt.Errorf("catalog validation: tasks grant %d XP total but level %d needs %d", totalXP, c.MaxDefinedLevel(), top.XPThreshold)
	}

	return nil
}

func validateLevels(c *Catalog) error {
	if len(c.Levels) == 0 {
		return fmt.Errorf("catalog validation: at least one player level is required")
	}

	levels := make([]int, 0, len(c.Levels))
	for lvl := range c.Levels {
		levels = append(levels, lvl)
	}
	sort.Ints(levels)

	if levels[0] != 1 {
		return fmt.Errorf("catalog validation: player levels must start at 1, got %d", levels[0])
	}

	prev := -1
	for _, lvl := range levels {
		spec := c.Levels[lvl]
		if spec.XPThreshold <= prev && lvl != 1 {
			return fmt.Errorf("catalog validation: level %d threshold %d does not increase", lvl, spec.XPThreshold)
		}
		prev = spec.XPThreshold

		if spec.MaxItemLevel < 1 {
			return fmt.Errorf("catalog validation: level %d max_item_level must be at least 1", lvl)
		}
		if spec.MaxOrders < 1 {
			return fmt.Errorf("catalog validation: level %d max_orders must be at least 1", lvl)
		}
		if r := spec.Reward; r != nil {
			rewardSpec, ok := c.Items[r.Type]
			if !ok {
				return fmt.Errorf("catalog validation: level %d rewards unknown item %q", lvl, r.Type)
			}
			if r.Level < 1 || r.Level > len(rewardSpec.Levels) {
				return fmt.Errorf("catalog validation: level %d rewards %q at invalid level %d", lvl, r.Type, r.Level)
			}
		}
	}

	return nil
}
