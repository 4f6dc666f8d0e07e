package catalog

// ItemType identifies a merge-chain family. Generator families spawn the
// regular families at an energy cost.
type ItemType string

const (
	Coffee          ItemType = "coffee"
	Tea             ItemType = "tea"
	Bread           ItemType = "bread"
	GeneratorCoffee ItemType = "generator_coffee"
	GeneratorBread  ItemType = "generator_bread"
)

// IsGenerator reports whether the item family spawns other items.
func (t ItemType) IsGenerator() bool {
	return t == GeneratorCoffee || t == GeneratorBread
}

// ItemSpec describes one item family: its order rarity weight and the display
// name for each level. The number of levels is the family's max level.
type ItemSpec struct {
	Rarity float64        `json:"rarity"`
	Levels map[int]string `json:"levels"`
}

// SpawnOutcome is one row of a generator probability table.
type SpawnOutcome struct {
	Type        ItemType `json:"type"`
	Level       int      `json:"level"`
	Probability float64  `json:"probability"`
}

// LevelReward is granted when the player reaches a level: an item placed on
// the grid plus bonus energy.
type LevelReward struct {
	Type   ItemType `json:"type"`
	Level  int      `json:"level"`
	Energy int      `json:"energy"`
}

// LevelSpec configures one player level. XPThreshold is cumulative XP required
// to reach the level.
type LevelSpec struct {
	XPThreshold  int          `json:"xp_threshold"`
	MaxItemLevel int          `json:"max_item_level"`
	MaxOrders    int          `json:"max_orders"`
	Reward       *LevelReward `json:"reward,omitempty"`
}

// TaskSpec is one renovation task: pay Cost coins, earn XP.
type TaskSpec struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Cost int    `json:"cost"`
	XP   int    `json:"xp"`
}

// Catalog is the static game data: taxonomy, probability tables, progression
// thresholds, and the task list. Pure data, no behavior beyond lookups.
type Catalog struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	Rows int `json:"rows"`
	Cols int `json:"cols"`

	StartEnergy int `json:"start_energy"`
	MaxEnergy   int `json:"max_energy"`
	StartCoins  int `json:"start_coins"`
	StartGems   int `json:"start_gems"`

	// Energy purchase: EnergyPrice gems buy EnergyGrant energy.
	EnergyPrice int `json:"energy_price"`
	EnergyGrant int `json:"energy_grant"`

	// Orders: 1..MaxOrderItems requirements, each worth level*RewardPerLevel
	// coins.
	MaxOrderItems  int `json:"max_order_items"`
	RewardPerLevel int `json:"reward_per_level"`

	// The family seeded at the grid center on a fresh game.
	StartGenerator ItemType `json:"start_generator"`

	Items      map[ItemType]ItemSpec           `json:"items"`
	Generators map[ItemType]map[int][]SpawnOutcome `json:"generators"`
	Levels     map[int]LevelSpec               `json:"levels"`
	Tasks      []TaskSpec                      `json:"tasks"`
}

// MaxLevel returns the top level of a family, or 0 for unknown families.
func (c *Catalog) MaxLevel(t ItemType) int {
	spec, ok := c.Items[t]
	if !ok {
		return 0
	}
	return len(spec.Levels)
}

// Rarity returns the order rarity weight of a family.
func (c *Catalog) Rarity(t ItemType) float64 {
	return c.Items[t].Rarity
}

// DisplayName returns the per-level display name, or "" when undefined.
func (c *Catalog) DisplayName(t ItemType, level int) string {
	return c.Items[t].Levels[level]
}

// SpawnTable returns the probability table for a generator family at the
// given generator level, or nil when absent.
func (c *Catalog) SpawnTable(t ItemType, level int) []SpawnOutcome {
	tables, ok := c.Generators[t]
	if !ok {
		return nil
	}
	return tables[level]
}

// MaxDefinedLevel is the highest player level the catalog configures.
func (c *Catalog) MaxDefinedLevel() int {
	max := 0
	for lvl := range c.Levels {
		if lvl > max {
			max = lvl
		}
	}
	return max
}

// LevelFor returns the spec governing a player level, clamping past the top
// configured level the way the original data did.
func (c *Catalog) LevelFor(level int) LevelSpec {
	if spec, ok := c.Levels[level]; ok {
		return spec
	}
	return c.Levels[c.MaxDefinedLevel()]
}

// Task looks up a task spec by id.
func (c *Catalog) Task(id string) (TaskSpec, bool) {
	for _, t := range c.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return TaskSpec{}, false
}
