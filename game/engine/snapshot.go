package engine

// Snapshot is the persisted subset of GameState. Selection, animation
// queues, the notification, and the purchase prompt are session-transient
// and deliberately absent; they come back empty on restore.
type Snapshot struct {
	Grid             []*Cell  `json:"grid"`
	Energy           int      `json:"energy"`
	MaxEnergy        int      `json:"maxEnergy"`
	Coins            int      `json:"coins"`
	Gems             int      `json:"gems"`
	Level            int      `json:"level"`
	XP               int      `json:"xp"`
	Orders           []*Order `json:"orders"`
	Tasks            []*Task  `json:"tasks"`
	LastEnergyUpdate int64    `json:"lastEnergyUpdateTime"`
}

// Snapshot captures the persistable state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Grid:             e.state.Grid,
		Energy:           e.state.Energy,
		MaxEnergy:        e.state.MaxEnergy,
		Coins:            e.state.Coins,
		Gems:             e.state.Gems,
		Level:            e.state.Level,
		XP:               e.state.XP,
		Orders:           e.state.Orders,
		Tasks:            e.state.Tasks,
		LastEnergyUpdate: e.state.LastEnergyUpdate,
	}
}

// Restore replaces the persisted state with a loaded snapshot and resets all
// transient state. In-flight deferred commits are discarded with it; the
// snapshot never references them.
func (e *Engine) Restore(s Snapshot) {
	e.sched = newScheduler()
	e.state = &GameState{
		Grid:             s.Grid,
		Energy:           s.Energy,
		MaxEnergy:        s.MaxEnergy,
		Coins:            s.Coins,
		Gems:             s.Gems,
		Level:            s.Level,
		XP:               s.XP,
		Orders:           s.Orders,
		Tasks:            s.Tasks,
		LastEnergyUpdate: s.LastEnergyUpdate,
		SpawnAnimations:  []*SpawnAnimation{},
		MergeAnimations:  []*MergeAnimation{},
		CoinAnimations:   []*CoinAnimation{},
	}
	if e.state.Orders == nil {
		e.state.Orders = []*Order{}
	}
	if e.state.Tasks == nil {
		e.state.Tasks = []*Task{}
	}
}
