package engine

import (
	"time"

	"github.com/pastrysoft/merge-bakery/game/catalog"
)

// Animation and notification timing. Deferred commits are scheduled these
// durations after the triggering operation; see scheduler.go.
const (
	SpawnDuration        = 400 * time.Millisecond
	MergeDuration        = 500 * time.Millisecond
	CoinDuration         = 800 * time.Millisecond
	NotificationDuration = 3 * time.Second

	// Passive regen grants 1 energy per tick while below max.
	EnergyTickInterval = 10 * time.Second
)

// Item is one collectible on the grid. A merge produces a new Item with a
// fresh ID; ids are never reused once consumed.
type Item struct {
	ID       string           `json:"id"`
	Type     catalog.ItemType `json:"type"`
	Level    int              `json:"level"`
	MaxLevel int              `json:"maxLevel"`
}

// Cell is one grid slot. ID, Row and Col never change after creation; only
// Item does.
type Cell struct {
	ID   string `json:"id"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	Item *Item  `json:"item"`
}

// OrderItem is one requirement of an order: any grid item of this type and
// level satisfies it.
type OrderItem struct {
	Type  catalog.ItemType `json:"type"`
	Level int              `json:"level"`
}

// OrderReward is the payout for delivering an order.
type OrderReward struct {
	Coins int `json:"coins"`
}

// Order is a demand contract. Its requirement list is immutable once created;
// the order is deleted on fulfillment.
type Order struct {
	ID     string      `json:"id"`
	Items  []OrderItem `json:"items"`
	Reward OrderReward `json:"reward"`
}

// Task is one renovation task. Completed flips false to true exactly once.
type Task struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Cost      int    `json:"cost"`
	XP        int    `json:"xp"`
	Completed bool   `json:"completed"`
}

// NotificationType classifies user-facing notifications.
type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifyWarning NotificationType = "warning"
	NotifyError   NotificationType = "error"
	NotifySuccess NotificationType = "success"
)

// Notification is an ephemeral user-facing message, auto-dismissed after
// NotificationDuration unless replaced first.
type Notification struct {
	ID      string           `json:"id"`
	Message string           `json:"message"`
	Type    NotificationType `json:"type"`
}

// SpawnAnimation tracks an item flying from a generator to its target cell.
// The item lands in the target cell when the animation completes.
type SpawnAnimation struct {
	ID         string `json:"id"`
	Item       *Item  `json:"item"`
	FromCellID string `json:"fromCellId"`
	ToCellID   string `json:"toCellId"`
	StartTime  int64  `json:"startTime"`
}

// MergeAnimation tracks a donor item flying toward its merge recipient.
type MergeAnimation struct {
	ID         string `json:"id"`
	Item       *Item  `json:"item"`
	FromCellID string `json:"fromCellId"`
	ToCellID   string `json:"toCellId"`
	StartTime  int64  `json:"startTime"`
}

// CoinAnimation tracks coins flying to the currency display.
type CoinAnimation struct {
	ID        string   `json:"id"`
	Amount    int      `json:"amount"`
	FromX     float64  `json:"fromX"`
	FromY     float64  `json:"fromY"`
	ToX       *float64 `json:"toX,omitempty"`
	ToY       *float64 `json:"toY,omitempty"`
	StartTime int64    `json:"startTime"`
}

// GameState is the complete engine state. The persisted subset is defined by
// Snapshot (see snapshot.go); the animation lists, selection, notification,
// and purchase prompt are session-transient.
type GameState struct {
	Grid []*Cell `json:"grid"`

	Energy    int `json:"energy"`
	MaxEnergy int `json:"maxEnergy"`
	Coins     int `json:"coins"`
	Gems      int `json:"gems"`

	Level int `json:"level"`
	XP    int `json:"xp"`

	Orders []*Order `json:"orders"`
	Tasks  []*Task  `json:"tasks"`

	// Unix milliseconds of the last regen-relevant energy change.
	LastEnergyUpdate int64 `json:"lastEnergyUpdateTime"`

	SelectedItemID     string            `json:"selectedItemId,omitempty"`
	SpawnAnimations    []*SpawnAnimation `json:"spawnAnimations"`
	MergeAnimations    []*MergeAnimation `json:"mergeAnimations"`
	CoinAnimations     []*CoinAnimation  `json:"coinAnimations"`
	Notification       *Notification     `json:"notification,omitempty"`
	ShowEnergyPurchase bool              `json:"showEnergyPurchase"`
}
