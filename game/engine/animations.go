package engine

import "github.com/google/uuid"

func newAnimationID() string {
	return uuid.NewString()
}

// ShowNotification replaces the current notification and schedules an
// auto-dismiss. The dismiss only fires if the same notification is still
// showing, so a newer message is never cleared early.
func (e *Engine) ShowNotification(message string, typ NotificationType) {
	n := &Notification{
		ID:      newAnimationID(),
		Message: message,
		Type:    typ,
	}
	e.state.Notification = n

	e.sched.after(e.clock.Now(), NotificationDuration, func() {
		if e.state.Notification != nil && e.state.Notification.ID == n.ID {
			e.state.Notification = nil
		}
	})
}

// ClearNotification dismisses the current notification immediately.
func (e *Engine) ClearNotification() {
	e.state.Notification = nil
}

// AddCoinAnimation enqueues a coin-fly effect and schedules its cleanup.
// Purely visual; the coin credit itself happens in CompleteOrder.
func (e *Engine) AddCoinAnimation(fromX, fromY float64, amount int, toX, toY *float64) string {
	now := e.clock.Now()
	anim := &CoinAnimation{
		ID:        newAnimationID(),
		Amount:    amount,
		FromX:     fromX,
		FromY:     fromY,
		ToX:       toX,
		ToY:       toY,
		StartTime: now.UnixMilli(),
	}
	e.state.CoinAnimations = append(e.state.CoinAnimations, anim)

	e.sched.after(now, CoinDuration, func() {
		e.RemoveCoinAnimation(anim.ID)
	})

	return anim.ID
}

// RemoveCoinAnimation drops one coin animation by id.
func (e *Engine) RemoveCoinAnimation(id string) {
	for i, a := range e.state.CoinAnimations {
		if a.ID == id {
			e.state.CoinAnimations = append(e.state.CoinAnimations[:i], e.state.CoinAnimations[i+1:]...)
			return
		}
	}
}

func (e *Engine) removeSpawnAnimation(id string) {
	for i, a := range e.state.SpawnAnimations {
		if a.ID == id {
			e.state.SpawnAnimations = append(e.state.SpawnAnimations[:i], e.state.SpawnAnimations[i+1:]...)
			return
		}
	}
}
