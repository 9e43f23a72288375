package service

import (
	"sync"
	"time"
)

// Role is the seat a disconnected player may be holding when their
// grace timer is scheduled.
type Role string

const (
	RoleSelector Role = "selector"
	RoleAnswerer Role = "answerer"
)

type graceKey struct {
	roomID string
	name   string
	role   Role
}

// GraceSupervisor tracks one cancelable timer per (room, player name,
// role). Whatever state existed when a timer was scheduled is a hint
// only; the expiry callback must re-derive the truth from the live
// game, because any number of actions can run between scheduling and
// firing.
type GraceSupervisor struct {
	mu     sync.Mutex
	delay  time.Duration
	timers map[graceKey]*time.Timer
	expire func(roomID, name string, role Role)
}

func NewGraceSupervisor(delay time.Duration) *GraceSupervisor {
	return &GraceSupervisor{
		delay:  delay,
		timers: make(map[graceKey]*time.Timer),
	}
}

// OnExpire sets the callback invoked when a timer fires. Must be set
// before the first Schedule.
func (g *GraceSupervisor) OnExpire(fn func(roomID, name string, role Role)) {
	g.expire = fn
}

// Schedule arms a timer for the key, replacing any pending one.
func (g *GraceSupervisor) Schedule(roomID, name string, role Role) {
	key := graceKey{roomID: roomID, name: name, role: role}
	g.mu.Lock()
	defer g.mu.Unlock()
	if t, ok := g.timers[key]; ok {
		t.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(g.delay, func() {
		g.mu.Lock()
		// A timer that lost the race with its own replacement must not
		// act on the replacement's registration.
		if g.timers[key] != t {
			g.mu.Unlock()
			return
		}
		delete(g.timers, key)
		g.mu.Unlock()
		g.expire(roomID, name, role)
	})
	g.timers[key] = t
}

// Cancel stops the timer for the key if one is pending.
func (g *GraceSupervisor) Cancel(roomID, name string, role Role) {
	key := graceKey{roomID: roomID, name: name, role: role}
	g.mu.Lock()
	defer g.mu.Unlock()
	if t, ok := g.timers[key]; ok {
		t.Stop()
		delete(g.timers, key)
	}
}

// CancelPlayer stops both role timers for a player in a room. Called on
// reconnect so a stale timer cannot fire after a legitimate return.
func (g *GraceSupervisor) CancelPlayer(roomID, name string) {
	g.Cancel(roomID, name, RoleSelector)
	g.Cancel(roomID, name, RoleAnswerer)
}

// CancelRoom stops every timer for a room. Called on teardown.
func (g *GraceSupervisor) CancelRoom(roomID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for key, t := range g.timers {
		if key.roomID == roomID {
			t.Stop()
			delete(g.timers, key)
		}
	}
}

// Pending reports whether a timer is armed for the key.
func (g *GraceSupervisor) Pending(roomID, name string, role Role) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.timers[graceKey{roomID: roomID, name: name, role: role}]
	return ok
}
