package telegram

import (
	"sync"
	"time"
)

type pendingDisplay struct {
	key         int
	fn          func()
	timer       *time.Timer
	scheduledAt time.Time
}

// Pacer delays what is shown after feedback so the player has time to read it.
// Each user has at most one pending display, identified by the cursor of the
// question it belongs to. The game state has already advanced when a display
// is scheduled; the pacer only decides when it becomes visible.
//
// A pending display runs exactly once: on its timer, on Flush, or when a
// display for another question replaces it. Whoever removes it from the map
// runs it.
type Pacer struct {
	delay time.Duration
	now   func() time.Time

	mu      sync.Mutex
	pending map[int64]*pendingDisplay
}

func NewPacer(delay time.Duration) *Pacer {
	return &Pacer{
		delay:   delay,
		now:     time.Now,
		pending: make(map[int64]*pendingDisplay),
	}
}

// Schedule runs fn after the delay. A second schedule for the same key is
// ignored and reported as false. A pending display for another key is run
// first.
func (p *Pacer) Schedule(userID int64, key int, fn func()) bool {
	p.mu.Lock()

	prev := p.pending[userID]
	if prev != nil && prev.key == key {
		p.mu.Unlock()
		return false
	}
	if prev != nil {
		prev.timer.Stop()
		delete(p.pending, userID)
	}

	if p.delay <= 0 {
		p.mu.Unlock()
		if prev != nil {
			prev.fn()
		}
		fn()
		return true
	}

	d := &pendingDisplay{key: key, fn: fn, scheduledAt: p.now()}
	p.pending[userID] = d
	d.timer = time.AfterFunc(p.delay, func() { p.fire(userID, d) })
	p.mu.Unlock()

	if prev != nil {
		prev.fn()
	}
	return true
}

func (p *Pacer) fire(userID int64, d *pendingDisplay) {
	p.mu.Lock()
	if p.pending[userID] != d {
		p.mu.Unlock()
		return
	}
	delete(p.pending, userID)
	p.mu.Unlock()

	d.fn()
}

// Flush runs the pending display of the user now. It reports whether there
// was one.
func (p *Pacer) Flush(userID int64) bool {
	p.mu.Lock()
	d := p.pending[userID]
	delete(p.pending, userID)
	p.mu.Unlock()

	if d == nil {
		return false
	}

	d.timer.Stop()
	d.fn()
	return true
}

// Cancel drops the pending display of the user without running it.
func (p *Pacer) Cancel(userID int64) {
	p.mu.Lock()
	d := p.pending[userID]
	delete(p.pending, userID)
	p.mu.Unlock()

	if d != nil {
		d.timer.Stop()
	}
}

// Pending reports whether the user has a display waiting.
func (p *Pacer) Pending(userID int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, ok := p.pending[userID]
	return ok
}

// Sweep drops displays scheduled before cutoff.
func (p *Pacer) Sweep(cutoff time.Time) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	dropped := 0
	for userID, d := range p.pending {
		if d.scheduledAt.Before(cutoff) {
			d.timer.Stop()
			delete(p.pending, userID)
			dropped++
		}
	}
	return dropped
}

// Stop drops every pending display.
func (p *Pacer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for userID, d := range p.pending {
		d.timer.Stop()
		delete(p.pending, userID)
	}
}
