package sequencer

import (
	"sync"
	"time"
)

// Clock is the timer facility the sequencer dispatches events with.
type Clock interface {
	Now() time.Time
	// AfterFunc calls f in its own goroutine once d has elapsed.
	AfterFunc(d time.Duration, f func())
}

// RealClock is the wall clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

func (RealClock) AfterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }

// ManualClock is a Clock that only moves when told to. Timers run on the
// goroutine calling Advance or RunAll, ordered by due time and then by the
// order they were set.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []manualTimer
	seq    int
}

type manualTimer struct {
	at  time.Time
	seq int
	f   func()
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) AfterFunc(d time.Duration, f func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d < 0 {
		d = 0
	}
	c.timers = append(c.timers, manualTimer{at: c.now.Add(d), seq: c.seq, f: f})
	c.seq++
}

// Pending returns the number of timers not run yet.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// Advance moves the clock forward by d, running every timer that comes due,
// including timers set by those timers. It returns how many ran.
func (c *ManualClock) Advance(d time.Duration) int {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()
	return c.runUntil(func(at time.Time) bool { return !at.After(target) }, target)
}

// RunAll runs timers until none are left, moving the clock to each one's due
// time. It returns how many ran.
func (c *ManualClock) RunAll() int {
	return c.runUntil(func(time.Time) bool { return true }, time.Time{})
}

func (c *ManualClock) runUntil(due func(time.Time) bool, target time.Time) int {
	ran := 0
	for {
		c.mu.Lock()
		next := -1
		for i, t := range c.timers {
			if !due(t.at) {
				continue
			}
			if next < 0 || t.at.Before(c.timers[next].at) ||
				(t.at.Equal(c.timers[next].at) && t.seq < c.timers[next].seq) {
				next = i
			}
		}
		if next < 0 {
			if target.After(c.now) {
				c.now = target
			}
			c.mu.Unlock()
			return ran
		}
		t := c.timers[next]
		c.timers = append(c.timers[:next], c.timers[next+1:]...)
		if t.at.After(c.now) {
			c.now = t.at
		}
		c.mu.Unlock()

		t.f()
		ran++
	}
}
