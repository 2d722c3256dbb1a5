package shared

import (
	"sync"
	"time"
)

// Clock supplies the current time to the lifecycle rules
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock returns the wall clock in UTC
func SystemClock() Clock { return systemClock{} }

// ManualClock is a Clock that only moves when told to
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// SweepResult summarizes one deadline sweep pass
type SweepResult struct {
	Scanned int `json:"scanned"`
	Closed  int `json:"closed"`
	Expired int `json:"expired"`
	Failed  int `json:"failed"`
}

// SweepOutcome is what a sweep did to a single project
type SweepOutcome string

const (
	SweepUnchanged SweepOutcome = "unchanged"
	SweepClosed    SweepOutcome = "closed"
	SweepExpired   SweepOutcome = "expired"
)

// Add tallies one project outcome
func (r *SweepResult) Add(outcome SweepOutcome) {
	r.Scanned++
	switch outcome {
	case SweepClosed:
		r.Closed++
	case SweepExpired:
		r.Expired++
	}
}
