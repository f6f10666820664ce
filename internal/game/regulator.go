package game

import (
	"math/rand"
	"time"
)

// Rand is the random source behind every stochastic decision in a match.
// *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns the default seeded source.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) // #nosec G404 -- simulation only
}

// randomClamped returns a value in [-1, 1).
func randomClamped(r Rand) float64 {
	return r.Float64() - r.Float64()
}

// randInt returns an integer in [lo, hi].
func randInt(r Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// Clock reports elapsed simulated time.
type Clock interface {
	Now() time.Duration
}

// SimClock advances in whole ticks of 1/frameRate seconds.
type SimClock struct {
	tick      int
	frameRate int
}

// NewSimClock creates a clock for the given frame rate.
func NewSimClock(frameRate int) *SimClock {
	if frameRate <= 0 {
		frameRate = 60
	}
	return &SimClock{frameRate: frameRate}
}

// Advance moves the clock forward one tick.
func (c *SimClock) Advance() { c.tick++ }

// Tick returns the number of ticks elapsed.
func (c *SimClock) Tick() int { return c.tick }

// Now returns the simulated time elapsed.
func (c *SimClock) Now() time.Duration {
	return time.Duration(c.tick) * time.Second / time.Duration(c.frameRate)
}

// Regulator gates an action to a maximum number of firings per second.
// A rate of zero is always ready; a negative rate is never ready.
type Regulator struct {
	clock  Clock
	period time.Duration
	never  bool
	next   time.Duration
	fired  bool
}

// NewRegulator creates a regulator allowing perSecond firings per second of
// clock time.
func NewRegulator(clock Clock, perSecond float64) *Regulator {
	r := &Regulator{clock: clock}
	switch {
	case perSecond > 0:
		r.period = time.Duration(float64(time.Second) / perSecond)
	case perSecond < 0:
		r.never = true
	}
	return r
}

// IsReady reports whether a full period has passed since the last time it
// returned true, and if so starts a new period.
func (r *Regulator) IsReady() bool {
	if r.never {
		return false
	}
	if r.period == 0 {
		return true
	}
	now := r.clock.Now()
	if r.fired && now < r.next {
		return false
	}
	r.fired = true
	r.next = now + r.period
	return true
}
