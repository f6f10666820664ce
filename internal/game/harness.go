package game

import (
	"github.com/charmbracelet/log"

	"github.com/Markof87/AI-SimpleSoccer/internal/geom"
)

// Default window size, matching the desktop view.
const (
	DefaultPitchWidth  = 700
	DefaultPitchHeight = 400
)

// TestMatch is a headless match harness used by tests and the headless
// report binary. It runs the same Pitch the views draw, with deterministic
// seeding and the structured match log.
type TestMatch struct {
	Pitch *Pitch
	Log   *MatchLog

	width    float64
	height   float64
	pitchOpt []PitchOption
}

// matchOptionKind controls the pass in which an option is applied.
type matchOptionKind int

const (
	matchOptInfra  matchOptionKind = iota // size, seed, params, dispatch mode, applied first
	matchOptPlace                         // ball and player placement, after the pitch exists
	matchOptAction                        // kicks and state changes, after placement
)

// MatchOption is a builder function applied to a TestMatch during construction.
type MatchOption struct {
	kind matchOptionKind
	fn   func(*TestMatch)
}

// WithPitchSize sets the window dimensions.
func WithPitchSize(w, h float64) MatchOption {
	return MatchOption{matchOptInfra, func(tm *TestMatch) {
		tm.width = w
		tm.height = h
	}}
}

// WithMatchSeed sets the RNG seed for deterministic runs.
func WithMatchSeed(seed int64) MatchOption {
	return MatchOption{matchOptInfra, func(tm *TestMatch) {
		tm.pitchOpt = append(tm.pitchOpt, WithSeed(seed))
	}}
}

// WithMatchRand injects a random source.
func WithMatchRand(r Rand) MatchOption {
	return MatchOption{matchOptInfra, func(tm *TestMatch) {
		tm.pitchOpt = append(tm.pitchOpt, WithRand(r))
	}}
}

// WithMatchParams replaces the default tuning set.
func WithMatchParams(prm Params) MatchOption {
	return MatchOption{matchOptInfra, func(tm *TestMatch) {
		tm.pitchOpt = append(tm.pitchOpt, WithParams(prm))
	}}
}

// WithDeferredDispatch queues telegrams until the end of each tick.
func WithDeferredDispatch() MatchOption {
	return MatchOption{matchOptInfra, func(tm *TestMatch) {
		tm.pitchOpt = append(tm.pitchOpt, WithDeferredMessaging())
	}}
}

// WithTrace routes the debug trace to l.
func WithTrace(l *log.Logger) MatchOption {
	return MatchOption{matchOptInfra, func(tm *TestMatch) {
		tm.pitchOpt = append(tm.pitchOpt, WithLogger(l))
	}}
}

// WithBallAt places the ball at rest at (x, y).
func WithBallAt(x, y float64) MatchOption {
	return MatchOption{matchOptPlace, func(tm *TestMatch) {
		tm.Pitch.ball.PlaceAtPosition(geom.V(x, y))
	}}
}

// WithPlayerAt moves the player with the given id to (x, y) and points its
// steering target there.
func WithPlayerAt(id int, x, y float64) MatchOption {
	return MatchOption{matchOptPlace, func(tm *TestMatch) {
		if p := tm.Pitch.PlayerByID(id); p != nil {
			p.Pos = geom.V(x, y)
			p.steering.SetTarget(p.Pos)
		}
	}}
}

// WithBallKicked kicks the ball along (dx, dy) with the given force.
func WithBallKicked(dx, dy, force float64) MatchOption {
	return MatchOption{matchOptAction, func(tm *TestMatch) {
		tm.Pitch.ball.Kick(geom.V(dx, dy), force)
	}}
}

// NewTestMatch constructs a TestMatch from the given options in three
// ordered passes:
//  1. Infrastructure (size, seed, params, dispatch mode, trace)
//  2. Build the pitch, then placement
//  3. Actions
func NewTestMatch(opts ...MatchOption) *TestMatch {
	tm := &TestMatch{
		width:  DefaultPitchWidth,
		height: DefaultPitchHeight,
		Log:    NewMatchLog(),
	}
	for _, o := range opts {
		if o.kind == matchOptInfra {
			o.fn(tm)
		}
	}
	tm.pitchOpt = append(tm.pitchOpt, WithMatchLog(tm.Log))
	tm.Pitch = NewPitch(tm.width, tm.height, tm.pitchOpt...)
	for _, o := range opts {
		if o.kind == matchOptPlace {
			o.fn(tm)
		}
	}
	for _, o := range opts {
		if o.kind == matchOptAction {
			o.fn(tm)
		}
	}
	return tm
}

// RunTicks advances the match n ticks.
func (tm *TestMatch) RunTicks(n int) {
	for i := 0; i < n; i++ {
		tm.Pitch.Update()
	}
}

// RunUntil advances the match up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (tm *TestMatch) RunUntil(predicate func(*TestMatch) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		tm.Pitch.Update()
		if predicate(tm) {
			return tm.Pitch.Tick()
		}
	}
	return -1
}

// CurrentTick returns the current simulation tick.
func (tm *TestMatch) CurrentTick() int { return tm.Pitch.Tick() }

// Player returns the player with the given id, or nil.
func (tm *TestMatch) Player(id int) *Player { return tm.Pitch.PlayerByID(id) }

// Summary returns the log's snapshot of the pitch.
func (tm *TestMatch) Summary() string { return tm.Log.Summary(tm.Pitch) }
