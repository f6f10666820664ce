package game

import (
	"strings"
	"testing"

	"github.com/Markof87/AI-SimpleSoccer/internal/geom"
)

// dumpLog prints the full MatchLog to t.Log so it appears in `go test -v` output.
func dumpLog(t *testing.T, tm *TestMatch) {
	t.Helper()
	entries := tm.Log.Entries()
	if len(entries) == 0 {
		t.Log("(no log entries)")
		return
	}
	for _, e := range entries {
		t.Log(e.String())
	}
}

// dumpSummary prints the pitch summary block.
func dumpSummary(t *testing.T, tm *TestMatch) {
	t.Helper()
	t.Log(tm.Summary())
	t.Log(tm.Pitch.Report().Format())
}

// fixedRand always returns the same value.
type fixedRand struct{ f float64 }

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) Intn(n int) int   { return int(r.f * float64(n)) }

func TestNewPitch_Layout(t *testing.T) {
	tm := NewTestMatch(WithMatchSeed(1))
	p := tm.Pitch

	if len(p.Regions()) != 18 {
		t.Fatalf("expected 18 regions, got %d", len(p.Regions()))
	}
	tl := p.Region(17)
	if tl.Left != 20 || tl.Top != 20 {
		t.Fatalf("region 17 should be top-left at (20,20), got (%v,%v)", tl.Left, tl.Top)
	}
	br := p.Region(0)
	if br.Right != 680 || br.Bottom != 380 {
		t.Fatalf("region 0 should be bottom-right ending at (680,380), got (%v,%v)", br.Right, br.Bottom)
	}
	if c := p.Ball().Pos; c != geom.V(350, 200) {
		t.Fatalf("ball should start on the centre spot, got %+v", c)
	}
	if k := tm.Player(1); !k.IsGoalkeeper() || k.Pos != geom.V(75, 200) {
		t.Fatalf("red keeper should start in region 16 centre, got %+v", k.Pos)
	}
	if k := tm.Player(6); !k.IsGoalkeeper() || k.Pos != geom.V(625, 200) {
		t.Fatalf("blue keeper should start in region 1 centre, got %+v", k.Pos)
	}
	if len(p.Walls()) != 6 {
		t.Fatalf("expected 6 walls, got %d", len(p.Walls()))
	}
	centre := p.PlayingArea().Center()
	for i, w := range p.Walls() {
		if centre.Sub(w.Center()).Dot(w.Normal) <= 0 {
			t.Errorf("wall %d normal %+v does not point into the pitch", i, w.Normal)
		}
	}
	for _, team := range p.Teams() {
		if !team.FSM().IsInState(Defending) {
			t.Errorf("%s should start Defending, got %s", team.Color(), team.FSM().CurrentName())
		}
	}
	if !p.GameOn() {
		t.Fatal("game should be on at start")
	}
}

func TestPitch_GoalSendsTeamsToKickOff(t *testing.T) {
	tm := NewTestMatch(
		WithMatchSeed(3),
		WithBallAt(40, 200),
		WithBallKicked(-1, 0, 6),
	)

	at := tm.RunUntil(func(tm *TestMatch) bool { return tm.Pitch.Blue().Score() == 1 }, 30)
	if at < 0 {
		dumpLog(t, tm)
		t.Fatal("ball kicked into the red goal was never scored")
	}
	p := tm.Pitch
	if p.GameOn() {
		t.Error("game should be off straight after a goal")
	}
	if p.Ball().Pos != p.PlayingArea().Center() || !p.Ball().Vel.IsZero() {
		t.Errorf("ball should be at rest on the centre spot, got pos=%+v vel=%+v", p.Ball().Pos, p.Ball().Vel)
	}
	for _, team := range p.Teams() {
		if !team.FSM().IsInState(PrepareForKickOff) {
			t.Errorf("%s should be preparing for kick-off, got %s", team.Color(), team.FSM().CurrentName())
		}
		if team.ControllingPlayer() != nil || team.SupportingPlayer() != nil || team.Receiver() != nil {
			t.Errorf("%s role pointers should be cleared", team.Color())
		}
	}
	if p.Red().Score() != 0 {
		t.Errorf("red should not have scored, got %d", p.Red().Score())
	}
	if !tm.Log.HasEntry(CatGoal, "scored", "red 0 - 1 blue") {
		t.Error("expected goal entry in match log")
	}

	restart := tm.RunUntil(func(tm *TestMatch) bool { return tm.Pitch.GameOn() }, 3000)
	if restart < 0 {
		dumpSummary(t, tm)
		t.Fatal("play never restarted after the goal")
	}
	for _, team := range p.Teams() {
		if !team.FSM().IsInState(Defending) && !team.FSM().IsInState(Attacking) {
			t.Errorf("%s should have left kick-off, got %s", team.Color(), team.FSM().CurrentName())
		}
	}
}

func TestPitch_PauseFreezesTheMatch(t *testing.T) {
	tm := NewTestMatch(WithMatchSeed(5))
	tm.RunTicks(10)
	tick := tm.CurrentTick()
	ball := tm.Pitch.Ball().Pos

	tm.Pitch.TogglePause()
	tm.RunTicks(50)
	if tm.CurrentTick() != tick || tm.Pitch.Ball().Pos != ball {
		t.Fatalf("paused pitch advanced: tick %d -> %d", tick, tm.CurrentTick())
	}
	if !tm.Log.HasEntry(CatPitch, "pause", "") {
		t.Error("expected pause entry")
	}

	tm.Pitch.TogglePause()
	tm.RunTicks(1)
	if tm.CurrentTick() != tick+1 {
		t.Fatalf("expected tick %d after resume, got %d", tick+1, tm.CurrentTick())
	}
}

func TestPitch_ResetZeroesScore(t *testing.T) {
	tm := NewTestMatch(
		WithMatchSeed(3),
		WithBallAt(40, 200),
		WithBallKicked(-1, 0, 6),
	)
	if tm.RunUntil(func(tm *TestMatch) bool { return tm.Pitch.Blue().Score() == 1 }, 30) < 0 {
		t.Fatal("setup goal was not scored")
	}

	tm.Pitch.Reset()
	p := tm.Pitch
	if p.Red().Score() != 0 || p.Blue().Score() != 0 {
		t.Fatalf("score should be 0-0 after reset, got %d-%d", p.Red().Score(), p.Blue().Score())
	}
	if p.Report().Blue.Goals != 0 {
		t.Fatalf("stats should reset with the pitch, got %d blue goals", p.Report().Blue.Goals)
	}
	if !p.GameOn() || p.Ball().Pos != p.PlayingArea().Center() {
		t.Fatal("reset should restart play from the centre spot")
	}
	if tm.Player(2) == nil || tm.Player(2).StateName() != "Wait" {
		t.Fatal("reset should rebuild field players in Wait")
	}
	if !tm.Log.HasEntry(CatPitch, "reset", "") {
		t.Error("expected reset entry")
	}
}

func TestPitch_SameSeedSameMatch(t *testing.T) {
	a := NewTestMatch(WithMatchSeed(11))
	b := NewTestMatch(WithMatchSeed(11))
	a.RunTicks(900)
	b.RunTicks(900)

	if a.Pitch.Ball().Pos != b.Pitch.Ball().Pos {
		t.Fatalf("ball diverged: %+v vs %+v", a.Pitch.Ball().Pos, b.Pitch.Ball().Pos)
	}
	if a.Log.Len() != b.Log.Len() {
		t.Fatalf("logs diverged: %d vs %d entries", a.Log.Len(), b.Log.Len())
	}
	if a.Pitch.MatchID() != b.Pitch.MatchID() {
		t.Fatal("match id should derive from the seed")
	}
}

func TestPitch_DeferredDispatchDeliversAtEndOfTick(t *testing.T) {
	tm := NewTestMatch(WithMatchSeed(2), WithDeferredDispatch())
	d, ok := tm.Pitch.Dispatcher().(*DeferredDispatcher)
	if !ok {
		t.Fatalf("expected deferred dispatcher, got %T", tm.Pitch.Dispatcher())
	}

	tm.Pitch.Dispatcher().Dispatch(Telegram{Receiver: 4, Msg: MsgGoHome})
	if d.Pending() != 1 {
		t.Fatalf("expected 1 pending telegram, got %d", d.Pending())
	}
	if tm.Player(4).StateName() == "ReturnToHomeRegion" {
		t.Fatal("telegram delivered before the tick ended")
	}

	tm.RunTicks(1)
	if d.Pending() != 0 {
		t.Fatalf("queue should be flushed, %d pending", d.Pending())
	}
	if got := tm.Player(4).StateName(); got != "ReturnToHomeRegion" {
		t.Fatalf("expected ReturnToHomeRegion after flush, got %s", got)
	}
}

func TestPitch_ImmediateDispatchDeliversNow(t *testing.T) {
	tm := NewTestMatch(WithMatchSeed(2))
	tm.Pitch.Dispatcher().Dispatch(Telegram{Receiver: 4, Msg: MsgGoHome})
	if got := tm.Player(4).StateName(); got != "ReturnToHomeRegion" {
		t.Fatalf("expected ReturnToHomeRegion at once, got %s", got)
	}
	if !tm.Log.HasEntry(CatMsg, "go_home", "-> R4 handled=true") {
		t.Error("expected telegram in match log")
	}
}

func TestPitch_LongRunKeepsInvariants(t *testing.T) {
	tm := NewTestMatch(WithMatchSeed(42))
	area := tm.Pitch.PlayingArea()

	for i := 0; i < 3000; i++ {
		tm.Pitch.Update()
		for _, pl := range tm.Pitch.Players() {
			if f := pl.Steering().Force().Len(); f > pl.MaxForce+1e-9 {
				t.Fatalf("T=%d %s steering force %.4f exceeds max %.4f", tm.CurrentTick(), pl.Label(), f, pl.MaxForce)
			}
			if v := pl.Vel.Len(); v > 1e-6 {
				if dot := pl.Vel.Normalize().Dot(pl.Heading); dot < 0.999 {
					t.Fatalf("T=%d %s velocity not aligned with heading (dot=%.4f)", tm.CurrentTick(), pl.Label(), dot)
				}
			}
			if v := pl.Vel.Len(); v > pl.MaxSpeed+1e-9 {
				t.Fatalf("T=%d %s speed %.4f exceeds max %.4f", tm.CurrentTick(), pl.Label(), v, pl.MaxSpeed)
			}
		}
		for _, team := range tm.Pitch.Teams() {
			if c := team.ControllingPlayer(); c != nil && team.Opponents().ControllingPlayer() != nil {
				t.Fatalf("T=%d both teams claim control", tm.CurrentTick())
			}
		}
		b := tm.Pitch.Ball().Pos
		if b.Y < area.Top-100 || b.Y > area.Bottom+100 {
			t.Fatalf("T=%d ball escaped the pitch: %+v", tm.CurrentTick(), b)
		}
	}
	summary := tm.Summary()
	if !strings.Contains(summary, "Score:") {
		t.Fatalf("summary missing score line:\n%s", summary)
	}
}
