package game

import (
	"math"
	"testing"

	"github.com/Markof87/AI-SimpleSoccer/internal/geom"
)

func TestBall_KickSetsVelocityFromMass(t *testing.T) {
	b := NewBall(geom.V(100, 100), 5, 2, -0.015, nil)
	b.Owner = &Player{}

	b.Kick(geom.V(0, 3), 4)
	if b.Vel != geom.V(0, 2) {
		t.Fatalf("expected velocity (0,2), got %+v", b.Vel)
	}
	if b.Owner != nil {
		t.Fatal("kicking should release the ball")
	}
}

func TestBall_FrictionSlowsEachTick(t *testing.T) {
	b := NewBall(geom.V(100, 100), 5, 1, -0.015, nil)
	b.Kick(geom.V(1, 0), 2)

	b.Update()
	if math.Abs(b.Speed()-1.985) > 1e-9 {
		t.Fatalf("expected speed 1.985 after one tick, got %v", b.Speed())
	}
	if math.Abs(b.Pos.X-101.985) > 1e-9 || b.OldPos.X != 100 {
		t.Fatalf("unexpected move %+v -> %+v", b.OldPos, b.Pos)
	}
}

func TestBall_StopsBelowFriction(t *testing.T) {
	b := NewBall(geom.V(100, 100), 5, 1, -0.015, nil)
	b.Vel = geom.V(0.01, 0)

	b.Update()
	if b.Pos != geom.V(100, 100) {
		t.Fatalf("a ball slower than the friction should not move, got %+v", b.Pos)
	}
}

func TestBall_BouncesOffTopWall(t *testing.T) {
	tm := NewTestMatch(WithMatchSeed(1), WithBallAt(350, 30))
	b := tm.Pitch.Ball()
	b.Vel = geom.V(0, -6)

	b.Update()
	if b.Vel.Y <= 0 {
		t.Fatalf("ball should be heading back into the pitch, vel %+v", b.Vel)
	}
	if b.Pos.Y < tm.Pitch.PlayingArea().Top {
		t.Fatalf("ball left through the top wall: %+v", b.Pos)
	}
}

func TestBall_TimeToCoverDistance(t *testing.T) {
	b := NewBall(geom.V(0, 0), 5, 1, -0.015, nil)

	if got := b.TimeToCoverDistance(geom.V(0, 0), geom.V(1000, 0), 1); got != -1 {
		t.Fatalf("a weak kick cannot cover 1000 units, got %v", got)
	}
	got := b.TimeToCoverDistance(geom.V(0, 0), geom.V(100, 0), 3)
	want := (math.Sqrt(9-3) - 3) / -0.015
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v ticks, got %v", want, got)
	}
}

func TestBall_FuturePosition(t *testing.T) {
	b := NewBall(geom.V(100, 100), 5, 1, -0.015, nil)
	if got := b.FuturePosition(10); got != b.Pos {
		t.Fatalf("a ball at rest stays put, got %+v", got)
	}

	b.Vel = geom.V(2, 0)
	got := b.FuturePosition(10)
	if math.Abs(got.X-119.25) > 1e-9 || got.Y != 100 {
		t.Fatalf("expected (119.25,100), got %+v", got)
	}
}

func TestGoal_ScoredOnlyBetweenPosts(t *testing.T) {
	g := NewGoal(geom.V(20, 150), geom.V(20, 250), geom.V(1, 0))
	b := NewBall(geom.V(25, 300), 5, 1, -0.015, nil)

	b.Pos = geom.V(15, 300)
	if g.Scored(b) {
		t.Fatal("ball wide of the posts is not a goal")
	}
	b.OldPos, b.Pos = geom.V(25, 200), geom.V(15, 200)
	if !g.Scored(b) {
		t.Fatal("ball crossing between the posts should score")
	}
	if g.NumGoalsScored() != 1 {
		t.Fatalf("expected 1 goal, got %d", g.NumGoalsScored())
	}
	g.ResetGoalsScored()
	if g.NumGoalsScored() != 0 {
		t.Fatal("reset should zero the tally")
	}
}

func TestBall_TimeToCoverDistanceWithoutFriction(t *testing.T) {
	b := NewBall(geom.V(0, 0), 5, 1, 0, nil)

	if got := b.TimeToCoverDistance(geom.V(0, 0), geom.V(100, 0), 2); got != 50 {
		t.Fatalf("without friction 100 units at speed 2 take 50 ticks, got %v", got)
	}
	if got := b.TimeToCoverDistance(geom.V(0, 0), geom.V(100, 0), 0); got != -1 {
		t.Fatalf("an unkicked ball never arrives, got %v", got)
	}
	if got := b.TimeToCoverDistance(geom.V(0, 0), geom.V(0, 0), 0); math.IsNaN(got) {
		t.Fatal("zero distance and zero force must not produce NaN")
	}
}
