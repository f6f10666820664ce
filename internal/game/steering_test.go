package game

import (
	"testing"

	"github.com/Markof87/AI-SimpleSoccer/internal/geom"
)

func TestArrive_ZeroAtTarget(t *testing.T) {
	tm := NewTestMatch(WithMatchSeed(1))
	p := tm.Player(2)

	if f := p.Steering().arrive(p.Pos, DecelFast); !f.IsZero() {
		t.Fatalf("arrive at the current position should be zero, got %+v", f)
	}
}

func TestCalculate_NeverExceedsMaxForce(t *testing.T) {
	tm := NewTestMatch(WithMatchSeed(1))
	p := tm.Player(2)
	s := p.Steering()

	s.SetTarget(geom.V(600, 40))
	s.SeekOn()
	s.ArriveOn()
	s.PursuitOn()
	s.InterposeOn(20)
	tm.Pitch.Ball().Kick(geom.V(1, 1), 5)

	f := s.Calculate()
	if f.Len() > p.MaxForce+1e-9 {
		t.Fatalf("force %.4f exceeds max %.4f", f.Len(), p.MaxForce)
	}
	if f.IsZero() {
		t.Fatal("expected a non-zero force")
	}
}

func TestCalculate_SeparationTakesPriority(t *testing.T) {
	tm := NewTestMatch(
		WithMatchSeed(1),
		WithPlayerAt(2, 300, 200),
		WithPlayerAt(3, 301, 200),
	)
	p := tm.Player(2)
	s := p.Steering()
	s.SetTarget(geom.V(300, 40))
	s.SeekOn()

	f := s.Calculate()
	// a neighbour one unit away uses up the whole budget pushing left
	if f.X > -p.MaxForce+1e-6 || f.Y != 0 {
		t.Fatalf("expected separation to push straight away from R3, got %+v", f)
	}
}

func TestSteering_FlagsToggleIndependently(t *testing.T) {
	tm := NewTestMatch(WithMatchSeed(1))
	s := tm.Player(3).Steering()

	s.SeekOn()
	s.ArriveOn()
	s.SeekOff()
	if s.SeekIsOn() || !s.ArriveIsOn() || !s.SeparationIsOn() {
		t.Fatalf("unexpected flags %08b", s.Flags())
	}
	s.InterposeOn(12)
	if !s.InterposeIsOn() || s.InterposeDist() != 12 {
		t.Fatal("interpose should record its distance")
	}
	s.InterposeOff()
	s.ArriveOff()
	if s.InterposeIsOn() || s.ArriveIsOn() || s.PursuitIsOn() {
		t.Fatalf("unexpected flags %08b", s.Flags())
	}
}

func TestPursuit_LeadsAMovingBall(t *testing.T) {
	tm := NewTestMatch(WithMatchSeed(1), WithPlayerAt(2, 300, 300))
	p := tm.Player(2)
	ball := tm.Pitch.Ball()
	ball.Kick(geom.V(1, 0), 3)

	p.Steering().pursuit(ball)
	if p.Steering().Target().X <= ball.Pos.X {
		t.Fatalf("pursuit should aim ahead of the ball, target %+v ball %+v", p.Steering().Target(), ball.Pos)
	}
}
