package game

import "testing"

func TestRegulator_ThrottlesToPeriod(t *testing.T) {
	clock := NewSimClock(60)
	reg := NewRegulator(clock, 8) // one firing every 7.5 ticks

	if !reg.IsReady() {
		t.Fatal("a fresh regulator should be ready")
	}
	if reg.IsReady() {
		t.Fatal("second call in the same tick must not be ready")
	}
	for i := 0; i < 7; i++ {
		clock.Advance()
		if reg.IsReady() {
			t.Fatalf("ready too early at tick %d", clock.Tick())
		}
	}
	clock.Advance() // tick 8 = 133ms > 125ms
	if !reg.IsReady() {
		t.Fatalf("expected ready at tick %d", clock.Tick())
	}
}

func TestRegulator_ZeroAndNegativeRates(t *testing.T) {
	clock := NewSimClock(60)
	always := NewRegulator(clock, 0)
	never := NewRegulator(clock, -1)
	for i := 0; i < 3; i++ {
		if !always.IsReady() {
			t.Fatal("zero-rate regulator must always be ready")
		}
		if never.IsReady() {
			t.Fatal("negative-rate regulator must never be ready")
		}
	}
}

func TestRandInt_StaysInRange(t *testing.T) {
	r := NewRand(3)
	for i := 0; i < 200; i++ {
		v := randInt(r, 155, 245)
		if v < 155 || v > 245 {
			t.Fatalf("randInt out of range: %d", v)
		}
		c := randomClamped(r)
		if c < -1 || c > 1 {
			t.Fatalf("randomClamped out of range: %f", c)
		}
	}
}
