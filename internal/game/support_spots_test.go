package game

import "testing"

func TestSupportSpots_GridInOpponentsHalf(t *testing.T) {
	tm := NewTestMatch(WithMatchSeed(1))
	mid := tm.Pitch.PlayingArea().Center().X
	prm := tm.Pitch.Params()
	want := (prm.NumSupportSpotsX/2 - 1) * prm.NumSupportSpotsY

	red := tm.Pitch.Red().SupportSpots().Spots()
	blue := tm.Pitch.Blue().SupportSpots().Spots()
	if len(red) != want || len(blue) != want {
		t.Fatalf("expected %d spots per team, got red=%d blue=%d", want, len(red), len(blue))
	}
	for _, s := range red {
		if s.Pos.X <= mid {
			t.Fatalf("red spot %+v should lie in blue's half", s.Pos)
		}
	}
	for _, s := range blue {
		if s.Pos.X >= mid {
			t.Fatalf("blue spot %+v should lie in red's half", s.Pos)
		}
	}
}

func TestSupportSpots_ScoresWithoutController(t *testing.T) {
	tm := NewTestMatch(WithMatchSeed(1))
	calc := tm.Pitch.Red().SupportSpots()
	prm := tm.Pitch.Params()

	calc.DetermineBestSupportingPosition()
	for _, s := range calc.Spots() {
		if s.Score != 1 && s.Score != 1+prm.SpotCanScoreFromPositionScore {
			t.Fatalf("without a controller only the shot bonus applies, got %v", s.Score)
		}
	}
	if calc.Best() == nil {
		t.Fatal("every spot scores at least 1, so a best spot must exist")
	}
}

func TestSupportSpots_RescoreThrottled(t *testing.T) {
	tm := NewTestMatch(WithMatchSeed(1))
	red := tm.Pitch.Red()
	red.SetControllingPlayer(tm.Player(2))
	calc := red.SupportSpots()

	first := calc.DetermineBestSupportingPosition()
	for i := range calc.spots {
		calc.spots[i].Score = -1
	}

	if got := calc.DetermineBestSupportingPosition(); got != first {
		t.Fatalf("throttled call should return the cached spot %+v, got %+v", first, got)
	}
	for _, s := range calc.Spots() {
		if s.Score != -1 {
			t.Fatal("spots were rescored within the same regulator period")
		}
	}

	// one second of simulated time at the default rate of 1/s
	tm.Pitch.Clock().tick += tm.Pitch.Params().FrameRate
	calc.DetermineBestSupportingPosition()
	for _, s := range calc.Spots() {
		if s.Score < 1 {
			t.Fatal("spots should be rescored once the period has passed")
		}
	}
	if got := calc.GetBestSupportingSpot(); got != calc.Best().Pos {
		t.Fatal("GetBestSupportingSpot should return the cached best")
	}
}
