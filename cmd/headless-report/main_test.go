package main

import (
	"testing"

	"github.com/Markof87/AI-SimpleSoccer/internal/game"
)

func TestMatchOutcome(t *testing.T) {
	cases := map[string]game.MatchReport{
		"red":  {Red: game.TeamStats{Goals: 2}, Blue: game.TeamStats{Goals: 1}},
		"blue": {Red: game.TeamStats{Goals: 0}, Blue: game.TeamStats{Goals: 1}},
		"draw": {Red: game.TeamStats{Goals: 3}, Blue: game.TeamStats{Goals: 3}},
	}
	for want, r := range cases {
		if got := matchOutcome(r); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	}
}

func TestTopCount_BreaksTiesByLabel(t *testing.T) {
	if got := topCount(map[string]int{"R3": 2, "B7": 2, "R2": 1}); got != "B7(2)" {
		t.Fatalf("expected B7(2), got %s", got)
	}
	if got := topCount(nil); got != "none" {
		t.Fatalf("expected none, got %s", got)
	}
}

func TestFirstTick_MatchesValueSubstring(t *testing.T) {
	entries := []game.MatchLogEntry{
		{Tick: 3, Category: game.CatGoal, Key: "save", Value: "keeper holds the ball"},
		{Tick: 9, Category: game.CatGoal, Key: "scored", Value: "red 0 - 1 blue"},
		{Tick: 20, Category: game.CatGoal, Key: "scored", Value: "red 1 - 1 blue"},
	}
	if got := firstTick(entries, game.CatGoal, "scored", "red 1"); got != 20 {
		t.Fatalf("expected 20, got %d", got)
	}
	if got := firstTick(entries, game.CatKick, "shot", ""); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}

func TestCollectStats_AgreesWithReport(t *testing.T) {
	tm := game.NewTestMatch(game.WithMatchSeed(5))
	tm.RunTicks(600)

	rs := collectStats(1, 5, tm)
	if rs.kicks["shot"] != rs.report.Red.Shots+rs.report.Blue.Shots {
		t.Fatalf("shot count %d disagrees with report %d", rs.kicks["shot"], rs.report.Red.Shots+rs.report.Blue.Shots)
	}
	if rs.report.Ticks != 600 {
		t.Fatalf("expected 600 ticks, got %d", rs.report.Ticks)
	}
}

func TestJoinCounts_Sorted(t *testing.T) {
	if got := joinCounts(map[string]int{"shot": 1, "pass": 4}); got != "pass=4,shot=1" {
		t.Fatalf("unexpected %s", got)
	}
}
