package view

import (
	"strings"
	"testing"

	"github.com/Markof87/AI-SimpleSoccer/internal/game"
	"github.com/Markof87/AI-SimpleSoccer/internal/geom"
)

func TestOverlays_ToggleAndLegend(t *testing.T) {
	prm := game.DefaultParams()
	prm.ShowIDs = false
	o := OverlaysFromParams(prm)
	if o.On(OverlayIDs) {
		t.Fatal("ids overlay should start off")
	}
	if o.On(OverlaySupportSpots) != prm.ShowSupportSpots {
		t.Fatal("support spots overlay should follow the params")
	}

	o.Toggle(OverlayIDs)
	o.Toggle(OverlayKind(99))
	if !o.On(OverlayIDs) || o.On(OverlayKind(99)) {
		t.Fatal("toggle should flip only known overlays")
	}

	legend := o.Legend()
	if len(legend) != int(overlayCount) {
		t.Fatalf("expected %d legend lines, got %d", overlayCount, len(legend))
	}
	if legend[OverlayIDs] != "  [2]* ids" {
		t.Fatalf("unexpected legend line %q", legend[OverlayIDs])
	}
}

func TestEventFeed_RingKeepsNewest(t *testing.T) {
	f := NewEventFeed()
	for i := 0; i < feedMaxEntries+5; i++ {
		f.Add(i, "R2", "red", "pass")
	}
	if f.Len() != feedMaxEntries {
		t.Fatalf("expected %d entries, got %d", feedMaxEntries, f.Len())
	}
	recent := f.Recent()
	if recent[0].Tick != 5 || recent[len(recent)-1].Tick != feedMaxEntries+4 {
		t.Fatalf("expected ticks 5..%d, got %d..%d", feedMaxEntries+4, recent[0].Tick, recent[len(recent)-1].Tick)
	}
}

func TestEventFeed_ObserveFiltersCategories(t *testing.T) {
	f := NewEventFeed()
	f.Observe(game.MatchLogEntry{Tick: 1, Player: "R2", Team: "red", Category: game.CatMsg, Key: "wait"})
	f.Observe(game.MatchLogEntry{Tick: 2, Player: "R2", Team: "red", Category: game.CatKick, Key: "shot", Value: "-> (680.0,200.0)"})

	recent := f.Recent()
	if len(recent) != 1 {
		t.Fatalf("telegrams should be filtered out, got %d entries", len(recent))
	}
	if recent[0].Message != "shot -> (680.0,200.0)" {
		t.Fatalf("unexpected message %q", recent[0].Message)
	}
}

func TestStepSpeed_Clamps(t *testing.T) {
	if got := stepSpeed(1, 1); got != 2 {
		t.Fatalf("expected 2x after 1x, got %v", got)
	}
	if got := stepSpeed(4, 1); got != 4 {
		t.Fatalf("top speed should clamp, got %v", got)
	}
	if got := stepSpeed(0.25, -1); got != 0.25 {
		t.Fatalf("bottom speed should clamp, got %v", got)
	}
	if got := stepSpeed(1, -1); got != 0.5 {
		t.Fatalf("expected 0.5x below 1x, got %v", got)
	}
}

func TestPickPlayer_Nearest(t *testing.T) {
	players := []game.PlayerView{
		{ID: 2, Pos: geom.V(100, 100)},
		{ID: 3, Pos: geom.V(108, 100)},
	}
	if got := pickPlayer(players, 105, 100, 10); got != 3 {
		t.Fatalf("expected nearest player 3, got %d", got)
	}
	if got := pickPlayer(players, 300, 300, 10); got != 0 {
		t.Fatalf("empty grass should select nothing, got %d", got)
	}
}

func TestInspectorLines_DescribesPlayer(t *testing.T) {
	tm := game.NewTestMatch(game.WithMatchSeed(1))
	p := tm.Player(2)
	tm.Pitch.Red().SetControllingPlayer(p)
	p.Pos = geom.V(200, 200)

	lines := strings.Join(inspectorLines(p), "\n")
	for _, want := range []string{"R2", "state: Wait", "flags: controlling", "team:  Defending", "goals: 480 to opp, 180 to own"} {
		if !strings.Contains(lines, want) {
			t.Fatalf("inspector missing %q:\n%s", want, lines)
		}
	}
}
