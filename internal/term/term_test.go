package term

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/Markof87/AI-SimpleSoccer/internal/game"
)

func newTestView(t *testing.T) (*View, tcell.SimulationScreen, *game.TestMatch) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	tm := game.NewTestMatch(game.WithMatchSeed(1))
	return New(screen, tm.Pitch), screen, tm
}

func rowText(s tcell.Screen, y, width int) string {
	var sb strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := s.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestDraw_PlacesBallKeeperAndScore(t *testing.T) {
	v, screen, _ := newTestView(t)
	v.Draw()

	// centre spot (350,200) on an 80x23 pitch area
	if r, _, _, _ := screen.GetContent(40, 11); r != 'o' {
		t.Fatalf("expected ball at (40,11), got %q", r)
	}
	// red keeper at (75,200)
	if r, _, _, _ := screen.GetContent(8, 11); r != 'K' {
		t.Fatalf("expected red keeper at (8,11), got %q", r)
	}
	if r, _, _, _ := screen.GetContent(2, 11); r != '#' {
		t.Fatalf("expected red goal mouth at (2,11), got %q", r)
	}
	if line := rowText(screen, 23, 80); !strings.Contains(line, "red 0 - 0 blue") {
		t.Fatalf("score line missing: %q", line)
	}
}

func TestHandleKey_PauseResetQuit(t *testing.T) {
	v, screen, tm := newTestView(t)

	if !v.handleKey(tcell.KeyRune, 'p') || !tm.Pitch.Paused() {
		t.Fatal("p should pause the match")
	}
	v.Draw()
	if line := rowText(screen, 23, 80); !strings.Contains(line, "[paused]") {
		t.Fatalf("paused marker missing: %q", line)
	}

	tm.RunTicks(5)
	v.handleKey(tcell.KeyRune, 'r')
	if !tm.Log.HasEntry(game.CatPitch, "reset", "") {
		t.Fatal("r should reset the match")
	}

	if v.handleKey(tcell.KeyRune, 'q') {
		t.Fatal("q should quit")
	}
	if v.handleKey(tcell.KeyEscape, 0) {
		t.Fatal("Esc should quit")
	}
}
