package game

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// TeamStats are the per-side counters of a match.
type TeamStats struct {
	Goals          int
	PossessionTick int // ticks with a controlling player
	Shots          int
	Passes         int // open play, on request and keeper passes
	Dribbles       int
	Saves          int
}

// MatchStats accumulates counters while the pitch runs. It is rebuilt on
// reset.
type MatchStats struct {
	teams        [2]TeamStats
	ticks        int
	stateChanges int
	telegrams    int
}

func newMatchStats() *MatchStats { return &MatchStats{} }

// Team returns the counters for one side.
func (s *MatchStats) Team(c TeamColor) TeamStats { return s.teams[c] }

func (s *MatchStats) Ticks() int        { return s.ticks }
func (s *MatchStats) StateChanges() int { return s.stateChanges }
func (s *MatchStats) Telegrams() int    { return s.telegrams }

// sample runs once per tick, after both teams have updated.
func (s *MatchStats) sample(p *Pitch) {
	s.ticks++
	for _, t := range p.Teams() {
		if t.InControl() {
			s.teams[t.color].PossessionTick++
		}
	}
}

func (s *MatchStats) goal(c TeamColor) { s.teams[c].Goals++ }
func (s *MatchStats) save(c TeamColor) { s.teams[c].Saves++ }

func (s *MatchStats) kick(c TeamColor, kind string) {
	ts := &s.teams[c]
	switch kind {
	case "shot":
		ts.Shots++
	case "pass", "pass_on_request", "keeper_pass":
		ts.Passes++
	case "dribble", "dribble_turn":
		ts.Dribbles++
	}
}

// MatchReport is a printable summary of a match so far.
type MatchReport struct {
	MatchID      uuid.UUID
	Tick         int
	Red          TeamStats
	Blue         TeamStats
	StateChanges int
	Telegrams    int
	Ticks        int
}

// Report captures the pitch's counters.
func (p *Pitch) Report() MatchReport {
	return MatchReport{
		MatchID:      p.matchID,
		Tick:         p.Tick(),
		Red:          p.stats.Team(TeamRed),
		Blue:         p.stats.Team(TeamBlue),
		StateChanges: p.stats.stateChanges,
		Telegrams:    p.stats.telegrams,
		Ticks:        p.stats.ticks,
	}
}

// PossessionShare returns each side's share of controlled ticks in [0, 1].
func (r MatchReport) PossessionShare() (red, blue float64) {
	total := r.Red.PossessionTick + r.Blue.PossessionTick
	if total == 0 {
		return 0, 0
	}
	return float64(r.Red.PossessionTick) / float64(total), float64(r.Blue.PossessionTick) / float64(total)
}

// Format returns a human-readable multi-line report.
func (r MatchReport) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Match Report %s (T=%d) ===\n", r.MatchID, r.Tick)
	fmt.Fprintf(&sb, "Score: red %d - %d blue\n", r.Red.Goals, r.Blue.Goals)
	redPos, bluePos := r.PossessionShare()
	fmt.Fprintf(&sb, "Possession: red %.1f%%  blue %.1f%%\n", redPos*100, bluePos*100)
	fmt.Fprintf(&sb, "%-6s %6s %6s %8s %6s\n", "", "shots", "passes", "dribbles", "saves")
	fmt.Fprintf(&sb, "%-6s %6d %6d %8d %6d\n", "red", r.Red.Shots, r.Red.Passes, r.Red.Dribbles, r.Red.Saves)
	fmt.Fprintf(&sb, "%-6s %6d %6d %8d %6d\n", "blue", r.Blue.Shots, r.Blue.Passes, r.Blue.Dribbles, r.Blue.Saves)
	fmt.Fprintf(&sb, "State changes: %d  Telegrams: %d  Ticks played: %d\n", r.StateChanges, r.Telegrams, r.Ticks)
	return sb.String()
}
