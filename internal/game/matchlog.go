package game

import (
	"fmt"
	"strings"
)

// Match log categories.
const (
	CatState   = "state"
	CatTeam    = "team"
	CatMsg     = "msg"
	CatKick    = "kick"
	CatGoal    = "goal"
	CatControl = "control"
	CatPitch   = "pitch"
)

// MatchLogEntry is one recorded event during a match.
type MatchLogEntry struct {
	Tick     int
	Player   string  // label e.g. "R3", "B1", or "--" for team and pitch events
	Team     string  // "red", "blue", or "--"
	Category string  // state, team, msg, kick, goal, control, pitch
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value, e.g. kick power
}

// String formats the entry as a fixed-width log line.
//
//	[T=0042] R3   kick     pass           -> (312.0,180.5)
func (e MatchLogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-4s %-8s %-14s %s",
		e.Tick, e.Player, e.Category, e.Key, e.Value)
}

// MatchLog collects structured events for a whole match. It is unbounded
// and machine-readable; the view's event feed keeps only the recent tail.
type MatchLog struct {
	entries []MatchLogEntry
	listen  func(MatchLogEntry)
}

// NewMatchLog creates an empty log.
func NewMatchLog() *MatchLog {
	return &MatchLog{}
}

// OnAdd installs a callback run for every new entry.
func (ml *MatchLog) OnAdd(fn func(MatchLogEntry)) { ml.listen = fn }

// Add records a new entry.
func (ml *MatchLog) Add(tick int, player, team, category, key, value string, numVal float64) {
	e := MatchLogEntry{
		Tick:     tick,
		Player:   player,
		Team:     team,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	}
	ml.entries = append(ml.entries, e)
	if ml.listen != nil {
		ml.listen(e)
	}
}

// Entries returns all recorded entries.
func (ml *MatchLog) Entries() []MatchLogEntry {
	return ml.entries
}

// Len returns the number of entries.
func (ml *MatchLog) Len() int { return len(ml.entries) }

// Reset drops every entry.
func (ml *MatchLog) Reset() { ml.entries = nil }

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (ml *MatchLog) Filter(category, key string) []MatchLogEntry {
	var out []MatchLogEntry
	for _, e := range ml.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterPlayer returns entries for a specific player label.
func (ml *MatchLog) FilterPlayer(label string) []MatchLogEntry {
	var out []MatchLogEntry
	for _, e := range ml.entries {
		if e.Player == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (ml *MatchLog) FilterTickRange(fromTick, toTick int) []MatchLogEntry {
	var out []MatchLogEntry
	for _, e := range ml.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (ml *MatchLog) CountCategory(category, key string) int {
	n := 0
	for _, e := range ml.entries {
		if (category == "" || e.Category == category) && (key == "" || e.Key == key) {
			n++
		}
	}
	return n
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (ml *MatchLog) LastOf(category, key string) (MatchLogEntry, bool) {
	for i := len(ml.entries) - 1; i >= 0; i-- {
		e := ml.entries[i]
		if (category == "" || e.Category == category) && (key == "" || e.Key == key) {
			return e, true
		}
	}
	return MatchLogEntry{}, false
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (ml *MatchLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range ml.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (ml *MatchLog) Format() string {
	return formatEntries(ml.entries)
}

// FormatRange returns a log string filtered to a tick range.
func (ml *MatchLog) FormatRange(fromTick, toTick int) string {
	return formatEntries(ml.FilterTickRange(fromTick, toTick))
}

func formatEntries(entries []MatchLogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable snapshot of the pitch.
func (ml *MatchLog) Summary(p *Pitch) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%04d ---\n", p.Tick())
	fmt.Fprintf(&sb, "Score: red=%d  blue=%d  gameOn=%v  keeperHasBall=%v\n",
		p.Red().Score(), p.Blue().Score(), p.GameOn(), p.GoalKeeperHasBall())
	b := p.Ball()
	fmt.Fprintf(&sb, "Ball: (%.1f,%.1f) speed=%.2f\n", b.Pos.X, b.Pos.Y, b.Speed())
	for _, t := range p.Teams() {
		ctrl := "--"
		if c := t.ControllingPlayer(); c != nil {
			ctrl = c.Label()
		}
		fmt.Fprintf(&sb, "%s [%s] controlling=%s\n", t.Color(), t.FSM().CurrentName(), ctrl)
		for _, pl := range t.Players() {
			fmt.Fprintf(&sb, "  %-3s %-18s (%.1f,%.1f) home=%d\n",
				pl.Label(), pl.StateName(), pl.Pos.X, pl.Pos.Y, pl.HomeRegionIndex())
		}
	}
	return sb.String()
}
