package game

import "github.com/Markof87/AI-SimpleSoccer/internal/geom"

// Goal is a goal mouth between two posts. Facing points into the pitch.
type Goal struct {
	LeftPost  geom.Vec
	RightPost geom.Vec
	Facing    geom.Vec
	Center    geom.Vec
	scored    int
}

// NewGoal builds a goal between the two posts.
func NewGoal(left, right, facing geom.Vec) *Goal {
	return &Goal{
		LeftPost:  left,
		RightPost: right,
		Facing:    facing,
		Center:    left.Add(right).Scale(0.5),
	}
}

// Scored reports whether the ball crossed the goal line between the posts
// during its last move, and if so counts the goal.
func (g *Goal) Scored(b *Ball) bool {
	if geom.SegmentsIntersect(b.Pos, b.OldPos, g.LeftPost, g.RightPost) {
		g.scored++
		return true
	}
	return false
}

// NumGoalsScored returns how many goals went into this mouth.
func (g *Goal) NumGoalsScored() int { return g.scored }

// ResetGoalsScored zeroes the tally.
func (g *Goal) ResetGoalsScored() { g.scored = 0 }
