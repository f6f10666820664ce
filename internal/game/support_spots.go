package game

import (
	"math"

	"github.com/Markof87/AI-SimpleSoccer/internal/geom"
)

// optimalSupportDist is the distance from the controller a support spot is
// rewarded for.
const optimalSupportDist = 200.0

// SupportSpot is one candidate position for the supporting attacker.
type SupportSpot struct {
	Pos   geom.Vec
	Score float64
}

// SupportSpotCalculator scores a grid of positions in the opponents' half
// and remembers the best one. Rescoring is throttled by a regulator.
type SupportSpotCalculator struct {
	team      *Team
	spots     []SupportSpot
	best      *SupportSpot
	regulator *Regulator
}

func newSupportSpotCalculator(t *Team, numX, numY int) *SupportSpotCalculator {
	area := t.pitch.PlayingArea()

	height := area.Height() * 0.8
	width := area.Width() * 0.9
	sliceX := width / float64(numX)
	sliceY := height / float64(numY)

	left := area.Left + (area.Width()-width)/2 + sliceX/2
	right := area.Right - (area.Width()-width)/2 - sliceX/2
	top := area.Top + (area.Height()-height)/2 + sliceY/2

	c := &SupportSpotCalculator{
		team:      t,
		regulator: NewRegulator(t.pitch.clock, t.pitch.params.SupportSpotUpdateFreq),
	}
	for x := 0; x < numX/2-1; x++ {
		for y := 0; y < numY; y++ {
			var pos geom.Vec
			if t.color == TeamBlue {
				pos = geom.V(left+float64(x)*sliceX, top+float64(y)*sliceY)
			} else {
				pos = geom.V(right-float64(x)*sliceX, top+float64(y)*sliceY)
			}
			c.spots = append(c.spots, SupportSpot{Pos: pos})
		}
	}
	return c
}

// Spots returns the scored grid.
func (c *SupportSpotCalculator) Spots() []SupportSpot { return c.spots }

// Best returns the best spot found by the last scoring pass, or nil.
func (c *SupportSpotCalculator) Best() *SupportSpot { return c.best }

// DetermineBestSupportingPosition rescores every spot and returns the best
// one. Between regulator periods the previous best is returned unchanged.
//
// A spot earns a base of 1, plus a bonus when the controller could pass to
// it safely, when a shot from it could score, and when it lies near the
// optimal distance from the controller.
func (c *SupportSpotCalculator) DetermineBestSupportingPosition() geom.Vec {
	if !c.regulator.IsReady() && c.best != nil {
		return c.best.Pos
	}
	c.best = nil

	t := c.team
	prm := &t.pitch.params
	ctrl := t.controlling
	bestScore := 0.0

	for i := range c.spots {
		s := &c.spots[i]
		s.Score = 1.0

		if ctrl != nil && t.IsPassSafeFromAllOpponents(ctrl.Pos, s.Pos, nil, prm.MaxPassingForce) {
			s.Score += prm.SpotPassSafeScore
		}

		if _, ok := t.CanShoot(s.Pos, prm.MaxShootingForce); ok {
			s.Score += prm.SpotCanScoreFromPositionScore
		}

		if ctrl != nil && t.supporting != nil {
			temp := math.Abs(optimalSupportDist - geom.Dist(ctrl.Pos, s.Pos))
			if temp < optimalSupportDist {
				s.Score += prm.SpotDistFromControllingPlayerScore * (optimalSupportDist - temp) / optimalSupportDist
			}
		}

		if s.Score > bestScore {
			bestScore = s.Score
			c.best = s
		}
	}

	if c.best == nil {
		return geom.Vec{}
	}
	return c.best.Pos
}

// GetBestSupportingSpot returns the cached best spot, scoring the grid
// first if there is none.
func (c *SupportSpotCalculator) GetBestSupportingSpot() geom.Vec {
	if c.best != nil {
		return c.best.Pos
	}
	return c.DetermineBestSupportingPosition()
}
