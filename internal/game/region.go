package game

import "github.com/Markof87/AI-SimpleSoccer/internal/geom"

// RegionModifier selects how strict Region.Inside is.
type RegionModifier int

const (
	RegionNormal   RegionModifier = iota
	RegionHalfSize                // only the central half of the region counts
)

// Region is an axis-aligned rectangle of the pitch.
type Region struct {
	ID     int
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// NewRegion builds a region from its edges.
func NewRegion(left, top, right, bottom float64, id int) Region {
	return Region{ID: id, Left: left, Top: top, Right: right, Bottom: bottom}
}

func (r Region) Width() float64  { return r.Right - r.Left }
func (r Region) Height() float64 { return r.Bottom - r.Top }

// Length is the long axis of the pitch, left to right.
func (r Region) Length() float64 { return r.Width() }

// Center returns the region's midpoint.
func (r Region) Center() geom.Vec {
	return geom.V((r.Left+r.Right)*0.5, (r.Top+r.Bottom)*0.5)
}

// Inside reports whether pos lies strictly within the region. With
// RegionHalfSize a quarter of the width and height is trimmed from each side.
func (r Region) Inside(pos geom.Vec, mod RegionModifier) bool {
	if mod == RegionNormal {
		return pos.X > r.Left && pos.X < r.Right && pos.Y > r.Top && pos.Y < r.Bottom
	}
	mx := r.Width() * 0.25
	my := r.Height() * 0.25
	return pos.X > r.Left+mx && pos.X < r.Right-mx && pos.Y > r.Top+my && pos.Y < r.Bottom-my
}
