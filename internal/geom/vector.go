// Package geom holds the 2D vector math shared by the simulation and its
// presentation layers.
package geom

import "math"

// Epsilon is the tolerance used for near-zero comparisons.
const Epsilon = 1e-9

// Rotation direction returned by Vec.Sign.
const (
	Clockwise     = 1
	Anticlockwise = -1
)

// Vec is a 2D vector in pitch space (x right, y down).
type Vec struct {
	X float64
	Y float64
}

// V is shorthand for constructing a Vec.
func V(x, y float64) Vec { return Vec{X: x, Y: y} }

func (v Vec) Add(o Vec) Vec       { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec       { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(k float64) Vec { return Vec{v.X * k, v.Y * k} }
func (v Vec) Dot(o Vec) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vec) LenSq() float64      { return v.X*v.X + v.Y*v.Y }
func (v Vec) Len() float64        { return math.Sqrt(v.LenSq()) }

// Div divides by k; dividing by zero yields the zero vector.
func (v Vec) Div(k float64) Vec {
	if k == 0 {
		return Vec{}
	}
	return Vec{v.X / k, v.Y / k}
}

// IsZero reports whether both components are (near) zero.
func (v Vec) IsZero() bool {
	return v.LenSq() < Epsilon*Epsilon
}

// Normalize returns the unit vector in v's direction, or the zero vector when
// v has no length.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l < Epsilon {
		return Vec{}
	}
	return Vec{v.X / l, v.Y / l}
}

// Truncate caps the length of v at max.
func (v Vec) Truncate(max float64) Vec {
	if v.LenSq() > max*max {
		return v.Normalize().Scale(max)
	}
	return v
}

// Perp returns the vector rotated a quarter turn (the "side" of a heading).
func (v Vec) Perp() Vec { return Vec{-v.Y, v.X} }

// Sign is Clockwise if o lies clockwise of v (y down), Anticlockwise otherwise.
func (v Vec) Sign(o Vec) int {
	if v.Y*o.X > v.X*o.Y {
		return Anticlockwise
	}
	return Clockwise
}

// Reflect mirrors v about the unit normal n.
func (v Vec) Reflect(n Vec) Vec {
	return v.Add(n.Scale(-2 * v.Dot(n)))
}

// Rotate returns v rotated by angle radians around the origin.
func (v Vec) Rotate(angle float64) Vec {
	s, c := math.Sincos(angle)
	return Vec{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Dist returns the distance between a and b.
func Dist(a, b Vec) float64 { return b.Sub(a).Len() }

// DistSq returns the squared distance between a and b.
func DistSq(a, b Vec) float64 { return b.Sub(a).LenSq() }

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
