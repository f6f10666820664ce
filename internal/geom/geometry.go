package geom

import "math"

// PlaneSide classifies a point against a plane (a line in 2D).
type PlaneSide int

const (
	PlaneFront PlaneSide = iota
	PlaneBack
	OnPlane
)

// WhereIsPoint reports on which side of the plane through pointOnPlane with
// the given normal the point lies.
func WhereIsPoint(point, pointOnPlane, normal Vec) PlaneSide {
	d := pointOnPlane.Sub(point).Dot(normal)
	switch {
	case d < -0.000001:
		return PlaneFront
	case d > 0.000001:
		return PlaneBack
	default:
		return OnPlane
	}
}

// DistanceToRayPlaneIntersection returns the distance along the ray at which
// it meets the plane, or -1 if the ray is parallel to the plane.
func DistanceToRayPlaneIntersection(origin, heading, planePoint, planeNormal Vec) float64 {
	d := -planeNormal.Dot(planePoint)
	numer := planeNormal.Dot(origin) + d
	denom := planeNormal.Dot(heading)
	if denom < 0.000001 && denom > -0.000001 {
		return -1
	}
	return -(numer / denom)
}

// SegmentsIntersect reports whether segment AB crosses segment CD. Touching
// end points and parallel segments do not count.
func SegmentsIntersect(a, b, c, d Vec) bool {
	rTop := (a.Y-c.Y)*(d.X-c.X) - (a.X-c.X)*(d.Y-c.Y)
	sTop := (a.Y-c.Y)*(b.X-a.X) - (a.X-c.X)*(b.Y-a.Y)
	bot := (b.X-a.X)*(d.Y-c.Y) - (b.Y-a.Y)*(d.X-c.X)
	if bot == 0 {
		return false
	}
	r := rTop / bot
	s := sTop / bot
	return r > 0 && r < 1 && s > 0 && s < 1
}

// TangentPoints returns the two points on the circle (center c, radius r)
// whose tangents pass through p. ok is false when p lies inside or on the
// circle.
func TangentPoints(c Vec, r float64, p Vec) (t1, t2 Vec, ok bool) {
	pmc := p.Sub(c)
	sqrLen := pmc.LenSq()
	rSqr := r * r
	if sqrLen <= rSqr {
		return Vec{}, Vec{}, false
	}
	inv := 1 / sqrLen
	root := math.Sqrt(math.Abs(sqrLen - rSqr))
	t1 = Vec{
		X: c.X + r*(r*pmc.X-pmc.Y*root)*inv,
		Y: c.Y + r*(r*pmc.Y+pmc.X*root)*inv,
	}
	t2 = Vec{
		X: c.X + r*(r*pmc.X+pmc.Y*root)*inv,
		Y: c.Y + r*(r*pmc.Y-pmc.X*root)*inv,
	}
	return t1, t2, true
}

// ToLocalSpace expresses point in the frame of an agent at pos whose x axis
// is heading and y axis is side.
func ToLocalSpace(point, heading, side, pos Vec) Vec {
	rel := point.Sub(pos)
	return Vec{X: rel.Dot(heading), Y: rel.Dot(side)}
}

// Wall is a line segment with a unit normal pointing into the playing area.
type Wall struct {
	From   Vec
	To     Vec
	Normal Vec
}

// NewWall builds a wall whose normal is the left-hand perpendicular of
// From->To.
func NewWall(from, to Vec) Wall {
	return Wall{From: from, To: to, Normal: to.Sub(from).Normalize().Perp()}
}

// Center returns the midpoint of the wall.
func (w Wall) Center() Vec {
	return w.From.Add(w.To).Scale(0.5)
}
