package geom

import (
	"math"
	"testing"
)

func TestSegmentsIntersect_CrossingAndParallel(t *testing.T) {
	if !SegmentsIntersect(V(0, 0), V(10, 10), V(0, 10), V(10, 0)) {
		t.Fatal("diagonals of a square should cross")
	}
	if SegmentsIntersect(V(0, 0), V(10, 0), V(0, 5), V(10, 5)) {
		t.Fatal("parallel segments must not intersect")
	}
	if SegmentsIntersect(V(0, 0), V(1, 1), V(5, 0), V(5, 10)) {
		t.Fatal("disjoint segments must not intersect")
	}
}

func TestTangentPoints_AreTangent(t *testing.T) {
	c := V(0, 0)
	r := 5.0
	p := V(20, 0)
	t1, t2, ok := TangentPoints(c, r, p)
	if !ok {
		t.Fatal("expected tangent points for an outside point")
	}
	for _, tp := range []Vec{t1, t2} {
		if math.Abs(tp.Len()-r) > 1e-9 {
			t.Fatalf("tangent point %+v not on circle", tp)
		}
		// radius is perpendicular to the tangent line
		if d := tp.Sub(c).Dot(p.Sub(tp)); math.Abs(d) > 1e-9 {
			t.Fatalf("radius not perpendicular to tangent at %+v (dot=%.6f)", tp, d)
		}
	}
	if _, _, ok := TangentPoints(c, r, V(1, 1)); ok {
		t.Fatal("inside point must have no tangents")
	}
}

func TestToLocalSpace_BehindIsNegativeX(t *testing.T) {
	heading := V(1, 0)
	local := ToLocalSpace(V(-5, 3), heading, heading.Perp(), V(0, 0))
	if local.X >= 0 {
		t.Fatalf("point behind should have negative local x, got %+v", local)
	}
	if math.Abs(local.Y-3) > 1e-9 {
		t.Fatalf("expected local y 3, got %.6f", local.Y)
	}
}

func TestNewWall_NormalPointsLeftOfDirection(t *testing.T) {
	w := NewWall(V(0, 0), V(10, 0))
	if math.Abs(w.Normal.X) > 1e-9 || math.Abs(w.Normal.Y-1) > 1e-9 {
		t.Fatalf("expected normal (0,1), got %+v", w.Normal)
	}
}

func TestDistanceToRayPlaneIntersection(t *testing.T) {
	d := DistanceToRayPlaneIntersection(V(0, 10), V(0, -1), V(0, 0), V(0, 1))
	if math.Abs(d-10) > 1e-9 {
		t.Fatalf("expected 10, got %.6f", d)
	}
	if d := DistanceToRayPlaneIntersection(V(0, 10), V(1, 0), V(0, 0), V(0, 1)); d != -1 {
		t.Fatalf("parallel ray should return -1, got %.6f", d)
	}
	if side := WhereIsPoint(V(0, 5), V(0, 0), V(0, 1)); side != PlaneFront {
		t.Fatalf("expected front, got %d", side)
	}
}
