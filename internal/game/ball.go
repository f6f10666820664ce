package game

import (
	"math"

	"github.com/Markof87/AI-SimpleSoccer/internal/geom"
)

// Ball is the match ball. It moves in a straight line, slowed by a constant
// friction each tick, and bounces off the pitch boundary walls.
type Ball struct {
	Pos     geom.Vec
	OldPos  geom.Vec
	Vel     geom.Vec
	Heading geom.Vec
	Mass    float64
	Radius  float64

	// Owner is the keeper holding the ball, nil while it is in play.
	Owner *Player

	friction float64
	walls    []geom.Wall
}

// NewBall places a stationary ball at pos.
func NewBall(pos geom.Vec, radius, mass, friction float64, walls []geom.Wall) *Ball {
	return &Ball{
		Pos:      pos,
		OldPos:   pos,
		Heading:  geom.V(1, 0),
		Mass:     mass,
		Radius:   radius,
		friction: friction,
		walls:    walls,
	}
}

// Speed returns the ball's current speed.
func (b *Ball) Speed() float64 { return b.Vel.Len() }

// Update advances the ball one tick. Once the speed falls to the friction
// threshold the ball stops moving but keeps its velocity and heading.
func (b *Ball) Update() {
	b.OldPos = b.Pos
	b.testCollisionWithWalls()
	if b.Vel.LenSq() > b.friction*b.friction {
		b.Vel = b.Vel.Add(b.Vel.Normalize().Scale(b.friction))
		b.Pos = b.Pos.Add(b.Vel)
		b.Heading = b.Vel.Normalize()
	}
}

// Kick sets the ball's velocity to force/mass along direction. Any previous
// velocity is discarded.
func (b *Ball) Kick(direction geom.Vec, force float64) {
	b.Vel = direction.Normalize().Scale(force / b.Mass)
	b.Owner = nil
}

// TimeToCoverDistance returns the ticks needed to travel from a to b when
// kicked with force, or -1 if friction stops the ball first.
func (b *Ball) TimeToCoverDistance(a, to geom.Vec, force float64) float64 {
	speed := force / b.Mass
	dist := geom.Dist(a, to)
	if b.friction == 0 {
		if speed <= 0 {
			return -1
		}
		return dist / speed
	}
	term := speed*speed + 2.0*dist*b.friction
	if term <= 0 {
		return -1
	}
	v := math.Sqrt(term)
	return (v - speed) / b.friction
}

// FuturePosition predicts where the ball will be after time ticks.
func (b *Ball) FuturePosition(time float64) geom.Vec {
	ut := b.Vel.Scale(time)
	halfATSq := 0.5 * b.friction * time * time
	return b.Pos.Add(ut).Add(b.Vel.Normalize().Scale(halfATSq))
}

// Trap stops the ball dead.
func (b *Ball) Trap() { b.Vel = geom.Vec{} }

// PlaceAtPosition moves the ball to pos at rest.
func (b *Ball) PlaceAtPosition(pos geom.Vec) {
	b.Pos = pos
	b.OldPos = pos
	b.Vel = geom.Vec{}
	b.Owner = nil
}

// testCollisionWithWalls reflects the velocity off the nearest wall the ball
// would reach this tick. Wall end points are not tested.
func (b *Ball) testCollisionWithWalls() {
	velNormal := b.Vel.Normalize()
	closest := -1
	best := math.MaxFloat64

	for i, w := range b.walls {
		contact := b.Pos.Sub(w.Normal.Scale(b.Radius))

		var hit geom.Vec
		if geom.WhereIsPoint(contact, w.From, w.Normal) == geom.PlaneBack {
			d := geom.DistanceToRayPlaneIntersection(contact, w.Normal, w.From, w.Normal)
			hit = contact.Add(w.Normal.Scale(d))
		} else {
			d := geom.DistanceToRayPlaneIntersection(contact, velNormal, w.From, w.Normal)
			hit = contact.Add(velNormal.Scale(d))
		}

		onSegment := geom.SegmentsIntersect(w.From, w.To,
			contact.Sub(w.Normal.Scale(20)), contact.Add(w.Normal.Scale(20)))

		distSq := geom.DistSq(contact, hit)
		if distSq <= b.Vel.LenSq() && distSq < best && onSegment {
			best = distSq
			closest = i
		}
	}

	// only reflect when heading into the wall, so an overshoot is not bounced
	// back out of the pitch
	if closest >= 0 && velNormal.Dot(b.walls[closest].Normal) < 0 {
		b.Vel = b.Vel.Reflect(b.walls[closest].Normal)
	}
}

// AddNoiseToKick perturbs an aim point by an angle that shrinks as kicking
// accuracy approaches one.
func AddNoiseToKick(r Rand, accuracy float64, ballPos, target geom.Vec) geom.Vec {
	displacement := (math.Pi - math.Pi*accuracy) * randomClamped(r)
	toTarget := target.Sub(ballPos).Rotate(displacement)
	return toTarget.Add(ballPos)
}
