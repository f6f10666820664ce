package game

import "github.com/Markof87/AI-SimpleSoccer/internal/geom"

// behavior is a bit in Steering.flags.
type behavior uint8

const (
	behaviorSeek behavior = 1 << iota
	behaviorArrive
	behaviorSeparation
	behaviorPursuit
	behaviorInterpose
)

// Deceleration tiers for Arrive; larger is gentler.
type Deceleration int

const (
	DecelFast   Deceleration = 1
	DecelNormal Deceleration = 2
	DecelSlow   Deceleration = 3
)

const decelerationTweaker = 0.3

// Steering turns a player's enabled behaviours into a single force, never
// longer than the player's max force.
type Steering struct {
	player *Player

	force         geom.Vec
	target        geom.Vec
	interposeDist float64
	flags         behavior

	// tagged marks this player as a neighbour of whichever player last ran
	// neighbour tagging.
	tagged bool
}

func newSteering(p *Player) *Steering {
	return &Steering{player: p, target: p.Pos}
}

// Calculate zeroes the force and accumulates every enabled behaviour in
// priority order: separation, seek, arrive, pursuit, interpose. Once the max
// force is used up the remaining behaviours are skipped.
func (s *Steering) Calculate() geom.Vec {
	s.force = geom.Vec{}
	s.force = s.sumForces()
	s.force = s.force.Truncate(s.player.MaxForce)
	return s.force
}

func (s *Steering) sumForces() geom.Vec {
	s.tagNeighbours()

	if s.on(behaviorSeparation) {
		f := s.separation().Scale(s.player.params().SeparationCoefficient)
		if !s.accumulate(f) {
			return s.force
		}
	}
	if s.on(behaviorSeek) {
		if !s.accumulate(s.seek(s.target)) {
			return s.force
		}
	}
	if s.on(behaviorArrive) {
		if !s.accumulate(s.arrive(s.target, DecelFast)) {
			return s.force
		}
	}
	if s.on(behaviorPursuit) {
		if !s.accumulate(s.pursuit(s.player.ball())) {
			return s.force
		}
	}
	if s.on(behaviorInterpose) {
		if !s.accumulate(s.interpose(s.player.ball(), s.target, s.interposeDist)) {
			return s.force
		}
	}
	return s.force
}

// accumulate adds as much of add as the remaining budget allows. It returns
// false when there is no budget left.
func (s *Steering) accumulate(add geom.Vec) bool {
	remaining := s.player.MaxForce - s.force.Len()
	if remaining <= 0 {
		return false
	}
	mag := add.Len()
	if mag > remaining {
		mag = remaining
	}
	s.force = s.force.Add(add.Normalize().Scale(mag))
	return true
}

func (s *Steering) seek(target geom.Vec) geom.Vec {
	desired := target.Sub(s.player.Pos).Normalize().Scale(s.player.MaxSpeed)
	return desired.Sub(s.player.Vel)
}

func (s *Steering) arrive(target geom.Vec, decel Deceleration) geom.Vec {
	toTarget := target.Sub(s.player.Pos)
	dist := toTarget.Len()
	if dist <= 0 {
		return geom.Vec{}
	}
	speed := dist / (float64(decel) * decelerationTweaker)
	if speed > s.player.MaxSpeed {
		speed = s.player.MaxSpeed
	}
	desired := toTarget.Scale(speed / dist)
	return desired.Sub(s.player.Vel)
}

// pursuit arrives at the ball's predicted position. It also moves the
// steering target there.
func (s *Steering) pursuit(ball *Ball) geom.Vec {
	toBall := ball.Pos.Sub(s.player.Pos)
	lookAhead := 0.0
	if speed := ball.Speed(); speed != 0 {
		lookAhead = toBall.Len() / speed
	}
	s.target = ball.FuturePosition(lookAhead)
	return s.arrive(s.target, DecelFast)
}

func (s *Steering) separation() geom.Vec {
	var force geom.Vec
	for _, other := range s.player.allPlayers() {
		if other == s.player || !other.steering.tagged {
			continue
		}
		toAgent := s.player.Pos.Sub(other.Pos)
		d := toAgent.Len()
		if d < geom.Epsilon {
			continue
		}
		force = force.Add(toAgent.Normalize().Scale(1 / d))
	}
	return force
}

func (s *Steering) interpose(ball *Ball, target geom.Vec, dist float64) geom.Vec {
	spot := target.Add(ball.Pos.Sub(target).Normalize().Scale(dist))
	return s.arrive(spot, DecelNormal)
}

// tagNeighbours tags every player within view distance of this one.
func (s *Steering) tagNeighbours() {
	view := s.player.params().ViewDistance
	viewSq := view * view
	for _, other := range s.player.allPlayers() {
		other.steering.tagged = false
		if geom.DistSq(other.Pos, s.player.Pos) < viewSq {
			other.steering.tagged = true
		}
	}
}

func (s *Steering) on(b behavior) bool { return s.flags&b == b }

func (s *Steering) Force() geom.Vec        { return s.force }
func (s *Steering) Target() geom.Vec       { return s.target }
func (s *Steering) SetTarget(t geom.Vec)   { s.target = t }
func (s *Steering) InterposeDist() float64 { return s.interposeDist }
func (s *Steering) Tagged() bool           { return s.tagged }

// ForwardComponent is the part of the force along the heading.
func (s *Steering) ForwardComponent() float64 {
	return s.player.Heading.Dot(s.force)
}

// SideComponent is the part of the force along the side vector, scaled by
// the player's turn rate.
func (s *Steering) SideComponent() float64 {
	return s.player.Side.Dot(s.force) * s.player.MaxTurnRate
}

func (s *Steering) SeekOn()       { s.flags |= behaviorSeek }
func (s *Steering) ArriveOn()     { s.flags |= behaviorArrive }
func (s *Steering) PursuitOn()    { s.flags |= behaviorPursuit }
func (s *Steering) SeparationOn() { s.flags |= behaviorSeparation }

// InterposeOn enables interpose at dist from the target toward the ball.
func (s *Steering) InterposeOn(dist float64) {
	s.flags |= behaviorInterpose
	s.interposeDist = dist
}

func (s *Steering) SeekOff()       { s.flags &^= behaviorSeek }
func (s *Steering) ArriveOff()     { s.flags &^= behaviorArrive }
func (s *Steering) PursuitOff()    { s.flags &^= behaviorPursuit }
func (s *Steering) SeparationOff() { s.flags &^= behaviorSeparation }
func (s *Steering) InterposeOff()  { s.flags &^= behaviorInterpose }

func (s *Steering) SeekIsOn() bool       { return s.on(behaviorSeek) }
func (s *Steering) ArriveIsOn() bool     { return s.on(behaviorArrive) }
func (s *Steering) PursuitIsOn() bool    { return s.on(behaviorPursuit) }
func (s *Steering) SeparationIsOn() bool { return s.on(behaviorSeparation) }
func (s *Steering) InterposeIsOn() bool  { return s.on(behaviorInterpose) }

// Flags exposes the raw behaviour bits for snapshots and tests.
func (s *Steering) Flags() uint8 { return uint8(s.flags) }
