package game

import (
	"fmt"
	"math"

	"github.com/Markof87/AI-SimpleSoccer/internal/geom"
)

// PlayerRole is a player's position on the team sheet.
type PlayerRole int

const (
	RoleGoalkeeper PlayerRole = iota
	RoleAttacker
	RoleDefender
)

func (r PlayerRole) String() string {
	switch r {
	case RoleGoalkeeper:
		return "goalkeeper"
	case RoleAttacker:
		return "attacker"
	case RoleDefender:
		return "defender"
	default:
		return "unknown"
	}
}

// playerShapeRadius is the bounding radius of the player outline at scale 1.
const playerShapeRadius = 10.0

// brakingRate damps velocity on ticks with no steering force.
const brakingRate = 0.8

// Player is one member of a team. Field players and the goalkeeper share
// this type; role selects the state set and the locomotion model.
type Player struct {
	id   int
	team *Team
	role PlayerRole

	// --- Kinematics ---
	Pos         geom.Vec
	Vel         geom.Vec
	Heading     geom.Vec
	Side        geom.Vec
	Mass        float64
	MaxSpeed    float64
	MaxForce    float64
	MaxTurnRate float64
	Radius      float64

	// lookAt is the keeper's facing; it tracks the ball while the keeper
	// is not holding it.
	lookAt geom.Vec

	steering *Steering
	fsm      *StateMachine[*Player]

	homeRegion    int
	defaultRegion int

	// distSqToBall is refreshed once per tick by the team.
	distSqToBall float64

	kickLimiter *Regulator
}

func newPlayer(team *Team, id, homeRegion int, heading geom.Vec, role PlayerRole) *Player {
	prm := team.pitch.params
	p := &Player{
		id:            id,
		team:          team,
		role:          role,
		Pos:           team.pitch.Region(homeRegion).Center(),
		Heading:       heading,
		Side:          heading.Perp(),
		lookAt:        heading,
		Mass:          prm.PlayerMass,
		MaxSpeed:      prm.PlayerMaxSpeedWithoutBall,
		MaxForce:      prm.PlayerMaxForce,
		MaxTurnRate:   prm.PlayerMaxTurnRate,
		Radius:        playerShapeRadius * prm.PlayerScale,
		homeRegion:    homeRegion,
		defaultRegion: homeRegion,
		kickLimiter:   NewRegulator(team.pitch.clock, prm.PlayerKickFrequency),
	}
	p.steering = newSteering(p)
	p.steering.SetTarget(team.pitch.Region(homeRegion).Center())
	p.fsm = NewStateMachine(p)
	p.fsm.OnChange(func(from, to State[*Player]) {
		team.pitch.logPlayerState(p, from, to)
	})
	if role == RoleGoalkeeper {
		p.fsm.SetCurrentState(TendGoal)
		p.fsm.SetPreviousState(TendGoal)
		p.fsm.SetGlobalState(GlobalKeeperState)
		TendGoal.Enter(p)
	} else {
		p.steering.SeparationOn()
		p.fsm.SetCurrentState(Wait)
		p.fsm.SetPreviousState(Wait)
		p.fsm.SetGlobalState(GlobalPlayerState)
		Wait.Enter(p)
	}
	return p
}

// --- Identity ---

func (p *Player) ID() int                     { return p.id }
func (p *Player) Role() PlayerRole            { return p.role }
func (p *Player) Team() *Team                 { return p.team }
func (p *Player) Steering() *Steering         { return p.steering }
func (p *Player) FSM() *StateMachine[*Player] { return p.fsm }
func (p *Player) IsGoalkeeper() bool          { return p.role == RoleGoalkeeper }
func (p *Player) DistSqToBall() float64       { return p.distSqToBall }
func (p *Player) SetDistSqToBall(d float64)   { p.distSqToBall = d }
func (p *Player) LookAt() geom.Vec            { return p.lookAt }
func (p *Player) StateName() string           { return p.fsm.CurrentName() }

// Label is the short display name, e.g. "R3".
func (p *Player) Label() string {
	return fmt.Sprintf("%s%d", p.team.color.Initial(), p.id)
}

func (p *Player) pitch() *Pitch         { return p.team.pitch }
func (p *Player) ball() *Ball           { return p.team.pitch.ball }
func (p *Player) params() *Params       { return &p.team.pitch.params }
func (p *Player) allPlayers() []*Player { return p.team.pitch.players }

// HandleMessage routes a telegram into the player's state machine.
func (p *Player) HandleMessage(t Telegram) bool {
	return p.fsm.HandleMessage(t)
}

// dispatch sends msg from this player to receiver.
func (p *Player) dispatch(receiver *Player, msg MessageType, target geom.Vec, about *Player) {
	p.pitch().dispatcher.Dispatch(Telegram{
		Sender:   p.id,
		Receiver: receiver.id,
		Msg:      msg,
		Target:   target,
		Player:   about,
	})
}

// --- Regions ---

func (p *Player) HomeRegion() Region      { return p.pitch().Region(p.homeRegion) }
func (p *Player) HomeRegionIndex() int    { return p.homeRegion }
func (p *Player) SetHomeRegion(idx int)   { p.homeRegion = idx }
func (p *Player) SetDefaultHomeRegion()   { p.homeRegion = p.defaultRegion }
func (p *Player) DefaultRegionIndex() int { return p.defaultRegion }

// InHomeRegion reports whether the player stands in its home region. Field
// players must be in the central half of it.
func (p *Player) InHomeRegion() bool {
	if p.role == RoleGoalkeeper {
		return p.HomeRegion().Inside(p.Pos, RegionNormal)
	}
	return p.HomeRegion().Inside(p.Pos, RegionHalfSize)
}

// --- Ball queries ---

func (p *Player) BallWithinKeeperRange() bool {
	return geom.DistSq(p.Pos, p.ball().Pos) < p.params().KeeperInBallRangeSq
}

func (p *Player) BallWithinReceivingRange() bool {
	return geom.DistSq(p.Pos, p.ball().Pos) < p.params().BallWithinReceivingRangeSq
}

func (p *Player) BallWithinKickingRange() bool {
	return geom.DistSq(p.ball().Pos, p.Pos) < p.params().PlayerKickingDistanceSq
}

// IsReadyForNextKick consults the kick-rate regulator.
func (p *Player) IsReadyForNextKick() bool { return p.kickLimiter.IsReady() }

// --- Position queries ---

// PositionInFrontOfPlayer reports whether pos is ahead of the heading.
func (p *Player) PositionInFrontOfPlayer(pos geom.Vec) bool {
	return pos.Sub(p.Pos).Dot(p.Heading) > 0
}

// IsThreatened is true when an opponent is in front and inside the comfort
// zone.
func (p *Player) IsThreatened() bool {
	for _, opp := range p.team.opponents.players {
		if p.PositionInFrontOfPlayer(opp.Pos) &&
			geom.DistSq(p.Pos, opp.Pos) < p.params().PlayerComfortZoneSq {
			return true
		}
	}
	return false
}

// AtTarget reports whether the player is within range of its steering
// target. The target starts at the home region centre, so it is always set.
func (p *Player) AtTarget() bool {
	return geom.DistSq(p.Pos, p.steering.Target()) < p.params().PlayerInTargetRangeSq
}

func (p *Player) IsControllingPlayer() bool {
	return p.team.controlling == p
}

func (p *Player) IsClosestTeamMemberToBall() bool {
	return p.team.closestToBall == p
}

func (p *Player) IsClosestPlayerOnPitchToBall() bool {
	return p.IsClosestTeamMemberToBall() && p.distSqToBall < p.team.opponents.ClosestDistSqToBall()
}

// InHotRegion reports whether the player is within a third of the pitch
// length of the opponents' goal line.
func (p *Player) InHotRegion() bool {
	return math.Abs(p.Pos.X-p.team.opponentsGoal.Center.X) < p.pitch().PlayingArea().Length()/3.0
}

// IsAheadOfAttacker is true when the player is nearer the opponents' goal
// line than the controlling player.
func (p *Player) IsAheadOfAttacker() bool {
	c := p.team.controlling
	if c == nil {
		return false
	}
	return p.DistToOppGoal() < c.DistToOppGoal()
}

func (p *Player) DistToOppGoal() float64 {
	return math.Abs(p.Pos.X - p.team.opponentsGoal.Center.X)
}

func (p *Player) DistToHomeGoal() float64 {
	return math.Abs(p.Pos.X - p.team.homeGoal.Center.X)
}

// --- Orientation ---

// TrackBall turns the player toward the ball by up to its turn rate.
func (p *Player) TrackBall() {
	p.RotateHeadingToFacePosition(p.ball().Pos)
}

// TrackTarget faces the steering target directly, carrying the current
// speed round with it.
func (p *Player) TrackTarget() {
	h := p.steering.Target().Sub(p.Pos).Normalize()
	if h.IsZero() {
		return
	}
	p.Vel = h.Scale(p.Vel.Len())
	p.Heading = h
	p.Side = h.Perp()
}

// RotateHeadingToFacePosition turns heading and velocity toward target by at
// most MaxTurnRate. It returns true when already facing the target.
func (p *Player) RotateHeadingToFacePosition(target geom.Vec) bool {
	toTarget := target.Sub(p.Pos).Normalize()
	if toTarget.IsZero() {
		return true
	}
	angle := math.Acos(geom.Clamp(p.Heading.Dot(toTarget), -1, 1))
	if angle < 0.00001 {
		return true
	}
	if angle > p.MaxTurnRate {
		angle = p.MaxTurnRate
	}
	rot := angle * float64(p.Heading.Sign(toTarget))
	p.Heading = p.Heading.Rotate(rot)
	p.Vel = p.Vel.Rotate(rot)
	p.Side = p.Heading.Perp()
	return false
}

// --- Support ---

// FindSupport makes sure the best placed attacker is the team's supporting
// player, sending it to support and the previous supporter home.
func (p *Player) FindSupport() {
	t := p.team
	if t.supporting == nil {
		best := t.DetermineBestSupportingAttacker()
		if best == nil {
			return
		}
		t.SetSupportingPlayer(best)
		p.dispatch(best, MsgSupportAttacker, geom.Vec{}, nil)
	}

	best := t.DetermineBestSupportingAttacker()
	if best != nil && best != t.supporting {
		if t.supporting != nil {
			p.dispatch(t.supporting, MsgGoHome, geom.Vec{}, nil)
		}
		t.SetSupportingPlayer(best)
		p.dispatch(best, MsgSupportAttacker, geom.Vec{}, nil)
	}
}

// --- Update ---

// Update runs the state machine then integrates the steering force.
func (p *Player) Update() {
	p.fsm.Update()
	if p.role == RoleGoalkeeper {
		p.updateKeeperMotion()
	} else {
		p.updateFieldMotion()
	}
	if p.params().NonPenetrationConstraint {
		p.enforceNonPenetration()
	}
}

// updateFieldMotion turns toward the steering force and re-derives velocity
// from the new heading so the two stay aligned.
func (p *Player) updateFieldMotion() {
	p.steering.Calculate()

	if p.steering.Force().IsZero() {
		p.Vel = p.Vel.Scale(brakingRate)
	}

	turn := geom.Clamp(p.steering.SideComponent(), -p.MaxTurnRate, p.MaxTurnRate)
	p.Heading = p.Heading.Rotate(turn).Normalize()
	p.Side = p.Heading.Perp()

	speed := p.Vel.Len() + p.steering.ForwardComponent()/p.Mass
	if speed < 0 {
		speed = 0
	}
	if speed > p.MaxSpeed {
		speed = p.MaxSpeed
	}
	p.Vel = p.Heading.Scale(speed)
	p.Pos = p.Pos.Add(p.Vel)
}

// updateKeeperMotion integrates the force directly and faces the direction
// of travel; the keeper's look-at follows the ball.
func (p *Player) updateKeeperMotion() {
	force := p.steering.Calculate()
	p.Vel = p.Vel.Add(force.Div(p.Mass)).Truncate(p.MaxSpeed)
	p.Pos = p.Pos.Add(p.Vel)

	if !p.Vel.IsZero() {
		p.Heading = p.Vel.Normalize()
		p.Side = p.Heading.Perp()
	}
	if !p.pitch().GoalKeeperHasBall() {
		if look := p.ball().Pos.Sub(p.Pos).Normalize(); !look.IsZero() {
			p.lookAt = look
		}
	}
}

// enforceNonPenetration pushes this player out of any overlapping player.
func (p *Player) enforceNonPenetration() {
	for _, other := range p.allPlayers() {
		if other == p {
			continue
		}
		to := p.Pos.Sub(other.Pos)
		d := to.Len()
		if d < geom.Epsilon {
			continue
		}
		overlap := other.Radius + p.Radius - d
		if overlap >= 0 {
			p.Pos = p.Pos.Add(to.Scale(overlap / d))
		}
	}
}

// --- Goalkeeper ---

// BallWithinRangeForIntercept reports whether the ball is close enough to
// the home goal for the keeper to come out.
func (p *Player) BallWithinRangeForIntercept() bool {
	return geom.DistSq(p.team.homeGoal.Center, p.ball().Pos) <= p.params().GoalKeeperInterceptRangeSq
}

// TooFarFromGoalMouth reports whether the keeper has strayed beyond
// intercept range of its guarding point.
func (p *Player) TooFarFromGoalMouth() bool {
	return geom.DistSq(p.Pos, p.GetRearInterposeTarget()) > p.params().GoalKeeperInterceptRangeSq
}

// GetRearInterposeTarget maps the ball's lateral position onto the goal
// mouth: the keeper guards the point the ball could most directly reach.
func (p *Player) GetRearInterposeTarget() geom.Vec {
	area := p.pitch().PlayingArea()
	gw := p.params().GoalWidth
	x := p.team.homeGoal.Center.X
	y := area.Center().Y - gw*0.5 + (p.ball().Pos.Y*gw)/area.Height()
	return geom.V(x, y)
}
