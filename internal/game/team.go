package game

import (
	"math"

	"github.com/Markof87/AI-SimpleSoccer/internal/geom"
)

// TeamColor identifies a side.
type TeamColor int

const (
	TeamRed TeamColor = iota
	TeamBlue
)

func (c TeamColor) String() string {
	if c == TeamBlue {
		return "blue"
	}
	return "red"
}

// Initial is the one-letter prefix used in player labels.
func (c TeamColor) Initial() string {
	if c == TeamBlue {
		return "B"
	}
	return "R"
}

// interceptScaling shrinks the circle a receiver could reach during a pass;
// passes aimed at its tangents stay realistic.
const interceptScaling = 0.3

// Team owns a roster of five players, the team state machine and the
// support spot calculator. The controlling, supporting, receiving and
// closest-to-ball pointers are rewritten during each tick.
type Team struct {
	color   TeamColor
	pitch   *Pitch
	players []*Player

	homeGoal      *Goal
	opponentsGoal *Goal
	opponents     *Team

	fsm *StateMachine[*Team]

	controlling   *Player
	supporting    *Player
	receiving     *Player
	closestToBall *Player

	distSqToBallOfClosest float64

	spots *SupportSpotCalculator
}

// teamSheet is one player slot: default region and role.
type teamSheet struct {
	region int
	role   PlayerRole
}

var (
	blueSheet = []teamSheet{{1, RoleGoalkeeper}, {6, RoleAttacker}, {8, RoleAttacker}, {3, RoleDefender}, {5, RoleDefender}}
	redSheet  = []teamSheet{{16, RoleGoalkeeper}, {9, RoleAttacker}, {11, RoleAttacker}, {12, RoleDefender}, {14, RoleDefender}}
)

func newTeam(pitch *Pitch, color TeamColor, homeGoal, opponentsGoal *Goal, firstID int) *Team {
	t := &Team{
		color:                 color,
		pitch:                 pitch,
		homeGoal:              homeGoal,
		opponentsGoal:         opponentsGoal,
		distSqToBallOfClosest: math.MaxFloat64,
	}
	t.fsm = NewStateMachine(t)
	t.fsm.OnChange(func(from, to State[*Team]) {
		pitch.logTeamState(t, from, to)
	})
	t.fsm.SetCurrentState(Defending)
	t.fsm.SetPreviousState(Defending)

	sheet, heading := redSheet, geom.V(0, -1)
	if color == TeamBlue {
		sheet, heading = blueSheet, geom.V(0, 1)
	}
	for i, slot := range sheet {
		t.players = append(t.players, newPlayer(t, firstID+i, slot.region, heading, slot.role))
	}
	t.spots = newSupportSpotCalculator(t, pitch.params.NumSupportSpotsX, pitch.params.NumSupportSpotsY)
	return t
}

// --- Accessors ---

func (t *Team) Color() TeamColor          { return t.color }
func (t *Team) Players() []*Player        { return t.players }
func (t *Team) HomeGoal() *Goal           { return t.homeGoal }
func (t *Team) OpponentsGoal() *Goal      { return t.opponentsGoal }
func (t *Team) Opponents() *Team          { return t.opponents }
func (t *Team) FSM() *StateMachine[*Team] { return t.fsm }
func (t *Team) Pitch() *Pitch             { return t.pitch }

func (t *Team) SupportSpots() *SupportSpotCalculator { return t.spots }

func (t *Team) ControllingPlayer() *Player   { return t.controlling }
func (t *Team) SupportingPlayer() *Player    { return t.supporting }
func (t *Team) Receiver() *Player            { return t.receiving }
func (t *Team) PlayerClosestToBall() *Player { return t.closestToBall }

func (t *Team) ClosestDistSqToBall() float64 { return t.distSqToBallOfClosest }

func (t *Team) SetSupportingPlayer(p *Player)    { t.supporting = p }
func (t *Team) SetReceiver(p *Player)            { t.receiving = p }
func (t *Team) SetPlayerClosestToBall(p *Player) { t.closestToBall = p }

// InControl reports whether one of this team's players controls the ball.
func (t *Team) InControl() bool { return t.controlling != nil }

// SetControllingPlayer gives control to p; the opponents lose control.
func (t *Team) SetControllingPlayer(p *Player) {
	if t.controlling != p {
		t.pitch.logControl(t, p)
	}
	t.controlling = p
	if p != nil {
		t.opponents.LostControl()
	}
}

// LostControl clears the controlling player.
func (t *Team) LostControl() { t.controlling = nil }

// Score is the number of goals this team has scored.
func (t *Team) Score() int { return t.opponentsGoal.NumGoalsScored() }

// Goalkeeper returns the team's keeper.
func (t *Team) Goalkeeper() *Player {
	for _, p := range t.players {
		if p.role == RoleGoalkeeper {
			return p
		}
	}
	return nil
}

// --- Tick ---

// Update refreshes the closest player to the ball, then runs the team state
// machine and each player.
func (t *Team) Update() {
	t.CalculateClosestPlayerToBall()
	t.fsm.Update()
	for _, p := range t.players {
		p.Update()
	}
}

// CalculateClosestPlayerToBall caches every player's squared distance to the
// ball and records the nearest one.
func (t *Team) CalculateClosestPlayerToBall() {
	closest := math.MaxFloat64
	ballPos := t.pitch.ball.Pos
	for _, p := range t.players {
		d := geom.DistSq(p.Pos, ballPos)
		p.SetDistSqToBall(d)
		if d < closest {
			closest = d
			t.closestToBall = p
		}
	}
	t.distSqToBallOfClosest = closest
}

// --- Support ---

// DetermineBestSupportingAttacker returns the attacker, other than the
// controller, nearest the best support spot, or nil.
func (t *Team) DetermineBestSupportingAttacker() *Player {
	closest := math.MaxFloat64
	var best *Player
	spot := t.spots.GetBestSupportingSpot()
	for _, p := range t.players {
		if p.role != RoleAttacker || p == t.controlling {
			continue
		}
		if d := geom.DistSq(p.Pos, spot); d < closest {
			closest = d
			best = p
		}
	}
	return best
}

// GetSupportSpot returns the current best support position.
func (t *Team) GetSupportSpot() geom.Vec { return t.spots.GetBestSupportingSpot() }

// DetermineBestSupportingPosition rescores the support spots if the
// calculator's regulator allows it.
func (t *Team) DetermineBestSupportingPosition() geom.Vec {
	return t.spots.DetermineBestSupportingPosition()
}

// --- Passing ---

// FindPass picks the teammate further than minPassDist from the passer whose
// best pass target lies closest to the opponents' goal line.
func (t *Team) FindPass(passer *Player, power, minPassDist float64) (*Player, geom.Vec, bool) {
	closestToGoal := math.MaxFloat64
	var receiver *Player
	var target geom.Vec
	minSq := minPassDist * minPassDist

	for _, p := range t.players {
		if p == passer || geom.DistSq(passer.Pos, p.Pos) <= minSq {
			continue
		}
		pass, ok := t.GetBestPassToReceiver(passer, p, power)
		if !ok {
			continue
		}
		if d := math.Abs(pass.X - t.opponentsGoal.Center.X); d < closestToGoal {
			closestToGoal = d
			receiver = p
			target = pass
		}
	}
	return receiver, target, receiver != nil
}

// GetBestPassToReceiver tries three targets for a pass to receiver: its
// position and the two tangent points of the circle it can reach while the
// ball travels. The safe in-pitch target nearest the opponents' goal line
// wins.
func (t *Team) GetBestPassToReceiver(passer, receiver *Player, power float64) (geom.Vec, bool) {
	ball := t.pitch.ball
	time := ball.TimeToCoverDistance(ball.Pos, receiver.Pos, power)
	if time < 0 {
		return geom.Vec{}, false
	}
	interceptRange := time * receiver.MaxSpeed * interceptScaling

	candidates := []geom.Vec{receiver.Pos}
	if ip1, ip2, ok := geom.TangentPoints(receiver.Pos, interceptRange, ball.Pos); ok {
		candidates = []geom.Vec{ip1, receiver.Pos, ip2}
	}

	closest := math.MaxFloat64
	var target geom.Vec
	found := false
	area := t.pitch.PlayingArea()
	for _, c := range candidates {
		d := math.Abs(c.X - t.opponentsGoal.Center.X)
		if d < closest && area.Inside(c, RegionNormal) &&
			t.IsPassSafeFromAllOpponents(ball.Pos, c, receiver, power) {
			closest = d
			target = c
			found = true
		}
	}
	return target, found
}

// IsPassSafeFromOpponent tests one opponent against a pass from -> target.
// receiver may be nil for shots.
func (t *Team) IsPassSafeFromOpponent(from, target geom.Vec, receiver, opp *Player, power float64) bool {
	dir := target.Sub(from).Normalize()
	local := geom.ToLocalSpace(opp.Pos, dir, dir.Perp(), from)

	// behind the kicker
	if local.X < 0 {
		return true
	}

	// the target is nearer than the opponent: safe unless the opponent is
	// nearer the target than the receiver
	if geom.DistSq(from, target) < geom.DistSq(opp.Pos, from) {
		if receiver == nil {
			return true
		}
		return geom.DistSq(target, opp.Pos) > geom.DistSq(target, receiver.Pos)
	}

	ball := t.pitch.ball
	timeForBall := ball.TimeToCoverDistance(geom.Vec{}, geom.V(local.X, 0), power)
	reach := opp.MaxSpeed*timeForBall + ball.Radius + opp.Radius
	return math.Abs(local.Y) >= reach
}

// IsPassSafeFromAllOpponents checks every opponent.
func (t *Team) IsPassSafeFromAllOpponents(from, target geom.Vec, receiver *Player, power float64) bool {
	for _, opp := range t.opponents.players {
		if !t.IsPassSafeFromOpponent(from, target, receiver, opp, power) {
			return false
		}
	}
	return true
}

// CanShoot samples random points on the opponents' goal mouth, keeping the
// ball's radius inside the posts, and accepts the first one the ball can
// reach without an opponent intercepting. The last sample is returned
// either way.
func (t *Team) CanShoot(ballPos geom.Vec, power float64) (geom.Vec, bool) {
	ball := t.pitch.ball
	goal := t.opponentsGoal
	minY := int(goal.LeftPost.Y + ball.Radius)
	maxY := int(goal.RightPost.Y - ball.Radius)

	var target geom.Vec
	for i := 0; i < t.pitch.params.NumAttemptsToFindValidStrike; i++ {
		target = goal.Center
		target.Y = float64(randInt(t.pitch.rng, minY, maxY))
		if ball.TimeToCoverDistance(ballPos, target, power) >= 0 &&
			t.IsPassSafeFromAllOpponents(ballPos, target, nil, power) {
			return target, true
		}
	}
	return target, false
}

// RequestPass asks the controlling player for the ball. Only one request in
// ten goes through, and only when the pass would be safe.
func (t *Team) RequestPass(requester *Player) {
	if t.pitch.rng.Float64() > 0.1 {
		return
	}
	c := t.controlling
	if c == nil || c == requester {
		return
	}
	if t.IsPassSafeFromAllOpponents(c.Pos, requester.Pos, requester, t.pitch.params.MaxPassingForce) {
		requester.dispatch(c, MsgPassToMe, geom.Vec{}, requester)
	}
}

// IsOpponentWithinRadius reports whether any opponent is closer than rad.
func (t *Team) IsOpponentWithinRadius(pos geom.Vec, rad float64) bool {
	for _, opp := range t.opponents.players {
		if geom.DistSq(pos, opp.Pos) < rad*rad {
			return true
		}
	}
	return false
}

// --- Positioning ---

// ReturnAllFieldPlayersToHome sends every field player a go-home message.
func (t *Team) ReturnAllFieldPlayersToHome() {
	for _, p := range t.players {
		if p.role == RoleGoalkeeper {
			continue
		}
		t.pitch.dispatcher.Dispatch(Telegram{Sender: 0, Receiver: p.id, Msg: MsgGoHome})
	}
}

// UpdateTargetsOfWaitingPlayers re-aims field players that are waiting or
// walking home at their (possibly new) home region.
func (t *Team) UpdateTargetsOfWaitingPlayers() {
	for _, p := range t.players {
		if p.role == RoleGoalkeeper {
			continue
		}
		if p.fsm.IsInState(Wait) || p.fsm.IsInState(ReturnToHome) {
			p.steering.SetTarget(p.HomeRegion().Center())
		}
	}
}

// AllPlayersAtHome reports whether every player stands in its home region.
func (t *Team) AllPlayersAtHome() bool {
	for _, p := range t.players {
		if !p.InHomeRegion() {
			return false
		}
	}
	return true
}

// SetPlayerHomeRegion assigns a home region to the player at index i.
func (t *Team) SetPlayerHomeRegion(i, region int) {
	if i >= 0 && i < len(t.players) {
		t.players[i].SetHomeRegion(region)
	}
}

// changePlayerHomeRegions applies a full formation.
func (t *Team) changePlayerHomeRegions(regions []int) {
	for i, r := range regions {
		t.SetPlayerHomeRegion(i, r)
	}
}
