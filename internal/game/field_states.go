package game

import (
	"math"

	"github.com/Markof87/AI-SimpleSoccer/internal/geom"
)

// Field player states. Each is a stateless value shared by every field
// player; per-player data lives on the Player.
var (
	GlobalPlayerState State[*Player] = globalPlayerState{}
	ChaseBall         State[*Player] = chaseBall{}
	ReceiveBall       State[*Player] = receiveBall{}
	KickBall          State[*Player] = kickBall{}
	Dribble           State[*Player] = dribble{}
	SupportAttacker   State[*Player] = supportAttacker{}
	ReturnToHome      State[*Player] = returnToHomeRegion{}
	Wait              State[*Player] = wait{}
)

// passThreatRadius is how close an opponent must be to a receiver to make
// it run at the ball rather than wait for it.
const passThreatRadius = 70.0

// dribbleTurnForce is the gentle tap used while turning with the ball.
const dribbleTurnForce = 0.8

// noState provides no-op hooks for states that do not need them.
type noState struct{}

func (noState) Enter(*Player)                    {}
func (noState) Execute(*Player)                  {}
func (noState) Exit(*Player)                     {}
func (noState) OnMessage(*Player, Telegram) bool { return false }

// --- Global ---

type globalPlayerState struct{ noState }

func (globalPlayerState) Name() string { return "Global" }

// Execute slows the player down while the ball is at its feet.
func (globalPlayerState) Execute(p *Player) {
	if p.BallWithinReceivingRange() {
		p.MaxSpeed = p.params().PlayerMaxSpeedWithBall
	} else {
		p.MaxSpeed = p.params().PlayerMaxSpeedWithoutBall
	}
}

func (globalPlayerState) OnMessage(p *Player, t Telegram) bool {
	switch t.Msg {
	case MsgReceiveBall:
		p.steering.SetTarget(t.Target)
		p.fsm.ChangeState(ReceiveBall)
		return true

	case MsgSupportAttacker:
		if p.fsm.IsInState(SupportAttacker) {
			return true
		}
		p.steering.SetTarget(p.team.GetSupportSpot())
		p.fsm.ChangeState(SupportAttacker)
		return true

	case MsgWait:
		p.fsm.ChangeState(Wait)
		return true

	case MsgGoHome:
		p.SetDefaultHomeRegion()
		p.fsm.ChangeState(ReturnToHome)
		return true

	case MsgPassToMe:
		receiver := t.Player
		if receiver == nil || p.team.receiving != nil || !p.BallWithinKickingRange() {
			return true
		}
		ball := p.ball()
		ball.Kick(receiver.Pos.Sub(ball.Pos), p.params().MaxPassingForce)
		p.pitch().logKick(p, "pass_on_request", receiver.Pos, p.params().MaxPassingForce)
		p.dispatch(receiver, MsgReceiveBall, receiver.Pos, nil)
		p.fsm.ChangeState(Wait)
		p.FindSupport()
		return true
	}
	return false
}

// --- ChaseBall ---

type chaseBall struct{ noState }

func (chaseBall) Name() string { return "ChaseBall" }

func (chaseBall) Enter(p *Player) { p.steering.SeekOn() }

func (chaseBall) Execute(p *Player) {
	if p.BallWithinKickingRange() {
		p.fsm.ChangeState(KickBall)
		return
	}
	if p.IsClosestTeamMemberToBall() {
		p.steering.SetTarget(p.ball().Pos)
		return
	}
	p.fsm.ChangeState(ReturnToHome)
}

func (chaseBall) Exit(p *Player) { p.steering.SeekOff() }

// --- SupportAttacker ---

type supportAttacker struct{ noState }

func (supportAttacker) Name() string { return "SupportAttacker" }

func (supportAttacker) Enter(p *Player) {
	p.steering.ArriveOn()
	p.steering.SetTarget(p.team.GetSupportSpot())
}

func (supportAttacker) Execute(p *Player) {
	if !p.team.InControl() {
		p.fsm.ChangeState(ReturnToHome)
		return
	}

	if spot := p.team.GetSupportSpot(); spot != p.steering.Target() {
		p.steering.SetTarget(spot)
		p.steering.ArriveOn()
	}

	if _, ok := p.team.CanShoot(p.Pos, p.params().MaxShootingForce); ok {
		p.team.RequestPass(p)
	}

	if p.AtTarget() {
		p.steering.ArriveOff()
		p.TrackBall()
		p.Vel = geom.Vec{}
		if !p.IsThreatened() {
			p.team.RequestPass(p)
		}
	}
}

func (supportAttacker) Exit(p *Player) {
	p.team.SetSupportingPlayer(nil)
	p.steering.ArriveOff()
}

// --- ReturnToHomeRegion ---

type returnToHomeRegion struct{ noState }

func (returnToHomeRegion) Name() string { return "ReturnToHomeRegion" }

func (returnToHomeRegion) Enter(p *Player) {
	p.steering.ArriveOn()
	if !p.HomeRegion().Inside(p.steering.Target(), RegionHalfSize) {
		p.steering.SetTarget(p.HomeRegion().Center())
	}
}

func (returnToHomeRegion) Execute(p *Player) {
	pitch := p.pitch()
	if pitch.GameOn() {
		if p.IsClosestTeamMemberToBall() && p.team.receiving == nil && !pitch.GoalKeeperHasBall() {
			p.fsm.ChangeState(ChaseBall)
			return
		}
	}

	if pitch.GameOn() && p.HomeRegion().Inside(p.Pos, RegionHalfSize) {
		p.steering.SetTarget(p.Pos)
		p.fsm.ChangeState(Wait)
	} else if !pitch.GameOn() && p.AtTarget() {
		p.fsm.ChangeState(Wait)
	}
}

func (returnToHomeRegion) Exit(p *Player) { p.steering.ArriveOff() }

// --- Wait ---

type wait struct{ noState }

func (wait) Name() string { return "Wait" }

func (wait) Enter(p *Player) {
	if !p.pitch().GameOn() {
		p.steering.SetTarget(p.HomeRegion().Center())
	}
}

func (wait) Execute(p *Player) {
	if !p.AtTarget() {
		p.steering.ArriveOn()
		return
	}
	p.steering.ArriveOff()
	p.Vel = geom.Vec{}
	p.TrackBall()

	if p.team.InControl() && !p.IsControllingPlayer() && p.IsAheadOfAttacker() {
		p.team.RequestPass(p)
		return
	}

	pitch := p.pitch()
	if pitch.GameOn() && p.IsClosestTeamMemberToBall() &&
		p.team.receiving == nil && !pitch.GoalKeeperHasBall() {
		p.fsm.ChangeState(ChaseBall)
	}
}

// Exit turns off the arrive that Execute may have enabled.
func (wait) Exit(p *Player) { p.steering.ArriveOff() }

// --- KickBall ---

type kickBall struct{ noState }

func (kickBall) Name() string { return "KickBall" }

func (kickBall) Enter(p *Player) {
	p.team.SetControllingPlayer(p)
	if !p.IsReadyForNextKick() {
		p.fsm.ChangeState(ChaseBall)
	}
}

// Execute tries, in order, a shot, a pass out of trouble and a dribble.
func (kickBall) Execute(p *Player) {
	ball := p.ball()
	pitch := p.pitch()
	prm := p.params()

	toBall := ball.Pos.Sub(p.Pos)
	dot := p.Heading.Dot(toBall.Normalize())

	// no kick if the keeper holds the ball, a pass is in flight or the ball
	// is behind the player
	if p.team.receiving != nil || pitch.GoalKeeperHasBall() || dot < 0 {
		p.fsm.ChangeState(ChaseBall)
		return
	}

	power := prm.MaxShootingForce * dot
	if target, ok := p.team.CanShoot(ball.Pos, power); ok || pitch.rng.Float64() < prm.ChancePlayerAttemptsPotShot {
		target = AddNoiseToKick(pitch.rng, prm.PlayerKickingAccuracy, ball.Pos, target)
		ball.Kick(target.Sub(ball.Pos), power)
		pitch.logKick(p, "shot", target, power)
		p.fsm.ChangeState(Wait)
		p.FindSupport()
		return
	}

	power = prm.MaxPassingForce * dot
	if p.IsThreatened() {
		if receiver, target, ok := p.team.FindPass(p, power, prm.MinPassDist); ok {
			target = AddNoiseToKick(pitch.rng, prm.PlayerKickingAccuracy, ball.Pos, target)
			ball.Kick(target.Sub(ball.Pos), power)
			pitch.logKick(p, "pass", target, power)
			p.dispatch(receiver, MsgReceiveBall, target, nil)
			p.fsm.ChangeState(Wait)
			p.FindSupport()
			return
		}
	}

	p.FindSupport()
	p.fsm.ChangeState(Dribble)
}

// --- Dribble ---

type dribble struct{ noState }

func (dribble) Name() string { return "Dribble" }

func (dribble) Enter(p *Player) { p.team.SetControllingPlayer(p) }

// Execute taps the ball forward. If the player faces its own goal it turns
// a quarter turn with the ball, toward the shorter way round.
func (dribble) Execute(p *Player) {
	ball := p.ball()
	facing := p.team.homeGoal.Facing
	if facing.Dot(p.Heading) < 0 {
		angle := math.Pi / 4 * -1 * float64(facing.Sign(p.Heading))
		dir := p.Heading.Rotate(angle)
		ball.Kick(dir, dribbleTurnForce)
		p.pitch().logKick(p, "dribble_turn", ball.Pos.Add(dir), dribbleTurnForce)
	} else {
		ball.Kick(facing, p.params().MaxDribbleForce)
		p.pitch().logKick(p, "dribble", ball.Pos.Add(facing), p.params().MaxDribbleForce)
	}
	p.fsm.ChangeState(ChaseBall)
}

// --- ReceiveBall ---

type receiveBall struct{ noState }

func (receiveBall) Name() string { return "ReceiveBall" }

// Enter picks between waiting at the pass target and running onto the
// ball. Arrive is only used when no opponent is near.
func (receiveBall) Enter(p *Player) {
	p.team.SetReceiver(p)
	p.team.SetControllingPlayer(p)

	prm := p.params()
	useArrive := p.InHotRegion() || p.pitch().rng.Float64() < prm.ChanceOfUsingArriveTypeReceiveBehavior
	if useArrive && !p.team.IsOpponentWithinRadius(p.Pos, passThreatRadius) {
		p.steering.ArriveOn()
	} else {
		p.steering.PursuitOn()
	}
}

func (receiveBall) Execute(p *Player) {
	if p.BallWithinReceivingRange() || !p.team.InControl() {
		p.fsm.ChangeState(ChaseBall)
		return
	}
	if p.steering.PursuitIsOn() {
		p.steering.SetTarget(p.ball().Pos)
	}
	if p.AtTarget() {
		p.steering.ArriveOff()
		p.steering.PursuitOff()
		p.TrackBall()
		p.Vel = geom.Vec{}
	}
}

func (receiveBall) Exit(p *Player) {
	p.steering.ArriveOff()
	p.steering.PursuitOff()
	p.team.SetReceiver(nil)
}
