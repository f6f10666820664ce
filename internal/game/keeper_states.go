package game

import "github.com/Markof87/AI-SimpleSoccer/internal/geom"

// Goalkeeper states.
var (
	GlobalKeeperState State[*Player] = globalKeeperState{}
	TendGoal          State[*Player] = tendGoal{}
	InterceptBall     State[*Player] = interceptBall{}
	ReturnHome        State[*Player] = returnHome{}
	PutBallBackInPlay State[*Player] = putBallBackInPlay{}
)

type globalKeeperState struct{ noState }

func (globalKeeperState) Name() string { return "KeeperGlobal" }

// OnMessage acts on go-home and receive-ball but reports every telegram as
// unhandled.
func (globalKeeperState) OnMessage(k *Player, t Telegram) bool {
	switch t.Msg {
	case MsgGoHome:
		k.SetDefaultHomeRegion()
		k.fsm.ChangeState(ReturnHome)
	case MsgReceiveBall:
		k.fsm.ChangeState(InterceptBall)
	}
	return false
}

// --- TendGoal ---

type tendGoal struct{ noState }

func (tendGoal) Name() string { return "TendGoal" }

func (tendGoal) Enter(k *Player) {
	k.steering.InterposeOn(k.params().GoalKeeperTendingDistance)
	k.steering.SetTarget(k.GetRearInterposeTarget())
}

// Execute keeps the keeper between the ball and the goal mouth.
func (tendGoal) Execute(k *Player) {
	k.steering.SetTarget(k.GetRearInterposeTarget())

	if k.BallWithinKeeperRange() {
		k.trapBall()
		k.fsm.ChangeState(PutBallBackInPlay)
		return
	}

	if k.BallWithinRangeForIntercept() && !k.team.InControl() {
		k.fsm.ChangeState(InterceptBall)
		return
	}

	if k.TooFarFromGoalMouth() && k.team.InControl() {
		k.fsm.ChangeState(ReturnHome)
	}
}

func (tendGoal) Exit(k *Player) { k.steering.InterposeOff() }

// --- ReturnHome ---

type returnHome struct{ noState }

func (returnHome) Name() string { return "ReturnHome" }

func (returnHome) Enter(k *Player) { k.steering.ArriveOn() }

func (returnHome) Execute(k *Player) {
	k.steering.SetTarget(k.HomeRegion().Center())
	if k.InHomeRegion() || !k.team.InControl() {
		k.fsm.ChangeState(TendGoal)
	}
}

func (returnHome) Exit(k *Player) { k.steering.ArriveOff() }

// --- InterceptBall ---

type interceptBall struct{ noState }

func (interceptBall) Name() string { return "InterceptBall" }

func (interceptBall) Enter(k *Player) { k.steering.PursuitOn() }

// Execute chases the ball, giving up once the keeper is too far out unless
// it is still the nearest player to the ball.
func (interceptBall) Execute(k *Player) {
	if k.TooFarFromGoalMouth() && !k.IsClosestPlayerOnPitchToBall() {
		k.fsm.ChangeState(ReturnHome)
		return
	}
	if k.BallWithinKeeperRange() {
		k.trapBall()
		k.fsm.ChangeState(PutBallBackInPlay)
	}
}

func (interceptBall) Exit(k *Player) { k.steering.PursuitOff() }

// --- PutBallBackInPlay ---

type putBallBackInPlay struct{ noState }

func (putBallBackInPlay) Name() string { return "PutBallBackInPlay" }

func (putBallBackInPlay) Enter(k *Player) {
	k.team.SetControllingPlayer(k)
	k.team.opponents.ReturnAllFieldPlayersToHome()
	k.team.ReturnAllFieldPlayersToHome()
}

// Execute looks for a safe pass forward; until one exists the keeper holds.
func (putBallBackInPlay) Execute(k *Player) {
	prm := k.params()
	receiver, target, ok := k.team.FindPass(k, prm.MaxPassingForce, prm.GoalkeeperMinPassDist)
	if ok {
		ball := k.ball()
		ball.Kick(target.Sub(ball.Pos).Normalize(), prm.MaxPassingForce)
		k.pitch().SetGoalKeeperHasBall(false)
		k.pitch().logKick(k, "keeper_pass", target, prm.MaxPassingForce)
		k.dispatch(receiver, MsgReceiveBall, target, nil)
		k.fsm.ChangeState(TendGoal)
		return
	}
	k.Vel = geom.Vec{}
}

// trapBall stops the ball and hands it to the keeper.
func (k *Player) trapBall() {
	ball := k.ball()
	ball.Trap()
	ball.Owner = k
	k.pitch().SetGoalKeeperHasBall(true)
	k.pitch().logSave(k)
}
