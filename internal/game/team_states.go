package game

// Team states.
var (
	PrepareForKickOff State[*Team] = prepareForKickOff{}
	Defending         State[*Team] = defending{}
	Attacking         State[*Team] = attacking{}
)

// Formations, in team sheet order: keeper, attacker, attacker, defender,
// defender.
var (
	blueDefendingRegions = []int{1, 6, 8, 3, 5}
	redDefendingRegions  = []int{16, 9, 11, 12, 14}
	blueAttackingRegions = []int{1, 12, 14, 6, 4}
	redAttackingRegions  = []int{16, 3, 5, 9, 13}
)

type noTeamState struct{}

func (noTeamState) Enter(*Team)                    {}
func (noTeamState) Execute(*Team)                  {}
func (noTeamState) Exit(*Team)                     {}
func (noTeamState) OnMessage(*Team, Telegram) bool { return false }

// --- Attacking ---

type attacking struct{ noTeamState }

func (attacking) Name() string { return "Attacking" }

func (attacking) Enter(t *Team) {
	if t.color == TeamBlue {
		t.changePlayerHomeRegions(blueAttackingRegions)
	} else {
		t.changePlayerHomeRegions(redAttackingRegions)
	}
	t.UpdateTargetsOfWaitingPlayers()
}

func (attacking) Execute(t *Team) {
	if !t.InControl() {
		t.fsm.ChangeState(Defending)
		return
	}
	t.DetermineBestSupportingPosition()
}

func (attacking) Exit(t *Team) { t.SetSupportingPlayer(nil) }

// --- Defending ---

type defending struct{ noTeamState }

func (defending) Name() string { return "Defending" }

func (defending) Enter(t *Team) {
	if t.color == TeamBlue {
		t.changePlayerHomeRegions(blueDefendingRegions)
	} else {
		t.changePlayerHomeRegions(redDefendingRegions)
	}
	t.UpdateTargetsOfWaitingPlayers()
}

func (defending) Execute(t *Team) {
	if t.InControl() {
		t.fsm.ChangeState(Attacking)
	}
}

// --- PrepareForKickOff ---

type prepareForKickOff struct{ noTeamState }

func (prepareForKickOff) Name() string { return "PrepareForKickOff" }

// Enter clears every role pointer and sends the field players home.
func (prepareForKickOff) Enter(t *Team) {
	t.controlling = nil
	t.supporting = nil
	t.receiving = nil
	t.closestToBall = nil
	t.ReturnAllFieldPlayersToHome()
}

// Execute waits until both sides stand in their home regions.
func (prepareForKickOff) Execute(t *Team) {
	if t.AllPlayersAtHome() && t.opponents.AllPlayersAtHome() {
		t.fsm.ChangeState(Defending)
	}
}

// Exit restarts play.
func (prepareForKickOff) Exit(t *Team) { t.pitch.SetGameOn(true) }
