package game

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Markof87/AI-SimpleSoccer/internal/geom"
)

// pitchMargin is the gap between the window edge and the playing area.
const pitchMargin = 20.0

// Region grid dimensions.
const (
	NumRegionsHorizontal = 6
	NumRegionsVertical   = 3
)

// Pitch owns the ball, both teams, the goals, the boundary walls and the
// region grid, and runs one tick of the match per Update.
type Pitch struct {
	width  float64
	height float64

	params Params
	clock  *SimClock
	seed   int64
	rng    Rand

	logger   *log.Logger
	matchLog *MatchLog
	stats    *MatchStats
	matchID  uuid.UUID

	immediate  *ImmediateDispatcher
	dispatcher Dispatcher
	deferred   bool

	playingArea Region
	regions     []Region
	walls       []geom.Wall
	redGoal     *Goal
	blueGoal    *Goal
	ball        *Ball
	red         *Team
	blue        *Team
	players     []*Player

	gameOn        bool
	paused        bool
	keeperHasBall bool
}

// PitchOption configures a Pitch before its entities are built.
type PitchOption func(*Pitch)

// WithParams replaces the default tuning set.
func WithParams(prm Params) PitchOption {
	return func(p *Pitch) {
		prm.Derive()
		p.params = prm
	}
}

// WithSeed seeds the default random source.
func WithSeed(seed int64) PitchOption {
	return func(p *Pitch) {
		p.seed = seed
		p.rng = NewRand(seed)
	}
}

// WithRand injects a random source.
func WithRand(r Rand) PitchOption {
	return func(p *Pitch) { p.rng = r }
}

// WithLogger routes the debug trace to l.
func WithLogger(l *log.Logger) PitchOption {
	return func(p *Pitch) { p.logger = l }
}

// WithMatchLog records structured events into ml.
func WithMatchLog(ml *MatchLog) PitchOption {
	return func(p *Pitch) { p.matchLog = ml }
}

// WithDeferredMessaging queues telegrams and delivers them at the end of
// each tick instead of immediately.
func WithDeferredMessaging() PitchOption {
	return func(p *Pitch) { p.deferred = true }
}

// NewPitch builds a match on a window of the given size.
func NewPitch(width, height float64, opts ...PitchOption) *Pitch {
	p := &Pitch{
		width:  width,
		height: height,
		params: DefaultParams(),
		seed:   1,
	}
	for _, o := range opts {
		o(p)
	}
	if p.rng == nil {
		p.rng = NewRand(p.seed)
	}
	if p.logger == nil {
		p.logger = log.New(io.Discard)
	}
	if p.matchLog == nil {
		p.matchLog = NewMatchLog()
	}
	p.clock = NewSimClock(p.params.FrameRate)
	p.matchID = newMatchID(p.seed)
	p.build()
	return p
}

// newMatchID derives a stable id from the seed so reruns match.
func newMatchID(seed int64) uuid.UUID {
	src := rand.New(rand.NewSource(seed)) // #nosec G404 -- id only
	id, err := uuid.NewRandomFromReader(src)
	if err != nil {
		return uuid.New()
	}
	return id
}

// build creates the playing area, goals, walls, regions, ball and teams.
// The ball must exist before the teams: keepers look at it on creation.
func (p *Pitch) build() {
	p.playingArea = NewRegion(pitchMargin, pitchMargin, p.width-pitchMargin, p.height-pitchMargin, -1)
	area := p.playingArea
	gw := p.params.GoalWidth

	p.redGoal = NewGoal(
		geom.V(area.Left, (p.height-gw)/2),
		geom.V(area.Left, p.height-(p.height-gw)/2),
		geom.V(1, 0))
	p.blueGoal = NewGoal(
		geom.V(area.Right, (p.height-gw)/2),
		geom.V(area.Right, p.height-(p.height-gw)/2),
		geom.V(-1, 0))

	topLeft := geom.V(area.Left, area.Top)
	topRight := geom.V(area.Right, area.Top)
	bottomRight := geom.V(area.Right, area.Bottom)
	bottomLeft := geom.V(area.Left, area.Bottom)
	p.walls = []geom.Wall{
		geom.NewWall(bottomLeft, p.redGoal.RightPost),
		geom.NewWall(p.redGoal.LeftPost, topLeft),
		geom.NewWall(topLeft, topRight),
		geom.NewWall(topRight, p.blueGoal.LeftPost),
		geom.NewWall(p.blueGoal.RightPost, bottomRight),
		geom.NewWall(bottomRight, bottomLeft),
	}

	p.createRegions(area.Width()/NumRegionsHorizontal, area.Height()/NumRegionsVertical)

	p.ball = NewBall(area.Center(), p.params.BallSize, p.params.BallMass, p.params.Friction, p.walls)
	p.gameOn = true
	p.keeperHasBall = false
	p.stats = newMatchStats()

	p.red = newTeam(p, TeamRed, p.redGoal, p.blueGoal, 1)
	p.blue = newTeam(p, TeamBlue, p.blueGoal, p.redGoal, 1+len(redSheet))
	p.red.opponents = p.blue
	p.blue.opponents = p.red

	p.players = append(append([]*Player{}, p.red.players...), p.blue.players...)

	p.immediate = NewImmediateDispatcher()
	for _, pl := range p.players {
		p.immediate.Register(pl)
	}
	p.immediate.Observe(p.logTelegram)
	p.dispatcher = p.immediate
	if p.deferred {
		p.dispatcher = NewDeferredDispatcher(p.immediate)
	}
}

// createRegions lays out the grid column by column from the left, each
// column top to bottom, numbering down from the top-left region.
func (p *Pitch) createRegions(w, h float64) {
	area := p.playingArea
	p.regions = make([]Region, NumRegionsHorizontal*NumRegionsVertical)
	idx := len(p.regions) - 1
	for col := 0; col < NumRegionsHorizontal; col++ {
		for row := 0; row < NumRegionsVertical; row++ {
			p.regions[idx] = NewRegion(
				area.Left+float64(col)*w,
				area.Top+float64(row)*h,
				area.Left+float64(col+1)*w,
				area.Top+float64(row+1)*h,
				idx)
			idx--
		}
	}
}

// --- Tick ---

// Update runs one tick: the ball moves, then red, then blue. A goal puts
// the ball back on the centre spot and sends both teams to kick-off.
func (p *Pitch) Update() {
	if p.paused {
		return
	}
	p.clock.Advance()

	p.ball.Update()
	p.red.Update()
	p.blue.Update()
	p.stats.sample(p)

	switch {
	case p.blueGoal.Scored(p.ball):
		p.onGoal(p.red)
	case p.redGoal.Scored(p.ball):
		p.onGoal(p.blue)
	}

	if f, ok := p.dispatcher.(flusher); ok {
		f.Flush()
	}
}

func (p *Pitch) onGoal(scorer *Team) {
	p.gameOn = false
	p.stats.goal(scorer.color)
	p.matchLog.Add(p.Tick(), "--", scorer.color.String(), CatGoal, "scored",
		fmt.Sprintf("red %d - %d blue", p.red.Score(), p.blue.Score()), 0)
	p.logger.Info("goal", "team", scorer.color, "red", p.red.Score(), "blue", p.blue.Score(), "tick", p.Tick())

	p.ball.PlaceAtPosition(p.playingArea.Center())
	p.red.fsm.ChangeState(PrepareForKickOff)
	p.blue.fsm.ChangeState(PrepareForKickOff)
}

// TogglePause freezes or resumes the match.
func (p *Pitch) TogglePause() {
	p.paused = !p.paused
	key := "resume"
	if p.paused {
		key = "pause"
	}
	p.matchLog.Add(p.Tick(), "--", "--", CatPitch, key, "", 0)
}

// Reset rebuilds both teams and the ball and zeroes the score. The clock
// and the match log keep running.
func (p *Pitch) Reset() {
	p.build()
	p.matchLog.Add(p.Tick(), "--", "--", CatPitch, "reset", "", 0)
	p.logger.Debug("reset", "tick", p.Tick())
}

// --- Accessors ---

func (p *Pitch) Width() float64         { return p.width }
func (p *Pitch) Height() float64        { return p.height }
func (p *Pitch) Params() Params         { return p.params }
func (p *Pitch) Tick() int              { return p.clock.Tick() }
func (p *Pitch) Clock() *SimClock       { return p.clock }
func (p *Pitch) Ball() *Ball            { return p.ball }
func (p *Pitch) Red() *Team             { return p.red }
func (p *Pitch) Blue() *Team            { return p.blue }
func (p *Pitch) Teams() []*Team         { return []*Team{p.red, p.blue} }
func (p *Pitch) Players() []*Player     { return p.players }
func (p *Pitch) Regions() []Region      { return p.regions }
func (p *Pitch) Walls() []geom.Wall     { return p.walls }
func (p *Pitch) RedGoal() *Goal         { return p.redGoal }
func (p *Pitch) BlueGoal() *Goal        { return p.blueGoal }
func (p *Pitch) PlayingArea() Region    { return p.playingArea }
func (p *Pitch) MatchLog() *MatchLog    { return p.matchLog }
func (p *Pitch) Stats() *MatchStats     { return p.stats }
func (p *Pitch) MatchID() uuid.UUID     { return p.matchID }
func (p *Pitch) Dispatcher() Dispatcher { return p.dispatcher }

// Region returns the region with the given index.
func (p *Pitch) Region(i int) Region { return p.regions[i] }

func (p *Pitch) Paused() bool                { return p.paused }
func (p *Pitch) GameOn() bool                { return p.gameOn }
func (p *Pitch) SetGameOn(on bool)           { p.gameOn = on }
func (p *Pitch) GoalKeeperHasBall() bool     { return p.keeperHasBall }
func (p *Pitch) SetGoalKeeperHasBall(b bool) { p.keeperHasBall = b }

// PlayerByID returns the player with the given id, or nil.
func (p *Pitch) PlayerByID(id int) *Player {
	for _, pl := range p.players {
		if pl.id == id {
			return pl
		}
	}
	return nil
}

// --- Event hooks ---

func stateName[T any](s State[T]) string {
	if s == nil {
		return "none"
	}
	return s.Name()
}

func (p *Pitch) logPlayerState(pl *Player, from, to State[*Player]) {
	f, t := stateName(from), stateName(to)
	p.stats.stateChanges++
	p.matchLog.Add(p.Tick(), pl.Label(), pl.team.color.String(), CatState, "change", f+" -> "+t, 0)
	p.logger.Debug("state", "player", pl.Label(), "from", f, "to", t, "tick", p.Tick())
}

func (p *Pitch) logTeamState(t *Team, from, to State[*Team]) {
	f, s := stateName(from), stateName(to)
	p.matchLog.Add(p.Tick(), "--", t.color.String(), CatTeam, "change", f+" -> "+s, 0)
	p.logger.Debug("team", "team", t.color, "from", f, "to", s, "tick", p.Tick())
}

func (p *Pitch) logKick(pl *Player, kind string, target geom.Vec, power float64) {
	p.stats.kick(pl.team.color, kind)
	p.matchLog.Add(p.Tick(), pl.Label(), pl.team.color.String(), CatKick, kind,
		fmt.Sprintf("-> (%.1f,%.1f)", target.X, target.Y), power)
	p.logger.Debug("kick", "player", pl.Label(), "kind", kind, "x", target.X, "y", target.Y, "power", power)
}

func (p *Pitch) logControl(t *Team, pl *Player) {
	key, who := "lost", "--"
	if pl != nil {
		key, who = "gained", pl.Label()
	}
	p.matchLog.Add(p.Tick(), who, t.color.String(), CatControl, key, "", 0)
	p.logger.Debug("control", "team", t.color, "event", key, "player", who)
}

func (p *Pitch) logSave(k *Player) {
	p.stats.save(k.team.color)
	p.matchLog.Add(p.Tick(), k.Label(), k.team.color.String(), CatGoal, "save", "keeper holds the ball", 0)
	p.logger.Debug("save", "keeper", k.Label(), "tick", p.Tick())
}

func (p *Pitch) logTelegram(t Telegram, handled bool) {
	from := "--"
	if s := p.PlayerByID(t.Sender); s != nil {
		from = s.Label()
	}
	to := "--"
	team := "--"
	if r := p.PlayerByID(t.Receiver); r != nil {
		to = r.Label()
		team = r.team.color.String()
	}
	p.stats.telegrams++
	p.matchLog.Add(p.Tick(), from, team, CatMsg, t.Msg.String(),
		fmt.Sprintf("%s -> %s handled=%v", from, to, handled), 0)
	p.logger.Debug("telegram", "msg", t.Msg, "from", from, "to", to, "handled", handled)
}
