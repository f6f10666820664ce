package game

import "github.com/Markof87/AI-SimpleSoccer/internal/geom"

// Renderer receives a description of everything drawable on the pitch. The
// simulation never draws; front ends implement Renderer.
type Renderer interface {
	Pitch(v PitchView)
	Region(v RegionView)
	Goal(v GoalView)
	SupportSpot(v SpotView)
	Player(v PlayerView)
	Ball(v BallView)
	Score(v ScoreView)
}

// PitchView is the outline of the pitch.
type PitchView struct {
	Width       float64    `msgpack:"w"`
	Height      float64    `msgpack:"h"`
	PlayingArea Region     `msgpack:"area"`
	Paused      bool       `msgpack:"paused"`
	GameOn      bool       `msgpack:"on"`
	Tick        int        `msgpack:"tick"`
	Controlling string     `msgpack:"ctrl,omitempty"` // team in control, if any
	Walls       []WallView `msgpack:"walls"`
}

// WallView is one boundary segment.
type WallView struct {
	From   geom.Vec `msgpack:"from"`
	To     geom.Vec `msgpack:"to"`
	Normal geom.Vec `msgpack:"n"`
}

// RegionView is one cell of the region grid.
type RegionView struct {
	Region Region `msgpack:"r"`
}

// GoalView is a goal mouth.
type GoalView struct {
	Team      string   `msgpack:"team"`
	LeftPost  geom.Vec `msgpack:"l"`
	RightPost geom.Vec `msgpack:"r"`
	Facing    geom.Vec `msgpack:"f"`
}

// SpotView is a scored support spot.
type SpotView struct {
	Team  string   `msgpack:"team"`
	Pos   geom.Vec `msgpack:"pos"`
	Score float64  `msgpack:"score"`
	Best  bool     `msgpack:"best"`
}

// PlayerView is one player with the state the overlays need.
type PlayerView struct {
	ID          int      `msgpack:"id"`
	Label       string   `msgpack:"label"`
	Team        string   `msgpack:"team"`
	Role        string   `msgpack:"role"`
	Pos         geom.Vec `msgpack:"pos"`
	Heading     geom.Vec `msgpack:"hdg"`
	LookAt      geom.Vec `msgpack:"look"`
	Radius      float64  `msgpack:"rad"`
	State       string   `msgpack:"state"`
	Target      geom.Vec `msgpack:"target"`
	Threatened  bool     `msgpack:"threat"`
	Controlling bool     `msgpack:"ctrl"`
	Supporting  bool     `msgpack:"sup"`
	Receiving   bool     `msgpack:"recv"`
	HomeRegion  int      `msgpack:"home"`
}

// BallView is the ball.
type BallView struct {
	Pos    geom.Vec `msgpack:"pos"`
	Vel    geom.Vec `msgpack:"vel"`
	Radius float64  `msgpack:"rad"`
}

// ScoreView is the scoreline.
type ScoreView struct {
	Red  int `msgpack:"red"`
	Blue int `msgpack:"blue"`
}

// Render describes the whole pitch to r: outline, regions, goals, support
// spots of the attacking sides, players, ball and score.
func (p *Pitch) Render(r Renderer) {
	pv := PitchView{
		Width:       p.width,
		Height:      p.height,
		PlayingArea: p.playingArea,
		Paused:      p.paused,
		GameOn:      p.gameOn,
		Tick:        p.Tick(),
	}
	for _, t := range p.Teams() {
		if t.InControl() {
			pv.Controlling = t.color.String()
		}
	}
	for _, w := range p.walls {
		pv.Walls = append(pv.Walls, WallView{From: w.From, To: w.To, Normal: w.Normal})
	}
	r.Pitch(pv)

	for _, reg := range p.regions {
		r.Region(RegionView{Region: reg})
	}
	r.Goal(GoalView{Team: TeamRed.String(), LeftPost: p.redGoal.LeftPost, RightPost: p.redGoal.RightPost, Facing: p.redGoal.Facing})
	r.Goal(GoalView{Team: TeamBlue.String(), LeftPost: p.blueGoal.LeftPost, RightPost: p.blueGoal.RightPost, Facing: p.blueGoal.Facing})

	p.red.Render(r)
	p.blue.Render(r)
	p.ball.Render(r)
	r.Score(ScoreView{Red: p.red.Score(), Blue: p.blue.Score()})
}

// Render describes the team's support spots, while attacking, and its
// players.
func (t *Team) Render(r Renderer) {
	if t.fsm.IsInState(Attacking) {
		best := t.spots.Best()
		for i := range t.spots.spots {
			s := &t.spots.spots[i]
			r.SupportSpot(SpotView{Team: t.color.String(), Pos: s.Pos, Score: s.Score, Best: s == best})
		}
	}
	for _, p := range t.players {
		p.Render(r)
	}
}

// Render describes the player.
func (p *Player) Render(r Renderer) {
	t := p.team
	r.Player(PlayerView{
		ID:          p.id,
		Label:       p.Label(),
		Team:        t.color.String(),
		Role:        p.role.String(),
		Pos:         p.Pos,
		Heading:     p.Heading,
		LookAt:      p.lookAt,
		Radius:      p.Radius,
		State:       p.StateName(),
		Target:      p.steering.Target(),
		Threatened:  p.role != RoleGoalkeeper && p.IsThreatened(),
		Controlling: t.controlling == p,
		Supporting:  t.supporting == p,
		Receiving:   t.receiving == p,
		HomeRegion:  p.homeRegion,
	})
}

// Render describes the ball.
func (b *Ball) Render(r Renderer) {
	r.Ball(BallView{Pos: b.Pos, Vel: b.Vel, Radius: b.Radius})
}

// Snapshot is a complete, self-contained picture of one tick, suitable for
// sending over the wire.
type Snapshot struct {
	MatchID string       `msgpack:"id"`
	Pitch   PitchView    `msgpack:"pitch"`
	Goals   []GoalView   `msgpack:"goals"`
	Spots   []SpotView   `msgpack:"spots,omitempty"`
	Players []PlayerView `msgpack:"players"`
	Ball    BallView     `msgpack:"ball"`
	Score   ScoreView    `msgpack:"score"`
}

// snapshotRenderer collects views into a Snapshot. Regions are static and
// left out.
type snapshotRenderer struct{ s *Snapshot }

func (c snapshotRenderer) Pitch(v PitchView)      { c.s.Pitch = v }
func (c snapshotRenderer) Region(RegionView)      {}
func (c snapshotRenderer) Goal(v GoalView)        { c.s.Goals = append(c.s.Goals, v) }
func (c snapshotRenderer) SupportSpot(v SpotView) { c.s.Spots = append(c.s.Spots, v) }
func (c snapshotRenderer) Player(v PlayerView)    { c.s.Players = append(c.s.Players, v) }
func (c snapshotRenderer) Ball(v BallView)        { c.s.Ball = v }
func (c snapshotRenderer) Score(v ScoreView)      { c.s.Score = v }

// Snapshot renders the pitch into a Snapshot.
func (p *Pitch) Snapshot() Snapshot {
	s := Snapshot{MatchID: p.matchID.String()}
	p.Render(snapshotRenderer{&s})
	return s
}
