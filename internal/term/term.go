// Package term draws a match as text with tcell.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Markof87/AI-SimpleSoccer/internal/game"
	"github.com/Markof87/AI-SimpleSoccer/internal/geom"
)

var (
	lineStyle  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	redStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	blueStyle  = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	ballStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	spotStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	scoreStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// View renders a pitch onto a terminal screen. The bottom row holds the
// score line; the rest is the pitch scaled to fit.
type View struct {
	screen tcell.Screen
	pitch  *game.Pitch
}

// New creates a view. The screen must already be initialised.
func New(screen tcell.Screen, p *game.Pitch) *View {
	return &View{screen: screen, pitch: p}
}

// Draw renders the current tick and shows it.
func (v *View) Draw() {
	v.screen.Clear()
	cols, rows := v.screen.Size()
	if rows < 2 || cols < 2 {
		v.screen.Show()
		return
	}
	v.pitch.Render(&cellRenderer{
		screen: v.screen,
		sx:     float64(cols) / v.pitch.Width(),
		sy:     float64(rows-1) / v.pitch.Height(),
		cols:   cols,
		rows:   rows,
		paused: v.pitch.Paused(),
		tick:   v.pitch.Tick(),
	})
	v.screen.Show()
}

// HandleEvent applies a terminal event. It returns false when the user
// asked to quit.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *View) handleKey(k tcell.Key, r rune) bool {
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch r {
		case 'q':
			return false
		case 'p':
			v.pitch.TogglePause()
		case 'r':
			v.pitch.Reset()
		}
	}
	return true
}

// Run ticks the pitch at frameRate and redraws until ctx is done or the
// user quits.
func (v *View) Run(ctx context.Context, frameRate int) error {
	if frameRate <= 0 {
		return fmt.Errorf("term: frame rate must be > 0, got %d", frameRate)
	}
	ticker := time.NewTicker(time.Second / time.Duration(frameRate))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !v.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			v.pitch.Update()
			v.Draw()
		}
	}
}

// cellRenderer maps pitch coordinates onto terminal cells.
type cellRenderer struct {
	screen tcell.Screen
	sx, sy float64
	cols   int
	rows   int
	paused bool
	tick   int
}

func (c *cellRenderer) cell(p geom.Vec) (int, int) {
	x := int(p.X * c.sx)
	y := int(p.Y * c.sy)
	if x >= c.cols {
		x = c.cols - 1
	}
	if y >= c.rows-1 {
		y = c.rows - 2
	}
	return x, y
}

func (c *cellRenderer) put(p geom.Vec, r rune, st tcell.Style) {
	x, y := c.cell(p)
	c.screen.SetContent(x, y, r, nil, st)
}

func (c *cellRenderer) text(x, y int, s string, st tcell.Style) {
	for i, r := range s {
		if x+i >= c.cols {
			return
		}
		c.screen.SetContent(x+i, y, r, nil, st)
	}
}

func (c *cellRenderer) Pitch(v game.PitchView) {
	a := v.PlayingArea
	x0, y0 := c.cell(geom.V(a.Left, a.Top))
	x1, y1 := c.cell(geom.V(a.Right, a.Bottom))
	for x := x0; x <= x1; x++ {
		c.screen.SetContent(x, y0, '-', nil, lineStyle)
		c.screen.SetContent(x, y1, '-', nil, lineStyle)
	}
	for y := y0; y <= y1; y++ {
		c.screen.SetContent(x0, y, '|', nil, lineStyle)
		c.screen.SetContent(x1, y, '|', nil, lineStyle)
	}
	for _, corner := range [][2]int{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		c.screen.SetContent(corner[0], corner[1], '+', nil, lineStyle)
	}
	mx, _ := c.cell(a.Center())
	for y := y0 + 1; y < y1; y++ {
		c.screen.SetContent(mx, y, ':', nil, lineStyle)
	}
}

func (c *cellRenderer) Region(game.RegionView) {}

func (c *cellRenderer) Goal(v game.GoalView) {
	st := redStyle
	if v.Team == game.TeamBlue.String() {
		st = blueStyle
	}
	x, ya := c.cell(v.LeftPost)
	_, yb := c.cell(v.RightPost)
	for y := ya; y <= yb; y++ {
		c.screen.SetContent(x, y, '#', nil, st)
	}
}

func (c *cellRenderer) SupportSpot(v game.SpotView) {
	if v.Best {
		c.put(v.Pos, '*', spotStyle)
	}
}

func (c *cellRenderer) Player(v game.PlayerView) {
	st := redStyle
	if v.Team == game.TeamBlue.String() {
		st = blueStyle
	}
	r := rune('0' + v.ID%10)
	if v.Role == game.RoleGoalkeeper.String() {
		r = 'K'
	}
	if v.Controlling {
		st = st.Reverse(true)
	}
	c.put(v.Pos, r, st)
}

func (c *cellRenderer) Ball(v game.BallView) {
	c.put(v.Pos, 'o', ballStyle)
}

func (c *cellRenderer) Score(v game.ScoreView) {
	s := fmt.Sprintf(" red %d - %d blue   T=%d", v.Red, v.Blue, c.tick)
	if c.paused {
		s += "   [paused]"
	}
	s += "   p=pause r=reset q=quit"
	c.text(0, c.rows-1, s, scoreStyle)
}
