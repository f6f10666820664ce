package view

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Markof87/AI-SimpleSoccer/internal/game"
	"github.com/Markof87/AI-SimpleSoccer/internal/geom"
)

var (
	grassCol     = color.RGBA{R: 34, G: 96, B: 44, A: 255}
	lineCol      = color.RGBA{R: 220, G: 230, B: 220, A: 255}
	regionCol    = color.RGBA{R: 60, G: 130, B: 70, A: 255}
	redCol       = color.RGBA{R: 210, G: 70, B: 70, A: 255}
	blueCol      = color.RGBA{R: 70, G: 110, B: 210, A: 255}
	spotCol      = color.RGBA{R: 120, G: 200, B: 120, A: 200}
	bestSpotCol  = color.RGBA{R: 255, G: 220, B: 0, A: 230}
	threatCol    = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	viewTgtCol   = color.RGBA{R: 255, G: 255, B: 255, A: 120}
	controlCol   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	labelFace    = text.NewGoXFace(basicfont.Face7x13)
	labelSmallPx = 7.0
)

func teamColor(team string) color.RGBA {
	if team == game.TeamBlue.String() {
		return blueCol
	}
	return redCol
}

// drawRenderer draws the pitch into dst in pitch coordinates, honouring the
// overlay toggles.
type drawRenderer struct {
	dst      *ebiten.Image
	overlays *Overlays
}

func (d drawRenderer) Pitch(v game.PitchView) {
	d.dst.Fill(grassCol)
	a := v.PlayingArea
	for _, w := range v.Walls {
		vector.StrokeLine(d.dst, float32(w.From.X), float32(w.From.Y), float32(w.To.X), float32(w.To.Y), 2, lineCol, false)
	}
	mid := float32(a.Center().X)
	vector.StrokeLine(d.dst, mid, float32(a.Top), mid, float32(a.Bottom), 1, lineCol, false)
	vector.StrokeCircle(d.dst, mid, float32(a.Center().Y), float32(a.Width()*0.125), 1, lineCol, true)
	vector.FillCircle(d.dst, mid, float32(a.Center().Y), 2, lineCol, true)

	if d.overlays.On(OverlayControllingTeam) && v.Controlling != "" {
		drawLabel(d.dst, v.Controlling+" in control", float64(a.Left)+4, float64(a.Top)+2, teamColor(v.Controlling))
	}
}

func (d drawRenderer) Region(v game.RegionView) {
	if !d.overlays.On(OverlayRegions) {
		return
	}
	r := v.Region
	vector.StrokeRect(d.dst, float32(r.Left), float32(r.Top), float32(r.Width()), float32(r.Height()), 1, regionCol, false)
	c := r.Center()
	drawLabel(d.dst, fmt.Sprint(r.ID), c.X-4, c.Y-6, regionCol)
}

func (d drawRenderer) Goal(v game.GoalView) {
	col := teamColor(v.Team)
	depth := v.Facing.Scale(-pitchGoalDepth)
	l, r := v.LeftPost, v.RightPost
	lb, rb := l.Add(depth), r.Add(depth)
	strokeVec(d.dst, l, lb, col)
	strokeVec(d.dst, lb, rb, col)
	strokeVec(d.dst, rb, r, col)
}

func (d drawRenderer) SupportSpot(v game.SpotView) {
	if !d.overlays.On(OverlaySupportSpots) {
		return
	}
	col := spotCol
	if v.Best {
		col = bestSpotCol
	}
	vector.StrokeCircle(d.dst, float32(v.Pos.X), float32(v.Pos.Y), float32(v.Score), 1, col, true)
}

func (d drawRenderer) Player(v game.PlayerView) {
	col := teamColor(v.Team)
	x, y := float32(v.Pos.X), float32(v.Pos.Y)
	vector.FillCircle(d.dst, x, y, float32(v.Radius), col, true)

	facing := v.Heading
	if v.Role == game.RoleGoalkeeper.String() {
		facing = v.LookAt
		vector.StrokeCircle(d.dst, x, y, float32(v.Radius)+1, 1, lineCol, true)
	}
	tip := v.Pos.Add(facing.Scale(v.Radius * 1.8))
	strokeVec(d.dst, v.Pos, tip, lineCol)

	if d.overlays.On(OverlayThreatened) && v.Threatened {
		vector.StrokeCircle(d.dst, x, y, float32(v.Radius)+3, 1.5, threatCol, true)
	}
	if v.Controlling {
		vector.StrokeRect(d.dst, x-float32(v.Radius)-2, y-float32(v.Radius)-2, float32(v.Radius)*2+4, float32(v.Radius)*2+4, 1, controlCol, false)
	}
	if d.overlays.On(OverlayViewTargets) {
		vector.FillCircle(d.dst, float32(v.Target.X), float32(v.Target.Y), 2, viewTgtCol, true)
	}

	ly := v.Pos.Y + v.Radius + 1
	if d.overlays.On(OverlayIDs) {
		drawLabel(d.dst, v.Label, v.Pos.X-labelSmallPx, ly, col)
		ly += 12
	}
	if d.overlays.On(OverlayStates) {
		drawLabel(d.dst, v.State, v.Pos.X-float64(len(v.State))*labelSmallPx/2, ly, lineCol)
	}
}

func (d drawRenderer) Ball(v game.BallView) {
	vector.FillCircle(d.dst, float32(v.Pos.X), float32(v.Pos.Y), float32(v.Radius), color.White, true)
	vector.StrokeCircle(d.dst, float32(v.Pos.X), float32(v.Pos.Y), float32(v.Radius), 1, color.Black, true)
}

func (d drawRenderer) Score(v game.ScoreView) {
	s := fmt.Sprintf("red %d - %d blue", v.Red, v.Blue)
	w := float64(d.dst.Bounds().Dx())
	drawLabel(d.dst, s, w/2-float64(len(s))*labelSmallPx/2, 2, lineCol)
}

// pitchGoalDepth is how far the net is drawn behind the goal line.
const pitchGoalDepth = 12.0

func strokeVec(dst *ebiten.Image, a, b geom.Vec, c color.Color) {
	vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, c, true)
}

func drawLabel(dst *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, labelFace, op)
}
