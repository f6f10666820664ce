package view

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Markof87/AI-SimpleSoccer/internal/game"
)

// Inspector panel, rendered into an offscreen buffer at 1x then blitted at
// inspScale.
const (
	inspScale = 2
	inspBufW  = 200
	inspBufH  = 190
	inspPad   = 4
	inspLineH = 13
)

// Inspector holds the selected player.
type Inspector struct {
	selected int // player id, 0 when nothing is selected
}

// pickPlayer returns the id of the player nearest (x, y) within radius, or 0.
func pickPlayer(players []game.PlayerView, x, y, radius float64) int {
	best2 := math.MaxFloat64
	hit := 0
	r2 := radius * radius
	for _, p := range players {
		dx := p.Pos.X - x
		dy := p.Pos.Y - y
		d2 := dx*dx + dy*dy
		if d2 < r2 && d2 < best2 {
			best2 = d2
			hit = p.ID
		}
	}
	return hit
}

// inspectorLines describes p for the panel.
func inspectorLines(p *game.Player) []string {
	t := p.Team()
	var flags []string
	if t.ControllingPlayer() == p {
		flags = append(flags, "controlling")
	}
	if t.SupportingPlayer() == p {
		flags = append(flags, "supporting")
	}
	if t.Receiver() == p {
		flags = append(flags, "receiving")
	}
	if t.PlayerClosestToBall() == p {
		flags = append(flags, "closest")
	}
	if !p.IsGoalkeeper() && p.IsThreatened() {
		flags = append(flags, "threatened")
	}

	s := p.Steering()
	lines := []string{
		fmt.Sprintf("[ %s %s %s ]", t.Color(), p.Label(), p.Role()),
		fmt.Sprintf("state: %s", p.StateName()),
		fmt.Sprintf("team:  %s", t.FSM().CurrentName()),
		fmt.Sprintf("pos:   (%.0f,%.0f)", p.Pos.X, p.Pos.Y),
		fmt.Sprintf("speed: %.2f / %.2f", p.Vel.Len(), p.MaxSpeed),
		fmt.Sprintf("home:  region %d", p.HomeRegionIndex()),
		fmt.Sprintf("ball:  %.0f away", math.Sqrt(p.DistSqToBall())),
		fmt.Sprintf("goals: %.0f to opp, %.0f to own", p.DistToOppGoal(), p.DistToHomeGoal()),
		fmt.Sprintf("target:(%.0f,%.0f)", s.Target().X, s.Target().Y),
		fmt.Sprintf("steer: %08b", s.Flags()),
	}
	if len(flags) == 0 {
		lines = append(lines, "flags: -")
	}
	for _, f := range flags {
		lines = append(lines, "flags: "+f)
	}
	return lines
}

// handleInspectorClick selects the player under the cursor, or clears the
// selection on empty grass.
func (g *Game) handleInspectorClick(mx, my int) {
	wx, wy := g.screenToPitch(mx, my)
	snap := g.pitch.Snapshot()
	g.inspector.selected = pickPlayer(snap.Players, wx, wy, math.Max(16/g.zoom, 10))
}

// drawInspector renders the selected player's panel bottom-left of the
// feed panel.
func (g *Game) drawInspector(screen *ebiten.Image) {
	if g.inspector.selected == 0 {
		return
	}
	p := g.pitch.PlayerByID(g.inspector.selected)
	if p == nil {
		g.inspector.selected = 0
		return
	}

	buf := g.inspBuf
	buf.Clear()
	bw, bh := float32(inspBufW), float32(inspBufH)
	border := color.RGBA{R: 55, G: 80, B: 55, A: 255}
	vector.FillRect(buf, 0, 0, bw, bh, color.RGBA{R: 14, G: 16, B: 14, A: 230}, false)
	vector.StrokeRect(buf, 0, 0, bw, bh, 1.0, border, false)
	vector.FillRect(buf, 1, 1, 4, bh-2, teamColor(p.Team().Color().String()), false)

	ly := inspPad
	for i, l := range inspectorLines(p) {
		ebitenutil.DebugPrintAt(buf, l, inspPad+6, ly)
		ly += inspLineH
		if i == 0 {
			vector.StrokeLine(buf, inspPad, float32(ly+1), bw-inspPad, float32(ly+1), 1.0, border, false)
			ly += 4
		}
	}

	px := g.width - feedPanelWidth - inspBufW*inspScale - 8
	py := g.height - inspBufH*inspScale - 8
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(inspScale, inspScale)
	opts.GeoM.Translate(float64(px), float64(py))
	screen.DrawImage(buf, opts)
}
