// Package view is the desktop front end: it draws a Pitch with ebiten and
// maps keys and clicks onto pitch controls.
package view

import (
	"fmt"
	"image/color"
	"io"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Markof87/AI-SimpleSoccer/internal/game"
)

// borderWidth is the pixel gap between the window edge and the pitch.
const borderWidth = 16

// hudScale is the integer upscale factor applied to HUD text.
const hudScale = 2

// simSpeeds are the selectable simulation rates, in ticks per frame.
var simSpeeds = []float64{0.25, 0.5, 1, 2, 4}

type Game struct {
	pitch  *game.Pitch
	logger *log.Logger

	width  int
	height int
	offX   int
	offY   int
	zoom   float64

	overlays  Overlays
	feed      *EventFeed
	inspector Inspector
	showHUD   bool
	status    string

	prevKeys      map[ebiten.Key]bool
	prevMouseLeft bool

	simSpeed  float64
	tickAccum float64

	worldBuf *ebiten.Image
	hudBuf   *ebiten.Image
	inspBuf  *ebiten.Image
}

// Option configures a Game.
type Option func(*Game)

// WithZoom scales the pitch on screen.
func WithZoom(z float64) Option {
	return func(g *Game) {
		if z > 0 {
			g.zoom = z
		}
	}
}

// WithLogger routes view diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// New wraps p in an ebiten game. The event feed listens to p's match log.
func New(p *game.Pitch, opts ...Option) *Game {
	g := &Game{
		pitch:    p,
		zoom:     1.5,
		overlays: OverlaysFromParams(p.Params()),
		feed:     NewEventFeed(),
		showHUD:  true,
		prevKeys: make(map[ebiten.Key]bool),
		simSpeed: 1,
	}
	for _, o := range opts {
		o(g)
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}

	pw := int(p.Width() * g.zoom)
	ph := int(p.Height() * g.zoom)
	g.offX, g.offY = borderWidth, borderWidth
	g.width = borderWidth + pw + borderWidth + feedPanelWidth
	g.height = borderWidth + ph + borderWidth

	g.worldBuf = ebiten.NewImage(int(p.Width()), int(p.Height()))
	g.hudBuf = ebiten.NewImage(g.width/hudScale, g.height/hudScale)
	g.inspBuf = ebiten.NewImage(inspBufW, inspBufH)

	p.MatchLog().OnAdd(g.feed.Observe)
	return g
}

// WindowSize returns the size the window should open at.
func (g *Game) WindowSize() (int, int) { return g.width, g.height }

func (g *Game) Update() error {
	g.handleInput()
	if g.pitch.Paused() {
		return nil
	}
	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		g.pitch.Update()
	}
	return nil
}

// stepSpeed moves cur one notch along simSpeeds, clamped at both ends.
func stepSpeed(cur float64, dir int) float64 {
	idx := 0
	for i, s := range simSpeeds {
		if s <= cur {
			idx = i
		}
	}
	idx += dir
	if idx < 0 {
		idx = 0
	}
	if idx >= len(simSpeeds) {
		idx = len(simSpeeds) - 1
	}
	return simSpeeds[idx]
}

// pressed reports a key going down this frame and records it for the next.
func (g *Game) pressed(k ebiten.Key, current map[ebiten.Key]bool) bool {
	current[k] = ebiten.IsKeyPressed(k)
	return current[k] && !g.prevKeys[k]
}

func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}

	overlayKeys := [overlayCount]ebiten.Key{
		ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4,
		ebiten.Key5, ebiten.Key6, ebiten.Key7,
	}
	for i, k := range overlayKeys {
		if g.pressed(k, currentKeys) {
			g.overlays.Toggle(OverlayKind(i))
		}
	}

	if g.pressed(ebiten.KeyP, currentKeys) {
		g.pitch.TogglePause()
	}
	if g.pressed(ebiten.KeyR, currentKeys) {
		g.pitch.Reset()
		g.inspector.selected = 0
		g.tickAccum = 0
	}
	if g.pressed(ebiten.KeyComma, currentKeys) {
		g.simSpeed = stepSpeed(g.simSpeed, -1)
	}
	if g.pressed(ebiten.KeyPeriod, currentKeys) {
		g.simSpeed = stepSpeed(g.simSpeed, 1)
	}
	if g.pressed(ebiten.KeyH, currentKeys) {
		g.showHUD = !g.showHUD
	}
	if g.pressed(ebiten.KeyC, currentKeys) {
		g.copyReport()
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && !g.prevMouseLeft {
		mx, my := ebiten.CursorPosition()
		g.handleInspectorClick(mx, my)
	}
	g.prevMouseLeft = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	g.prevKeys = currentKeys
}

// copyReport puts the match report on the system clipboard.
func (g *Game) copyReport() {
	if err := clipboard.WriteAll(g.pitch.Report().Format()); err != nil {
		g.logger.Warn("clipboard unavailable", "err", err)
		g.status = "clipboard unavailable"
		return
	}
	g.logger.Info("report copied", "tick", g.pitch.Tick())
	g.status = fmt.Sprintf("report copied at T=%d", g.pitch.Tick())
}

// screenToPitch inverts the pitch blit transform.
func (g *Game) screenToPitch(mx, my int) (float64, float64) {
	return (float64(mx) - float64(g.offX)) / g.zoom, (float64(my) - float64(g.offY)) / g.zoom
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})

	g.worldBuf.Clear()
	g.pitch.Render(drawRenderer{dst: g.worldBuf, overlays: &g.overlays})

	var blit ebiten.DrawImageOptions
	blit.GeoM.Scale(g.zoom, g.zoom)
	blit.GeoM.Translate(float64(g.offX), float64(g.offY))
	blit.Filter = ebiten.FilterLinear
	screen.DrawImage(g.worldBuf, &blit)

	ox, oy := float32(g.offX), float32(g.offY)
	pw := float32(g.pitch.Width() * g.zoom)
	ph := float32(g.pitch.Height() * g.zoom)
	vector.StrokeRect(screen, ox-1, oy-1, pw+2, ph+2, 2.0, color.RGBA{R: 65, G: 90, B: 65, A: 255}, false)

	g.feed.Draw(screen, g.offX+int(pw)+g.offX, g.height)

	if g.showHUD {
		g.drawHUD(screen)
	}
	g.drawInspector(screen)
}

func (g *Game) hudLines() []string {
	speed := fmt.Sprintf("%gx", g.simSpeed)
	if g.pitch.Paused() {
		speed = "PAUSED"
	}
	lines := []string{
		fmt.Sprintf("SIM: %s  T=%d  P=pause  ,/. speed  R=reset", speed, g.pitch.Tick()),
		"Overlays:",
	}
	lines = append(lines, g.overlays.Legend()...)
	lines = append(lines, "[H] toggle HUD  [C] copy report  click=inspect")
	if g.status != "" {
		lines = append(lines, g.status)
	}
	return lines
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	lines := g.hudLines()

	const lineH = 12
	const charW = 6
	const padX = 5
	const padY = 4

	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	bufH := float32(g.height / hudScale)
	bx := float32(4)
	by := bufH - boxH - 4

	g.hudBuf.Clear()
	vector.FillRect(g.hudBuf, bx, by, boxW, boxH, color.RGBA{R: 6, G: 10, B: 6, A: 180}, false)
	vector.StrokeRect(g.hudBuf, bx, by, boxW, boxH, 1.0, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(g.hudBuf, line, int(bx)+padX, int(by)+padY+i*lineH)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(hudScale), float64(hudScale))
	screen.DrawImage(g.hudBuf, opts)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
