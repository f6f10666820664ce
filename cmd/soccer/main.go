package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Markof87/AI-SimpleSoccer/internal/game"
	"github.com/Markof87/AI-SimpleSoccer/internal/view"
)

func main() {
	var paramsPath string
	var seed int64
	var frameRate int
	var zoom float64
	var logLevel string

	flag.StringVar(&paramsPath, "params", "", "JSON or YAML file of parameter overrides")
	flag.Int64Var(&seed, "seed", 1, "RNG seed")
	flag.IntVar(&frameRate, "frame-rate", 0, "simulation ticks per second (0 keeps the params value)")
	flag.Float64Var(&zoom, "zoom", 1.5, "pitch scale on screen")
	flag.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "soccer"})
	lvl, err := log.ParseLevel(logLevel)
	if err != nil {
		logger.Fatal("bad -log-level", "err", err)
	}
	logger.SetLevel(lvl)

	prm := game.DefaultParams()
	if paramsPath != "" {
		if prm, err = game.LoadParams(paramsPath); err != nil {
			logger.Fatal("load params", "err", err)
		}
	}
	if frameRate > 0 {
		prm.FrameRate = frameRate
	}

	pitch := game.NewPitch(game.DefaultPitchWidth, game.DefaultPitchHeight,
		game.WithParams(prm),
		game.WithSeed(seed),
		game.WithLogger(logger),
	)
	logger.Info("match", "id", pitch.MatchID(), "seed", seed)

	g := view.New(pitch, view.WithZoom(zoom), view.WithLogger(logger))
	ebiten.SetWindowTitle("Simple Soccer")
	ebiten.SetWindowSize(g.WindowSize())
	ebiten.SetTPS(prm.FrameRate)
	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal("run", "err", err)
	}
}
