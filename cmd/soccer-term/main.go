package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/Markof87/AI-SimpleSoccer/internal/game"
	"github.com/Markof87/AI-SimpleSoccer/internal/term"
)

func main() {
	var paramsPath string
	var seed int64
	var frameRate int
	var logFile string

	flag.StringVar(&paramsPath, "params", "", "JSON or YAML file of parameter overrides")
	flag.Int64Var(&seed, "seed", 1, "RNG seed")
	flag.IntVar(&frameRate, "frame-rate", 0, "simulation ticks per second (0 keeps the params value)")
	flag.StringVar(&logFile, "log-file", "", "write debug trace to this file")
	flag.Parse()

	// the terminal is taken by tcell, so logs go to a file or nowhere
	logger := log.New(os.Stderr)
	var trace *log.Logger
	if logFile != "" {
		f, err := os.Create(logFile) // #nosec G304 -- operator supplied path
		if err != nil {
			logger.Fatal("open log file", "err", err)
		}
		defer f.Close()
		trace = log.NewWithOptions(f, log.Options{ReportTimestamp: true, Level: log.DebugLevel})
	}

	prm := game.DefaultParams()
	if paramsPath != "" {
		var err error
		if prm, err = game.LoadParams(paramsPath); err != nil {
			logger.Fatal("load params", "err", err)
		}
	}
	if frameRate > 0 {
		prm.FrameRate = frameRate
	}

	opts := []game.PitchOption{game.WithParams(prm), game.WithSeed(seed)}
	if trace != nil {
		opts = append(opts, game.WithLogger(trace))
	}
	pitch := game.NewPitch(game.DefaultPitchWidth, game.DefaultPitchHeight, opts...)

	screen, err := tcell.NewScreen()
	if err != nil {
		logger.Fatal("terminal", "err", err)
	}
	if err := screen.Init(); err != nil {
		logger.Fatal("terminal", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = term.New(screen, pitch).Run(ctx, prm.FrameRate)
	stop()
	screen.Fini()
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("run", "err", err)
	}
	fmt.Print(pitch.Report().Format())
}
