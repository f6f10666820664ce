package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Markof87/AI-SimpleSoccer/internal/game"
	"github.com/Markof87/AI-SimpleSoccer/internal/spectate"
)

type runStats struct {
	runIndex int
	seed     int64
	report   game.MatchReport

	firstShotTick int
	firstGoalTick int
	firstSaveTick int

	teamSwitches   int
	controlChanges int
	kicks          map[string]int
	scorers        map[string]int
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var paramsPath string
	var spectateAddr string
	var logLevel string

	flag.IntVar(&runs, "runs", 5, "number of headless matches")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per match")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&paramsPath, "params", "", "JSON or YAML file of parameter overrides")
	flag.StringVar(&spectateAddr, "spectate", "", "serve a websocket spectator feed on this address and run in real time")
	flag.StringVar(&logLevel, "log-level", "warn", "debug, info, warn or error")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "headless"})
	if lvl, err := log.ParseLevel(logLevel); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Fatal("bad -log-level", "err", err)
	}

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}

	prm := game.DefaultParams()
	if paramsPath != "" {
		var err error
		if prm, err = game.LoadParams(paramsPath); err != nil {
			logger.Fatal("load params", "err", err)
		}
	}

	var hub *spectate.Hub
	if spectateAddr != "" {
		var err error
		hub, err = spectate.NewHub(spectate.Hello{Width: game.DefaultPitchWidth, Height: game.DefaultPitchHeight}, logger)
		if err != nil {
			logger.Fatal("spectator hub", "err", err)
		}
		defer hub.Close()
		srv := &http.Server{Addr: spectateAddr, Handler: hub, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("spectator server", "err", err)
			}
		}()
		logger.Info("spectator feed", "addr", spectateAddr)
	}

	fmt.Printf("=== Headless Match Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runMatch(i+1, seed, ticks, prm, hub, logger)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

func runMatch(runIndex int, seed int64, ticks int, prm game.Params, hub *spectate.Hub, logger *log.Logger) runStats {
	tm := game.NewTestMatch(
		game.WithMatchSeed(seed),
		game.WithMatchParams(prm),
		game.WithTrace(logger.With("run", runIndex)),
	)

	if hub == nil {
		tm.RunTicks(ticks)
	} else {
		frame := time.NewTicker(time.Second / time.Duration(prm.FrameRate))
		for i := 0; i < ticks; i++ {
			<-frame.C
			tm.Pitch.Update()
			if err := hub.Publish(tm.Pitch.Snapshot()); err != nil {
				logger.Warn("publish", "err", err)
			}
		}
		frame.Stop()
	}

	return collectStats(runIndex, seed, tm)
}

func collectStats(runIndex int, seed int64, tm *game.TestMatch) runStats {
	entries := tm.Log.Entries()
	kicks := map[string]int{}
	scorers := map[string]int{}
	lastShooter := ""
	for _, e := range entries {
		switch e.Category {
		case game.CatKick:
			kicks[e.Key]++
			if e.Key == "shot" {
				lastShooter = e.Player
			}
		case game.CatGoal:
			if e.Key == "scored" && lastShooter != "" {
				scorers[lastShooter]++
			}
		}
	}

	return runStats{
		runIndex:       runIndex,
		seed:           seed,
		report:         tm.Pitch.Report(),
		firstShotTick:  firstTick(entries, game.CatKick, "shot", ""),
		firstGoalTick:  firstTick(entries, game.CatGoal, "scored", ""),
		firstSaveTick:  firstTick(entries, game.CatGoal, "save", ""),
		teamSwitches:   tm.Log.CountCategory(game.CatTeam, "change"),
		controlChanges: tm.Log.CountCategory(game.CatControl, "gained"),
		kicks:          kicks,
		scorers:        scorers,
	}
}

func firstTick(entries []game.MatchLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

// matchOutcome names the winner, or "draw".
func matchOutcome(r game.MatchReport) string {
	switch {
	case r.Red.Goals > r.Blue.Goals:
		return "red"
	case r.Blue.Goals > r.Red.Goals:
		return "blue"
	default:
		return "draw"
	}
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Print(rs.report.Format())
	fmt.Printf("outcome=%s\n", matchOutcome(rs.report))
	fmt.Printf("phase_markers: first_shot=%d first_goal=%d first_save=%d\n",
		rs.firstShotTick, rs.firstGoalTick, rs.firstSaveTick)
	fmt.Printf("event_totals: team_switch=%d control_gained=%d\n", rs.teamSwitches, rs.controlChanges)
	fmt.Printf("kicks: %s\n", joinCounts(rs.kicks))
	fmt.Printf("scorers: %s\n", joinCounts(rs.scorers))
	fmt.Println()
}

func printAggregate(all []runStats) {
	outcomes := map[string]int{}
	totalGoals := 0
	totalShots := 0
	totalSaves := 0
	totalPasses := 0
	var redPoss, bluePoss float64
	shotTicks := make([]int, 0, len(all))
	goalTicks := make([]int, 0, len(all))
	scorers := map[string]int{}

	for _, rs := range all {
		r := rs.report
		outcomes[matchOutcome(r)]++
		totalGoals += r.Red.Goals + r.Blue.Goals
		totalShots += r.Red.Shots + r.Blue.Shots
		totalSaves += r.Red.Saves + r.Blue.Saves
		totalPasses += r.Red.Passes + r.Blue.Passes
		rp, bp := r.PossessionShare()
		redPoss += rp
		bluePoss += bp
		if rs.firstShotTick >= 0 {
			shotTicks = append(shotTicks, rs.firstShotTick)
		}
		if rs.firstGoalTick >= 0 {
			goalTicks = append(goalTicks, rs.firstGoalTick)
		}
		for label, n := range rs.scorers {
			scorers[label] += n
		}
	}

	n := len(all)
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d red_wins=%d blue_wins=%d draws=%d\n", n, outcomes["red"], outcomes["blue"], outcomes["draw"])
	fmt.Printf("avg_per_match: goals=%.1f shots=%.1f saves=%.1f passes=%.1f\n",
		avg(totalGoals, n), avg(totalShots, n), avg(totalSaves, n), avg(totalPasses, n))
	if n > 0 {
		fmt.Printf("avg_possession: red=%.1f%% blue=%.1f%%\n", redPoss/float64(n)*100, bluePoss/float64(n)*100)
	}
	fmt.Printf("phase_marker_avg_ticks: first_shot=%s first_goal=%s\n", avgTickString(shotTicks), avgTickString(goalTicks))
	fmt.Printf("top_scorer=%s\n", topCount(scorers))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

// topCount returns the highest count as "key(n)", breaking ties by key.
func topCount(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	best := ""
	bestN := 0
	for k, v := range counts {
		if v > bestN || (v == bestN && k < best) {
			best = k
			bestN = v
		}
	}
	return fmt.Sprintf("%s(%d)", best, bestN)
}

func joinCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, ",")
}
