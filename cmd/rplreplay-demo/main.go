// Command rplreplay-demo wires config, a synthetic beatmap/replay pair, the
// std scoring engine, and a summary collaborator together and prints the
// result — a minimal end-to-end exercise of the core module (spec.md §1: the
// CLI itself is a collaborator, not core, surface).
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/wieku/rplreplay/collab/statsum"
	"github.com/wieku/rplreplay/config"
	"github.com/wieku/rplreplay/engine"
	"github.com/wieku/rplreplay/engine/std"
	"github.com/wieku/rplreplay/pkg/logging"
)

func main() {
	configPath := flag.String("config", "", "path to a demo config YAML file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, cleanup, err := logging.Init(cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer cleanup()

	runID := engine.NewRunID()
	logger = logger.With(slog.String("run_id", runID.String()))

	settings, err := cfg.Settings.Apply()
	if err != nil {
		logger.Error("building settings", "error", err)
		os.Exit(1)
	}

	mapPoints := std.CircleAimpoints(0, 1000, engine.Position{X: 100, Y: 100})
	mapPoints = append(mapPoints, std.CircleAimpoints(1, 1500, engine.Position{X: 200, Y: 100})...)
	std.Normalize(mapPoints)

	replay := []std.PlayerEvent{
		{TimeMs: 1000, Pos: engine.Position{X: 100, Y: 100}, Action: std.ActionPress},
		{TimeMs: 1001, Pos: engine.Position{X: 100, Y: 100}, Action: std.ActionRelease},
		{TimeMs: 1505, Pos: engine.Position{X: 195, Y: 100}, Action: std.ActionPress},
		{TimeMs: 1506, Pos: engine.Position{X: 195, Y: 100}, Action: std.ActionRelease},
	}

	result, err := std.Score(mapPoints, replay, settings)
	if err != nil {
		logger.Error("scoring replay", "error", err)
		os.Exit(1)
	}

	summary := statsum.Summarize(result.Records())
	logger.Info("scored replay",
		slog.Int("records", result.Len()),
		slog.Int("hits", summary.Hits),
		slog.Int("misses", summary.Misses),
		slog.Float64("accuracy", summary.Accuracy),
		slog.Float64("mean_offset_ms", summary.MeanOffsetMs),
	)

	for _, r := range result.Records() {
		fmt.Printf("replay_t=%d map_t=%d judgment=%s action=%s\n", r.ReplayT, r.MapT, r.Judgment, r.Action)
	}
}
