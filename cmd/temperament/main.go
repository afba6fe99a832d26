// Command temperament runs one synthetic agent's affect simulation: a
// personality with slow experience-driven drift, an emotion layer with
// decay and habituation, and a mood layer with inertia, driven tick by
// tick under a noise-generated ambient climate.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/temperament/internal/api"
	"github.com/talgya/temperament/internal/climate"
	"github.com/talgya/temperament/internal/engine"
	"github.com/talgya/temperament/internal/entropy"
	"github.com/talgya/temperament/internal/journal"
	"github.com/talgya/temperament/internal/personality"
)

func main() {
	var (
		seed     = flag.Int64("seed", 42, "entropy seed (ignored when RANDOM_ORG_KEY is set)")
		name     = flag.String("name", "Ember", "agent name")
		dbPath   = flag.String("db", "data/temperament.db", "journal database path (empty to disable)")
		port     = flag.Int("port", 8080, "HTTP API port (0 to disable)")
		ticks    = flag.Uint64("ticks", 0, "stop after this many ticks (0 = run forever)")
		interval = flag.Duration("interval", time.Second, "base tick interval")
		logLevel = flag.String("log-level", "info", "log level: debug, info, warn, error")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(*logLevel),
	}))
	slog.SetDefault(logger)

	slog.Info("Temperament — synthetic affect simulation")

	// ── Entropy ───────────────────────────────────────────────────────
	var rng entropy.Source
	if key := os.Getenv("RANDOM_ORG_KEY"); key != "" {
		slog.Info("true randomness enabled (random.org)")
		rng = entropy.NewTrueRandom(key)
	} else {
		slog.Info("seeded entropy", "seed", *seed)
		rng = entropy.Seeded(*seed)
	}

	// ── Agent ─────────────────────────────────────────────────────────
	agent := engine.NewAgent(*name, personality.DefaultConfig(), rng)
	slog.Info("agent born", "id", agent.ID, "name", agent.Name)
	for trait, value := range agent.Personality.Snapshot(true) {
		slog.Debug("trait", "name", trait, "value", value)
	}

	// ── Journal ───────────────────────────────────────────────────────
	var db *journal.DB
	if *dbPath != "" {
		os.MkdirAll(filepath.Dir(*dbPath), 0755)
		var err error
		db, err = journal.Open(*dbPath)
		if err != nil {
			slog.Error("failed to open journal", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		slog.Info("journal opened", "path", *dbPath)
	}

	// ── Climate ───────────────────────────────────────────────────────
	weather := climate.NewGenerator(*seed)

	// ── Engine ────────────────────────────────────────────────────────
	eng := engine.NewEngine()
	eng.Interval = *interval
	eng.MaxTicks = *ticks

	// ── HTTP API ──────────────────────────────────────────────────────
	adminKey := os.Getenv("TEMPERAMENT_ADMIN_KEY")
	if adminKey == "" {
		slog.Warn("TEMPERAMENT_ADMIN_KEY not set — admin POST endpoints disabled")
	}

	var apiServer *api.Server
	if *port > 0 {
		apiServer = &api.Server{
			Eng:      eng,
			DB:       db,
			Port:     *port,
			AdminKey: adminKey,
		}
		apiServer.Start()
	}

	lastMood := agent.Moods.Mood()

	eng.OnTick = func(tick uint64) {
		ctx := weather.At(tick)
		agent.Step(ctx)

		snap := agent.TakeSnapshot()
		if apiServer != nil {
			apiServer.Publish(snap)
		}

		if db != nil {
			if err := db.RecordSnapshot(snap); err != nil {
				slog.Error("journal write failed", "error", err)
			}
			if snap.Mood.Mood != lastMood {
				db.RecordEvent(journal.Event{
					Tick:        tick,
					Description: fmt.Sprintf("mood shifted from %s to %s", lastMood, snap.Mood.Mood),
					Category:    "mood",
				})
			}
		}
		lastMood = snap.Mood.Mood

		// Lived experience erodes personality slowly even outside the
		// sustained-affect path: a gentle ongoing pull toward whatever
		// the agent has been feeling.
		if tick%240 == 0 {
			agent.Personality.DriftTraits(0.01, personality.DriftInfluence{
				Mood:             snap.Mood.Mood,
				MoodIntensity:    snap.Mood.Intensity,
				Emotion:          snap.Emotion.Dominant,
				EmotionIntensity: snap.Emotion.Intensity,
				Blended:          snap.Emotion.Blended,
			})
		}

		if tick%60 == 0 {
			slog.Info("pulse",
				"tick", tick,
				"temp", fmt.Sprintf("%.1f", ctx.Temperature),
				"mood", snap.Mood.Mood,
				"mood_i", fmt.Sprintf("%.2f", snap.Mood.Intensity),
				"emotion", snap.Emotion.Dominant,
				"emotion_i", fmt.Sprintf("%.2f", snap.Emotion.Intensity),
				"maturity", fmt.Sprintf("%.3f", snap.Maturity),
			)
		}
	}

	// ── Start ─────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		eng.Stop()
	}()

	fmt.Printf("\n%s is awake.\n", agent.Name)
	if *port > 0 {
		fmt.Printf("API: http://localhost:%d/api/v1/status\n", *port)
	}
	fmt.Println("Running... (Ctrl+C to stop)")

	eng.Run()

	snap := agent.TakeSnapshot()
	fmt.Printf("\n%s lived %s ticks. Final mood: %s (%.2f), dominant emotion: %s, maturity %.3f.\n",
		agent.Name, humanize.Comma(int64(eng.Tick)),
		snap.Mood.Mood, snap.Mood.Intensity, snap.Emotion.Dominant, snap.Maturity)
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
