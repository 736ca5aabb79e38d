// craftd is a headless host for the world engine: it restores or creates a
// world, drives the per-tick SetPosition/Render loop with a wandering
// viewer, autosaves, and optionally exposes engine status for observers.
package main

import (
	"context"
	"flag"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/crafti-go/crafti/internal/config"
	"github.com/crafti-go/crafti/internal/observer"
	"github.com/crafti-go/crafti/internal/storage"
	"github.com/crafti-go/crafti/internal/world"
)

func main() {
	cfg := config.Default()

	configPath := flag.String("config", "crafti.yaml", "path to YAML config")
	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "data directory")
	flag.StringVar(&cfg.WorldName, "world", cfg.WorldName, "world save name")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "world seed (0 = random)")
	flag.IntVar(&cfg.ViewRadius, "view-radius", cfg.ViewRadius, "visibility radius in chunk shells")
	flag.IntVar(&cfg.TickRate, "tick-rate", cfg.TickRate, "ticks per second")
	flag.IntVar(&cfg.SaveEvery, "save-every", cfg.SaveEvery, "autosave interval in ticks (0 = off)")
	flag.StringVar(&cfg.ObserverAddr, "observer-addr", cfg.ObserverAddr, "status endpoint address (empty = off)")
	flag.BoolVar(&cfg.ArchiveOnSave, "archive-on-save", cfg.ArchiveOnSave, "write a compressed archive after each save")
	flag.Parse()

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	fileCfg := config.Default()
	if err := config.Load(*configPath, fileCfg); err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}
	config.Merge(cfg, fileCfg, explicit)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("craftd error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	store, err := storage.New(cfg.DataDir, log)
	if err != nil {
		return err
	}
	defer store.Close()

	w := world.New(log)
	w.SetViewRadius(cfg.ViewRadius)

	switch {
	case store.HasSave(cfg.WorldName):
		if err := store.LoadWorld(cfg.WorldName, w); err != nil {
			// A failed load leaves partial state behind; start over.
			log.Warn("load failed, resetting world", "error", err)
			w.Clear()
		}
	case cfg.Seed != 0:
		w.SetSeed(cfg.Seed)
	}

	var status atomic.Pointer[observer.Status]
	status.Store(&observer.Status{})

	if cfg.ObserverAddr != "" {
		obs := observer.NewServer(cfg.ObserverAddr, func() observer.Status {
			return *status.Load()
		}, time.Second, log)
		go func() {
			if err := obs.Run(ctx); err != nil {
				log.Error("observer stopped", "error", err)
			}
		}()
	}

	log.Info("world running",
		"name", cfg.WorldName, "seed", w.Seed(), "view_radius", w.ViewRadius(), "tick_rate", cfg.TickRate)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.TickRate))
	defer ticker.Stop()

	var tick uint64
	renderer := world.NopRenderer{}

	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down", "tick", tick)
			return saveAndArchive(store, cfg, w, log)
		case <-ticker.C:
		}

		// Wander the viewer in a slow spiral so chunk-boundary crossings
		// exercise visibility recomputation without thrashing it.
		t := float64(tick) / float64(cfg.TickRate)
		x := 40 * math.Cos(t/19)
		z := 40 * math.Sin(t/19)
		w.SetPosition(x, 16, z)
		w.Render(renderer)

		tick++
		status.Store(&observer.Status{
			Tick:       tick,
			Seed:       w.Seed(),
			Chunks:     w.ChunkCount(),
			Visible:    w.VisibleCount(),
			Pending:    w.PendingCount(),
			Generated:  w.GeneratedCount(),
			ViewRadius: w.ViewRadius(),
		})

		if cfg.SaveEvery > 0 && tick%uint64(cfg.SaveEvery) == 0 {
			if err := saveAndArchive(store, cfg, w, log); err != nil {
				log.Error("autosave failed", "error", err)
			}
		}
	}
}

func saveAndArchive(store *storage.Store, cfg *config.Config, w *world.World, log *slog.Logger) error {
	if err := store.SaveWorld(cfg.WorldName, w); err != nil {
		return err
	}
	if cfg.ArchiveOnSave {
		if _, err := store.ArchiveSave(cfg.WorldName); err != nil {
			log.Warn("archive failed", "error", err)
		}
	}
	return nil
}
