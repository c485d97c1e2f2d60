package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/rptrunk/internal/config"
	"github.com/udisondev/rptrunk/internal/data"
	"github.com/udisondev/rptrunk/internal/db"
	"github.com/udisondev/rptrunk/internal/game/event"
	"github.com/udisondev/rptrunk/internal/game/simulation"
	"github.com/udisondev/rptrunk/internal/model"
	"github.com/udisondev/rptrunk/internal/world"
)

const ConfigPath = "config/simulator.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("RPTRUNK_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSimulator(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("rptrunk simulator starting",
		"config", cfgPath,
		"log_level", cfg.LogLevel,
		"data_path", cfg.DataPath,
		"resolver", cfg.Resolver)

	registry, err := data.Load(cfg.DataPath)
	if err != nil {
		return fmt.Errorf("loading data: %w", err)
	}

	w := world.New()
	items, err := registry.Populate(w)
	if err != nil {
		return fmt.Errorf("populating world: %w", err)
	}
	slog.Info("world populated",
		"abilities", registry.AbilityCount(),
		"entities", w.Len(),
		"items", len(items))

	runner := simulation.NewRunner(w, event.ParseResolver(cfg.Resolver), simulation.NewJournal(cfg.JournalSize), simulation.Config{
		Interval: cfg.TickInterval,
		Delta:    model.Tick(cfg.TickDelta),
		MaxTicks: cfg.MaxTicks,
	})
	runner.AddItems(items...)

	var itemRepo *db.ItemRepository
	if cfg.Database.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		itemRepo = database.Items()
		runner.SetSink(database.Journal())
	}

	g, gctx := errgroup.WithContext(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	simCtx, stopSim := context.WithCancel(gctx)
	defer stopSim()

	g.Go(func() error {
		select {
		case sig := <-sigCh:
			slog.Info("shutting down", "signal", sig)
			stopSim()
		case <-simCtx.Done():
		}
		return nil
	})

	g.Go(func() error {
		defer stopSim()
		err := runner.Run(simCtx)
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("simulation: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	report(w, runner)

	if itemRepo != nil {
		if err := itemRepo.SaveAll(ctx, runner.Items()); err != nil {
			return fmt.Errorf("saving items: %w", err)
		}
		slog.Info("items saved", "count", len(runner.Items()))
	}
	return nil
}

// report logs the final state of every entity.
func report(w *world.World, runner *simulation.Runner) {
	slog.Info("simulation summary",
		"ticks", runner.StepCount(),
		"events", runner.Journal().Total())
	for _, e := range w.Entities() {
		names := make([]string, 0)
		for _, se := range e.StatusEffects() {
			names = append(names, fmt.Sprintf("%s x%d", se.Name, se.Stacks))
		}
		slog.Info("entity",
			"id", e.ID(),
			"name", e.Name(),
			"stats", e.CurrentStats().String(),
			"status", strings.Join(names, ","))
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
