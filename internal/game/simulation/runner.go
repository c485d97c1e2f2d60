package simulation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/udisondev/rptrunk/internal/game/event"
	"github.com/udisondev/rptrunk/internal/game/item"
	"github.com/udisondev/rptrunk/internal/model"
	"github.com/udisondev/rptrunk/internal/world"
)

// Config holds tick loop settings.
type Config struct {
	Interval time.Duration // wall-clock time between steps
	Delta    model.Tick    // simulated time per step
	MaxTicks int64         // stop after this many steps, 0 = unbounded
}

// Runner — цикл симуляции: на каждом шаге тикает предметы, проверяет
// CanExecute и последовательно исполняет события готовых предметов.
//
// Items are processed in registration order; that order is the only
// ordering guarantee when several items hit the same entity in one step.
type Runner struct {
	mu       sync.Mutex
	world    *world.World
	items    []*item.Item
	resolver event.Resolver
	journal  *Journal
	sink     Sink
	cfg      Config
	step     int64
}

// NewRunner creates a runner over w. A nil resolver means event.Direct.
func NewRunner(w *world.World, resolver event.Resolver, journal *Journal, cfg Config) *Runner {
	if resolver == nil {
		resolver = event.Direct
	}
	if journal == nil {
		journal = NewJournal(0)
	}
	if cfg.Delta <= 0 {
		cfg.Delta = 1
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	return &Runner{
		world:    w,
		resolver: resolver,
		journal:  journal,
		cfg:      cfg,
	}
}

// SetSink installs a per-result sink (e.g. the database journal).
func (r *Runner) SetSink(s Sink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sink = s
}

// AddItems registers items in driving order.
func (r *Runner) AddItems(items ...*item.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, items...)
}

// Items returns a copy of the registered items.
func (r *Runner) Items() []*item.Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*item.Item, len(r.items))
	copy(out, r.items)
	return out
}

// ItemsOf returns the items bound to entity id.
func (r *Runner) ItemsOf(id model.EntityID) []*item.Item {
	var out []*item.Item
	for _, it := range r.Items() {
		if owner, ok := it.Entity(); ok && owner == id {
			out = append(out, it)
		}
	}
	return out
}

// Journal returns the in-memory journal.
func (r *Runner) Journal() *Journal {
	return r.journal
}

// StepCount returns the number of completed steps.
func (r *Runner) StepCount() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.step
}

// Step advances the simulation by one moment and returns every event
// outcome produced during it, in execution order.
func (r *Runner) Step(ctx context.Context) []event.EventResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.step++
	m := model.Moment{Index: r.step, Delta: r.cfg.Delta}

	for _, it := range r.items {
		it.Tick(m)
	}

	var results []event.EventResult
	for _, it := range r.items {
		if !it.CanExecute(r.world) {
			continue
		}
		events := it.PendingEvents(r.world, r.resolver)
		if len(events) == 0 {
			continue
		}
		for _, ev := range events {
			res := ev.Execute()
			results = append(results, res)
			r.journal.Record(m.Index, res)
			if r.sink != nil {
				if err := r.sink.Append(ctx, m.Index, res); err != nil {
					slog.Warn("journal sink append failed",
						"event", res.ID,
						"tick", m.Index,
						"error", err)
				}
			}
		}
		it.ResetCooldown()
	}

	if len(results) > 0 {
		slog.Debug("simulation step",
			"tick", m.Index,
			"events", len(results))
	}
	return results
}

// Run steps on a ticker until ctx is canceled or MaxTicks is reached.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	slog.Info("simulation started",
		"interval", r.cfg.Interval,
		"delta", r.cfg.Delta,
		"maxTicks", r.cfg.MaxTicks,
		"items", len(r.Items()))

	for {
		select {
		case <-ctx.Done():
			slog.Info("simulation stopping", "ticks", r.StepCount())
			return ctx.Err()

		case <-ticker.C:
			r.Step(ctx)
			if r.cfg.MaxTicks > 0 && r.StepCount() >= r.cfg.MaxTicks {
				slog.Info("simulation finished", "ticks", r.StepCount())
				return nil
			}
		}
	}
}
