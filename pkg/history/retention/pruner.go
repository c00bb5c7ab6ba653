package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"sieve-hq/sieve/pkg/config"
	"sieve-hq/sieve/pkg/history"
)

// Prune reasons passed to an Observer.
const (
	ReasonAge   = "age"
	ReasonCount = "count"
)

// Config contains configuration for the retention pruner.
type Config struct {
	// RetentionDays is the number of days to retain runs.
	// 0 means keep runs forever.
	RetentionDays int

	// MaxRecords is the maximum number of runs to keep.
	// 0 means unlimited.
	MaxRecords int64

	// PruneSchedule is a cron expression for scheduled pruning.
	// Example: "0 3 * * *" (daily at 3 AM)
	PruneSchedule string
}

// FromConfig converts the history section of the application config.
func FromConfig(cfg *config.HistoryConfig) Config {
	return Config{
		RetentionDays: cfg.RetentionDays,
		MaxRecords:    cfg.MaxRecords,
		PruneSchedule: cfg.PruneSchedule,
	}
}

// Stats counts the records deleted by one Prune call.
type Stats struct {
	ByAge   int64
	ByCount int64
}

// Total returns the number of records deleted by both phases.
func (s Stats) Total() int64 {
	return s.ByAge + s.ByCount
}

// Observer is notified after each pruning phase that ran.
type Observer func(reason string, deleted int64)

// Pruner enforces retention on a history store.
type Pruner struct {
	store     history.Store
	config    Config
	logger    *slog.Logger
	scheduler *Scheduler
	observer  Observer
	now       func() time.Time
}

// Option configures a Pruner.
type Option func(*Pruner)

// WithObserver registers a callback for pruning results, such as a metrics
// collector.
func WithObserver(o Observer) Option {
	return func(p *Pruner) { p.observer = o }
}

// WithClock overrides the time source used for the age cutoff.
func WithClock(now func() time.Time) Option {
	return func(p *Pruner) { p.now = now }
}

// NewPruner creates a new retention pruner.
func NewPruner(store history.Store, cfg Config, opts ...Option) *Pruner {
	p := &Pruner{
		store:  store,
		config: cfg,
		logger: slog.Default().With("component", "history.retention"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.scheduler = NewScheduler(p)
	return p
}

// Prune deletes runs older than the retention period, then deletes the
// oldest runs beyond MaxRecords.
func (p *Pruner) Prune(ctx context.Context) (Stats, error) {
	var stats Stats

	if p.config.RetentionDays > 0 {
		cutoff := p.now().AddDate(0, 0, -p.config.RetentionDays)
		deleted, err := p.store.DeleteBefore(ctx, cutoff)
		if err != nil {
			return stats, fmt.Errorf("prune by age failed: %w", err)
		}
		stats.ByAge = deleted
		p.notify(ReasonAge, deleted)
		p.logger.Debug("pruned runs by age",
			"deleted_count", deleted,
			"retention_days", p.config.RetentionDays,
			"cutoff_time", cutoff,
		)
	}

	if p.config.MaxRecords > 0 {
		deleted, err := p.store.DeleteOldest(ctx, p.config.MaxRecords)
		if err != nil {
			return stats, fmt.Errorf("prune by count failed: %w", err)
		}
		stats.ByCount = deleted
		p.notify(ReasonCount, deleted)
		p.logger.Debug("pruned runs by count",
			"deleted_count", deleted,
			"max_records", p.config.MaxRecords,
		)
	}

	if stats.Total() > 0 {
		p.logger.Info("history pruning completed",
			"total_deleted", stats.Total(),
			"retention_days", p.config.RetentionDays,
			"max_records", p.config.MaxRecords,
		)
	}

	return stats, nil
}

func (p *Pruner) notify(reason string, deleted int64) {
	if p.observer != nil {
		p.observer(reason, deleted)
	}
}

// Start starts the pruning scheduler. It stops when ctx is cancelled.
func (p *Pruner) Start(ctx context.Context) error {
	return p.scheduler.Start(ctx)
}

// Stop stops the pruning scheduler.
func (p *Pruner) Stop() {
	p.scheduler.Stop()
}

// NextPruning returns the time of the next scheduled pruning, or nil.
func (p *Pruner) NextPruning() *time.Time {
	return p.scheduler.NextRun()
}
