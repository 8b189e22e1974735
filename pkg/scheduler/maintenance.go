package scheduler

import (
	"context"
	"time"

	"github.com/naekun/naebot/internal/logging"
)

// SessionPruner drops expired slot sessions
type SessionPruner interface {
	Prune() int
}

// NamePurger drops expired cached user names
type NamePurger interface {
	PurgeNames() int
}

// HistoryPruner deletes old janken rounds
type HistoryPruner interface {
	PruneBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// MaintenanceConfig holds the intervals of the housekeeping tasks
type MaintenanceConfig struct {
	SessionInterval  time.Duration
	NameInterval     time.Duration
	HistoryInterval  time.Duration
	HistoryRetention time.Duration
}

// DefaultMaintenanceConfig returns the default intervals
func DefaultMaintenanceConfig() MaintenanceConfig {
	return MaintenanceConfig{
		SessionInterval:  time.Minute,
		NameInterval:     10 * time.Minute,
		HistoryInterval:  24 * time.Hour,
		HistoryRetention: 90 * 24 * time.Hour,
	}
}

// Maintenance runs the bot's housekeeping on a Scheduler
type Maintenance struct {
	scheduler *Scheduler
	sessions  SessionPruner
	names     NamePurger
	history   HistoryPruner
	config    MaintenanceConfig
	now       func() time.Time
}

// NewMaintenance registers a task for every non-nil collaborator
func NewMaintenance(config MaintenanceConfig, sessions SessionPruner, names NamePurger, history HistoryPruner) *Maintenance {
	m := &Maintenance{
		scheduler: NewScheduler(),
		sessions:  sessions,
		names:     names,
		history:   history,
		config:    config,
		now:       time.Now,
	}

	if sessions != nil {
		m.scheduler.AddTask("slot_session_prune", config.SessionInterval, m.pruneSessions)
	}
	if names != nil {
		m.scheduler.AddTask("name_cache_purge", config.NameInterval, m.purgeNames)
	}
	if history != nil && config.HistoryRetention > 0 {
		m.scheduler.AddTask("history_prune", config.HistoryInterval, m.pruneHistory)
	}

	return m
}

// Tasks returns the registered task names
func (m *Maintenance) Tasks() []string {
	return m.scheduler.Tasks()
}

// Start starts the maintenance tasks
func (m *Maintenance) Start(ctx context.Context) {
	m.scheduler.Start(ctx)
}

// Stop stops the maintenance tasks
func (m *Maintenance) Stop() {
	m.scheduler.Stop()
}

func (m *Maintenance) pruneSessions(ctx context.Context) error {
	if n := m.sessions.Prune(); n > 0 {
		logging.Default.Debug("Pruned %d expired slot sessions", n)
	}
	return nil
}

func (m *Maintenance) purgeNames(ctx context.Context) error {
	if n := m.names.PurgeNames(); n > 0 {
		logging.Default.Debug("Purged %d cached user names", n)
	}
	return nil
}

func (m *Maintenance) pruneHistory(ctx context.Context) error {
	cutoff := m.now().Add(-m.config.HistoryRetention)
	n, err := m.history.PruneBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	logging.Default.Info("Pruned %d janken rounds played before %s", n, cutoff.Format(time.RFC3339))
	return nil
}
