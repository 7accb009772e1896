// Package scheduler runs the background jobs used by `vocare serve`:
// the stale pending mission sweep and the weather pre-warm.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper expires stale pending missions.
type Sweeper interface {
	ExpireStaleMissions(ctx context.Context) (int, error)
}

// Prewarmer refreshes a cached weather label.
type Prewarmer interface {
	Refresh(ctx context.Context) (string, error)
}

// Config holds job schedules in robfig/cron syntax (including @every).
// An empty schedule disables that job.
type Config struct {
	Sweep      string
	Prewarm    string
	JobTimeout time.Duration
}

// Scheduler wraps a cron runner.
type Scheduler struct {
	cron      *cron.Cron
	cfg       Config
	sweeper   Sweeper
	prewarmer Prewarmer
	logger    *zap.Logger

	mu       sync.Mutex
	entryIDs map[string]cron.EntryID
}

// New creates a Scheduler. prewarmer may be nil.
func New(cfg Config, sweeper Sweeper, prewarmer Prewarmer, logger *zap.Logger) *Scheduler {
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	return &Scheduler{
		cron:      cron.New(cron.WithParser(parser), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		cfg:       cfg,
		sweeper:   sweeper,
		prewarmer: prewarmer,
		logger:    logger,
		entryIDs:  make(map[string]cron.EntryID),
	}
}

// Start registers the configured jobs and starts the cron runner.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.Sweep != "" && s.sweeper != nil {
		if err := s.register("stale_sweep", s.cfg.Sweep, s.RunSweep); err != nil {
			return err
		}
	}
	if s.cfg.Prewarm != "" && s.prewarmer != nil {
		if err := s.register("weather_prewarm", s.cfg.Prewarm, s.RunPrewarm); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", zap.Int("jobs", len(s.entryIDs)))
	return nil
}

// Stop halts the runner and waits for running jobs or ctx, whichever is first.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// Jobs returns the registered job names.
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.entryIDs))
	for name := range s.entryIDs {
		names = append(names, name)
	}
	return names
}

func (s *Scheduler) register(name, spec string, job func(context.Context)) error {
	id, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.JobTimeout)
		defer cancel()
		job(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q for %s: %w", spec, name, err)
	}
	s.entryIDs[name] = id
	return nil
}

// RunSweep expires stale pending missions once.
func (s *Scheduler) RunSweep(ctx context.Context) {
	n, err := s.sweeper.ExpireStaleMissions(ctx)
	if err != nil {
		s.logger.Warn("stale sweep failed", zap.Int("expired", n), zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("stale missions skipped", zap.Int("expired", n))
	}
}

// RunPrewarm refreshes the weather cache once.
func (s *Scheduler) RunPrewarm(ctx context.Context) {
	label, err := s.prewarmer.Refresh(ctx)
	if err != nil {
		s.logger.Debug("weather prewarm failed", zap.Error(err))
		return
	}
	s.logger.Debug("weather prewarmed", zap.String("label", label))
}
