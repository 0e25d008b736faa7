// Package scheduler runs the periodic sweeps on cron expressions.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/frahmantamala/office-management/internal"
	"github.com/robfig/cron/v3"
)

// Sweep is an idempotent maintenance pass. It reports how many documents it
// changed.
type Sweep func(ctx context.Context, now time.Time) (int, error)

type Scheduler struct {
	cron    *cron.Cron
	specs   map[string]string
	sweeps  map[string]Sweep
	loc     *time.Location
	timeout time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

func New(cfg internal.SchedulerConfig, logger *slog.Logger) (*Scheduler, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	timeout := cfg.SweepTimeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		specs:   cfg.Specs(),
		sweeps:  make(map[string]Sweep),
		loc:     loc,
		timeout: timeout,
		logger:  logger.With("component", "scheduler"),
		now:     time.Now,
	}, nil
}

func (s *Scheduler) Register(name string, sweep Sweep) {
	s.sweeps[name] = sweep
}

// Names lists the registered sweeps.
func (s *Scheduler) Names() []string {
	names := make([]string, 0, len(s.sweeps))
	for name := range s.sweeps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes one sweep now under its own timeout.
func (s *Scheduler) Run(ctx context.Context, name string) (int, error) {
	sweep, ok := s.sweeps[name]
	if !ok {
		return 0, fmt.Errorf("unknown sweep %q", name)
	}

	ctx, cancel := internal.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := s.now().In(s.loc)
	s.logger.Info("sweep started", "sweep", name)
	n, err := sweep(ctx, start)
	if err != nil {
		s.logger.Error("sweep failed", "sweep", name, "error", err, "count", n)
		return n, err
	}
	s.logger.Info("sweep finished", "sweep", name, "count", n, "duration", time.Since(start))
	return n, nil
}

// Start schedules every registered sweep that has a spec. A sweep with an
// empty spec is disabled.
func (s *Scheduler) Start() error {
	for _, name := range s.Names() {
		spec := s.specs[name]
		if spec == "" {
			s.logger.Warn("sweep disabled", "sweep", name)
			continue
		}
		if _, err := s.cron.AddFunc(spec, func() {
			_, _ = s.Run(context.Background(), name)
		}); err != nil {
			return fmt.Errorf("schedule %s: %w", name, err)
		}
		s.logger.Info("sweep scheduled", "sweep", name, "spec", spec, "timezone", s.loc.String())
	}
	s.cron.Start()
	return nil
}

// Stop prevents new runs and waits for running sweeps or ctx, whichever ends
// first.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop().Done()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
