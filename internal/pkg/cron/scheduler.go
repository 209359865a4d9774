package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type job struct {
	name  string
	every time.Duration
	run   func(ctx context.Context) error
}

// Scheduler runs registered jobs on fixed tickers until stopped. Each job
// also fires once at startup, so an interval is never skipped across a
// restart.
type Scheduler struct {
	jobs   []job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob registers a job. Registration after Start has no effect.
func (s *Scheduler) AddJob(name string, every time.Duration, run func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, job{name: name, every: every, run: run})
	slog.Info("Scheduled job registered", "job", name, "every", every)
}

// Start launches one goroutine per registered job.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.loop(j)
	}

	slog.Info("Scheduler started", "jobs", len(s.jobs))
}

// Stop cancels every job loop and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("Scheduler stopped")
}

func (s *Scheduler) loop(j job) {
	defer s.wg.Done()

	ticker := time.NewTicker(j.every)
	defer ticker.Stop()

	s.execute(s.ctx, j)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.execute(s.ctx, j)
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, j job) {
	start := time.Now()
	if err := j.run(ctx); err != nil {
		slog.Error("Scheduled job failed", "job", j.name, "error", err, "duration", time.Since(start))
		return
	}
	slog.Debug("Scheduled job completed", "job", j.name, "duration", time.Since(start))
}

// RunOnce executes every registered job a single time, outside the ticker
// loops. Used by operational tooling and tests.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		s.execute(ctx, j)
	}
}
