package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/classtrack/gradescan/pkg/sheet"
)

// ProcessFunc runs the whole pipeline for one sheet and returns the
// normalized grade list. The pipeline steps are pure and deterministic given
// their inputs, so retries re-run the whole job (including the OCR call),
// never an individual step.
type ProcessFunc func(ctx context.Context, job *Job) ([]sheet.ProcessedGrade, error)

// RunnerConfig configures a batch runner.
type RunnerConfig struct {
	Workers       int
	QueueSize     int
	RetryAttempts uint
	RetryDelay    time.Duration
	Logger        *slog.Logger
}

// Runner processes queued sheet jobs with a fixed-size worker pool. Sheets
// are independent units of work with no shared mutable state between
// invocations, so workers need no coordination beyond the queue and the
// store's per-job atomic writes. Cancellation applies at the job boundary:
// a cancelled context abandons queued and in-flight sheets but never
// interrupts a pipeline step mid-computation.
type Runner struct {
	store   Store
	process ProcessFunc
	cfg     RunnerConfig
	logger  *slog.Logger

	queue chan *Job
	wg    sync.WaitGroup
}

// NewRunner creates a runner backed by the given store. The store receives
// every status transition.
func NewRunner(store Store, process ProcessFunc, cfg RunnerConfig) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = 5
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 100
	}
	if cfg.RetryAttempts == 0 {
		cfg.RetryAttempts = 1
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		store:   store,
		process: process,
		cfg:     cfg,
		logger:  logger,
		queue:   make(chan *Job, cfg.QueueSize),
	}
}

// Submit queues a job for processing and records it as pending. Returns an
// error when the queue is full.
func (r *Runner) Submit(job *Job) error {
	if err := r.store.Save(job); err != nil {
		return err
	}
	select {
	case r.queue <- job:
		return nil
	default:
		return fmt.Errorf("job queue is full")
	}
}

// Start launches the worker pool. Workers run until the context is
// cancelled and the queue is drained via Close.
func (r *Runner) Start(ctx context.Context) {
	for i := 0; i < r.cfg.Workers; i++ {
		r.wg.Add(1)
		go func(worker int) {
			defer r.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case job, ok := <-r.queue:
					if !ok {
						return
					}
					r.run(ctx, job)
				}
			}
		}(i)
	}
}

// Close stops accepting jobs and waits for in-flight work to finish.
func (r *Runner) Close() {
	close(r.queue)
	r.wg.Wait()
}

// run executes one job with whole-job retries and writes each status
// transition to the store as a single atomic save.
func (r *Runner) run(ctx context.Context, job *Job) {
	started := time.Now()
	job.Status = StatusProcessing
	job.StartedAt = &started
	if err := r.store.Save(job); err != nil {
		r.logger.Error("failed to save job status", "job", job.ID, "err", err)
	}

	var result []sheet.ProcessedGrade
	err := retry.Do(
		func() error {
			job.Attempts++
			var processErr error
			result, processErr = r.process(ctx, job)
			return processErr
		},
		retry.Context(ctx),
		retry.Attempts(r.cfg.RetryAttempts),
		retry.Delay(r.cfg.RetryDelay),
		retry.OnRetry(func(n uint, err error) {
			r.logger.Warn("sheet processing attempt failed", "job", job.ID, "attempt", n+1, "err", err)
		}),
	)

	completed := time.Now()
	if err != nil {
		job.Status = StatusFailed
		job.Error = err.Error()
		job.Result = nil
		r.logger.Error("sheet processing failed", "job", job.ID, "sheet", job.SheetID, "err", err)
	} else {
		job.Status = StatusCompleted
		job.Error = ""
		job.CompletedAt = &completed
		job.Result = result
		r.logger.Info("sheet processed", "job", job.ID, "sheet", job.SheetID, "students", len(result))
	}

	if err := r.store.Save(job); err != nil {
		r.logger.Error("failed to save job result", "job", job.ID, "err", err)
	}
}
