package jobs

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/classtrack/gradescan/pkg/sheet"
)

func waitForStatus(t *testing.T, store Store, id string, want Status) *Job {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		job, err := store.Get(id)
		if err == nil && job.Status == want {
			return job
		}
		time.Sleep(5 * time.Millisecond)
	}
	job, _ := store.Get(id)
	t.Fatalf("job %s never reached status %s (last seen: %+v)", id, want, job)
	return nil
}

func TestRunnerProcessesJob(t *testing.T) {
	store := NewMemoryStore()
	grades := []sheet.ProcessedGrade{
		{StudentID: "s1", StudentName: "Ann Lee", Score: "10", Status: []string{}},
	}
	runner := NewRunner(store, func(ctx context.Context, job *Job) ([]sheet.ProcessedGrade, error) {
		return grades, nil
	}, RunnerConfig{Workers: 2, QueueSize: 10, RetryAttempts: 1})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runner.Start(ctx)

	job := NewJob("sheet-1", "sheet.png", "vision", nil)
	if err := runner.Submit(job); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}

	done := waitForStatus(t, store, job.ID, StatusCompleted)
	runner.Close()

	if len(done.Result) != 1 || done.Result[0].Score != "10" {
		t.Errorf("job result = %+v, want the processed grades", done.Result)
	}
	if done.StartedAt == nil || done.CompletedAt == nil {
		t.Error("completed job missing timestamps")
	}
	if done.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", done.Attempts)
	}
	if done.Error != "" {
		t.Errorf("Error = %q, want empty", done.Error)
	}
}

func TestRunnerRetriesThenSucceeds(t *testing.T) {
	store := NewMemoryStore()
	var calls atomic.Int32
	runner := NewRunner(store, func(ctx context.Context, job *Job) ([]sheet.ProcessedGrade, error) {
		if calls.Add(1) < 3 {
			return nil, fmt.Errorf("transient OCR failure")
		}
		return []sheet.ProcessedGrade{}, nil
	}, RunnerConfig{Workers: 1, QueueSize: 10, RetryAttempts: 3, RetryDelay: time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runner.Start(ctx)

	job := NewJob("sheet-1", "sheet.png", "vision", nil)
	if err := runner.Submit(job); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}

	done := waitForStatus(t, store, job.ID, StatusCompleted)
	runner.Close()

	if got := calls.Load(); got != 3 {
		t.Errorf("process called %d times, want 3", got)
	}
	if done.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", done.Attempts)
	}
}

func TestRunnerExhaustsRetries(t *testing.T) {
	store := NewMemoryStore()
	runner := NewRunner(store, func(ctx context.Context, job *Job) ([]sheet.ProcessedGrade, error) {
		return []sheet.ProcessedGrade{{StudentID: "partial"}}, fmt.Errorf("provider unreachable")
	}, RunnerConfig{Workers: 1, QueueSize: 10, RetryAttempts: 2, RetryDelay: time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runner.Start(ctx)

	job := NewJob("sheet-1", "sheet.png", "vision", nil)
	if err := runner.Submit(job); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}

	done := waitForStatus(t, store, job.ID, StatusFailed)
	runner.Close()

	if done.Error == "" {
		t.Error("failed job has no error message")
	}
	if done.Result != nil {
		t.Errorf("failed job kept a partial result: %+v", done.Result)
	}
	if done.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", done.Attempts)
	}
}

func TestRunnerQueueFull(t *testing.T) {
	store := NewMemoryStore()
	runner := NewRunner(store, func(ctx context.Context, job *Job) ([]sheet.ProcessedGrade, error) {
		return nil, nil
	}, RunnerConfig{Workers: 1, QueueSize: 1, RetryAttempts: 1})

	// Workers never started, so the queue fills after one submit.
	if err := runner.Submit(NewJob("sheet-1", "a.png", "vision", nil)); err != nil {
		t.Fatalf("first Submit() error: %v", err)
	}
	if err := runner.Submit(NewJob("sheet-2", "b.png", "vision", nil)); err == nil {
		t.Error("expected an error submitting to a full queue")
	}
}

func TestRunnerManyJobs(t *testing.T) {
	store := NewMemoryStore()
	var processed atomic.Int32
	runner := NewRunner(store, func(ctx context.Context, job *Job) ([]sheet.ProcessedGrade, error) {
		processed.Add(1)
		return []sheet.ProcessedGrade{}, nil
	}, RunnerConfig{Workers: 5, QueueSize: 50, RetryAttempts: 1})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runner.Start(ctx)

	ids := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		job := NewJob(fmt.Sprintf("sheet-%d", i), "sheet.png", "vision", nil)
		if err := runner.Submit(job); err != nil {
			t.Fatalf("Submit() error: %v", err)
		}
		ids = append(ids, job.ID)
	}

	for _, id := range ids {
		waitForStatus(t, store, id, StatusCompleted)
	}
	runner.Close()

	if got := processed.Load(); got != 20 {
		t.Errorf("processed %d jobs, want 20", got)
	}
}
