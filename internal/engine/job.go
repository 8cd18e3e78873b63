package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"dataforge/internal/dataset"
)

// Result is the terminal outcome of an async job. Exactly one of Dataset and
// Err is set.
type Result struct {
	Dataset *dataset.Dataset
	Err     error
}

// Job is a running asynchronous generation. Consumers read Progress for
// snapshots and Done for the single terminal result.
//
// Progress sends are best-effort: a consumer that stops reading misses
// snapshots but never blocks the job. Done is buffered, so an abandoned job
// finishes and is garbage collected without a reader.
type Job struct {
	ID       string
	Progress <-chan Progress
	Done     <-chan Result

	cancel context.CancelFunc
}

// Cancel requests the job stop. The terminal Result carries ctx.Err().
func (j *Job) Cancel() { j.cancel() }

// Start launches cfg asynchronously and returns immediately. Validation
// errors surface through the Done channel like any other failure.
func (e *Engine) Start(ctx context.Context, cfg Config) *Job {
	ctx, cancel := context.WithCancel(ctx)

	progressCh := make(chan Progress, 1)
	doneCh := make(chan Result, 1)

	job := &Job{
		ID:       uuid.NewString(),
		Progress: progressCh,
		Done:     doneCh,
		cancel:   cancel,
	}

	logf := e.logger()

	go func() {
		defer cancel()
		defer close(progressCh)

		start := time.Now()
		res := e.run(ctx, cfg, func(done int) {
			select {
			case progressCh <- Progress{Done: done, Total: cfg.Rows}:
			default:
			}
		})

		if res.Err != nil {
			logf("job=%s failed after %s: %v", job.ID, time.Since(start).Truncate(time.Millisecond), res.Err)
		} else {
			logf("job=%s ok rows=%d duration=%s", job.ID, res.Dataset.Len(), time.Since(start).Truncate(time.Millisecond))
		}
		doneCh <- res
	}()

	return job
}

// run wraps generate with panic recovery so a generator bug fails one job
// instead of the process.
func (e *Engine) run(ctx context.Context, cfg Config, report func(done int)) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Err: fmt.Errorf("generation panic: %v", r)}
		}
	}()

	ds, err := e.generate(ctx, cfg, report)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Dataset: ds}
}
