package server

import (
	"context"
	"errors"
	"sync"

	"dataforge/internal/dataset"
	"dataforge/internal/engine"
)

const (
	jobStatusRunning  = "running"
	jobStatusDone     = "done"
	jobStatusFailed   = "failed"
	jobStatusCanceled = "canceled"
)

// jobSnapshot is the JSON shape of GET /api/jobs/:id.
type jobSnapshot struct {
	ID       string  `json:"job_id"`
	Status   string  `json:"status"`
	Done     int     `json:"done"`
	Total    int     `json:"total"`
	Percent  float64 `json:"percent"`
	Rows     int     `json:"rows,omitempty"`
	ErrorMsg string  `json:"error,omitempty"`
}

// jobState tracks one async job. A drain goroutine owns the job's channels
// and folds them into the mutex-guarded snapshot fields.
type jobState struct {
	id  string
	job *engine.Job

	mu       sync.RWMutex
	status   string
	progress engine.Progress
	result   *dataset.Dataset
	errMsg   string
}

func (s *jobState) snapshot() jobSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := jobSnapshot{
		ID:       s.id,
		Status:   s.status,
		Done:     s.progress.Done,
		Total:    s.progress.Total,
		Percent:  s.progress.Percent(),
		ErrorMsg: s.errMsg,
	}
	if s.result != nil {
		snap.Rows = s.result.Len()
	}
	return snap
}

func (s *jobState) dataset() *dataset.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

func (s *jobState) cancel() { s.job.Cancel() }

// jobRegistry holds all jobs the daemon has started. Finished jobs stay
// addressable until process exit; a dataset is dropped only when its job is
// canceled or failed.
type jobRegistry struct {
	mu      sync.RWMutex
	jobs    map[string]*jobState
	running int
	maxJobs int
}

func newJobRegistry(maxJobs int) *jobRegistry {
	if maxJobs <= 0 {
		maxJobs = 4
	}
	return &jobRegistry{
		jobs:    make(map[string]*jobState),
		maxJobs: maxJobs,
	}
}

// start launches cfg on eng unless the concurrency cap is reached.
func (r *jobRegistry) start(eng *engine.Engine, cfg engine.Config) (*jobState, bool) {
	r.mu.Lock()
	if r.running >= r.maxJobs {
		r.mu.Unlock()
		return nil, false
	}
	r.running++

	job := eng.Start(context.Background(), cfg)
	state := &jobState{
		id:     job.ID,
		job:    job,
		status: jobStatusRunning,
	}
	state.progress = engine.Progress{Total: cfg.Rows}
	r.jobs[state.id] = state
	r.mu.Unlock()

	go r.drain(state)
	return state, true
}

func (r *jobRegistry) get(id string) (*jobState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.jobs[id]
	return s, ok
}

// drain consumes the job's channels until the terminal result arrives.
func (r *jobRegistry) drain(s *jobState) {
	defer func() {
		r.mu.Lock()
		r.running--
		r.mu.Unlock()
	}()

	for {
		select {
		case p, ok := <-s.job.Progress:
			if !ok {
				// Progress closed; the terminal result is in flight.
				res := <-s.job.Done
				r.finish(s, res)
				return
			}
			s.mu.Lock()
			s.progress = p
			s.mu.Unlock()

		case res := <-s.job.Done:
			r.finish(s, res)
			return
		}
	}
}

func (r *jobRegistry) finish(s *jobState, res engine.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case res.Err == nil:
		s.status = jobStatusDone
		s.result = res.Dataset
		s.progress = engine.Progress{Done: s.progress.Total, Total: s.progress.Total}
	case errors.Is(res.Err, context.Canceled) || errors.Is(res.Err, context.DeadlineExceeded):
		s.status = jobStatusCanceled
		s.errMsg = res.Err.Error()
	default:
		s.status = jobStatusFailed
		s.errMsg = res.Err.Error()
	}
}
