package queue

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type RecordedJob struct {
	Kind    string
	ID      string
	Payload json.RawMessage
	At      time.Time
}

// Recorder is an in-memory Scheduler used by tests and redis-less development.
type Recorder struct {
	mu        sync.Mutex
	Scheduled map[string]RecordedJob
	Enqueued  []RecordedJob
	Cancelled []string
}

func NewRecorder() *Recorder {
	return &Recorder{Scheduled: map[string]RecordedJob{}}
}

func (r *Recorder) Enqueue(_ context.Context, kind string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Enqueued = append(r.Enqueued, RecordedJob{Kind: kind, Payload: body})
	return nil
}

func (r *Recorder) Schedule(_ context.Context, kind, id string, payload any, at time.Time) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Scheduled[id] = RecordedJob{Kind: kind, ID: id, Payload: body, At: at}
	return nil
}

func (r *Recorder) Cancel(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Scheduled, id)
	r.Cancelled = append(r.Cancelled, id)
	return nil
}

func (r *Recorder) Job(id string) (RecordedJob, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.Scheduled[id]
	return job, ok
}

func (r *Recorder) EnqueuedKinds(kind string) []RecordedJob {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []RecordedJob
	for _, j := range r.Enqueued {
		if j.Kind == kind {
			out = append(out, j)
		}
	}
	return out
}
