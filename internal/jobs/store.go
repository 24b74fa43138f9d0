package jobs

import (
	"fmt"
	"sort"
	"sync"
)

// Store persists jobs and their results. The pipeline's only contract with
// it is a single atomic write per state change, so readers never observe a
// partially-applied result.
type Store interface {
	// Save writes the job's full current state.
	Save(job *Job) error
	// Get returns a copy of the job with the given ID.
	Get(id string) (*Job, error)
	// List returns copies of all jobs, newest first.
	List() []*Job
}

// MemoryStore is the in-process Store used by the CLI. Each Save replaces
// the whole record under one lock acquisition.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]Job
}

// NewMemoryStore creates an empty in-memory job store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		jobs: make(map[string]Job),
	}
}

// Save implements Store.
func (s *MemoryStore) Save(job *Job) error {
	if job.ID == "" {
		return fmt.Errorf("job has no ID")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = *job
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(id string) (*Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, fmt.Errorf("job %s not found", id)
	}
	return &job, nil
}

// List implements Store.
func (s *MemoryStore) List() []*Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Job, 0, len(s.jobs))
	for id := range s.jobs {
		job := s.jobs[id]
		out = append(out, &job)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
