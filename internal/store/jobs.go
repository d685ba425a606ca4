package store

import (
	"errors"
	"sync"

	"github.com/ytdl-ng/ytdl-web/internal/domain"
)

var (
	ErrJobNotFound  = errors.New("job not found")
	ErrDuplicateJob = errors.New("job already exists")
)

// JobStore is the registry of download jobs shared by request handlers,
// lifecycle tasks and status broadcasters.
type JobStore interface {
	Insert(job *domain.Job) error
	Get(id string) (*domain.Job, error)
	Snapshot() []*domain.Job
	Mutate(id string, fn func(job *domain.Job)) bool
	Stats() JobStats
}

type JobStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Running   int `json:"running"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}

// MemoryJobStore keeps jobs in process memory for the lifetime of the
// process. Records are never evicted.
type MemoryJobStore struct {
	jobs  map[string]*domain.Job
	order []string
	mu    sync.RWMutex
}

func NewMemoryJobStore() *MemoryJobStore {
	return &MemoryJobStore{
		jobs: make(map[string]*domain.Job),
	}
}

func (s *MemoryJobStore) Insert(job *domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[job.ID]; ok {
		return ErrDuplicateJob
	}
	s.jobs[job.ID] = job.Clone()
	s.order = append(s.order, job.ID)
	return nil
}

func (s *MemoryJobStore) Get(id string) (*domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}
	return job.Clone(), nil
}

// Snapshot returns copies of all jobs in insertion order.
func (s *MemoryJobStore) Snapshot() []*domain.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]*domain.Job, 0, len(s.order))
	for _, id := range s.order {
		jobs = append(jobs, s.jobs[id].Clone())
	}
	return jobs
}

// Mutate runs fn against the stored record while holding the write lock.
// fn must not retain the pointer. Returns false if the id is unknown.
func (s *MemoryJobStore) Mutate(id string, fn func(job *domain.Job)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return false
	}
	fn(job)
	return true
}

func (s *MemoryJobStore) Stats() JobStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := JobStats{Total: len(s.jobs)}
	for _, job := range s.jobs {
		switch job.Status {
		case domain.JobStatusPending:
			stats.Pending++
		case domain.JobStatusRunning:
			stats.Running++
		case domain.JobStatusCompleted:
			stats.Completed++
		case domain.JobStatusFailed:
			stats.Failed++
		}
	}
	return stats
}
