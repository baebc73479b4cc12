package build

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the state of a rebuild job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusBuilding  JobStatus = "building"
	StatusCompleted JobStatus = "completed"
	StatusPartial   JobStatus = "partial"
	StatusFailed    JobStatus = "failed"
)

// Job tracks one rebuild request across its target roots.
type Job struct {
	mu sync.Mutex

	ID    string   `json:"job_id"`
	Roots []string `json:"roots"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	errors []string
}

// Progress tracks rebuild progress.
type Progress struct {
	TotalRoots int      `json:"total_roots"`
	RootsBuilt int      `json:"roots_built"`
	Warnings   int      `json:"warnings"`
	Notices    int      `json:"notices"`
	Errors     []string `json:"errors"`
}

// NewJob creates a queued job targeting the given root keys.
func NewJob(roots []string) *Job {
	keys := make([]string, len(roots))
	copy(keys, roots)
	now := time.Now()
	return &Job{
		ID:        uuid.NewString(),
		Roots:     keys,
		Status:    StatusQueued,
		Phase:     "queued",
		Progress:  Progress{TotalRoots: len(roots)},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// IncrRootsBuilt marks one more root as built.
func (j *Job) IncrRootsBuilt() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.RootsBuilt++
	j.UpdatedAt = time.Now()
}

// AddFindings accumulates warning/notice counts from one root's report.
func (j *Job) AddFindings(warnings, notices int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Warnings += warnings
	j.Progress.Notices += notices
	j.UpdatedAt = time.Now()
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID        string    `json:"job_id"`
	Roots     []string  `json:"roots"`
	Status    JobStatus `json:"status"`
	Phase     string    `json:"phase"`
	Progress  Progress  `json:"progress"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	roots := make([]string, len(j.Roots))
	copy(roots, j.Roots)
	return JobSnapshot{
		ID:        j.ID,
		Roots:     roots,
		Status:    j.Status,
		Phase:     j.Phase,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
		Progress: Progress{
			TotalRoots: j.Progress.TotalRoots,
			RootsBuilt: j.Progress.RootsBuilt,
			Warnings:   j.Progress.Warnings,
			Notices:    j.Progress.Notices,
			Errors:     errs,
		},
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}
