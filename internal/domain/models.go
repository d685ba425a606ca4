package domain

import "time"

type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// Progress values a job can report. Intermediate progress is never tracked.
const (
	ProgressNone     float64 = 0
	ProgressComplete float64 = 100
)

// Job represents one download request and its lifecycle
type Job struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Profile   string    `json:"profile"`
	Status    JobStatus `json:"status"`
	Logs      []string  `json:"logs"`
	Progress  float64   `json:"progress"`
}

// NewJob returns a pending job with an empty log.
func NewJob(id, url, profile string, createdAt time.Time) *Job {
	return &Job{
		ID:        id,
		URL:       url,
		Profile:   profile,
		Status:    JobStatusPending,
		Progress:  ProgressNone,
		CreatedAt: createdAt,
		Logs:      []string{},
	}
}

// Start moves a pending job to running.
func (j *Job) Start() bool {
	if j.Status != JobStatusPending {
		return false
	}
	j.Status = JobStatusRunning
	return true
}

// Complete moves a running job to completed and sets progress to 100.
func (j *Job) Complete() bool {
	if j.Status != JobStatusRunning {
		return false
	}
	j.Status = JobStatusCompleted
	j.Progress = ProgressComplete
	return true
}

// Fail moves a running job to failed. Progress stays at 0.
func (j *Job) Fail() bool {
	if j.Status != JobStatusRunning {
		return false
	}
	j.Status = JobStatusFailed
	return true
}

// AppendLog adds lines to the end of the job log.
func (j *Job) AppendLog(lines ...string) {
	j.Logs = append(j.Logs, lines...)
}

// IsTerminal reports whether the job has finished.
func (j *Job) IsTerminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}

// Clone returns a deep copy of the job.
func (j *Job) Clone() *Job {
	c := *j
	c.Logs = make([]string, len(j.Logs))
	copy(c.Logs, j.Logs)
	return &c
}
