package domain

import (
	"testing"
	"time"
)

func TestJobStatus_Constants(t *testing.T) {
	tests := []struct {
		name     string
		status   JobStatus
		expected string
	}{
		{"pending", JobStatusPending, "pending"},
		{"running", JobStatusRunning, "running"},
		{"completed", JobStatusCompleted, "completed"},
		{"failed", JobStatusFailed, "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if string(tt.status) != tt.expected {
				t.Errorf("JobStatus %s = %q, want %q", tt.name, tt.status, tt.expected)
			}
		})
	}
}

func TestNewJob(t *testing.T) {
	now := time.Now()
	job := NewJob("job_1", "https://example.com/a", "default", now)

	if job.Status != JobStatusPending {
		t.Errorf("Status = %s, want pending", job.Status)
	}
	if job.Progress != ProgressNone {
		t.Errorf("Progress = %v, want 0", job.Progress)
	}
	if job.Logs == nil || len(job.Logs) != 0 {
		t.Errorf("Logs = %v, want empty non-nil slice", job.Logs)
	}
	if !job.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", job.CreatedAt, now)
	}
}

func TestJob_Transitions(t *testing.T) {
	tests := []struct {
		name         string
		from         JobStatus
		apply        func(j *Job) bool
		wantOK       bool
		wantStatus   JobStatus
		wantProgress float64
	}{
		{"start pending", JobStatusPending, (*Job).Start, true, JobStatusRunning, 0},
		{"start running", JobStatusRunning, (*Job).Start, false, JobStatusRunning, 0},
		{"complete pending", JobStatusPending, (*Job).Complete, false, JobStatusPending, 0},
		{"complete running", JobStatusRunning, (*Job).Complete, true, JobStatusCompleted, 100},
		{"fail running", JobStatusRunning, (*Job).Fail, true, JobStatusFailed, 0},
		{"fail pending", JobStatusPending, (*Job).Fail, false, JobStatusPending, 0},
		{"fail completed", JobStatusCompleted, (*Job).Fail, false, JobStatusCompleted, 100},
		{"complete failed", JobStatusFailed, (*Job).Complete, false, JobStatusFailed, 0},
		{"start completed", JobStatusCompleted, (*Job).Start, false, JobStatusCompleted, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := NewJob("id", "url", "p", time.Now())
			job.Status = tt.from
			if tt.from == JobStatusCompleted {
				job.Progress = ProgressComplete
			}

			if ok := tt.apply(job); ok != tt.wantOK {
				t.Errorf("transition ok = %v, want %v", ok, tt.wantOK)
			}
			if job.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", job.Status, tt.wantStatus)
			}
			if job.Progress != tt.wantProgress {
				t.Errorf("Progress = %v, want %v", job.Progress, tt.wantProgress)
			}
		})
	}
}

func TestJob_IsTerminal(t *testing.T) {
	job := NewJob("id", "url", "p", time.Now())
	if job.IsTerminal() {
		t.Error("pending job should not be terminal")
	}
	job.Start()
	if job.IsTerminal() {
		t.Error("running job should not be terminal")
	}
	job.Fail()
	if !job.IsTerminal() {
		t.Error("failed job should be terminal")
	}
}

func TestJob_CloneIsDeep(t *testing.T) {
	job := NewJob("id", "url", "p", time.Now())
	job.AppendLog("first")

	clone := job.Clone()
	job.AppendLog("second")
	job.Logs[0] = "changed"

	if len(clone.Logs) != 1 {
		t.Fatalf("clone Logs length = %d, want 1", len(clone.Logs))
	}
	if clone.Logs[0] != "first" {
		t.Errorf("clone Logs[0] = %q, want %q", clone.Logs[0], "first")
	}

	clone.Status = JobStatusFailed
	if job.Status != JobStatusPending {
		t.Errorf("original Status changed to %s", job.Status)
	}
}
