package dto

import (
	"strings"
	"time"

	"github.com/ytdl-ng/ytdl-web/internal/domain"
)

type JobResponse struct {
	ID        string   `json:"id"`
	URL       string   `json:"url"`
	Profile   string   `json:"profile"`
	Status    string   `json:"status"`
	CreatedAt string   `json:"created_at"`
	Logs      []string `json:"logs"`
	Progress  float64  `json:"progress"`
}

func NewJobResponse(j *domain.Job) JobResponse {
	logs := j.Logs
	if logs == nil {
		logs = []string{}
	}
	return JobResponse{
		ID:        j.ID,
		URL:       j.URL,
		Profile:   j.Profile,
		Status:    string(j.Status),
		Progress:  j.Progress,
		CreatedAt: j.CreatedAt.UTC().Format(time.RFC3339Nano),
		Logs:      logs,
	}
}

func NewJobResponses(jobs []*domain.Job) []JobResponse {
	resp := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		resp = append(resp, NewJobResponse(j))
	}
	return resp
}

type DownloadRequest struct {
	Profile *string `json:"profile"`
	URL     string  `json:"url"`
}

func (r *DownloadRequest) Validate() []ValidationError {
	var errs []ValidationError
	if strings.TrimSpace(r.URL) == "" {
		errs = append(errs, ValidationError{Field: "url", Message: "is required"})
	}
	errs = append(errs, validateURL(&r.URL)...)
	return errs
}

func (r *DownloadRequest) ProfileName() string {
	if r.Profile == nil {
		return ""
	}
	return *r.Profile
}

type BatchRequest struct {
	Profile *string  `json:"profile"`
	URLs    []string `json:"urls"`
}

func (r *BatchRequest) Validate() []ValidationError {
	var errs []ValidationError
	if len(r.URLs) == 0 {
		errs = append(errs, ValidationError{Field: "urls", Message: "is required"})
	}
	return errs
}

func (r *BatchRequest) ProfileName() string {
	if r.Profile == nil {
		return ""
	}
	return *r.Profile
}
