package app

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ytdl-ng/ytdl-web/internal/domain"
	"github.com/ytdl-ng/ytdl-web/internal/logger"
	"github.com/ytdl-ng/ytdl-web/internal/store"
)

var (
	ErrEmptyURL   = errors.New("url is required")
	ErrNoBatchURL = errors.New("no URLs to download")
)

// Launcher starts the background lifecycle of a stored job.
type Launcher interface {
	Launch(job *domain.Job)
}

type JobService struct {
	Store          store.JobStore
	Launcher       Launcher
	Logger         *logger.Logger
	DefaultProfile string
	now            func() time.Time
}

func NewJobService(s store.JobStore, launcher Launcher, defaultProfile string, log *logger.Logger) *JobService {
	if log == nil {
		log = logger.Default()
	}
	return &JobService{
		Store:          s,
		Launcher:       launcher,
		Logger:         log.WithComponent("jobs"),
		DefaultProfile: defaultProfile,
		now:            time.Now,
	}
}

// Submit records a pending job and hands it to the launcher. It returns as
// soon as the job is stored; the download runs in the background.
func (s *JobService) Submit(url, profile string) (*domain.Job, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, ErrEmptyURL
	}

	profile = strings.TrimSpace(profile)
	if profile == "" {
		profile = s.DefaultProfile
	}

	job := domain.NewJob(uuid.New().String(), url, profile, s.now().UTC())
	if err := s.Store.Insert(job); err != nil {
		return nil, err
	}
	s.Logger.Info("Job enqueued", "job_id", job.ID, "url", url, "profile", profile)

	s.Launcher.Launch(job)
	return job, nil
}

// SubmitBatch submits every URL in urls with the same profile. Blank entries
// and lines starting with "#" are skipped.
func (s *JobService) SubmitBatch(urls []string, profile string) ([]*domain.Job, error) {
	cleaned := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" || strings.HasPrefix(u, "#") {
			continue
		}
		cleaned = append(cleaned, u)
	}
	if len(cleaned) == 0 {
		return nil, ErrNoBatchURL
	}

	jobs := make([]*domain.Job, 0, len(cleaned))
	for _, u := range cleaned {
		job, err := s.Submit(u, profile)
		if err != nil {
			return jobs, err
		}
		jobs = append(jobs, job)
	}
	s.Logger.Info("Batch enqueued", "count", len(jobs))
	return jobs, nil
}

func (s *JobService) GetJob(id string) (*domain.Job, error) {
	return s.Store.Get(id)
}

func (s *JobService) ListJobs() []*domain.Job {
	return s.Store.Snapshot()
}

func (s *JobService) GetJobStats() store.JobStats {
	return s.Store.Stats()
}
