package downloader

import (
	"context"
	"fmt"
	"sync"

	"github.com/ytdl-ng/ytdl-web/internal/constants"
	"github.com/ytdl-ng/ytdl-web/internal/domain"
	"github.com/ytdl-ng/ytdl-web/internal/logger"
	"github.com/ytdl-ng/ytdl-web/internal/runner"
	"github.com/ytdl-ng/ytdl-web/internal/store"
)

// Worker drives each submitted job from pending to a terminal state. Every
// job gets its own goroutine; nothing is queued and nothing is cancelled.
type Worker struct {
	Store  store.JobStore
	Runner runner.Runner
	Tool   runner.Tool
	Logger *logger.Logger
	wg     sync.WaitGroup
}

func NewWorker(s store.JobStore, r runner.Runner, tool runner.Tool, log *logger.Logger) *Worker {
	if log == nil {
		log = logger.Default()
	}

	return &Worker{
		Store:  s,
		Runner: r,
		Tool:   tool,
		Logger: log.WithComponent("worker"),
	}
}

// Launch starts the lifecycle task for a job that is already in the store.
func (w *Worker) Launch(job *domain.Job) {
	w.wg.Add(1)
	go func(id, url, profile string) {
		defer w.wg.Done()
		w.runJob(id, url, profile)
	}(job.ID, job.URL, job.Profile)
}

// Wait blocks until every launched task has finished or ctx is done. Tasks
// still running when ctx expires are abandoned, not stopped.
func (w *Worker) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Worker) runJob(id, url, profile string) {
	log := w.Logger.WithJob(id, url)

	defer func() {
		if r := recover(); r != nil {
			log.Error("Panic in job", "panic", r)
			w.Store.Mutate(id, func(job *domain.Job) {
				if job.Fail() {
					job.AppendLog(fmt.Sprintf("Failed to execute command: panic: %v", r))
				}
			})
		}
	}()

	started := false
	w.Store.Mutate(id, func(job *domain.Job) {
		if job.Start() {
			job.AppendLog("Starting download: " + url)
			started = true
		}
	})
	if !started {
		log.Warn("Job is not pending, skipping")
		return
	}

	cmd := w.Tool.DownloadCommand(url, profile)
	log.Info("Running download", "profile", profile, "command", cmd.String())

	// No deadline: a hung tool keeps its job running.
	outcome := w.Runner.Run(context.Background(), cmd)

	w.Store.Mutate(id, func(job *domain.Job) {
		applyOutcome(job, outcome)
	})

	switch outcome.Kind {
	case runner.OutcomeSucceeded:
		log.Info("Download completed", "stdout_lines", len(outcome.Stdout), "stderr_lines", len(outcome.Stderr))
	case runner.OutcomeFailed:
		log.Warn("Download failed", "exit_code", outcome.ExitCode, "error", outcome.Err)
	default:
		log.Error("Failed to execute command", "error", outcome.Err)
	}
}

// applyOutcome moves a running job to its terminal state and records what
// the tool reported.
func applyOutcome(job *domain.Job, outcome runner.Outcome) {
	switch outcome.Kind {
	case runner.OutcomeSucceeded:
		if !job.Complete() {
			return
		}
		job.AppendLog("Download completed successfully")
		for _, line := range outcome.Stdout {
			job.AppendLog("[stdout] " + line)
		}
		for _, line := range outcome.Stderr {
			job.AppendLog("[stderr] " + line)
		}

	case runner.OutcomeFailed:
		if !job.Fail() {
			return
		}
		job.AppendLog(fmt.Sprintf("Download failed with exit code: %d", outcome.ExitCode))
		for _, line := range head(outcome.Stderr, constants.MaxFailureStderrLines) {
			job.AppendLog("Error: " + line)
		}
		for _, line := range head(outcome.Stdout, constants.MaxFailureStdoutLines) {
			job.AppendLog("Output: " + line)
		}

	default:
		if !job.Fail() {
			return
		}
		msg := "unknown error"
		if outcome.Err != nil {
			msg = outcome.Err.Error()
		}
		job.AppendLog("Failed to execute command: " + msg)
	}
}

func head(lines []string, n int) []string {
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}
