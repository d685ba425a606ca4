package httpapp

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ytdl-ng/ytdl-web/internal/app"
	"github.com/ytdl-ng/ytdl-web/internal/constants"
	"github.com/ytdl-ng/ytdl-web/internal/http/dto"
	"github.com/ytdl-ng/ytdl-web/internal/store"
)

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.ok(w, "OK")
}

func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.Profiles.ListProfiles(r.Context())
	if err != nil {
		h.Logger.Error("Failed to list profiles", "error", err)
		h.fail(w, constants.StatusInternalError, "Failed to list profiles")
		return
	}
	h.ok(w, profiles)
}

// RefreshProfiles drops any cached listing and asks the tool again.
func (h *Handler) RefreshProfiles(w http.ResponseWriter, r *http.Request) {
	if cached, ok := h.Profiles.(profileRefresher); ok {
		if err := cached.Invalidate(r.Context()); err != nil {
			h.Logger.Warn("Failed to invalidate profile cache", "error", err)
		}
	}
	h.ListProfiles(w, r)
}

func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	var req dto.DownloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, constants.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		h.fail(w, constants.StatusBadRequest, dto.ToResponse(errs))
		return
	}

	job, err := h.JobService.Submit(req.URL, req.ProfileName())
	if err != nil {
		h.submitError(w, err)
		return
	}
	h.ok(w, job.ID)
}

func (h *Handler) DownloadBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, constants.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		h.fail(w, constants.StatusBadRequest, dto.ToResponse(errs))
		return
	}

	jobs, err := h.JobService.SubmitBatch(req.URLs, req.ProfileName())
	if err != nil {
		h.submitError(w, err)
		return
	}

	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	h.ok(w, ids)
}

func (h *Handler) submitError(w http.ResponseWriter, err error) {
	if errors.Is(err, app.ErrEmptyURL) || errors.Is(err, app.ErrNoBatchURL) {
		h.fail(w, constants.StatusBadRequest, err.Error())
		return
	}
	h.Logger.Error("Failed to submit job", "error", err)
	h.fail(w, constants.StatusInternalError, err.Error())
}

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	h.ok(w, h.jobSnapshot())
}

// jobSnapshot is the job list as served by /api/jobs and pushed on /ws.
func (h *Handler) jobSnapshot() any {
	return dto.NewJobResponses(h.JobService.ListJobs())
}

func (h *Handler) JobStats(w http.ResponseWriter, r *http.Request) {
	h.ok(w, h.JobService.GetJobStats())
}

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, err := h.JobService.GetJob(id)
	if errors.Is(err, store.ErrJobNotFound) {
		h.fail(w, constants.StatusNotFound, "Job not found")
		return
	}
	if err != nil {
		h.fail(w, constants.StatusInternalError, err.Error())
		return
	}
	h.ok(w, dto.NewJobResponse(job))
}

func (h *Handler) ServerStatus(w http.ResponseWriter, r *http.Request) {
	h.ok(w, h.TokenServer.Running())
}

func (h *Handler) StartServer(w http.ResponseWriter, r *http.Request) {
	if _, err := h.TokenServer.Start(); err != nil {
		h.Logger.Error("Failed to start token server", "error", err)
		h.fail(w, constants.StatusInternalError, err.Error())
		return
	}
	h.ok(w, "Server started")
}

// SystemCheck reports which external programs resolve on PATH.
func (h *Handler) SystemCheck(w http.ResponseWriter, r *http.Request) {
	names := append([]string{}, constants.CheckedDependencies...)
	if h.ToolCommand != "" {
		names = append(names, h.ToolCommand)
	}

	found := make(map[string]bool, len(names))
	for _, name := range names {
		_, err := h.lookPath(name)
		found[name] = err == nil
	}
	h.ok(w, found)
}
