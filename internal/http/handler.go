package httpapp

import (
	"context"
	"encoding/json"
	"net/http"
	"os/exec"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ytdl-ng/ytdl-web/internal/app"
	"github.com/ytdl-ng/ytdl-web/internal/catalog"
	"github.com/ytdl-ng/ytdl-web/internal/constants"
	"github.com/ytdl-ng/ytdl-web/internal/http/dto"
	"github.com/ytdl-ng/ytdl-web/internal/logger"
)

// profileRefresher is implemented by profile providers that cache.
type profileRefresher interface {
	Invalidate(ctx context.Context) error
}

// TokenServer is the part of the token-server handle the API exposes.
type TokenServer interface {
	Start() (int, error)
	Running() bool
}

type Handler struct {
	JobService        *app.JobService
	Profiles          catalog.Provider
	TokenServer       TokenServer
	Logger            *logger.Logger
	ToolCommand       string
	BroadcastInterval time.Duration

	lookPath func(string) (string, error)
	upgrader websocket.Upgrader
}

func NewHandler(js *app.JobService, profiles catalog.Provider, ts TokenServer, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Default()
	}
	return &Handler{
		JobService:        js,
		Profiles:          profiles,
		TokenServer:       ts,
		Logger:            log.WithComponent("http"),
		BroadcastInterval: constants.DefaultBroadcastInterval,
		lookPath:          exec.LookPath,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Get("/ws", h.WebSocket)

	r.Route("/api", func(r chi.Router) {
		r.Get("/profiles", h.ListProfiles)
		r.Post("/profiles/refresh", h.RefreshProfiles)
		r.Post("/download", h.Download)
		r.Post("/download/batch", h.DownloadBatch)
		r.Get("/jobs", h.ListJobs)
		r.Get("/jobs/stats", h.JobStats)
		r.Get("/jobs/{id}", h.GetJob)
		r.Get("/server/status", h.ServerStatus)
		r.Post("/server/start", h.StartServer)
		r.Get("/system/check", h.SystemCheck)
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body dto.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.Logger.Error("Failed to write response", "error", err)
	}
}

func (h *Handler) ok(w http.ResponseWriter, data any) {
	h.writeJSON(w, constants.StatusOK, dto.OK(data))
}

func (h *Handler) fail(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, dto.Fail(msg))
}
