// Package tokenserver manages the auxiliary token-issuing process the
// download tool talks to. Only the process id is tracked.
package tokenserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/ytdl-ng/ytdl-web/internal/constants"
	"github.com/ytdl-ng/ytdl-web/internal/httpclient"
	"github.com/ytdl-ng/ytdl-web/internal/logger"
)

var ErrStartFailed = errors.New("failed to start token server")

type Config struct {
	Command string
	Args    []string
	Dir     string
	// BaseURL is probed at /ping after each start. Empty disables the probe.
	BaseURL    string
	ProbeDelay time.Duration
}

// Handle records the pid of the most recently started token server. It says
// nothing about whether that process is still alive.
type Handle struct {
	cfg    Config
	client *httpclient.Client
	logger *logger.Logger

	mu  sync.Mutex
	pid int
}

func New(cfg Config, client *httpclient.Client, log *logger.Logger) *Handle {
	if log == nil {
		log = logger.Default()
	}
	if client == nil {
		client = httpclient.NewClient(nil, 0)
	}
	return &Handle{
		cfg:    cfg,
		client: client,
		logger: log.WithComponent("tokenserver"),
	}
}

// Start spawns a new token server with its output discarded and records its
// pid, replacing any previously recorded one.
func (h *Handle) Start() (int, error) {
	cmd := exec.Command(h.cfg.Command, h.cfg.Args...)
	cmd.Dir = h.cfg.Dir
	setProcessGroup(cmd)

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStartFailed, err)
	}
	pid := cmd.Process.Pid

	h.mu.Lock()
	h.pid = pid
	h.mu.Unlock()

	h.logger.Info("Started token server", "pid", pid)

	go func() {
		err := cmd.Wait()
		h.logger.Debug("Token server exited", "pid", pid, "error", err)
	}()

	if h.cfg.BaseURL != "" {
		go h.probeAfterDelay()
	}

	return pid, nil
}

// Running reports whether a pid is recorded.
func (h *Handle) Running() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pid != 0
}

// Stop signals the recorded process group and forgets the pid.
func (h *Handle) Stop() error {
	h.mu.Lock()
	pid := h.pid
	h.pid = 0
	h.mu.Unlock()

	if pid == 0 {
		return nil
	}
	h.logger.Info("Stopping token server", "pid", pid)
	return terminate(pid)
}

// Probe checks that the token server answers on /ping.
func (h *Handle) Probe(ctx context.Context) error {
	url := strings.TrimRight(h.cfg.BaseURL, "/") + "/ping"
	resp, err := h.client.Get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ping returned status %d", resp.StatusCode)
	}
	return nil
}

func (h *Handle) probeAfterDelay() {
	delay := h.cfg.ProbeDelay
	if delay <= 0 {
		delay = constants.DefaultProbeDelay
	}
	time.Sleep(delay)

	timeout := time.Duration(constants.DefaultRetryCount) * (constants.DefaultProbeTimeout + constants.DefaultRetryBase)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := h.Probe(ctx); err != nil {
		h.logger.Warn("Token server not responding", "url", h.cfg.BaseURL, "error", err)
		return
	}
	h.logger.Info("Token server responding", "url", h.cfg.BaseURL)
}
