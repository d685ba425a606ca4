package httpapp

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/ytdl-ng/ytdl-web/internal/broadcast"
)

// WebSocket streams job snapshots to the client until it disconnects.
// Client frames are read and dropped.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		sink := broadcast.SinkFunc(func(msg []byte) error {
			return conn.WriteMessage(websocket.TextMessage, msg)
		})
		if err := broadcast.Run(ctx, h.BroadcastInterval, h.jobSnapshot, sink); err != nil && ctx.Err() == nil {
			h.Logger.Debug("Broadcast stopped", "error", err)
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	cancel()
	<-done
}
