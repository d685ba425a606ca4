// Package broadcast pushes periodic snapshots to a single listener.
package broadcast

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ytdl-ng/ytdl-web/internal/constants"
)

// SnapshotFunc returns the value to deliver on one iteration. It is encoded
// as JSON.
type SnapshotFunc func() any

// Sink delivers one encoded snapshot. An error means the listener is gone.
type Sink interface {
	Send(msg []byte) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(msg []byte) error

func (f SinkFunc) Send(msg []byte) error {
	return f(msg)
}

// Run waits interval, then sends a snapshot, until ctx is done or the sink
// fails. The wait restarts only after Send returns, so a slow listener
// delays its own next snapshot and never gets them back to back.
func Run(ctx context.Context, interval time.Duration, snapshot SnapshotFunc, sink Sink) error {
	if interval <= 0 {
		interval = constants.DefaultBroadcastInterval
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		msg, err := json.Marshal(snapshot())
		if err != nil {
			timer.Reset(interval)
			continue
		}
		if err := sink.Send(msg); err != nil {
			return err
		}
		timer.Reset(interval)
	}
}
