package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/five82/petdesk/internal/state"
)

// maxBackoff caps the delay between refreshes while the backend is down.
const maxBackoff = 30 * time.Second

// Refresher reloads the collection. *state.Collection implements it.
type Refresher interface {
	Refresh(ctx context.Context) state.Outcome
}

// Log is the subset of the application logger the poller writes to.
type Log interface {
	Debug(msg string, fields ...zap.Field)
}

// StartPoller refreshes r every interval until ctx is cancelled, backing off
// exponentially while refreshes fall back. It returns immediately; the
// returned channel closes when the goroutine exits.
func StartPoller(ctx context.Context, r Refresher, interval time.Duration, log Log) <-chan struct{} {
	done := make(chan struct{})
	if interval <= 0 {
		close(done)
		return done
	}
	go func() {
		defer close(done)
		failures := 0
		for {
			wait := calculateBackoff(failures, interval)
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}

			out := r.Refresh(ctx)
			switch {
			case out.Stale:
			case out.Fallback():
				failures++
				if log != nil {
					log.Debug("background refresh failed",
						zap.Int("consecutive_failures", failures),
						zap.Duration("next_in", calculateBackoff(failures, interval)),
						zap.Error(out.Err))
				}
			default:
				failures = 0
			}
		}
	}()
	return done
}

// calculateBackoff doubles base for every consecutive failure, up to maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
