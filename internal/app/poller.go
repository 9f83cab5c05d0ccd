package app

import (
	"context"
	"time"

	"github.com/five82/minerdash/internal/minerapi"
	"github.com/five82/minerdash/internal/stats"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
)

// StartPoller launches a background goroutine that refreshes store from
// client. After failures the wait grows exponentially up to maxBackoff. The
// returned channel is closed once the goroutine has exited after ctx ends.
func StartPoller(ctx context.Context, store *stats.Store, client minerapi.StatsFetcher, interval time.Duration) <-chan struct{} {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	done := make(chan struct{})
	go func() {
		defer close(done)

		timer := time.NewTimer(0)
		defer timer.Stop()

		failures := 0
		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			if refresh(ctx, store, client) {
				failures = 0
			} else {
				failures++
			}
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
	return done
}

// refresh fetches once and records the outcome. It reports whether the
// fetch succeeded.
func refresh(ctx context.Context, store *stats.Store, client minerapi.StatsFetcher) bool {
	payload, err := client.FetchStats(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		store.Update(nil, err)
		log.WithError(err).Warn("stats poll failed")
		return false
	}
	store.Update(payload, nil)
	return true
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
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
