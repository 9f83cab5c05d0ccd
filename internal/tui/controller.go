package tui

import (
	"context"
	"time"
)

const (
	DefaultUpdateInterval = time.Second
	DefaultTick           = 100 * time.Millisecond
)

// ControllerOptions configure a Controller.
type ControllerOptions struct {
	UI             UIOptions
	UpdateInterval time.Duration // zero uses DefaultUpdateInterval
	Tick           time.Duration // zero uses DefaultTick
}

type controllerState int

const (
	stateRunning controllerState = iota
	stateStopped
)

// Controller pushes snapshots to the UI on a fixed cadence until shutdown.
type Controller struct {
	rx       <-chan ControllerMessage
	ui       *UI
	interval time.Duration
	tick     time.Duration
	state    controllerState
}

// NewController creates the shutdown channel and a UI bound to it.
func NewController(opts ControllerOptions) (*Controller, error) {
	ch := make(chan ControllerMessage, 1)
	ui, err := NewUI(ch, opts.UI)
	if err != nil {
		return nil, err
	}

	interval := opts.UpdateInterval
	if interval <= 0 {
		interval = DefaultUpdateInterval
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultTick
	}

	return &Controller{
		rx:       ch,
		ui:       ui,
		interval: interval,
		tick:     tick,
	}, nil
}

// Run polls src every interval and forwards the snapshot to the UI. It
// returns after the operator requests shutdown, ctx is cancelled or the
// display surface exits, with the surface goroutine joined. Run on a
// stopped controller returns immediately.
func (c *Controller) Run(ctx context.Context, src SnapshotSource) {
	if c.state == stateStopped {
		return
	}

	next := time.Now().Add(c.interval)
	timer := time.NewTimer(c.tick)
	defer timer.Stop()

	for {
		if reason, stop := c.pollShutdown(ctx); stop {
			c.stop(reason)
			return
		}

		if now := time.Now(); !now.Before(next) {
			if c.pushStatus(src) {
				next = nextDeadline(next, now, c.interval)
			}
		}

		timer.Reset(c.tick)
		if reason, stop := c.sleep(ctx, timer); stop {
			c.stop(reason)
			return
		}
	}
}

func (c *Controller) pollShutdown(ctx context.Context) (string, bool) {
	select {
	case msg := <-c.rx:
		return shutdownReason(msg)
	case <-ctx.Done():
		return "context cancelled", true
	case <-c.ui.Done():
		return "display surface exited", true
	default:
		return "", false
	}
}

// sleep waits for the next tick, waking early on any shutdown signal.
func (c *Controller) sleep(ctx context.Context, timer *time.Timer) (string, bool) {
	select {
	case <-timer.C:
		return "", false
	case msg := <-c.rx:
		return shutdownReason(msg)
	case <-ctx.Done():
		return "context cancelled", true
	case <-c.ui.Done():
		return "display surface exited", true
	}
}

// pushStatus reports false when the snapshot was busy, so the caller keeps
// the deadline and retries on the next tick.
func (c *Controller) pushStatus(src SnapshotSource) bool {
	snap, ok := src.TrySnapshot()
	if !ok {
		log.Debug("stats locked, retrying next tick")
		return false
	}
	if err := c.ui.Send(UpdateStatus{Snapshot: snap}); err != nil {
		log.WithError(err).Debug("status update not delivered")
	}
	return true
}

func (c *Controller) stop(reason string) {
	log.WithField("reason", reason).Info("stopping dashboard")
	c.ui.Stop()
	c.state = stateStopped
}

func shutdownReason(msg ControllerMessage) (string, bool) {
	if msg == Shutdown {
		return "operator requested shutdown", true
	}
	return "", false
}

// nextDeadline advances from the previous deadline so the cadence does not
// drift, resyncing to now when the loop fell a whole interval behind.
func nextDeadline(prev, now time.Time, interval time.Duration) time.Time {
	next := prev.Add(interval)
	if !next.After(now) {
		return now.Add(interval)
	}
	return next
}
