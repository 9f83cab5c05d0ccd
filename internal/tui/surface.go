package tui

import (
	"errors"

	"github.com/five82/minerdash/internal/stats"
	"github.com/five82/minerdash/internal/theme"
)

// ErrClosed is returned when sending to a queue whose consumer has exited.
var ErrClosed = errors.New("tui: receiver closed")

// Frame describes the area and palette a component renders into.
type Frame struct {
	Width  int
	Height int
	Theme  theme.Theme
}

// Component is a named, renderable panel owned by the surface loop.
type Component interface {
	Name() string
	Title() string
	Render(f Frame) string
}

// Handle is passed to callbacks running on the surface loop. It must not be
// retained or used from any other goroutine.
type Handle interface {
	// Component returns the mounted component with the given name, or nil.
	Component(name string) Component
	// Quit makes the loop terminate once the current callback returns.
	Quit()
}

// Callback is a unit of work executed on the surface loop.
type Callback func(h Handle)

// Sink accepts callbacks from any goroutine and runs them on the surface
// loop in send order. Send returns ErrClosed once the loop has exited.
type Sink interface {
	Send(cb Callback) error
}

// Surface is a terminal rendering engine with its own single-threaded
// event loop.
type Surface interface {
	// Mount adds a component. Only valid before Run.
	Mount(c Component)
	// Bind registers a global input callback for keys. Only valid before Run.
	Bind(keys []string, help string, fn func(h Handle))
	// Sink returns the thread-safe deferred-callback sink.
	Sink() Sink
	// Run blocks running the event loop until a callback calls Handle.Quit
	// or the loop fails.
	Run() error
}

// SurfaceFactory builds the surface used by a UI.
type SurfaceFactory func() (Surface, error)

// View produces a component and refreshes it from snapshots. Both methods
// are called on the surface loop only.
type View interface {
	Create() Component
	Update(h Handle, snap *stats.Snapshot)
}

// SnapshotSource hands out snapshots without blocking. It reports false when
// the snapshot is momentarily unavailable.
type SnapshotSource interface {
	TrySnapshot() (*stats.Snapshot, bool)
}
