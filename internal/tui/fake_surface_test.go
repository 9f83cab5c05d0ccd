package tui

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/five82/minerdash/internal/stats"
)

// fakeSurface is an in-memory display surface. Its loop runs callbacks from
// a buffered queue; events is only touched on the loop and read after done.
type fakeSurface struct {
	components map[string]Component
	bindings   map[string]func(Handle)
	queue      chan Callback
	done       chan struct{}
	crash      chan struct{}
	quits      atomic.Int32
	events     []string
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		components: make(map[string]Component),
		bindings:   make(map[string]func(Handle)),
		queue:      make(chan Callback, 1024),
		done:       make(chan struct{}),
		crash:      make(chan struct{}),
	}
}

func (f *fakeSurface) factory() SurfaceFactory {
	return func() (Surface, error) { return f, nil }
}

func (f *fakeSurface) Mount(c Component) { f.components[c.Name()] = c }

func (f *fakeSurface) Bind(keys []string, _ string, fn func(Handle)) {
	for _, k := range keys {
		f.bindings[k] = fn
	}
}

func (f *fakeSurface) Sink() Sink { return f }

func (f *fakeSurface) Send(cb Callback) error {
	select {
	case <-f.done:
		return ErrClosed
	default:
	}
	select {
	case f.queue <- cb:
		return nil
	case <-f.done:
		return ErrClosed
	}
}

func (f *fakeSurface) Run() error {
	defer close(f.done)
	h := &fakeHandle{surface: f}
	for {
		select {
		case cb := <-f.queue:
			cb(h)
			if h.quit {
				return nil
			}
		case <-f.crash:
			panic("surface crashed")
		}
	}
}

// Press simulates the operator pressing key on the loop goroutine.
func (f *fakeSurface) Press(key string) {
	f.queue <- func(h Handle) {
		if fn := f.bindings[key]; fn != nil {
			fn(h)
		}
	}
}

type fakeHandle struct {
	surface *fakeSurface
	quit    bool
}

func (h *fakeHandle) Component(name string) Component { return h.surface.components[name] }

func (h *fakeHandle) Quit() {
	h.quit = true
	h.surface.quits.Add(1)
	h.surface.events = append(h.surface.events, "quit")
}

type staticComponent string

func (c staticComponent) Name() string       { return string(c) }
func (c staticComponent) Title() string      { return string(c) }
func (c staticComponent) Render(Frame) string { return string(c) }

// countingView counts updates and records them in the surface event log.
type countingView struct {
	name    string
	updates atomic.Int32

	mu      sync.Mutex
	heights []uint64
	missing bool
}

func (v *countingView) Create() Component { return staticComponent(v.name) }

func (v *countingView) Update(h Handle, snap *stats.Snapshot) {
	v.updates.Add(1)
	v.mu.Lock()
	if h.Component(v.name) == nil {
		v.missing = true
	}
	if snap != nil {
		v.heights = append(v.heights, snap.Stats.Mining.BlockHeight)
	}
	v.mu.Unlock()
	if fh, ok := h.(*fakeHandle); ok {
		fh.surface.events = append(fh.surface.events, "update:"+v.name)
	}
}

func (v *countingView) recorded() []uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]uint64(nil), v.heights...)
}

func snapshotAt(height uint64) *stats.Snapshot {
	return &stats.Snapshot{HasStats: true, Stats: stats.Stats{Mining: stats.MiningStats{BlockHeight: height}}}
}

func waitFor(t *testing.T, timeout time.Duration, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out after %v waiting for %s", timeout, what)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func waitClosed(t *testing.T, ch <-chan struct{}, timeout time.Duration, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(timeout):
		t.Fatalf("timed out after %v waiting for %s", timeout, what)
	}
}
