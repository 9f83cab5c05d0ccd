package tui

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestUI(t *testing.T, views ...View) (*UI, *fakeSurface, chan ControllerMessage) {
	t.Helper()
	f := newFakeSurface()
	ch := make(chan ControllerMessage, 1)
	ui, err := NewUI(ch, UIOptions{Surface: f.factory(), Views: views})
	if err != nil {
		t.Fatalf("NewUI returned error: %v", err)
	}
	return ui, f, ch
}

func TestNewUI_RequiresSurface(t *testing.T) {
	_, err := NewUI(make(chan ControllerMessage, 1), UIOptions{})
	if err == nil {
		t.Fatal("NewUI returned nil error, want error for missing surface")
	}
}

func TestNewUI_WrapsFactoryError(t *testing.T) {
	boom := errors.New("no tty")
	_, err := NewUI(make(chan ControllerMessage, 1), UIOptions{
		Surface: func() (Surface, error) { return nil, boom },
	})
	if !errors.Is(err, boom) || !strings.Contains(err.Error(), "create display surface") {
		t.Fatalf("NewUI error = %v, want wrapped %v", err, boom)
	}
}

func TestNewUI_MountsViewsAndBindsQuitKeys(t *testing.T) {
	ui, f, _ := newTestUI(t, &countingView{name: "mining"}, &countingView{name: "version"})
	defer ui.Stop()

	for _, name := range []string{"mining", "version"} {
		if f.components[name] == nil {
			t.Fatalf("component %q not mounted", name)
		}
	}
	for _, key := range defaultQuitKeys {
		if f.bindings[key] == nil {
			t.Fatalf("quit key %q not bound", key)
		}
	}
}

func TestUI_UpdatesReachViewsOnSurfaceLoop(t *testing.T) {
	view := &countingView{name: "mining"}
	ui, f, _ := newTestUI(t, view)

	for h := uint64(1); h <= 5; h++ {
		if err := ui.Send(UpdateStatus{Snapshot: snapshotAt(h)}); err != nil {
			t.Fatalf("Send returned error: %v", err)
		}
	}
	ui.Stop()

	got := view.recorded()
	if len(got) != 5 {
		t.Fatalf("view received %d updates, want 5", len(got))
	}
	for i, h := range got {
		if h != uint64(i+1) {
			t.Fatalf("update %d carried height %d, want %d", i, h, i+1)
		}
	}
	if last := f.events[len(f.events)-1]; last != "quit" {
		t.Fatalf("last surface event = %q, want quit", last)
	}
	view.mu.Lock()
	missing := view.missing
	view.mu.Unlock()
	if missing {
		t.Fatal("view could not find its component through the handle")
	}
}

func TestUI_StopIsIdempotent(t *testing.T) {
	ui, f, _ := newTestUI(t, &countingView{name: "mining"})

	ui.Stop()
	if ui.Done() != nil {
		t.Fatal("Done() should be nil after the surface was joined")
	}
	waitClosed(t, f.done, time.Second, "surface exit")

	stopped := make(chan struct{})
	go func() {
		ui.Stop()
		close(stopped)
	}()
	waitClosed(t, stopped, time.Second, "second Stop")

	if got := f.quits.Load(); got != 1 {
		t.Fatalf("surface quit %d times, want 1", got)
	}
}

func TestUI_StopAfterSurfaceCrash(t *testing.T) {
	ui, f, _ := newTestUI(t, &countingView{name: "mining"})

	close(f.crash)
	waitClosed(t, ui.Done(), time.Second, "crashed surface exit")

	stopped := make(chan struct{})
	go func() {
		ui.Stop()
		close(stopped)
	}()
	waitClosed(t, stopped, time.Second, "Stop on crashed surface")

	// The relay retires after forwarding Quit to the dead sink.
	waitFor(t, time.Second, "mailbox close", func() bool {
		return errors.Is(ui.Send(UpdateStatus{}), ErrClosed)
	})
}

func TestUI_QuitKeySendsShutdownWithoutBlocking(t *testing.T) {
	ui, f, ch := newTestUI(t)

	f.Press("q")
	f.Press("q")
	f.Press("ctrl+c")

	select {
	case msg := <-ch:
		if msg != Shutdown {
			t.Fatalf("controller message = %v, want shutdown", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("quit key did not send Shutdown")
	}

	// The loop must still be responsive after the extra presses.
	stopped := make(chan struct{})
	go func() {
		ui.Stop()
		close(stopped)
	}()
	waitClosed(t, stopped, time.Second, "Stop after repeated quit keys")
}

func TestUI_SendAfterStopReturnsErrClosed(t *testing.T) {
	ui, _, _ := newTestUI(t)
	ui.Stop()
	waitFor(t, time.Second, "mailbox close", func() bool {
		return errors.Is(ui.Send(Quit{}), ErrClosed)
	})
}
