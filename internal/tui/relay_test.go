package tui

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type recordingSink struct {
	mu     sync.Mutex
	cbs    []Callback
	closed bool
}

func (s *recordingSink) Send(cb Callback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.cbs = append(s.cbs, cb)
	return nil
}

func (s *recordingSink) callbacks() []Callback {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Callback(nil), s.cbs...)
}

type recordingHandle struct {
	quits int
}

func (h *recordingHandle) Component(name string) Component { return staticComponent(name) }
func (h *recordingHandle) Quit()                           { h.quits++ }

func TestRelay_ForwardsUpdatesInOrderBeforeQuit(t *testing.T) {
	inbox := newMailbox[Message]()
	sink := &recordingSink{}
	view := &countingView{name: "mining"}
	r := &relay{inbox: inbox, sink: sink, views: []View{view}}

	for h := uint64(1); h <= 3; h++ {
		_ = inbox.Send(UpdateStatus{Snapshot: snapshotAt(h)})
	}
	_ = inbox.Send(Quit{})
	_ = inbox.Send(UpdateStatus{Snapshot: snapshotAt(99)})

	r.run()

	cbs := sink.callbacks()
	if len(cbs) != 4 {
		t.Fatalf("forwarded %d callbacks, want 4 (3 updates + quit)", len(cbs))
	}

	h := &recordingHandle{}
	for i, cb := range cbs {
		cb(h)
		if i < 3 && h.quits != 0 {
			t.Fatalf("callback %d quit before all updates ran", i)
		}
	}
	if h.quits != 1 {
		t.Fatalf("quits = %d, want 1", h.quits)
	}

	got := view.recorded()
	want := []uint64{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("view heights = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("view heights = %v, want %v", got, want)
		}
	}
}

func TestRelay_RejectsMessagesAfterQuit(t *testing.T) {
	inbox := newMailbox[Message]()
	sink := &recordingSink{}
	r := &relay{inbox: inbox, sink: sink, views: []View{&countingView{name: "mining"}}}

	done := make(chan struct{})
	go func() {
		r.run()
		close(done)
	}()

	_ = inbox.Send(Quit{})
	waitClosed(t, done, time.Second, "relay exit")

	if err := inbox.Send(UpdateStatus{Snapshot: snapshotAt(5)}); !errors.Is(err, ErrClosed) {
		t.Fatalf("Send after quit = %v, want ErrClosed", err)
	}
	if n := len(sink.callbacks()); n != 1 {
		t.Fatalf("forwarded %d callbacks, want only the quit callback", n)
	}
}

func TestRelay_ClosedSinkIsNotFatal(t *testing.T) {
	inbox := newMailbox[Message]()
	sink := &recordingSink{closed: true}
	r := &relay{inbox: inbox, sink: sink}

	_ = inbox.Send(UpdateStatus{Snapshot: snapshotAt(1)})
	_ = inbox.Send(UpdateStatus{Snapshot: snapshotAt(2)})
	_ = inbox.Send(Quit{})

	done := make(chan struct{})
	go func() {
		r.run()
		close(done)
	}()
	waitClosed(t, done, time.Second, "relay exit with closed sink")
}

func TestRelay_ExitsWhenMailboxClosed(t *testing.T) {
	inbox := newMailbox[Message]()
	r := &relay{inbox: inbox, sink: &recordingSink{}}

	done := make(chan struct{})
	go func() {
		r.run()
		close(done)
	}()
	inbox.Close()
	waitClosed(t, done, time.Second, "relay exit on closed mailbox")
}
