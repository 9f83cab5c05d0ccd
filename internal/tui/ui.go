package tui

import (
	"fmt"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "tui")

var defaultQuitKeys = []string{"q", "ctrl+c"}

// UIOptions configure a UI.
type UIOptions struct {
	Surface  SurfaceFactory
	Views    []View
	QuitKeys []string // empty uses q and ctrl+c
}

// UI owns the display surface goroutine and the relay that feeds it.
type UI struct {
	tx     *mailbox[Message]
	handle atomic.Pointer[joinHandle]
}

type joinHandle struct {
	done chan struct{}
	err  error
}

// NewUI builds the surface, mounts every view, binds the quit keys to send
// Shutdown on shutdown, and starts the surface loop and relay goroutines.
func NewUI(shutdown chan<- ControllerMessage, opts UIOptions) (*UI, error) {
	if opts.Surface == nil {
		return nil, fmt.Errorf("ui requires a display surface")
	}
	surface, err := opts.Surface()
	if err != nil {
		return nil, fmt.Errorf("create display surface: %w", err)
	}

	for _, v := range opts.Views {
		surface.Mount(v.Create())
	}

	keys := opts.QuitKeys
	if len(keys) == 0 {
		keys = defaultQuitKeys
	}
	surface.Bind(keys, "Quit", func(Handle) {
		requestShutdown(shutdown)
	})

	inbox := newMailbox[Message]()
	r := &relay{
		inbox: inbox,
		sink:  surface.Sink(),
		views: append([]View(nil), opts.Views...),
	}

	h := &joinHandle{done: make(chan struct{})}
	go func() {
		defer close(h.done)
		h.err = runSurface(surface)
	}()
	go r.run()

	ui := &UI{tx: inbox}
	ui.handle.Store(h)
	return ui, nil
}

// Send enqueues msg for the relay. It returns ErrClosed after the relay has
// processed Quit.
func (u *UI) Send(msg Message) error {
	return u.tx.Send(msg)
}

// Done is closed when the surface loop exits. It returns nil once the loop
// has been joined.
func (u *UI) Done() <-chan struct{} {
	if h := u.handle.Load(); h != nil {
		return h.done
	}
	return nil
}

// Stop sends Quit and waits for the surface loop to exit. Calling Stop again
// does nothing.
func (u *UI) Stop() {
	if err := u.tx.Send(Quit{}); err != nil {
		log.WithError(err).Debug("quit not delivered")
	}
	u.join()
}

func (u *UI) join() {
	h := u.handle.Swap(nil)
	if h == nil {
		return
	}
	<-h.done
	if h.err != nil {
		log.WithError(h.err).Warn("display surface exited with error")
	}
}

func runSurface(s Surface) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("display surface panicked: %v", r)
		}
	}()
	return s.Run()
}

// requestShutdown never blocks the surface loop. A pending Shutdown already
// covers repeated presses.
func requestShutdown(ch chan<- ControllerMessage) {
	select {
	case ch <- Shutdown:
	default:
	}
}
