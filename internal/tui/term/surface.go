// Package term implements the dashboard's display surface on Bubble Tea.
//
// The Bubble Tea program is the event loop: Surface.Run wraps Program.Run,
// deferred callbacks travel through Program.Send as messages and execute
// inside Update, and Handle.Quit turns into tea.Quit once the running
// callback returns. Components render with lipgloss into a panel next to a
// menu of every mounted component.
package term

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/minerdash/internal/tui"
)

var log = logrus.WithField("component", "term")

const defaultFPS = 4

// Options configures the terminal surface.
type Options struct {
	Title     string // banner text
	ThemeName string
	View      string // component selected at startup
	PrefsPath string // empty disables persisting theme and panel choices
	FPS       int    // redraw rate, 0 uses the default

	// Output replaces stdout. Headless drops keyboard input and rendering,
	// which tests use to drive the loop without a terminal.
	Output   io.Writer
	Headless bool
}

// Surface is a tui.Surface backed by a Bubble Tea program.
type Surface struct {
	model   *model
	program *tea.Program
	done    chan struct{}
	ran     atomic.Bool
}

// New builds a surface. Components and bindings must be added before Run.
func New(opts Options) (*Surface, error) {
	if opts.FPS < 0 {
		return nil, fmt.Errorf("term: fps must not be negative, got %d", opts.FPS)
	}

	m := newModel(opts)
	progOpts := []tea.ProgramOption{tea.WithoutSignalHandler()}
	if opts.Headless {
		progOpts = append(progOpts, tea.WithInput(nil), tea.WithoutRenderer())
	} else {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}

	return &Surface{
		model:   m,
		program: tea.NewProgram(m, progOpts...),
		done:    make(chan struct{}),
	}, nil
}

// Factory returns a tui.SurfaceFactory producing terminal surfaces.
func Factory(opts Options) tui.SurfaceFactory {
	return func() (tui.Surface, error) {
		return New(opts)
	}
}

// Mount implements tui.Surface.
func (s *Surface) Mount(c tui.Component) {
	s.model.mount(c)
}

// Bind implements tui.Surface.
func (s *Surface) Bind(keys []string, help string, fn func(tui.Handle)) {
	s.model.bind(keys, help, fn)
}

// Sink implements tui.Surface.
func (s *Surface) Sink() tui.Sink {
	return s
}

// Send implements tui.Sink. Program.Send returns without delivering once the
// program has finished, so a callback racing the exit is dropped.
func (s *Surface) Send(cb tui.Callback) error {
	select {
	case <-s.done:
		return tui.ErrClosed
	default:
	}
	s.program.Send(callbackMsg{fn: cb})
	return nil
}

// Run implements tui.Surface. It may be called once.
func (s *Surface) Run() error {
	if !s.ran.CompareAndSwap(false, true) {
		return errors.New("term: surface already ran")
	}
	defer close(s.done)

	log.Debug("terminal loop starting")
	if _, err := s.program.Run(); err != nil {
		return fmt.Errorf("run terminal: %w", err)
	}
	log.Debug("terminal loop finished")
	return nil
}
