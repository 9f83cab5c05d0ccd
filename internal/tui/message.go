package tui

import "github.com/five82/minerdash/internal/stats"

// Message is sent to the UI handle and consumed exactly once by the relay.
type Message interface {
	isMessage()
}

// UpdateStatus asks every view to redraw from Snapshot.
type UpdateStatus struct {
	Snapshot *stats.Snapshot
}

// Quit asks the display surface to terminate. The relay stops after it.
type Quit struct{}

func (UpdateStatus) isMessage() {}
func (Quit) isMessage()         {}

// ControllerMessage is sent to the Controller by operator input handlers.
type ControllerMessage int

const (
	// Shutdown requests an orderly stop of the dashboard.
	Shutdown ControllerMessage = iota
)

func (m ControllerMessage) String() string {
	switch m {
	case Shutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}
