package tui

// relay funnels messages from the UI mailbox onto the surface loop. It is
// the only goroutine that talks to the sink.
type relay struct {
	inbox *mailbox[Message]
	sink  Sink
	views []View
}

func (r *relay) run() {
	defer r.inbox.Close()

	for {
		msg, ok := r.inbox.Recv()
		if !ok {
			return
		}
		switch m := msg.(type) {
		case UpdateStatus:
			r.forward(r.updateCallback(m), "status update")
		case Quit:
			r.forward(func(h Handle) { h.Quit() }, "quit")
			log.Debug("relay stopped")
			return
		}
	}
}

func (r *relay) updateCallback(m UpdateStatus) Callback {
	views := r.views
	snap := m.Snapshot
	return func(h Handle) {
		for _, v := range views {
			v.Update(h, snap)
		}
	}
}

// forward enqueues cb on the surface. A closed sink means the surface is
// already gone, so the error is dropped.
func (r *relay) forward(cb Callback, what string) {
	if err := r.sink.Send(cb); err != nil {
		log.WithError(err).Debugf("dropped %s", what)
	}
}
