// Package stats holds the mining rig statistics shown by minerdash.
//
// # Overview
//
// The Store is the shared, lock-guarded resource that sits between the
// producer (the stats poller in package app) and the dashboard controller.
// The producer is the only writer. The controller only ever reads, and it
// reads through TrySnapshot so a writer holding the lock never stalls the
// controller's shutdown check.
//
//	Producer (poller):             Consumer (tui.Controller):
//	┌────────────────┐            ┌──────────────────────┐
//	│ FetchStats()   │            │ every tick:          │
//	│      ↓         │            │   TrySnapshot()      │
//	│ store.Update() │───────────→│   UpdateStatus(snap) │
//	│      ↓         │  (RWMutex) │                      │
//	│  repeat...     │            │                      │
//	└────────────────┘            └──────────────────────┘
//
// # Snapshots
//
// Snapshot and TrySnapshot return a pointer to a private copy. Nothing
// writes to that copy once it has been returned, so the pointer can travel
// through the UI mailbox and be read by every view on the render goroutine
// without further locking. Device slices are cloned and errors are wrapped
// so no state is shared with the Store.
//
// # Update Semantics
//
//	store.Update(stats, nil)  // replace stats, clear LastError, reset failures
//	store.Update(nil, err)    // keep previous stats, record err, count failure
//
// The zero Store is ready to use; Snapshot returns a zero Snapshot until the
// first Update.
package stats
