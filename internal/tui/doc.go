// Package tui coordinates the dashboard's three goroutines: the controller
// loop, the relay and the display surface event loop.
//
// # Architecture
//
//	operator key ──> Bind callback ──> shutdown chan ──┐
//	                                                   ▼
//	stats.Store ──TrySnapshot──> Controller.Run ──> UI mailbox ──> relay ──> Sink ──> surface loop
//	                             (every interval)   (unbounded)             (ordered)   views.Update
//
// The Controller owns the shutdown channel and a UI. The UI owns the surface
// goroutine (through a take-once join handle) and the send end of an
// unbounded, ordered mailbox. The relay is the only consumer of that mailbox
// and the only goroutine that talks to the surface sink, so views are only
// ever touched on the surface loop.
//
// # Shutdown Protocol
//
// Every path converges on a Quit message:
//
//   - the operator presses a quit key: the bound callback sends Shutdown
//     without blocking, the controller picks it up within one tick
//   - the controller's context is cancelled
//   - the surface loop exits on its own
//   - a caller invokes UI.Stop directly
//
// The relay forwards Quit as a callback that calls Handle.Quit, then closes
// the mailbox and exits. Messages queued behind Quit are dropped and later
// sends fail with ErrClosed, so no UpdateStatus can reach the surface after
// Quit. UI.Stop swaps the join handle out atomically before waiting, so the
// surface goroutine is joined at most once and a second Stop is a no-op.
//
// # Errors
//
// Every error this package can observe is a consequence of a shutdown that
// is already in progress. ErrClosed from the mailbox or the sink is dropped
// (debug logged). A failing or panicking surface is recorded in the join
// handle and logged when the UI joins it.
package tui
