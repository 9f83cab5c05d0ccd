// Package app is the composition root of the dashboard.
//
// # Startup
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()        TOML config, CLI overrides applied
//	       ├─────> setupLogging()       logrus to the log file
//	       ├─────> minerapi.NewClient() HTTP stats client
//	       ├─────> prefs.Load()         saved theme and panel
//	       ├─────> StartPoller()        producer goroutine writing stats.Store
//	       ├─────> tui.NewController()  terminal surface, views, relay
//	       └─────> Controller.Run()     blocks until shutdown
//
// # Polling
//
// The poller fetches immediately and then every stats_poll. Each consecutive
// failure doubles the wait, capped at 30 seconds, and a success resets it.
// Failures are recorded in the store (the previous stats stay visible) and
// logged at warn level.
//
// The controller reads the store independently at refresh_interval, so a
// slow miner never stalls the display.
//
// # Errors
//
// Configuration, client and surface construction errors are returned from
// Run. Poll failures never are. A log file that cannot be opened disables
// logging and is reported on stderr once the terminal has been released.
//
// # Shutdown
//
// Run returns after the controller has stopped the UI and joined the
// surface goroutine, then cancels and waits for the poller.
package app
