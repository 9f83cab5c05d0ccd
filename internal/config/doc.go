// Package config loads the dashboard's TOML configuration.
//
// # Resolution
//
//  1. An explicit path (the --config flag) wins.
//  2. Otherwise ~/.config/minerdash/config.toml is read.
//  3. A missing file is not an error; built-in defaults apply.
//  4. Keys that are absent or blank keep their defaults.
//
// Malformed values (bad durations, unknown log levels, a tick longer than the
// refresh interval) are returned as errors so a typo never silently changes
// the dashboard's cadence.
//
// # Keys
//
//	api_bind         = "127.0.0.1:3413"   # miner stats endpoint, host:port or URL
//	stats_poll       = "2s"               # how often the miner is polled
//	refresh_interval = "1s"               # how often panels receive new stats
//	tick             = "100ms"            # controller loop granularity
//	fps              = 4                  # redraw rate for relative timestamps
//	log_file         = "~/.local/state/minerdash/minerdash.log"
//	log_level        = "info"
//	theme            = ""                 # overrides the saved theme when set
//
// Paths accept a leading ~ and are made absolute.
package config
