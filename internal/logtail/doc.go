// Package logtail reads the end of the dashboard's own log file.
//
// Read seeks backwards from the end of the file in fixed-size chunks until it
// holds the requested number of lines, so its cost depends on the tail size
// rather than the file size. At most 1 MiB is scanned; a line cut off by that
// bound is dropped.
//
// Level and Message pick fields out of logrus text-formatter lines so the log
// panel can color entries by severity:
//
//	time="2024-05-01T12:00:00.000Z" level=warning msg="stats poll failed" component=app
package logtail
