// Package views renders the dashboard panels fed by stats snapshots.
package views

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	default:
		return "ERROR"
	}
}

func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 1 {
		return string(runes[:limit])
	}
	return string(runes[:limit-1]) + "…"
}

func formatCount(v uint64) string {
	if v > math.MaxInt64 {
		return humanize.Comma(math.MaxInt64)
	}
	return humanize.Comma(int64(v))
}

// formatRate renders graphs per second. SI prefixes kick in above 1000 so
// sub-unit rates do not turn into milli-graphs.
func formatRate(gps float64) string {
	if gps <= 0 {
		return "-"
	}
	if gps < 1000 {
		return fmt.Sprintf("%.2f gps", gps)
	}
	return humanize.SIWithDigits(gps, 2, "gps")
}

func formatAge(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	if now.Sub(t) < time.Second {
		return "now"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(10 * time.Millisecond).String()
}
