package views

import (
	"errors"
	"testing"
	"time"
)

func TestClassifyConnectionError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{errors.New("dial tcp 127.0.0.1:3413: connect: connection refused"), "OFFLINE"},
		{errors.New("dial tcp: lookup rig.local: no such host"), "HOST NOT FOUND"},
		{errors.New("context deadline exceeded"), "TIMEOUT"},
		{errors.New("i/o timeout"), "TIMEOUT"},
		{errors.New("stats api: 500 Internal Server Error"), "ERROR"},
	}
	for _, tt := range tests {
		if got := classifyConnectionError(tt.err); got != tt.want {
			t.Fatalf("classifyConnectionError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"  padded  ", 10, "padded"},
		{"exactly10!", 10, "exactly10!"},
		{"a longer value", 5, "a lo…"},
		{"héllo wörld", 4, "hél…"},
		{"abc", 1, "a"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestFormatCount(t *testing.T) {
	if got := formatCount(1234567); got != "1,234,567" {
		t.Fatalf("formatCount = %q, want 1,234,567", got)
	}
	if got := formatCount(0); got != "0" {
		t.Fatalf("formatCount(0) = %q, want 0", got)
	}
}

func TestFormatRate(t *testing.T) {
	tests := []struct {
		gps  float64
		want string
	}{
		{0, "-"},
		{-1, "-"},
		{1.5, "1.50 gps"},
		{999.999, "1000.00 gps"},
		{2500, "2.5 kgps"},
	}
	for _, tt := range tests {
		if got := formatRate(tt.gps); got != tt.want {
			t.Fatalf("formatRate(%v) = %q, want %q", tt.gps, got, tt.want)
		}
	}
}

func TestFormatAge(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	if got := formatAge(time.Time{}, now); got != "never" {
		t.Fatalf("formatAge(zero) = %q, want never", got)
	}
	if got := formatAge(now.Add(-500*time.Millisecond), now); got != "now" {
		t.Fatalf("formatAge(500ms) = %q, want now", got)
	}
	if got := formatAge(now.Add(-5*time.Minute), now); got != "5 minutes ago" {
		t.Fatalf("formatAge(5m) = %q, want 5 minutes ago", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "-"},
		{250 * time.Millisecond, "250ms"},
		{1234 * time.Millisecond, "1.23s"},
		{90 * time.Second, "1m30s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Fatalf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
