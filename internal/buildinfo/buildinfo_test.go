package buildinfo

import (
	"runtime"
	"strings"
	"testing"
)

func TestGet_FillsRuntimeFields(t *testing.T) {
	info := Get()
	if info.Version == "" {
		t.Fatal("Version is empty")
	}
	if info.GoVersion != runtime.Version() {
		t.Fatalf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
	if !strings.Contains(info.Platform, "/") {
		t.Fatalf("Platform = %q, want os/arch", info.Platform)
	}
}

func TestShortCommit(t *testing.T) {
	if got := shortCommit("0123456789abcdef"); got != "0123456789ab" {
		t.Fatalf("shortCommit = %q, want 12 chars", got)
	}
	if got := shortCommit("abc"); got != "abc" {
		t.Fatalf("shortCommit(abc) = %q, want abc", got)
	}
}
