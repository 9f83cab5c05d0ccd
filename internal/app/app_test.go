package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/minerdash/internal/buildinfo"
	"github.com/five82/minerdash/internal/config"
	"github.com/five82/minerdash/internal/views"
)

func TestApplyOverrides(t *testing.T) {
	cfg := config.Default()
	applyOverrides(&cfg, Options{APIBind: " rig:9000 ", PollEvery: 5 * time.Second, Theme: "Slate"})

	if cfg.APIBind != "rig:9000" {
		t.Fatalf("APIBind = %q, want rig:9000", cfg.APIBind)
	}
	if cfg.StatsPoll != 5*time.Second {
		t.Fatalf("StatsPoll = %v, want 5s", cfg.StatsPoll)
	}
	if cfg.Theme != "Slate" {
		t.Fatalf("Theme = %q, want Slate", cfg.Theme)
	}

	before := config.Default()
	after := before
	applyOverrides(&after, Options{})
	if after != before {
		t.Fatalf("empty overrides changed config: %+v", after)
	}
}

func TestSetupLogging_WritesToFile(t *testing.T) {
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(logrus.InfoLevel)
	})

	path := filepath.Join(t.TempDir(), "nested", "minerdash.log")
	closeLog, err := setupLogging(path, logrus.DebugLevel)
	if err != nil {
		t.Fatalf("setupLogging: %v", err)
	}
	log.WithField("probe", 42).Debug("hello from test")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	got := string(data)
	for _, want := range []string{"hello from test", "component=app", "probe=42", "level=debug"} {
		if !strings.Contains(got, want) {
			t.Fatalf("log file missing %q:\n%s", want, got)
		}
	}
}

func TestSetupLogging_UnwritablePathDiscards(t *testing.T) {
	t.Cleanup(func() { logrus.SetOutput(os.Stderr) })

	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	closeLog, err := setupLogging(filepath.Join(blocker, "sub", "x.log"), logrus.InfoLevel)
	if err == nil {
		t.Fatal("setupLogging should fail when the directory cannot be created")
	}
	closeLog()
}

func TestDashboardViews(t *testing.T) {
	vs := dashboardViews(buildinfo.Info{Version: "v9"}, "")
	if len(vs) != 3 {
		t.Fatalf("views = %d, want 3", len(vs))
	}
	if got := vs[0].Create().Name(); got != views.MiningName {
		t.Fatalf("first view = %q, want %q", got, views.MiningName)
	}
	if got := vs[1].Create().Name(); got != views.VersionName {
		t.Fatalf("second view = %q, want %q", got, views.VersionName)
	}
	if got := vs[2].Create().Name(); got != views.LogName {
		t.Fatalf("third view = %q, want %q", got, views.LogName)
	}
}
