package views

import (
	"strings"
	"time"

	"github.com/five82/minerdash/internal/buildinfo"
	"github.com/five82/minerdash/internal/stats"
	"github.com/five82/minerdash/internal/tui"
)

// VersionName is the component name of the version panel.
const VersionName = "version"

// VersionView shows build details and how fresh the stats are.
type VersionView struct {
	Info      buildinfo.Info
	StartedAt time.Time        // zero uses the time Create is called
	Now       func() time.Time // nil uses time.Now
}

// Create implements tui.View.
func (v VersionView) Create() tui.Component {
	now := v.Now
	if now == nil {
		now = time.Now
	}
	started := v.StartedAt
	if started.IsZero() {
		started = now()
	}
	return &versionPanel{info: v.Info, started: started, now: now}
}

// Update implements tui.View.
func (VersionView) Update(h tui.Handle, snap *stats.Snapshot) {
	p, ok := h.Component(VersionName).(*versionPanel)
	if !ok || snap == nil {
		return
	}
	p.lastUpdated = snap.LastUpdated
	p.failures = snap.ConsecutiveFailures
	p.offline = snap.IsOffline()
}

type versionPanel struct {
	info    buildinfo.Info
	started time.Time
	now     func() time.Time

	lastUpdated time.Time
	failures    int
	offline     bool
}

func (p *versionPanel) Name() string  { return VersionName }
func (p *versionPanel) Title() string { return "Version Info" }

func (p *versionPanel) Render(f tui.Frame) string {
	s := f.Theme.Styles()
	now := p.now()

	status := s.SuccessText.Render("online")
	switch {
	case p.lastUpdated.IsZero():
		status = s.WarningText.Render("waiting")
	case p.offline:
		status = s.DangerText.Render("offline")
	}

	lines := []string{
		s.PanelTitle.Render("Dashboard"),
		field(s, "Version", s.Text.Render(valueOr(p.info.Version, "dev"))),
		field(s, "Commit", s.Text.Render(valueOr(p.info.Commit, "unknown"))),
		field(s, "Built", s.Text.Render(valueOr(p.info.Date, "unknown"))),
		field(s, "Go", s.Text.Render(valueOr(p.info.GoVersion, "unknown"))),
		field(s, "Platform", s.Text.Render(valueOr(p.info.Platform, "unknown"))),
		field(s, "Uptime", s.Text.Render(formatDuration(now.Sub(p.started).Truncate(time.Second)))),
		"",
		s.PanelTitle.Render("Stats feed"),
		field(s, "Miner", status),
		field(s, "Updated", s.Text.Render(formatAge(p.lastUpdated, now))),
	}
	if p.failures > 0 {
		lines = append(lines, field(s, "Failed polls", s.DangerText.Render(formatCount(uint64(p.failures)))))
	}
	return strings.Join(lines, "\n")
}
