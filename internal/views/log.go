package views

import (
	"strings"

	"github.com/five82/minerdash/internal/logtail"
	"github.com/five82/minerdash/internal/stats"
	"github.com/five82/minerdash/internal/theme"
	"github.com/five82/minerdash/internal/tui"
)

// LogName is the component name of the dashboard log panel.
const LogName = "log"

const defaultLogLines = 200

// LogView shows the tail of the dashboard's own log file, refreshed with
// every stats update.
type LogView struct {
	Path  string
	Lines int // zero keeps the last 200 lines
}

// Create implements tui.View.
func (v LogView) Create() tui.Component {
	lines := v.Lines
	if lines <= 0 {
		lines = defaultLogLines
	}
	return &logPanel{path: v.Path, max: lines}
}

// Update implements tui.View.
func (LogView) Update(h tui.Handle, _ *stats.Snapshot) {
	if p, ok := h.Component(LogName).(*logPanel); ok {
		p.reload()
	}
}

type logPanel struct {
	path  string
	max   int
	lines []string
	err   error
}

func (p *logPanel) Name() string  { return LogName }
func (p *logPanel) Title() string { return "Dashboard Log" }

func (p *logPanel) reload() {
	if p.path == "" {
		return
	}
	p.lines, p.err = logtail.Read(p.path, p.max)
}

func (p *logPanel) Render(f tui.Frame) string {
	s := f.Theme.Styles()
	header := s.MutedText.Render(valueOr(p.path, "logging disabled"))
	if p.err != nil {
		return header + "\n" + s.DangerText.Render(truncate(p.err.Error(), 100))
	}
	if len(p.lines) == 0 {
		return header + "\n" + s.FaintText.Render("No log entries yet")
	}

	lines := p.lines
	if room := f.Height - 1; room > 0 && len(lines) > room {
		lines = lines[len(lines)-room:]
	}
	out := make([]string, 0, len(lines)+1)
	out = append(out, header)
	for _, line := range lines {
		out = append(out, renderLogLine(s, line, f.Width))
	}
	return strings.Join(out, "\n")
}

func renderLogLine(s theme.Styles, line string, width int) string {
	level := logtail.Level(line)
	if level == "" {
		return s.Text.Render(fitWidth(line, width))
	}

	tag := strings.ToUpper(level)
	if len(tag) > 4 {
		tag = tag[:4]
	}
	style := s.Text
	switch level {
	case "panic", "fatal", "error":
		style = s.DangerText
	case "warning":
		style = s.WarningText
	case "debug", "trace":
		style = s.FaintText
	}
	return style.Render(tag) + " " + s.Text.Render(fitWidth(logtail.Message(line), width-5))
}

func fitWidth(v string, width int) string {
	if width <= 0 {
		return v
	}
	return truncate(v, width)
}
