package views

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/five82/minerdash/internal/stats"
	"github.com/five82/minerdash/internal/theme"
	"github.com/five82/minerdash/internal/tui"
)

// MiningName is the component name of the mining status panel.
const MiningName = "mining"

// MiningView shows pool connectivity, the current job and every solver.
type MiningView struct {
	Now func() time.Time // nil uses time.Now
}

// Create implements tui.View.
func (v MiningView) Create() tui.Component {
	now := v.Now
	if now == nil {
		now = time.Now
	}
	return &miningPanel{now: now}
}

// Update implements tui.View.
func (MiningView) Update(h tui.Handle, snap *stats.Snapshot) {
	if p, ok := h.Component(MiningName).(*miningPanel); ok {
		p.snap = snap
	}
}

type miningPanel struct {
	snap *stats.Snapshot
	now  func() time.Time
}

func (p *miningPanel) Name() string  { return MiningName }
func (p *miningPanel) Title() string { return "Mining" }

func (p *miningPanel) Render(f tui.Frame) string {
	styles := f.Theme.Styles()
	snap := p.snap
	if snap == nil || !snap.HasStats {
		return p.renderWaiting(styles, snap)
	}

	now := p.now()
	sections := []string{
		p.renderConnection(styles, snap.Stats.Client, now),
		p.renderJob(styles, snap.Stats.Mining),
		p.renderDevices(f, styles, snap.Stats.Mining.Devices, now),
	}
	if snap.LastError != nil {
		sections = append(sections, renderPollError(styles, snap, f.Width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (p *miningPanel) renderWaiting(s theme.Styles, snap *stats.Snapshot) string {
	if snap == nil || snap.LastError == nil {
		return s.WarningText.Bold(true).Render("Waiting for miner stats...")
	}
	last := "soon"
	if !snap.LastUpdated.IsZero() {
		last = snap.LastUpdated.Format("15:04:05")
	}
	parts := []string{
		s.DangerText.Render("MINER " + classifyConnectionError(snap.LastError)),
		s.WarningText.Bold(true).Render("Retrying..."),
		s.MutedText.Render(last),
	}
	return strings.Join(parts, "  ") + "\n" + s.FaintText.Render(truncate(snap.LastError.Error(), 100))
}

func (p *miningPanel) renderConnection(s theme.Styles, c stats.ClientStats, now time.Time) string {
	status := s.SuccessText.Render("● Connected")
	if !c.Connected {
		status = s.DangerText.Render("● Disconnected")
	}
	if detail := strings.TrimSpace(c.ConnectionStatus); detail != "" {
		status += " " + s.MutedText.Render(detail)
	}

	received := valueOr(c.LastMessageReceived, "-")
	if !c.LastMessageAt.IsZero() {
		received += " " + s.FaintText.Render("("+formatAge(c.LastMessageAt, now)+")")
	}

	return strings.Join([]string{
		s.PanelTitle.Render("Connection"),
		field(s, "Server", s.Text.Render(valueOr(c.ServerURL, "-"))),
		field(s, "Status", status),
		field(s, "Last sent", s.Text.Render(valueOr(c.LastMessageSent, "-"))),
		field(s, "Last received", received),
	}, "\n")
}

func (p *miningPanel) renderJob(s theme.Styles, m stats.MiningStats) string {
	rejected := s.MutedText
	if m.SharesRejected > 0 {
		rejected = s.DangerText
	}
	shares := s.Text.Render(formatCount(m.SharesAccepted)+" accepted") + s.MutedText.Render(" / ") +
		rejected.Render(formatCount(m.SharesRejected)+" rejected")

	return strings.Join([]string{
		"",
		s.PanelTitle.Render("Mining"),
		field(s, "Block height", s.Text.Render(formatCount(m.BlockHeight))),
		field(s, "Target diff", s.Text.Render(formatCount(m.TargetDifficulty))),
		field(s, "Network diff", s.Text.Render(formatCount(m.NetworkDifficulty))),
		field(s, "Combined rate", s.AccentText.Render(formatRate(m.CombinedGPS))),
		field(s, "Shares", shares),
		field(s, "Devices", s.Text.Render(fmt.Sprintf("%d of %d active", m.ActiveDevices(), len(m.Devices)))),
	}, "\n")
}

func (p *miningPanel) renderDevices(f tui.Frame, s theme.Styles, devices []stats.SolverStats, now time.Time) string {
	if len(devices) == 0 {
		return "\n" + s.MutedText.Render("No solver devices reported")
	}

	errored := make([]bool, len(devices))
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.FaintText).
		Headers("ID", "Device", "Solver", "Edge", "Rate", "Iteration", "Iterations", "Solutions", "Last solution").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return s.AccentText.Bold(true).Padding(0, 1)
			case row >= 0 && row < len(errored) && errored[row]:
				return s.DangerText.Padding(0, 1)
			default:
				return s.Text.Padding(0, 1)
			}
		})

	for i, d := range devices {
		errored[i] = d.Errored
		rate := formatRate(d.GPS())
		if d.Errored {
			rate = "ERRORED"
		}
		t.Row(
			strconv.Itoa(d.DeviceID),
			truncate(valueOr(d.DeviceName, "-"), 24),
			valueOr(d.SolverName, "-"),
			strconv.Itoa(d.EdgeBits),
			rate,
			formatDuration(d.IterationTime()),
			formatCount(d.Iterations),
			formatCount(d.Solutions),
			formatAge(d.LastSolutionTime, now),
		)
	}
	if f.Width > 0 {
		t.Width(f.Width)
	}
	return "\n" + t.String()
}

func renderPollError(s theme.Styles, snap *stats.Snapshot, width int) string {
	limit := 80
	if width > 0 && width < 100 {
		limit = 40
	}
	msg := fmt.Sprintf("%s (%d failed polls, showing stats from %s)",
		truncate(snap.LastError.Error(), limit),
		snap.ConsecutiveFailures,
		snap.LastUpdated.Format("15:04:05"))
	return "\n" + s.DangerText.Render("ERROR ") + s.DangerText.UnsetBold().Render(msg)
}

func field(s theme.Styles, label, value string) string {
	return s.MutedText.Render(fmt.Sprintf("%-14s", label+":")) + " " + value
}

func valueOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
