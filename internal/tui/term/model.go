package term

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/minerdash/internal/prefs"
	"github.com/five82/minerdash/internal/theme"
	"github.com/five82/minerdash/internal/tui"
)

// callbackMsg carries a deferred callback onto the event loop.
type callbackMsg struct {
	fn tui.Callback
}

// frameMsg forces a redraw so relative timestamps keep moving.
type frameMsg time.Time

type binding struct {
	key key.Binding
	fn  func(tui.Handle)
}

// model is the Bubble Tea model behind the surface. It doubles as the
// tui.Handle given to callbacks, which all run inside Update.
type model struct {
	title       string
	theme       theme.Theme
	prefsPath   string
	frameEvery  time.Duration
	initialView string

	components []tui.Component
	byName     map[string]tui.Component
	bindings   []binding
	keys       keyMap
	help       help.Model

	selected int
	width    int
	height   int
	quitting bool
}

func newModel(opts Options) *model {
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = "Miner Dashboard"
	}
	fps := opts.FPS
	if fps == 0 {
		fps = defaultFPS
	}

	m := &model{
		title:       title,
		theme:       theme.Get(opts.ThemeName),
		prefsPath:   opts.PrefsPath,
		frameEvery:  time.Second / time.Duration(fps),
		initialView: opts.View,
		byName:      make(map[string]tui.Component),
		keys:        defaultKeyMap(),
		help:        help.New(),
	}
	m.applyHelpStyles()
	return m
}

// Component implements tui.Handle.
func (m *model) Component(name string) tui.Component {
	return m.byName[name]
}

// Quit implements tui.Handle.
func (m *model) Quit() {
	m.quitting = true
}

func (m *model) mount(c tui.Component) {
	name := c.Name()
	if _, ok := m.byName[name]; ok {
		for i, existing := range m.components {
			if existing.Name() == name {
				m.components[i] = c
			}
		}
	} else {
		m.components = append(m.components, c)
	}
	m.byName[name] = c
}

func (m *model) bind(keys []string, helpText string, fn func(tui.Handle)) {
	b := key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), helpText),
	)
	m.bindings = append(m.bindings, binding{key: b, fn: fn})
	m.keys.bound = append(m.keys.bound, b)
}

// Init implements tea.Model.
func (m *model) Init() tea.Cmd {
	m.selectName(m.initialView)
	return frameCmd(m.frameEvery)
}

// Update implements tea.Model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case callbackMsg:
		if m.quitting {
			return m, nil
		}
		msg.fn(m)
		return m, m.quitCmd()

	case tea.KeyMsg:
		if m.quitting {
			return m, nil
		}
		return m, m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case frameMsg:
		return m, frameCmd(m.frameEvery)
	}
	return m, nil
}

func (m *model) quitCmd() tea.Cmd {
	if m.quitting {
		return tea.Quit
	}
	return nil
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	for _, b := range m.bindings {
		if key.Matches(msg, b.key) {
			b.fn(m)
			return m.quitCmd()
		}
	}

	switch {
	case key.Matches(msg, m.keys.Up, m.keys.Prev):
		m.selectOffset(-1)
	case key.Matches(msg, m.keys.Down, m.keys.Next):
		m.selectOffset(1)
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = theme.Get(theme.Next(m.theme.Name))
		m.applyHelpStyles()
		m.savePrefs()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *model) selectOffset(delta int) {
	n := len(m.components)
	if n == 0 {
		return
	}
	m.selected = ((m.selected+delta)%n + n) % n
	m.savePrefs()
}

func (m *model) selectName(name string) {
	for i, c := range m.components {
		if c.Name() == name {
			m.selected = i
			return
		}
	}
}

func (m *model) current() tui.Component {
	if m.selected < 0 || m.selected >= len(m.components) {
		return nil
	}
	return m.components[m.selected]
}

func (m *model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name}
	if c := m.current(); c != nil {
		p.View = c.Name()
	}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		log.WithError(err).Warn("save prefs")
	}
}

func (m *model) applyHelpStyles() {
	s := m.theme.Styles()
	m.help.Styles.ShortKey = s.AccentText
	m.help.Styles.ShortDesc = s.MutedText
	m.help.Styles.ShortSeparator = s.FaintText
	m.help.Styles.FullKey = s.AccentText
	m.help.Styles.FullDesc = s.MutedText
	m.help.Styles.FullSeparator = s.FaintText
	m.help.Styles.Ellipsis = s.FaintText
}

// View implements tea.Model.
func (m *model) View() string {
	if m.quitting {
		return ""
	}
	s := m.theme.Styles()

	banner := s.Title.Render(m.title)
	footer := s.Footer.Render(m.help.View(m.keys))
	bodyHeight := m.height - lipgloss.Height(banner) - lipgloss.Height(footer)

	menu := m.renderMenu(s, bodyHeight)
	panel := m.renderPanel(s, m.width-lipgloss.Width(menu), bodyHeight)

	return lipgloss.JoinVertical(lipgloss.Left,
		banner,
		lipgloss.JoinHorizontal(lipgloss.Top, menu, panel),
		footer,
	)
}

func (m *model) renderMenu(s theme.Styles, height int) string {
	items := make([]string, 0, len(m.components))
	for i, c := range m.components {
		style := s.MenuItem
		if i == m.selected {
			style = s.MenuSelected
		}
		items = append(items, style.Render(c.Title()))
	}
	if len(items) == 0 {
		items = append(items, s.MutedText.Render("(empty)"))
	}

	style := s.Panel
	if height > 2 {
		style = style.Height(height - 2)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}

func (m *model) renderPanel(s theme.Styles, width, height int) string {
	c := m.current()
	if c == nil {
		return s.Panel.Render(s.MutedText.Render("Nothing to show"))
	}

	style := s.FocusedPanel
	// Border and horizontal padding take two columns each.
	frame := tui.Frame{Theme: m.theme}
	if width > 4 {
		style = style.Width(width - 2)
		frame.Width = width - 4
	}
	if height > 2 {
		style = style.Height(height - 2).MaxHeight(height)
		frame.Height = height - 3
	}

	body := s.PanelTitle.Render(c.Title()) + "\n" + c.Render(frame)
	return style.Render(body)
}

func frameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
