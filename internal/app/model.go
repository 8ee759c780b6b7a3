package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"sbsdiff/internal/clipboard"
	"sbsdiff/internal/diffview"
	"sbsdiff/internal/input"
	"sbsdiff/internal/patch"
	"sbsdiff/internal/render"
)

// Source supplies the two texts. It is called again on every reload.
type Source interface {
	Load(ctx context.Context) (input.Pair, error)
}

// Changes reports that an input changed on disk.
type Changes interface {
	Changes() <-chan string
	Errors() <-chan error
}

type Options struct {
	Path         string // picks the syntax lexer
	Color        bool
	TabWidth     int
	PatchContext int
}

type textsLoadedMsg struct {
	pair input.Pair
	err  error
}

type filesChangedMsg struct {
	path string
}

type watchErrorMsg struct {
	err error
}

type clipboardResultMsg struct {
	err error
}

type alertTickMsg struct{}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236"))
	alertStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Background(lipgloss.Color("236")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// Model is the Bubble Tea state container for the viewer.
type Model struct {
	keys    KeyMap
	session *diffview.Session
	source  Source
	changes Changes
	opts    Options

	width  int
	height int
	ready  bool

	pair   input.Pair
	res    diffview.Result
	lines  []diffview.DisplayLine
	cursor int
	view   viewport.Model

	helpOpen   bool
	alertMsg   string
	alertUntil time.Time
	loading    bool
	err        error
}

// NewModel builds a viewer over session. changes may be nil.
func NewModel(session *diffview.Session, source Source, changes Changes, opts Options) Model {
	if opts.PatchContext < 0 {
		opts.PatchContext = patch.DefaultContext
	}
	return Model{
		keys:    defaultKeyMap(),
		session: session,
		source:  source,
		changes: changes,
		opts:    opts,
		view:    viewport.New(1, 1),
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadTextsCmd(), alertTickCmd()}
	if m.changes != nil {
		cmds = append(cmds, waitForChangeCmd(m.changes))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		m.refresh()
		return m, nil

	case textsLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			slog.Error("loading inputs failed", "err", msg.err)
			m.setAlert(fmt.Sprintf("load failed: %v", msg.err))
			return m, nil
		}
		m.pair = msg.pair
		m.session.SetTexts(msg.pair.Left, msg.pair.Right)
		m.refresh()
		return m, nil

	case filesChangedMsg:
		m.setAlert("Reloaded " + msg.path)
		m.loading = true
		return m, tea.Batch(m.loadTextsCmd(), waitForChangeCmd(m.changes))

	case watchErrorMsg:
		slog.Warn("watch error", "err", msg.err)
		m.setAlert(fmt.Sprintf("watch error: %v", msg.err))
		return m, waitForChangeCmd(m.changes)

	case clipboardResultMsg:
		if msg.err != nil {
			slog.Warn("copy to clipboard failed", "err", msg.err)
			m.setAlert(fmt.Sprintf("copy failed: %v", msg.err))
			return m, nil
		}
		m.setAlert("Copied unified patch to clipboard.")
		return m, nil

	case alertTickMsg:
		if m.alertMsg != "" && !m.alertUntil.IsZero() && time.Now().After(m.alertUntil) {
			m.alertMsg = ""
			m.alertUntil = time.Time{}
		}
		return m, alertTickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.helpOpen = !m.helpOpen
		m.resize()
		m.refresh()

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-max(1, m.view.Height))

	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(max(1, m.view.Height))

	case key.Matches(msg, m.keys.Top):
		m.moveCursor(-len(m.lines))

	case key.Matches(msg, m.keys.Bottom):
		m.moveCursor(len(m.lines))

	case key.Matches(msg, m.keys.ToggleGap):
		m.toggleGapAtCursor()

	case key.Matches(msg, m.keys.ExpandAll):
		m.session.ExpandAll()
		m.refresh()

	case key.Matches(msg, m.keys.CollapseAll):
		m.session.CollapseAll()
		m.refresh()

	case key.Matches(msg, m.keys.Compact):
		m.session.SetCompact(!m.session.Compact())
		m.refresh()
		if m.session.Compact() {
			m.setAlert("Compact mode on.")
		} else {
			m.setAlert("Compact mode off.")
		}

	case key.Matches(msg, m.keys.Copy):
		if m.res.Stats.Identical() {
			m.setAlert("Texts are identical, nothing to copy.")
			return m, nil
		}
		return m, m.copyPatchCmd()

	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, m.loadTextsCmd()
	}
	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	footer := []string{m.statusLine()}
	footer = append(footer, strings.Split(m.helpText(), "\n")...)
	for i, line := range footer[1:] {
		footer[i+1] = helpStyle.Render(ansi.Truncate(line, m.width, "…"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.view.View(), strings.Join(footer, "\n"))
}

func (m Model) statusLine() string {
	if m.alertMsg != "" {
		return alertStyle.Width(m.width).Render(ansi.Truncate(m.alertMsg, m.width, "…"))
	}

	var text string
	switch {
	case m.err != nil:
		text = fmt.Sprintf("error: %v", m.err)
	case m.loading && len(m.lines) == 0:
		text = "loading..."
	default:
		compact := "off"
		if m.session.Compact() {
			compact = "on"
		}
		text = fmt.Sprintf("%s → %s | %s mode | %s | compact %s",
			m.pair.LeftName, m.pair.RightName, m.res.Mode, render.FormatStats(m.res.Stats), compact)
	}
	return statusStyle.Width(m.width).Render(ansi.Truncate(text, m.width, "…"))
}

func (m Model) helpText() string {
	if !m.helpOpen {
		return "j/k move | pgup/pgdn page | enter expand/collapse | e/E expand/collapse all | c compact | y copy patch | r reload | ? help | q quit"
	}
	return strings.Join([]string{
		"Move: j/k or up/down, pgup/pgdn or ctrl-b/ctrl-f page, g/G top/bottom",
		"Gaps: enter or space on a gap toggles it, e expands all, E collapses all, c toggles compact mode",
		"Other: y copies a unified patch to the clipboard, r reloads the inputs, ? toggles help, q quits",
	}, "\n")
}

func (m *Model) resize() {
	footerHeight := 1 + lineCount(m.helpText())
	m.view.Width = max(1, m.width)
	m.view.Height = max(1, m.height-footerHeight)
}

// refresh recomputes the display lines and redraws the viewport.
func (m *Model) refresh() {
	m.res = m.session.Result()
	m.lines = m.res.Lines()
	m.clampCursor()

	if !m.ready {
		return
	}
	if len(m.lines) == 0 {
		m.view.SetContent("Both texts are empty.")
		m.view.GotoTop()
		return
	}
	rendered := render.Split(m.res, m.lines, render.Options{
		Width:    m.view.Width,
		Color:    m.opts.Color,
		Path:     m.opts.Path,
		TabWidth: m.opts.TabWidth,
		Cursor:   m.cursor,
	})
	m.view.SetContent(strings.Join(rendered, "\n"))
	m.ensureCursorVisible()
}

func (m *Model) moveCursor(delta int) {
	if len(m.lines) == 0 {
		m.cursor = 0
		return
	}
	m.cursor += delta
	m.refresh()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.lines) {
		m.cursor = len(m.lines) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// ensureCursorVisible relies on every display line rendering to exactly one
// terminal line.
func (m *Model) ensureCursorVisible() {
	if m.view.Height <= 0 {
		return
	}
	if m.cursor < m.view.YOffset {
		m.view.SetYOffset(m.cursor)
		return
	}
	if bottom := m.view.YOffset + m.view.Height - 1; m.cursor > bottom {
		m.view.SetYOffset(m.cursor - m.view.Height + 1)
	}
}

// toggleGapAtCursor flips the gap the cursor is in, then parks the cursor on
// that gap's control line.
func (m *Model) toggleGapAtCursor() {
	if len(m.lines) == 0 {
		return
	}
	gap := m.lines[m.cursor].Gap
	if gap == (diffview.GapKey{}) {
		return
	}
	collapsed := m.session.ToggleGap(gap)
	slog.Debug("gap toggled", "start", gap.Start, "end", gap.End, "collapsed", collapsed)

	m.res = m.session.Result()
	m.lines = m.res.Lines()
	for i, line := range m.lines {
		if line.Gap == gap && line.Kind != diffview.DisplayRow {
			m.cursor = i
			break
		}
	}
	m.refresh()
}

func (m Model) loadTextsCmd() tea.Cmd {
	source := m.source
	return func() tea.Msg {
		pair, err := source.Load(context.Background())
		return textsLoadedMsg{pair: pair, err: err}
	}
}

func waitForChangeCmd(changes Changes) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case path, ok := <-changes.Changes():
			if !ok {
				return nil
			}
			return filesChangedMsg{path: path}
		case err, ok := <-changes.Errors():
			if !ok {
				return nil
			}
			return watchErrorMsg{err: err}
		}
	}
}

func (m Model) copyPatchCmd() tea.Cmd {
	rows := m.res.Rows
	oldName, newName := m.pair.LeftName, m.pair.RightName
	patchContext := m.opts.PatchContext
	return func() tea.Msg {
		out, err := patch.Unified(oldName, newName, rows, patchContext)
		if err != nil {
			return clipboardResultMsg{err: err}
		}
		return clipboardResultMsg{err: clipboard.CopyText(context.Background(), string(out))}
	}
}

func alertTickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return alertTickMsg{}
	})
}

func (m *Model) setAlert(msg string) {
	m.alertMsg = msg
	m.alertUntil = time.Now().Add(3 * time.Second)
}

func lineCount(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}
