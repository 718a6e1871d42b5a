// Package tui is the terminal front end: a splash screen followed by a
// sidebar of notes and a detail pane that toggles between viewing and
// editing.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	progressbar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	log "github.com/sirupsen/logrus"

	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/controller"
	apperrors "github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/errors"
	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/progress"
	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/types"
)

const (
	loadingText     = "Loading your notes..."
	noSelectionText = "Select a note to view"
	noSelectionHint = "Choose a note from the sidebar or create a new one"
	emptyNoteHint   = "This note is empty. Press e to add content."

	defaultWidth   = 100
	defaultHeight  = 30
	maxSidebarCols = 36
)

type screen int

const (
	screenSplash screen = iota
	screenMain
)

type focus int

const (
	focusList focus = iota
	focusSearch
	focusTitle
	focusContent
)

type splashTickMsg struct{}

type splashDoneMsg struct{}

type opDoneMsg struct {
	view controller.View
	err  error
}

// ProgressMsg carries busy sequence progress into the update loop
type ProgressMsg struct {
	Percent int
}

// ReloadMsg tells the model the collection was reloaded from storage
type ReloadMsg struct{}

// Options tune the model
type Options struct {
	Splash     progress.Sequence
	SkipSplash bool
	// MarkdownStyle overrides the glamour style picked from the theme
	MarkdownStyle string
}

// Model is the bubbletea model for the whole application
type Model struct {
	ctx     context.Context
	session *controller.Session
	opts    Options
	keys    keyMap
	help    help.Model
	styles  styles

	screen    screen
	splash    *progress.Counter
	splashBar progressbar.Model
	busyBar   progressbar.Model

	search     textinput.Model
	titleInput textinput.Model
	content    textarea.Model
	focus      focus

	view      controller.View
	cursor    int
	busy      bool
	percent   int
	status    string
	statusErr bool

	width  int
	height int
}

// NewModel builds the model around an already loaded session
func NewModel(ctx context.Context, session *controller.Session, opts Options) Model {
	search := textinput.New()
	search.Placeholder = "Search notes..."
	search.Prompt = "/ "

	title := textinput.New()
	title.Placeholder = "Note title..."
	title.Prompt = ""

	content := textarea.New()
	content.Placeholder = "Start writing your note..."
	content.ShowLineNumbers = false
	content.CharLimit = 0
	content.MaxHeight = 0

	m := Model{
		ctx:        ctx,
		session:    session,
		opts:       opts,
		keys:       defaultKeyMap(),
		help:       help.New(),
		screen:     screenMain,
		splash:     progress.NewCounter(opts.Splash),
		splashBar:  progressbar.New(progressbar.WithDefaultGradient()),
		busyBar:    progressbar.New(progressbar.WithDefaultGradient()),
		search:     search,
		titleInput: title,
		content:    content,
		view:       session.Snapshot(),
	}
	if !opts.SkipSplash {
		m.screen = screenSplash
	}
	m.styles = newStyles(m.view.Theme)
	m.resize(defaultWidth, defaultHeight)
	return m
}

func splashTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg { return splashTickMsg{} })
}

// Init starts the splash sequence
func (m Model) Init() tea.Cmd {
	if m.screen != screenSplash {
		return nil
	}
	return splashTick(m.opts.Splash.Interval)
}

// Update handles a message
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case splashTickMsg:
		if _, done := m.splash.Advance(); !done {
			return m, splashTick(m.opts.Splash.Interval)
		}
		if m.opts.Splash.Settle <= 0 {
			return m, func() tea.Msg { return splashDoneMsg{} }
		}
		return m, tea.Tick(m.opts.Splash.Settle, func(time.Time) tea.Msg { return splashDoneMsg{} })

	case splashDoneMsg:
		m.screen = screenMain
		return m, nil

	case ProgressMsg:
		m.percent = msg.Percent
		return m, nil

	case ReloadMsg:
		m.applyView(m.session.Refresh())
		return m, nil

	case opDoneMsg:
		m.busy = false
		m.percent = 0
		m.applyView(msg.view)
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.status, m.statusErr = msg.view.Status, false
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.screen == screenSplash {
			return m, nil
		}
		switch m.focus {
		case focusSearch:
			return m.updateSearch(msg)
		case focusTitle, focusContent:
			return m.updateEditor(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Theme):
		m.applyView(m.session.ToggleTheme())
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.focus = focusSearch
		return m, m.search.Focus()
	}

	// Everything below changes notes or selection
	if m.busy {
		return m, nil
	}
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Up):
		return m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		return m.moveCursor(1)

	case key.Matches(msg, m.keys.New):
		return m.startOp(m.session.CreateNote)

	case key.Matches(msg, m.keys.Edit):
		if m.view.Selected == nil {
			return m.moveCursor(0)
		}
		v, err := m.session.StartEdit()
		m.applyView(v)
		if err != nil {
			m.setError(err)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if len(m.view.Notes) == 0 {
			return m, nil
		}
		id := m.view.Notes[m.cursor].ID
		return m.startOp(func(ctx context.Context) (controller.View, error) {
			return m.session.DeleteNote(ctx, id)
		})
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Confirm) || key.Matches(msg, m.keys.Cancel) {
		m.search.Blur()
		m.focus = focusList
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyView(m.session.SetSearch(m.search.Value()))
	return m, cmd
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Inputs are disabled while the save runs
	if m.busy {
		return m, nil
	}
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Save):
		return m.startOp(m.session.Save)

	case key.Matches(msg, m.keys.Cancel):
		v, err := m.session.Cancel()
		m.applyView(v)
		if err != nil {
			m.setError(err)
		}
		return m, nil

	case key.Matches(msg, m.keys.Field):
		if m.focus == focusTitle {
			m.focus = focusContent
			m.titleInput.Blur()
			return m, m.content.Focus()
		}
		m.focus = focusTitle
		m.content.Blur()
		return m, m.titleInput.Focus()

	case key.Matches(msg, m.keys.PrevNote):
		return m.moveCursor(-1)

	case key.Matches(msg, m.keys.NextNote):
		return m.moveCursor(1)
	}

	var cmd tea.Cmd
	var err error
	if m.focus == focusTitle {
		m.titleInput, cmd = m.titleInput.Update(msg)
		err = m.session.SetTitle(m.titleInput.Value())
	} else {
		m.content, cmd = m.content.Update(msg)
		err = m.session.SetContent(m.content.Value())
	}
	if err != nil {
		m.setError(err)
	}
	return m, cmd
}

// moveCursor selects the note delta rows away. A pending edit is committed
// by the session before the selection moves.
func (m Model) moveCursor(delta int) (tea.Model, tea.Cmd) {
	if len(m.view.Notes) == 0 {
		return m, nil
	}
	next := m.cursor + delta
	if next < 0 {
		next = 0
	}
	if next >= len(m.view.Notes) {
		next = len(m.view.Notes) - 1
	}

	v, err := m.session.Select(m.ctx, m.view.Notes[next].ID)
	m.applyView(v)
	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.cursor = next
	return m, nil
}

// startOp runs a busy-wrapped session call off the update loop
func (m Model) startOp(op func(ctx context.Context) (controller.View, error)) (tea.Model, tea.Cmd) {
	m.busy = true
	m.percent = 0
	m.status = ""
	ctx := m.ctx
	return m, func() tea.Msg {
		v, err := op(ctx)
		return opDoneMsg{view: v, err: err}
	}
}

func (m *Model) setError(err error) {
	log.WithError(err).Warn("Operation failed")
	m.status = apperrors.ToFrontendError(err).Message
	m.statusErr = true
}

// applyView adopts a new snapshot and syncs inputs, focus and cursor to it
func (m *Model) applyView(v controller.View) {
	prev := m.view
	m.view = v
	m.styles = newStyles(v.Theme)

	if v.Mode == controller.Editing {
		sameNote := prev.Selected != nil && v.Selected != nil && prev.Selected.ID == v.Selected.ID
		if prev.Mode != controller.Editing || !sameNote {
			m.titleInput.SetValue(v.Title)
			m.content.SetValue(v.Content)
			m.content.Blur()
			m.titleInput.Focus()
			m.focus = focusTitle
		}
	} else if m.focus == focusTitle || m.focus == focusContent {
		m.titleInput.Blur()
		m.content.Blur()
		m.focus = focusList
	}

	if v.Selected != nil {
		for i, n := range v.Notes {
			if n.ID == v.Selected.ID {
				m.cursor = i
				break
			}
		}
	}
	if m.cursor >= len(v.Notes) {
		m.cursor = len(v.Notes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	detail := m.detailWidth()
	m.titleInput.Width = detail - 2
	m.content.SetWidth(detail)
	m.content.SetHeight(max(height-12, 3))
	m.search.Width = m.sidebarWidth() - 4
	m.splashBar.Width = min(width-4, 60)
	m.busyBar.Width = min(width-4, 60)
	m.help.Width = width
}

func (m Model) sidebarWidth() int {
	return min(maxSidebarCols, max(m.width/3, 20))
}

func (m Model) detailWidth() int {
	return max(m.width-m.sidebarWidth()-6, 20)
}

// View renders the current screen
func (m Model) View() string {
	if m.screen == screenSplash {
		return m.viewSplash()
	}

	header := m.styles.header.Render(fmt.Sprintf("Emerald Notes · %d notes · %s", len(m.view.Notes), m.view.Theme))
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.viewSidebar(), m.viewDetail())

	lines := []string{header, body}
	if m.busy {
		lines = append(lines, m.busyBar.ViewAs(float64(m.percent)/100))
	}
	if m.status != "" {
		style := m.styles.status
		if m.statusErr {
			style = m.styles.errorStatus
		}
		lines = append(lines, style.Render(m.status))
	}
	if m.focus == focusTitle || m.focus == focusContent {
		lines = append(lines, m.help.View(editHelp{m.keys}))
	} else {
		lines = append(lines, m.help.View(browseHelp{m.keys}))
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewSplash() string {
	pct := m.splash.Percent()
	content := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.splash.Render("Emerald Notes"),
		"",
		loadingText,
		"",
		m.splashBar.ViewAs(float64(pct)/100),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) viewSidebar() string {
	width := m.sidebarWidth()
	inner := width - 4

	rows := []string{m.search.View(), ""}
	if len(m.view.Notes) == 0 {
		if m.view.Search != "" {
			rows = append(rows, m.styles.hint.Render("No matching notes"))
		} else {
			rows = append(rows, m.styles.hint.Render("No notes yet. Press n"))
		}
	}

	for i, note := range m.view.Notes {
		summary := types.ConvertToSummary(note)
		title := runewidth.Truncate(summary.Title, inner-2, "…")

		style := m.styles.item
		if m.view.Selected != nil && m.view.Selected.ID == note.ID {
			style = m.styles.itemActive
		}
		marker := "  "
		if i == m.cursor {
			marker = "> "
			style = style.Inherit(m.styles.itemCursor)
		}

		rows = append(rows,
			style.Render(marker+title),
			m.styles.preview.Render("  "+runewidth.Truncate(summary.Preview, inner-2, "…")),
			m.styles.date.Render("  "+summary.Updated),
		)
	}

	return m.styles.sidebar.Width(width).Render(strings.Join(rows, "\n"))
}

func (m Model) viewDetail() string {
	width := m.detailWidth()
	var b strings.Builder

	switch {
	case m.view.Selected == nil:
		b.WriteString(m.styles.title.Render(noSelectionText))
		b.WriteString("\n")
		b.WriteString(m.styles.hint.Render(noSelectionHint))

	case m.view.Mode == controller.Editing:
		b.WriteString(m.styles.meta.Render("Title"))
		b.WriteString("\n")
		b.WriteString(m.titleInput.View())
		b.WriteString("\n\n")
		b.WriteString(m.content.View())

	default:
		note := m.view.Selected
		b.WriteString(m.styles.title.Render(note.Title))
		b.WriteString("\n")
		b.WriteString(m.styles.meta.Render("Last updated: " + types.FormatDateTime(note.UpdatedAt)))
		b.WriteString("\n\n")
		if note.Content == "" {
			b.WriteString(m.styles.hint.Render(emptyNoteHint))
		} else {
			style := m.opts.MarkdownStyle
			if style == "" {
				style = markdownStyle(m.view.Theme == controller.Dark)
			}
			b.WriteString(renderMarkdown(note.Content, style, width-2))
		}
	}

	return m.styles.detail.Width(width).Render(b.String())
}
