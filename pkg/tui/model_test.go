package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/controller"
	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/progress"
	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/services"
	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

type harness struct {
	t     *testing.T
	m     Model
	svc   *services.NoteService
	store *storage.NoteStore
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	store := storage.NewNoteStore(storage.NewMemorySlots(), "notes")
	svc := services.NewNoteService(store)
	require.NoError(t, svc.Load(context.Background()))
	if opts.MarkdownStyle == "" {
		opts.MarkdownStyle = glamourstyles.NoTTYStyle
	}
	session := controller.NewSession(svc)
	return &harness{t: t, m: NewModel(context.Background(), session, opts), svc: svc, store: store}
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

// op sends a key that starts a busy operation and completes it
func (h *harness) op(msg tea.Msg) {
	h.t.Helper()
	cmd := h.send(msg)
	require.NotNil(h.t, cmd)
	require.True(h.t, h.m.busy)
	done, ok := cmd().(opDoneMsg)
	require.True(h.t, ok)
	h.send(done)
	require.False(h.t, h.m.busy)
}

func (h *harness) seed(titles ...string) {
	h.t.Helper()
	ctx := context.Background()
	for _, title := range titles {
		n, err := h.svc.Create(ctx)
		require.NoError(h.t, err)
		_, _, err = h.svc.Save(ctx, n.ID, title, "")
		require.NoError(h.t, err)
	}
	h.send(ReloadMsg{})
}

func TestCreateEditSave(t *testing.T) {
	h := newHarness(t, Options{SkipSplash: true})

	h.op(runes("n"))
	require.Len(t, h.m.view.Notes, 1)
	assert.Equal(t, controller.Editing, h.m.view.Mode)
	assert.Equal(t, focusTitle, h.m.focus)
	assert.Equal(t, "New Note", h.m.titleInput.Value())

	h.send(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusContent, h.m.focus)
	h.send(runes("hello"))

	h.op(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, controller.Viewing, h.m.view.Mode)
	assert.Equal(t, focusList, h.m.focus)
	assert.Equal(t, controller.StatusSaved, h.m.status)

	notes := h.store.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, "New Note", notes[0].Title)
	assert.Equal(t, "hello", notes[0].Content)

	out := h.m.View()
	assert.Contains(t, out, "New Note")
	assert.Contains(t, out, "Last updated")
	assert.Contains(t, out, controller.StatusSaved)
}

func TestCancelDiscardsEdit(t *testing.T) {
	h := newHarness(t, Options{SkipSplash: true})
	h.op(runes("n"))
	h.send(tea.KeyMsg{Type: tea.KeyTab})
	h.send(runes("draft"))

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, controller.Viewing, h.m.view.Mode)
	assert.Equal(t, "", h.store.Notes()[0].Content)
	assert.Contains(t, h.m.View(), emptyNoteHint)
}

func TestSwitchingNotesCommitsEdit(t *testing.T) {
	h := newHarness(t, Options{SkipSplash: true})
	h.seed("Groceries")

	h.op(runes("n"))
	editing := h.m.view.Selected.ID
	h.send(tea.KeyMsg{Type: tea.KeyTab})
	h.send(runes("draft"))

	h.send(tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Equal(t, controller.Viewing, h.m.view.Mode)
	require.NotNil(t, h.m.view.Selected)
	assert.Equal(t, "Groceries", h.m.view.Selected.Title)
	assert.Equal(t, 1, h.m.cursor)

	saved, ok := h.store.Get(editing)
	require.True(t, ok)
	assert.Equal(t, "draft", saved.Content)
}

func TestListNavigationAndDelete(t *testing.T) {
	h := newHarness(t, Options{SkipSplash: true})
	h.seed("Groceries", "Work plan")

	h.send(tea.KeyMsg{Type: tea.KeyDown})
	require.NotNil(t, h.m.view.Selected)
	assert.Equal(t, "Groceries", h.m.view.Selected.Title)

	h.send(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "Work plan", h.m.view.Selected.Title)

	h.op(runes("d"))
	assert.Equal(t, controller.StatusDeleted, h.m.status)
	assert.Nil(t, h.m.view.Selected)
	require.Len(t, h.m.view.Notes, 1)
	assert.Equal(t, "Groceries", h.m.view.Notes[0].Title)
	assert.Contains(t, h.m.View(), noSelectionText)
}

func TestSearchFiltersSidebar(t *testing.T) {
	h := newHarness(t, Options{SkipSplash: true})
	h.seed("Groceries", "Work plan")

	h.send(runes("/"))
	assert.Equal(t, focusSearch, h.m.focus)
	h.send(runes("wor"))
	require.Len(t, h.m.view.Notes, 1)
	assert.Equal(t, "Work plan", h.m.view.Notes[0].Title)

	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, focusList, h.m.focus)

	out := h.m.View()
	assert.Contains(t, out, "Work plan")
	assert.NotContains(t, out, "Groceries")
}

func TestMutatingKeysIgnoredWhileBusy(t *testing.T) {
	h := newHarness(t, Options{SkipSplash: true})
	h.seed("Groceries")

	cmd := h.send(runes("n"))
	require.NotNil(t, cmd)
	assert.Nil(t, h.send(runes("n")))
	assert.Nil(t, h.send(runes("d")))
	h.send(ProgressMsg{Percent: 40})
	assert.Equal(t, 40, h.m.percent)
	assert.True(t, h.m.busy)

	h.send(cmd().(opDoneMsg))
	assert.Len(t, h.store.Notes(), 2)
}

func TestToggleTheme(t *testing.T) {
	h := newHarness(t, Options{SkipSplash: true})
	h.send(runes("t"))
	assert.Equal(t, controller.Dark, h.m.view.Theme)
	assert.Contains(t, h.m.View(), "dark")
}

func TestSplashScreen(t *testing.T) {
	h := newHarness(t, Options{Splash: progress.Sequence{Step: 50, Interval: time.Millisecond}})
	require.NotNil(t, h.m.Init())
	assert.Contains(t, h.m.View(), loadingText)

	assert.Nil(t, h.send(runes("n")), "keys are ignored during the splash")

	require.NotNil(t, h.send(splashTickMsg{}))
	assert.Equal(t, 50, h.m.splash.Percent())
	cmd := h.send(splashTickMsg{})
	require.NotNil(t, cmd)
	h.send(cmd())
	assert.Equal(t, screenMain, h.m.screen)
	assert.NotContains(t, h.m.View(), loadingText)
}

func TestQuit(t *testing.T) {
	h := newHarness(t, Options{SkipSplash: true})
	cmd := h.send(runes("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}
