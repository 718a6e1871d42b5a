// Package controller holds the per-UI state that sits between a front end
// and the note service: selection, the edit/view toggle, search and the
// busy sequence that wraps mutations.
package controller

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	apperrors "github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/errors"
	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/models"
	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/progress"
)

// NoteService is what a Session needs from the service layer
type NoteService interface {
	List() []models.Note
	Search(query string) []models.Note
	Get(id string) (models.Note, error)
	Create(ctx context.Context) (models.Note, error)
	Save(ctx context.Context, id, title, content string) (models.Note, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Mode is the state of the detail pane
type Mode int

const (
	Viewing Mode = iota
	Editing
)

func (m Mode) String() string {
	if m == Editing {
		return "editing"
	}
	return "viewing"
}

// Theme is the cosmetic display mode. It is never persisted.
type Theme int

const (
	Light Theme = iota
	Dark
)

func (t Theme) String() string {
	if t == Dark {
		return "dark"
	}
	return "light"
}

const (
	StatusSaved   = "Note saved successfully"
	StatusDeleted = "Note deleted"
)

// View is an immutable snapshot of everything a front end renders
type View struct {
	Notes    []models.Note
	Selected *models.Note
	Mode     Mode
	Title    string
	Content  string
	Search   string
	Theme    Theme
	Busy     bool
	Progress int
	Status   string
}

// Session owns selection, edit buffers, search and theme for one UI
type Session struct {
	svc       NoteService
	gate      *progress.Gate
	indicator progress.Indicator

	mu         sync.Mutex
	selectedID string
	mode       Mode
	title      string
	content    string
	search     string
	theme      Theme
	status     string
}

// Option customizes a Session
type Option func(*Session)

// WithIndicator sets the busy sequence played before each mutation
func WithIndicator(indicator progress.Indicator) Option {
	return func(s *Session) {
		s.indicator = indicator
	}
}

// WithGate shares a gate with other front ends
func WithGate(gate *progress.Gate) Option {
	return func(s *Session) {
		s.gate = gate
	}
}

// WithTheme sets the initial theme
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// NewSession creates a session with nothing selected
func NewSession(svc NoteService, opts ...Option) *Session {
	s := &Session{
		svc:       svc,
		indicator: progress.Instant{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.gate == nil {
		s.gate = progress.NewGate()
	}
	return s
}

// Gate returns the busy gate guarding mutations
func (s *Session) Gate() *progress.Gate {
	return s.gate
}

// OnProgress registers a listener for busy sequence progress
func (s *Session) OnProgress(fn func(percent int)) {
	s.gate.OnProgress(fn)
}

// Busy reports whether a busy sequence is running
func (s *Session) Busy() bool {
	return s.gate.Busy()
}

// Progress returns the running sequence's percentage
func (s *Session) Progress() int {
	return s.gate.Percent()
}

// Mode returns the current pane mode
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SelectedID returns the selected note id, or "" when nothing is selected
func (s *Session) SelectedID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedID
}

// CreateNote plays the busy sequence, creates a note and opens it for editing.
// A pending edit of another note is committed first.
func (s *Session) CreateNote(ctx context.Context) (View, error) {
	err := s.gate.Do(s.indicator, func() error {
		s.mu.Lock()
		defer s.mu.Unlock()

		if err := s.commitLocked(ctx); err != nil {
			return err
		}
		note, err := s.svc.Create(ctx)
		if err != nil {
			return err
		}
		s.selectedID = note.ID
		s.title = note.Title
		s.content = note.Content
		s.mode = Editing
		s.status = ""
		return nil
	})
	return s.Snapshot(), err
}

// StartEdit seeds the edit buffers from the selected note
func (s *Session) StartEdit() (View, error) {
	if s.gate.Busy() {
		return s.Snapshot(), apperrors.ErrBusy
	}

	s.mu.Lock()
	if note, ok := s.selectedLocked(); ok {
		s.title = note.Title
		s.content = note.Content
		s.mode = Editing
	}
	s.mu.Unlock()
	return s.Snapshot(), nil
}

// SetTitle replaces the title buffer while editing
func (s *Session) SetTitle(title string) error {
	return s.editBuffer(func() { s.title = title })
}

// SetContent replaces the content buffer while editing
func (s *Session) SetContent(content string) error {
	return s.editBuffer(func() { s.content = content })
}

func (s *Session) editBuffer(apply func()) error {
	if s.gate.Busy() {
		return apperrors.ErrBusy
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == Editing {
		apply()
	}
	return nil
}

// Save plays the busy sequence, flushes the edit buffers and returns to viewing
func (s *Session) Save(ctx context.Context) (View, error) {
	s.mu.Lock()
	editing := s.mode == Editing && s.selectedID != ""
	s.mu.Unlock()
	if !editing {
		return s.Snapshot(), nil
	}

	err := s.gate.Do(s.indicator, func() error {
		s.mu.Lock()
		defer s.mu.Unlock()

		if err := s.commitLocked(ctx); err != nil {
			return err
		}
		s.status = StatusSaved
		return nil
	})
	return s.Snapshot(), err
}

// Cancel discards the edit buffers
func (s *Session) Cancel() (View, error) {
	if s.gate.Busy() {
		return s.Snapshot(), apperrors.ErrBusy
	}

	s.mu.Lock()
	s.resetBuffersLocked()
	s.mode = Viewing
	s.mu.Unlock()
	return s.Snapshot(), nil
}

// Select switches the selection, committing a pending edit first, and
// returns to viewing. Re-selecting the note being edited commits it too.
// The commit does not play a busy sequence but is refused while one runs.
func (s *Session) Select(ctx context.Context, id string) (View, error) {
	if !s.gate.TryAcquire() {
		return s.Snapshot(), apperrors.ErrBusy
	}
	err := func() error {
		defer s.gate.Release()
		s.mu.Lock()
		defer s.mu.Unlock()

		if err := s.commitLocked(ctx); err != nil {
			return err
		}
		if s.selectedID != id {
			s.status = ""
		}
		s.selectedID = id
		s.resetBuffersLocked()
		s.mode = Viewing
		return nil
	}()
	return s.Snapshot(), err
}

// DeleteNote plays the busy sequence and removes the note. Deleting the
// selected note clears the selection.
func (s *Session) DeleteNote(ctx context.Context, id string) (View, error) {
	err := s.gate.Do(s.indicator, func() error {
		s.mu.Lock()
		defer s.mu.Unlock()

		found, err := s.svc.Delete(ctx, id)
		if err != nil {
			return err
		}
		if id == s.selectedID {
			s.clearSelectionLocked()
		}
		if found {
			s.status = StatusDeleted
		}
		return nil
	})
	return s.Snapshot(), err
}

// SetSearch sets the sidebar filter
func (s *Session) SetSearch(term string) View {
	s.mu.Lock()
	s.search = term
	s.mu.Unlock()
	return s.Snapshot()
}

// Visible returns the notes matching the search term in collection order
func (s *Session) Visible() []models.Note {
	s.mu.Lock()
	term := s.search
	s.mu.Unlock()
	return s.svc.Search(term)
}

// ToggleTheme flips between light and dark
func (s *Session) ToggleTheme() View {
	s.mu.Lock()
	if s.theme == Dark {
		s.theme = Light
	} else {
		s.theme = Dark
	}
	s.mu.Unlock()
	return s.Snapshot()
}

// ClearStatus drops the last success message
func (s *Session) ClearStatus() {
	s.mu.Lock()
	s.status = ""
	s.mu.Unlock()
}

// Refresh drops a selection whose note no longer exists, for example
// after the collection was reloaded from disk
func (s *Session) Refresh() View {
	s.mu.Lock()
	if _, ok := s.selectedLocked(); !ok && s.selectedID != "" {
		log.WithField("noteId", s.selectedID).Info("Selected note disappeared after reload")
		s.clearSelectionLocked()
	}
	s.mu.Unlock()
	return s.Snapshot()
}

// Snapshot returns the current view
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Notes:    s.svc.Search(s.search),
		Mode:     s.mode,
		Search:   s.search,
		Theme:    s.theme,
		Busy:     s.gate.Busy(),
		Progress: s.gate.Percent(),
		Status:   s.status,
	}
	if note, ok := s.selectedLocked(); ok {
		v.Selected = &note
		v.Title, v.Content = note.Title, note.Content
	}
	if s.mode == Editing {
		v.Title, v.Content = s.title, s.content
	}
	return v
}

// commitLocked flushes the buffers of a pending edit through the save path
func (s *Session) commitLocked(ctx context.Context) error {
	if s.mode != Editing || s.selectedID == "" {
		return nil
	}
	_, found, err := s.svc.Save(ctx, s.selectedID, s.title, s.content)
	if err != nil {
		return err
	}
	if !found {
		s.clearSelectionLocked()
		return nil
	}
	s.mode = Viewing
	return nil
}

func (s *Session) selectedLocked() (models.Note, bool) {
	if s.selectedID == "" {
		return models.Note{}, false
	}
	note, err := s.svc.Get(s.selectedID)
	if err != nil {
		return models.Note{}, false
	}
	return note, true
}

func (s *Session) resetBuffersLocked() {
	s.title, s.content = "", ""
	if note, ok := s.selectedLocked(); ok {
		s.title, s.content = note.Title, note.Content
	}
}

func (s *Session) clearSelectionLocked() {
	s.selectedID = ""
	s.title, s.content = "", ""
	s.mode = Viewing
}
