package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/models"
	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/utils"
)

// CorruptedSuffix is appended to the slot key when a malformed blob is set aside
const CorruptedSuffix = ".corrupted"

var errEmptyBlob = errors.New("empty blob")

// NoteStore owns the canonical note collection and its durable copy in a
// single slot. Newest-created notes come first. Every mutation rewrites the
// whole slot before returning.
type NoteStore struct {
	slots Slots
	key   string
	mutex sync.RWMutex
	notes []*models.Note

	now      func() time.Time
	newID    func() string
	lastSync time.Time
}

// Option customizes a NoteStore
type Option func(*NoteStore)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *NoteStore) {
		s.now = now
	}
}

// WithIDGenerator replaces the UUIDv7 generator
func WithIDGenerator(newID func() string) Option {
	return func(s *NoteStore) {
		s.newID = newID
	}
}

// NewNoteStore creates an empty store over the given slot key. Call Load to
// read the persisted collection.
func NewNoteStore(slots Slots, key string, opts ...Option) *NoteStore {
	store := &NoteStore{
		slots: slots,
		key:   key,
		now:   time.Now,
		newID: utils.GenerateNoteID,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Key returns the slot key holding the collection
func (s *NoteStore) Key() string {
	return s.key
}

// Slots returns the backend the store persists to
func (s *NoteStore) Slots() Slots {
	return s.slots
}

// LastSync returns when the collection was last read from or written to the slot
func (s *NoteStore) LastSync() time.Time {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.lastSync
}

// Load replaces the in-memory collection with the persisted one. A missing
// slot yields an empty collection. A malformed blob is copied aside under
// key+CorruptedSuffix and the store starts empty; only backend failures are
// returned as errors. The lock is held from the read to the swap so a
// concurrent mutation cannot be overwritten by stale bytes.
func (s *NoteStore) Load(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	data, ok, err := s.slots.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("read slot %q: %w", s.key, err)
	}

	var notes []*models.Note
	if ok {
		notes, err = DecodeNotes(data)
		if err != nil {
			s.quarantine(ctx, data, err)
			notes = nil
		}
	}
	notes = dedupe(notes)

	s.notes = notes
	s.lastSync = s.now()

	log.WithFields(log.Fields{"key": s.key, "count": len(notes)}).Debug("Loaded notes")
	return nil
}

// Reload re-reads the slot, e.g. after another process rewrote it
func (s *NoteStore) Reload(ctx context.Context) error {
	return s.Load(ctx)
}

func (s *NoteStore) quarantine(ctx context.Context, data []byte, cause error) {
	entry := log.WithFields(log.Fields{"key": s.key, "bytes": len(data)})
	entry.Warnf("Stored notes are malformed, starting empty: %v", cause)

	if err := s.slots.Set(ctx, s.key+CorruptedSuffix, data); err != nil {
		entry.Errorf("Failed to preserve malformed notes: %v", err)
		return
	}
	entry.Infof("Malformed notes preserved under %q", s.key+CorruptedSuffix)
}

// dedupe keeps the first record for every id so ids stay unique
func dedupe(notes []*models.Note) []*models.Note {
	seen := make(map[string]bool, len(notes))
	kept := notes[:0]
	for _, n := range notes {
		if seen[n.ID] {
			log.WithField("noteId", n.ID).Warn("Dropping duplicate note id from stored notes")
			continue
		}
		seen[n.ID] = true
		kept = append(kept, n)
	}
	return kept
}

// Persist overwrites the slot with the current collection
func (s *NoteStore) Persist(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.persistLocked(ctx)
}

func (s *NoteStore) persistLocked(ctx context.Context) error {
	data, err := EncodeNotes(s.notes)
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}
	if err := s.slots.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("write slot %q: %w", s.key, err)
	}
	s.lastSync = s.now()
	return nil
}

func (s *NoteStore) indexLocked(id string) int {
	for i, n := range s.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func (s *NoteStore) uniqueIDLocked() string {
	for {
		id := s.newID()
		if s.indexLocked(id) < 0 {
			return id
		}
		log.WithField("noteId", id).Warn("Generated note id collides, retrying")
	}
}

// Create prepends a new "New Note" with a fresh id and returns it
func (s *NoteStore) Create(ctx context.Context) (models.Note, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	note := &models.Note{
		ID:        s.uniqueIDLocked(),
		Title:     models.NewNoteTitle,
		Content:   "",
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.notes = append([]*models.Note{note}, s.notes...)
	if err := s.persistLocked(ctx); err != nil {
		s.notes = s.notes[1:]
		return models.Note{}, err
	}
	return note.Clone(), nil
}

// Save overwrites title, content and updatedAt of the note with id. An empty
// title is stored as "Untitled". When no note matches, nothing is written and
// found is false.
func (s *NoteStore) Save(ctx context.Context, id, title, content string) (note models.Note, found bool, err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return models.Note{}, false, nil
	}

	previous := s.notes[i].Clone()
	updated := previous
	updated.Title = models.TitleOrUntitled(title)
	updated.Content = content
	updated.UpdatedAt = s.now()
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		updated.UpdatedAt = updated.CreatedAt
	}

	s.notes[i] = &updated
	if err := s.persistLocked(ctx); err != nil {
		s.notes[i] = &previous
		return models.Note{}, true, err
	}
	return updated, true, nil
}

// Delete removes the note with id. When no note matches, nothing is written
// and found is false.
func (s *NoteStore) Delete(ctx context.Context, id string) (found bool, err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return false, nil
	}

	previous := s.notes
	remaining := make([]*models.Note, 0, len(s.notes)-1)
	remaining = append(remaining, s.notes[:i]...)
	remaining = append(remaining, s.notes[i+1:]...)

	s.notes = remaining
	if err := s.persistLocked(ctx); err != nil {
		s.notes = previous
		return true, err
	}
	return true, nil
}

// Get returns a copy of the note with id
func (s *NoteStore) Get(id string) (models.Note, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if i := s.indexLocked(id); i >= 0 {
		return s.notes[i].Clone(), true
	}
	return models.Note{}, false
}

// Notes returns copies of all notes in collection order
func (s *NoteStore) Notes() []models.Note {
	return s.Search("")
}

// Search returns the notes whose title or content contains term, ignoring
// case, in collection order
func (s *NoteStore) Search(term string) []models.Note {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	results := make([]models.Note, 0, len(s.notes))
	for _, n := range s.notes {
		if n.Matches(term) {
			results = append(results, n.Clone())
		}
	}
	return results
}

// Len returns the number of notes
func (s *NoteStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.notes)
}
