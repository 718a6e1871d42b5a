package services

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/errors"
	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/models"
	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/storage"
)

// NoteService handles note business logic on top of the store
type NoteService struct {
	store     *storage.NoteStore
	validator *errors.Validator
	attempts  int
}

// ServiceOption customizes a NoteService
type ServiceOption func(*NoteService)

// WithPersistAttempts sets how many times a failed slot write is tried.
// Useful for backends behind a network connection.
func WithPersistAttempts(n int) ServiceOption {
	return func(s *NoteService) {
		s.attempts = n
	}
}

// NewNoteService creates a new note service
func NewNoteService(store *storage.NoteStore, opts ...ServiceOption) *NoteService {
	s := &NoteService{
		store:     store,
		validator: errors.NewValidator(),
		attempts:  1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store exposes the underlying note store
func (s *NoteService) Store() *storage.NoteStore {
	return s.store
}

// Load reads the persisted notes once at startup
func (s *NoteService) Load(ctx context.Context) error {
	if err := s.store.Load(ctx); err != nil {
		appErr := errors.Wrap(err, errors.ErrTypeStorage, "SLOT_READ_FAILED",
			"failed to load notes").
			WithUserMessage("Unable to read saved notes").
			WithContext("key", s.store.Key())
		appErr.Log()
		return appErr
	}
	log.WithField("count", s.store.Len()).Info("Notes loaded")
	return nil
}

// Sync re-reads the persisted notes, discarding the in-memory copy
func (s *NoteService) Sync(ctx context.Context) error {
	return s.Load(ctx)
}

// List returns all notes, newest-created first
func (s *NoteService) List() []models.Note {
	return s.store.Notes()
}

// Search returns notes whose title or content contains query, ignoring case
func (s *NoteService) Search(query string) []models.Note {
	return s.store.Search(query)
}

// Get returns a specific note by ID with validation
func (s *NoteService) Get(id string) (models.Note, error) {
	if result := s.validator.ValidateNoteID(id); !result.IsValid {
		err := result.GetFirstError()
		err.Log()
		return models.Note{}, err
	}

	note, ok := s.store.Get(id)
	if !ok {
		return models.Note{}, errors.ErrNoteNotFound.WithContext("noteId", id)
	}
	return note, nil
}

// persist runs a store mutation, retrying retryable slot failures
func (s *NoteService) persist(code, userMessage string, ctxKV map[string]interface{}, fn func() error) error {
	retryHandler := errors.NewRetryHandler(s.attempts)
	err := retryHandler.Execute(func() error {
		if err := fn(); err != nil {
			appErr := errors.Wrap(err, errors.ErrTypeStorage, code, "failed to persist notes").
				WithUserMessage(userMessage).
				WithRetryable(s.attempts > 1)
			for k, v := range ctxKV {
				appErr = appErr.WithContext(k, v)
			}
			return appErr
		}
		return nil
	})
	if err != nil {
		if appErr, ok := errors.As(err); ok {
			appErr.Log()
		}
		return err
	}
	return nil
}

// Create creates a new note titled "New Note"
func (s *NoteService) Create(ctx context.Context) (models.Note, error) {
	var note models.Note
	err := s.persist("NOTE_CREATE_FAILED", "Unable to create the note. Please try again", nil, func() error {
		var err error
		note, err = s.store.Create(ctx)
		return err
	})
	if err != nil {
		return models.Note{}, err
	}

	log.WithField("noteId", note.ID).Info("Note created")
	return note, nil
}

// Save overwrites title and content of the note with id. An unknown id is a
// silent no-op reported through found.
func (s *NoteService) Save(ctx context.Context, id, title, content string) (note models.Note, found bool, err error) {
	if result := s.validator.ValidateNoteContent(content); !result.IsValid {
		appErr := result.GetFirstError().WithContext("noteId", id)
		appErr.Log()
		return models.Note{}, false, appErr
	}

	err = s.persist("NOTE_SAVE_FAILED", "Unable to save changes. Please try again",
		map[string]interface{}{"noteId": id}, func() error {
			var err error
			note, found, err = s.store.Save(ctx, id, title, content)
			return err
		})
	if err != nil {
		return models.Note{}, found, err
	}

	if !found {
		log.WithField("noteId", id).Debug("Save ignored, note does not exist")
		return models.Note{}, false, nil
	}
	log.WithField("noteId", id).Info("Note saved")
	return note, true, nil
}

// Delete removes the note with id. An unknown id is a silent no-op.
func (s *NoteService) Delete(ctx context.Context, id string) (found bool, err error) {
	err = s.persist("NOTE_DELETE_FAILED", "Unable to delete the note. Please try again",
		map[string]interface{}{"noteId": id}, func() error {
			var err error
			found, err = s.store.Delete(ctx, id)
			return err
		})
	if err != nil {
		return found, err
	}

	if found {
		log.WithField("noteId", id).Info("Note deleted")
	} else {
		log.WithField("noteId", id).Debug("Delete ignored, note does not exist")
	}
	return found, nil
}
