package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	apperrors "github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/errors"
	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/models"
)

// NoteService is the service surface the HTTP handlers use
type NoteService interface {
	List() []models.Note
	Search(query string) []models.Note
	Get(id string) (models.Note, error)
	Create(ctx context.Context) (models.Note, error)
	Save(ctx context.Context, id, title, content string) (models.Note, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Sync(ctx context.Context) error
}

// APIHandlers contains API endpoint handlers
type APIHandlers struct {
	svc NoteService
}

// NewAPIHandlers creates a new API handlers instance
func NewAPIHandlers(svc NoteService) *APIHandlers {
	return &APIHandlers{svc: svc}
}

type noteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := sonic.ConfigStd.Marshal(v)
	if err != nil {
		log.WithError(err).Error("Failed to encode response")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, apperrors.HTTPStatus(err), apperrors.ToFrontendError(err))
}

// decodeNoteRequest reads an optional JSON body. An empty body is valid.
func decodeNoteRequest(r *http.Request) (noteRequest, error) {
	var req noteRequest
	data, err := io.ReadAll(io.LimitReader(r.Body, apperrors.MaxContentBytes*2))
	if err != nil {
		return req, err
	}
	if strings.TrimSpace(string(data)) == "" {
		return req, nil
	}
	if err := sonic.ConfigStd.Unmarshal(data, &req); err != nil {
		return req, apperrors.Wrap(err, apperrors.ErrTypeValidation, "INVALID_JSON", "invalid request body").
			WithUserMessage("Invalid JSON")
	}
	return req, nil
}

// GetNotesHandler returns all notes, or those matching ?q=, as JSON
func (h *APIHandlers) GetNotesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Search(r.URL.Query().Get("q")))
}

// CreateNoteHandler creates a new note. Title and content in the body are
// applied right away; without them the note is a fresh "New Note".
func (h *APIHandlers) CreateNoteHandler(w http.ResponseWriter, r *http.Request) {
	req, err := decodeNoteRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	note, err := h.svc.Create(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if req.Title != nil || req.Content != nil {
		title, content := note.Title, note.Content
		if req.Title != nil {
			title = *req.Title
		}
		if req.Content != nil {
			content = *req.Content
		}
		saved, _, err := h.svc.Save(r.Context(), note.ID, title, content)
		if err != nil {
			writeError(w, err)
			return
		}
		note = saved
	}

	writeJSON(w, http.StatusCreated, note)
}

// GetNoteHandler returns a specific note by ID
func (h *APIHandlers) GetNoteHandler(w http.ResponseWriter, r *http.Request) {
	note, err := h.svc.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// UpdateNoteHandler saves title and content. A field missing from the body
// keeps its stored value; an explicit empty title still saves as "Untitled".
// An unknown id is a no-op answered with 204.
func (h *APIHandlers) UpdateNoteHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	req, err := decodeNoteRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var title, content string
	if req.Title == nil || req.Content == nil {
		current, err := h.svc.Get(id)
		if errors.Is(err, apperrors.ErrNoteNotFound) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err != nil {
			writeError(w, err)
			return
		}
		title, content = current.Title, current.Content
	}
	if req.Title != nil {
		title = *req.Title
	}
	if req.Content != nil {
		content = *req.Content
	}

	note, found, err := h.svc.Save(r.Context(), id, title, content)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// DeleteNoteHandler deletes a note by ID
func (h *APIHandlers) DeleteNoteHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SyncHandler re-reads the persisted notes
func (h *APIHandlers) SyncHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Sync(r.Context()); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Successfully synced from storage",
		"count":   len(h.svc.List()),
	})
}
