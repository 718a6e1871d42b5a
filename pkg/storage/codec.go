package storage

import (
	"bytes"

	"github.com/bytedance/sonic"

	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/models"
)

// EncodeNotes serializes the collection as a JSON array. Timestamps are
// written as RFC 3339 strings by time.Time's JSON encoding.
func EncodeNotes(notes []*models.Note) ([]byte, error) {
	if notes == nil {
		notes = []*models.Note{}
	}
	return sonic.ConfigStd.Marshal(notes)
}

// DecodeNotes parses a blob written by EncodeNotes. A JSON null is an empty
// collection; anything else that is not an array of note records is an error.
func DecodeNotes(data []byte) ([]*models.Note, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errEmptyBlob
	}
	var notes []*models.Note
	if err := sonic.ConfigStd.Unmarshal(data, &notes); err != nil {
		return nil, err
	}
	kept := notes[:0]
	for _, n := range notes {
		if n != nil {
			kept = append(kept, n)
		}
	}
	return kept, nil
}
