package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var slotFilePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+\.json$`)

// GenerateNoteID returns a time-ordered UUID (version 7). The leading bits
// carry the creation timestamp, so ids sort by creation time.
func GenerateNoteID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does
		return uuid.NewString()
	}
	return id.String()
}

// SlotFilename maps a storage key to the file that holds it
func SlotFilename(key string) string {
	return key + ".json"
}

// SlotKeyFromFilename is the inverse of SlotFilename. It reports false for
// files the slot backend never writes (temp files, editors' swap files).
func SlotKeyFromFilename(filename string) (string, bool) {
	if !slotFilePattern.MatchString(filename) {
		return "", false
	}
	return strings.TrimSuffix(filename, ".json"), true
}
