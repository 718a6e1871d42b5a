package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/utils"
)

// FileSlots stores each key as <dataDir>/<key>.json
type FileSlots struct {
	dataDir string

	mutex        sync.Mutex
	fileModTimes map[string]time.Time
}

// NewFileSlots creates the data directory if needed
func NewFileSlots(dataDir string) (*FileSlots, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	return &FileSlots{
		dataDir:      dataDir,
		fileModTimes: make(map[string]time.Time),
	}, nil
}

// DataDir returns the directory holding the slot files
func (f *FileSlots) DataDir() string {
	return f.dataDir
}

// Path returns the file backing key
func (f *FileSlots) Path(key string) string {
	return filepath.Join(f.dataDir, utils.SlotFilename(key))
}

// Get implements Slots
func (f *FileSlots) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := f.Path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	f.remember(path)
	return data, true, nil
}

// Set implements Slots. The blob is written to a temp file and renamed over
// the slot so readers never observe a half-written file.
func (f *FileSlots) Set(_ context.Context, key string, data []byte) error {
	path := f.Path(key)
	tmp, err := os.CreateTemp(f.dataDir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}

	// Track the mod time before the rename lands so the watcher sees our own write as known
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	if info, err := os.Stat(path); err == nil {
		f.fileModTimes[path] = info.ModTime()
	}
	return nil
}

// Close implements Slots
func (f *FileSlots) Close() error {
	return nil
}

func (f *FileSlots) remember(path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	f.mutex.Lock()
	f.fileModTimes[path] = info.ModTime()
	f.mutex.Unlock()
}

// ChangedExternally reports whether path was modified since the last read or
// write made through this FileSlots, recording the new mod time if so.
func (f *FileSlots) ChangedExternally(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()

	last, known := f.fileModTimes[path]
	current := info.ModTime()
	if known && !current.After(last) {
		return false
	}
	f.fileModTimes[path] = current
	return true
}
