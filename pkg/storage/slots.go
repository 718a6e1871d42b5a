package storage

import (
	"context"
	"sync"
)

// Slots is a key-value store of opaque blobs. The note store keeps its whole
// collection under a single key and always overwrites it in full.
type Slots interface {
	// Get returns the blob under key; ok is false when nothing was stored yet
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Set replaces the blob under key
	Set(ctx context.Context, key string, data []byte) error
	Close() error
}

// MemorySlots keeps blobs in process memory
type MemorySlots struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemorySlots creates an empty in-memory slot store
func NewMemorySlots() *MemorySlots {
	return &MemorySlots{items: make(map[string][]byte)}
}

// Get implements Slots
func (m *MemorySlots) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.items[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

// Set implements Slots
func (m *MemorySlots) Set(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	m.items[key] = append([]byte(nil), data...)
	m.mu.Unlock()
	return nil
}

// Close implements Slots
func (m *MemorySlots) Close() error {
	return nil
}
