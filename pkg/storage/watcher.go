package storage

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"

	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/performance"
	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/utils"
)

// DefaultWatchDebounce is how long the watcher waits for a burst of file
// events to settle before reloading
const DefaultWatchDebounce = 150 * time.Millisecond

// Watcher reloads a NoteStore when another process rewrites its slot file.
// Writes made by the store itself are recognised by mod time and ignored.
type Watcher struct {
	store     *NoteStore
	slots     *FileSlots
	watcher   *fsnotify.Watcher
	debouncer *performance.Debouncer

	mutex     sync.Mutex
	listeners []func()
	done      chan struct{}
	closeOnce sync.Once
}

// NewWatcher starts watching the directory of slots for changes to the
// store's slot file
func NewWatcher(store *NoteStore, slots *FileSlots, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(slots.DataDir()); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		store:     store,
		slots:     slots,
		watcher:   fw,
		debouncer: performance.NewDebouncer(debounce),
		done:      make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// OnReload registers fn to run after each reload triggered by an external change
func (w *Watcher) OnReload(fn func()) {
	w.mutex.Lock()
	w.listeners = append(w.listeners, fn)
	w.mutex.Unlock()
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warnf("Watcher error: %v", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	key, ok := utils.SlotKeyFromFilename(filepath.Base(event.Name))
	if !ok || key != w.store.Key() {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	log.WithField("op", event.Op.String()).Debugf("File event: %s", event.Name)
	w.debouncer.Debounce(event.Name, func() {
		if !w.slots.ChangedExternally(event.Name) {
			return
		}
		if err := w.store.Reload(context.Background()); err != nil {
			log.Errorf("Failed to reload notes after external change: %v", err)
			return
		}
		log.WithField("count", w.store.Len()).Info("Reloaded notes from external file change")
		w.notify()
	})
}

func (w *Watcher) notify() {
	w.mutex.Lock()
	listeners := append([]func(){}, w.listeners...)
	w.mutex.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// Close stops the watcher
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.debouncer.Clear()
		err = w.watcher.Close()
		<-w.done
	})
	return err
}
