// Package app wires configuration, storage and services into one value that
// every front end starts from.
package app

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/config"
	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/controller"
	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/handlers"
	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/progress"
	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/services"
	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/storage"
)

// redisPersistAttempts is how often a write to the network backend is tried
const redisPersistAttempts = 3

// App struct
type App struct {
	config  *config.Config
	slots   storage.Slots
	store   *storage.NoteStore
	gate    *progress.Gate
	watcher *storage.Watcher

	noteService *services.NoteService
}

// New opens the configured backend and loads the notes
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slots, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var opts []services.ServiceOption
	if cfg.Backend == config.BackendRedis {
		opts = append(opts, services.WithPersistAttempts(redisPersistAttempts))
	}

	a := &App{
		config: cfg,
		slots:  slots,
		store:  storage.NewNoteStore(slots, cfg.StorageKey),
		gate:   progress.NewGate(),
	}
	a.noteService = services.NewNoteService(a.store, opts...)

	if err := a.noteService.Load(ctx); err != nil {
		slots.Close()
		return nil, err
	}

	log.WithFields(log.Fields{
		"backend": cfg.Backend,
		"dataDir": cfg.DataDir,
		"key":     cfg.StorageKey,
	}).Info("Note app initialized")
	return a, nil
}

// StartWatching reloads the notes when the slot file changes on disk. It is
// a no-op for backends other than file or when watching is disabled.
func (a *App) StartWatching() {
	fileSlots, ok := a.slots.(*storage.FileSlots)
	if !ok || !a.config.Watch || a.watcher != nil {
		return
	}

	w, err := storage.NewWatcher(a.store, fileSlots, storage.DefaultWatchDebounce)
	if err != nil {
		log.WithError(err).Warn("File watching disabled")
		return
	}
	a.watcher = w
}

// OnReload registers fn to run after an external change was reloaded
func (a *App) OnReload(fn func()) {
	if a.watcher != nil {
		a.watcher.OnReload(fn)
	}
}

// Config returns the configuration the app was built from
func (a *App) Config() *config.Config {
	return a.config
}

// Store returns the note store
func (a *App) Store() *storage.NoteStore {
	return a.store
}

// Notes returns the note service
func (a *App) Notes() *services.NoteService {
	return a.noteService
}

// Gate returns the busy gate shared by every front end of this process
func (a *App) Gate() *progress.Gate {
	return a.gate
}

// BusyIndicator returns the sequence played before each mutation
func (a *App) BusyIndicator() progress.Indicator {
	return progress.IndicatorFromConfig(a.config.Busy)
}

// SplashSequence returns the start-up sequence for the terminal UI
func (a *App) SplashSequence() progress.Sequence {
	return progress.FromConfig(a.config.Splash)
}

// NewSession creates the view state for one interactive front end
func (a *App) NewSession() *controller.Session {
	return controller.NewSession(a.noteService,
		controller.WithGate(a.gate),
		controller.WithIndicator(a.BusyIndicator()),
	)
}

// Handler returns the HTTP router serving the JSON API and the web index
func (a *App) Handler() http.Handler {
	return handlers.NewRouter(a.noteService, a.gate, a.BusyIndicator())
}

// CreateBackup zips the notes slot, and a quarantined copy if one exists
func (a *App) CreateBackup(ctx context.Context, dir string) (string, error) {
	if dir == "" {
		dir = a.config.DataDir
	}
	keys := []string{a.config.StorageKey, a.config.StorageKey + storage.CorruptedSuffix}
	return storage.Backup(ctx, a.slots, keys, dir, time.Now())
}

// Close stops the watcher and releases the backend
func (a *App) Close() error {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			log.WithError(err).Warn("Failed to stop watcher")
		}
	}
	return a.slots.Close()
}
