package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/app"
	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/config"
)

var (
	configPath string
	backend    string
	dataDir    string
	storageKey string
	redisAddr  string
	ephemeral  bool
	verbose    bool
)

// rootCmd opens the terminal UI when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "notes",
	Short: "A small note-taking app with a terminal UI and a web API",
	Long: `Emerald Notes keeps a single collection of notes in one storage slot.
The slot can live in a JSON file, a bbolt database, redis or memory.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runUI,
}

func init() {
	log.SetOutput(os.Stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (.json, .toml, .yaml); defaults to "+config.GetConfigFilePath())
	flags.StringVar(&backend, "backend", "", "storage backend: file, bolt, redis or memory")
	flags.StringVar(&dataDir, "data-dir", "", "directory for the file and bolt backends")
	flags.StringVar(&storageKey, "key", "", "storage slot key")
	flags.StringVar(&redisAddr, "redis-addr", "", "redis address for the redis backend")
	flags.BoolVar(&ephemeral, "ephemeral", false, "keep notes in memory only")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// loadConfig reads the config file and applies command line overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = backend
	}
	if flags.Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("key") {
		cfg.StorageKey = storageKey
	}
	if flags.Changed("redis-addr") {
		cfg.Redis.Addr = redisAddr
	}
	if ephemeral {
		cfg.Backend = config.BackendMemory
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("Unknown log level %q, using info", cfg.LogLevel)
		level = log.InfoLevel
	}
	if verbose {
		level = log.DebugLevel
	}
	log.SetLevel(level)

	return cfg, cfg.Validate()
}

// openApp loads config and opens the configured storage
func openApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return app.New(cmd.Context(), cfg)
}
