package main

import (
	"errors"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/app"
	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/tui"
)

const logFilename = "notes.log"

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the terminal UI (default)",
	Args:  cobra.NoArgs,
	RunE:  runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs go to a file
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return err
	}
	logFile, err := os.OpenFile(filepath.Join(cfg.DataDir, logFilename), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	defer log.SetOutput(os.Stderr)

	ctx := cmd.Context()
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	a.StartWatching()

	p := tui.NewProgram(ctx, a.NewSession(), tui.Options{
		Splash:     a.SplashSequence(),
		SkipSplash: !cfg.Splash.Enabled,
	})
	a.OnReload(func() { p.Send(tui.ReloadMsg{}) })

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
