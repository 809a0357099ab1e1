package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/platform/tui"
	"github.com/vovakirdan/flappy-arcade/internal/profile"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

// app is what every command shares: logger, storage, profile and tuning.
type app struct {
	logger    *log.Logger
	logCloser io.Closer
	store     *storage.Store
	profile   *profile.Manager
	tuning    config.Tuning
	theme     config.Theme
	tier      config.Tier
}

// openApp resolves the global flags. A database that cannot be opened is
// not fatal: the profile then lives in memory for this process only.
func openApp(interactive bool) (*app, error) {
	logger, closer, err := newLogger(interactive)
	if err != nil {
		return nil, err
	}

	a := &app{
		logger:    logger,
		logCloser: closer,
		theme:     config.ParseTheme(flagTheme),
	}

	tier, ok := config.LookupTier(flagTier)
	if !ok {
		logger.Warn("unknown tier, using default", "tier", flagTier, "default", tier)
	}
	a.tier = tier

	a.tuning, err = config.LoadTuning(flagConfig)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("cannot load tuning: %w", err)
	}

	var backend profile.Backend
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open profile database, progress will not be saved", "path", flagDBPath, "error", err)
	} else {
		a.store = store
		backend = store
	}

	a.profile = profile.New(backend, config.DefaultCatalog(), a.theme, logger)
	a.profile.Load()

	logger.Debug("app ready", "theme", a.theme, "tier", a.tier, "db", flagDBPath, "config", config.ResolvePath(flagConfig))
	return a, nil
}

// Close releases the database and log file.
func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("could not close database", "error", err)
		}
	}
	//nolint:errcheck // Best-effort close on exit
	a.logCloser.Close()
}

// runs returns the run history for the scoreboard, or nil without a database.
func (a *app) runs() tui.RunSource {
	if a.store == nil {
		return nil
	}
	return a.store
}

// options builds session options sized to the current terminal.
func (a *app) options() tui.Options {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return tui.Options{
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Tuning: a.tuning,
		Tier:   a.tier,
		Logger: a.logger,
	}
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
