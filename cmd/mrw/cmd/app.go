// ============================================================================
// meinRECHENWERK (mRW) - Interaktiver Rechner
// ============================================================================
//
// Package:     cmd
// Description: Shared wiring of configuration, logging, history file,
//              journal and calculator for all CLI commands
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	mrwlog "github.com/msto63/mRW/foundation/core/log"
	"github.com/msto63/mRW/foundation/utils/filex"
	"github.com/msto63/mRW/internal/calculator"
	"github.com/msto63/mRW/internal/journal"
	"github.com/msto63/mRW/internal/store"
	"github.com/msto63/mRW/pkg/core/config"
	"github.com/msto63/mRW/pkg/core/logging"
)

// app holds the components of one CLI invocation
type app struct {
	cfg       *config.Config
	logger    *mrwlog.Logger
	gateway   store.Gateway
	journal   *journal.Journal
	calc      *calculator.Calculator
	sessionID string

	closers []io.Closer
}

// loadConfig loads the configuration named by --config, or from the
// environment and default locations
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.LoadFromEnv()
}

// appOptions adjusts newApp for the command being run.
type appOptions struct {
	// oneShot runs a single command and exits: an unreadable history file
	// is an error, and the caller saves explicitly instead of relying on
	// the auto-save listener.
	oneShot bool
}

// newApp wires the calculator with its listeners. Failing to set up the log
// file, the history file or the journal is fatal.
func newApp(stderr io.Writer, opts appOptions) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	a := &app{cfg: cfg, sessionID: logging.NewSessionID()}

	logCfg := logging.DefaultLoggerConfig("calculator")
	logCfg.Level = cfg.General.LogLevel
	logCfg.Format = cfg.General.LogFormat
	if verbose {
		logCfg.Level = "debug"
	}
	logger, closer, err := logging.NewFileLogger(logCfg, cfg.LogPath())
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closer)
	a.logger = logging.WithSession(logger, a.sessionID)

	a.gateway, err = store.Open(cfg.HistoryPath())
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("history file: %w", err)
	}

	initial, err := a.readHistory()
	if err != nil {
		if opts.oneShot {
			a.Close()
			return nil, fmt.Errorf("history file: %w", err)
		}
		// The next save would replace the unreadable file, so keep a copy.
		moved, merr := moveAside(a.gateway.Path())
		if merr != nil {
			a.Close()
			return nil, fmt.Errorf("history file: %w (moving it aside failed: %v)", err, merr)
		}
		a.logger.WarnWithErr("could not read history, starting empty", err, mrwlog.Fields{"moved_to": moved})
		fmt.Fprintf(stderr, "Warnung: Verlauf konnte nicht gelesen werden: %v\n", err)
		fmt.Fprintf(stderr, "Warnung: Die Datei wurde nach %s verschoben\n", moved)
	}

	a.calc = calculator.New(calculator.Options{
		Registry: calculator.NewRegistry(calculator.WithMaxInput(cfg.Calculator.MaxInputValue)),
		Gateway:  a.gateway,
		MaxUndo:  cfg.Calculator.MaxHistorySize,
		Logger:   a.logger,
		History:  initial,
	})
	a.calc.Subscribe("logging", calculator.LoggingListener(a.logger))
	if cfg.Calculator.AutoSave && !opts.oneShot {
		a.calc.Subscribe("autosave", calculator.AutoSaveListener(a.gateway))
	}

	if cfg.Journal.Enabled {
		if err := a.openJournal(); err != nil {
			a.Close()
			return nil, err
		}
		a.calc.Subscribe("journal", a.journal.Listener(a.sessionID))
	}

	a.logger.Info("calculator initialised", mrwlog.Fields{
		"history_file": a.gateway.Path(),
		"history_len":  a.calc.Len(),
		"auto_save":    cfg.Calculator.AutoSave,
		"journal":      cfg.Journal.Enabled,
	})
	return a, nil
}

// readHistory returns the persisted history. A path that cannot be stat'ed
// holds no history yet; if it cannot be written either, the first save
// reports it.
func (a *app) readHistory() ([]calculator.Calculation, error) {
	if _, err := os.Stat(a.gateway.Path()); err != nil {
		return nil, nil
	}
	return a.gateway.Load()
}

// moveAside renames path to path.corrupt, or to a timestamped name when that
// already exists, and returns the new name.
func moveAside(path string) (string, error) {
	target := path + ".corrupt"
	if filex.Exists(target) {
		target = fmt.Sprintf("%s.corrupt-%s", path, time.Now().UTC().Format("20060102T150405.000000000Z"))
	}
	if err := os.Rename(path, target); err != nil {
		return "", err
	}
	return target, nil
}

func (a *app) openJournal() error {
	j, err := journal.Open(journal.Config{Path: a.cfg.JournalPath()})
	if err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	a.journal = j
	a.closers = append(a.closers, j)

	if retention := a.cfg.Journal.Retention.Duration; retention > 0 {
		removed, err := j.Prune(context.Background(), retention)
		if err != nil {
			a.logger.WarnWithErr("journal prune failed", err)
		} else if removed > 0 {
			a.logger.Info("journal pruned", mrwlog.Fields{"removed": removed})
		}
	}
	return nil
}

// Close releases the journal and the log file
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i].Close()
	}
	a.closers = nil
}
