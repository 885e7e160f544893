package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kept-dev/kept/internal/config"
	"github.com/kept-dev/kept/internal/ledger"
	"github.com/kept-dev/kept/internal/statefile"
)

// initialDefaultRate seeds a ledger that has never configured a rate.
var initialDefaultRate = decimal.RequireFromString("3.5")

// session bundles everything a command needs: config, the live store, and
// where to persist it.
type session struct {
	cfg      *config.Config
	store    *ledger.Store
	dataPath string
	theme    string
	logger   *zap.Logger
}

// openSession loads config and state for the directory given by --dir and
// builds the store, which regenerates postings for any months that closed
// since the last save.
func openSession(cmd *cobra.Command) (*session, error) {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return nil, err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.Default()
	} else if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	dataPath := cfg.DataFile
	if !filepath.IsAbs(dataPath) {
		dataPath = filepath.Join(dir, dataPath)
	}

	st, issues, err := statefile.Load(dataPath)
	if errors.Is(err, fs.ErrNotExist) {
		st = statefile.State{DefaultInterestRate: initialDefaultRate}
	} else if err != nil {
		return nil, err
	}
	if len(issues) > 0 {
		if !force {
			msgs := make([]string, len(issues))
			for i, issue := range issues {
				msgs[i] = issue.Error()
			}
			return nil, fmt.Errorf(
				"state file %s has malformed events: %s\nrerun with --force to load the rest, or 'kept init --reset' to start over",
				dataPath, strings.Join(msgs, "; "))
		}
		logger.Warn("loading state best-effort", zap.Int("skipped", len(issues)))
	}

	store := ledger.New(st.Events, st.DefaultInterestRate, ledger.WithLogger(logger))

	return &session{
		cfg:      cfg,
		store:    store,
		dataPath: dataPath,
		theme:    st.Theme,
		logger:   logger,
	}, nil
}

// save persists the current log and settings.
func (s *session) save() error {
	return statefile.Save(s.dataPath, statefile.State{
		Events:              s.store.Events(),
		DefaultInterestRate: s.store.DefaultRate(),
		Theme:               s.theme,
	})
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
