package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/activitylog"
	"github.com/tally-dev/tally/internal/config"
	"github.com/tally-dev/tally/internal/gitops"
	"github.com/tally-dev/tally/internal/ledger"
	"github.com/tally-dev/tally/internal/storage"
)

// session is one CLI invocation's view of a ledger directory.
type session struct {
	dir    string
	cfg    *config.Config
	logger *slog.Logger
	slot   storage.Slot
	store  *ledger.Store
}

func openSession(cmd *cobra.Command, opts *rootOptions) (*session, error) {
	dir, err := filepath.Abs(opts.dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.LoadDir(dir)
	if err != nil {
		return nil, err
	}

	level, _ := cfg.LogLevel() // validated by LoadDir
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := newLogger(cmd.ErrOrStderr(), level)

	ctx := commandContext(cmd)
	slot, err := storage.Open(ctx, dir, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("opening %s storage: %w", cfg.Storage.Backend, err)
	}

	store, err := ledger.Load(ctx, slot, ledger.WithLogger(logger))
	if err != nil {
		slot.Close()
		return nil, err
	}

	logger.Debug("ledger opened", "dir", dir, "backend", cfg.Storage.Backend, "statements", store.Len())
	return &session{dir: dir, cfg: cfg, logger: logger, slot: slot, store: store}, nil
}

func (s *session) Close() {
	if err := s.slot.Close(); err != nil {
		s.logger.Warn("closing storage", "error", err)
	}
}

// record commits the ledger directory when auto-commit is on and appends
// the change to the activity log. Failures here never undo the mutation.
func (s *session) record(action activitylog.Action, summary, statementID string) {
	var hash string
	if s.cfg.Git.AutoCommit && gitops.IsRepo(s.dir) {
		var err error
		hash, err = gitops.CommitAll(s.dir, fmt.Sprintf("%s: %s", action, summary), s.cfg.Git.AuthorName, s.cfg.Git.AuthorEmail)
		if err != nil {
			s.logger.Warn("git commit failed", "error", err)
		}
	}

	entry := activitylog.Entry{
		Time:        time.Now(),
		Action:      action,
		StatementID: statementID,
		Summary:     summary,
		Total:       s.store.Total(),
		Commit:      hash,
	}
	if err := activitylog.New(s.dir).Record(entry); err != nil {
		s.logger.Warn("failed to write activity log", "error", err)
	}
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
