// Package ledger owns the statement list: validation, the derived total and
// the persisted snapshot.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/confirm"
	"github.com/tally-dev/tally/internal/id"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/storage"
)

// ClearQuestion is asked before Clear removes anything.
const ClearQuestion = "Are you sure you want to clear the list? This will delete all your items."

// Store holds the in-memory ledger and keeps its slot in sync.
// A Store has a single owner and is not safe for concurrent use.
type Store struct {
	slot       storage.Slot
	statements []model.Statement
	now        func() time.Time
	newID      func() string
	logger     *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used to date new statements.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the statement ID generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// Load restores the ledger from slot. A missing or malformed snapshot yields
// an empty ledger; only a failing slot read is returned as an error.
func Load(ctx context.Context, slot storage.Slot, opts ...Option) (*Store, error) {
	s := &Store{
		slot:   slot,
		now:    time.Now,
		newID:  id.New,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := slot.Read(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Debug("no snapshot, starting empty ledger")
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	statements, err := DecodeSnapshot(data)
	if err != nil {
		s.logger.Warn("ignoring malformed snapshot", "error", err)
		return s, nil
	}
	s.statements = statements
	s.logger.Debug("snapshot loaded", "statements", len(statements))
	return s, nil
}

// Append validates in, records a new statement and persists the snapshot.
// Validation failures return a *ValidationError and change nothing.
func (s *Store) Append(ctx context.Context, in RawInput) (model.Statement, error) {
	amount, typ, err := validateInput(in)
	if err != nil {
		return model.Statement{}, err
	}

	st := model.Statement{
		ID:     s.uniqueID(),
		Name:   in.Name,
		Amount: amount,
		Type:   typ,
		Date:   s.now().Format(model.DateLayout),
	}

	s.statements = append(s.statements, st)
	if err := s.persist(ctx); err != nil {
		s.statements = s.statements[:len(s.statements)-1]
		return model.Statement{}, err
	}

	s.logger.Debug("statement appended", "id", st.ID, "type", st.Type, "amount", st.Amount.StringFixed(2))
	return st, nil
}

// Clear asks c for confirmation, then empties the ledger and removes the slot.
// It reports whether the ledger was cleared.
func (s *Store) Clear(ctx context.Context, c confirm.Confirmer) (bool, error) {
	ok, err := c.Confirm(ClearQuestion)
	if err != nil {
		return false, fmt.Errorf("confirming clear: %w", err)
	}
	if !ok {
		return false, nil
	}

	if err := s.slot.Remove(ctx); err != nil {
		return false, fmt.Errorf("removing snapshot: %w", err)
	}
	n := len(s.statements)
	s.statements = nil

	s.logger.Info("ledger cleared", "statements", n)
	return true, nil
}

// Total is recomputed from the statements on every call.
func (s *Store) Total() decimal.Decimal {
	return model.Total(s.statements)
}

// Statements returns a copy of the statements in insertion order.
func (s *Store) Statements() []model.Statement {
	out := make([]model.Statement, len(s.statements))
	copy(out, s.statements)
	return out
}

// State returns the ledger as the view sees it.
func (s *Store) State() model.Ledger {
	return model.Ledger{Statements: s.Statements()}
}

// Len returns the number of statements.
func (s *Store) Len() int {
	return len(s.statements)
}

// Get looks a statement up by ID.
func (s *Store) Get(statementID string) (model.Statement, bool) {
	for _, st := range s.statements {
		if st.ID == statementID {
			return st, true
		}
	}
	return model.Statement{}, false
}

func (s *Store) uniqueID() string {
	for {
		candidate := s.newID()
		if _, taken := s.Get(candidate); !taken {
			return candidate
		}
	}
}

func (s *Store) persist(ctx context.Context) error {
	data, err := EncodeSnapshot(s.statements)
	if err != nil {
		return err
	}
	if err := s.slot.Write(ctx, data); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}
