// Package store persists kanban boards, one JSON file per board, in a data
// directory. It seeds a default board on first use, migrates the legacy
// per-board database format, and re-saves boards when their change
// notifications fire.
//
// A Store is not safe for concurrent use. It is driven from a single event
// loop, like the model it persists.
package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/kanban/internal/logging"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

// Store is the collection of boards plus their on-disk representation.
type Store struct {
	config types.Config
	log    logrus.FieldLogger

	boards map[string]*types.Board
	order  []string

	// cancels unsubscribes the store from a board's events.
	cancels map[string]func()
	// dirty holds boards changed since they were last written.
	dirty  map[string]bool
	closed bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load, save and migration messages.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// New creates an empty store for cfg. Nothing is read until Load.
func New(cfg types.Config, opts ...Option) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Store{
		config:  cfg,
		log:     logging.Discard(),
		boards:  make(map[string]*types.Board),
		cancels: make(map[string]func()),
		dirty:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// DataDir returns the directory holding the board files.
func (s *Store) DataDir() string {
	return s.config.DataDir
}

// Titles returns board titles in load/creation order.
func (s *Store) Titles() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Boards returns the boards in load/creation order.
func (s *Store) Boards() []*types.Board {
	out := make([]*types.Board, 0, len(s.order))
	for _, title := range s.order {
		out = append(out, s.boards[title])
	}
	return out
}

// Board looks up a board by title.
func (s *Store) Board(title string) (*types.Board, bool) {
	b, ok := s.boards[title]
	return b, ok
}

// Get is Board with an error for callers that need one.
// Returns ErrBoardNotFound if no board has that title.
func (s *Store) Get(title string) (*types.Board, error) {
	b, ok := s.boards[title]
	if !ok {
		return nil, fmt.Errorf("%q: %w", title, types.ErrBoardNotFound)
	}
	return b, nil
}

// AddBoard inserts b keyed by its title, replacing any board with the same
// title at its current position. The board is marked changed.
func (s *Store) AddBoard(b *types.Board) error {
	if s.closed {
		return types.ErrStoreClosed
	}
	if err := validateTitle(b.Title()); err != nil {
		return err
	}
	s.put(b)
	s.changed(b.Title())
	return nil
}

// CreateBoard adds a new board with the standard lists. A duplicate title
// returns ErrBoardExists and leaves the store unchanged; the caller decides
// how to tell the user.
func (s *Store) CreateBoard(title string) (*types.Board, error) {
	if s.closed {
		return nil, types.ErrStoreClosed
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if _, ok := s.boards[title]; ok {
		s.log.WithField("board", title).Info("board already exists")
		return nil, fmt.Errorf("%q: %w", title, types.ErrBoardExists)
	}
	b := types.NewStandardBoard(title)
	s.put(b)
	s.changed(title)
	return b, nil
}

// Save writes every board to its file, creating the data directory first.
// Failures for individual boards are joined; the remaining boards are still
// written.
func (s *Store) Save() error {
	if s.closed {
		return types.ErrStoreClosed
	}
	if err := os.MkdirAll(s.config.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	var errs []error
	for _, title := range s.order {
		if err := s.writeBoard(title); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SaveBoard writes a single board.
func (s *Store) SaveBoard(title string) error {
	if s.closed {
		return types.ErrStoreClosed
	}
	if _, ok := s.boards[title]; !ok {
		return fmt.Errorf("%q: %w", title, types.ErrBoardNotFound)
	}
	if err := os.MkdirAll(s.config.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	return s.writeBoard(title)
}

// Dirty reports whether any board has unsaved changes.
func (s *Store) Dirty() bool {
	return len(s.dirty) > 0
}

// Flush writes every board with unsaved changes.
func (s *Store) Flush() error {
	if s.closed {
		return types.ErrStoreClosed
	}
	if len(s.dirty) == 0 {
		return nil
	}
	if err := os.MkdirAll(s.config.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	var errs []error
	for _, title := range s.order {
		if !s.dirty[title] {
			continue
		}
		if err := s.writeBoard(title); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close flushes pending changes and stops observing the boards. Close is
// idempotent; other operations on a closed store return ErrStoreClosed.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	err := s.Flush()
	for title, cancel := range s.cancels {
		cancel()
		delete(s.cancels, title)
	}
	s.closed = true
	if err != nil {
		return fmt.Errorf("flush pending boards: %w", err)
	}
	return nil
}

// put stores b and subscribes to its changes without marking it dirty.
func (s *Store) put(b *types.Board) {
	title := b.Title()
	if cancel, ok := s.cancels[title]; ok {
		cancel()
	}
	if _, ok := s.boards[title]; !ok {
		s.order = append(s.order, title)
	}
	s.boards[title] = b
	s.cancels[title] = b.Subscribe(func(ev types.Event) {
		s.log.WithFields(logrus.Fields{
			"board": title,
			"list":  ev.List,
			"event": ev.Kind.String(),
		}).Debug("board modified")
		s.changed(title)
	})
}

// changed records a modification and, under the immediate strategy, writes
// the board right away. A failed immediate write leaves the board dirty so
// Flush or Close retries it.
func (s *Store) changed(title string) {
	s.dirty[title] = true
	if s.config.GetSyncStrategy() != types.SyncImmediate {
		return
	}
	if err := os.MkdirAll(s.config.DataDir, 0o755); err != nil {
		s.log.WithError(err).WithField("board", title).Error("creating data dir")
		return
	}
	if err := s.writeBoard(title); err != nil {
		s.log.WithError(err).WithField("board", title).Error("saving board")
	}
}

func (s *Store) writeBoard(title string) error {
	path, err := writeBoardFile(s.config.DataDir, s.boards[title])
	if err != nil {
		return fmt.Errorf("saving board %q: %w", title, err)
	}
	delete(s.dirty, title)
	s.log.WithFields(logrus.Fields{"board": title, "path": path}).Debug("saved board")
	return nil
}
