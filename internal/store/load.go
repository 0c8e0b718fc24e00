// Loading boards from the data directory and seeding the default board.
package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// DefaultBoardTitle is the board seeded into an empty data directory.
const DefaultBoardTitle = "Work"

// sampleTasks are added to every list of the seeded board.
var sampleTasks = []string{"test", "task", "abc"}

// Load reads every board file in the data directory, in file-name order.
// When the directory is missing or holds no board files (current or
// legacy), the default board is seeded instead and marked unsaved.
//
// A file that cannot be decoded fails only its own board, and so does one
// whose board title differs from its file name: the other boards are still
// loaded and the failures are returned joined together.
func (s *Store) Load() error {
	if s.closed {
		return types.ErrStoreClosed
	}
	dataDir := s.config.DataDir

	names, err := listFiles(dataDir, boardExt)
	if err != nil {
		return err
	}
	legacy, err := listFiles(dataDir, legacyExt)
	if err != nil {
		return err
	}
	if len(names) == 0 && len(legacy) == 0 {
		s.log.WithField("dir", dataDir).Info("no boards found, seeding default board")
		s.seedDefault()
		return nil
	}
	if len(legacy) > 0 {
		s.log.WithField("files", legacy).Warn("legacy board files present; run migration to convert them")
	}

	var errs []error
	for _, name := range names {
		path := filepath.Join(dataDir, name)
		b, err := readBoardFile(path)
		if err != nil {
			s.log.WithError(err).WithField("path", path).Error("loading board")
			errs = append(errs, fmt.Errorf("load %s: %w", name, err))
			continue
		}
		if err := validateTitle(b.Title()); err != nil {
			errs = append(errs, fmt.Errorf("load %s: %w", name, err))
			continue
		}
		if b.Title() != strings.TrimSuffix(name, boardExt) {
			err := fmt.Errorf("board title %q does not match the file name: %w", b.Title(), types.ErrInvalidTitle)
			s.log.WithError(err).WithField("path", path).Error("loading board")
			errs = append(errs, fmt.Errorf("load %s: %w", name, err))
			continue
		}
		s.put(b)
		s.log.WithFields(logrus.Fields{"board": b.Title(), "path": path}).Debug("loaded board")
	}
	return errors.Join(errs...)
}

// seedDefault adds the "Work" board with the standard lists and the sample
// tasks in each.
func (s *Store) seedDefault() {
	b := DefaultBoard()
	s.put(b)
	s.dirty[b.Title()] = true
}

// DefaultBoard builds the board used to seed an empty store.
func DefaultBoard() *types.Board {
	b := types.NewStandardBoard(DefaultBoardTitle)
	for _, l := range b.Lists() {
		for _, title := range sampleTasks {
			l.AddNew(title)
		}
	}
	return b
}
