// One-time migration of legacy pickled board files to JSON.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nlpodyssey/gopickle/pickle"
	pytypes "github.com/nlpodyssey/gopickle/types"
	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// Migrate converts every legacy board file in the data directory to the
// JSON format and returns how many boards were converted.
//
// A legacy file, <name>.pkl, is a pickled board from the previous version.
// When <name>.json already exists the legacy file is left alone and
// ignored. Otherwise the board is read, written as JSON, the JSON file is
// checked, and the legacy file is renamed to <name>.pkl.migrated. Running
// Migrate again is a no-op. A board that fails to convert does not stop the
// others; failures are returned joined.
func (s *Store) Migrate() (int, error) {
	if s.closed {
		return 0, types.ErrStoreClosed
	}
	dataDir := s.config.DataDir
	names, err := listFiles(dataDir, legacyExt)
	if err != nil {
		return 0, err
	}

	migrated := 0
	var errs []error
	for _, name := range names {
		path := filepath.Join(dataDir, name)
		log := s.log.WithField("path", path)
		log.Info("legacy board file detected")

		jsonPath := filepath.Join(dataDir, strings.TrimSuffix(name, legacyExt)+boardExt)
		if _, err := os.Stat(jsonPath); err == nil {
			log.Info("converted board already present, legacy file ignored")
			continue
		}

		if err := s.migrateFile(path); err != nil {
			log.WithError(err).Error("migrating legacy board")
			errs = append(errs, fmt.Errorf("migrate %s: %w", name, err))
			continue
		}
		migrated++
	}
	return migrated, errors.Join(errs...)
}

func (s *Store) migrateFile(path string) error {
	b, err := readLegacyBoard(path)
	if err != nil {
		return err
	}
	if err := validateTitle(b.Title()); err != nil {
		return err
	}
	out, err := writeBoardFile(s.config.DataDir, b)
	if err != nil {
		return err
	}
	if _, err := os.Stat(out); err != nil {
		return fmt.Errorf("converted file missing: %w", err)
	}
	if err := os.Rename(path, path+migratedExt); err != nil {
		return fmt.Errorf("retiring legacy file: %w", err)
	}
	s.log.WithFields(logrus.Fields{"board": b.Title(), "path": out}).Info("converted legacy board")
	return nil
}

// legacyClasses are the pickled model classes, by class name. The module
// part of the reference is ignored; the old package moved between releases.
var legacyClasses = map[string]bool{
	"Board":    true,
	"TaskList": true,
	"Task":     true,
	"DueDate":  true,
}

// legacyClass stands in for one of the old model classes while unpickling.
type legacyClass struct {
	name string
}

// PyNew creates an empty instance; its attributes arrive through
// PySetState.
func (c legacyClass) PyNew(args ...interface{}) (interface{}, error) {
	return &legacyObject{class: c.name}, nil
}

// legacyObject is an unpickled instance of a legacy model class.
type legacyObject struct {
	class string
	attrs *pytypes.Dict
}

// PySetState receives the instance __dict__.
func (o *legacyObject) PySetState(state interface{}) error {
	d, ok := state.(*pytypes.Dict)
	if !ok {
		return fmt.Errorf("%s state is %T, not a dict", o.class, state)
	}
	o.attrs = d
	return nil
}

func (o *legacyObject) attr(name string) (interface{}, bool) {
	if o.attrs == nil {
		return nil, false
	}
	v, ok := o.attrs.Get(name)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func findLegacyClass(module, name string) (interface{}, error) {
	if !legacyClasses[name] {
		return nil, fmt.Errorf("unexpected class %s.%s in legacy board file", module, name)
	}
	return legacyClass{name: name}, nil
}

// readLegacyBoard loads a legacy file. The old version kept a fixed set of
// lists, so only the standard lists are carried over, in standard order;
// each of them must be present.
func readLegacyBoard(path string) (*types.Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	u := pickle.NewUnpickler(f)
	u.FindClass = findLegacyClass
	root, err := u.Load()
	if err != nil {
		return nil, fmt.Errorf("unpickling %s: %w", path, err)
	}

	obj, ok := root.(*legacyObject)
	if !ok || obj.class != "Board" {
		return nil, fmt.Errorf("%s does not hold a board (got %T)", path, root)
	}
	title, err := legacyString(obj, "title")
	if err != nil {
		return nil, fmt.Errorf("board %w", err)
	}
	raw, ok := obj.attr("tasklists")
	if !ok {
		return nil, fmt.Errorf("board %q tasklists: %w", title, types.ErrMissingField)
	}
	lists, ok := raw.(*pytypes.Dict)
	if !ok {
		return nil, fmt.Errorf("board %q tasklists is %T, not a dict", title, raw)
	}

	b := types.NewBoard(title)
	for _, lt := range types.StandardListTitles {
		v, ok := lists.Get(lt)
		if !ok {
			return nil, fmt.Errorf("board %q tasklist %q: %w", title, lt, types.ErrMissingField)
		}
		src, ok := v.(*legacyObject)
		if !ok || src.class != "TaskList" {
			return nil, fmt.Errorf("board %q tasklist %q is %T, not a TaskList", title, lt, v)
		}
		l := b.AddNew(lt)
		if err := readLegacyTasks(src, l); err != nil {
			return nil, fmt.Errorf("board %q tasklist %q: %w", title, lt, err)
		}
	}
	return b, nil
}

func readLegacyTasks(src *legacyObject, l *types.TaskList) error {
	raw, ok := src.attr("tasks")
	if !ok {
		return nil
	}
	tasks, ok := raw.(*pytypes.List)
	if !ok {
		return fmt.Errorf("tasks is %T, not a list", raw)
	}
	for i := 0; i < tasks.Len(); i++ {
		obj, ok := tasks.Get(i).(*legacyObject)
		if !ok || obj.class != "Task" {
			return fmt.Errorf("task %d is %T, not a Task", i, tasks.Get(i))
		}
		task, err := readLegacyTask(obj)
		if err != nil {
			return fmt.Errorf("task %d: %w", i, err)
		}
		l.Add(task)
	}
	return nil
}

func readLegacyTask(obj *legacyObject) (*types.Task, error) {
	title, err := legacyString(obj, "title")
	if err != nil {
		return nil, err
	}
	created, ok := legacyNumber(obj, "creation_date")
	if !ok {
		return nil, fmt.Errorf("creation_date: %w", types.ErrMissingField)
	}
	task := &types.Task{
		Title:        title,
		CreationDate: unixSeconds(created),
		UpdateDate:   unixSeconds(created),
	}
	if updated, ok := legacyNumber(obj, "update_date"); ok && updated >= created {
		task.UpdateDate = unixSeconds(updated)
	}
	if v, ok := obj.attr("due_date"); ok {
		// Unset calendars were stored as 0-0-0; those and any other
		// impossible day mean no due date.
		if due, ok := v.(*legacyObject); ok && due.class == "DueDate" {
			y, _ := legacyNumber(due, "year")
			m, _ := legacyNumber(due, "month")
			d, _ := legacyNumber(due, "day")
			if dd, err := types.NewDueDate(int(y), int(m), int(d)); err == nil {
				task.DueDate = dd
			}
		}
	}
	task.EnsureID()
	return task, nil
}

func legacyString(obj *legacyObject, name string) (string, error) {
	v, ok := obj.attr(name)
	if !ok {
		return "", fmt.Errorf("%s: %w", name, types.ErrMissingField)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s is %T, not a string", name, v)
	}
	return s, nil
}

func legacyNumber(obj *legacyObject, name string) (float64, bool) {
	v, ok := obj.attr(name)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
