// Board file naming and atomic persistence.
package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// File extensions recognized in the data directory.
const (
	boardExt    = ".json"
	legacyExt   = ".pkl"
	migratedExt = ".migrated"
)

// validateTitle rejects titles that cannot be used as a file name.
func validateTitle(title string) error {
	switch {
	case strings.TrimSpace(title) == "":
		return fmt.Errorf("empty board title: %w", types.ErrInvalidTitle)
	case strings.HasPrefix(title, "."):
		return fmt.Errorf("board title %q starts with a dot: %w", title, types.ErrInvalidTitle)
	case strings.ContainsAny(title, `/\`) || strings.ContainsRune(title, os.PathSeparator):
		return fmt.Errorf("board title %q contains a path separator: %w", title, types.ErrInvalidTitle)
	}
	return nil
}

// boardPath returns <dataDir>/<title>.json.
func boardPath(dataDir, title string) string {
	return filepath.Join(dataDir, title+boardExt)
}

// readBoardFile decodes one board file.
func readBoardFile(path string) (*types.Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var rec boardJSON
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	b, err := decodeBoard(rec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// writeBoardFile serializes b and atomically replaces its file.
func writeBoardFile(dataDir string, b *types.Board) (string, error) {
	data, err := json.MarshalIndent(encodeBoard(b), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding board %q: %w", b.Title(), err)
	}
	path := boardPath(dataDir, b.Title())
	if err := writeFileAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// writeFileAtomic writes data using the temp-file, fsync, rename pattern so
// an interrupted save leaves the previous file intact.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".board-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing board: %w", err)
	}
	if err := w.WriteByte('\n'); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing newline: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// listFiles returns the names of regular files in dataDir with the given
// extension, sorted by name. A missing directory yields no names.
func listFiles(dataDir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading data dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}
