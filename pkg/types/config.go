package types

import "errors"

// Config holds the parameters for opening a board store.
type Config struct {
	DataDir      string `json:"data_dir" yaml:"data_dir"`
	SyncStrategy string `json:"sync_strategy" yaml:"sync_strategy"`
}

// Sync strategies control when changed boards are written to disk.
const (
	// SyncImmediate re-saves a board after every change notification.
	SyncImmediate = "immediate"
	// SyncOnClose queues changed boards and writes them on Close.
	SyncOnClose = "on_close"
)

// Config validation errors.
var (
	ErrDataDirEmpty        = errors.New("data directory must not be empty")
	ErrUnknownSyncStrategy = errors.New("unknown sync strategy")
)

var knownSyncStrategies = map[string]bool{
	"":            true,
	SyncImmediate: true,
	SyncOnClose:   true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	if !knownSyncStrategies[c.SyncStrategy] {
		return ErrUnknownSyncStrategy
	}
	return nil
}

// GetSyncStrategy returns the effective strategy, defaulting to immediate.
func (c Config) GetSyncStrategy() string {
	if c.SyncStrategy == "" {
		return SyncImmediate
	}
	return c.SyncStrategy
}
