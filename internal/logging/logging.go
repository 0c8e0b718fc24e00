// Package logging builds the logrus logger shared by the store and the CLI.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// EnvLogLevel overrides the configured level when set.
const EnvLogLevel = "KANBAN_LOG_LEVEL"

// DefaultLevel applies when neither the flag, config nor environment set one.
const DefaultLevel = "warn"

// New returns a text-formatted logger writing to out. The level comes from
// level, then KANBAN_LOG_LEVEL, then DefaultLevel; an unparseable level is
// returned as an error.
func New(level string, out io.Writer) (*logrus.Logger, error) {
	if out == nil {
		out = os.Stderr
	}
	if level == "" {
		level = os.Getenv(EnvLogLevel)
	}
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return log, nil
}

// Discard returns a logger that drops everything. Used as the store default.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.PanicLevel)
	return log
}
