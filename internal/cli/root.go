// Package cli implements the kanban command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/logging"
	"github.com/mesh-intelligence/kanban/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	board     string
	logLevel  string
	jsonMode  bool
}

// app is the state shared by the commands of one invocation. It is filled in
// by the root command's PersistentPreRunE.
type app struct {
	flags rootFlags

	configDir string
	dataDir   string
	settings  configFile
	log       *logrus.Logger
}

// NewRootCmd creates the top-level "kanban" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "kanban",
		Short: "A kanban board kept in plain JSON files",
		Long: "kanban manages boards of task lists (Backlog, Ready, Doing, Done by default).\n" +
			"Each board is stored as one JSON file in the data directory.",
		Version: Version,
		// Errors are printed once by Run, with the exit code applied there.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/kanban)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "board directory (default: <config-dir>/boards)")
	root.PersistentFlags().StringVarP(&a.flags.board, "board", "b", "", "board to operate on (default: default_board from config.yaml)")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newConfigCmd(a))
	root.AddCommand(newBoardsCmd(a))
	root.AddCommand(newBoardCmd(a))
	root.AddCommand(newShowCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newTaskCmd(a))
	root.AddCommand(newMigrateCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes the CLI with args and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return exitCode(err)
}

// setup resolves directories, reads config.yaml and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return systemError(fmt.Errorf("resolve config dir: %w", err))
	}
	a.configDir = configDir

	settings, err := loadConfig(configDir)
	if err != nil {
		return systemError(err)
	}
	a.settings = settings

	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, settings.DataDir, configDir)
	if err != nil {
		return systemError(fmt.Errorf("resolve data dir: %w", err))
	}
	a.dataDir = dataDir

	level := a.flags.logLevel
	if level == "" {
		level = settings.LogLevel
	}
	log, err := logging.New(level, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	a.log = log
	a.log.WithFields(logrus.Fields{"config_dir": configDir, "data_dir": dataDir}).Debug("resolved directories")
	return nil
}

// boardTitle returns the board named by --board, or the configured default.
func (a *app) boardTitle() string {
	if a.flags.board != "" {
		return a.flags.board
	}
	return a.settings.DefaultBoard
}

// exitError carries an exit code other than exitUserError.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// systemError marks err as an environment failure (I/O, permissions) rather
// than a mistake in the command line.
func systemError(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: exitSysError, err: err}
}

func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}
