// Package cli implements the keeper command-line interface: one subcommand
// per storage operation, a decoder front end, the best-score recorder and a
// watcher.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
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
	backend   string
	verbose   bool
	jsonMode  bool
}

// app is the state shared by the subcommands of one root command.
type app struct {
	flags  rootFlags
	config *viper.Viper
	logger *slog.Logger
}

// exitError carries a process exit code out of a RunE.
// An empty msg means the command already reported the failure.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

func userError(format string, args ...any) error {
	return &exitError{code: exitUserError, msg: fmt.Sprintf(format, args...)}
}

func sysError(format string, args ...any) error {
	return &exitError{code: exitSysError, msg: fmt.Sprintf(format, args...)}
}

// NewRootCmd creates the top-level "keeper" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: slog.Default()}

	root := &cobra.Command{
		Use:   "keeper",
		Short: "Persist and decode plain-text integer state",
		Long: "Keeper stores named plain-text resources and decodes them as integers,\n" +
			"falling back to a default when a value is missing or corrupt.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.setupLogging(cmd.ErrOrStderr())
			return a.loadConfig()
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $(CWD)/.keeper or the user config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.keeper-data)")
	root.PersistentFlags().StringVar(&a.flags.backend, "backend", "", "storage backend: file or sqlite (default: file)")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newExistsCmd(a))
	root.AddCommand(newReadCmd(a))
	root.AddCommand(newWriteCmd(a))
	root.AddCommand(newAppendCmd(a))
	root.AddCommand(newDeleteCmd(a))
	root.AddCommand(newDecodeCmd(a))
	root.AddCommand(newRecordCmd(a))
	root.AddCommand(newWatchCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Stderr))
}

// run executes root and maps its error to an exit code.
func run(root *cobra.Command, stderr io.Writer) int {
	err := root.Execute()
	if err == nil {
		return exitSuccess
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.msg != "" {
			fmt.Fprintln(stderr, ee.msg)
		}
		return ee.code
	}
	// Flag and argument errors from cobra itself.
	fmt.Fprintln(stderr, "Error:", err)
	return exitUserError
}

// setupLogging installs a text slog handler on w, Debug level when verbose.
func (a *app) setupLogging(w io.Writer) {
	level := slog.LevelInfo
	if a.flags.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)
}
