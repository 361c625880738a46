package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/keeper/internal/filestore"
	"github.com/mesh-intelligence/keeper/internal/scalar"
	"github.com/mesh-intelligence/keeper/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var fallback int

	cmd := &cobra.Command{
		Use:   "watch <name>",
		Short: "Print a resource's decoded value each time it changes",
		Long: `Watch follows a file-backed resource and prints its decoded value after
every change until interrupted. Empty or malformed content prints the
fallback and is reported on stderr. Removal of the resource is logged and
prints nothing. Only the file backend can be watched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, cfg, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer func() {
				if err := backend.Detach(); err != nil {
					a.logger.Warn("detach failed", "error", err)
				}
			}()

			fs, ok := backend.(*filestore.Backend)
			if !ok {
				return userError("watch: backend %q cannot be watched (use --backend file)", cfg.Backend)
			}

			w, err := watch.New(fs, args[0], watch.WithLogger(a.logger))
			if err != nil {
				return sysError("watch: %s", err)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.logger.Info("watching", "path", w.Path())
			return w.Run(ctx, printChange(a, cmd, fallback))
		},
	}

	cmd.Flags().IntVar(&fallback, "fallback", 0, "value to print when the resource is empty or malformed")
	return cmd
}

// printChange returns the watch callback: a present resource prints its
// decoded value or fallback, an absent one is only logged.
func printChange(a *app, cmd *cobra.Command, fallback int) func(watch.Change) {
	return func(c watch.Change) {
		if !c.Found {
			a.logger.Info("resource absent", "name", c.Name)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), scalar.DecodeOr(c.Text, fallback, cmd.ErrOrStderr()))
	}
}
