package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/keeper/pkg/types"
)

// withBackend attaches the configured backend for the duration of fn.
func (a *app) withBackend(fn func(types.Backend) error) error {
	backend, _, err := a.attachBackend()
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Detach(); err != nil {
			a.logger.Warn("detach failed", "error", err)
		}
	}()
	return fn(backend)
}

func newExistsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "exists <name>",
		Short: "Report whether a resource exists",
		Long:  "Print true or false. Exits 1 when the resource does not exist.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withBackend(func(s types.Backend) error {
				ok := s.Exists(args[0])
				fmt.Fprintln(cmd.OutOrStdout(), ok)
				if !ok {
					return &exitError{code: exitUserError}
				}
				return nil
			})
		},
	}
}

func newReadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "read <name>",
		Short: "Print the content of a resource",
		Long: `Print the content of a resource exactly as stored.

A resource that cannot be opened prints nothing; use "keeper exists" to
tell an absent resource from an empty one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withBackend(func(s types.Backend) error {
				fmt.Fprint(cmd.OutOrStdout(), s.Read(args[0]))
				return nil
			})
		},
	}
}

func newWriteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "write <name> <text>",
		Short: "Replace the content of a resource",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withBackend(func(s types.Backend) error {
				if !s.Write(args[0], args[1]) {
					return userError("write %s: resource could not be opened for writing", args[0])
				}
				return nil
			})
		},
	}
}

func newAppendCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "append <name> <text>",
		Short: "Append text to a resource, creating it if absent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withBackend(func(s types.Backend) error {
				if !s.Append(args[0], args[1]) {
					return userError("append %s: resource could not be opened for appending", args[0])
				}
				return nil
			})
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withBackend(func(s types.Backend) error {
				if !s.Delete(args[0]) {
					return userError("delete %s: resource could not be removed", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return nil
			})
		},
	}
}
