package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/keeper/internal/persist"
	"github.com/mesh-intelligence/keeper/internal/scalar"
	"github.com/mesh-intelligence/keeper/pkg/types"
)

func newRecordCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "record <name> <attempts>",
		Short: "Record a score, keeping the lowest seen",
		Long: `Record compares attempts with the best score stored in <name>.

When no valid best exists, or attempts is lower, attempts is saved as the
new best. A corrupt stored value is reported and replaced.`,
		Example: `  keeper record best 7
  keeper record best 4`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			attempts := scalar.Decode(args[1])
			if !attempts.OK() {
				scalar.Report(cmd.ErrOrStderr(), attempts)
				return &exitError{code: exitUserError}
			}

			return a.withBackend(func(s types.Backend) error {
				sc := persist.New(s, args[0],
					persist.WithDiagnostics(cmd.ErrOrStderr()),
					persist.WithLogger(a.logger))

				best, improved, err := sc.RecordLowest(attempts.N)
				if err != nil {
					return userError("record %s: %s", args[0], err)
				}
				out := cmd.OutOrStdout()
				switch {
				case improved:
					fmt.Fprintf(out, "New best: %d\n", best)
				case best == attempts.N:
					fmt.Fprintf(out, "Best: %d (tied)\n", best)
				default:
					fmt.Fprintf(out, "Best: %d (this run: %d)\n", best, attempts.N)
				}
				return nil
			})
		},
	}
}
