package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/keeper/pkg/keeper"
)

const modulePath = "github.com/mesh-intelligence/keeper"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the keeper version",
		Args:  cobra.NoArgs,
		// Version needs neither config nor logging.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "keeper v%s\nmodule: %s\n", keeper.Version, modulePath)
			return nil
		},
	}
}
