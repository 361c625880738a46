package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/keeper/internal/persist"
	"github.com/mesh-intelligence/keeper/pkg/types"
)

// decodeResult is the --json output of decode.
type decodeResult struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Kind  string `json:"kind"`
	Found bool   `json:"found"`
	ID    string `json:"id,omitempty"`
}

func newDecodeCmd(a *app) *cobra.Command {
	var fallback int

	cmd := &cobra.Command{
		Use:   "decode <name>",
		Short: "Print a resource decoded as an integer",
		Long: `Decode prints the integer stored in a resource.

A missing resource prints the fallback. An empty or malformed resource
prints the fallback and reports the problem on stderr. Decode never fails
because of the stored content.

With --json the result also carries the resource id on backends that
assign one (sqlite).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withBackend(func(s types.Backend) error {
				sc := persist.New(s, args[0],
					persist.WithDiagnostics(cmd.ErrOrStderr()),
					persist.WithLogger(a.logger))
				value, outcome, found := sc.Load(fallback)

				if !a.flags.jsonMode {
					fmt.Fprintln(cmd.OutOrStdout(), value)
					return nil
				}

				result := decodeResult{
					Name:  args[0],
					Value: value,
					Kind:  outcome.Kind.String(),
					Found: found,
				}
				if idr, ok := s.(types.Identifier); ok && found {
					result.ID = idr.ID(args[0])
				}
				out, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return sysError("marshal JSON: %s", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&fallback, "fallback", 0, "value to use when the resource is missing or corrupt")
	return cmd
}
