package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize keeper configuration and storage",
		Long:  "Create the configuration directory and config.yaml, then initialize the storage backend.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := a.configDir()
			if err != nil {
				return sysError("init: %s", err)
			}
			if err := os.MkdirAll(configDir, 0o755); err != nil {
				return sysError("create config directory: %s", err)
			}

			backend, cfg, err := a.attachBackend()
			if err != nil {
				return err
			}
			if err := backend.Detach(); err != nil {
				return sysError("finalize storage: %s", err)
			}

			created, err := writeConfigIfMissing(configDir, cfg)
			if err != nil {
				return sysError("write config: %s", err)
			}
			if created {
				a.logger.Debug("wrote default config", "config_dir", configDir)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Keeper initialized successfully")
			fmt.Fprintf(out, "  config:  %s\n", configDir)
			fmt.Fprintf(out, "  backend: %s\n", cfg.Backend)
			fmt.Fprintf(out, "  data:    %s\n", cfg.DataDir)
			return nil
		},
	}
}
