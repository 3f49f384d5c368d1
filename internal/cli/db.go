package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ycsite/siteops/internal/adapter/sqlite"
)

// NewDBCommand creates the db command group.
func NewDBCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Local store maintenance",
	}

	var yes bool
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Delete the local store; it is recreated on next start",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if !yes {
				return WrapExitError(ExitCommandError,
					fmt.Sprintf("refusing to delete %s without --yes", cfg.Store.Path), nil)
			}
			if err := sqlite.Reset(cfg.Store.Path); err != nil {
				return WrapExitError(ExitStoreError, "reset store", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", cfg.Store.Path)
			return nil
		},
	}
	reset.Flags().BoolVar(&yes, "yes", false, "confirm deletion")

	cmd.AddCommand(reset)
	return cmd
}
