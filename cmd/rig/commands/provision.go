package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/rig/internal/app"
	"go.trai.ch/rig/internal/ui/summary"
)

func (c *CLI) newProvisionCmd() *cobra.Command {
	var acceptLicenses bool
	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Install every toolchain component and write the entry point",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reports, err := c.app.Provision(cmd.Context(), app.ProvisionOptions{
				ConfigPath:     c.config,
				AcceptLicenses: acceptLicenses,
			})
			if len(reports) > 0 {
				if renderErr := summary.Render(cmd.OutOrStdout(), reports); renderErr != nil && err == nil {
					err = renderErr
				}
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&acceptLicenses, "accept-licenses", false, "Accept Android SDK licenses non-interactively")
	return cmd
}
