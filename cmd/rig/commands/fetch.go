package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newFetchCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "fetch NAME",
		Short: "Download a declared artifact and verify its digest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.app.Fetch(cmd.Context(), c.config, args[0], output)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file (defaults to the artifact's file name)")
	return cmd
}
