package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newVersionStringCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version-string",
		Short: "Print the version derived from git describe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := c.app.VersionString(cmd.Context(), c.config)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
			return err
		},
	}
}

func (c *CLI) newSnapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Print the package snapshot identifier native packages are pinned to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pin, err := c.app.Snapshot(cmd.Context(), c.config)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), pin.String())
			return err
		},
	}
}

func (c *CLI) newEntryPointCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "entrypoint",
		Short: "Write the build entry point script",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := c.app.GenerateEntryPoint(c.config, output)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Script path (defaults to entrypoint.path)")
	return cmd
}
