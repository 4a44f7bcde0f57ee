package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/rig/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "run [ARGS...]",
		Short:              "Invoke the build tool with a fresh version string",
		Long:               "Run forwards every argument verbatim to the build-tool wrapper. Without arguments the configured default arguments are used. Flags are not parsed, so select a configuration with RIG_CONFIG.",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Run(cmd.Context(), args, app.RunOptions{ConfigPath: c.config})
		},
	}
}
