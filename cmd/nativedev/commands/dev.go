package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/nativedev/internal/app"
)

func (c *CLI) newDevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Watch the project and rebuild it for the selected platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("path")
			platform, _ := cmd.Flags().GetString("platform")
			outputMode, _ := cmd.Flags().GetString("output-mode")
			autoRebuild, _ := cmd.Flags().GetBool("auto-rebuild")
			statusAddr, _ := cmd.Flags().GetString("status-addr")
			ci, _ := cmd.Flags().GetBool("ci")

			// If --ci is set, override output-mode to "linear"
			if ci {
				outputMode = "linear"
			}

			return c.app.Dev(cmd.Context(), app.DevOptions{
				Path:        path,
				Platform:    platform,
				OutputMode:  outputMode,
				AutoRebuild: autoRebuild,
				StatusAddr:  statusAddr,
			})
		},
	}
	cmd.Flags().StringP("path", "C", ".", "Project directory")
	cmd.Flags().StringP("platform", "p", "", "Initial platform: desktop, ios, android or web")
	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, tui, or linear")
	cmd.Flags().Bool("ci", false, "Use linear output mode (shorthand for --output-mode=linear)")
	cmd.Flags().BoolP("auto-rebuild", "a", false, "Rebuild automatically when sources change")
	cmd.Flags().String("status-addr", "", "Serve the build status over HTTP on this address")
	return cmd
}
