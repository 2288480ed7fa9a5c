package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/nativedev/internal/core/domain"
)

// newServeCmd is the static file server web builds spawn as their child process.
func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "serve",
		Short:  "Serve a directory of static files on localhost",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			port, _ := cmd.Flags().GetInt("port")
			dir, _ := cmd.Flags().GetString("dir")
			return c.app.Serve(cmd.Context(), dir, port)
		},
	}
	cmd.Flags().Int("port", domain.DefaultWebPort, "Port to listen on")
	cmd.Flags().String("dir", domain.DefaultWebOutputDir, "Directory to serve")
	return cmd
}
