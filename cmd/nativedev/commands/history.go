package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/nativedev/internal/app"
)

func (c *CLI) newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the most recent builds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("path")
			limit, _ := cmd.Flags().GetInt("limit")
			return c.app.History(cmd.Context(), app.HistoryOptions{Path: path, Limit: limit})
		},
	}
	cmd.Flags().StringP("path", "C", ".", "Project directory")
	cmd.Flags().IntP("limit", "n", 20, "Number of builds to show")
	return cmd
}
