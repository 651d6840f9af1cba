package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/impacted/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print impacted test files whenever files change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := options(cmd)
			if err != nil {
				return err
			}
			return c.app.Watch(cmd.Context(), app.WatchOptions{
				Options: opts,
				Stdout:  cmd.OutOrStdout(),
			})
		},
	}
}
