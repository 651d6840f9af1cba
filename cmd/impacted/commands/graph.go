package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/impacted/internal/app"
)

func (c *CLI) newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the import graph of the test files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := options(cmd)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			return c.app.Graph(cmd.Context(), app.GraphOptions{
				Options: opts,
				Format:  format,
				Stdout:  cmd.OutOrStdout(),
			})
		},
	}
	cmd.Flags().StringP("format", "f", app.FormatText, "Output format: text, json or dot")
	return cmd
}
