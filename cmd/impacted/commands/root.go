// Package commands implements the CLI commands for impacted.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/impacted/internal/app"
	"go.trai.ch/impacted/internal/build"
	"go.trai.ch/zerr"
)

// CLI represents the command line interface for impacted.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	ConfigureLogging(format string, verbose bool) error
	Run(ctx context.Context, opts app.RunOptions) error
	Graph(ctx context.Context, opts app.GraphOptions) error
	Watch(ctx context.Context, opts app.WatchOptions) error
	CacheStats(opts app.Options) (app.CacheInfo, error)
	ClearCache(opts app.Options) (string, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:   "impacted [files...]",
		Short: "List the test files impacted by a set of changed files",
		Long: `impacted follows the import graph of JavaScript and TypeScript test files
and prints every test that transitively depends on a changed file.

Changed files are read from the arguments, from --since, from --diff,
or one per line from stdin.`,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           build.Version,
		PersistentPreRunE: c.configureLogging,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := options(cmd)
			if err != nil {
				return err
			}
			since, _ := cmd.Flags().GetString("since")
			diff, _ := cmd.Flags().GetString("diff")
			return c.app.Run(cmd.Context(), app.RunOptions{
				Options: opts,
				Since:   since,
				Diff:    diff,
				Files:   args,
				Stdin:   cmd.InOrStdin(),
				Stdout:  cmd.OutOrStdout(),
			})
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.Flags().String("since", "", "Compare the working tree against a git revision")
	rootCmd.Flags().String("diff", "", "Read changed files from a unified diff file, or stdin with -")
	rootCmd.MarkFlagsMutuallyExclusive("since", "diff")

	flags := rootCmd.PersistentFlags()
	flags.StringP("dir", "C", "", "Run as if started in this directory")
	flags.StringArrayP("pattern", "p", nil, "Test file glob or path, repeatable (overrides the config file)")
	flags.StringArrayP("exclude", "e", nil, "Path fragment excluded from the graph, repeatable")
	flags.String("cache-file", "", "Persist parsed imports to this file")
	flags.Bool("no-cache", false, "Do not read or write the persisted cache")
	flags.IntP("workers", "j", 0, "Number of files parsed concurrently (default: number of CPUs)")
	flags.String("metrics-file", "", "Write prometheus metrics to this textfile")
	flags.Bool("relative", false, "Print paths relative to the working directory")
	flags.String("log-format", app.LogFormatPretty, "Log format: pretty or json")
	flags.Bool("verbose", false, "Enable debug logging")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newGraphCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCacheCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// SetInput sets the input stream for the root command. Used for testing.
func (c *CLI) SetInput(in io.Reader) {
	c.rootCmd.SetIn(in)
}

func (c *CLI) configureLogging(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("log-format")
	verbose, _ := cmd.Flags().GetBool("verbose")
	return c.app.ConfigureLogging(format, verbose)
}

// options reads the persistent flags shared by every command.
func options(cmd *cobra.Command) (app.Options, error) {
	flags := cmd.Flags()
	workers, err := flags.GetInt("workers")
	if err != nil {
		return app.Options{}, err
	}
	if workers < 0 {
		return app.Options{}, zerr.With(zerr.New("--workers must not be negative"), "workers", workers)
	}

	var opts app.Options
	opts.Dir, _ = flags.GetString("dir")
	opts.Patterns, _ = flags.GetStringArray("pattern")
	opts.Exclude, _ = flags.GetStringArray("exclude")
	opts.CacheFile, _ = flags.GetString("cache-file")
	opts.NoCache, _ = flags.GetBool("no-cache")
	opts.MetricsFile, _ = flags.GetString("metrics-file")
	opts.Relative, _ = flags.GetBool("relative")
	opts.Workers = workers
	return opts, nil
}
