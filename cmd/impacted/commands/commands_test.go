package commands_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/impacted/cmd/impacted/commands"
	"go.trai.ch/impacted/internal/app"
)

type mockApp struct {
	logFormat  string
	verbose    bool
	loggingErr error

	runFunc   func(ctx context.Context, opts app.RunOptions) error
	graphFunc func(ctx context.Context, opts app.GraphOptions) error
	watchFunc func(ctx context.Context, opts app.WatchOptions) error
	statsFunc func(opts app.Options) (app.CacheInfo, error)
	clearFunc func(opts app.Options) (string, error)
}

func (m *mockApp) ConfigureLogging(format string, verbose bool) error {
	m.logFormat = format
	m.verbose = verbose
	return m.loggingErr
}

func (m *mockApp) Run(ctx context.Context, opts app.RunOptions) error {
	if m.runFunc != nil {
		return m.runFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Graph(ctx context.Context, opts app.GraphOptions) error {
	if m.graphFunc != nil {
		return m.graphFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Watch(ctx context.Context, opts app.WatchOptions) error {
	if m.watchFunc != nil {
		return m.watchFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) CacheStats(opts app.Options) (app.CacheInfo, error) {
	if m.statsFunc != nil {
		return m.statsFunc(opts)
	}
	return app.CacheInfo{}, nil
}

func (m *mockApp) ClearCache(opts app.Options) (string, error) {
	if m.clearFunc != nil {
		return m.clearFunc(opts)
	}
	return "", nil
}

func execute(t *testing.T, mock *mockApp, stdin string, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(mock)
	out := new(bytes.Buffer)
	cli.SetOutput(out, out)
	cli.SetInput(strings.NewReader(stdin))
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return out.String(), err
}

func TestCommands_Root(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.RunOptions
		called := false
		mock := &mockApp{
			runFunc: func(_ context.Context, opts app.RunOptions) error {
				captured = opts
				called = true
				return nil
			},
		}

		_, err := execute(t, mock, "",
			"src/a.ts", "src/b.ts",
			"-C", "web",
			"-p", "test/**/*.test.ts", "--pattern", "e2e/smoke.ts",
			"-e", "dist/", "--exclude", "vendor/",
			"--cache-file", "cache.json",
			"-j", "4",
			"--metrics-file", "metrics.prom",
			"--relative",
			"--log-format", "json",
			"--verbose",
		)
		require.NoError(t, err)
		require.True(t, called)

		assert.Equal(t, []string{"src/a.ts", "src/b.ts"}, captured.Files)
		assert.Equal(t, "web", captured.Dir)
		assert.Equal(t, []string{"test/**/*.test.ts", "e2e/smoke.ts"}, captured.Patterns)
		assert.Equal(t, []string{"dist/", "vendor/"}, captured.Exclude)
		assert.Equal(t, "cache.json", captured.CacheFile)
		assert.Equal(t, 4, captured.Workers)
		assert.Equal(t, "metrics.prom", captured.MetricsFile)
		assert.True(t, captured.Relative)
		assert.False(t, captured.NoCache)
		assert.Empty(t, captured.Since)
		assert.Empty(t, captured.Diff)
		assert.NotNil(t, captured.Stdin)
		assert.NotNil(t, captured.Stdout)

		assert.Equal(t, "json", mock.logFormat)
		assert.True(t, mock.verbose)
	})

	t.Run("passes change sources", func(t *testing.T) {
		var captured app.RunOptions
		mock := &mockApp{
			runFunc: func(_ context.Context, opts app.RunOptions) error {
				captured = opts
				return nil
			},
		}

		_, err := execute(t, mock, "", "--since", "origin/main", "--no-cache")
		require.NoError(t, err)
		assert.Equal(t, "origin/main", captured.Since)
		assert.True(t, captured.NoCache)
		assert.Empty(t, captured.Files)
		assert.Equal(t, app.LogFormatPretty, mock.logFormat)

		_, err = execute(t, mock, "", "--diff", "-")
		require.NoError(t, err)
		assert.Equal(t, "-", captured.Diff)
	})

	t.Run("reads stdin and writes stdout", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, opts app.RunOptions) error {
				buf := new(bytes.Buffer)
				_, _ = buf.ReadFrom(opts.Stdin)
				_, err := opts.Stdout.Write(bytes.ToUpper(buf.Bytes()))
				return err
			},
		}

		out, err := execute(t, mock, "src/a.ts\n")
		require.NoError(t, err)
		assert.Equal(t, "SRC/A.TS\n", out)
	})

	t.Run("rejects since together with diff", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ app.RunOptions) error {
				panic("should not be called")
			},
		}

		_, err := execute(t, mock, "", "--since", "HEAD", "--diff", "-")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "since")
	})

	t.Run("rejects negative workers", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ app.RunOptions) error {
				panic("should not be called")
			},
		}

		_, err := execute(t, mock, "", "-j", "-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--workers must not be negative")
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ app.RunOptions) error {
				return errors.New("simulated error")
			},
		}

		_, err := execute(t, mock, "", "src/a.ts")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("stops on logging configuration failure", func(t *testing.T) {
		mock := &mockApp{
			loggingErr: errors.New("unknown log format"),
			runFunc: func(_ context.Context, _ app.RunOptions) error {
				panic("should not be called")
			},
		}

		_, err := execute(t, mock, "", "--log-format", "xml")
		require.Error(t, err)
		assert.Equal(t, "xml", mock.logFormat)
	})
}

func TestCommands_Graph(t *testing.T) {
	var captured app.GraphOptions
	mock := &mockApp{
		graphFunc: func(_ context.Context, opts app.GraphOptions) error {
			captured = opts
			return nil
		},
	}

	_, err := execute(t, mock, "", "graph", "--format", "dot", "-p", "**/*.spec.ts", "--relative")
	require.NoError(t, err)
	assert.Equal(t, app.FormatDot, captured.Format)
	assert.Equal(t, []string{"**/*.spec.ts"}, captured.Patterns)
	assert.True(t, captured.Relative)
	assert.NotNil(t, captured.Stdout)

	_, err = execute(t, mock, "", "graph")
	require.NoError(t, err)
	assert.Equal(t, app.FormatText, captured.Format)

	_, err = execute(t, mock, "", "graph", "extra")
	require.Error(t, err)
}

func TestCommands_Watch(t *testing.T) {
	var captured app.WatchOptions
	mock := &mockApp{
		watchFunc: func(_ context.Context, opts app.WatchOptions) error {
			captured = opts
			return nil
		},
	}

	_, err := execute(t, mock, "", "watch", "-C", "web", "-e", "dist/")
	require.NoError(t, err)
	assert.Equal(t, "web", captured.Dir)
	assert.Equal(t, []string{"dist/"}, captured.Exclude)
	assert.NotNil(t, captured.Stdout)
}

func TestCommands_Cache(t *testing.T) {
	t.Run("stats", func(t *testing.T) {
		var captured app.Options
		mock := &mockApp{
			statsFunc: func(opts app.Options) (app.CacheInfo, error) {
				captured = opts
				return app.CacheInfo{Path: "/repo/.impacted/cache.json", Entries: 42}, nil
			},
		}

		out, err := execute(t, mock, "", "cache", "stats", "--cache-file", "/tmp/c.json")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/c.json", captured.CacheFile)

		g := goldie.New(t)
		g.Assert(t, "cache_stats", []byte(out))
	})

	t.Run("stats failure", func(t *testing.T) {
		mock := &mockApp{
			statsFunc: func(_ app.Options) (app.CacheInfo, error) {
				return app.CacheInfo{}, errors.New("corrupt cache")
			},
		}

		out, err := execute(t, mock, "", "cache", "stats")
		require.Error(t, err)
		assert.Empty(t, out)
	})

	t.Run("clear", func(t *testing.T) {
		called := false
		mock := &mockApp{
			clearFunc: func(opts app.Options) (string, error) {
				called = true
				assert.Equal(t, "web", opts.Dir)
				return "/repo/web/.impacted/cache.json", nil
			},
		}

		_, err := execute(t, mock, "", "cache", "clear", "-C", "web")
		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("shows usage without subcommand", func(t *testing.T) {
		out, err := execute(t, &mockApp{}, "", "cache")
		require.NoError(t, err)
		assert.Contains(t, out, "Usage:")
	})
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "", "version")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "version", []byte(out))
}

func TestCommands_VersionFlag(t *testing.T) {
	out, err := execute(t, &mockApp{}, "", "--version")
	require.NoError(t, err)
	assert.Equal(t, "impacted version dev (commit: none, date: unknown)\n", out)
}
