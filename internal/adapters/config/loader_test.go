package config_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/impacted/internal/adapters/config"
	"go.trai.ch/impacted/internal/adapters/fs"
	"go.trai.ch/impacted/internal/core/domain"
	"go.trai.ch/impacted/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T, files fstest.MapFS) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	return config.NewLoader(log, fs.NewMapFSAdapter("/repo", files)), log
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	loader, _ := newLoader(t, fstest.MapFS{"src/a.ts": &fstest.MapFile{}})

	cfg, err := loader.Load("/repo/src")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig("/repo/src"), cfg)
}

func TestLoad_FullFile(t *testing.T) {
	t.Parallel()

	content := `
version: "1"
patterns:
  - "tests/**/*.test.ts"
  - "e2e/*.spec.js"
exclude: ["node_modules", "generated"]
cache:
  file: .impacted/cache.json
workers: 4
metrics:
  file: /var/metrics/impacted.prom
`
	loader, _ := newLoader(t, fstest.MapFS{
		".impacted.yaml": &fstest.MapFile{Data: []byte(content)},
		"packages/web/src/index.ts": &fstest.MapFile{},
	})

	cfg, err := loader.Load("/repo/packages/web/src")
	require.NoError(t, err)
	assert.Equal(t, &domain.Config{
		Root:        "/repo",
		Path:        "/repo/.impacted.yaml",
		Patterns:    []string{"tests/**/*.test.ts", "e2e/*.spec.js"},
		Exclude:     []string{"node_modules", "generated"},
		CacheFile:   "/repo/.impacted/cache.json",
		Workers:     4,
		MetricsFile: "/var/metrics/impacted.prom",
	}, cfg)
}

func TestLoad_NearestFileWins(t *testing.T) {
	t.Parallel()

	loader, _ := newLoader(t, fstest.MapFS{
		".impacted.yaml":              &fstest.MapFile{Data: []byte(`patterns: ["root/**"]`)},
		"packages/web/.impacted.yaml": &fstest.MapFile{Data: []byte(`patterns: ["web/**"]`)},
		"packages/web/src/index.ts":   &fstest.MapFile{},
	})

	cfg, err := loader.Load("/repo/packages/web/src")
	require.NoError(t, err)
	assert.Equal(t, "/repo/packages/web", cfg.Root)
	assert.Equal(t, []string{"web/**"}, cfg.Patterns)
	assert.Equal(t, domain.DefaultExcludes(), cfg.Exclude)
}

func TestLoad_EmptyFileUsesDefaults(t *testing.T) {
	t.Parallel()

	loader, _ := newLoader(t, fstest.MapFS{".impacted.yaml": &fstest.MapFile{}})

	cfg, err := loader.Load("/repo")
	require.NoError(t, err)
	assert.Equal(t, []string{domain.DefaultTestPattern}, cfg.Patterns)
	assert.Equal(t, "/repo/.impacted.yaml", cfg.Path)
}

func TestLoad_ExplicitEmptyExclude(t *testing.T) {
	t.Parallel()

	loader, _ := newLoader(t, fstest.MapFS{".impacted.yaml": &fstest.MapFile{Data: []byte("exclude: []\n")}})

	cfg, err := loader.Load("/repo")
	require.NoError(t, err)
	assert.Empty(t, cfg.Exclude)
	assert.NotNil(t, cfg.Exclude)
}

func TestLoad_DisabledCacheWarns(t *testing.T) {
	t.Parallel()

	loader, log := newLoader(t, fstest.MapFS{".impacted.yaml": &fstest.MapFile{Data: []byte(`
cache:
  file: cache.json
  disabled: true
`)}})
	log.EXPECT().Warn("'cache.file' in .impacted.yaml has no effect while 'cache.disabled' is set")

	cfg, err := loader.Load("/repo")
	require.NoError(t, err)
	assert.Empty(t, cfg.CacheFile)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "malformed yaml", content: "patterns: [", wantErr: domain.ErrConfigParseFailed.Error()},
		{name: "unknown field", content: "pattern: [\"*.ts\"]", wantErr: domain.ErrConfigParseFailed.Error()},
		{name: "unsupported version", content: `version: "2"`, wantErr: domain.ErrInvalidConfig.Error()},
		{name: "negative workers", content: "workers: -1", wantErr: domain.ErrInvalidConfig.Error()},
		{name: "invalid pattern", content: `patterns: ["src/[a"]`, wantErr: domain.ErrInvalidConfig.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			loader, _ := newLoader(t, fstest.MapFS{".impacted.yaml": &fstest.MapFile{Data: []byte(tt.content)}})

			_, err := loader.Load("/repo")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
