package changes_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/impacted/internal/adapters/changes"
)

func TestLineSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "relative and absolute",
			input: "src/a.ts\n/elsewhere/b.js\n",
			want:  []string{"/repo/src/a.ts", "/elsewhere/b.js"},
		},
		{
			name:  "blank lines and whitespace",
			input: "\n  src/a.ts  \n\t\n\r\nsrc/b.ts\r\n",
			want:  []string{"/repo/src/a.ts", "/repo/src/b.ts"},
		},
		{
			name:  "duplicates dropped",
			input: "src/a.ts\n./src/a.ts\n/repo/src/a.ts\n",
			want:  []string{"/repo/src/a.ts"},
		},
		{
			name:  "no trailing newline",
			input: "../other/c.js",
			want:  []string{"/other/c.js"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := changes.NewLineSource(strings.NewReader(tt.input), "/repo").ChangedFiles(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLineSource_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := changes.NewLineSource(strings.NewReader("a.ts\n"), "/repo").ChangedFiles(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
