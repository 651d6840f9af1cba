package progrock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	"go.trai.ch/impacted/internal/core/ports"
	"go.trai.ch/impacted/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newTestRecorder(t *testing.T) (*Recorder, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	r := NewRecorder(progrock.NewTape(), log)
	clock := time.Unix(1_700_000_000, 0)
	r.now = func() time.Time {
		clock = clock.Add(1500 * time.Microsecond)
		return clock
	}
	return r, log
}

func TestRecorder_Record(t *testing.T) {
	t.Parallel()

	r, log := newTestRecorder(t)
	log.EXPECT().Debug("build graph finished in 1.5ms")

	ctx, vertex := r.Record(context.Background(), "build graph")

	fromCtx, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, vertex, fromCtx)

	_, err := vertex.Stdout().Write([]byte("processed 3 files\n"))
	require.NoError(t, err)

	vertex.Complete(nil)
	require.NoError(t, r.Close())
}

func TestRecorder_CachedAndFailed(t *testing.T) {
	t.Parallel()

	r, log := newTestRecorder(t)
	gomock.InOrder(
		log.EXPECT().Debug("build graph finished in 1.5ms (cached)"),
		log.EXPECT().Debug("collect changes failed after 1.5ms"),
	)

	_, cached := r.Record(context.Background(), "build graph")
	cached.Cached()
	cached.Complete(nil)

	_, failed := r.Record(context.Background(), "collect changes")
	failed.Complete(errors.New("bad ref"))
}

func TestRecorder_RepeatedNamesGetDistinctVertices(t *testing.T) {
	t.Parallel()

	r, log := newTestRecorder(t)
	log.EXPECT().Debug(gomock.Any()).Times(2)

	_, first := r.Record(context.Background(), "analyze impact")
	_, second := r.Record(context.Background(), "analyze impact")
	assert.NotSame(t, first, second)

	first.Complete(nil)
	second.Complete(nil)
}
