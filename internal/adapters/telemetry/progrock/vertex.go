package progrock

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/vito/progrock"
	"go.trai.ch/impacted/internal/core/ports"
)

var _ ports.Vertex = (*Vertex)(nil)

// Vertex implements ports.Vertex wrapping *progrock.VertexRecorder.
type Vertex struct {
	vertex  *progrock.VertexRecorder
	name    string
	logger  ports.Logger
	now     func() time.Time
	started time.Time
	cached  atomic.Bool
}

// Stdout returns a writer to capture standard output stream.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Complete marks the vertex as finished (successfully or with an error).
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
	if v.logger == nil {
		return
	}

	elapsed := v.now().Sub(v.started).Round(time.Microsecond)
	switch {
	case err != nil:
		v.logger.Debug(fmt.Sprintf("%s failed after %s", v.name, elapsed))
	case v.cached.Load():
		v.logger.Debug(fmt.Sprintf("%s finished in %s (cached)", v.name, elapsed))
	default:
		v.logger.Debug(fmt.Sprintf("%s finished in %s", v.name, elapsed))
	}
}

// Cached marks the vertex as a cache hit.
func (v *Vertex) Cached() {
	v.cached.Store(true)
	v.vertex.Cached()
}
