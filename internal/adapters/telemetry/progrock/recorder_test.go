package progrock_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	rigprogrock "go.trai.ch/rig/internal/adapters/telemetry/progrock"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports"
)

type captureWriter struct {
	mu       sync.Mutex
	vertexes map[string]*progrock.Vertex
	logs     strings.Builder
	closed   bool
}

func newCaptureWriter() *captureWriter {
	return &captureWriter{vertexes: make(map[string]*progrock.Vertex)}
}

func (w *captureWriter) WriteStatus(update *progrock.StatusUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, v := range update.Vertexes {
		w.vertexes[v.Id] = v
	}
	for _, l := range update.Logs {
		w.logs.Write(l.Data)
	}
	return nil
}

func (w *captureWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func (w *captureWriter) byName(name string) []*progrock.Vertex {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []*progrock.Vertex
	for _, v := range w.vertexes {
		if v.Name == name {
			out = append(out, v)
		}
	}
	return out
}

func TestNew_PrintsProgress(t *testing.T) {
	var buf bytes.Buffer
	rec := rigprogrock.New(&buf)

	_, vertex := rec.Record(context.Background(), "install system:git")
	vertex.Log(domain.LogLevelInfo, "installing git=1:2.43.0-1ubuntu7")
	vertex.Complete(nil)
	require.NoError(t, rec.Close())

	out := buf.String()
	assert.Contains(t, out, "install system:git")
	assert.Contains(t, out, "[INFO] installing git=1:2.43.0-1ubuntu7")
	assert.Contains(t, out, "DONE")
}

func TestRecorder_Record(t *testing.T) {
	w := newCaptureWriter()
	rec := rigprogrock.NewRecorder(w)

	ctx, vertex := rec.Record(context.Background(), "install system:git")
	fromCtx, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, vertex, fromCtx)

	vertex.Log(domain.LogLevelInfo, "installing")
	vertex.Complete(nil)

	vs := w.byName("install system:git")
	require.Len(t, vs, 1)
	assert.NotNil(t, vs[0].Completed)
	assert.Nil(t, vs[0].Error)
	assert.Contains(t, w.logs.String(), "[INFO] installing")
}

func TestRecorder_CompleteWithError(t *testing.T) {
	w := newCaptureWriter()
	rec := rigprogrock.NewRecorder(w)

	_, vertex := rec.Record(context.Background(), "fetch")
	vertex.Log(domain.LogLevelError, "digest mismatch")
	vertex.Complete(errors.New("boom"))

	vs := w.byName("fetch")
	require.Len(t, vs, 1)
	require.NotNil(t, vs[0].Error)
	assert.Equal(t, "boom", *vs[0].Error)
	assert.Contains(t, w.logs.String(), "[ERROR] digest mismatch")
}

func TestRecorder_Cached(t *testing.T) {
	w := newCaptureWriter()
	rec := rigprogrock.NewRecorder(w)

	_, vertex := rec.Record(context.Background(), "warm gradle")
	vertex.Cached()
	vertex.Complete(nil)

	vs := w.byName("warm gradle")
	require.Len(t, vs, 1)
	assert.True(t, vs[0].Cached)
}

func TestRecorder_RepeatedNamesGetDistinctVertices(t *testing.T) {
	w := newCaptureWriter()
	rec := rigprogrock.NewRecorder(w)

	_, first := rec.Record(context.Background(), "clean")
	first.Complete(nil)
	_, second := rec.Record(context.Background(), "clean")
	second.Complete(nil)

	assert.Len(t, w.byName("clean"), 2)
}

func TestRecorder_Close(t *testing.T) {
	w := newCaptureWriter()
	rec := rigprogrock.NewRecorder(w)
	require.NoError(t, rec.Close())
	assert.True(t, w.closed)
}
