package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports"
	"go.trai.ch/rig/internal/core/ports/mocks"
	"go.trai.ch/rig/internal/engine/pipeline"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	telemetry *mocks.MockTelemetry
	vertex    *mocks.MockVertex
	pipeline  *pipeline.Pipeline
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	telemetry := mocks.NewMockTelemetry(ctrl)
	vertex := mocks.NewMockVertex(ctrl)
	telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ports.ContextWithVertex(ctx, vertex), vertex
		},
	).AnyTimes()

	return &fixture{
		telemetry: telemetry,
		vertex:    vertex,
		pipeline:  pipeline.NewPipeline(telemetry, log),
	}
}

func TestPipeline_Run_InOrder(t *testing.T) {
	f := newFixture(t)
	f.vertex.EXPECT().Cached().Times(1)
	f.vertex.EXPECT().Complete(nil).Times(2)

	var order []string
	steps := []pipeline.Step{
		{Name: "install system:git", Run: func(ctx context.Context) (bool, error) {
			_, ok := ports.VertexFromContext(ctx)
			assert.True(t, ok, "step context carries its vertex")
			order = append(order, "git")
			return true, nil
		}},
		{Name: "clean workspace", Skip: true, Run: func(context.Context) (bool, error) {
			t.Error("skipped step must not run")
			return false, nil
		}},
		{Name: "write entrypoint", Run: func(context.Context) (bool, error) {
			order = append(order, "entrypoint")
			return false, nil
		}},
	}

	reports, err := f.pipeline.Run(context.Background(), steps)
	require.NoError(t, err)
	assert.Equal(t, []string{"git", "entrypoint"}, order)
	assert.Equal(t, []domain.StepReport{
		{Name: "install system:git", Status: domain.StepCached},
		{Name: "clean workspace", Status: domain.StepSkipped},
		{Name: "write entrypoint", Status: domain.StepCompleted},
	}, reports)
}

func TestPipeline_Run_StopsAtFirstFailure(t *testing.T) {
	f := newFixture(t)
	cause := zerr.Wrap(domain.ErrIntegrity, "digest mismatch")

	f.vertex.EXPECT().Complete(nil).Times(1)
	f.vertex.EXPECT().Log(domain.LogLevelError, gomock.Any()).Times(1)
	f.vertex.EXPECT().Complete(cause).Times(1)

	steps := []pipeline.Step{
		{Name: "install system:git", Run: func(context.Context) (bool, error) { return false, nil }},
		{Name: "install android-cmdline-tools:cmdline-tools", Run: func(context.Context) (bool, error) { return false, cause }},
		{Name: "install android-sdk:platform-tools", Run: func(context.Context) (bool, error) {
			t.Error("steps after a failure must not run")
			return false, nil
		}},
	}

	reports, err := f.pipeline.Run(context.Background(), steps)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIntegrity)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "install android-cmdline-tools:cmdline-tools", zErr.Metadata()["step"])

	require.Len(t, reports, 3)
	assert.Equal(t, domain.StepCompleted, reports[0].Status)
	assert.Equal(t, domain.StepFailed, reports[1].Status)
	assert.Equal(t, cause, reports[1].Err)
	assert.Equal(t, domain.StepPending, reports[2].Status)

	assert.Equal(t, map[string]domain.StepStatus{
		"install system:git":                          domain.StepCompleted,
		"install android-cmdline-tools:cmdline-tools": domain.StepFailed,
		"install android-sdk:platform-tools":          domain.StepPending,
	}, f.pipeline.StatusMap())
}

func TestPipeline_Run_Cancelled(t *testing.T) {
	f := newFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reports, err := f.pipeline.Run(ctx, []pipeline.Step{
		{Name: "install system:git", Run: func(context.Context) (bool, error) {
			t.Error("cancelled pipeline must not start steps")
			return false, nil
		}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, domain.StepPending, reports[0].Status)
}

func TestPipeline_Run_Empty(t *testing.T) {
	f := newFixture(t)
	reports, err := f.pipeline.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, reports)
}
