package summary_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/ui/summary"
)

func TestRender(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	err := summary.Render(&buf, []domain.StepReport{
		{Name: "install system:git", Status: domain.StepCached},
		{Name: "warm gradle", Status: domain.StepCompleted},
		{Name: "clean workspace", Status: domain.StepSkipped},
		{Name: "install android-sdk:platform-tools", Status: domain.StepFailed},
	})
	require.NoError(t, err)

	want := "provision\n" +
		"~ install system:git cached\n" +
		"✓ warm gradle completed\n" +
		"○ clean workspace skipped\n" +
		"✗ install android-sdk:platform-tools failed\n"
	assert.Equal(t, want, buf.String())
}
