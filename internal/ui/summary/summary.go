// Package summary renders the result of a provisioning run.
package summary

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/ui/output"
	"go.trai.ch/rig/internal/ui/style"
)

// Render writes one line per step report.
func Render(w io.Writer, reports []domain.StepReport) error {
	renderer := lipgloss.NewRenderer(w)
	renderer.SetColorProfile(output.ColorProfile())

	var b strings.Builder
	b.WriteString(renderer.NewStyle().Inherit(style.Heading).Render("provision") + "\n")
	for _, r := range reports {
		icon, st := decorate(r.Status)
		line := renderer.NewStyle().Inherit(st).Render(icon) + " " +
			renderer.NewStyle().Inherit(style.StepName).Render(r.Name) + " " +
			renderer.NewStyle().Inherit(style.Cached).Render(string(r.Status))
		b.WriteString(line + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func decorate(status domain.StepStatus) (string, lipgloss.Style) {
	switch status {
	case domain.StepCompleted:
		return style.Check, style.Completed
	case domain.StepCached:
		return style.Tilde, style.Cached
	case domain.StepFailed:
		return style.Cross, style.Failed
	case domain.StepSkipped:
		return style.Circle, style.Skipped
	case domain.StepRunning:
		return style.Dot, style.Cached
	default:
		return style.Circle, style.Cached
	}
}
