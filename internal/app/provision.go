package app

import (
	"context"

	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/engine/pipeline"
)

// ProvisionOptions tunes a provisioning run.
type ProvisionOptions struct {
	ConfigPath string
	// AcceptLicenses grants license acceptance in addition to licenses.accept.
	AcceptLicenses bool
}

// Provision installs every component of the plan and writes the entry point.
// Reports are returned even when a step fails.
func (a *App) Provision(ctx context.Context, opts ProvisionOptions) ([]domain.StepReport, error) {
	plan, err := a.load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.AcceptLicenses {
		plan.AcceptLicenses = true
	}

	return a.pipeline.Run(ctx, a.steps(plan))
}

// steps lays out the provisioning order: toolchain, cache warm-up, workspace
// clean, snapshot pin, native packages, entry point.
func (a *App) steps(plan *domain.Plan) []pipeline.Step {
	base := domain.InstallOptions{AcceptLicenses: plan.AcceptLicenses}

	steps := make([]pipeline.Step, 0, len(plan.Toolchain)+len(plan.Native)+4)
	for _, c := range plan.Toolchain {
		steps = append(steps, a.installStep(c, func() domain.InstallOptions { return base }))
	}

	steps = append(steps,
		pipeline.Step{
			Name: "warm gradle",
			Skip: !plan.Gradle.Warm,
			Run: func(ctx context.Context) (bool, error) {
				return false, a.warmer.Warm(ctx, plan.Gradle)
			},
		},
		pipeline.Step{
			Name: "clean workspace",
			Skip: !plan.Clean,
			Run: func(ctx context.Context) (bool, error) {
				return false, a.resolver.Clean(ctx, plan.Root)
			},
		},
	)

	var pin domain.SnapshotPin
	steps = append(steps, pipeline.Step{
		Name: "pin snapshot",
		Skip: len(plan.Native) == 0,
		Run: func(ctx context.Context) (bool, error) {
			p, err := a.snapshotPin(ctx, plan)
			if err != nil {
				return false, err
			}
			pin = p
			a.logger.Info("package snapshot " + pin.String())
			return false, nil
		},
	})

	for _, c := range plan.Native {
		steps = append(steps, a.installStep(c, func() domain.InstallOptions {
			opts := base
			opts.Snapshot = &pin
			return opts
		}))
	}

	return append(steps, pipeline.Step{
		Name: "write entrypoint",
		Run: func(_ context.Context) (bool, error) {
			return false, a.generator.Write(plan.EntryPoint)
		},
	})
}

// installStep defers building the options until the step runs, so that native
// packages see the pin resolved by an earlier step.
func (a *App) installStep(c domain.Component, opts func() domain.InstallOptions) pipeline.Step {
	return pipeline.Step{
		Name: "install " + c.ID,
		Run: func(ctx context.Context) (bool, error) {
			res, err := a.installer.Install(ctx, c, opts())
			if err != nil {
				return false, err
			}
			return res.AlreadyInstalled, nil
		},
	}
}
