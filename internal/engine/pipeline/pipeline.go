// Package pipeline implements the fixed build pipeline: code generation,
// native configure+build, and the optional test phase.
package pipeline

import (
	"context"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
)

// Pipeline composes the phases in their fixed order and short-circuits on
// the first failure. Generated sources must exist before the build observes
// them, and the build must finish before any tests run.
type Pipeline struct {
	codegen *CodeGen
	native  *ConfigureBuild
	test    *Test
	tracer  ports.Tracer
	logger  ports.Logger
}

// New creates a Pipeline from its collaborators.
func New(runner ports.Runner, syncer ports.Syncer, logger ports.Logger, tracer ports.Tracer) *Pipeline {
	return &Pipeline{
		codegen: NewCodeGen(runner, syncer, logger),
		native:  NewConfigureBuild(runner, logger),
		test:    NewTest(runner, logger),
		tracer:  tracer,
		logger:  logger,
	}
}

// Run drives one pipeline invocation for the given configuration.
func (p *Pipeline) Run(ctx context.Context, cfg *domain.BuildConfiguration) error {
	p.logger.Info("generating sources")
	if err := p.runPhase(ctx, "generate", cfg, p.codegen.Run); err != nil {
		return err
	}

	p.logger.Info("building")
	if err := p.runPhase(ctx, "build", cfg, p.native.Run); err != nil {
		return err
	}

	if !cfg.RunTests {
		return nil
	}

	p.logger.Info("testing")
	return p.runPhase(ctx, "test", cfg, p.test.Run)
}

func (p *Pipeline) runPhase(
	ctx context.Context,
	name string,
	cfg *domain.BuildConfiguration,
	phase func(context.Context, *domain.BuildConfiguration) error,
) error {
	ctx, span := p.tracer.Start(ctx, name)
	defer span.End()

	if err := phase(ctx, cfg); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}
