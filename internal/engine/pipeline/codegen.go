package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// CodeGen runs the external generator over every input file in the source
// directory and reconciles the results into the generated-sources directory.
type CodeGen struct {
	runner ports.Runner
	syncer ports.Syncer
	logger ports.Logger
}

// NewCodeGen creates the code generation phase.
func NewCodeGen(runner ports.Runner, syncer ports.Syncer, logger ports.Logger) *CodeGen {
	return &CodeGen{runner: runner, syncer: syncer, logger: logger}
}

// Run generates all units and syncs them into place. The first generator
// failure aborts the phase; units already synced stay on disk, a re-run
// reconciles them again.
func (p *CodeGen) Run(ctx context.Context, cfg *domain.BuildConfiguration) error {
	if err := os.MkdirAll(cfg.ScratchDir, 0o750); err != nil {
		return errors.Join(domain.ErrGenerationFailed,
			zerr.With(zerr.Wrap(err, "cannot create scratch directory"), "path", cfg.ScratchDir))
	}
	if err := os.MkdirAll(cfg.GeneratedDir, 0o750); err != nil {
		return errors.Join(domain.ErrGenerationFailed,
			zerr.With(zerr.Wrap(err, "cannot create generated directory"), "path", cfg.GeneratedDir))
	}

	units, err := enumerateUnits(cfg.SourceDir)
	if err != nil {
		return errors.Join(domain.ErrGenerationFailed, err)
	}

	if len(units) == 0 {
		if cfg.WarnEmptyGeneration {
			p.logger.Warn("no generator inputs found in " + cfg.SourceDir)
		}
		return nil
	}

	// Units are independent, so a bounded fan-out is safe. The default of
	// one job keeps processing strictly sequential.
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.EffectiveJobs())

	for _, unit := range units {
		g.Go(func() error {
			// A failed unit cancels the group; later units must not start.
			if err := ctx.Err(); err != nil {
				return err
			}
			return p.generateUnit(ctx, cfg, unit)
		})
	}

	if err := g.Wait(); err != nil {
		return errors.Join(domain.ErrGenerationFailed, err)
	}
	return nil
}

func (p *CodeGen) generateUnit(ctx context.Context, cfg *domain.BuildConfiguration, unit domain.GenerationUnit) error {
	input := filepath.Join(cfg.SourceDir, unit.Input)
	scratch := filepath.Join(cfg.ScratchDir, unit.Output)

	_, err := p.runner.Run(ctx, domain.RunRequest{
		Command:     []string{cfg.GeneratorPath, input, "-o", scratch},
		Capture:     true,
		MergeStderr: true,
		Echo:        cfg.Verbose,
	})
	if err != nil {
		return zerr.With(err, "input", unit.Input)
	}

	decision, err := p.syncer.SyncIfChanged(scratch, filepath.Join(cfg.GeneratedDir, unit.Output))
	if err != nil {
		return errors.Join(domain.ErrSyncFailed, zerr.With(err, "output", unit.Output))
	}
	if decision == domain.SyncReplaced && cfg.Verbose {
		p.logger.Info("updated generated source " + unit.Output)
	}
	return nil
}

// enumerateUnits lists the generator inputs in the source directory. A
// missing directory counts as empty, matching the no-op contract for a
// source tree without generated code.
func enumerateUnits(sourceDir string) ([]domain.GenerationUnit, error) {
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "cannot list source directory"), "path", sourceDir)
	}

	var units []domain.GenerationUnit
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if unit, ok := domain.NewGenerationUnit(entry.Name()); ok {
			units = append(units, unit)
		}
	}
	return units, nil
}
