// Package app implements the application layer for mason.
package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/mason/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// ToolchainEnvVar overrides toolchain discovery when no explicit path is
// given on the command line or in the config file.
const ToolchainEnvVar = "MASON_TOOLCHAIN"

// Default tool names looked up when neither flags nor config provide a path.
const (
	toolNameGenerator      = "gyb"
	toolNameConfigure      = "cmake"
	toolNameBuildTool      = "ninja"
	toolNameToolchain      = "clang"
	toolNameTestTool       = "ctest"
	toolNamePatternRunner  = "lit"
	toolNamePatternChecker = "FileCheck"
)

// Default project layout relative to the working directory.
const (
	defaultSourceDir = "Sources"
	defaultBuildDir  = ".build"
	defaultTestsDir  = "tests"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	pipeline     *pipeline.Pipeline
	resolver     ports.ToolResolver
	logger       ports.Logger
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, pipe *pipeline.Pipeline, resolver ports.ToolResolver, log ports.Logger) *App {
	return &App{
		configLoader: loader,
		pipeline:     pipe,
		resolver:     resolver,
		logger:       log,
	}
}

// BuildOptions carries the command-line settings for one build invocation.
// Empty strings and zero values mean "not set"; config-file defaults fill
// those in before the built-in fallbacks apply.
type BuildOptions struct {
	SourceDir    string
	GeneratedDir string
	BuildDir     string
	TestsDir     string

	GeneratorPath      string
	ConfigurePath      string
	BuildToolPath      string
	ToolchainPath      string
	TestToolPath       string
	PatternRunnerPath  string
	PatternCheckerPath string
	TestHelperPath     string

	Target      string
	Release     bool
	Verbose     bool
	Reconfigure bool
	RunTests    bool
	Jobs        int
}

// Build assembles the full configuration and drives one pipeline run.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	defaults, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	cfg, err := a.assemble(ctx, defaults, opts)
	if err != nil {
		return err
	}

	if err := a.pipeline.Run(ctx, cfg); err != nil {
		return errors.Join(domain.ErrPipelineFailed, err)
	}
	return nil
}

// assemble merges flags over config-file defaults, resolves every tool the
// run needs, and fixes the directory layout. Flags always win.
//
//nolint:cyclop // sequential settings assembly
func (a *App) assemble(ctx context.Context, defaults *domain.BuildDefaults, opts BuildOptions) (*domain.BuildConfiguration, error) {
	sourceRoot, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "cannot determine working directory")
	}

	sourceDir := pick(opts.SourceDir, defaults.SourceDir, defaultSourceDir)
	buildDir := pick(opts.BuildDir, defaults.BuildDir, defaultBuildDir)

	cfg := &domain.BuildConfiguration{
		SourceDir:    sourceDir,
		GeneratedDir: pick(opts.GeneratedDir, defaults.GeneratedDir, filepath.Join(sourceDir, "generated")),
		ScratchDir:   filepath.Join(buildDir, "scratch"),
		BuildDir:     buildDir,
		SourceRoot:   sourceRoot,
		TestsDir:     pick(opts.TestsDir, defaults.TestsDir, defaultTestsDir),

		Target:              pick(opts.Target, defaults.Target, ""),
		Release:             opts.Release,
		Verbose:             opts.Verbose,
		Reconfigure:         opts.Reconfigure,
		RunTests:            opts.RunTests,
		Jobs:                pickJobs(opts.Jobs, defaults.Jobs),
		WarnEmptyGeneration: defaults.WarnEmptyGeneration,
	}

	cfg.ToolchainPath, err = a.resolver.Resolve(ctx, toolNameToolchain,
		pick(opts.ToolchainPath, defaults.ToolchainPath, ""), ToolchainEnvVar)
	if err != nil {
		return nil, err
	}
	cfg.GeneratorPath, err = a.resolver.Resolve(ctx, toolNameGenerator,
		pick(opts.GeneratorPath, defaults.GeneratorPath, ""), "")
	if err != nil {
		return nil, err
	}
	cfg.ConfigurePath, err = a.resolver.Resolve(ctx, toolNameConfigure,
		pick(opts.ConfigurePath, defaults.ConfigurePath, ""), "")
	if err != nil {
		return nil, err
	}
	cfg.BuildToolPath, err = a.resolver.Resolve(ctx, toolNameBuildTool,
		pick(opts.BuildToolPath, defaults.BuildToolPath, ""), "")
	if err != nil {
		return nil, err
	}

	if cfg.RunTests {
		if err := a.resolveTestTools(ctx, defaults, opts, cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// resolveTestTools locates the test-phase executables. The pattern checker
// is optional when not requested explicitly; the pattern runner passes a
// checker parameter only if one was found.
func (a *App) resolveTestTools(ctx context.Context, defaults *domain.BuildDefaults, opts BuildOptions, cfg *domain.BuildConfiguration) error {
	var err error
	cfg.TestToolPath, err = a.resolver.Resolve(ctx, toolNameTestTool,
		pick(opts.TestToolPath, defaults.TestToolPath, ""), "")
	if err != nil {
		return err
	}
	cfg.PatternRunnerPath, err = a.resolver.Resolve(ctx, toolNamePatternRunner,
		pick(opts.PatternRunnerPath, defaults.PatternRunnerPath, ""), "")
	if err != nil {
		return err
	}

	explicitChecker := pick(opts.PatternCheckerPath, defaults.PatternCheckerPath, "")
	cfg.PatternCheckerPath, err = a.resolver.Resolve(ctx, toolNamePatternChecker, explicitChecker, "")
	if err != nil {
		if explicitChecker == "" && errors.Is(err, domain.ErrExecutableNotFound) {
			a.logger.Warn("pattern checker not found, running pattern tests without one")
			cfg.PatternCheckerPath = ""
		} else {
			return err
		}
	}

	// The helper override skips discovery through the build tool.
	if explicit := pick(opts.TestHelperPath, defaults.TestHelperPath, ""); explicit != "" {
		cfg.TestHelperPath, err = a.resolver.Resolve(ctx, pipeline.TestHelperName, explicit, "")
		if err != nil {
			return err
		}
	}
	return nil
}

// pick returns the first non-empty value.
func pick(flag, configured, fallback string) string {
	if flag != "" {
		return flag
	}
	if configured != "" {
		return configured
	}
	return fallback
}

func pickJobs(flag, configured int) int {
	if flag > 0 {
		return flag
	}
	return configured
}
