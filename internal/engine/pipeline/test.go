package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

// TestHelperName is the helper binary the pattern suite drives. It is built
// by the native build phase and located by asking the build tool.
const TestHelperName = "test-helper"

const (
	// SuitePattern identifies the pattern-matching test suite.
	SuitePattern = "pattern"
	// SuiteUnit identifies the unit-test suite.
	SuiteUnit = "unit"
)

// Test runs the pattern suite and then the unit suite. Both must pass; the
// unit suite is skipped once the pattern suite fails.
type Test struct {
	runner ports.Runner
	logger ports.Logger
}

// NewTest creates the test phase.
func NewTest(runner ports.Runner, logger ports.Logger) *Test {
	return &Test{runner: runner, logger: logger}
}

// Run executes both suites in order.
func (p *Test) Run(ctx context.Context, cfg *domain.BuildConfiguration) error {
	p.logger.Info("running pattern tests")
	if err := p.runPatternSuite(ctx, cfg); err != nil {
		return suiteFailed(SuitePattern, err)
	}

	p.logger.Info("running unit tests")
	if err := p.runUnitSuite(ctx, cfg); err != nil {
		return suiteFailed(SuiteUnit, err)
	}
	return nil
}

func (p *Test) runPatternSuite(ctx context.Context, cfg *domain.BuildConfiguration) error {
	helper := cfg.TestHelperPath
	if helper == "" {
		discovered, err := p.discoverTestHelper(ctx, cfg)
		if err != nil {
			return err
		}
		helper = discovered
	}

	command := []string{cfg.PatternRunnerPath, cfg.TestsDir}
	if cfg.ToolchainPath != "" {
		command = append(command, "--param", "COMPILER="+cfg.ToolchainPath)
	}
	if cfg.PatternCheckerPath != "" {
		command = append(command, "--param", "CHECKER="+cfg.PatternCheckerPath)
	}
	command = append(command, "--param", "HELPER="+helper)

	// Always report failures; hide passing commands unless verbose.
	command = append(command, "--verbose")
	if !cfg.Verbose {
		command = append(command, "--succinct")
	}

	_, err := p.runner.Run(ctx, domain.RunRequest{
		Command: command,
		Echo:    cfg.Verbose,
	})
	return err
}

// discoverTestHelper asks the build tool for its binary output directory
// rather than assuming a fixed layout inside the build directory.
func (p *Test) discoverTestHelper(ctx context.Context, cfg *domain.BuildConfiguration) (string, error) {
	res, err := p.runner.Run(ctx, domain.RunRequest{
		Command:     []string{cfg.BuildToolPath, "-C", cfg.BuildDir, "--show-bin-path"},
		Capture:     true,
		MergeStderr: true,
		Echo:        cfg.Verbose,
	})
	if err != nil {
		return "", zerr.Wrap(err, "cannot discover test helper")
	}

	binDir := strings.TrimSpace(res.Stdout)
	if binDir == "" {
		return "", zerr.New("build tool reported an empty binary path")
	}
	return filepath.Join(binDir, TestHelperName), nil
}

func (p *Test) runUnitSuite(ctx context.Context, cfg *domain.BuildConfiguration) error {
	command := []string{cfg.TestToolPath, cfg.BuildDir}
	if cfg.Verbose {
		command = append(command, "--verbose")
	}

	// The unit tests resolve the compiler through PATH, so its directory is
	// prepended to a child-only copy. The inherited value is extended, never
	// replaced.
	var env []string
	if cfg.ToolchainPath != "" {
		path := filepath.Dir(cfg.ToolchainPath)
		if inherited := os.Getenv("PATH"); inherited != "" {
			path += string(os.PathListSeparator) + inherited
		}
		env = []string{"PATH=" + path}
	}

	_, err := p.runner.Run(ctx, domain.RunRequest{
		Command: command,
		Env:     env,
		Echo:    cfg.Verbose,
	})
	return err
}

func suiteFailed(suite string, err error) error {
	return errors.Join(domain.ErrTestSuiteFailed,
		zerr.With(zerr.Wrap(err, suite+" test suite failed"), "suite", suite))
}
