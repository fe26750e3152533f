package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

// CacheMarkerName is the configure cache file probed for staleness. Its
// content records, among the cached variables, the toolchain path the build
// directory was last configured with.
const CacheMarkerName = "CMakeCache.txt"

// ConfigureBuild reconfigures the native build directory when its cache is
// stale and then always invokes the build tool.
type ConfigureBuild struct {
	runner ports.Runner
	logger ports.Logger
	goos   string
}

// NewConfigureBuild creates the native build phase.
func NewConfigureBuild(runner ports.Runner, logger ports.Logger) *ConfigureBuild {
	return &ConfigureBuild{runner: runner, logger: logger, goos: runtime.GOOS}
}

// WithGOOS overrides the platform used for configure flags. Used in tests.
func (p *ConfigureBuild) WithGOOS(goos string) *ConfigureBuild {
	p.goos = goos
	return p
}

// Run configures if needed, then builds.
func (p *ConfigureBuild) Run(ctx context.Context, cfg *domain.BuildConfiguration) error {
	needed, reason, err := p.needsConfigure(cfg)
	if err != nil {
		return errors.Join(domain.ErrConfigureFailed, err)
	}

	if needed {
		p.logger.Info("configuring build directory (" + reason + ")")
		if err := p.configure(ctx, cfg); err != nil {
			return errors.Join(domain.ErrConfigureFailed, err)
		}
	}

	if err := p.build(ctx, cfg); err != nil {
		return errors.Join(domain.ErrBuildFailed, err)
	}
	return nil
}

// needsConfigure holds the three documented triggers and nothing else.
// Reconfiguring more often would be correct but invalidates downstream
// incremental state.
func (p *ConfigureBuild) needsConfigure(cfg *domain.BuildConfiguration) (bool, string, error) {
	if cfg.Reconfigure {
		return true, "reconfigure requested", nil
	}

	marker := filepath.Join(cfg.BuildDir, CacheMarkerName)
	content, err := os.ReadFile(marker) //nolint:gosec // path is derived from the build directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, "cache marker missing", nil
		}
		return false, "", zerr.With(zerr.Wrap(err, "cannot read cache marker"), "path", marker)
	}

	if !bytes.Contains(content, []byte(cfg.ToolchainPath)) {
		return true, "toolchain changed", nil
	}
	return false, "", nil
}

func (p *ConfigureBuild) configure(ctx context.Context, cfg *domain.BuildConfiguration) error {
	if err := os.MkdirAll(cfg.BuildDir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "cannot create build directory"), "path", cfg.BuildDir)
	}

	command := []string{
		cfg.ConfigurePath,
		"-G", "Ninja",
		"-DCMAKE_MAKE_PROGRAM=" + cfg.BuildToolPath,
		"-DCMAKE_BUILD_TYPE=" + cfg.BuildType(),
		"-DCMAKE_C_COMPILER=" + cfg.ToolchainPath,
	}
	command = append(command, platformFlags(p.goos)...)
	command = append(command, cfg.SourceRoot)

	// Output stays inherited so configure diagnostics reach the user live.
	_, err := p.runner.Run(ctx, domain.RunRequest{
		Command: command,
		Dir:     cfg.BuildDir,
		Echo:    true,
	})
	return err
}

func (p *ConfigureBuild) build(ctx context.Context, cfg *domain.BuildConfiguration) error {
	command := []string{cfg.BuildToolPath}
	if cfg.Verbose {
		command = append(command, "-v")
	}
	if cfg.Target != "" {
		command = append(command, cfg.Target)
	}

	_, err := p.runner.Run(ctx, domain.RunRequest{
		Command: command,
		Dir:     cfg.BuildDir,
		Echo:    cfg.Verbose,
	})
	return err
}

// platformFlags is a pure data transformation of the configuration; it never
// changes phase ordering.
func platformFlags(goos string) []string {
	if goos == "darwin" {
		return []string{"-DCMAKE_OSX_DEPLOYMENT_TARGET=10.15"}
	}
	return nil
}
