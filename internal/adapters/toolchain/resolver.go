// Package toolchain locates the external tools the pipeline drives.
package toolchain

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ToolResolver = (*Resolver)(nil)

// Resolver implements ports.ToolResolver.
//
// Resolution order: explicit path, environment override, then the platform
// lookup. On darwin the platform lookup asks xcrun so toolchain selection
// follows the active developer directory; elsewhere it searches PATH.
type Resolver struct {
	runner ports.Runner
	goos   string
}

// NewResolver creates a new Resolver backed by the given runner.
func NewResolver(runner ports.Runner) *Resolver {
	return &Resolver{runner: runner, goos: runtime.GOOS}
}

// WithGOOS overrides the platform used for lookup decisions. Used in tests.
func (r *Resolver) WithGOOS(goos string) *Resolver {
	r.goos = goos
	return r
}

// Resolve returns an absolute path for the named tool.
func (r *Resolver) Resolve(ctx context.Context, name, explicit, envVar string) (string, error) {
	if explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, "failed to absolutize tool path"), "path", explicit)
		}
		return abs, nil
	}

	if envVar != "" {
		if fromEnv := os.Getenv(envVar); fromEnv != "" {
			abs, err := filepath.Abs(fromEnv)
			if err != nil {
				return "", zerr.With(zerr.Wrap(err, "failed to absolutize tool path"), "env", envVar)
			}
			return abs, nil
		}
	}

	if r.goos == "darwin" {
		return r.resolveXcrun(ctx, name)
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", notFound(name, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to absolutize tool path"), "path", path)
	}
	return abs, nil
}

func (r *Resolver) resolveXcrun(ctx context.Context, name string) (string, error) {
	res, err := r.runner.Run(ctx, domain.RunRequest{
		Command:     []string{"xcrun", "--find", name},
		Capture:     true,
		MergeStderr: false,
	})
	if err != nil {
		return "", notFound(name, err)
	}
	path := strings.TrimSpace(res.Stdout)
	if path == "" {
		return "", notFound(name, nil)
	}
	return path, nil
}

func notFound(name string, cause error) error {
	base := zerr.With(
		zerr.New("could not find tool; pass an explicit path or install it next to the project checkout"),
		"tool", name)
	if cause != nil {
		return errors.Join(domain.ErrExecutableNotFound, base, cause)
	}
	return errors.Join(domain.ErrExecutableNotFound, base)
}
