// Package proc executes external commands for the pipeline phases.
package proc

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Runner = (*Runner)(nil)

// Runner implements ports.Runner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run spawns the requested command and waits for it to exit.
func (r *Runner) Run(ctx context.Context, req domain.RunRequest) (domain.ProcessResult, error) {
	if len(req.Command) == 0 {
		return domain.ProcessResult{}, domain.ErrEmptyCommand
	}

	if req.Echo {
		r.logger.Info(QuoteCommand(req.Command))
	}

	//nolint:gosec // the command comes from resolved configuration
	cmd := exec.CommandContext(ctx, req.Command[0], req.Command[1:]...)
	cmd.Dir = req.Dir

	// The overlay is applied to a copy of the parent environment. The
	// parent process environment is never mutated.
	if len(req.Env) > 0 {
		cmd.Env = append(os.Environ(), req.Env...)
	}

	var stdout, stderr bytes.Buffer
	if req.Capture {
		cmd.Stdout = &stdout
		if req.MergeStderr {
			cmd.Stderr = &stdout
		} else {
			cmd.Stderr = &stderr
		}
	} else {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	err := cmd.Run()
	res := domain.ProcessResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		failure := zerr.With(zerr.With(
			zerr.Wrap(err, "command exited non-zero"),
			"command", QuoteCommand(req.Command)),
			"exit_code", res.ExitCode)
		if req.Capture {
			failure = zerr.With(failure, "output", strings.TrimSpace(res.Stdout+res.Stderr))
		}
		return res, errors.Join(domain.ErrCommandFailed, failure)
	}

	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		res.ExitCode = -1
		return res, errors.Join(domain.ErrExecutableNotFound,
			zerr.With(zerr.Wrap(err, "cannot locate executable"), "command", req.Command[0]))
	}

	res.ExitCode = -1
	return res, errors.Join(domain.ErrCommandFailed,
		zerr.With(zerr.Wrap(err, "failed to run command"), "command", QuoteCommand(req.Command)))
}

// QuoteCommand renders an argument vector as a single shell-quoted line.
// The quoting is for log legibility only; execution always uses the vector.
func QuoteCommand(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = quoteArg(arg)
	}
	return strings.Join(quoted, " ")
}

func quoteArg(arg string) string {
	if arg == "" {
		return `""`
	}
	if !strings.ContainsAny(arg, " \t\"'") {
		return arg
	}
	return `"` + strings.ReplaceAll(arg, `"`, `\"`) + `"`
}
