package logger_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mason/internal/adapters/logger"
	"go.trai.ch/mason/internal/adapters/proc"
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/zerr"
)

func newBufferedLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	l, ok := logger.New().(*logger.Logger)
	require.True(t, ok)
	var buf bytes.Buffer
	l.SetOutput(&buf)
	return l, &buf
}

func TestLogger_Info(t *testing.T) {
	l, buf := newBufferedLogger(t)

	l.Info("generated 3 files")
	assert.Contains(t, buf.String(), "generated 3 files")
}

func TestLogger_Warn(t *testing.T) {
	l, buf := newBufferedLogger(t)

	l.Warn("no generator inputs found")
	assert.Contains(t, buf.String(), "no generator inputs found")
}

func TestLogger_Error_NilIsSilent(t *testing.T) {
	l, buf := newBufferedLogger(t)

	l.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_Error_PlainError(t *testing.T) {
	l, buf := newBufferedLogger(t)

	l.Error(errors.New("boom"))
	assert.Contains(t, buf.String(), "Error: boom")
}

func TestLogger_Error_ChainRendersCauses(t *testing.T) {
	l, buf := newBufferedLogger(t)

	err := zerr.Wrap(errors.New("exit status 2"), "configure failed")
	l.Error(err)

	out := buf.String()
	assert.Contains(t, out, "configure failed")
	assert.Contains(t, out, "exit status 2")
}

func TestLogger_Error_RendersAttachedMetadata(t *testing.T) {
	l, buf := newBufferedLogger(t)

	err := zerr.With(zerr.With(
		zerr.New("command exited non-zero"),
		"command", "ninja -v"),
		"exit_code", 2)
	l.Error(err)

	out := buf.String()
	assert.Contains(t, out, "command: ninja -v")
	assert.Contains(t, out, "exit_code: 2")
}

// A failed captured command must surface its command line, exit code and
// captured output in the rendered diagnostic.
func TestLogger_Error_RunnerFailureShowsCommandAndOutput(t *testing.T) {
	l, buf := newBufferedLogger(t)

	_, err := proc.NewRunner(l).Run(context.Background(), domain.RunRequest{
		Command:     []string{"sh", "-c", "echo boom-diagnostic; exit 7"},
		Capture:     true,
		MergeStderr: true,
	})
	require.Error(t, err)

	l.Error(err)

	out := buf.String()
	assert.Contains(t, out, "command failed")
	assert.Contains(t, out, "boom-diagnostic")
	assert.Contains(t, out, "exit_code: 7")
	assert.Contains(t, out, "echo boom-diagnostic; exit 7")
}
