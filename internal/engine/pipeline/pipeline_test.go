package pipeline_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mason/internal/adapters/fs"
	"go.trai.ch/mason/internal/adapters/proc"
	"go.trai.ch/mason/internal/adapters/telemetry"
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/mason/internal/core/ports/mocks"
	"go.trai.ch/mason/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

// pipelineConfig returns a configuration whose generate phase is a no-op
// (no source directory) and whose build directory is already configured.
func pipelineConfig(t *testing.T) *domain.BuildConfiguration {
	t.Helper()
	cfg := nativeConfig(t)
	work := filepath.Dir(cfg.BuildDir)
	cfg.SourceDir = filepath.Join(work, "sources")
	cfg.GeneratedDir = filepath.Join(work, "generated")
	cfg.ScratchDir = filepath.Join(work, "scratch")
	cfg.TestsDir = "/src/tests/pattern"
	cfg.TestToolPath = "/opt/tools/test-runner"
	cfg.PatternRunnerPath = "/opt/tools/pattern-runner"
	cfg.TestHelperPath = "/work/build/bin/test-helper"
	writeCacheMarker(t, cfg, "CMAKE_C_COMPILER:FILEPATH="+cfg.ToolchainPath+"\n")
	return cfg
}

func expectSpan(tracer *mocks.MockTracer, span *mocks.MockSpan, name string) *gomock.Call {
	call := tracer.EXPECT().
		Start(gomock.Any(), name).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Span) {
			return ctx, span
		})
	span.EXPECT().End().Times(1)
	return call
}

func TestPipeline_PhaseOrderWithTests(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockTracer := mocks.NewMockTracer(ctrl)
	cfg := pipelineConfig(t)
	cfg.RunTests = true

	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

	generateSpan := mocks.NewMockSpan(ctrl)
	buildSpan := mocks.NewMockSpan(ctrl)
	testSpan := mocks.NewMockSpan(ctrl)
	gomock.InOrder(
		expectSpan(mockTracer, generateSpan, "generate"),
		expectSpan(mockTracer, buildSpan, "build"),
		expectSpan(mockTracer, testSpan, "test"),
	)

	mockRunner := mocks.NewMockRunner(ctrl)
	var commands [][]string
	mockRunner.EXPECT().
		Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req domain.RunRequest) (domain.ProcessResult, error) {
			commands = append(commands, req.Command)
			return domain.ProcessResult{}, nil
		}).
		Times(3)

	p := pipeline.New(mockRunner, fs.NewSyncer(), mockLogger, mockTracer)
	require.NoError(t, p.Run(context.Background(), cfg))

	// One build invocation followed by the two suites.
	require.Len(t, commands, 3)
	assert.Equal(t, cfg.BuildToolPath, commands[0][0])
	assert.Equal(t, cfg.PatternRunnerPath, commands[1][0])
	assert.Equal(t, cfg.TestToolPath, commands[2][0])
}

func TestPipeline_SkipsTestPhaseByDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockTracer := mocks.NewMockTracer(ctrl)
	cfg := pipelineConfig(t)

	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

	generateSpan := mocks.NewMockSpan(ctrl)
	buildSpan := mocks.NewMockSpan(ctrl)
	gomock.InOrder(
		expectSpan(mockTracer, generateSpan, "generate"),
		expectSpan(mockTracer, buildSpan, "build"),
	)

	mockRunner := mocks.NewMockRunner(ctrl)
	mockRunner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(domain.ProcessResult{}, nil).Times(1)

	p := pipeline.New(mockRunner, fs.NewSyncer(), mockLogger, mockTracer)
	require.NoError(t, p.Run(context.Background(), cfg))
}

func TestPipeline_BuildFailureStopsBeforeTests(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockTracer := mocks.NewMockTracer(ctrl)
	cfg := pipelineConfig(t)
	cfg.RunTests = true

	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

	generateSpan := mocks.NewMockSpan(ctrl)
	buildSpan := mocks.NewMockSpan(ctrl)
	buildSpan.EXPECT().RecordError(gomock.Any())
	gomock.InOrder(
		expectSpan(mockTracer, generateSpan, "generate"),
		expectSpan(mockTracer, buildSpan, "build"),
	)

	mockRunner := mocks.NewMockRunner(ctrl)
	mockRunner.EXPECT().
		Run(gomock.Any(), gomock.Any()).
		Return(domain.ProcessResult{ExitCode: 1}, domain.ErrCommandFailed).
		Times(1)

	p := pipeline.New(mockRunner, fs.NewSyncer(), mockLogger, mockTracer)
	err := p.Run(context.Background(), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBuildFailed)
}

// stubTool writes an executable that appends its own name to a shared call
// log. extra lines run afterwards in the invocation directory.
func stubTool(t *testing.T, dir, name, callLog string, extra ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	lines := append([]string{
		"#!/bin/sh",
		fmt.Sprintf("echo %s >> %q", name, callLog),
	}, extra...)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o755))
	return path
}

func readCallLog(t *testing.T, callLog string) []string {
	t.Helper()
	data, err := os.ReadFile(callLog)
	if err != nil {
		require.ErrorIs(t, err, os.ErrNotExist)
		return nil
	}
	return strings.Fields(string(data))
}

// TestPipeline_SecondRunIsIncremental drives two full runs against stub
// tools. The second run must not reconfigure and must not rewrite generated
// sources, while the build tool still runs every time.
func TestPipeline_SecondRunIsIncremental(t *testing.T) {
	tmpDir := t.TempDir()
	callLog := filepath.Join(tmpDir, "calls.log")

	cfg := &domain.BuildConfiguration{
		SourceDir:    filepath.Join(tmpDir, "sources"),
		GeneratedDir: filepath.Join(tmpDir, "generated"),
		ScratchDir:   filepath.Join(tmpDir, "scratch"),
		BuildDir:     filepath.Join(tmpDir, "build"),
		SourceRoot:   tmpDir,
	}
	cfg.GeneratorPath = stubGenerator(t, tmpDir)
	cfg.ToolchainPath = stubTool(t, tmpDir, "cc", callLog)
	cfg.BuildToolPath = stubTool(t, tmpDir, "ninja", callLog)
	// The configure stub records the toolchain path in its cache file the
	// way the real tool caches CMAKE_C_COMPILER.
	cfg.ConfigurePath = stubTool(t, tmpDir, "cmake", callLog,
		fmt.Sprintf("echo %q > %s", cfg.ToolchainPath, pipeline.CacheMarkerName))

	require.NoError(t, os.MkdirAll(cfg.SourceDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.SourceDir, "A.swift.gen"), []byte("alpha"), 0o644))

	log := quietLogger(t)
	p := pipeline.New(proc.NewRunner(log), fs.NewSyncer(), log, telemetry.NewNoOpTracer())

	require.NoError(t, p.Run(context.Background(), cfg))
	assert.Equal(t, []string{"cmake", "ninja"}, readCallLog(t, callLog))

	generated := filepath.Join(cfg.GeneratedDir, "A.swift")
	before, err := os.Stat(generated)
	require.NoError(t, err)

	require.NoError(t, os.Remove(callLog))
	require.NoError(t, p.Run(context.Background(), cfg))

	// No configure on the second run.
	assert.Equal(t, []string{"ninja"}, readCallLog(t, callLog))

	after, err := os.Stat(generated)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
}
