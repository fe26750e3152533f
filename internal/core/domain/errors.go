package domain

import "go.trai.ch/zerr"

var (
	// ErrExecutableNotFound is returned when a required external tool cannot be located.
	ErrExecutableNotFound = zerr.New("executable not found")

	// ErrCommandFailed is returned when a spawned process exits non-zero.
	ErrCommandFailed = zerr.New("command failed")

	// ErrGenerationFailed is returned when the code generation phase fails.
	ErrGenerationFailed = zerr.New("code generation failed")

	// ErrConfigureFailed is returned when configuring the native build directory fails.
	ErrConfigureFailed = zerr.New("configure failed")

	// ErrBuildFailed is returned when the native build fails.
	ErrBuildFailed = zerr.New("build failed")

	// ErrTestSuiteFailed is returned when one of the test suites fails.
	ErrTestSuiteFailed = zerr.New("test suite failed")

	// ErrPipelineFailed is returned when any pipeline phase fails.
	ErrPipelineFailed = zerr.New("pipeline failed")

	// ErrEmptyCommand is returned when a run request carries no argument vector.
	ErrEmptyCommand = zerr.New("empty command")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrSyncFailed is returned when reconciling a generated file into place fails.
	ErrSyncFailed = zerr.New("failed to sync generated file")
)
