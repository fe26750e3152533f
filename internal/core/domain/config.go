// Package domain contains the core types of the mason build driver.
package domain

// BuildConfiguration holds the fully resolved settings for one pipeline run.
// It is assembled once from the config file, CLI flags and tool resolution,
// and never mutated afterwards.
type BuildConfiguration struct {
	// SourceDir is the directory holding the generator input files.
	SourceDir string
	// GeneratedDir is where reconciled generator output lands.
	GeneratedDir string
	// ScratchDir is the intermediate location for freshly generated files.
	ScratchDir string
	// BuildDir is the native build output directory.
	BuildDir string
	// SourceRoot is the project root handed to the configure tool.
	SourceRoot string
	// TestsDir is the pattern test-case directory.
	TestsDir string

	// GeneratorPath is the code generator executable.
	GeneratorPath string
	// ConfigurePath is the configure tool executable (cmake).
	ConfigurePath string
	// BuildToolPath is the build tool executable (ninja).
	BuildToolPath string
	// ToolchainPath is the compiler recorded in the build cache marker.
	ToolchainPath string
	// TestToolPath is the unit-test entry point of the build system.
	TestToolPath string
	// PatternRunnerPath is the pattern-matching test runner executable.
	PatternRunnerPath string
	// PatternCheckerPath is the output checker handed to the pattern runner.
	PatternCheckerPath string
	// TestHelperPath overrides discovery of the test helper binary when set.
	TestHelperPath string

	// Target is an optional named build target.
	Target string
	// Release selects a release configuration instead of debug.
	Release bool
	// Verbose echoes executed commands and passes verbose flags downstream.
	Verbose bool
	// Reconfigure forces the configure tool to run even with a valid cache.
	Reconfigure bool
	// RunTests enables the test phase after the build phase.
	RunTests bool
	// Jobs bounds the generation fan-out. Zero or one means sequential.
	Jobs int
	// WarnEmptyGeneration logs a warning when no generator inputs are found.
	WarnEmptyGeneration bool
}

// EffectiveJobs returns the generation parallelism, never below one.
func (c *BuildConfiguration) EffectiveJobs() int {
	if c.Jobs < 1 {
		return 1
	}
	return c.Jobs
}

// BuildType returns the configure-tool build type for this configuration.
func (c *BuildConfiguration) BuildType() string {
	if c.Release {
		return "Release"
	}
	return "Debug"
}
