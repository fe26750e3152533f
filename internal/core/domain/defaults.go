package domain

// BuildDefaults carries settings read from the optional mason.yaml file.
// CLI flags override any default that is set here.
type BuildDefaults struct {
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

	Target              string
	Jobs                int
	WarnEmptyGeneration bool
}
