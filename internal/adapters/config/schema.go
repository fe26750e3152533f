package config

import (
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Masonfile represents the structure of the mason.yaml defaults file.
type Masonfile struct {
	SourceDir    string `yaml:"sourceDir"`
	GeneratedDir string `yaml:"generatedDir"`
	BuildDir     string `yaml:"buildDir"`
	TestsDir     string `yaml:"testsDir"`

	Tools ToolsDTO `yaml:"tools"`

	Target              string `yaml:"target"`
	Jobs                int    `yaml:"jobs"`
	WarnEmptyGeneration bool   `yaml:"warnEmptyGeneration"`
}

// ToolsDTO holds the tool path defaults.
type ToolsDTO struct {
	Generator      string `yaml:"generator"`
	Configure      string `yaml:"configure"`
	Build          string `yaml:"build"`
	Toolchain      string `yaml:"toolchain"`
	Test           string `yaml:"test"`
	PatternRunner  string `yaml:"patternRunner"`
	PatternChecker string `yaml:"patternChecker"`
	TestHelper     string `yaml:"testHelper"`
}

func parse(data []byte) (*Masonfile, error) {
	var f Masonfile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, zerr.Wrap(err, "cannot parse defaults file")
	}
	return &f, nil
}

func (f *Masonfile) toDefaults() *domain.BuildDefaults {
	return &domain.BuildDefaults{
		SourceDir:    f.SourceDir,
		GeneratedDir: f.GeneratedDir,
		BuildDir:     f.BuildDir,
		TestsDir:     f.TestsDir,

		GeneratorPath:      f.Tools.Generator,
		ConfigurePath:      f.Tools.Configure,
		BuildToolPath:      f.Tools.Build,
		ToolchainPath:      f.Tools.Toolchain,
		TestToolPath:       f.Tools.Test,
		PatternRunnerPath:  f.Tools.PatternRunner,
		PatternCheckerPath: f.Tools.PatternChecker,
		TestHelperPath:     f.Tools.TestHelper,

		Target:              f.Target,
		Jobs:                f.Jobs,
		WarnEmptyGeneration: f.WarnEmptyGeneration,
	}
}
