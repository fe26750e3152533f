package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/mason/internal/app"
)

//nolint:funlen // flag declarations
func (c *CLI) newBuildCmd() *cobra.Command {
	var opts app.BuildOptions

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate sources, configure and build, optionally test",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Build(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.BuildDir, "build-dir", "", "Native build output directory")
	cmd.Flags().StringVar(&opts.SourceDir, "source-dir", "", "Directory holding generator input files")
	cmd.Flags().StringVar(&opts.GeneratedDir, "generated-dir", "", "Directory receiving reconciled generator output")
	cmd.Flags().StringVar(&opts.TestsDir, "tests-dir", "", "Pattern test-case directory")

	cmd.Flags().StringVar(&opts.GeneratorPath, "generator-path", "", "Path to the code generator")
	cmd.Flags().StringVar(&opts.ConfigurePath, "cmake-path", "", "Path to the cmake executable")
	cmd.Flags().StringVar(&opts.BuildToolPath, "ninja-path", "", "Path to the ninja executable")
	cmd.Flags().StringVar(&opts.ToolchainPath, "toolchain-path", "", "Path to the compiler recorded in the build cache")
	cmd.Flags().StringVar(&opts.TestToolPath, "test-tool-path", "", "Path to the unit-test runner")
	cmd.Flags().StringVar(&opts.PatternRunnerPath, "pattern-runner-path", "", "Path to the pattern test runner")
	cmd.Flags().StringVar(&opts.PatternCheckerPath, "pattern-checker-path", "", "Path to the pattern output checker")
	cmd.Flags().StringVar(&opts.TestHelperPath, "test-helper-path", "", "Path to the test helper binary, skipping discovery")

	cmd.Flags().StringVar(&opts.Target, "target", "", "Build only the named target")
	cmd.Flags().BoolVarP(&opts.Release, "release", "r", false, "Build the release configuration")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Echo executed commands and verbose tool output")
	cmd.Flags().BoolVar(&opts.Reconfigure, "reconfigure", false, "Force the configure step even with a valid cache")
	cmd.Flags().BoolVarP(&opts.RunTests, "test", "t", false, "Run the test suites after building")
	cmd.Flags().IntVar(&opts.Jobs, "jobs", 0, "Parallel source-generation jobs (default sequential)")

	return cmd
}
