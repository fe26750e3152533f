package domain

// RunRequest describes one subprocess invocation.
type RunRequest struct {
	// Command is the argument vector. The first element is the executable.
	Command []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env is an overlay of KEY=VALUE entries applied on top of the parent
	// environment for this child only. The parent environment is never
	// mutated.
	Env []string
	// Capture collects stdout (and stderr, see MergeStderr) instead of
	// inheriting the parent streams.
	Capture bool
	// MergeStderr folds stderr into the captured stdout. Only meaningful
	// when Capture is set.
	MergeStderr bool
	// Echo logs the shell-quoted command line before execution.
	Echo bool
}

// ProcessResult carries the outcome of one subprocess invocation. It is
// consumed immediately by the caller and discarded.
type ProcessResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}
