package domain

import "strings"

// GeneratorSuffix marks files in the source directory that feed the generator.
const GeneratorSuffix = ".gen"

// GenerationUnit pairs one generator input file with its derived output name.
// Units are enumerated fresh on every run and never persisted.
type GenerationUnit struct {
	// Input is the file name of the generator input, including the suffix.
	Input string
	// Output is the derived output file name, the input minus the suffix.
	Output string
}

// NewGenerationUnit derives the unit for a generator input file name.
// Returns false when the name does not carry the generator suffix.
func NewGenerationUnit(name string) (GenerationUnit, bool) {
	out, ok := strings.CutSuffix(name, GeneratorSuffix)
	if !ok || out == "" {
		return GenerationUnit{}, false
	}
	return GenerationUnit{Input: name, Output: out}, true
}

// SyncDecision is the outcome of reconciling a scratch file into the
// generated-sources directory.
type SyncDecision int

const (
	// SyncIdentical means the destination already had identical content and
	// was left untouched.
	SyncIdentical SyncDecision = iota
	// SyncReplaced means the destination was missing or differed and was
	// overwritten with the candidate.
	SyncReplaced
)

// String returns a human-readable name for the decision.
func (d SyncDecision) String() string {
	if d == SyncReplaced {
		return "replaced"
	}
	return "identical"
}
