// Package fs provides filesystem adapters for content-aware file handling.
package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Syncer = (*Syncer)(nil)

// Syncer implements ports.Syncer with an xxhash content comparison.
type Syncer struct{}

// NewSyncer creates a new Syncer.
func NewSyncer() *Syncer {
	return &Syncer{}
}

// SyncIfChanged copies candidate over destination only when their content
// differs. An untouched destination keeps its modification time, which is
// what downstream build tools key their rebuild decisions off.
func (s *Syncer) SyncIfChanged(candidate, destination string) (domain.SyncDecision, error) {
	same, err := contentEqual(candidate, destination)
	if err != nil {
		return domain.SyncIdentical, err
	}
	if same {
		return domain.SyncIdentical, nil
	}

	if err := copyFile(candidate, destination); err != nil {
		return domain.SyncIdentical, err
	}
	return domain.SyncReplaced, nil
}

// contentEqual reports whether both files exist and hold identical content.
// A missing destination compares unequal; a missing candidate is an error.
func contentEqual(candidate, destination string) (bool, error) {
	candInfo, err := os.Stat(candidate)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to stat candidate"), "path", candidate)
	}

	destInfo, err := os.Stat(destination)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, "failed to stat destination"), "path", destination)
	}

	// Different sizes cannot hash equal, skip the reads.
	if candInfo.Size() != destInfo.Size() {
		return false, nil
	}

	candHash, err := computeFileHash(candidate)
	if err != nil {
		return false, err
	}
	destHash, err := computeFileHash(destination)
	if err != nil {
		return false, err
	}
	return candHash == destHash, nil
}

// computeFileHash computes the XXHash of a file's content.
func computeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create destination directory"), "path", filepath.Dir(dst))
	}

	in, err := os.Open(src) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open source"), "path", src)
	}
	defer in.Close() //nolint:errcheck // Best effort close in defer

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644) //nolint:gosec // generated source file
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open destination"), "path", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return zerr.With(zerr.Wrap(err, "failed to copy file"), "path", dst)
	}
	if err := out.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close destination"), "path", dst)
	}
	return nil
}
