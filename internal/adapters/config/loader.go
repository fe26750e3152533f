// Package config provides the configuration loader for mason.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

// Filename is the defaults file looked up in the working directory.
const Filename = "mason.yaml"

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
}

// NewLoader creates a loader for the default file name.
func NewLoader() *FileConfigLoader {
	return &FileConfigLoader{Filename: Filename}
}

// Load reads the defaults file from the given working directory.
func (l *FileConfigLoader) Load(cwd string) (*domain.BuildDefaults, error) {
	path := filepath.Join(cwd, l.Filename)

	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the working directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &domain.BuildDefaults{}, nil
		}
		return nil, errors.Join(domain.ErrConfigReadFailed,
			zerr.With(zerr.Wrap(err, "cannot read defaults file"), "path", path))
	}

	masonfile, err := parse(data)
	if err != nil {
		return nil, errors.Join(domain.ErrConfigParseFailed,
			zerr.With(err, "path", path))
	}

	return masonfile.toDefaults(), nil
}
