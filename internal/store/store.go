// Package store locates and deserializes pipeline artifacts on disk.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"penguind/internal/common/fsutil"
	"penguind/internal/pipeline"
)

// ArtifactExt is the fixed extension of serialized pipeline artifacts.
const ArtifactExt = ".json"

// Store maps model names to artifact files under a single directory. It
// performs no caching: every Load re-reads and re-deserializes the artifact.
// Switching models is an infrequent administrative action, not a hot path.
type Store struct {
	dir string
}

// New builds a Store rooted at dir ('~' is expanded).
func New(dir string) (*Store, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	return &Store{dir: abs}, nil
}

// Dir returns the absolute models directory.
func (s *Store) Dir() string { return s.dir }

// Path returns the artifact location for a model name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+ArtifactExt)
}

// Load reads and deserializes the artifact for name. A missing artifact is
// reported as a not-found error (see IsNotFound) so callers can map it to a
// client-facing response; read and decode failures are ordinary errors.
func (s *Store) Load(name string) (pipeline.Pipeline, error) {
	p := s.Path(name)
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, artifactNotFoundError{name: name}
		}
		return nil, fmt.Errorf("read artifact %s: %w", p, err)
	}
	pipe, err := pipeline.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", p, err)
	}
	return pipe, nil
}
