// Package store persists topologies on disk and keeps a snapshot history.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"wg-mesh/pkg/model"
)

// TopologyStore loads and saves one topology.
type TopologyStore interface {
	Load() (*model.Topology, error)
	Save(*model.Topology) error
	Exists() (bool, error)
}

// Codec converts a topology to and from its persisted text.
type Codec struct {
	Decode func([]byte) (*model.Topology, error)
	Encode func(*model.Topology) ([]byte, error)
}

var (
	JSON = Codec{Decode: model.Load, Encode: model.Save}
	YAML = Codec{Decode: model.LoadYAML, Encode: model.SaveYAML}
)

// CodecFor picks YAML for .yaml and .yml files and JSON for everything else.
func CodecFor(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// FileStore keeps a topology in a single file.
type FileStore struct {
	path  string
	codec Codec
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, codec: CodecFor(path)}
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load() (*model.Topology, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read topology: %w", err)
	}
	t, err := s.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.path, err)
	}
	return t, nil
}

// Save writes t without validating it, so an editable template can be stored.
func (s *FileStore) Save(t *model.Topology) error {
	data, err := s.codec.Encode(t)
	if err != nil {
		return fmt.Errorf("encode topology: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write topology: %w", err)
	}
	return nil
}

func (s *FileStore) Exists() (bool, error) {
	_, err := os.Stat(s.path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
