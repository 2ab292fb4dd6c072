// Package output writes rendered configs to disk.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// NotDirectoryError is returned when the output path exists but is not a
// directory.
type NotDirectoryError struct {
	Path string
}

func (e NotDirectoryError) Error() string {
	return fmt.Sprintf("output %s is not a directory", e.Path)
}

// WriteConfigs writes each config to <dir>/<tag>.conf with mode 0600 and
// returns the written paths in tag order. Configs with an empty tag are
// skipped with one warning. The directory must already exist.
func WriteConfigs(dir string, confs map[string]string, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	if !info.IsDir() {
		return nil, NotDirectoryError{Path: dir}
	}

	tags := make([]string, 0, len(confs))
	for tag := range confs {
		tags = append(tags, tag)
	}
	slices.Sort(tags)

	var written []string
	for _, tag := range tags {
		if tag == "" {
			logger.Warn("skipping node with empty tag")
			continue
		}
		if strings.ContainsAny(tag, `/\`) || tag == "." || tag == ".." {
			return written, fmt.Errorf("tag %q is not a valid file name", tag)
		}
		path := filepath.Join(dir, tag+".conf")
		if err := os.WriteFile(path, []byte(confs[tag]), 0o600); err != nil {
			return written, fmt.Errorf("write wireguard config: %w", err)
		}
		logger.Info("wrote config", zap.String("tag", tag), zap.String("path", path))
		written = append(written, path)
	}
	return written, nil
}
