package wireguard

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"wg-mesh/pkg/model"
)

// DuplicatePolicy decides what RenderAll does when tags collide.
type DuplicatePolicy int

const (
	// Strict fails with DuplicateTagsError.
	Strict DuplicatePolicy = iota
	// Overwrite logs a warning per duplicated tag and keeps the config of the
	// last node carrying it.
	Overwrite
)

// DuplicateTagsError lists every tag shared by more than one node, once each,
// in order of first occurrence.
type DuplicateTagsError struct {
	Tags []string
}

func (e DuplicateTagsError) Error() string {
	return fmt.Sprintf("duplicate node tags: %s", strings.Join(e.Tags, ", "))
}

type renderConfig struct {
	duplicates DuplicatePolicy
	logger     *zap.Logger
}

type Option func(*renderConfig)

func WithDuplicateTags(p DuplicatePolicy) Option {
	return func(cfg *renderConfig) {
		cfg.duplicates = p
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(cfg *renderConfig) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// DuplicateTags returns the tags used by more than one node.
func DuplicateTags(t *model.Topology) []string {
	seen := make(map[string]int, len(t.Nodes))
	var dups []string
	for _, n := range t.Nodes {
		seen[n.Tag]++
		if seen[n.Tag] == 2 {
			dups = append(dups, n.Tag)
		}
	}
	return dups
}

// RenderAll validates t, renders every node and keys the result by tag.
func RenderAll(t *model.Topology, opts ...Option) (map[string]string, error) {
	cfg := &renderConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	if dups := DuplicateTags(t); len(dups) > 0 {
		if cfg.duplicates == Strict {
			return nil, DuplicateTagsError{Tags: dups}
		}
		for _, tag := range dups {
			cfg.logger.Warn("duplicate node tag, keeping the last node", zap.String("tag", tag))
		}
	}

	out := make(map[string]string, len(t.Nodes))
	for i, n := range t.Nodes {
		conf, err := renderIndex(t, i)
		if err != nil {
			return nil, err
		}
		out[n.Tag] = conf
	}
	return out, nil
}
