package model

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Load decodes a JSON topology and validates it. No topology is returned when
// any node or prefix is invalid.
func Load(data []byte) (*Topology, error) {
	var t Topology
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode topology: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Save encodes t as indented JSON.
func Save(t *Topology) ([]byte, error) {
	data, err := json.MarshalIndent(withNodes(t), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode topology: %w", err)
	}
	return append(data, '\n'), nil
}

// LoadYAML is Load for the YAML rendition of the same record.
func LoadYAML(data []byte) (*Topology, error) {
	var t Topology
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode topology: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// SaveYAML encodes t as YAML.
func SaveYAML(t *Topology) ([]byte, error) {
	data, err := yaml.Marshal(withNodes(t))
	if err != nil {
		return nil, fmt.Errorf("encode topology: %w", err)
	}
	return data, nil
}

// withNodes keeps an empty topology encoding as an empty list instead of null.
func withNodes(t *Topology) *Topology {
	if t.Nodes != nil {
		return t
	}
	c := *t
	c.Nodes = []Node{}
	return &c
}
