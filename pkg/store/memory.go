package store

import (
	"errors"
	"sync"

	"wg-mesh/pkg/model"
)

// ErrEmpty is returned by MemoryStore.Load before anything was saved.
var ErrEmpty = errors.New("no topology saved")

// MemoryStore is an in-memory TopologyStore, intended for tests and dry runs.
// It keeps copies so callers cannot mutate the stored value.
type MemoryStore struct {
	mu   sync.RWMutex
	topo *model.Topology
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreFrom returns a MemoryStore holding a copy of what src holds.
// Saves go to memory only, src is never written.
func NewMemoryStoreFrom(src TopologyStore) (*MemoryStore, error) {
	m := NewMemoryStore()
	ok, err := src.Exists()
	if err != nil || !ok {
		return m, err
	}
	t, err := src.Load()
	if err != nil {
		return nil, err
	}
	return m, m.Save(t)
}

func (m *MemoryStore) Load() (*model.Topology, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.topo == nil {
		return nil, ErrEmpty
	}
	return m.topo.Clone(), nil
}

func (m *MemoryStore) Save(t *model.Topology) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.topo = t.Clone()
	return nil
}

func (m *MemoryStore) Exists() (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.topo != nil, nil
}
