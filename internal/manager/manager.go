package manager

import (
	"sync"

	"penguind/internal/pipeline"
	"penguind/pkg/types"
)

// Loader deserializes a pipeline artifact by model name. *store.Store
// satisfies it; tests substitute fakes.
type Loader interface {
	Load(name string) (pipeline.Pipeline, error)
}

// activeModel is the (name, pipeline) pair swapped as a unit.
type activeModel struct {
	name string
	pipe pipeline.Pipeline
}

type Manager struct {
	mu       sync.RWMutex
	registry types.Registry
	store    Loader
	active   *activeModel // nil until the first successful SetActive
}

// New builds a Manager over an immutable registry and an artifact loader.
// No model is active until SetActive succeeds.
func New(reg types.Registry, store Loader) *Manager {
	return &Manager{registry: reg, store: store}
}

// Registry returns the descriptor loaded at startup. The slice is copied so
// callers cannot mutate descriptor order.
func (m *Manager) Registry() types.Registry {
	out := m.registry
	out.AvailableModels = append([]string(nil), m.registry.AvailableModels...)
	return out
}

// ActiveModel returns the name of the model currently serving predictions.
// ok is false before the first successful SetActive.
func (m *Manager) ActiveModel() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.active == nil {
		return "", false
	}
	return m.active.name, true
}

// Ready reports whether a model is active and inference can be served.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active != nil
}
