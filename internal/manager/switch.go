package manager

import "context"

// SetActive switches the serving model to name. The registry is the source
// of truth for what is selectable, the filesystem for what can actually be
// loaded: validation happens first, then the artifact load, and only a
// fully loaded pipeline replaces the active pair. On any failure the
// previous active model stays in place.
func (m *Manager) SetActive(ctx context.Context, name string) error {
	if !m.registry.Contains(name) {
		return modelNotAvailableError{name: name}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	// Load outside the lock: readers keep serving the old model while the
	// artifact is read and decoded.
	pipe, err := m.store.Load(name)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.active = &activeModel{name: name, pipe: pipe}
	m.mu.Unlock()
	return nil
}
