package pipeline

import (
	"encoding/json"
	"fmt"
	"sync"
)

// SchemaVersion is the artifact envelope version this build understands.
const SchemaVersion = 1

// envelope is the outer JSON shape of every serialized pipeline artifact.
// The spec payload is opaque here; the registered decoder for the kind
// interprets it.
type envelope struct {
	SchemaVersion int             `json:"schema_version"`
	Kind          string          `json:"kind"`
	Spec          json.RawMessage `json:"spec"`
}

// DecodeFunc builds a Pipeline from the spec payload of an artifact.
type DecodeFunc func(spec []byte) (Pipeline, error)

var (
	kindsMu sync.RWMutex
	kinds   = map[string]DecodeFunc{}
)

// Register associates an artifact kind with its decoder. Built-in kinds
// register from init; re-registering a kind panics.
func Register(kind string, fn DecodeFunc) {
	kindsMu.Lock()
	defer kindsMu.Unlock()
	if _, dup := kinds[kind]; dup {
		panic("pipeline: duplicate kind " + kind)
	}
	kinds[kind] = fn
}

// Kinds returns the registered kind names for diagnostics.
func Kinds() []string {
	kindsMu.RLock()
	defer kindsMu.RUnlock()
	out := make([]string, 0, len(kinds))
	for k := range kinds {
		out = append(out, k)
	}
	return out
}

// Decode deserializes a full artifact into a ready Pipeline.
func Decode(b []byte) (Pipeline, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("decode artifact envelope: %w", err)
	}
	if env.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("unsupported artifact schema version %d", env.SchemaVersion)
	}
	kindsMu.RLock()
	fn, ok := kinds[env.Kind]
	kindsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown pipeline kind %q", env.Kind)
	}
	p, err := fn(env.Spec)
	if err != nil {
		return nil, fmt.Errorf("decode %s pipeline: %w", env.Kind, err)
	}
	return p, nil
}
