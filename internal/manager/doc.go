// Package manager owns the process-wide active model and the inference
// entry point. It is structured into small files by concern:
//
//   - manager.go: core Manager type, constructor, read-side getters.
//   - switch.go: SetActive validation-then-load-then-swap.
//   - predict.go: Predict and the feature-record-to-row conversion.
//   - errors.go: error types and helpers (IsModelNotAvailable, IsNotReady).
//
// The active (name, pipeline) pair is replaced wholesale under a write lock,
// so concurrent readers never observe a name from one model paired with a
// pipeline from another. Before the first successful SetActive the manager
// is not ready and Predict is rejected.
//
// External packages should treat this package as the orchestration layer and
// use public methods only (New, Ready, Registry, ActiveModel, SetActive,
// Predict). Internal types are subject to change.
package manager
