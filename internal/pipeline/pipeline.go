// Package pipeline defines the capability interface for externally trained
// classification pipelines and the codec that deserializes their artifacts.
// It is structured into small files by concern:
//
//   - pipeline.go: Pipeline interface and the Row input type.
//   - codec.go: artifact envelope and the kind-keyed decoder registry.
//   - features.go: shared feature declarations and value resolution.
//   - tree.go: the "decision_tree" pipeline kind.
//   - logistic.go: the "logistic" pipeline kind.
//
// A pipeline owns its entire preprocessing: imputation of missing optional
// fields and categorical encoding happen inside Predict, never in callers.
package pipeline

// Pipeline is a deserialized, ready-to-use classifier. It accepts a single
// tabular row and returns one label.
type Pipeline interface {
	Predict(row Row) (string, error)
}

// Row is one tabular input row keyed by feature name. A nil value marks a
// field the caller omitted; pipelines impute it internally.
type Row map[string]any

// Number returns the named value as a float64. ok is false when the value is
// absent, nil, or not numeric.
func (r Row) Number(name string) (float64, bool) {
	switch v := r[name].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// Category returns the named value as a string. ok is false when the value
// is absent, nil, or not a string.
func (r Row) Category(name string) (string, bool) {
	v, ok := r[name].(string)
	return v, ok
}
