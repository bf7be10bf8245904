package types

// Registry is the model descriptor loaded once at startup. It names the
// default model and the set of model names that may be activated.
type Registry struct {
	// Name of the model activated at startup.
	// example: rf
	DefaultModel string `json:"default_model" yaml:"default_model" example:"rf"`
	// Names of all selectable models, in descriptor order.
	// example: ["rf","svm"]
	AvailableModels []string `json:"available_models" yaml:"available_models" example:"rf,svm"`
}

// Contains reports whether name is one of the selectable models.
func (r Registry) Contains(name string) bool {
	for _, m := range r.AvailableModels {
		if m == name {
			return true
		}
	}
	return false
}
