package store

// artifactNotFoundError signals that no artifact file backs a model name.
type artifactNotFoundError struct{ name string }

func (e artifactNotFoundError) Error() string { return "model not found: " + e.name }

// IsNotFound reports whether err indicates a missing artifact (map to 404).
func IsNotFound(err error) bool {
	_, ok := err.(artifactNotFoundError)
	return ok
}
