package manager

// modelNotAvailableError signals a name outside the registry's
// available_models (return 404).
type modelNotAvailableError struct{ name string }

func (e modelNotAvailableError) Error() string { return "model not available: " + e.name }

// IsModelNotAvailable reports whether err indicates a model name the
// registry does not list.
func IsModelNotAvailable(err error) bool {
	_, ok := err.(modelNotAvailableError)
	return ok
}

// notReadyError signals inference before any model is active (return 500).
type notReadyError struct{}

func (notReadyError) Error() string { return "no model loaded" }

// IsNotReady reports whether err indicates the manager has no active model.
func IsNotReady(err error) bool {
	_, ok := err.(notReadyError)
	return ok
}
