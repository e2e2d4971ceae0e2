package usecases

// ValidationError marks a request rejected before any store call, so the
// HTTP layer can answer 400 instead of 500.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalid(reason string) error {
	return &ValidationError{Reason: reason}
}
