package service

// ValidationError reports a client-caused failure: a rejected upload or a
// malformed request. It always carries a human-readable reason and maps to
// HTTP 400 at the handler layer. Nothing is mutated or written when one is
// returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func newValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}
