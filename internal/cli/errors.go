package cli

import "errors"

// reportedError marks an error whose message a command already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

// IsReported reports whether err was already shown to the user by the
// command that returned it.
func IsReported(err error) bool {
	var re *reportedError
	return errors.As(err, &re)
}
