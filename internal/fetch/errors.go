package fetch

import "errors"

var (
	// ErrInvalidURL is returned when a URL cannot name a local file.
	ErrInvalidURL = errors.New("invalid download url")

	// ErrBadStatus is returned for non-2xx responses; the status code is wrapped in.
	ErrBadStatus = errors.New("unexpected http status")

	// ErrNotAFile is returned when the destination path exists but is a directory.
	ErrNotAFile = errors.New("destination exists and is not a regular file")

	ErrTaskNotFound = errors.New("task not found")
	ErrTaskExists   = errors.New("task already exists")
)
