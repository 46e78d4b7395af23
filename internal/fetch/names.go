package fetch

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// FileNameFromURL returns the last path segment of rawURL. Query and fragment
// are not part of the name.
func FileNameFromURL(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: scheme must be http or https: %q", ErrInvalidURL, rawURL)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: missing host: %q", ErrInvalidURL, rawURL)
	}

	name := path.Base(u.Path)
	switch name {
	case "", ".", "..", "/":
		return "", fmt.Errorf("%w: no file name in path: %q", ErrInvalidURL, rawURL)
	}
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: file name contains a separator: %q", ErrInvalidURL, name)
	}
	return name, nil
}

// TargetPath returns where rawURL is stored inside dir.
func TargetPath(dir, rawURL string) (string, error) {
	name, err := FileNameFromURL(rawURL)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
