package image

import "fmt"

// NoImageError means an archive held no entry that could be a firmware image.
type NoImageError struct {
	Archive string
}

func (e *NoImageError) Error() string {
	return fmt.Sprintf("could not retrieve a firmware image from %s", e.Archive)
}

// LoadError wraps a failure to read an image or archive.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
