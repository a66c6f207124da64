package yamlio

import (
	"errors"
	"fmt"
)

// ErrNotMapping is wrapped by ParseError when a document's root is not a mapping.
var ErrNotMapping = errors.New("document root is not a mapping")

// FileError reports a configuration file that could not be read or written.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("config file %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// ParseError reports malformed YAML in a configuration file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse YAML: %v", e.Err)
	}
	return fmt.Sprintf("parse YAML from %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
