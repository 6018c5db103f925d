package clippings

import (
	"errors"
	"fmt"
)

// ErrInvalidEncoding indicates the clippings file is not UTF-8 text.
var ErrInvalidEncoding = errors.New("clippings file is not valid UTF-8")

// IOError reports a clippings file that could not be opened or read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to read clippings: %v", e.Err)
	}
	return fmt.Sprintf("failed to read clippings file %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
