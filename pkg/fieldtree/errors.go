package fieldtree

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (wrapped in a *PathError) by tree operations.
// Both signal programmer errors — a typo'd path or a template that does not
// declare the shape the caller assumes — and must propagate to the caller
// rather than being swallowed, since a lost mutation would let an unintended
// field reach the signed payload.
var (
	// ErrPathNotFound reports a path segment that does not resolve to an
	// existing child where existence is required.
	ErrPathNotFound = errors.New("path not found")

	// ErrInvalidPath reports a malformed path string or an attempt to descend
	// through a leaf as if it were a branch.
	ErrInvalidPath = errors.New("invalid path")
)

// PathError records a failed tree operation, the path it addressed and the
// underlying sentinel error. It supports errors.Is via Unwrap.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("fieldtree: %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

func pathErr(op, path string, err error) error {
	return &PathError{Op: op, Path: path, Err: err}
}
