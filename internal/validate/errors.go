// errors.go defines sentinel errors for validation failures.
//
// Detailed messages are added by wrapping these with fmt.Errorf in the
// validation functions.

package validate

import "errors"

var (
	ErrEmptyPattern     = errors.New("empty pattern")
	ErrInvalidPattern   = errors.New("invalid regular expression")
	ErrInvalidInclude   = errors.New("invalid include pattern")
	ErrOutsideWorkspace = errors.New("path is outside the allowed workspace directories")
	ErrNotFound         = errors.New("path does not exist")
	ErrNotDirectory     = errors.New("path is not a directory")
)
