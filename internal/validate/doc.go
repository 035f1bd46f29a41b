// Package validate checks search input before any strategy runs.
//
// A search request carries a regular expression, an optional directory and
// an optional include glob. Each is validated here so that a bad request is
// rejected without spawning a process or touching the filesystem beyond a
// single stat of the requested directory.
//
// # Error Handling
//
// All validation errors wrap one of the sentinel errors defined in errors.go
// (ErrInvalidPattern, ErrOutsideWorkspace, etc.). Use errors.Is() for
// type-safe error checking:
//
//	if errors.Is(err, validate.ErrOutsideWorkspace) {
//	    // refuse the request
//	}
package validate
