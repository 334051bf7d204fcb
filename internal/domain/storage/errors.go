// Package storage holds the failure classes every repository implementation agrees on.
package storage

import crerr "github.com/cockroachdb/errors"

// ErrConflict marks a write the database refused to serialize against a concurrent one.
// Nothing was written; the caller may resubmit.
var ErrConflict = crerr.New("concurrent write conflict")

func IsConflict(err error) bool {
	return crerr.Is(err, ErrConflict)
}

// ErrUnavailable marks a failure to reach the store at all: a refused or dropped connection.
var ErrUnavailable = crerr.New("storage unavailable")

func IsUnavailable(err error) bool {
	return crerr.Is(err, ErrUnavailable)
}
