package repository

import "errors"

// ErrNotFound is returned by all repositories when the requested row does not
// exist. Callers map it to their own not-found handling with errors.Is.
var ErrNotFound = errors.New("not found")
