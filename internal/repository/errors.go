package repository

import "errors"

// ErrNotFound is the sentinel wrapped by every lookup miss. Callers match
// it with errors.Is; services translate it to an empty result where a miss
// is not an error.
var ErrNotFound = errors.New("not found")
