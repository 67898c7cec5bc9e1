package todo

import "errors"

// ErrInvalidPriority indicates an unknown priority value.
var ErrInvalidPriority = errors.New("invalid priority")
