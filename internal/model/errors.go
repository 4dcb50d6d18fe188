package model

import "errors"

var (
	// ErrNotFound is returned by stores when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned by stores when an insert violates a unique constraint.
	ErrDuplicate = errors.New("duplicate")
)
