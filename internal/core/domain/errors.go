// internal/core/domain/errors.go
package domain

import "errors"

var (
	// ErrNotPersisted is returned when an insert did not yield a generated id
	ErrNotPersisted = errors.New("item not persisted: no generated id returned")

	// ErrItemNotFound is returned by lookups that require the item to exist
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidItem wraps field validation failures
	ErrInvalidItem = errors.New("invalid item")
)
