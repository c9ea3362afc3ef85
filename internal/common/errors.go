// Package common defines shared constants and sentinel errors used across
// the store, the catalog client and the host surfaces. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// ErrorInUse is returned when a row cannot be removed because other rows
	// still reference it (a category that still holds bookmarks).
	ErrorInUse = errors.New("still in use")

	// ErrorInvalidReference is a foreign key that points nowhere
	// (unknown category or tag id).
	ErrorInvalidReference = errors.New("invalid reference")

	// Validation errors are raised before anything is written.
	ErrorValidation = errors.New("validation error")

	// Catalog API errors.
	ErrorRecordNotFound = errors.New("record not found")
	ErrorUpstream       = errors.New("upstream error")
	ErrorTimeout        = errors.New("request timed out")
)
