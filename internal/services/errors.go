package services

import "errors"

var (
	// ErrConflict signals a uniqueness violation (duplicate email, second
	// pinned video) surfaced as 409.
	ErrConflict = errors.New("conflict")

	// ErrInvalidStateTransition signals a status move outside the allowed
	// lifecycle, e.g. completing a cancelled reservation.
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrForbidden signals a caller acting on a resource they do not own.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput signals a request that fails domain validation beyond
	// what struct tags cover.
	ErrInvalidInput = errors.New("invalid input")
)
