package domain

import "errors"

// Sentinel errors shared across the service and repository layers. Handlers
// map these onto response envelopes with errors.Is.
var (
	// ErrInvalidFilterSyntax reports a malformed $filter clause.
	ErrInvalidFilterSyntax = errors.New("invalid filter syntax")

	// ErrNotFound reports that a document does not exist or is soft-deleted.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyDelivered reports a duplicate fulfillment transition: the
	// agent request already has a delivered agent derived from it.
	ErrAlreadyDelivered = errors.New("agent request already delivered")

	// ErrInvalidReference reports a filter, sort or join target that does not
	// exist on the backing schema, surfaced by the store rather than
	// validated up front.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrInvalidInput reports a request body that fails domain validation,
	// such as an unknown status value or an empty workflow selection.
	ErrInvalidInput = errors.New("invalid input")
)
